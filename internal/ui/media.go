package ui

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"gioui.org/op/paint"
)

// artCache memoizes the decoded artwork for the current track. The media
// player reports a path per track; decoding happens once per path change.
type artCache struct {
	path string
	op   paint.ImageOp
	ok   bool
}

// load returns the artwork image op for path, decoding on path change.
func (c *artCache) load(path string) (paint.ImageOp, bool) {
	if path == c.path {
		return c.op, c.ok
	}
	c.path = path
	c.ok = false
	if path == "" {
		return c.op, false
	}
	f, err := os.Open(path)
	if err != nil {
		return c.op, false
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return c.op, false
	}
	c.op = paint.NewImageOp(img)
	c.ok = true
	return c.op, true
}
