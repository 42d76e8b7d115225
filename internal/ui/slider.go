package ui

import (
	"image"
	"math"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

// VolumeSlider is a slider with breakpoint tick marks and an explicit
// commit-on-release callback. Live movement emits drag messages; letting
// go of the thumb emits exactly one commit message.
type VolumeSlider struct {
	float       widget.Float
	wasDragging bool
}

// Dragging reports whether the thumb is currently held.
func (s *VolumeSlider) Dragging() bool {
	return s.float.Dragging()
}

// Layout renders the slider for a value in [0, ceiling] and translates its
// native callbacks into messages.
func (s *VolumeSlider) Layout(gtx layout.Context, th *material.Theme, value, ceiling int, breakpoints []int, onDrag func(int) Msg, onCommit Msg, emit func(Msg)) layout.Dimensions {
	if ceiling <= 0 {
		ceiling = standardCeiling
	}
	if !s.float.Dragging() {
		s.float.Value = float32(value) / float32(ceiling)
	}

	if s.float.Update(gtx) {
		emit(onDrag(sliderValue(s.float.Value, ceiling)))
	}
	dragging := s.float.Dragging()
	if s.wasDragging && !dragging {
		emit(onCommit)
	}
	s.wasDragging = dragging

	dims := material.Slider(th, &s.float).Layout(gtx)

	// Tick marks over the track, e.g. the 100% boundary of an amplified
	// range.
	tickW := gtx.Dp(unit.Dp(2))
	tickH := gtx.Dp(unit.Dp(8))
	tickCol := th.Palette.Fg
	tickCol.A = 160
	for _, bp := range breakpoints {
		if bp < 0 || bp > ceiling {
			continue
		}
		x := int(float32(dims.Size.X) * float32(bp) / float32(ceiling))
		if x > dims.Size.X-tickW {
			x = dims.Size.X - tickW
		}
		y := (dims.Size.Y - tickH) / 2
		paint.FillShape(gtx.Ops, tickCol, clip.Rect(image.Rect(x, y, x+tickW, y+tickH)).Op())
	}
	return dims
}

// sliderValue converts the widget's 0..1 fraction to a clamped integer
// volume.
func sliderValue(frac float32, ceiling int) int {
	v := int(math.Round(float64(frac) * float64(ceiling)))
	return clamp(v, 0, ceiling)
}
