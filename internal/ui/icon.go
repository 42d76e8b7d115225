package ui

import (
	"gioui.org/widget"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

// volumeBucket classifies a volume for icon selection.
type volumeBucket int

const (
	bucketMuted volumeBucket = iota
	bucketLow
	bucketMedium
	bucketHigh
)

// bucketFor maps a rendered volume and mute flag onto an icon bucket.
func bucketFor(volume int, muted bool) volumeBucket {
	switch {
	case muted || volume == 0:
		return bucketMuted
	case volume < 33:
		return bucketLow
	case volume < 66:
		return bucketMedium
	default:
		return bucketHigh
	}
}

// panelIcons holds the pre-built icon set.
type panelIcons struct {
	volumeOff  *widget.Icon
	volumeLow  *widget.Icon
	volumeMed  *widget.Icon
	volumeHigh *widget.Icon
	micOn      *widget.Icon
	micOff     *widget.Icon
	skipPrev   *widget.Icon
	skipNext   *widget.Icon
	play       *widget.Icon
	pause      *widget.Icon
	album      *widget.Icon
	settings   *widget.Icon
}

func loadPanelIcons() panelIcons {
	mk := func(data []byte) *widget.Icon {
		icon, err := widget.NewIcon(data)
		if err != nil {
			return nil
		}
		return icon
	}
	return panelIcons{
		volumeOff:  mk(icons.AVVolumeOff),
		volumeLow:  mk(icons.AVVolumeMute),
		volumeMed:  mk(icons.AVVolumeDown),
		volumeHigh: mk(icons.AVVolumeUp),
		micOn:      mk(icons.AVMic),
		micOff:     mk(icons.AVMicOff),
		skipPrev:   mk(icons.AVSkipPrevious),
		skipNext:   mk(icons.AVSkipNext),
		play:       mk(icons.AVPlayArrow),
		pause:      mk(icons.AVPause),
		album:      mk(icons.AVAlbum),
		settings:   mk(icons.ActionSettings),
	}
}

// outputIcon picks the tray/output icon for the rendered sink state.
func (a *App) outputIcon() *widget.Icon {
	switch bucketFor(a.sinkVolume(), a.model.SinkMute) {
	case bucketMuted:
		return a.icons.volumeOff
	case bucketLow:
		return a.icons.volumeLow
	case bucketMedium:
		return a.icons.volumeMed
	default:
		return a.icons.volumeHigh
	}
}

// inputIcon picks the input icon for the rendered source state.
func (a *App) inputIcon() *widget.Icon {
	if bucketFor(a.sourceVolume(), a.model.SourceMute) == bucketMuted {
		return a.icons.micOff
	}
	return a.icons.micOn
}
