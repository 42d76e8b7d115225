// Package mpris follows the session-bus media player and reports its
// playback status. Transport commands do not go through this package; the
// panel spawns playerctl directly.
package mpris

import (
	"net/url"
	"strings"

	"github.com/godbus/dbus/v5"
)

// Playback mirrors the MPRIS PlaybackStatus property.
type Playback int

const (
	Stopped Playback = iota
	Playing
	Paused
)

// Status is one push update from the active media player.
type Status struct {
	Playback      Playback
	Title         string
	Artists       []string
	ArtPath       string // local artwork file, empty when unavailable
	CanGoNext     bool
	CanGoPrevious bool
}

// ParsePlayback maps a PlaybackStatus string onto Playback. Unknown values
// count as stopped.
func ParsePlayback(s string) Playback {
	switch s {
	case "Playing":
		return Playing
	case "Paused":
		return Paused
	default:
		return Stopped
	}
}

// StatusFromProps assembles a Status from the player's property map
// (org.mpris.MediaPlayer2.Player GetAll result).
func StatusFromProps(props map[string]dbus.Variant) Status {
	var st Status
	if v, ok := props["PlaybackStatus"]; ok {
		if s, ok := v.Value().(string); ok {
			st.Playback = ParsePlayback(s)
		}
	}
	if v, ok := props["CanGoNext"]; ok {
		st.CanGoNext, _ = v.Value().(bool)
	}
	if v, ok := props["CanGoPrevious"]; ok {
		st.CanGoPrevious, _ = v.Value().(bool)
	}
	if v, ok := props["Metadata"]; ok {
		if md, ok := v.Value().(map[string]dbus.Variant); ok {
			st.Title, st.Artists, st.ArtPath = parseMetadata(md)
		}
	}
	return st
}

// parseMetadata extracts the xesam/mpris fields the panel displays.
func parseMetadata(md map[string]dbus.Variant) (title string, artists []string, artPath string) {
	if v, ok := md["xesam:title"]; ok {
		title, _ = v.Value().(string)
	}
	if v, ok := md["xesam:artist"]; ok {
		switch a := v.Value().(type) {
		case []string:
			artists = a
		case string:
			if a != "" {
				artists = []string{a}
			}
		}
	}
	if v, ok := md["mpris:artUrl"]; ok {
		if s, ok := v.Value().(string); ok {
			artPath = localArtPath(s)
		}
	}
	return title, artists, artPath
}

// localArtPath converts a file:// artwork URL to a filesystem path. Remote
// artwork is ignored; the panel shows a placeholder instead of fetching.
func localArtPath(raw string) string {
	if !strings.HasPrefix(raw, "file://") {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Path
}
