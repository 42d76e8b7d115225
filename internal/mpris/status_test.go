package mpris

import (
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestParsePlayback(t *testing.T) {
	cases := []struct {
		in   string
		want Playback
	}{
		{"Playing", Playing},
		{"Paused", Paused},
		{"Stopped", Stopped},
		{"", Stopped},
		{"weird", Stopped},
	}
	for _, tc := range cases {
		if got := ParsePlayback(tc.in); got != tc.want {
			t.Fatalf("ParsePlayback(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestStatusFromProps(t *testing.T) {
	props := map[string]dbus.Variant{
		"PlaybackStatus": dbus.MakeVariant("Playing"),
		"CanGoNext":      dbus.MakeVariant(true),
		"CanGoPrevious":  dbus.MakeVariant(false),
		"Metadata": dbus.MakeVariant(map[string]dbus.Variant{
			"xesam:title":  dbus.MakeVariant("Harvest Moon"),
			"xesam:artist": dbus.MakeVariant([]string{"Neil Young"}),
			"mpris:artUrl": dbus.MakeVariant("file:///tmp/art%20work.png"),
		}),
	}

	st := StatusFromProps(props)
	if st.Playback != Playing {
		t.Fatalf("Playback = %v, want Playing", st.Playback)
	}
	if !st.CanGoNext || st.CanGoPrevious {
		t.Fatalf("capabilities = (%v, %v), want (true, false)", st.CanGoNext, st.CanGoPrevious)
	}
	if st.Title != "Harvest Moon" {
		t.Fatalf("Title = %q", st.Title)
	}
	if len(st.Artists) != 1 || st.Artists[0] != "Neil Young" {
		t.Fatalf("Artists = %v", st.Artists)
	}
	if st.ArtPath != "/tmp/art work.png" {
		t.Fatalf("ArtPath = %q", st.ArtPath)
	}
}

func TestStatusFromPropsEmpty(t *testing.T) {
	st := StatusFromProps(map[string]dbus.Variant{})
	if st.Playback != Stopped || st.Title != "" || st.ArtPath != "" {
		t.Fatalf("empty props should produce zero status, got %+v", st)
	}
}

func TestLocalArtPath(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"file:///home/u/cover.jpg", "/home/u/cover.jpg"},
		{"https://example.com/cover.jpg", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := localArtPath(tc.in); got != tc.want {
			t.Fatalf("localArtPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
