// Package audio tracks the state of the system audio daemon.
//
// The daemon is observed through its command-line tools: wpctl for the
// default sink/source volume and mute state, pactl for device enumeration
// and change notifications. Volume and mute *changes* are not issued here;
// they are spawned directly by the panel (see internal/ui). Only
// default-device selection goes through this package, mirroring the split
// between the daemon's command API and the wpctl shortcuts.
package audio

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Device is one entry of an ordered sink or source list.
type Device struct {
	Name        string
	Description string
}

// Model is the last snapshot pushed by the daemon. Volumes are percentages
// and may exceed 100 when the daemon amplifies.
type Model struct {
	SinkVolume   int
	SourceVolume int
	SinkMute     bool
	SourceMute   bool
	Sinks        []Device
	Sources      []Device
	ActiveSink   int // index into Sinks, -1 when unknown
	ActiveSource int // index into Sources, -1 when unknown
}

// ParseWpctlVolume parses `wpctl get-volume` output of the form
// "Volume: 0.45" or "Volume: 1.50 [MUTED]".
func ParseWpctlVolume(out string) (volume int, muted bool, err error) {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) < 2 || fields[0] != "Volume:" {
		return 0, false, fmt.Errorf("unexpected wpctl output %q", out)
	}
	f, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, false, fmt.Errorf("unexpected wpctl volume %q: %w", fields[1], err)
	}
	muted = len(fields) > 2 && fields[2] == "[MUTED]"
	return int(math.Round(f * 100)), muted, nil
}

// pactlDevice is the subset of `pactl --format=json list` we consume.
type pactlDevice struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ParseDeviceList parses `pactl --format=json list sinks` (or sources) into
// an ordered device list.
func ParseDeviceList(data []byte) ([]Device, error) {
	var raw []pactlDevice
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse pactl device list: %w", err)
	}
	devs := make([]Device, 0, len(raw))
	for _, d := range raw {
		desc := d.Description
		if desc == "" {
			desc = d.Name
		}
		devs = append(devs, Device{Name: d.Name, Description: desc})
	}
	return devs, nil
}

// DeviceIndex locates the device with the given daemon name, -1 if absent.
func DeviceIndex(devs []Device, name string) int {
	name = strings.TrimSpace(name)
	for i, d := range devs {
		if d.Name == name {
			return i
		}
	}
	return -1
}

// ActiveSinkDevice returns the current default sink, if known.
func (m Model) ActiveSinkDevice() (Device, bool) {
	if m.ActiveSink < 0 || m.ActiveSink >= len(m.Sinks) {
		return Device{}, false
	}
	return m.Sinks[m.ActiveSink], true
}

// ActiveSourceDevice returns the current default source, if known.
func (m Model) ActiveSourceDevice() (Device, bool) {
	if m.ActiveSource < 0 || m.ActiveSource >= len(m.Sources) {
		return Device{}, false
	}
	return m.Sources[m.ActiveSource], true
}
