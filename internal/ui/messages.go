package ui

import (
	"github.com/wavetray/wavetray/internal/audio"
	"github.com/wavetray/wavetray/internal/config"
	"github.com/wavetray/wavetray/internal/mpris"
)

// Msg is an application message consumed by the panel reducer. Gesture
// handlers, widget callbacks, and the external subscriptions all speak Msg;
// App.handle processes one message to completion at a time.
type Msg interface {
	msg()
}

// TogglePopup opens the popup, or closes it when already open.
type TogglePopup struct{}

// PopupDismissed reports that the host dismissed the popup surface carrying
// the given id. Stale ids (a surface that is no longer current) are ignored.
type PopupDismissed struct {
	ID PopupID
}

// OutputToggle expands or collapses the output device list.
type OutputToggle struct{}

// InputToggle expands or collapses the input device list.
type InputToggle struct{}

// DragSink is a live slider update for the output volume.
type DragSink struct {
	Value int
}

// CommitSink finalizes the pending output drag value into a command.
type CommitSink struct{}

// StepSink is a wheel-driven output adjustment. Delta is in wheel units,
// positive meaning louder.
type StepSink struct {
	Delta float32
}

// ToggleSinkMute toggles the output mute flag.
type ToggleSinkMute struct{}

// DragSource is a live slider update for the input volume.
type DragSource struct {
	Value int
}

// CommitSource finalizes the pending input drag value into a command.
type CommitSource struct{}

// StepSource is a wheel-driven input adjustment.
type StepSource struct {
	Delta float32
}

// ToggleSourceMute toggles the input mute flag.
type ToggleSourceMute struct{}

// SetDefaultSink selects a new default output device by list index.
type SetDefaultSink struct {
	Index int
}

// SetDefaultSource selects a new default input device by list index.
type SetDefaultSource struct {
	Index int
}

// Transport identifies a media player command.
type Transport int

const (
	Play Transport = iota
	Pause
	Next
	Previous
)

// Media requests a playback transport command.
type Media struct {
	Cmd Transport
}

// OpenSettings launches the system sound settings.
type OpenSettings struct{}

// AudioUpdated carries a fresh snapshot pushed by the audio daemon.
type AudioUpdated struct {
	Model audio.Model
}

// PlayerUpdated carries a media player status, nil when no player exists.
type PlayerUpdated struct {
	Status *mpris.Status
}

// ConfigUpdated carries a reloaded configuration.
type ConfigUpdated struct {
	Config config.Config
}

func (TogglePopup) msg()      {}
func (PopupDismissed) msg()   {}
func (OutputToggle) msg()     {}
func (InputToggle) msg()      {}
func (DragSink) msg()         {}
func (CommitSink) msg()       {}
func (StepSink) msg()         {}
func (ToggleSinkMute) msg()   {}
func (DragSource) msg()       {}
func (CommitSource) msg()     {}
func (StepSource) msg()       {}
func (ToggleSourceMute) msg() {}
func (SetDefaultSink) msg()   {}
func (SetDefaultSource) msg() {}
func (Media) msg()            {}
func (OpenSettings) msg()     {}
func (AudioUpdated) msg()     {}
func (PlayerUpdated) msg()    {}
func (ConfigUpdated) msg()    {}
