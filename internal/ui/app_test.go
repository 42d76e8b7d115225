package ui

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/wavetray/wavetray/internal/audio"
	"github.com/wavetray/wavetray/internal/config"
)

// testApp builds an App without a window. The reducer never touches the
// window when it is nil, so handle/dispatch run synchronously.
type testApp struct {
	*App
	spawned [][]string
	clock   time.Time
}

func newTestApp() *testApp {
	ta := &testApp{clock: time.Unix(1000, 0)}
	ta.App = &App{
		cfg:    config.Default(),
		msgs:   make(chan Msg, 64),
		sink:   newVolumeAxis(),
		source: newVolumeAxis(),
	}
	ta.App.spawn = func(argv ...string) {
		ta.spawned = append(ta.spawned, argv)
	}
	ta.App.now = func() time.Time { return ta.clock }
	return ta
}

func (ta *testApp) advance(d time.Duration) { ta.clock = ta.clock.Add(d) }

func TestPopupOpenRecomputesRange(t *testing.T) {
	ta := newTestApp()
	ta.handle(ConfigUpdated{Config: config.Config{
		AmplificationSink: true,
		SettingsCommand:   []string{"pavucontrol"},
	}})

	ta.handle(TogglePopup{})
	if ta.popup != 1 {
		t.Fatalf("popup id = %d, want 1", ta.popup)
	}
	if ta.sink.ceiling != 150 || len(ta.sink.breakpoints) != 1 {
		t.Fatalf("sink range = (%d, %v), want amplified", ta.sink.ceiling, ta.sink.breakpoints)
	}
	if ta.source.ceiling != 100 || ta.source.breakpoints != nil {
		t.Fatalf("source range = (%d, %v), want standard", ta.source.ceiling, ta.source.breakpoints)
	}

	// Disabling amplification only takes effect at the next open.
	ta.handle(TogglePopup{})
	if ta.popup != 0 {
		t.Fatalf("popup id after close = %d, want 0", ta.popup)
	}
	ta.handle(ConfigUpdated{Config: config.Default()})
	ta.handle(TogglePopup{})
	if ta.popup != 2 {
		t.Fatalf("popup id after reopen = %d, want 2", ta.popup)
	}
	if ta.sink.ceiling != 100 || ta.sink.breakpoints != nil {
		t.Fatalf("sink range after reopen = (%d, %v), want standard", ta.sink.ceiling, ta.sink.breakpoints)
	}
}

func TestPopupDismissIgnoresStaleID(t *testing.T) {
	ta := newTestApp()
	ta.handle(TogglePopup{})
	ta.handle(TogglePopup{})
	ta.handle(TogglePopup{})
	if ta.popup != 2 {
		t.Fatalf("popup id = %d, want 2", ta.popup)
	}

	ta.handle(PopupDismissed{ID: 1})
	if ta.popup != 2 {
		t.Fatalf("stale dismissal closed popup %d", ta.popup)
	}
	ta.handle(PopupDismissed{ID: 2})
	if ta.popup != 0 {
		t.Fatalf("current dismissal left popup %d open", ta.popup)
	}
}

func TestCloseKeepsDragAndExpansion(t *testing.T) {
	ta := newTestApp()
	ta.handle(TogglePopup{})
	ta.handle(OutputToggle{})
	ta.handle(DragSink{Value: 70})

	ta.handle(TogglePopup{})
	if ta.popup != 0 {
		t.Fatalf("popup id = %d, want 0", ta.popup)
	}
	if ta.expanded != expandOutput {
		t.Fatalf("close collapsed the device list")
	}
	if !ta.sink.dragging() {
		t.Fatalf("close cleared the pending drag value")
	}
	if got := ta.sinkVolume(); got != 70 {
		t.Fatalf("rendered after close = %d, want 70", got)
	}
}

func TestExpansionMutualExclusion(t *testing.T) {
	ta := newTestApp()

	ta.handle(OutputToggle{})
	if ta.expanded != expandOutput {
		t.Fatalf("expanded = %v, want output", ta.expanded)
	}
	ta.handle(InputToggle{})
	if ta.expanded != expandInput {
		t.Fatalf("expanded = %v, want input", ta.expanded)
	}
	ta.handle(InputToggle{})
	if ta.expanded != expandNone {
		t.Fatalf("expanded = %v, want none", ta.expanded)
	}
}

func TestDragMasksDaemonUntilCommit(t *testing.T) {
	ta := newTestApp()
	ta.handle(AudioUpdated{Model: audio.Model{SinkVolume: 42}})

	ta.handle(DragSink{Value: 80})
	if got := ta.sinkVolume(); got != 80 {
		t.Fatalf("rendered during drag = %d, want 80", got)
	}

	// A daemon push mid-drag must not disturb the pending value.
	ta.handle(AudioUpdated{Model: audio.Model{SinkVolume: 37}})
	if got := ta.sinkVolume(); got != 80 {
		t.Fatalf("rendered after daemon push = %d, want 80", got)
	}

	ta.handle(CommitSink{})
	want := []string{"wpctl", "set-volume", "@DEFAULT_AUDIO_SINK@", "0.80"}
	if len(ta.spawned) != 1 || !reflect.DeepEqual(ta.spawned[0], want) {
		t.Fatalf("commit spawned %v, want %v", ta.spawned, want)
	}
	if got := ta.sinkVolume(); got != 37 {
		t.Fatalf("rendered after commit = %d, want daemon value 37", got)
	}

	ta.handle(CommitSink{})
	if len(ta.spawned) != 1 {
		t.Fatalf("commit without drag spawned %v", ta.spawned[1:])
	}
}

func TestStepSinkRateLimited(t *testing.T) {
	ta := newTestApp()
	ta.handle(AudioUpdated{Model: audio.Model{SinkVolume: 50}})

	ta.handle(StepSink{Delta: 1})
	ta.advance(10 * time.Millisecond)
	ta.handle(StepSink{Delta: 1})
	ta.advance(60 * time.Millisecond)
	ta.handle(StepSink{Delta: -1})

	want := [][]string{
		{"wpctl", "set-volume", "@DEFAULT_AUDIO_SINK@", "0.55"},
		{"wpctl", "set-volume", "@DEFAULT_AUDIO_SINK@", "0.45"},
	}
	if !reflect.DeepEqual(ta.spawned, want) {
		t.Fatalf("spawned %v, want %v", ta.spawned, want)
	}
}

func TestStepSourceIndependentLimiter(t *testing.T) {
	ta := newTestApp()
	ta.handle(AudioUpdated{Model: audio.Model{SinkVolume: 50, SourceVolume: 20}})

	ta.handle(StepSink{Delta: 1})
	ta.handle(StepSource{Delta: 1})
	want := [][]string{
		{"wpctl", "set-volume", "@DEFAULT_AUDIO_SINK@", "0.55"},
		{"wpctl", "set-volume", "@DEFAULT_AUDIO_SOURCE@", "0.25"},
	}
	if !reflect.DeepEqual(ta.spawned, want) {
		t.Fatalf("spawned %v, want %v", ta.spawned, want)
	}
}

func TestMuteCommands(t *testing.T) {
	ta := newTestApp()
	ta.handle(ToggleSinkMute{})
	ta.handle(ToggleSourceMute{})

	want := [][]string{
		{"wpctl", "set-mute", "@DEFAULT_AUDIO_SINK@", "toggle"},
		{"wpctl", "set-mute", "@DEFAULT_AUDIO_SOURCE@", "toggle"},
	}
	if !reflect.DeepEqual(ta.spawned, want) {
		t.Fatalf("spawned %v, want %v", ta.spawned, want)
	}
}

func TestMediaCommands(t *testing.T) {
	ta := newTestApp()
	for _, cmd := range []Transport{Play, Pause, Next, Previous} {
		ta.handle(Media{Cmd: cmd})
	}

	want := [][]string{
		{"playerctl", "play"},
		{"playerctl", "pause"},
		{"playerctl", "next"},
		{"playerctl", "previous"},
	}
	if !reflect.DeepEqual(ta.spawned, want) {
		t.Fatalf("spawned %v, want %v", ta.spawned, want)
	}
}

func TestOpenSettingsUsesConfiguredCommand(t *testing.T) {
	ta := newTestApp()
	ta.handle(ConfigUpdated{Config: config.Config{
		SettingsCommand: []string{"gnome-control-center", "sound"},
	}})
	ta.handle(OpenSettings{})

	want := [][]string{{"gnome-control-center", "sound"}}
	if !reflect.DeepEqual(ta.spawned, want) {
		t.Fatalf("spawned %v, want %v", ta.spawned, want)
	}
}

type fakeSelector struct {
	calls chan string
}

func (f *fakeSelector) SetDefaultSink(ctx context.Context, index int) error {
	f.calls <- fmt.Sprintf("sink:%d", index)
	return nil
}

func (f *fakeSelector) SetDefaultSource(ctx context.Context, index int) error {
	f.calls <- fmt.Sprintf("source:%d", index)
	return nil
}

func TestDefaultDeviceRoutesThroughSelector(t *testing.T) {
	ta := newTestApp()
	sel := &fakeSelector{calls: make(chan string, 2)}
	ta.devices = sel

	ta.handle(SetDefaultSink{Index: 2})
	ta.handle(SetDefaultSource{Index: 0})

	got := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case c := <-sel.calls:
			got[c] = true
		case <-time.After(time.Second):
			t.Fatalf("selector not called, got %v", got)
		}
	}
	if !got["sink:2"] || !got["source:0"] {
		t.Fatalf("selector calls = %v, want sink:2 and source:0", got)
	}
	if len(ta.spawned) != 0 {
		t.Fatalf("device selection spawned %v, want daemon API only", ta.spawned)
	}
}

func TestVolumeFraction(t *testing.T) {
	tests := []struct {
		v    int
		want string
	}{
		{0, "0.00"},
		{7, "0.07"},
		{55, "0.55"},
		{100, "1.00"},
		{150, "1.50"},
	}
	for _, tt := range tests {
		if got := volumeFraction(tt.v); got != tt.want {
			t.Fatalf("volumeFraction(%d) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
