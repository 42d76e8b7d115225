// Package ui implements the wavetray panel: a tray icon with a popup
// holding volume sliders, device lists, and media controls.
package ui

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget"
	"github.com/oligo/gioview/theme"

	"github.com/wavetray/wavetray/internal/audio"
	"github.com/wavetray/wavetray/internal/config"
	"github.com/wavetray/wavetray/internal/mpris"
)

// PopupID identifies one transient popup surface. Zero means no popup.
type PopupID uint64

// expandState selects which device list is expanded. At most one of the
// two lists may be open at a time.
type expandState int

const (
	expandNone expandState = iota
	expandOutput
	expandInput
)

// DeviceSelector issues default-device changes through the daemon's own
// command API. Volume and mute deliberately bypass it (direct wpctl
// spawns), mirroring the daemon tooling's own split.
type DeviceSelector interface {
	SetDefaultSink(ctx context.Context, index int) error
	SetDefaultSource(ctx context.Context, index int) error
}

// App owns all panel state and processes one message at a time on the
// window event loop. External streams post messages through a channel that
// is drained at the start of every frame, so there is no concurrent
// mutation and no locking.
type App struct {
	window *app.Window
	ops    op.Ops
	gv     *theme.Theme

	verbose bool

	cfg    config.Config
	model  audio.Model
	player *mpris.Status

	msgs    chan Msg
	devices DeviceSelector
	spawn   func(argv ...string)
	now     func() time.Time

	popup      PopupID
	lastPopup  PopupID
	reveal     timeline
	expandAnim timeline
	expanded   expandState
	sink      volumeAxis
	source    volumeAxis

	iconArea      *MouseArea
	iconBtn       widget.Clickable
	sinkRowArea   *MouseArea
	sourceRowArea *MouseArea
	sinkSlider    VolumeSlider
	sourceSlider  VolumeSlider

	sinkMuteBtn      widget.Clickable
	sourceMuteBtn    widget.Clickable
	outputHeaderBtn  widget.Clickable
	inputHeaderBtn   widget.Clickable
	sinkDeviceBtns   []widget.Clickable
	sourceDeviceBtns []widget.Clickable
	prevBtn          widget.Clickable
	playPauseBtn     widget.Clickable
	nextBtn          widget.Clickable
	settingsBtn      widget.Clickable
	scrim            widget.Clickable

	icons panelIcons
	art   artCache
}

// New wires the Gio window and panel state together.
func New(w *app.Window) *App {
	a := &App{
		window: w,
		gv:     theme.NewTheme("", nil, true),
		cfg:    config.Default(),
		msgs:   make(chan Msg, 64),
		spawn:  detachedSpawn,
		now:    time.Now,
		sink:   newVolumeAxis(),
		source: newVolumeAxis(),
		icons:  loadPanelIcons(),
	}
	// Scroll deltas grow downward in Gio; wheel-up should raise the volume.
	a.iconArea = NewMouseArea(a.layoutIconButton).OnWheel(func(s f32.Point) Msg {
		return StepSink{Delta: -s.Y}
	})
	a.sinkRowArea = NewMouseArea(a.layoutSinkRow).OnWheel(func(s f32.Point) Msg {
		return StepSink{Delta: -s.Y}
	})
	a.sourceRowArea = NewMouseArea(a.layoutSourceRow).OnWheel(func(s f32.Point) Msg {
		return StepSource{Delta: -s.Y}
	})
	return a
}

// Run launches the panel UI and blocks until the window closes.
func Run(verbose bool) error {
	go func() {
		w := new(app.Window)
		w.Option(app.Title("wavetray"), app.Size(unit.Dp(340), unit.Dp(600)))
		a := New(w)
		a.verbose = verbose
		if err := a.Main(context.Background()); err != nil {
			log.Printf("ui: %v", err)
		}
		os.Exit(0)
	}()

	app.Main()
	return nil
}

// Main starts the external collaborators and processes window events until
// the window closes.
func (a *App) Main(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	monitor := audio.NewMonitor()
	a.devices = monitor
	go func() {
		if err := monitor.Run(ctx); err != nil && ctx.Err() == nil {
			slog.Warn("audio monitor stopped", "err", err)
		}
	}()
	go func() {
		for model := range monitor.Updates() {
			a.post(AudioUpdated{Model: model})
		}
	}()

	player := mpris.NewWatcher()
	go func() {
		if err := player.Run(ctx); err != nil && ctx.Err() == nil {
			slog.Warn("media watcher stopped", "err", err)
		}
	}()
	go func() {
		for upd := range player.Updates() {
			a.post(PlayerUpdated{Status: upd.Status})
		}
	}()

	if path, err := config.Path(); err == nil {
		if updates, werr := config.Watch(ctx, path); werr == nil {
			go func() {
				for cfg := range updates {
					a.post(ConfigUpdated{Config: cfg})
				}
			}()
		} else {
			slog.Warn("config watch unavailable", "err", werr)
			if cfg, lerr := config.LoadFile(path); lerr == nil {
				a.post(ConfigUpdated{Config: cfg})
			}
		}
	}

	a.Logf("[BOOT] panel initialized")
	return a.loop()
}

// loop processes Gio events until the window is closed.
func (a *App) loop() error {
	for {
		e := a.window.Event()
		switch ev := e.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&a.ops, ev)
			a.drain()
			a.frame(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}

// drain consumes all pending external messages before layout.
func (a *App) drain() {
	for {
		select {
		case msg := <-a.msgs:
			a.handle(msg)
		default:
			return
		}
	}
}

// post delivers a message from a collaborator goroutine and wakes the
// window.
func (a *App) post(msg Msg) {
	a.msgs <- msg
	if a.window != nil {
		a.window.Invalidate()
	}
}

// dispatch handles a message emitted by a widget on the event loop.
func (a *App) dispatch(msg Msg) {
	a.handle(msg)
	if a.window != nil {
		a.window.Invalidate()
	}
}

// handle is the panel reducer: it processes one message to completion.
// External side effects are fire-and-forget; their outcome is never
// observed.
func (a *App) handle(msg Msg) {
	switch m := msg.(type) {
	case DragSink:
		a.sink.setPending(m.Value)
	case DragSource:
		a.source.setPending(m.Value)

	case CommitSink:
		if v, ok := a.sink.commit(); ok {
			a.spawn("wpctl", "set-volume", "@DEFAULT_AUDIO_SINK@", volumeFraction(v))
		}
	case CommitSource:
		if v, ok := a.source.commit(); ok {
			a.spawn("wpctl", "set-volume", "@DEFAULT_AUDIO_SOURCE@", volumeFraction(v))
		}

	case StepSink:
		if v, ok := a.sink.directStep(a.model.SinkVolume, m.Delta, a.now()); ok {
			a.spawn("wpctl", "set-volume", "@DEFAULT_AUDIO_SINK@", volumeFraction(v))
		}
	case StepSource:
		if v, ok := a.source.directStep(a.model.SourceVolume, m.Delta, a.now()); ok {
			a.spawn("wpctl", "set-volume", "@DEFAULT_AUDIO_SOURCE@", volumeFraction(v))
		}

	case ToggleSinkMute:
		a.spawn("wpctl", "set-mute", "@DEFAULT_AUDIO_SINK@", "toggle")
	case ToggleSourceMute:
		a.spawn("wpctl", "set-mute", "@DEFAULT_AUDIO_SOURCE@", "toggle")

	case SetDefaultSink:
		a.selectDevice(m.Index, true)
	case SetDefaultSource:
		a.selectDevice(m.Index, false)

	case OutputToggle:
		if a.expanded == expandOutput {
			a.expanded = expandNone
		} else {
			a.expanded = expandOutput
			a.expandAnim.restart(a.now())
		}
	case InputToggle:
		if a.expanded == expandInput {
			a.expanded = expandNone
		} else {
			a.expanded = expandInput
			a.expandAnim.restart(a.now())
		}

	case TogglePopup:
		if a.popup != 0 {
			a.Logf("[POPUP] close %d", a.popup)
			a.popup = 0
			a.reveal.reset()
			return
		}
		a.lastPopup++
		a.popup = a.lastPopup
		a.reveal.restart(a.now())
		a.sink.configure(a.cfg.AmplificationSink)
		a.source.configure(a.cfg.AmplificationSource)
		a.Logf("[POPUP] open %d (sink ceiling %d, source ceiling %d)", a.popup, a.sink.ceiling, a.source.ceiling)
	case PopupDismissed:
		if m.ID == a.popup {
			a.popup = 0
			a.reveal.reset()
		}

	case Media:
		verb := ""
		switch m.Cmd {
		case Play:
			verb = "play"
		case Pause:
			verb = "pause"
		case Next:
			verb = "next"
		case Previous:
			verb = "previous"
		}
		if verb != "" {
			a.spawn("playerctl", verb)
		}
	case OpenSettings:
		if len(a.cfg.SettingsCommand) > 0 {
			a.spawn(a.cfg.SettingsCommand...)
		}

	case AudioUpdated:
		a.model = m.Model
	case PlayerUpdated:
		a.player = m.Status
	case ConfigUpdated:
		a.cfg = m.Config
	}
}

// selectDevice routes a default-device change through the daemon API. The
// call runs off the event loop; a failure is logged and otherwise silent.
func (a *App) selectDevice(index int, sink bool) {
	if a.devices == nil {
		return
	}
	devices := a.devices
	go func() {
		var err error
		if sink {
			err = devices.SetDefaultSink(context.Background(), index)
		} else {
			err = devices.SetDefaultSource(context.Background(), index)
		}
		if err != nil {
			slog.Warn("default device change failed", "sink", sink, "index", index, "err", err)
		}
	}()
}

// sinkVolume is the output volume shown to the user: the pending drag value
// masks the daemon-reported one.
func (a *App) sinkVolume() int {
	return a.sink.rendered(a.model.SinkVolume)
}

// sourceVolume is the input volume shown to the user.
func (a *App) sourceVolume() int {
	return a.source.rendered(a.model.SourceVolume)
}

// volumeFraction renders a percentage as the two-decimal fraction the wpctl
// CLI expects.
func volumeFraction(v int) string {
	return fmt.Sprintf("%.2f", float64(v)/100.0)
}

// Logf prints verbose trace lines.
func (a *App) Logf(format string, args ...any) {
	if a.verbose {
		log.Printf(format, args...)
	}
}
