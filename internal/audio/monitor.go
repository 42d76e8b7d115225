package audio

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
)

// runFunc executes a query tool and returns its combined stdout.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRun(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Monitor keeps a Model in sync with the audio daemon and pushes a fresh
// snapshot on Updates whenever the daemon reports a change.
type Monitor struct {
	run     runFunc
	updates chan Model

	mu   sync.Mutex
	last Model
}

// NewMonitor returns a monitor backed by the wpctl/pactl tools.
func NewMonitor() *Monitor {
	return &Monitor{run: execRun, updates: make(chan Model, 1)}
}

// Updates delivers a Model after every observed daemon change. Snapshots
// are conflated: only the latest unread snapshot is retained.
func (m *Monitor) Updates() <-chan Model {
	return m.updates
}

// SetDefaultSink asks the daemon to switch the default output device. The
// index refers to the ordered sink list of the last snapshot.
func (m *Monitor) SetDefaultSink(ctx context.Context, index int) error {
	m.mu.Lock()
	sinks := m.last.Sinks
	m.mu.Unlock()
	if index < 0 || index >= len(sinks) {
		return fmt.Errorf("sink index %d out of range", index)
	}
	_, err := m.run(ctx, "pactl", "set-default-sink", sinks[index].Name)
	return err
}

// SetDefaultSource asks the daemon to switch the default input device.
func (m *Monitor) SetDefaultSource(ctx context.Context, index int) error {
	m.mu.Lock()
	sources := m.last.Sources
	m.mu.Unlock()
	if index < 0 || index >= len(sources) {
		return fmt.Errorf("source index %d out of range", index)
	}
	_, err := m.run(ctx, "pactl", "set-default-source", sources[index].Name)
	return err
}

// Run takes the initial snapshot and then follows `pactl subscribe` until
// ctx is cancelled or the subscription ends.
func (m *Monitor) Run(ctx context.Context) error {
	if model, err := m.Snapshot(ctx); err == nil {
		m.publish(model)
	} else {
		slog.Warn("audio snapshot failed", "err", err)
	}

	cmd := exec.CommandContext(ctx, "pactl", "subscribe")
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start pactl subscribe: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		if !relevantEvent(scanner.Text()) {
			continue
		}
		model, err := m.Snapshot(ctx)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			slog.Warn("audio snapshot failed", "err", err)
			continue
		}
		m.publish(model)
	}
	return cmd.Wait()
}

// relevantEvent reports whether a pactl subscribe line can affect the model.
func relevantEvent(line string) bool {
	for _, kind := range []string{"sink", "source", "server", "card"} {
		if strings.Contains(line, "on "+kind) {
			return true
		}
	}
	return false
}

func (m *Monitor) publish(model Model) {
	m.mu.Lock()
	m.last = model
	m.mu.Unlock()
	// Conflate: drop the stale unread snapshot, keep the new one.
	select {
	case <-m.updates:
	default:
	}
	m.updates <- model
}

// Snapshot queries the daemon tools and assembles a Model.
func (m *Monitor) Snapshot(ctx context.Context) (Model, error) {
	model := Model{ActiveSink: -1, ActiveSource: -1}

	out, err := m.run(ctx, "wpctl", "get-volume", "@DEFAULT_AUDIO_SINK@")
	if err != nil {
		return model, fmt.Errorf("query sink volume: %w", err)
	}
	if model.SinkVolume, model.SinkMute, err = ParseWpctlVolume(string(out)); err != nil {
		return model, err
	}

	out, err = m.run(ctx, "wpctl", "get-volume", "@DEFAULT_AUDIO_SOURCE@")
	if err != nil {
		return model, fmt.Errorf("query source volume: %w", err)
	}
	if model.SourceVolume, model.SourceMute, err = ParseWpctlVolume(string(out)); err != nil {
		return model, err
	}

	if out, err = m.run(ctx, "pactl", "--format=json", "list", "sinks"); err == nil {
		if devs, perr := ParseDeviceList(out); perr == nil {
			model.Sinks = devs
		}
	}
	if out, err = m.run(ctx, "pactl", "--format=json", "list", "sources"); err == nil {
		if devs, perr := ParseDeviceList(out); perr == nil {
			model.Sources = devs
		}
	}
	if out, err = m.run(ctx, "pactl", "get-default-sink"); err == nil {
		model.ActiveSink = DeviceIndex(model.Sinks, string(out))
	}
	if out, err = m.run(ctx, "pactl", "get-default-source"); err == nil {
		model.ActiveSource = DeviceIndex(model.Sources, string(out))
	}
	return model, nil
}
