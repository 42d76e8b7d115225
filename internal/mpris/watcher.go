package mpris

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/godbus/dbus/v5"
)

const (
	busPrefix  = "org.mpris.MediaPlayer2."
	objectPath = "/org/mpris/MediaPlayer2"
	playerIfc  = "org.mpris.MediaPlayer2.Player"
)

// Update is a push notification about the active player. Status is nil when
// no player is available.
type Update struct {
	Status *Status
}

// Watcher follows MPRIS players on the session bus.
type Watcher struct {
	updates chan Update
}

// NewWatcher returns an unstarted watcher.
func NewWatcher() *Watcher {
	return &Watcher{updates: make(chan Update, 1)}
}

// Updates delivers player status changes. Updates are conflated: only the
// latest unread one is retained.
func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// Run connects to the session bus and follows player lifecycle and property
// changes until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface("org.freedesktop.DBus.Properties"),
		dbus.WithMatchMember("PropertiesChanged"),
		dbus.WithMatchObjectPath(objectPath),
	); err != nil {
		return err
	}
	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface("org.freedesktop.DBus"),
		dbus.WithMatchMember("NameOwnerChanged"),
	); err != nil {
		return err
	}

	signals := make(chan *dbus.Signal, 16)
	conn.Signal(signals)

	player := w.pickPlayer(conn)
	w.refresh(conn, player)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig, ok := <-signals:
			if !ok {
				return nil
			}
			switch sig.Name {
			case "org.freedesktop.DBus.NameOwnerChanged":
				if len(sig.Body) < 1 {
					continue
				}
				name, _ := sig.Body[0].(string)
				if !strings.HasPrefix(name, busPrefix) {
					continue
				}
				player = w.pickPlayer(conn)
				w.refresh(conn, player)
			case "org.freedesktop.DBus.Properties.PropertiesChanged":
				if player == "" {
					continue
				}
				w.refresh(conn, player)
			}
		}
	}
}

// pickPlayer returns the preferred MPRIS bus name, empty when none exist.
// Names are sorted so the choice is stable across restarts.
func (w *Watcher) pickPlayer(conn *dbus.Conn) string {
	var names []string
	if err := conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names); err != nil {
		slog.Warn("mpris list names failed", "err", err)
		return ""
	}
	var players []string
	for _, n := range names {
		if strings.HasPrefix(n, busPrefix) {
			players = append(players, n)
		}
	}
	if len(players) == 0 {
		return ""
	}
	sort.Strings(players)
	return players[0]
}

// refresh queries the player's properties and publishes the result. A
// missing player publishes a nil status so the media block is hidden.
func (w *Watcher) refresh(conn *dbus.Conn, player string) {
	if player == "" {
		w.publish(Update{})
		return
	}
	var props map[string]dbus.Variant
	obj := conn.Object(player, objectPath)
	if err := obj.Call("org.freedesktop.DBus.Properties.GetAll", 0, playerIfc).Store(&props); err != nil {
		slog.Warn("mpris property query failed", "player", player, "err", err)
		w.publish(Update{})
		return
	}
	st := StatusFromProps(props)
	w.publish(Update{Status: &st})
}

func (w *Watcher) publish(u Update) {
	select {
	case <-w.updates:
	default:
	}
	w.updates <- u
}
