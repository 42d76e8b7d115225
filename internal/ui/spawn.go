package ui

import (
	"log/slog"
	"os/exec"
)

// detachedSpawn launches an external tool without observing its outcome.
// The child is reaped in the background so it does not linger as a zombie.
func detachedSpawn(argv ...string) {
	if len(argv) == 0 {
		return
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		slog.Debug("spawn failed", "cmd", argv[0], "err", err)
		return
	}
	go func() { _ = cmd.Wait() }()
}
