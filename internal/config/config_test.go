package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileMissingYieldsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFile returned error for missing file: %v", err)
	}
	if cfg.AmplificationSink || cfg.AmplificationSource {
		t.Fatalf("defaults enable amplification: %+v", cfg)
	}
	if len(cfg.SettingsCommand) == 0 {
		t.Fatalf("default settings command is empty")
	}
}

func TestLoadFileParsesFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "amplification_sink: true\nsettings_command: [\"cosmic-settings\", \"sound\"]\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !cfg.AmplificationSink {
		t.Fatalf("amplification_sink not parsed")
	}
	if cfg.AmplificationSource {
		t.Fatalf("amplification_source should default to false")
	}
	if len(cfg.SettingsCommand) != 2 || cfg.SettingsCommand[0] != "cosmic-settings" {
		t.Fatalf("settings_command = %v", cfg.SettingsCommand)
	}
}

func TestLoadFileBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
