// Package config loads and watches the applet configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user-tunable applet settings.
type Config struct {
	// AmplificationSink allows driving the output volume above 100%.
	AmplificationSink bool `yaml:"amplification_sink"`
	// AmplificationSource allows driving the input volume above 100%.
	AmplificationSource bool `yaml:"amplification_source"`
	// SettingsCommand is spawned by the sound-settings row in the popup.
	SettingsCommand []string `yaml:"settings_command"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		SettingsCommand: []string{"pavucontrol"},
	}
}

// Path returns the location of the config file.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "wavetray", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wavetray", "config.yaml"), nil
}

// Load reads the config file, falling back to defaults when it is absent.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile reads a config file from an explicit path. A missing file is not
// an error; it yields the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if len(cfg.SettingsCommand) == 0 {
		cfg.SettingsCommand = Default().SettingsCommand
	}
	return cfg, nil
}
