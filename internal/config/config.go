package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// PollSeconds is the rescan interval for hot-plug detection; fsnotify
	// usually reacts first, the ticker is the fallback.
	PollSeconds int  `yaml:"poll_seconds"`
	DBusExport  bool `yaml:"dbus_export"`
	// Per-stick configuration keyed by serial number
	Sticks map[string]StickConfig `yaml:"sticks,omitempty"`
}

type StickConfig struct {
	// CopyStateTimeoutMs bounds the one-shot report read at hot-plug time.
	CopyStateTimeoutMs int `yaml:"copystate_timeout_ms,omitempty"`
}

// StickConfig returns the configuration for a specific stick serial.
// If a per-serial config is not present or fields are zero, fall back to defaults.
func (c *Config) StickConfig(serial string) *StickConfig {
	res := &StickConfig{
		CopyStateTimeoutMs: 250,
	}

	if c.Sticks == nil {
		return res
	}

	if sc, ok := c.Sticks[serial]; ok {
		if sc.CopyStateTimeoutMs != 0 {
			res.CopyStateTimeoutMs = sc.CopyStateTimeoutMs
		}
	}

	return res
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(home, ".config", "hosas-mgr")
	_ = os.MkdirAll(path, 0755)
	return filepath.Join(path, "config.yaml"), nil
}

func Save(conf *Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(conf)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	conf := &Config{
		PollSeconds: 2,
		DBusExport:  true,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		err = Save(conf)
		if err != nil {
			return nil, err
		}
		return conf, nil
	}

	err = yaml.Unmarshal(data, conf)
	if err != nil {
		return nil, err
	}

	if conf.PollSeconds <= 0 {
		conf.PollSeconds = 2
	}

	return conf, nil
}
