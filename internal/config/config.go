// Package config loads cmd/arm64cg's optional TOML configuration file.
// Grounded on lookbusy1344-arm_emulator/config/config.go: a plain struct
// decoded with BurntSushi/toml, defaults filled in before the file (if
// any) is read, so keys the file does not set keep their default values.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the backend driver's tunable surface, spec §2 "Configuration".
type Config struct {
	Backend struct {
		Platform    string `toml:"platform"`     // "darwin" or "linux"
		CallingConv string `toml:"calling_conv"` // "aapcs64", "fast", "preserve_all", "cold"
		Variadic    bool   `toml:"variadic"`
	} `toml:"backend"`

	Log struct {
		Level string `toml:"level"` // logrus level name
	} `toml:"log"`
}

// Default returns the configuration cmd/arm64cg uses when no file is
// given or the file doesn't exist.
func Default() *Config {
	cfg := &Config{}
	cfg.Backend.Platform = "linux"
	cfg.Backend.CallingConv = "aapcs64"
	cfg.Backend.Variadic = false
	cfg.Log.Level = "info"
	return cfg
}

// Load reads path into a Default()-seeded Config. A missing path is not
// an error: the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}
