package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// DefaultPath is the zippy.yaml read from the working directory when no
	// other file is named.
	DefaultPath = "./zippy.yaml"
	// EnvPath names the variable holding the config file path.
	EnvPath = "ZIPPY_CONFIG"
)

// Load builds the zippy settings. A ZIPPY_* variable beats the YAML value,
// which beats the env-default tag. The YAML file is path, else $ZIPPY_CONFIG,
// else DefaultPath; only a missing DefaultPath is tolerated.
func Load(path string) (*Config, error) {
	path, required := filePath(path)

	var cfg Config
	switch _, err := os.Stat(path); {
	case err == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case required:
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// filePath resolves the YAML file to read and whether it must exist.
func filePath(path string) (string, bool) {
	if path != "" {
		return path, true
	}
	if env := os.Getenv(EnvPath); env != "" {
		return env, true
	}
	return DefaultPath, false
}
