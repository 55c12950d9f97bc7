// Package config holds process-wide defaults. The loaded Config value is
// passed into the adapters explicitly; nothing reads it as ambient state.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	appDir     = "timecard"
	configFile = "config.yaml"

	// DefaultOrg is the GitHub organization scanned when none is
	// configured.
	DefaultOrg = "vatfree"
	// DefaultHuddlesPath is where the Slack export is expected.
	DefaultHuddlesPath = "~/Downloads"
)

// Config carries the operator's defaults for a run. Flags override env,
// env overrides the config file, the file overrides built-in defaults.
type Config struct {
	Org              string `yaml:"org"`
	SlackUserID      string `yaml:"slack_user_id"`
	SlackHuddlesPath string `yaml:"slack_huddles_path"`
}

// Path returns the config file location under the user config directory.
func Path() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not locate user config directory: %w", err)
	}
	return filepath.Join(base, appDir, configFile), nil
}

// Load builds the effective configuration from defaults, the config file
// and the environment. A missing config file is not an error. A .env file
// in the working directory is honored before the environment is read.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Org:              DefaultOrg,
		SlackHuddlesPath: DefaultHuddlesPath,
	}

	path, err := Path()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("could not read config file %s: %w", path, err)
	}

	if v := os.Getenv("TIMECARD_ORG"); v != "" {
		cfg.Org = v
	}
	if v := os.Getenv("SLACK_USER_ID"); v != "" {
		cfg.SlackUserID = v
	}
	if v := os.Getenv("SLACK_HUDDLES_PATH"); v != "" {
		cfg.SlackHuddlesPath = v
	}
	return cfg, nil
}

// Save writes the configuration file, creating the directory as needed.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("could not encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("could not write config file %s: %w", path, err)
	}
	return nil
}
