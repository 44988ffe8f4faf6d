package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config file locations.
const (
	// GlobalConfigDir is the XDG config directory name
	GlobalConfigDir = "flagreveal"
	// GlobalConfigFile is the global config file name
	GlobalConfigFile = "config.yaml"
	// ProjectConfigDir is the project-local config directory
	ProjectConfigDir = ".flagreveal"
	// ProjectConfigFile is the project-local config file name
	ProjectConfigFile = "config.yaml"

	// EnvPrefix prefixes every environment variable flagreveal reads.
	EnvPrefix = "FLAGREVEAL"
	// ConfigKey holds the explicit config file path (--config).
	ConfigKey = "config"
)

// FlagKeys maps the flat command-line flags to the nested keys they set.
// FLAGREVEAL_<FLAG> environment variables set the same keys.
var FlagKeys = map[string]string{
	"endpoint":         "fetch.endpoint",
	"timeout":          "fetch.timeout",
	"interval":         "reveal.interval",
	"exit-on-complete": "reveal.exit_on_complete",
	"log-dir":          "paths.log_dir",
	"events-file":      "paths.events",
	"metrics-file":     "paths.metrics",
}

// BindFlags binds the flags of fs that appear in FlagKeys to their nested
// keys. A bound flag only wins when it was set on the command line.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range FlagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

// LoadConfig resolves the configuration from every source and validates the
// result once. Precedence (later overrides earlier):
//  1. Default() values
//  2. ~/.config/flagreveal/config.yaml (global)
//  3. .flagreveal/config.yaml (project)
//  4. the file named by the "config" key
//  5. FLAGREVEAL_* environment variables, nested (FLAGREVEAL_FETCH_ENDPOINT)
//     or flat (FLAGREVEAL_ENDPOINT)
//  6. flags bound with BindFlags, and values v.Set by the caller
//
// Missing global and project files are ignored; a missing explicit file is
// an error.
func LoadConfig(v *viper.Viper) (*Config, error) {
	if err := setDefaults(v); err != nil {
		return nil, err
	}
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	for _, path := range configFiles(v.GetString(ConfigKey)) {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	hook := viper.DecodeHook(mapstructure.StringToTimeDurationHookFunc())
	if err := v.Unmarshal(cfg, hook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers Default() as the lowest-precedence layer, one
// section at a time, using the same YAML encoding as the config files.
func setDefaults(v *viper.Viper) error {
	data, err := Default().YAML()
	if err != nil {
		return err
	}
	var sections map[string]any
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return fmt.Errorf("decode defaults: %w", err)
	}
	for name, values := range sections {
		v.SetDefault(name, values)
	}
	return nil
}

// bindEnv lets the flat flag names double as environment variables.
func bindEnv(v *viper.Viper) error {
	for name, key := range FlagKeys {
		nested := EnvPrefix + "_" + envName(key)
		flat := EnvPrefix + "_" + envName(name)
		if err := v.BindEnv(key, nested, flat); err != nil {
			return fmt.Errorf("bind env %s: %w", flat, err)
		}
	}
	return nil
}

func envName(key string) string {
	return strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

// configFiles lists the config files to merge, lowest precedence first.
func configFiles(explicit string) []string {
	var files []string
	if path := globalConfigPath(); path != "" {
		files = append(files, path)
	}
	if path := projectConfigPath(); path != "" {
		files = append(files, path)
	}
	if explicit != "" {
		files = append(files, explicit)
	}
	return files
}

// globalConfigPath returns the global config file path if it exists.
func globalConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".config")
	}
	return existing(filepath.Join(configDir, GlobalConfigDir, GlobalConfigFile))
}

// projectConfigPath returns the project config file path if it exists.
func projectConfigPath() string {
	return existing(filepath.Join(ProjectConfigDir, ProjectConfigFile))
}

func existing(path string) string {
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
