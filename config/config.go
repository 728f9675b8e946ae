// Package config loads the peergen configuration.
//
// Sources in precedence order (lowest to highest): built-in defaults,
// the user file ~/.peergen.toml, a project peergen.toml found by walking
// up from the working directory, then PEERGEN_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/peergen/errors"
	"github.com/teranos/peergen/version"
)

// Config represents the peergen configuration
type Config struct {
	Model  ModelConfig  `mapstructure:"model"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
}

// ModelConfig locates and gates the protocol metamodel
type ModelConfig struct {
	Path              string `mapstructure:"path"`               // metamodel JSON path
	VersionConstraint string `mapstructure:"version_constraint"` // semver range the model version must satisfy ("" accepts any)
}

// OutputConfig shapes the generated artifacts
type OutputConfig struct {
	Dir         string `mapstructure:"dir"`          // directory the artifacts are written to
	TypesModule string `mapstructure:"types_module"` // module name of the shared types artifact
	Attribution string `mapstructure:"attribution"`  // tool name in the DO NOT EDIT header
}

// LogConfig configures logger output
type LogConfig struct {
	JSON bool `mapstructure:"json"` // structured JSON logs instead of console output
}

// File and directory permission constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// ConfigFileName is the project config file searched for upward from the
// working directory.
const ConfigFileName = "peergen.toml"

var globalConfig *Config
var viperInstance *viper.Viper

// Load reads the peergen configuration using Viper. Cached after the first
// call; Reset clears the cache.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v := initViper()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	globalConfig = &config
	return globalConfig, nil
}

// GetViper returns the Viper instance for advanced configuration access
func GetViper() *viper.Viper {
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	// Defaults apply, environment binding does not, for this specific load
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %s", configPath)
	}

	return &config, nil
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viperInstance = nil
}

// initViper initializes Viper with configuration sources and defaults
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	v.SetEnvPrefix("PEERGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	// Merge config files in precedence order: user -> project -> env vars
	mergeConfigFiles(v)

	viperInstance = v
	return v
}

// findProjectConfig searches for peergen.toml by walking up the directory
// tree. Returns the first hit, or empty string when none exists.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// mergeConfigFiles merges configuration files in the correct precedence
// order. Precedence (lowest to highest): user < project < env vars.
func mergeConfigFiles(v *viper.Viper) {
	var configPaths []string

	if homeDir, err := os.UserHomeDir(); err == nil {
		configPaths = append(configPaths, filepath.Join(homeDir, ".peergen.toml"))
	}
	if projectConfig := findProjectConfig(); projectConfig != "" {
		configPaths = append(configPaths, projectConfig)
	}

	for _, configPath := range configPaths {
		if _, err := os.Stat(configPath); err != nil {
			continue
		}

		tempViper := viper.New()
		tempViper.SetConfigFile(configPath)
		tempViper.SetConfigType("toml")

		if err := tempViper.ReadInConfig(); err == nil {
			for key, value := range tempViper.AllSettings() {
				v.Set(key, value)
			}
		}
	}
}

// ModelPath returns the configured metamodel path with the default fallback
func (c *Config) ModelPath() string {
	if c.Model.Path == "" {
		return "metaModel.json"
	}
	return c.Model.Path
}

// OutputDir returns the configured output directory with the default fallback
func (c *Config) OutputDir() string {
	if c.Output.Dir == "" {
		return "generated"
	}
	return c.Output.Dir
}

// TypesModule returns the types artifact module name with the default fallback
func (c *Config) TypesModule() string {
	if c.Output.TypesModule == "" {
		return "protocol"
	}
	return c.Output.TypesModule
}

// Attribution returns the header attribution with the default fallback
func (c *Config) Attribution() string {
	if c.Output.Attribution == "" {
		return version.Attribution()
	}
	return c.Output.Attribution
}
