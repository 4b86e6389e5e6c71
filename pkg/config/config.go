// Package config loads project-level settings for generation and import.
// Settings come from an agentsync.yml / agentsync.yaml / agentsync.json file
// at the project root, overridden by AGENTSYNC_* environment variables.
// Command line flags override both.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentsync/agentsync/pkg/logger"
	"github.com/spf13/viper"
)

var log = logger.New("config:config")

const (
	fileName  = "agentsync"
	envPrefix = "AGENTSYNC"
)

// fileCandidates lists the config file names probed by Path, in priority order.
var fileCandidates = []string{"agentsync.yml", "agentsync.yaml", "agentsync.json"}

// Config holds the project-level defaults. List-valued environment overrides
// (AGENTSYNC_TARGETS, AGENTSYNC_FEATURES, AGENTSYNC_BASEDIRS) are
// comma-separated.
type Config struct {
	// Targets names the tool IDs to generate for, or ["all"] for every
	// registered tool. Empty means the user must pass --targets.
	Targets []string `mapstructure:"targets"`

	// Features selects artifact kinds (rules, ignore, mcp, commands,
	// subagents), or ["all"].
	Features []string `mapstructure:"features"`

	// BaseDirs lists generation roots relative to the project root. Monorepos
	// point this at their packages.
	BaseDirs []string `mapstructure:"baseDirs"`

	Delete  bool `mapstructure:"delete"`
	Verbose bool `mapstructure:"verbose"`
}

// Load reads the config file from dir plus environment overrides. A missing
// file is not an error; the built-in defaults apply.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(fileName)
	v.AddConfigPath(dir)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	// Defaults double as key registrations so AutomaticEnv values reach
	// Unmarshal even without a config file.
	v.SetDefault("targets", []string{})
	v.SetDefault("features", []string{"all"})
	v.SetDefault("baseDirs", []string{"."})
	v.SetDefault("delete", false)
	v.SetDefault("verbose", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config in %s: %w", dir, err)
		}
		log.Printf("No config file in %s, using defaults", dir)
	} else if log.Enabled() {
		log.Printf("Loaded config file: %s", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Path returns the config file present in dir, or "" when none exists.
func Path(dir string) string {
	for _, name := range fileCandidates {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
