package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// ProjectConfigFile is the name of the project-level config file.
	ProjectConfigFile = "entity-analyzer.yaml"
	// UserConfigDir is the directory for user-level config.
	UserConfigDir = ".config/entity-analyzer"
	// UserConfigFile is the name of the user-level config file.
	UserConfigFile = "config.yaml"
	// envPrefix namespaces every environment variable Load overlays onto
	// the loaded config. This is the layer a container orchestrator sets
	// instead of mounting a project config file, so it takes precedence
	// over both the user and project layers.
	envPrefix = "ENTITY_ANALYZER_"
)

// Loader handles configuration loading with layered precedence.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load loads configuration with layered precedence:
//  1. Default config
//  2. User config (~/.config/entity-analyzer/config.yaml)
//  3. Project config (entity-analyzer.yaml in current or parent directories)
//  4. Environment variables (ENTITY_ANALYZER_*)
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	userConfigPath := l.userConfigPath()
	if userConfig, err := LoadFromFile(userConfigPath); err == nil {
		l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
		config.Merge(userConfig)
	} else if !errors.Is(err, os.ErrNotExist) {
		l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
	}

	projectConfigPath := l.findProjectConfig()
	if projectConfigPath != "" {
		if projectConfig, err := LoadFromFile(projectConfigPath); err == nil {
			l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
			config.Merge(projectConfig)
		} else {
			l.logger.Warn("Failed to load project config", slog.String("path", projectConfigPath), slog.String("error", err.Error()))
		}
	} else {
		l.logger.Debug("No project config found")
	}

	l.applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides layers ENTITY_ANALYZER_* environment variables onto
// config. This is the layer a deployment sets at the process level
// (container env, systemd unit) rather than a mounted file — the only
// config surface a NATS-consuming service can always rely on being
// present, since its working directory and home directory are often
// whatever the container image happens to set.
func (l *Loader) applyEnvOverrides(config *Config) {
	apply := func(name string, set func(string)) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			l.logger.Debug("Applied environment override", slog.String("var", envPrefix+name))
			set(v)
		}
	}

	apply("NATS_URL", func(v string) { config.NATS.URL = v })
	apply("STREAM_NAME", func(v string) { config.NATS.StreamName = v })
	apply("CONSUMER_NAME", func(v string) { config.NATS.ConsumerName = v })
	apply("RESCHEDULE_CRON", func(v string) { config.NATS.RescheduleCron = v })
	apply("NER_ENGINE", func(v string) { config.NER.Engine = v })
	apply("NAMEDB_URL", func(v string) { config.Services.NameDBURL = v })
	apply("GEONAMES_URL", func(v string) { config.Services.GeonamesURL = v })
}

// EnsureUserConfig creates the user config file with defaults if it doesn't exist.
func (l *Loader) EnsureUserConfig() error {
	userConfigPath := l.userConfigPath()

	if _, err := os.Stat(userConfigPath); err == nil {
		return nil
	}

	config := DefaultConfig()
	if err := config.SaveToFile(userConfigPath); err != nil {
		return err
	}

	l.logger.Info("Created default user config", slog.String("path", userConfigPath))
	return nil
}

// userConfigPath returns the path to the user config file.
func (l *Loader) userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for entity-analyzer.yaml in current and parent directories.
func (l *Loader) findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
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
