package config

import (
	"os"
	"strconv"
	"time"

	"goscores/internal/errors"

	"gopkg.in/yaml.v3"
)

// DefaultDatasetSource is the public students performance CSV
const DefaultDatasetSource = "https://raw.githubusercontent.com/jnavarr54248/students-performance-dashboard/main/StudentsPerformance.csv"

// Config represents the complete application configuration
type Config struct {
	Dataset   DatasetConfig   `yaml:"dataset"`
	Server    ServerConfig    `yaml:"server"`
	Sessions  SessionConfig   `yaml:"sessions"`
	Profiling ProfilingConfig `yaml:"profiling"`
	LogLevel  string          `yaml:"log_level"`
}

// DatasetConfig describes where the raw table is read from
type DatasetConfig struct {
	Source   string        `yaml:"source"`    // file path, http(s) URL or postgres:// DSN
	JSONPath string        `yaml:"json_path"` // gjson path to the record array for JSON sources
	Table    string        `yaml:"table"`     // table name for postgres sources
	Sheet    string        `yaml:"sheet"`     // worksheet for xlsx sources
	Timeout  time.Duration `yaml:"timeout"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port                      string `yaml:"port"`
	GinMode                   string `yaml:"gin_mode"`
	MaxConcurrentComputations int    `yaml:"max_concurrent_computations"`
}

// SessionConfig controls dashboard session lifetime
type SessionConfig struct {
	TTL           time.Duration `yaml:"ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// ProfilingConfig holds the admin/pprof listener settings
type ProfilingConfig struct {
	Port    string `yaml:"port"`
	Enabled bool   `yaml:"enabled"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Source:   DefaultDatasetSource,
			JSONPath: "data",
			Table:    "students_performance",
			Sheet:    "Sheet1",
			Timeout:  30 * time.Second,
		},
		Server: ServerConfig{
			Port:                      "8080",
			GinMode:                   "debug",
			MaxConcurrentComputations: 8,
		},
		Sessions: SessionConfig{
			TTL:           30 * time.Minute,
			SweepInterval: time.Minute,
		},
		Profiling: ProfilingConfig{
			Port:    "6060",
			Enabled: true,
		},
		LogLevel: "INFO",
	}
}

// Load builds configuration from defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables, and validates it
func Load() (*Config, error) {
	config := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, config); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", path)
		}
	}

	applyEnv(config)

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	return nil
}

func applyEnv(config *Config) {
	config.Dataset.Source = getEnvOrDefault("DATASET_SOURCE", config.Dataset.Source)
	config.Dataset.JSONPath = getEnvOrDefault("DATASET_JSON_PATH", config.Dataset.JSONPath)
	config.Dataset.Table = getEnvOrDefault("DATASET_TABLE", config.Dataset.Table)
	config.Dataset.Sheet = getEnvOrDefault("DATASET_SHEET", config.Dataset.Sheet)
	config.Dataset.Timeout = getEnvDurationOrDefault("DATASET_TIMEOUT", config.Dataset.Timeout)

	config.Server.Port = getEnvOrDefault("PORT", config.Server.Port)
	config.Server.GinMode = getEnvOrDefault("GIN_MODE", config.Server.GinMode)
	config.Server.MaxConcurrentComputations = getEnvIntOrDefault("MAX_CONCURRENT_COMPUTATIONS", config.Server.MaxConcurrentComputations)

	config.Sessions.TTL = getEnvDurationOrDefault("SESSION_TTL", config.Sessions.TTL)
	config.Sessions.SweepInterval = getEnvDurationOrDefault("SESSION_SWEEP_INTERVAL", config.Sessions.SweepInterval)

	config.Profiling.Port = getEnvOrDefault("ADMIN_PORT", config.Profiling.Port)
	config.Profiling.Enabled = getEnvBoolOrDefault("PPROF_ENABLED", config.Profiling.Enabled)

	config.LogLevel = getEnvOrDefault("LOG_LEVEL", config.LogLevel)
}

func validateConfig(config *Config) error {
	if config.Dataset.Source == "" {
		return errors.ConfigInvalid("dataset source is required")
	}
	if config.Dataset.Timeout <= 0 {
		return errors.ConfigInvalid("dataset timeout must be positive")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Server.MaxConcurrentComputations < 1 {
		return errors.ConfigInvalid("MAX_CONCURRENT_COMPUTATIONS must be at least 1")
	}
	if config.Sessions.TTL <= 0 || config.Sessions.SweepInterval <= 0 {
		return errors.ConfigInvalid("session TTL and sweep interval must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
