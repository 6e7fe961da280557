// Package config handles loading, validation, and access to application
// configuration. Configuration comes from a yaml file; there are no
// environment variables. A missing file simply yields the defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/student"
)

const (
	defaultConfigFileName = "gradebook.yaml"
	defaultConfigDirName  = ".gradebook"
	defaultStorePath      = "students.csv"
	defaultLogLevel       = "info"
)

// Config holds all application configuration.
type Config struct {
	// App holds general application settings.
	App AppConfig `yaml:"app,omitempty"`

	// Storage configures the persisted record file.
	Storage StorageConfig `yaml:"storage,omitempty"`

	// Grading configures the GPA scale and letter thresholds.
	Grading GradingConfig `yaml:"grading,omitempty"`

	// Log configures logging.
	Log LogConfig `yaml:"log,omitempty"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	// Name is shown in the shell banner.
	Name string `yaml:"name,omitempty"`
}

// StorageConfig configures persistence.
type StorageConfig struct {
	// Path is the location of the delimited record file.
	Path string `yaml:"path,omitempty"`
}

// GradingConfig configures the grading policy. Empty sections fall back
// to the reference policy (0-5 scale, avg/20, 4.5/3.5/2.5/1.5 cuts).
type GradingConfig struct {
	// Divisor scales the raw mark average onto the GPA scale.
	Divisor float64 `yaml:"divisor,omitempty"`

	// Thresholds is the letter table, descending by min_gpa.
	Thresholds []ThresholdConfig `yaml:"thresholds,omitempty"`
}

// ThresholdConfig is one letter-table row.
type ThresholdConfig struct {
	MinGPA float64 `yaml:"min_gpa"`
	Letter string  `yaml:"letter"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level,omitempty"`
}

// Load tries to load configuration from standard locations.
// Priority: ./gradebook.yaml, then ~/.gradebook/config.yaml. When no
// file exists the defaults are returned.
func Load() (*Config, error) {
	cfg, err := LoadFile(defaultConfigFileName)
	if err == nil {
		return cfg, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	if homeDir, homeErr := os.UserHomeDir(); homeErr == nil {
		homePath := filepath.Join(homeDir, defaultConfigDirName, "config.yaml")
		cfg, err = LoadFile(homePath)
		if err == nil {
			return cfg, nil
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg = &Config{}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadFile loads configuration from a specific file. The os.IsNotExist
// check on the returned error distinguishes a missing file from a
// broken one.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: cannot parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return &cfg, nil
}

// applyDefaults ensures essential fields have default values if not set.
func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "Student Grade Management System"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = defaultStorePath
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}

	def := student.DefaultGradingPolicy()
	if c.Grading.Divisor == 0 {
		c.Grading.Divisor = def.Divisor
	}
	if len(c.Grading.Thresholds) == 0 {
		for _, t := range def.Thresholds {
			c.Grading.Thresholds = append(c.Grading.Thresholds, ThresholdConfig{
				MinGPA: t.MinGPA,
				Letter: t.Letter,
			})
		}
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}
	if _, err := c.GradingPolicy(); err != nil {
		return fmt.Errorf("grading: %w", err)
	}
	return nil
}

// GradingPolicy converts the grading section into the domain policy.
func (c *Config) GradingPolicy() (student.GradingPolicy, error) {
	policy := student.GradingPolicy{Divisor: c.Grading.Divisor}
	for _, t := range c.Grading.Thresholds {
		policy.Thresholds = append(policy.Thresholds, student.GradeThreshold{
			MinGPA: t.MinGPA,
			Letter: t.Letter,
		})
	}

	if err := policy.Validate(); err != nil {
		return student.GradingPolicy{}, err
	}
	return policy, nil
}
