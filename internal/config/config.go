package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Logging    LoggingConfig    `yaml:"logging"`
	Repository RepositoryConfig `yaml:"repository"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
	Validation ValidationConfig `yaml:"validation"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL            string        `yaml:"url"`
	MaxConnections int32         `yaml:"max_connections"`
	MinConnections int32         `yaml:"min_connections"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
}

type LoggingConfig struct {
	Development bool `yaml:"development"`
}

type RepositoryConfig struct {
	Type string `yaml:"type"` // "postgres" or "inmemory"
}

type SchedulerConfig struct {
	// Cron is a standard 5-field cron expression controlling how often
	// the overdue sweep runs.
	Cron string `yaml:"cron"`
}

// DueDatePolicy selects how due dates are validated at task creation.
type DueDatePolicy string

const PolicyFuture DueDatePolicy = "future"
const PolicyPresentOrFuture DueDatePolicy = "present_or_future"

type ValidationConfig struct {
	DueDatePolicy DueDatePolicy `yaml:"due_date_policy"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	cfg := defaults()
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            "8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			MaxConnections: 10,
			MinConnections: 2,
			IdleTimeout:    5 * time.Minute,
		},
		Repository: RepositoryConfig{Type: "postgres"},
		Scheduler:  SchedulerConfig{Cron: "0 0 * * *"},
		Validation: ValidationConfig{DueDatePolicy: PolicyFuture},
	}
}

func (c *Config) validate() error {
	switch c.Repository.Type {
	case "postgres", "inmemory":
	default:
		return fmt.Errorf("unknown repository type %q", c.Repository.Type)
	}

	switch c.Validation.DueDatePolicy {
	case PolicyFuture, PolicyPresentOrFuture:
	default:
		return fmt.Errorf("unknown due date policy %q", c.Validation.DueDatePolicy)
	}

	if c.Repository.Type == "postgres" && c.Database.URL == "" {
		return fmt.Errorf("database.url is required for the postgres repository")
	}
	return nil
}

func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
