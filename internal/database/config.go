package database

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

const (
	defaultHost           = "localhost"
	defaultPort           = 3306
	defaultConnectTimeout = 10 * time.Second
	defaultQueryTimeout   = 30 * time.Second
)

// Config holds all settings needed to connect to the database whose
// catalog is being read.
type Config struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`

	// Timeouts are not part of the config file surface.
	ConnectTimeout time.Duration `yaml:"-"` // limit for establishing and verifying the connection
	QueryTimeout   time.Duration `yaml:"-"` // deadline for the whole catalog traversal
}

// DefaultConfig returns connection defaults for a local MySQL server.
func DefaultConfig() *Config {
	return &Config{
		Host:           defaultHost,
		Port:           defaultPort,
		ConnectTimeout: defaultConnectTimeout,
		QueryTimeout:   defaultQueryTimeout,
	}
}

// LoadFile reads a YAML config file into cfg. Fields absent from the
// file keep their current values, so callers can layer flags on top.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// DSN constructs the go-sql-driver connection string.
func (c *Config) DSN() string {
	port := c.Port
	if port == 0 {
		port = defaultPort
	}
	host := c.Host
	if host == "" {
		host = defaultHost
	}
	// format: user:pass@tcp(host:port)/dbname
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s", c.User, c.Password, host, port, c.Database)
}
