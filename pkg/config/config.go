// Package config loads the optional YAML configuration file for the
// causalexpr server (store backend, DSN, bind address), grounded on
// the teacher's env-var-with-flag-override convention
// (cmd/gcw-emulator/main.go's envOrDefault) extended with a YAML file
// layer via gopkg.in/yaml.v3, the pack's YAML library.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StoreBackend selects which store.Sink/store.Source implementation
// the server uses.
type StoreBackend string

const (
	BackendMemory StoreBackend = "memory"
	BackendSQLite StoreBackend = "sqlite"
)

// Config is the server's resolved configuration.
type Config struct {
	Host         string       `yaml:"host"`
	Port         int          `yaml:"port"`
	StoreBackend StoreBackend `yaml:"storeBackend"`
	SQLiteDSN    string       `yaml:"sqliteDSN"`
}

// Default returns the server's built-in defaults.
func Default() Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         8080,
		StoreBackend: BackendMemory,
		SQLiteDSN:    "causalexpr.db",
	}
}

// Load reads path as YAML and overlays it onto Default(). A blank path
// returns Default() unchanged; flag/env overrides are applied by the
// caller afterwards.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

// Addr returns the host:port string to bind the HTTP server to.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
