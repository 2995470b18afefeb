// Package config loads the service and client settings.
package config

import (
	"fmt"
	"time"
)

// Default configuration values.
const (
	DefaultPort         = 3000
	DefaultMode         = "release"
	DefaultDriver       = "sqlite"
	DefaultDatabasePath = "licitacionesBD.db"
	DefaultResultsPath  = "model_results.json"
	DefaultBaseURL      = "http://localhost:3000"
	DefaultTimeout      = 5 * time.Second
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

type ServerConfig struct {
	Port        int      `koanf:"port"`
	Mode        string   `koanf:"mode"`
	CORSOrigins []string `koanf:"cors_origins"`
}

type DatabaseConfig struct {
	Driver string `koanf:"driver"` // sqlite, postgres
	Path   string `koanf:"path"`   // sqlite file
	DSN    string `koanf:"dsn"`    // postgres connection string
}

type ResultsConfig struct {
	Path string `koanf:"path"`
}

type ClientConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Results  ResultsConfig  `koanf:"results"`
	Client   ClientConfig   `koanf:"client"`
	Log      LogConfig      `koanf:"log"`
}

// ConnectionString returns what the configured driver expects to open.
func (d DatabaseConfig) ConnectionString() string {
	if d.Driver == "postgres" {
		return d.DSN
	}
	return d.Path
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the sqlite driver")
		}
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported database.driver %q (sqlite|postgres)", c.Database.Driver)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch c.Server.Mode {
	case "release", "debug", "test":
	default:
		return fmt.Errorf("unsupported server.mode %q (release|debug|test)", c.Server.Mode)
	}
	if c.Client.Timeout <= 0 {
		return fmt.Errorf("client.timeout must be positive")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log.format %q (text|json)", c.Log.Format)
	}
	return nil
}
