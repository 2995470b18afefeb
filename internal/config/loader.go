package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is stripped from environment variables; the first underscore
// after it separates the section: LICITACIONES_SERVER_PORT -> server.port.
const EnvPrefix = "LICITACIONES_"

// ConfigFileName is looked up in the working directory when no explicit
// file is given.
const ConfigFileName = "licitaciones.yaml"

// DotEnvFile is loaded into the process environment before env parsing.
const DotEnvFile = ".env"

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"port":      "server.port",
	"mode":      "server.mode",
	"driver":    "database.driver",
	"db":        "database.path",
	"dsn":       "database.dsn",
	"results":   "results.path",
	"server":    "client.base_url",
	"timeout":   "client.timeout",
	"log-level": "log.level",
	"log-json":  "log.format",
}

// Load builds the configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"server.port":         DefaultPort,
		"server.mode":         DefaultMode,
		"server.cors_origins": []string{"*"},
		"database.driver":     DefaultDriver,
		"database.path":       DefaultDatabasePath,
		"results.path":        DefaultResultsPath,
		"client.base_url":     DefaultBaseURL,
		"client.timeout":      DefaultTimeout.String(),
		"log.level":           DefaultLogLevel,
		"log.format":          DefaultLogFormat,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	path, err := resolveConfigFile(cfgFile)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			if f.Name == "log-json" {
				if f.Value.String() == "true" {
					return key, "json"
				}
				return key, "text"
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// envKey turns LICITACIONES_CLIENT_BASE_URL into client.base_url.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// resolveConfigFile returns the explicit file, or the default file when it
// exists, or "" when there is none.
func resolveConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName, nil
	}
	return "", nil
}

// loadDotEnv is a no-op when the file does not exist. Variables already set
// in the environment win over the file.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("error loading %s file: %w", path, err)
}
