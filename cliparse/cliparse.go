// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

type Config struct {
	Port            int    `koanf:"port"`
	DatabaseURL     string `koanf:"database_url"`
	DatabaseType    string `koanf:"database_type"`
	ConfigFile      string `koanf:"config_file"`
	JWTSecret       string `koanf:"jwt_secret"`
	RequireAuth     bool   `koanf:"require_auth"`
	CodeLength      int    `koanf:"code_length"`
	CodeMaxAttempts int    `koanf:"code_max_attempts"`
	LogLevel        string `koanf:"log_level"`
	LogFormat       string `koanf:"log_format"`
}

var defaults = map[string]any{
	"port":              5000,
	"database_type":     "postgres",
	"require_auth":      false,
	"code_length":       8,
	"code_max_attempts": 10,
	"log_level":         "info",
	"log_format":        "text",
}

// envKeys maps environment variables to config keys.
var envKeys = map[string]string{
	"PORT":              "port",
	"DATABASE_URL":      "database_url",
	"DATABASE_TYPE":     "database_type",
	"CONFIG_FILE":       "config_file",
	"JWT_SECRET":        "jwt_secret",
	"REQUIRE_AUTH":      "require_auth",
	"CODE_LENGTH":       "code_length",
	"CODE_MAX_ATTEMPTS": "code_max_attempts",
	"LOG_LEVEL":         "log_level",
	"LOG_FORMAT":        "log_format",
}

// ParseFlags builds the configuration from, lowest to highest precedence:
// built-in defaults, an optional YAML file, environment variables and
// command line flags.
func ParseFlags(args []string) (Config, error) {
	fs := pflag.NewFlagSet("voice-map", pflag.ContinueOnError)

	fs.IntP("port", "p", 0, "Server port")
	fs.StringP("database-url", "d", "", "Database URL")
	fs.StringP("database-type", "t", "", "Database type (postgres or sqlite)")
	fs.StringP("config", "c", "", "Path to a YAML config file")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.String("jwt-secret", "", "Secret used to verify auth tokens (prefer env)")
	fs.Bool("require-auth", false, "Require a valid token on mutating routes")

	fs.Int("code-length", 0, "Length of generated retrieval codes")
	fs.Int("code-max-attempts", 0, "Attempts before retrieval code generation gives up")
	fs.String("log-level", "", "Log level (debug, info, warn, error)")
	fs.String("log-format", "", "Log format (text or json)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	k := koanf.New(".")

	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return Config{}, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	configFile, _ := fs.GetString("config")
	if configFile == "" {
		configFile = os.Getenv("CONFIG_FILE")
	}
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", configFile, err)
		}
	}

	err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load environment: %w", err)
	}

	err = k.Load(posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		if key == "config" {
			key = "config_file"
		}
		return key, posflag.FlagVal(fs, f)
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if configFile != "" && cfg.ConfigFile == "" {
		cfg.ConfigFile = configFile
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks ranges and required combinations.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	if c.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	switch strings.ToLower(c.DatabaseType) {
	case "postgres", "postgresql", "sqlite", "sqlite3":
	default:
		return fmt.Errorf("unknown database type %q (want postgres or sqlite)", c.DatabaseType)
	}

	if c.CodeLength < 1 || c.CodeLength > 20 {
		return fmt.Errorf("code length must be between 1 and 20, got %d", c.CodeLength)
	}
	if c.CodeMaxAttempts < 1 {
		return fmt.Errorf("code max attempts must be at least 1, got %d", c.CodeMaxAttempts)
	}

	if c.RequireAuth && c.JWTSecret == "" {
		return errors.New("JWT_SECRET required when auth is enabled")
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}

	return nil
}
