// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a validated Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Values are layered with github.com/knadh/koanf/v2, lowest precedence first:

 1. Built-in defaults
 2. A YAML file named by -c/--config or CONFIG_FILE
 3. Environment variables
 4. Command line flags (github.com/spf13/pflag)

# Config Fields

  - Port: Server listen port (default: 5000)
  - DatabaseURL: Connection string or SQLite file path (required)
  - DatabaseType: postgres or sqlite (default: postgres)
  - JWTSecret: HS256 secret for auth tokens
  - RequireAuth: Guard mutating routes with a token (default: false)
  - CodeLength: Retrieval code length, 1 to 20 (default: 8)
  - CodeMaxAttempts: Code generation attempts (default: 10)
  - LogLevel: debug, info, warn or error (default: info)
  - LogFormat: text or json (default: text)

# CLI Flags and Environment Variables

	-p, --port              PORT
	-d, --database-url      DATABASE_URL
	-t, --database-type     DATABASE_TYPE
	-c, --config            CONFIG_FILE
	--jwt-secret            JWT_SECRET
	--require-auth          REQUIRE_AUTH
	--code-length           CODE_LENGTH
	--code-max-attempts     CODE_MAX_ATTEMPTS
	--log-level             LOG_LEVEL
	--log-format            LOG_FORMAT

YAML files use the snake_case keys, for example:

	port: 5000
	database_type: sqlite
	database_url: voice-map.db

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - the port, code length or attempt count is out of range
  - the database type, log level or log format is unknown
  - auth is required but JWT_SECRET is empty
*/
package cliparse
