// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Voice Map API server.

Voice Map lets a facilitator curate value cards into named card sets. Each
set gets a short retrieval code so a participant can open it without an
account. Cards carry a free-form JSON content document and a list of
resources (links).

# Starting the Server

The server requires environment variables or CLI flags for configuration.
A .env file in the working directory is loaded first if present:

	DATABASE_URL=postgres://... go run .

Or with flags, here against a local SQLite file:

	go run . -p 5000 -t sqlite -d voice-map.db

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string or SQLite path

Optional settings:

  - PORT (-p): Server port (default: 5000)
  - DATABASE_TYPE (-t): postgres or sqlite (default: postgres)
  - CONFIG_FILE (-c): YAML file with any of the settings
  - REQUIRE_AUTH, JWT_SECRET: Guard mutating routes with HS256 tokens
  - CODE_LENGTH, CODE_MAX_ATTEMPTS: Retrieval code generation
  - LOG_LEVEL, LOG_FORMAT: slog level and text/json output

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (cards, card sets, resources)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging, auth, CORS, recovery, JSON helpers
  - store: Queries, validation and transactions per entity
  - codegen: Unique retrieval code generation
  - models: Request/response and domain types
  - auth: JWT verification
  - db: Connections, schema creation and transactions
  - cliparse: Configuration parsing

The HTTP server and the shutdown watcher run in an errgroup. SIGINT or
SIGTERM triggers a graceful shutdown.

See package documentation for each component.
*/
package main
