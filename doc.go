// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the campaign-pulse API server.

campaign-pulse is the backend of a constituency campaign dashboard. It serves
voter analytics to the candidate, voter and task management to field workers,
and a chat assistant that answers questions like "female voters" or
"booth 12" from the live voter list.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... ADMIN_KEY_SALT=... go run .

Or with flags, against a local SQLite file:

	go run . -p 3318 -t sqlite -d campaign.db --admin-salt dev-salt

Print the admin key for booth and segment writes:

	go run . --print-admin-key

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL URL or SQLite path
  - ADMIN_KEY_SALT or SECRET_KEY (--admin-salt): Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): postgres (default) or sqlite
  - PER_PAGE (--per-page): Default voter page size (default: 50)
  - LLM_PROVIDER (--llm-provider): cohere or openai
  - LLM_API_KEY or COHERE_API_KEY: Enables text generation
  - LLM_MODEL (--llm-model), LLM_BASE_URL, LLM_TIMEOUT (--llm-timeout), LLM_RATE_PER_SEC

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (chat, candidate, voters, tasks, booths, segments)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, request IDs, admin key guard, JSON helpers
  - assistant: Chat dispatch and the rule-based fallback
  - intent: Chat message classification and booth extraction
  - insight: Voter aggregation and chat insight text
  - voterstore: Voter queries over sqlx
  - llm: Rate-limited text generation via langchaingo
  - metrics: Prometheus counters and histograms
  - models: Request/response and domain types
  - auth: Admin key generation and validation
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
