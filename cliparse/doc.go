// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded before flags are read.
Variables already present in the environment win over the file.

# CLI Flags

	-p                 Server port
	-d                 Database URL
	-t                 Database type (postgres or sqlite)
	--per-page         Default voter page size
	--admin-salt       Admin key salt
	--print-admin-key  Print the admin key and exit
	--llm-provider     cohere or openai
	--llm-model        Model name
	--llm-timeout      Generation timeout (e.g. 10s)

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p (default 3318)
	DATABASE_URL    → -d (required)
	DATABASE_TYPE   → -t (default postgres)
	PER_PAGE        → --per-page (default 50)
	ADMIN_KEY_SALT  → --admin-salt (SECRET_KEY accepted too; required)
	LLM_PROVIDER    → --llm-provider (cohere when a key is set)
	LLM_MODEL       → --llm-model (default command-a-03-2025)
	LLM_TIMEOUT     → --llm-timeout (default 10s)

Environment only:

	LLM_API_KEY or COHERE_API_KEY
	LLM_BASE_URL
	LLM_RATE_PER_SEC (default 2)

Without an API key the chat falls back to rule-based replies.

CLI flags take precedence over environment variables.
*/
package cliparse
