package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	AdminKeySalt  string
	PerPage       int
	PrintAdminKey bool

	// Text generation (chat fallback and issue summaries)
	LLMProvider string
	LLMAPIKey   string
	LLMModel    string
	LLMBaseURL  string
	LLMTimeout  time.Duration
	LLMRate     float64
}

const (
	defaultPort     = 3318
	defaultPerPage  = 50
	defaultLLMModel = "command-a-03-2025"
	defaultTimeout  = 10 * time.Second
	defaultLLMRate  = 2.0
)

// ParseFlags validates flags and fills the rest from the environment.
// A .env file in the working directory is loaded first if present; it never
// overrides variables that are already set.
func ParseFlags(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config

	fs := flag.NewFlagSet("campaign-pulse", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (postgres or sqlite)")
	fs.IntVar(&cfg.PerPage, "per-page", 0, "Default voter page size")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")
	fs.BoolVar(&cfg.PrintAdminKey, "print-admin-key", false, "Print the admin key and exit")

	fs.StringVar(&cfg.LLMProvider, "llm-provider", "", "Text generation provider (cohere or openai)")
	fs.StringVar(&cfg.LLMModel, "llm-model", "", "Text generation model")
	fs.DurationVar(&cfg.LLMTimeout, "llm-timeout", 0, "Text generation timeout")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		port, err := intFromEnv("PORT", defaultPort)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "postgres"
		}
	}

	if cfg.PerPage == 0 {
		perPage, err := intFromEnv("PER_PAGE", defaultPerPage)
		if err != nil {
			return Config{}, err
		}
		cfg.PerPage = perPage
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("SECRET_KEY")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	if err := parseLLM(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func parseLLM(cfg *Config) error {
	cfg.LLMAPIKey = os.Getenv("LLM_API_KEY")
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = os.Getenv("COHERE_API_KEY")
	}

	if cfg.LLMProvider == "" {
		cfg.LLMProvider = os.Getenv("LLM_PROVIDER")
	}
	if cfg.LLMProvider == "" && cfg.LLMAPIKey != "" {
		cfg.LLMProvider = "cohere"
	}

	if cfg.LLMModel == "" {
		cfg.LLMModel = os.Getenv("LLM_MODEL")
		if cfg.LLMModel == "" {
			cfg.LLMModel = defaultLLMModel
		}
	}
	cfg.LLMBaseURL = os.Getenv("LLM_BASE_URL")

	if cfg.LLMTimeout == 0 {
		cfg.LLMTimeout = defaultTimeout
		if s := os.Getenv("LLM_TIMEOUT"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return errors.New("invalid LLM_TIMEOUT env variable")
			}
			cfg.LLMTimeout = d
		}
	}

	cfg.LLMRate = defaultLLMRate
	if s := os.Getenv("LLM_RATE_PER_SEC"); s != "" {
		r, err := strconv.ParseFloat(s, 64)
		if err != nil || r <= 0 {
			return errors.New("invalid LLM_RATE_PER_SEC env variable")
		}
		cfg.LLMRate = r
	}

	return nil
}

func intFromEnv(name string, fallback int) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", name)
	}
	return n, nil
}
