package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/campaign-pulse/assistant"
	"github.com/danielhkuo/campaign-pulse/auth"
	"github.com/danielhkuo/campaign-pulse/cliparse"
	"github.com/danielhkuo/campaign-pulse/db"
	"github.com/danielhkuo/campaign-pulse/llm"
	"github.com/danielhkuo/campaign-pulse/middleware"
	"github.com/danielhkuo/campaign-pulse/router"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if cfg.PrintAdminKey {
		fmt.Println(auth.GenerateAdminKey(auth.AdminScope, cfg.AdminKeySalt))
		return
	}

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Text generation is optional; without it chat and summaries use rules
	var gen assistant.TextGenerator
	client, err := llm.New(llm.Config{
		Provider:   cfg.LLMProvider,
		APIKey:     cfg.LLMAPIKey,
		Model:      cfg.LLMModel,
		BaseURL:    cfg.LLMBaseURL,
		Timeout:    cfg.LLMTimeout,
		RatePerSec: cfg.LLMRate,
	})
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		slog.Info("text generation disabled, using rule-based replies")
	case err != nil:
		slog.Error("text generation setup failed", "error", err)
		os.Exit(1)
	default:
		gen = client
		slog.Info("text generation enabled", "provider", cfg.LLMProvider, "model", cfg.LLMModel)
	}

	// Create router
	mux := router.NewRouter(dbConn, cfg, gen)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.LLMTimeout + 20*time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
