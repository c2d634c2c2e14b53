// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/campaign-pulse/assistant"
	"github.com/danielhkuo/campaign-pulse/cliparse"
	"github.com/danielhkuo/campaign-pulse/handlers"
	"github.com/danielhkuo/campaign-pulse/insight"
	"github.com/danielhkuo/campaign-pulse/metrics"
	"github.com/danielhkuo/campaign-pulse/middleware"
	"github.com/danielhkuo/campaign-pulse/voterstore"
)

// NewRouter wires every endpoint. gen may be nil when text generation is
// not configured.
func NewRouter(db *sqlx.DB, cfg cliparse.Config, gen assistant.TextGenerator) *http.ServeMux {
	mux := http.NewServeMux()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Chat core
	chat := assistant.NewChat(insight.New(voterstore.New(db)), assistant.NewFallback(gen, m), m)

	// Initialize handlers
	chatHandler := handlers.NewChatHandler(chat)
	candidateHandler := handlers.NewCandidateHandler(db, gen, m)
	voterHandler := handlers.NewVoterHandler(db, cfg)
	taskHandler := handlers.NewTaskHandler(db)
	messageHandler := handlers.NewMessageHandler(db)
	boothHandler := handlers.NewBoothHandler(db)
	segmentHandler := handlers.NewSegmentHandler(db)

	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdminKey(cfg.AdminKeySalt, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// Chat
	mux.HandleFunc("POST /chat", middleware.WithLogging(chatHandler.Chat))

	// Candidate command center
	mux.HandleFunc("GET /api/candidate/visualization", middleware.WithLogging(candidateHandler.GetVisualization))
	mux.HandleFunc("GET /api/candidate/kpis", middleware.WithLogging(candidateHandler.GetKPIs))
	mux.HandleFunc("GET /api/candidate/activity-feed", middleware.WithLogging(candidateHandler.GetActivityFeed))
	mux.HandleFunc("GET /api/candidate/insights", middleware.WithLogging(candidateHandler.GetInsights))
	mux.HandleFunc("GET /api/candidate/voters", middleware.WithLogging(voterHandler.ListVoters))

	// Voters (worker dashboard)
	mux.HandleFunc("GET /api/voters", middleware.WithLogging(voterHandler.ListVoters))
	mux.HandleFunc("PUT /api/voters/{id}", middleware.WithLogging(voterHandler.UpdateVoter))
	mux.HandleFunc("GET /api/household-data", middleware.WithLogging(voterHandler.GetHouseholds))
	mux.HandleFunc("POST /api/voter-location", middleware.WithLogging(voterHandler.SaveLocation))

	// Tasks, messages and reports
	mux.HandleFunc("GET /api/tasks", middleware.WithLogging(taskHandler.ListTasks))
	mux.HandleFunc("POST /api/tasks", middleware.WithLogging(taskHandler.CreateTask))
	mux.HandleFunc("PUT /api/tasks/{id}", middleware.WithLogging(taskHandler.UpdateTask))
	mux.HandleFunc("DELETE /api/tasks/{id}", middleware.WithLogging(taskHandler.DeleteTask))
	mux.HandleFunc("GET /api/messages", middleware.WithLogging(messageHandler.ListMessages))
	mux.HandleFunc("POST /api/messages", middleware.WithLogging(messageHandler.CreateMessage))
	mux.HandleFunc("GET /api/reports", middleware.WithLogging(messageHandler.ListReports))
	mux.HandleFunc("POST /api/reports", middleware.WithLogging(messageHandler.CreateReport))

	// Booths and segments (writes require X-Admin-Key)
	mux.HandleFunc("GET /api/booths", middleware.WithLogging(boothHandler.ListBooths))
	mux.HandleFunc("POST /api/booths", admin(boothHandler.CreateBooth))
	mux.HandleFunc("PUT /api/booths/{id}", admin(boothHandler.UpdateBooth))
	mux.HandleFunc("DELETE /api/booths/{id}", admin(boothHandler.DeleteBooth))
	mux.HandleFunc("GET /api/segments", middleware.WithLogging(segmentHandler.ListSegments))
	mux.HandleFunc("POST /api/segments", admin(segmentHandler.CreateSegment))
	mux.HandleFunc("DELETE /api/segments/{id}", admin(segmentHandler.DeleteSegment))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("campaign-pulse API v1"))
	})

	return mux
}
