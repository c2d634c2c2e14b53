// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/campaign-pulse/assistant"
	"github.com/danielhkuo/campaign-pulse/insight"
	"github.com/danielhkuo/campaign-pulse/metrics"
	"github.com/danielhkuo/campaign-pulse/middleware"
	"github.com/danielhkuo/campaign-pulse/models"
	"github.com/danielhkuo/campaign-pulse/voterstore"
)

const (
	feedTasks          = 5
	feedCommunications = 3
	feedLimit          = 10
)

// CandidateHandler serves the candidate command center.
type CandidateHandler struct {
	db       *sqlx.DB
	store    *voterstore.Store
	insights *insight.Service
	gen      assistant.TextGenerator
	metrics  *metrics.Metrics
}

// NewCandidateHandler creates the handler. gen may be nil, in which case the
// insights summary is built without text generation.
func NewCandidateHandler(db *sqlx.DB, gen assistant.TextGenerator, m *metrics.Metrics) *CandidateHandler {
	store := voterstore.New(db)
	return &CandidateHandler{
		db:       db,
		store:    store,
		insights: insight.New(store),
		gen:      gen,
		metrics:  m,
	}
}

// GetVisualization handles GET /api/candidate/visualization
func (h *CandidateHandler) GetVisualization(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	result, err := h.insights.Aggregate(r.Context(), visualizationFilter(r))
	h.metrics.ObserveVisualization(time.Since(start))

	if err != nil {
		slog.Error("visualization failed", "error", err)
		middleware.JSONResponse(w, http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to compute visualization data",
		})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}

// GetKPIs handles GET /api/candidate/kpis
func (h *CandidateHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	var kpis models.KPIResponse

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		kpis.VotersContacted.Total, err = h.store.CountVoters(ctx)
		return err
	})
	g.Go(func() (err error) {
		kpis.VotersContacted.Count, err = h.store.CountContacted(ctx)
		return err
	})
	g.Go(func() (err error) {
		kpis.Supporters, err = h.store.CountSupporters(ctx)
		return err
	})
	g.Go(func() (err error) {
		kpis.Undecided, err = h.store.CountUndecided(ctx)
		return err
	})
	g.Go(func() error {
		return h.db.GetContext(ctx, &kpis.TasksCompleted.Total, "SELECT COUNT(*) FROM tasks")
	})
	g.Go(func() error {
		return h.db.GetContext(ctx, &kpis.TasksCompleted.Count, h.db.Rebind("SELECT COUNT(*) FROM tasks WHERE LOWER(status) = LOWER(?)"), models.TaskStatusCompleted)
	})

	if err := g.Wait(); err != nil {
		slog.Error("failed to compute KPIs", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute KPIs")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, kpis)
}

// GetActivityFeed handles GET /api/candidate/activity-feed
func (h *CandidateHandler) GetActivityFeed(w http.ResponseWriter, r *http.Request) {
	tasks := []models.Task{}
	err := h.db.SelectContext(r.Context(), &tasks, h.db.Rebind(`
		SELECT `+taskColumns+`
		FROM tasks
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`), feedTasks)
	if err != nil {
		slog.Error("failed to load recent tasks", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	comms := []models.Communication{}
	err = h.db.SelectContext(r.Context(), &comms, h.db.Rebind(`
		SELECT id, title, body, audience, created_at
		FROM communications
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`), feedCommunications)
	if err != nil {
		slog.Error("failed to load recent communications", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	feed := make([]models.ActivityItem, 0, len(tasks)+len(comms))
	for _, t := range tasks {
		feed = append(feed, models.ActivityItem{
			Type:      "task",
			Message:   fmt.Sprintf("Task '%s' - %s", t.Title, t.Status),
			Timestamp: t.CreatedAt.UTC(),
		})
	}
	for _, c := range comms {
		audience := "All"
		if c.Audience != nil && *c.Audience != "" {
			audience = *c.Audience
		}
		feed = append(feed, models.ActivityItem{
			Type:      "communication",
			Message:   fmt.Sprintf("Message sent to %s: '%s'", audience, c.Title),
			Timestamp: c.CreatedAt.UTC(),
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Timestamp.After(feed[j].Timestamp)
	})
	if len(feed) > feedLimit {
		feed = feed[:feedLimit]
	}

	middleware.JSONResponse(w, http.StatusOK, feed)
}

// GetInsights handles GET /api/candidate/insights
func (h *CandidateHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	digest, err := h.insights.IssueDigest(r.Context())
	if err != nil {
		slog.Error("failed to build issue digest", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to summarize issues")
		return
	}
	if digest == "" {
		middleware.JSONResponse(w, http.StatusOK, models.InsightsSummaryResponse{Summary: "No issue data found"})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.InsightsSummaryResponse{
		Summary: h.summarize(r.Context(), digest),
	})
}

// summarize asks the text generator for a summary of digest and falls back
// to listing the digest itself.
func (h *CandidateHandler) summarize(ctx context.Context, digest string) string {
	if h.gen != nil {
		summary, err := h.gen.Generate(ctx, insight.SummaryPrompt(digest))
		if err == nil && summary != "" {
			h.metrics.IncrementFallback(metrics.SourceLLM)
			return summary
		}
		slog.Warn("issue summary generation failed, using digest", "error", err)
	}

	h.metrics.IncrementFallback(metrics.SourceRules)
	return "Top voter concerns: " + digest + "."
}
