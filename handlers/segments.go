// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/campaign-pulse/middleware"
	"github.com/danielhkuo/campaign-pulse/models"
)

// SegmentHandler stores named voter filter sets.
type SegmentHandler struct {
	db *sqlx.DB
}

func NewSegmentHandler(db *sqlx.DB) *SegmentHandler {
	return &SegmentHandler{db: db}
}

// ListSegments handles GET /api/segments
func (h *SegmentHandler) ListSegments(w http.ResponseWriter, r *http.Request) {
	segments := []models.Segment{}
	err := h.db.SelectContext(r.Context(), &segments, `
		SELECT id, name, filters, created_at
		FROM segments
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		slog.Error("failed to list segments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	for i := range segments {
		segments[i].Filters = json.RawMessage(segments[i].FiltersJSON)
	}

	middleware.JSONResponse(w, http.StatusOK, segments)
}

// CreateSegment handles POST /api/segments
func (h *SegmentHandler) CreateSegment(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSegmentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	filters, err := normalizeFilters(req.Filters)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "filters must be a JSON object")
		return
	}

	var existing int64
	err = h.db.GetContext(r.Context(), &existing, h.db.Rebind("SELECT id FROM segments WHERE name = ?"), req.Name)
	if err == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Segment name already exists")
		return
	}
	if !errors.Is(err, sql.ErrNoRows) {
		slog.Error("failed to check segment name", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	segment := models.Segment{
		Name:        req.Name,
		FiltersJSON: string(filters),
		Filters:     filters,
		CreatedAt:   time.Now().UTC(),
	}
	err = h.db.GetContext(r.Context(), &segment.ID, h.db.Rebind(`
		INSERT INTO segments (name, filters, created_at)
		VALUES (?, ?, ?)
		RETURNING id
	`), segment.Name, segment.FiltersJSON, segment.CreatedAt)
	if err != nil {
		slog.Error("failed to insert segment", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create segment")
		return
	}

	slog.Info("segment created", "segment_id", segment.ID, "name", segment.Name)
	middleware.JSONResponse(w, http.StatusCreated, segment)
}

// DeleteSegment handles DELETE /api/segments/{id}
func (h *SegmentHandler) DeleteSegment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid segment id")
		return
	}

	res, err := h.db.ExecContext(r.Context(), h.db.Rebind("DELETE FROM segments WHERE id = ?"), id)
	if err != nil {
		slog.Error("failed to delete segment", "segment_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete segment")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Segment not found")
		return
	}

	slog.Info("segment deleted", "segment_id", id)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Segment deleted successfully"})
}

// normalizeFilters re-encodes raw as a compact JSON object. Missing or null
// filters become {}.
func normalizeFilters(raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return json.RawMessage("{}"), nil
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return json.RawMessage("{}"), nil
	}
	return json.Marshal(obj)
}
