// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/campaign-pulse/middleware"
	"github.com/danielhkuo/campaign-pulse/models"
)

// MessageHandler serves campaign communications and field reports.
type MessageHandler struct {
	db *sqlx.DB
}

func NewMessageHandler(db *sqlx.DB) *MessageHandler {
	return &MessageHandler{db: db}
}

// ListMessages handles GET /api/messages
func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages := []models.Communication{}
	err := h.db.SelectContext(r.Context(), &messages, `
		SELECT id, title, body, audience, created_at
		FROM communications
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		slog.Error("failed to list messages", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, messages)
}

// CreateMessage handles POST /api/messages
func (h *MessageHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCommunicationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}

	msg := models.Communication{
		Title:     req.Title,
		Body:      req.Body,
		Audience:  req.Audience,
		CreatedAt: time.Now().UTC(),
	}
	err := h.db.GetContext(r.Context(), &msg.ID, h.db.Rebind(`
		INSERT INTO communications (title, body, audience, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`), msg.Title, msg.Body, msg.Audience, msg.CreatedAt)
	if err != nil {
		slog.Error("failed to insert message", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create message")
		return
	}

	slog.Info("message created", "message_id", msg.ID)
	middleware.JSONResponse(w, http.StatusCreated, msg)
}

// ListReports handles GET /api/reports
func (h *MessageHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports := []models.Report{}
	err := h.db.SelectContext(r.Context(), &reports, `
		SELECT id, title, content, date, submitted_at
		FROM reports
		ORDER BY submitted_at DESC, id DESC
	`)
	if err != nil {
		slog.Error("failed to list reports", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, reports)
}

// CreateReport handles POST /api/reports
func (h *MessageHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReportRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	date, err := optionalDate(req.Date)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	report := models.Report{
		Title:       req.Title,
		Content:     req.Content,
		Date:        date,
		SubmittedAt: time.Now().UTC(),
	}
	err = h.db.GetContext(r.Context(), &report.ID, h.db.Rebind(`
		INSERT INTO reports (title, content, date, submitted_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`), report.Title, report.Content, report.Date, report.SubmittedAt)
	if err != nil {
		slog.Error("failed to insert report", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create report")
		return
	}

	slog.Info("report submitted", "report_id", report.ID)
	middleware.JSONResponse(w, http.StatusCreated, report)
}
