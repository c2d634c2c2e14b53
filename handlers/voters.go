// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/campaign-pulse/cliparse"
	"github.com/danielhkuo/campaign-pulse/middleware"
	"github.com/danielhkuo/campaign-pulse/models"
	"github.com/danielhkuo/campaign-pulse/voterstore"
)

const maxPerPage = 500

type VoterHandler struct {
	store *voterstore.Store
	cfg   cliparse.Config
}

func NewVoterHandler(db *sqlx.DB, cfg cliparse.Config) *VoterHandler {
	return &VoterHandler{store: voterstore.New(db), cfg: cfg}
}

// ListVoters handles GET /api/voters and GET /api/candidate/voters
func (h *VoterHandler) ListVoters(w http.ResponseWriter, r *http.Request) {
	f := voterListFilter(r, h.cfg.PerPage)
	if f.PerPage > maxPerPage {
		f.PerPage = maxPerPage
	}

	page, err := h.store.ListVoters(r.Context(), f)
	if err != nil {
		slog.Error("failed to list voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list voters")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, page)
}

// UpdateVoter handles PUT /api/voters/{id}
func (h *VoterHandler) UpdateVoter(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid voter id")
		return
	}

	var req models.UpdateVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	voter, err := h.store.UpdateVoter(r.Context(), id, req)
	if errors.Is(err, voterstore.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Voter not found")
		return
	}
	if err != nil {
		slog.Error("failed to update voter", "voter_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update voter")
		return
	}

	slog.Info("voter updated", "voter_id", id)
	middleware.JSONResponse(w, http.StatusOK, voter)
}

// GetHouseholds handles GET /api/household-data
func (h *VoterHandler) GetHouseholds(w http.ResponseWriter, r *http.Request) {
	households, err := h.store.Households(r.Context())
	if err != nil {
		slog.Error("failed to group households", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load households")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, households)
}

// SaveLocation handles POST /api/voter-location
func (h *VoterHandler) SaveLocation(w http.ResponseWriter, r *http.Request) {
	var req models.SaveVoterLocationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing name")
		return
	}

	loc, err := h.store.SaveLocation(r.Context(), req)
	if err != nil {
		slog.Error("failed to save voter location", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save location")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SaveVoterLocationResponse{
		Message:  "saved",
		Location: loc,
	})
}
