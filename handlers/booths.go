// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/campaign-pulse/middleware"
	"github.com/danielhkuo/campaign-pulse/models"
	"github.com/danielhkuo/campaign-pulse/voterstore"
)

const boothColumns = "id, name, booth_number, in_charge_name, in_charge_contact"

type BoothHandler struct {
	db    *sqlx.DB
	store *voterstore.Store
}

func NewBoothHandler(db *sqlx.DB) *BoothHandler {
	return &BoothHandler{db: db, store: voterstore.New(db)}
}

// ListBooths handles GET /api/booths
func (h *BoothHandler) ListBooths(w http.ResponseWriter, r *http.Request) {
	booths := []models.Booth{}
	if err := h.db.SelectContext(r.Context(), &booths, "SELECT "+boothColumns+" FROM booths ORDER BY id"); err != nil {
		slog.Error("failed to list booths", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	tallies, err := h.store.BoothTallies(r.Context())
	if err != nil {
		slog.Error("failed to tally booths", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	result := make([]models.BoothWithStats, 0, len(booths))
	for _, b := range booths {
		t := tallies[b.ID]
		result = append(result, models.BoothWithStats{
			Booth:       b,
			TotalVoters: t.Total,
			Supporters:  t.Supporters,
			Opponents:   t.Opponents,
			Neutral:     t.Total - t.Supporters - t.Opponents,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}

// CreateBooth handles POST /api/booths
func (h *BoothHandler) CreateBooth(w http.ResponseWriter, r *http.Request) {
	var req models.BoothRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	taken, err := h.boothNumberTaken(r.Context(), req.BoothNumber, 0)
	if err != nil {
		slog.Error("failed to check booth number", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if taken {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Booth number already exists")
		return
	}

	booth := models.Booth{
		Name:            strings.TrimSpace(*req.Name),
		BoothNumber:     req.BoothNumber,
		InChargeName:    req.InChargeName,
		InChargeContact: req.InChargeContact,
	}
	err = h.db.GetContext(r.Context(), &booth.ID, h.db.Rebind(`
		INSERT INTO booths (name, booth_number, in_charge_name, in_charge_contact)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`), booth.Name, booth.BoothNumber, booth.InChargeName, booth.InChargeContact)
	if err != nil {
		slog.Error("failed to insert booth", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create booth")
		return
	}

	slog.Info("booth created", "booth_id", booth.ID)
	middleware.JSONResponse(w, http.StatusCreated, booth)
}

// UpdateBooth handles PUT /api/booths/{id}
func (h *BoothHandler) UpdateBooth(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid booth id")
		return
	}

	var req models.BoothRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name cannot be empty")
		return
	}

	taken, err := h.boothNumberTaken(r.Context(), req.BoothNumber, id)
	if err != nil {
		slog.Error("failed to check booth number", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if taken {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Booth number already exists")
		return
	}

	res, err := h.db.ExecContext(r.Context(), h.db.Rebind(`
		UPDATE booths SET
			name = COALESCE(?, name),
			booth_number = COALESCE(?, booth_number),
			in_charge_name = COALESCE(?, in_charge_name),
			in_charge_contact = COALESCE(?, in_charge_contact)
		WHERE id = ?
	`), req.Name, req.BoothNumber, req.InChargeName, req.InChargeContact, id)
	if err != nil {
		slog.Error("failed to update booth", "booth_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update booth")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Booth not found")
		return
	}

	var booth models.Booth
	if err := h.db.GetContext(r.Context(), &booth, h.db.Rebind("SELECT "+boothColumns+" FROM booths WHERE id = ?"), id); err != nil {
		slog.Error("failed to reload booth", "booth_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, booth)
}

// DeleteBooth handles DELETE /api/booths/{id}. Voters assigned to the booth
// are kept and unassigned.
func (h *BoothHandler) DeleteBooth(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid booth id")
		return
	}

	tx, err := h.db.BeginTxx(r.Context(), nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(r.Context(), tx.Rebind("UPDATE voter_list SET booth_id = NULL WHERE booth_id = ?"), id); err != nil {
		slog.Error("failed to unassign voters", "booth_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete booth")
		return
	}

	res, err := tx.ExecContext(r.Context(), tx.Rebind("DELETE FROM booths WHERE id = ?"), id)
	if err != nil {
		slog.Error("failed to delete booth", "booth_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete booth")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Booth not found")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit booth delete", "booth_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete booth")
		return
	}

	slog.Info("booth deleted", "booth_id", id)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Booth deleted successfully"})
}

// boothNumberTaken reports whether another booth (not exceptID) already uses
// number. A nil number never conflicts.
func (h *BoothHandler) boothNumberTaken(ctx context.Context, number *string, exceptID int64) (bool, error) {
	if number == nil {
		return false, nil
	}

	var id int64
	err := h.db.GetContext(ctx, &id, h.db.Rebind("SELECT id FROM booths WHERE booth_number = ? AND id <> ?"), *number, exceptID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
