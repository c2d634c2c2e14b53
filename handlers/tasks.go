// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/campaign-pulse/middleware"
	"github.com/danielhkuo/campaign-pulse/models"
)

const taskColumns = "id, title, description, status, due_date, created_at"

type TaskHandler struct {
	db *sqlx.DB
}

func NewTaskHandler(db *sqlx.DB) *TaskHandler {
	return &TaskHandler{db: db}
}

// ListTasks handles GET /api/tasks
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks := []models.Task{}
	err := h.db.SelectContext(r.Context(), &tasks, `
		SELECT `+taskColumns+`
		FROM tasks
		ORDER BY CASE WHEN due_date IS NULL THEN 1 ELSE 0 END, due_date, id
	`)
	if err != nil {
		slog.Error("failed to list tasks", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, tasks)
}

// CreateTask handles POST /api/tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTaskRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Status == "" {
		req.Status = models.TaskStatusPending
	}
	dueDate, err := optionalDate(req.DueDate)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "due_date must be YYYY-MM-DD")
		return
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     dueDate,
		CreatedAt:   time.Now().UTC(),
	}
	err = h.db.GetContext(r.Context(), &task.ID, h.db.Rebind(`
		INSERT INTO tasks (title, description, status, due_date, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`), task.Title, task.Description, task.Status, task.DueDate, task.CreatedAt)
	if err != nil {
		slog.Error("failed to insert task", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create task")
		return
	}

	slog.Info("task created", "task_id", task.ID, "status", task.Status)
	middleware.JSONResponse(w, http.StatusCreated, task)
}

// UpdateTask handles PUT /api/tasks/{id}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var req models.UpdateTaskRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title cannot be empty")
		return
	}
	dueDate, err := optionalDate(req.DueDate)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "due_date must be YYYY-MM-DD")
		return
	}

	res, err := h.db.ExecContext(r.Context(), h.db.Rebind(`
		UPDATE tasks SET
			title = COALESCE(?, title),
			description = COALESCE(?, description),
			status = COALESCE(?, status),
			due_date = COALESCE(?, due_date)
		WHERE id = ?
	`), req.Title, req.Description, req.Status, dueDate, id)
	if err != nil {
		slog.Error("failed to update task", "task_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update task")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Task not found")
		return
	}

	var task models.Task
	err = h.db.GetContext(r.Context(), &task, h.db.Rebind("SELECT "+taskColumns+" FROM tasks WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		slog.Error("failed to reload task", "task_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/{id}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid task id")
		return
	}

	res, err := h.db.ExecContext(r.Context(), h.db.Rebind("DELETE FROM tasks WHERE id = ?"), id)
	if err != nil {
		slog.Error("failed to delete task", "task_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete task")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Task not found")
		return
	}

	slog.Info("task deleted", "task_id", id)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Task deleted"})
}
