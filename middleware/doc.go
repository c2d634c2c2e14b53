// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("GET /api/tasks", middleware.WithLogging(handler))

Logs request start and completion with a request ID, client IP, status and
duration_ms. The ID is returned in X-Request-ID and available to handlers
through RequestID(r.Context()).

# Admin Key

	mux.HandleFunc("POST /api/booths", middleware.WithLogging(
		middleware.RequireAdminKey(cfg.AdminKeySalt, h.CreateBooth)))

Requests without a valid X-Admin-Key get 401.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.CreateTaskRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
