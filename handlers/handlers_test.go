// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
)

// serve routes req through a mux holding only pattern, so path values are
// populated the way the real router populates them.
func serve(pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}
