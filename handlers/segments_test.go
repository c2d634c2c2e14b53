// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/campaign-pulse/models"
	"github.com/danielhkuo/campaign-pulse/testutil"
)

func TestSegments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewSegmentHandler(db)

	body := map[string]any{
		"name":    "Young women",
		"filters": map[string]any{"gender": "Female", "age": "18-25"},
	}
	w := serve("POST /api/segments", h.CreateSegment, testutil.MakeRequest("POST", "/api/segments", body, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var created models.Segment
	testutil.AssertJSON(t, w, &created)
	assert.NotZero(t, created.ID)
	assert.JSONEq(t, `{"gender":"Female","age":"18-25"}`, string(created.Filters))

	w = serve("POST /api/segments", h.CreateSegment,
		testutil.MakeRequest("POST", "/api/segments", map[string]any{"name": "Everyone"}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = serve("GET /api/segments", h.ListSegments, testutil.MakeRequest("GET", "/api/segments", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var segments []models.Segment
	testutil.AssertJSON(t, w, &segments)
	require.Len(t, segments, 2)
	assert.Equal(t, "Everyone", segments[0].Name)
	assert.JSONEq(t, "{}", string(segments[0].Filters))
	assert.JSONEq(t, `{"gender":"Female","age":"18-25"}`, string(segments[1].Filters))

	path := fmt.Sprintf("/api/segments/%d", created.ID)
	w = serve("DELETE /api/segments/{id}", h.DeleteSegment, testutil.MakeRequest("DELETE", path, nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = serve("DELETE /api/segments/{id}", h.DeleteSegment, testutil.MakeRequest("DELETE", path, nil, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestCreateSegment_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewSegmentHandler(db)

	w := serve("POST /api/segments", h.CreateSegment,
		testutil.MakeRequest("POST", "/api/segments", map[string]any{"name": "Seniors"}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	tests := []struct {
		name    string
		body    any
		message string
	}{
		{"missing name", map[string]any{"filters": map[string]any{}}, "name is required"},
		{"filters not an object", map[string]any{"name": "Bad", "filters": []int{1, 2}}, "filters must be a JSON object"},
		{"duplicate name", map[string]any{"name": "Seniors"}, "Segment name already exists"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve("POST /api/segments", h.CreateSegment, testutil.MakeRequest("POST", "/api/segments", tt.body, nil))
			testutil.AssertStatus(t, w, http.StatusBadRequest)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestNormalizeFilters(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"", "{}", true},
		{"null", "{}", true},
		{`{"ward": "4"}`, `{"ward":"4"}`, true},
		{`"female"`, "", false},
		{`[1]`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeFilters(json.RawMessage(tt.in))
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}
