// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/campaign-pulse/models"
)

var errInvalidDate = errors.New("date must be YYYY-MM-DD")

// pathID parses the {id} path value.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is missing or malformed.
func queryInt(r *http.Request, name string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return def
	}
	return n
}

// optionalDate validates a YYYY-MM-DD string. Empty means no date.
func optionalDate(s string) (*string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return nil, errInvalidDate
	}
	formatted := t.Format(models.DateLayout)
	return &formatted, nil
}

func visualizationFilter(r *http.Request) models.VisualizationFilter {
	q := r.URL.Query()
	return models.VisualizationFilter{
		Gender:      q.Get("gender"),
		Affiliation: q.Get("affiliation"),
		Age:         q.Get("age"),
		Issues:      q.Get("issues"),
		Occupation:  q.Get("occupation"),
		Ward:        q.Get("ward"),
		Education:   q.Get("education"),
	}
}

func voterListFilter(r *http.Request, defaultPerPage int) models.VoterListFilter {
	q := r.URL.Query()
	return models.VoterListFilter{
		Gender:      q.Get("gender"),
		Search:      q.Get("search"),
		Affiliation: q.Get("affiliation"),
		Age:         q.Get("age"),
		Issues:      q.Get("issues"),
		Occupation:  q.Get("occupation"),
		Page:        queryInt(r, "page", 1),
		PerPage:     queryInt(r, "per_page", defaultPerPage),
	}
}
