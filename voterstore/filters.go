// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voterstore

import (
	"strconv"
	"strings"

	"github.com/danielhkuo/campaign-pulse/models"
)

// where accumulates AND-ed SQL conditions with '?' placeholders.
type where struct {
	clauses []string
	args    []any
}

func (w *where) add(clause string, args ...any) {
	w.clauses = append(w.clauses, clause)
	w.args = append(w.args, args...)
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func visualizationWhere(f models.VisualizationFilter) *where {
	w := &where{}
	addGender(w, f.Gender)
	addAffiliation(w, f.Affiliation)
	addAgeBucket(w, f.Age)
	addContains(w, "key_issues", f.Issues)
	addContains(w, "occupation", f.Occupation)
	addWard(w, f.Ward)
	addContains(w, "education_level", f.Education)
	return w
}

func listWhere(f models.VoterListFilter) *where {
	w := &where{}
	addGender(w, f.Gender)
	if search := strings.TrimSpace(f.Search); search != "" {
		p := containsPattern(search)
		w.add("(LOWER(name) LIKE ? OR LOWER(epic_number) LIKE ? OR LOWER(house_number) LIKE ?)", p, p, p)
	}
	addAffiliation(w, f.Affiliation)
	addAgeBucket(w, f.Age)
	addContains(w, "key_issues", f.Issues)
	addContains(w, "occupation", f.Occupation)
	return w
}

// addGender matches gender case-insensitively; "all" means no filter.
func addGender(w *where, gender string) {
	g := strings.TrimSpace(gender)
	if g == "" || strings.EqualFold(g, "all") {
		return
	}
	w.add("LOWER(gender) = ?", strings.ToLower(g))
}

// addAffiliation understands two special tokens: "empty" selects NULL or
// blank affiliations, "swingvoter" selects SwingVoter and Neutral together.
func addAffiliation(w *where, affiliation string) {
	a := strings.TrimSpace(affiliation)
	if a == "" {
		return
	}
	switch strings.ToLower(a) {
	case "empty":
		w.add("(political_affiliation IS NULL OR TRIM(political_affiliation) = '')")
	case "swingvoter":
		w.add("LOWER(political_affiliation) IN ('swingvoter', 'neutral')")
	default:
		w.add("LOWER(political_affiliation) = ?", strings.ToLower(a))
	}
}

// addAgeBucket filters on one of the four bucket labels. Unknown labels are
// ignored.
func addAgeBucket(w *where, bucket string) {
	switch strings.TrimSpace(bucket) {
	case models.AgeBucket18To25:
		w.add("age BETWEEN 18 AND 25")
	case models.AgeBucket26To40:
		w.add("age BETWEEN 26 AND 40")
	case models.AgeBucket41To60:
		w.add("age BETWEEN 41 AND 60")
	case models.AgeBucket60Plus:
		w.add("age >= 60")
	}
}

func addContains(w *where, column, value string) {
	v := strings.TrimSpace(value)
	if v == "" {
		return
	}
	w.add("LOWER("+column+") LIKE ?", containsPattern(v))
}

// addWard filters by booth id. Non-numeric values are compared as text
// instead of failing the request.
func addWard(w *where, ward string) {
	v := strings.TrimSpace(ward)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		w.add("booth_id = ?", n)
		return
	}
	w.add("CAST(booth_id AS TEXT) = ?", v)
}
