// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voterstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/campaign-pulse/models"
)

var ErrNotFound = errors.New("voter not found")

const voterColumns = `id, name, father_or_husband_name, age, gender, house_number, epic_number,
	mobile_number, occupation, education_level, political_affiliation, key_issues, remarks,
	has_voted, booth_id`

// Store runs read queries against voter_list plus the few voter writes the
// worker dashboard needs. Safe for concurrent use.
type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) selectGroups(ctx context.Context, query string, args ...any) ([]models.GroupCount, error) {
	groups := []models.GroupCount{}
	if err := s.db.SelectContext(ctx, &groups, s.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return groups, nil
}

// AffiliationCountsByGender groups voters of the given gender (case-insensitive)
// by their raw affiliation value.
func (s *Store) AffiliationCountsByGender(ctx context.Context, gender string) ([]models.GroupCount, error) {
	groups, err := s.selectGroups(ctx, `
		SELECT political_affiliation AS label, COUNT(*) AS cnt
		FROM voter_list
		WHERE LOWER(gender) = LOWER(?)
		GROUP BY political_affiliation
		ORDER BY MIN(id)
	`, gender)
	if err != nil {
		return nil, fmt.Errorf("failed to count affiliations by gender: %w", err)
	}
	return groups, nil
}

// AffiliationCountsByHouseNumber groups voters whose house number contains
// fragment by their raw affiliation value.
func (s *Store) AffiliationCountsByHouseNumber(ctx context.Context, fragment string) ([]models.GroupCount, error) {
	groups, err := s.selectGroups(ctx, `
		SELECT political_affiliation AS label, COUNT(*) AS cnt
		FROM voter_list
		WHERE LOWER(house_number) LIKE ?
		GROUP BY political_affiliation
		ORDER BY MIN(id)
	`, containsPattern(fragment))
	if err != nil {
		return nil, fmt.Errorf("failed to count affiliations by house number: %w", err)
	}
	return groups, nil
}

// LowerAffiliationCounts groups all voters by lower-cased affiliation.
func (s *Store) LowerAffiliationCounts(ctx context.Context) ([]models.GroupCount, error) {
	groups, err := s.selectGroups(ctx, `
		SELECT LOWER(political_affiliation) AS label, COUNT(*) AS cnt
		FROM voter_list
		GROUP BY LOWER(political_affiliation)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count affiliations: %w", err)
	}
	return groups, nil
}

// AgeCounts groups all voters by raw age, ascending. The NULL age group, if
// any, comes last.
func (s *Store) AgeCounts(ctx context.Context) ([]models.AgeCount, error) {
	ages := []models.AgeCount{}
	err := s.db.SelectContext(ctx, &ages, `
		SELECT age, COUNT(*) AS cnt
		FROM voter_list
		GROUP BY age
		ORDER BY CASE WHEN age IS NULL THEN 1 ELSE 0 END, age
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count ages: %w", err)
	}
	return ages, nil
}

// NeutralAgeCounts groups neutral voters by raw age, largest groups first.
func (s *Store) NeutralAgeCounts(ctx context.Context, limit int) ([]models.AgeCount, error) {
	ages := []models.AgeCount{}
	err := s.db.SelectContext(ctx, &ages, s.db.Rebind(`
		SELECT age, COUNT(*) AS cnt
		FROM voter_list
		WHERE LOWER(political_affiliation) = 'neutral'
		GROUP BY age
		ORDER BY cnt DESC, CASE WHEN age IS NULL THEN 1 ELSE 0 END, age
		LIMIT ?
	`), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to count neutral voters by age: %w", err)
	}
	return ages, nil
}

// KeyIssues returns every non-empty key issues field in id order.
func (s *Store) KeyIssues(ctx context.Context) ([]string, error) {
	issues := []string{}
	err := s.db.SelectContext(ctx, &issues, `
		SELECT key_issues
		FROM voter_list
		WHERE key_issues IS NOT NULL AND key_issues <> ''
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load key issues: %w", err)
	}
	return issues, nil
}

// TopKeyIssueFields groups voters by their whole key issues text, most
// common first. Voters without key issues are left out.
func (s *Store) TopKeyIssueFields(ctx context.Context, limit int) ([]models.GroupCount, error) {
	groups, err := s.selectGroups(ctx, `
		SELECT key_issues AS label, COUNT(*) AS cnt
		FROM voter_list
		WHERE key_issues IS NOT NULL AND key_issues <> ''
		GROUP BY key_issues
		ORDER BY cnt DESC, key_issues
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to count key issue fields: %w", err)
	}
	return groups, nil
}

// FindVoters returns every voter matching the visualization filter.
func (s *Store) FindVoters(ctx context.Context, f models.VisualizationFilter) ([]models.Voter, error) {
	w := visualizationWhere(f)

	voters := []models.Voter{}
	query := "SELECT " + voterColumns + " FROM voter_list" + w.String() + " ORDER BY id"
	if err := s.db.SelectContext(ctx, &voters, s.db.Rebind(query), w.args...); err != nil {
		return nil, fmt.Errorf("failed to find voters: %w", err)
	}
	return voters, nil
}

// ListVoters returns one page of voters ordered by id. Pages past the end
// are empty, not an error.
func (s *Store) ListVoters(ctx context.Context, f models.VoterListFilter) (models.VoterPage, error) {
	w := listWhere(f)

	var total int
	countQuery := "SELECT COUNT(*) FROM voter_list" + w.String()
	if err := s.db.GetContext(ctx, &total, s.db.Rebind(countQuery), w.args...); err != nil {
		return models.VoterPage{}, fmt.Errorf("failed to count voters: %w", err)
	}

	page, perPage := f.Page, f.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 50
	}

	voters := []models.Voter{}
	query := "SELECT " + voterColumns + " FROM voter_list" + w.String() + " ORDER BY id LIMIT ? OFFSET ?"
	args := append(append([]any{}, w.args...), perPage, (page-1)*perPage)
	if err := s.db.SelectContext(ctx, &voters, s.db.Rebind(query), args...); err != nil {
		return models.VoterPage{}, fmt.Errorf("failed to list voters: %w", err)
	}

	return models.VoterPage{
		Items: voters,
		Page:  page,
		Pages: (total + perPage - 1) / perPage,
		Total: total,
	}, nil
}

// GetVoter returns a single voter or ErrNotFound.
func (s *Store) GetVoter(ctx context.Context, id int64) (models.Voter, error) {
	var v models.Voter
	err := s.db.GetContext(ctx, &v, s.db.Rebind("SELECT "+voterColumns+" FROM voter_list WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Voter{}, ErrNotFound
	}
	if err != nil {
		return models.Voter{}, fmt.Errorf("failed to get voter: %w", err)
	}
	return v, nil
}

// UpdateVoter overwrites the fields present in req and returns the updated row.
func (s *Store) UpdateVoter(ctx context.Context, id int64, req models.UpdateVoterRequest) (models.Voter, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE voter_list SET
			mobile_number = COALESCE(?, mobile_number),
			occupation = COALESCE(?, occupation),
			education_level = COALESCE(?, education_level),
			political_affiliation = COALESCE(?, political_affiliation),
			key_issues = COALESCE(?, key_issues),
			remarks = COALESCE(?, remarks)
		WHERE id = ?
	`), req.MobileNumber, req.Occupation, req.EducationLevel, req.PoliticalAffiliation,
		req.KeyIssues, req.Remarks, id)
	if err != nil {
		return models.Voter{}, fmt.Errorf("failed to update voter: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return models.Voter{}, fmt.Errorf("failed to update voter: %w", err)
	}
	if n == 0 {
		return models.Voter{}, ErrNotFound
	}

	return s.GetVoter(ctx, id)
}

// containsPattern builds a case-insensitive LIKE pattern for substring search.
func containsPattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
