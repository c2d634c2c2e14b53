// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voterstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/campaign-pulse/models"
)

// BoothTally holds per-booth affiliation counts.
type BoothTally struct {
	BoothID    int64 `db:"booth_id"`
	Total      int   `db:"total"`
	Supporters int   `db:"supporters"`
	Opponents  int   `db:"opponents"`
}

// BoothTallies counts voters per booth. Booths without voters are absent.
func (s *Store) BoothTallies(ctx context.Context) (map[int64]BoothTally, error) {
	rows := []BoothTally{}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT booth_id,
		       COUNT(*) AS total,
		       COALESCE(SUM(CASE WHEN LOWER(political_affiliation) = 'supporter' THEN 1 ELSE 0 END), 0) AS supporters,
		       COALESCE(SUM(CASE WHEN LOWER(political_affiliation) = 'opponent' THEN 1 ELSE 0 END), 0) AS opponents
		FROM voter_list
		WHERE booth_id IS NOT NULL
		GROUP BY booth_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to tally booths: %w", err)
	}

	tallies := make(map[int64]BoothTally, len(rows))
	for _, r := range rows {
		tallies[r.BoothID] = r
	}
	return tallies, nil
}

// Voter counts used by the candidate KPIs

func (s *Store) CountVoters(ctx context.Context) (int, error) {
	return s.count(ctx, "")
}

// CountContacted counts voters with a non-blank mobile number.
func (s *Store) CountContacted(ctx context.Context) (int, error) {
	return s.count(ctx, "mobile_number IS NOT NULL AND mobile_number <> ''")
}

func (s *Store) CountSupporters(ctx context.Context) (int, error) {
	return s.count(ctx, "LOWER(political_affiliation) = 'supporter'")
}

// CountUndecided counts neutral, swing, and unaffiliated (NULL) voters.
func (s *Store) CountUndecided(ctx context.Context) (int, error) {
	return s.count(ctx, "LOWER(political_affiliation) IN ('neutral', 'swingvoter') OR political_affiliation IS NULL")
}

func (s *Store) count(ctx context.Context, cond string) (int, error) {
	query := "SELECT COUNT(*) FROM voter_list"
	if cond != "" {
		query += " WHERE " + cond
	}

	var n int
	if err := s.db.GetContext(ctx, &n, query); err != nil {
		return 0, fmt.Errorf("failed to count voters: %w", err)
	}
	return n, nil
}

// Households groups voters by house number in voter id order. Each voter
// carries the landmark and coordinates of its saved location, if any.
func (s *Store) Households(ctx context.Context) ([]models.Household, error) {
	voters := []models.Voter{}
	if err := s.db.SelectContext(ctx, &voters, "SELECT "+voterColumns+" FROM voter_list ORDER BY id"); err != nil {
		return nil, fmt.Errorf("failed to load voters: %w", err)
	}

	locations := []models.VoterLocation{}
	err := s.db.SelectContext(ctx, &locations, `
		SELECT id, voter_name, voter_house_no, landmark, latitude, longitude, saved_at
		FROM voter_locations
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load voter locations: %w", err)
	}

	type locationKey struct{ name, house string }
	byKey := make(map[locationKey]models.VoterLocation, len(locations))
	for _, loc := range locations {
		k := locationKey{deref(loc.VoterName), deref(loc.VoterHouseNo)}
		if _, seen := byKey[k]; !seen {
			byKey[k] = loc
		}
	}

	households := []models.Household{}
	index := make(map[string]int)
	for _, v := range voters {
		hv := models.HouseholdVoter{ID: v.ID, Name: v.Name}
		if loc, ok := byKey[locationKey{v.Name, deref(v.HouseNumber)}]; ok {
			hv.Landmark = deref(loc.Landmark)
			hv.Latitude = loc.Latitude
			hv.Longitude = loc.Longitude
		}

		house := deref(v.HouseNumber)
		if house == "" {
			house = "No House Number"
		}
		i, ok := index[house]
		if !ok {
			i = len(households)
			index[house] = i
			households = append(households, models.Household{HouseNumber: house})
		}
		households[i].Voters = append(households[i].Voters, hv)
	}

	return households, nil
}

// SaveLocation updates the saved location for (name, house number), creating
// it on first use.
func (s *Store) SaveLocation(ctx context.Context, req models.SaveVoterLocationRequest) (models.VoterLocation, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.VoterLocation{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	house := deref(req.HouseNumber)

	var id int64
	err = tx.GetContext(ctx, &id, tx.Rebind(`
		SELECT id FROM voter_locations
		WHERE voter_name = ? AND COALESCE(voter_house_no, '') = ?
		ORDER BY id
		LIMIT 1
	`), req.Name, house)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		err = tx.GetContext(ctx, &id, tx.Rebind(`
			INSERT INTO voter_locations (voter_name, voter_house_no, landmark, latitude, longitude, saved_at)
			VALUES (?, ?, ?, ?, ?, ?)
			RETURNING id
		`), req.Name, req.HouseNumber, req.Landmark, req.Latitude, req.Longitude, now)
		if err != nil {
			return models.VoterLocation{}, fmt.Errorf("failed to insert voter location: %w", err)
		}
	case err != nil:
		return models.VoterLocation{}, fmt.Errorf("failed to query voter location: %w", err)
	default:
		_, err = tx.ExecContext(ctx, tx.Rebind(`
			UPDATE voter_locations
			SET landmark = ?, latitude = ?, longitude = ?, saved_at = ?
			WHERE id = ?
		`), req.Landmark, req.Latitude, req.Longitude, now, id)
		if err != nil {
			return models.VoterLocation{}, fmt.Errorf("failed to update voter location: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.VoterLocation{}, fmt.Errorf("failed to commit voter location: %w", err)
	}

	name := req.Name
	return models.VoterLocation{
		ID:           id,
		VoterName:    &name,
		VoterHouseNo: req.HouseNumber,
		Landmark:     req.Landmark,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		SavedAt:      now,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
