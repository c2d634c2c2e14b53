// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voterstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/campaign-pulse/models"
	"github.com/danielhkuo/campaign-pulse/testutil"
)

func TestBoothTallies(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := New(conn)

	b1 := testutil.InsertBooth(t, conn, "North", "1")
	b2 := testutil.InsertBooth(t, conn, "South", "2")

	testutil.InsertVoter(t, conn, models.Voter{BoothID: &b1, PoliticalAffiliation: testutil.Str("Supporter")})
	testutil.InsertVoter(t, conn, models.Voter{BoothID: &b1, PoliticalAffiliation: testutil.Str("opponent")})
	testutil.InsertVoter(t, conn, models.Voter{BoothID: &b1})
	testutil.InsertVoter(t, conn, models.Voter{PoliticalAffiliation: testutil.Str("Supporter")})

	tallies, err := store.BoothTallies(context.Background())
	require.NoError(t, err)

	assert.Equal(t, BoothTally{BoothID: b1, Total: 3, Supporters: 1, Opponents: 1}, tallies[b1])
	_, ok := tallies[b2]
	assert.False(t, ok)
}

func TestCounts(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := New(conn)
	ctx := context.Background()

	testutil.InsertVoter(t, conn, models.Voter{MobileNumber: testutil.Str("123"), PoliticalAffiliation: testutil.Str("Supporter")})
	testutil.InsertVoter(t, conn, models.Voter{MobileNumber: testutil.Str(""), PoliticalAffiliation: testutil.Str("Neutral")})
	testutil.InsertVoter(t, conn, models.Voter{PoliticalAffiliation: testutil.Str("SwingVoter")})
	testutil.InsertVoter(t, conn, models.Voter{})
	testutil.InsertVoter(t, conn, models.Voter{PoliticalAffiliation: testutil.Str("Opponent")})

	for name, tc := range map[string]struct {
		fn       func(context.Context) (int, error)
		expected int
	}{
		"total":      {store.CountVoters, 5},
		"contacted":  {store.CountContacted, 1},
		"supporters": {store.CountSupporters, 1},
		"undecided":  {store.CountUndecided, 3},
	} {
		t.Run(name, func(t *testing.T) {
			n, err := tc.fn(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, n)
		})
	}
}

func TestSaveLocationAndHouseholds(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := New(conn)
	ctx := context.Background()

	testutil.InsertVoter(t, conn, models.Voter{Name: "Asha", HouseNumber: testutil.Str("12")})
	testutil.InsertVoter(t, conn, models.Voter{Name: "Bina", HouseNumber: testutil.Str("12")})
	testutil.InsertVoter(t, conn, models.Voter{Name: "Chetan"})

	lat, lng := 12.97, 77.59
	first, err := store.SaveLocation(ctx, models.SaveVoterLocationRequest{
		Name:        "Asha",
		HouseNumber: testutil.Str("12"),
		Landmark:    testutil.Str("Temple"),
		Latitude:    &lat,
		Longitude:   &lng,
	})
	require.NoError(t, err)

	second, err := store.SaveLocation(ctx, models.SaveVoterLocationRequest{
		Name:        "Asha",
		HouseNumber: testutil.Str("12"),
		Landmark:    testutil.Str("Water tank"),
		Latitude:    &lat,
		Longitude:   &lng,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "same name and house should update in place")

	var rows int
	require.NoError(t, conn.Get(&rows, "SELECT COUNT(*) FROM voter_locations"))
	assert.Equal(t, 1, rows)

	households, err := store.Households(ctx)
	require.NoError(t, err)
	require.Len(t, households, 2)

	assert.Equal(t, "12", households[0].HouseNumber)
	require.Len(t, households[0].Voters, 2)
	assert.Equal(t, "Water tank", households[0].Voters[0].Landmark)
	require.NotNil(t, households[0].Voters[0].Latitude)
	assert.InDelta(t, lat, *households[0].Voters[0].Latitude, 1e-9)
	assert.Empty(t, households[0].Voters[1].Landmark)

	assert.Equal(t, "No House Number", households[1].HouseNumber)
	assert.Equal(t, "Chetan", households[1].Voters[0].Name)
}
