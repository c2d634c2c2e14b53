// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/campaign-pulse/models"
	"github.com/danielhkuo/campaign-pulse/testutil"
)

func TestListVoters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	for i := 1; i <= 5; i++ {
		gender := "Male"
		if i%2 == 0 {
			gender = "Female"
		}
		testutil.InsertVoter(t, db, models.Voter{Name: fmt.Sprintf("Voter %d", i), Gender: testutil.Str(gender)})
	}

	h := NewVoterHandler(db, testutil.GetTestConfig())

	tests := []struct {
		name      string
		query     string
		wantIDs   int
		wantPage  int
		wantPages int
		wantTotal int
	}{
		{"default page", "", 5, 1, 1, 5},
		{"second page", "?page=2&per_page=2", 2, 2, 3, 5},
		{"past the end", "?page=9&per_page=2", 0, 9, 3, 5},
		{"gender filter", "?gender=female", 2, 1, 1, 2},
		{"search", "?search=voter%203", 1, 1, 1, 1},
		{"malformed paging", "?page=abc&per_page=-1", 5, 1, 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve("GET /api/voters", h.ListVoters, testutil.MakeRequest("GET", "/api/voters"+tt.query, nil, nil))
			testutil.AssertStatus(t, w, http.StatusOK)

			var page models.VoterPage
			testutil.AssertJSON(t, w, &page)
			assert.Len(t, page.Items, tt.wantIDs)
			assert.Equal(t, tt.wantPage, page.Page)
			assert.Equal(t, tt.wantPages, page.Pages)
			assert.Equal(t, tt.wantTotal, page.Total)
		})
	}
}

func TestListVoters_PerPageCapped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.InsertVoter(t, db, models.Voter{})

	h := NewVoterHandler(db, testutil.GetTestConfig())
	w := serve("GET /api/voters", h.ListVoters, testutil.MakeRequest("GET", "/api/voters?per_page=100000", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var page models.VoterPage
	testutil.AssertJSON(t, w, &page)
	assert.Equal(t, 1, page.Pages)
	assert.Len(t, page.Items, 1)
}

func TestUpdateVoter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	id := testutil.InsertVoter(t, db, models.Voter{
		Name:       "Asha",
		Occupation: testutil.Str("Farmer"),
		Remarks:    testutil.Str("call after 6pm"),
	})

	h := NewVoterHandler(db, testutil.GetTestConfig())

	t.Run("partial update", func(t *testing.T) {
		body := models.UpdateVoterRequest{
			MobileNumber:         testutil.Str("9800000001"),
			PoliticalAffiliation: testutil.Str("Supporter"),
		}
		path := fmt.Sprintf("/api/voters/%d", id)
		w := serve("PUT /api/voters/{id}", h.UpdateVoter, testutil.MakeRequest("PUT", path, body, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var voter models.Voter
		testutil.AssertJSON(t, w, &voter)
		assert.Equal(t, id, voter.ID)
		require.NotNil(t, voter.MobileNumber)
		assert.Equal(t, "9800000001", *voter.MobileNumber)
		assert.Equal(t, "Supporter", *voter.PoliticalAffiliation)
		assert.Equal(t, "Farmer", *voter.Occupation)
		assert.Equal(t, "call after 6pm", *voter.Remarks)
	})

	t.Run("unknown voter", func(t *testing.T) {
		w := serve("PUT /api/voters/{id}", h.UpdateVoter, testutil.MakeRequest("PUT", "/api/voters/9999", models.UpdateVoterRequest{}, nil))
		testutil.AssertStatus(t, w, http.StatusNotFound)

		var resp models.ErrorResponse
		testutil.AssertJSON(t, w, &resp)
		assert.Equal(t, "Voter not found", resp.Message)
	})

	t.Run("invalid id", func(t *testing.T) {
		w := serve("PUT /api/voters/{id}", h.UpdateVoter, testutil.MakeRequest("PUT", "/api/voters/abc", models.UpdateVoterRequest{}, nil))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("PUT", fmt.Sprintf("/api/voters/%d", id), strings.NewReader("{"))
		w := serve("PUT /api/voters/{id}", h.UpdateVoter, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestSaveLocationAndHouseholds(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.InsertVoter(t, db, models.Voter{Name: "Asha", HouseNumber: testutil.Str("12-A")})
	testutil.InsertVoter(t, db, models.Voter{Name: "Ravi", HouseNumber: testutil.Str("12-A")})
	testutil.InsertVoter(t, db, models.Voter{Name: "Meena"})

	h := NewVoterHandler(db, testutil.GetTestConfig())

	lat, lng := 12.97, 77.59
	body := models.SaveVoterLocationRequest{
		Name:        "Asha",
		HouseNumber: testutil.Str("12-A"),
		Landmark:    testutil.Str("Near temple"),
		Latitude:    &lat,
		Longitude:   &lng,
	}
	w := serve("POST /api/voter-location", h.SaveLocation, testutil.MakeRequest("POST", "/api/voter-location", body, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var saved models.SaveVoterLocationResponse
	testutil.AssertJSON(t, w, &saved)
	assert.Equal(t, "saved", saved.Message)
	assert.Equal(t, "Near temple", *saved.Location.Landmark)

	// Saving again updates the same row
	body.Landmark = testutil.Str("Opposite school")
	w = serve("POST /api/voter-location", h.SaveLocation, testutil.MakeRequest("POST", "/api/voter-location", body, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var again models.SaveVoterLocationResponse
	testutil.AssertJSON(t, w, &again)
	assert.Equal(t, saved.Location.ID, again.Location.ID)

	w = serve("GET /api/household-data", h.GetHouseholds, testutil.MakeRequest("GET", "/api/household-data", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var households []models.Household
	testutil.AssertJSON(t, w, &households)
	require.Len(t, households, 2)

	assert.Equal(t, "12-A", households[0].HouseNumber)
	require.Len(t, households[0].Voters, 2)
	assert.Equal(t, "Opposite school", households[0].Voters[0].Landmark)
	require.NotNil(t, households[0].Voters[0].Latitude)
	assert.InDelta(t, 12.97, *households[0].Voters[0].Latitude, 1e-9)
	assert.Empty(t, households[0].Voters[1].Landmark)

	assert.Equal(t, "No House Number", households[1].HouseNumber)
	assert.Equal(t, "Meena", households[1].Voters[0].Name)
}

func TestSaveLocation_MissingName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewVoterHandler(db, testutil.GetTestConfig())

	w := serve("POST /api/voter-location", h.SaveLocation,
		testutil.MakeRequest("POST", "/api/voter-location", models.SaveVoterLocationRequest{Name: "  "}, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, "Missing name", resp.Message)
}
