// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/campaign-pulse/cliparse"
	"github.com/danielhkuo/campaign-pulse/db"
	"github.com/danielhkuo/campaign-pulse/models"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full schema.
// The database lives as long as its single connection, so it is closed with
// the test.
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: db.TypeSQLite,
		AdminKeySalt: "test-admin-salt",
		PerPage:      50,
		LLMTimeout:   time.Second,
		LLMRate:      100,
	}
}

// Str returns a pointer to s
func Str(s string) *string { return &s }

// Int returns a pointer to n
func Int(n int) *int { return &n }

// InsertVoter inserts a voter row and returns its ID. Nil pointer fields are
// stored as NULL.
func InsertVoter(t *testing.T, conn *sqlx.DB, v models.Voter) int64 {
	t.Helper()

	if v.Name == "" {
		v.Name = "Test Voter"
	}

	var id int64
	err := conn.Get(&id, conn.Rebind(`
		INSERT INTO voter_list (name, father_or_husband_name, age, gender, house_number, epic_number,
			mobile_number, occupation, education_level, political_affiliation, key_issues, remarks,
			has_voted, booth_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`), v.Name, v.FatherOrHusbandName, v.Age, v.Gender, v.HouseNumber, v.EpicNumber,
		v.MobileNumber, v.Occupation, v.EducationLevel, v.PoliticalAffiliation, v.KeyIssues, v.Remarks,
		v.HasVoted, v.BoothID)
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return id
}

// InsertBooth inserts a booth and returns its ID
func InsertBooth(t *testing.T, conn *sqlx.DB, name, number string) int64 {
	t.Helper()

	var id int64
	err := conn.Get(&id, conn.Rebind(`
		INSERT INTO booths (name, booth_number) VALUES (?, ?) RETURNING id
	`), name, number)
	if err != nil {
		t.Fatalf("Failed to create test booth: %v", err)
	}

	return id
}

// InsertTask inserts a task created at the given time and returns its ID
func InsertTask(t *testing.T, conn *sqlx.DB, title, status string, createdAt time.Time) int64 {
	t.Helper()

	var id int64
	err := conn.Get(&id, conn.Rebind(`
		INSERT INTO tasks (title, status, created_at) VALUES (?, ?, ?) RETURNING id
	`), title, status, createdAt.UTC())
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}

	return id
}

// InsertCommunication inserts a communication created at the given time
func InsertCommunication(t *testing.T, conn *sqlx.DB, title, audience string, createdAt time.Time) int64 {
	t.Helper()

	var id int64
	err := conn.Get(&id, conn.Rebind(`
		INSERT INTO communications (title, audience, created_at) VALUES (?, ?, ?) RETURNING id
	`), title, audience, createdAt.UTC())
	if err != nil {
		t.Fatalf("Failed to create test communication: %v", err)
	}

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
