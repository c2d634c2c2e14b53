// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(conn *sqlx.DB) error {
	schema := postgresSchema
	if conn.DriverName() == TypeSQLite {
		schema = sqliteSchema
	}

	_, err := conn.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const postgresSchema = `
-- Booths
CREATE TABLE IF NOT EXISTS booths (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    booth_number TEXT UNIQUE,
    in_charge_name TEXT,
    in_charge_contact TEXT
);

-- Voters
CREATE TABLE IF NOT EXISTS voter_list (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    father_or_husband_name TEXT,
    age INTEGER,
    gender TEXT,
    house_number TEXT,
    epic_number TEXT,
    mobile_number TEXT,
    occupation TEXT,
    education_level TEXT,
    political_affiliation TEXT,
    key_issues TEXT,
    remarks TEXT,
    has_voted BOOLEAN NOT NULL DEFAULT FALSE,
    booth_id INTEGER REFERENCES booths(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_voter_list_booth_id ON voter_list(booth_id);
CREATE INDEX IF NOT EXISTS idx_voter_list_house_number ON voter_list(house_number);

-- Tasks
CREATE TABLE IF NOT EXISTS tasks (
    id SERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    status TEXT NOT NULL DEFAULT 'Pending',
    due_date TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Communications
CREATE TABLE IF NOT EXISTS communications (
    id SERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    body TEXT,
    audience TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Reports
CREATE TABLE IF NOT EXISTS reports (
    id SERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT,
    date TEXT,
    submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Segments
CREATE TABLE IF NOT EXISTS segments (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    filters JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Voter locations
CREATE TABLE IF NOT EXISTS voter_locations (
    id SERIAL PRIMARY KEY,
    voter_name TEXT,
    voter_house_no TEXT,
    landmark TEXT,
    latitude DOUBLE PRECISION,
    longitude DOUBLE PRECISION,
    saved_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_voter_locations_name_house ON voter_locations(voter_name, voter_house_no);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS booths (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    booth_number TEXT UNIQUE,
    in_charge_name TEXT,
    in_charge_contact TEXT
);

CREATE TABLE IF NOT EXISTS voter_list (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    father_or_husband_name TEXT,
    age INTEGER,
    gender TEXT,
    house_number TEXT,
    epic_number TEXT,
    mobile_number TEXT,
    occupation TEXT,
    education_level TEXT,
    political_affiliation TEXT,
    key_issues TEXT,
    remarks TEXT,
    has_voted BOOLEAN NOT NULL DEFAULT 0,
    booth_id INTEGER REFERENCES booths(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_voter_list_booth_id ON voter_list(booth_id);
CREATE INDEX IF NOT EXISTS idx_voter_list_house_number ON voter_list(house_number);

CREATE TABLE IF NOT EXISTS tasks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT,
    status TEXT NOT NULL DEFAULT 'Pending',
    due_date TEXT,
    created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS communications (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    body TEXT,
    audience TEXT,
    created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS reports (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    content TEXT,
    date TEXT,
    submitted_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS segments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    filters TEXT NOT NULL,
    created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS voter_locations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    voter_name TEXT,
    voter_house_no TEXT,
    landmark TEXT,
    latitude REAL,
    longitude REAL,
    saved_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_voter_locations_name_house ON voter_locations(voter_name, voter_house_no);
`
