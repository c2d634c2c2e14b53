// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the campaign database and creates its schema.

# Connections

Open selects a driver by database type and pings the server:

	conn, err := db.Open(db.TypePostgres, cfg.DatabaseURL)

PostgreSQL uses lib/pq; SQLite uses the pure-Go modernc driver and is
limited to a single open connection. Both return *sqlx.DB, and queries
are written with '?' placeholders and passed through conn.Rebind.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The dialect is chosen from conn.DriverName().

# Tables

  - voter_list: voter records (read by the analytics core)
  - booths: polling booths; voter_list.booth_id references booths.id
  - tasks, communications, reports: worker module
  - segments: saved voter filters (JSON)
  - voter_locations: geotagged household visits

Timestamps are always written by the application, so SQLite needs no
NOW() equivalent.
*/
package db
