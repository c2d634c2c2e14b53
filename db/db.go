// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 5 * time.Minute
	pingTimeout            = 5 * time.Second
)

// Open connects to the database and verifies the connection.
// dbType selects the driver: "postgres" (lib/pq) or "sqlite" (modernc).
func Open(dbType, url string) (*sqlx.DB, error) {
	driver, err := driverName(dbType)
	if err != nil {
		return nil, err
	}

	conn, err := sqlx.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == TypeSQLite {
		// SQLite allows a single writer; serialize access through one connection
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(defaultMaxOpenConns)
		conn.SetMaxIdleConns(defaultMaxIdleConns)
		conn.SetConnMaxLifetime(defaultConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

func driverName(dbType string) (string, error) {
	switch dbType {
	case TypePostgres, "postgresql", "":
		return TypePostgres, nil
	case TypeSQLite, "sqlite3":
		return TypeSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database type %q", dbType)
	}
}

func init() {
	// sqlx does not know the modernc driver name; queries use '?' placeholders
	sqlx.BindDriver(TypeSQLite, sqlx.QUESTION)
}
