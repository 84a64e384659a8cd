// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables. All columns are defined in
// the initial CREATE TABLE statements; there is no separate migration step.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS cars (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			year INTEGER NOT NULL,
			make TEXT NOT NULL,
			model TEXT NOT NULL,
			trim TEXT,
			vin TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS listings (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			car_id UUID NOT NULL,
			price DOUBLE NOT NULL,
			mileage INTEGER,
			source TEXT NOT NULL,
			url TEXT,
			location TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS calculations (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			type TEXT NOT NULL,
			inputs TEXT NOT NULL,
			result DOUBLE NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// createIndexes creates indexes for the common lookup patterns: per-user
// car and listing scans and per-car listing scans for comparison stats.
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_cars_user_id ON cars(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_user_id ON listings(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_car_id ON listings(car_id)`,
		`CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)`,
		`CREATE INDEX IF NOT EXISTS idx_calculations_user_id ON calculations(user_id)`,
	}

	for _, query := range indexes {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}

	return nil
}
