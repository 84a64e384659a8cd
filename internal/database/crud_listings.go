// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mpreston/carcompare/internal/metrics"
	"github.com/mpreston/carcompare/internal/models"
)

// CreateListing inserts a new listing. The referenced car must exist and
// belong to the same user; otherwise ErrCarNotFound is returned.
func (db *DB) CreateListing(ctx context.Context, listing *models.Listing) error {
	if _, err := db.GetCar(ctx, listing.CarID, listing.UserID); err != nil {
		return err
	}

	if listing.ID == "" {
		listing.ID = uuid.New().String()
	}
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = time.Now().UTC()
	}
	listing.UpdatedAt = listing.CreatedAt

	start := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO listings (id, user_id, car_id, price, mileage, source, url, location, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		listing.ID, listing.UserID, listing.CarID, listing.Price, listing.Mileage,
		listing.Source, listing.URL, listing.Location, listing.CreatedAt, listing.UpdatedAt,
	)
	metrics.RecordDBQuery("INSERT", "listings", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

// GetListing retrieves a listing by id, scoped to its owner.
func (db *DB) GetListing(ctx context.Context, id, userID string) (*models.Listing, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, car_id, price, mileage, source, url, location, created_at, updated_at
		 FROM listings WHERE id = ? AND user_id = ?`, id, userID)
	return scanListing(row)
}

// ListListings retrieves all listings owned by the user, newest first.
func (db *DB) ListListings(ctx context.Context, userID string) ([]models.Listing, error) {
	return db.queryListings(ctx,
		`SELECT id, user_id, car_id, price, mileage, source, url, location, created_at, updated_at
		 FROM listings WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

// ListListingsByCar retrieves all listings for one car the user owns. The
// result is the comparison engine's input snapshot: it contains only rows
// whose car_id matches, so stats for one car can never include another
// car's listings. Returns ErrCarNotFound when the car does not exist or is
// owned by someone else.
func (db *DB) ListListingsByCar(ctx context.Context, carID, userID string) ([]models.Listing, error) {
	if _, err := db.GetCar(ctx, carID, userID); err != nil {
		return nil, err
	}
	return db.queryListings(ctx,
		`SELECT id, user_id, car_id, price, mileage, source, url, location, created_at, updated_at
		 FROM listings WHERE car_id = ? AND user_id = ? ORDER BY created_at ASC`, carID, userID)
}

// UpdateListing applies a partial update to a listing the user owns and
// returns the updated record.
func (db *DB) UpdateListing(ctx context.Context, id, userID string, patch *models.ListingPatch) (*models.Listing, error) {
	listing, err := db.GetListing(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return listing, nil
	}

	patch.Apply(listing, time.Now().UTC())

	start := time.Now()
	_, err = db.conn.ExecContext(ctx,
		`UPDATE listings SET price = ?, mileage = ?, source = ?, url = ?, location = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		listing.Price, listing.Mileage, listing.Source, listing.URL, listing.Location,
		listing.UpdatedAt, id, userID,
	)
	metrics.RecordDBQuery("UPDATE", "listings", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}
	return listing, nil
}

// DeleteListing removes a single listing the user owns.
func (db *DB) DeleteListing(ctx context.Context, id, userID string) error {
	start := time.Now()
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM listings WHERE id = ? AND user_id = ?`, id, userID)
	metrics.RecordDBQuery("DELETE", "listings", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrListingNotFound
	}
	return nil
}

func (db *DB) queryListings(ctx context.Context, query string, args ...any) ([]models.Listing, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("SELECT", "listings", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer closeWithLog(rows, "listings rows")

	listings := make([]models.Listing, 0)
	for rows.Next() {
		var l models.Listing
		if err := rows.Scan(&l.ID, &l.UserID, &l.CarID, &l.Price, &l.Mileage,
			&l.Source, &l.URL, &l.Location, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate listings: %w", err)
	}
	return listings, nil
}

func scanListing(row *sql.Row) (*models.Listing, error) {
	var l models.Listing
	err := row.Scan(&l.ID, &l.UserID, &l.CarID, &l.Price, &l.Mileage,
		&l.Source, &l.URL, &l.Location, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan listing: %w", err)
	}
	return &l, nil
}
