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

// CreateCar inserts a new car owned by the given user.
func (db *DB) CreateCar(ctx context.Context, car *models.Car) error {
	if car.ID == "" {
		car.ID = uuid.New().String()
	}
	if car.CreatedAt.IsZero() {
		car.CreatedAt = time.Now().UTC()
	}
	car.UpdatedAt = car.CreatedAt

	start := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO cars (id, user_id, year, make, model, trim, vin, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		car.ID, car.UserID, car.Year, car.Make, car.Model, car.Trim, car.VIN,
		car.CreatedAt, car.UpdatedAt,
	)
	metrics.RecordDBQuery("INSERT", "cars", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to create car: %w", err)
	}
	return nil
}

// GetCar retrieves a car by id, scoped to its owner. A car owned by a
// different user reports ErrCarNotFound, never an authorization failure.
func (db *DB) GetCar(ctx context.Context, id, userID string) (*models.Car, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, year, make, model, trim, vin, created_at, updated_at
		 FROM cars WHERE id = ? AND user_id = ?`, id, userID)
	return scanCar(row)
}

// ListCars retrieves all cars owned by the user, newest first.
func (db *DB) ListCars(ctx context.Context, userID string) ([]models.Car, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, year, make, model, trim, vin, created_at, updated_at
		 FROM cars WHERE user_id = ? ORDER BY created_at DESC`, userID)
	metrics.RecordDBQuery("SELECT", "cars", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}
	defer closeWithLog(rows, "cars rows")

	cars := make([]models.Car, 0)
	for rows.Next() {
		var car models.Car
		if err := rows.Scan(&car.ID, &car.UserID, &car.Year, &car.Make, &car.Model,
			&car.Trim, &car.VIN, &car.CreatedAt, &car.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan car: %w", err)
		}
		cars = append(cars, car)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cars: %w", err)
	}
	return cars, nil
}

// UpdateCar applies a partial update to a car the user owns and returns the
// updated record. An empty patch returns the car unchanged.
func (db *DB) UpdateCar(ctx context.Context, id, userID string, patch *models.CarPatch) (*models.Car, error) {
	car, err := db.GetCar(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return car, nil
	}

	patch.Apply(car, time.Now().UTC())

	start := time.Now()
	_, err = db.conn.ExecContext(ctx,
		`UPDATE cars SET year = ?, make = ?, model = ?, trim = ?, vin = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		car.Year, car.Make, car.Model, car.Trim, car.VIN, car.UpdatedAt, id, userID,
	)
	metrics.RecordDBQuery("UPDATE", "cars", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to update car: %w", err)
	}
	return car, nil
}

// DeleteCar removes a car and all of its listings in one transaction, so a
// partial failure can never leave orphaned listings.
func (db *DB) DeleteCar(ctx context.Context, id, userID string) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	res, err := tx.ExecContext(ctx,
		`DELETE FROM cars WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete car: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCarNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM listings WHERE car_id = ? AND user_id = ?`, id, userID); err != nil {
		return fmt.Errorf("failed to delete car listings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit car deletion: %w", err)
	}
	return nil
}

func scanCar(row *sql.Row) (*models.Car, error) {
	var car models.Car
	err := row.Scan(&car.ID, &car.UserID, &car.Year, &car.Make, &car.Model,
		&car.Trim, &car.VIN, &car.CreatedAt, &car.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan car: %w", err)
	}
	return &car, nil
}
