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

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/mpreston/carcompare/internal/metrics"
	"github.com/mpreston/carcompare/internal/models"
)

// Calculation inputs are stored as a JSON array in a TEXT column. The
// operand list is opaque to the database: it is only ever read back whole
// for display or recomputation, never filtered or aggregated in SQL.

// CreateCalculation inserts a new calculation owned by the given user. The
// caller computes Result before persisting.
func (db *DB) CreateCalculation(ctx context.Context, calculation *models.Calculation) error {
	if calculation.ID == "" {
		calculation.ID = uuid.New().String()
	}
	if calculation.CreatedAt.IsZero() {
		calculation.CreatedAt = time.Now().UTC()
	}
	calculation.UpdatedAt = calculation.CreatedAt

	inputs, err := json.Marshal(calculation.Inputs)
	if err != nil {
		return fmt.Errorf("failed to encode calculation inputs: %w", err)
	}

	start := time.Now()
	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO calculations (id, user_id, type, inputs, result, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		calculation.ID, calculation.UserID, calculation.Type, string(inputs),
		calculation.Result, calculation.CreatedAt, calculation.UpdatedAt,
	)
	metrics.RecordDBQuery("INSERT", "calculations", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to create calculation: %w", err)
	}
	return nil
}

// GetCalculation retrieves a calculation by id, scoped to its owner.
func (db *DB) GetCalculation(ctx context.Context, id, userID string) (*models.Calculation, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, type, inputs, result, created_at, updated_at
		 FROM calculations WHERE id = ? AND user_id = ?`, id, userID)
	return scanCalculation(row)
}

// ListCalculations retrieves all calculations owned by the user, newest
// first.
func (db *DB) ListCalculations(ctx context.Context, userID string) ([]models.Calculation, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, type, inputs, result, created_at, updated_at
		 FROM calculations WHERE user_id = ? ORDER BY created_at DESC`, userID)
	metrics.RecordDBQuery("SELECT", "calculations", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	defer closeWithLog(rows, "calculations rows")

	calculations := make([]models.Calculation, 0)
	for rows.Next() {
		var c models.Calculation
		var inputs string
		if err := rows.Scan(&c.ID, &c.UserID, &c.Type, &inputs, &c.Result,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan calculation: %w", err)
		}
		if err := json.Unmarshal([]byte(inputs), &c.Inputs); err != nil {
			return nil, fmt.Errorf("failed to decode calculation inputs: %w", err)
		}
		calculations = append(calculations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate calculations: %w", err)
	}
	return calculations, nil
}

// UpdateCalculation replaces the inputs and result of a calculation the
// user owns and returns the updated record. The caller recomputes Result
// from the new inputs before calling.
func (db *DB) UpdateCalculation(ctx context.Context, id, userID string, inputs []float64, result float64) (*models.Calculation, error) {
	calculation, err := db.GetCalculation(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	calculation.Inputs = inputs
	calculation.Result = result
	calculation.UpdatedAt = time.Now().UTC()

	encoded, err := json.Marshal(inputs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode calculation inputs: %w", err)
	}

	start := time.Now()
	_, err = db.conn.ExecContext(ctx,
		`UPDATE calculations SET inputs = ?, result = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		string(encoded), calculation.Result, calculation.UpdatedAt, id, userID,
	)
	metrics.RecordDBQuery("UPDATE", "calculations", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to update calculation: %w", err)
	}
	return calculation, nil
}

// DeleteCalculation removes a calculation the user owns.
func (db *DB) DeleteCalculation(ctx context.Context, id, userID string) error {
	start := time.Now()
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM calculations WHERE id = ? AND user_id = ?`, id, userID)
	metrics.RecordDBQuery("DELETE", "calculations", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to delete calculation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCalculationNotFound
	}
	return nil
}

func scanCalculation(row *sql.Row) (*models.Calculation, error) {
	var c models.Calculation
	var inputs string
	err := row.Scan(&c.ID, &c.UserID, &c.Type, &inputs, &c.Result,
		&c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCalculationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan calculation: %w", err)
	}
	if err := json.Unmarshal([]byte(inputs), &c.Inputs); err != nil {
		return nil, fmt.Errorf("failed to decode calculation inputs: %w", err)
	}
	return &c, nil
}
