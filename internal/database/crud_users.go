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

// CreateUser inserts a new user. The PasswordHash must already be a bcrypt
// digest; this layer never sees plaintext passwords. Returns
// ErrUsernameTaken or ErrEmailTaken when the unique constraints fire.
func (db *DB) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.UpdatedAt = user.CreatedAt

	// DuckDB constraint errors do not say which column collided, so check
	// both uniques up front for a precise error.
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = ?`, user.Username).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		return ErrUsernameTaken
	}
	err = db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ?`, user.Email).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return ErrEmailTaken
	}

	start := time.Now()
	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	metrics.RecordDBQuery("INSERT", "users", time.Since(start), err)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by id.
func (db *DB) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at, updated_at
		 FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByUsername retrieves a user by username, used on login.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at, updated_at
		 FROM users WHERE username = ?`, username)
	return scanUser(row)
}

// DeleteUser removes a user together with all of their cars, listings,
// and calculations. The deletions run in one transaction: either the
// whole subtree goes or nothing does.
func (db *DB) DeleteUser(ctx context.Context, id string) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM listings WHERE user_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete user listings: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM cars WHERE user_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete user cars: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM calculations WHERE user_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete user calculations: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user deletion: %w", err)
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}

// rollbackQuietly rolls back a transaction and ignores the "already
// committed" error from the deferred call on the success path.
func rollbackQuietly(tx *sql.Tx) {
	_ = tx.Rollback()
}
