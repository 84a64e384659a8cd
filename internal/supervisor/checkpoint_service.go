// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package supervisor

import (
	"context"
	"time"

	"github.com/mpreston/carcompare/internal/logging"
)

// Checkpointer flushes the database write-ahead log to disk.
// *database.DB satisfies it.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// CheckpointService periodically checkpoints the database so an
// unclean shutdown loses at most one interval of WAL.
type CheckpointService struct {
	db       Checkpointer
	interval time.Duration
}

// NewCheckpointService creates a checkpoint loop with the given
// interval. Intervals under a minute are raised to a minute.
func NewCheckpointService(db Checkpointer, interval time.Duration) *CheckpointService {
	if interval < time.Minute {
		interval = time.Minute
	}
	return &CheckpointService{db: db, interval: interval}
}

// Serve implements suture.Service.
func (s *CheckpointService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.db.Checkpoint(ctx); err != nil {
				logging.Warn().Err(err).Msg("Periodic checkpoint failed")
			}
		}
	}
}

// String identifies the service in supervisor logs.
func (s *CheckpointService) String() string {
	return "db-checkpoint"
}
