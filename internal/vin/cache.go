// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package vin

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/mpreston/carcompare/internal/metrics"
	"github.com/mpreston/carcompare/internal/models"
)

const cacheKeyPrefix = "vin:"

// Cache is a BadgerDB-backed store for decoded VIN results. VIN attributes
// never change for a given vehicle, so a long TTL (weeks) is safe; the TTL
// exists mainly to bound store growth. The cache survives restarts, which
// matters because the upstream NHTSA API is rate limited.
type Cache struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenCache opens (or creates) the on-disk cache at path. An empty path
// opens an in-memory store, used by tests.
func OpenCache(path string, ttl time.Duration) (*Cache, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open vin cache: %w", err)
	}

	return &Cache{db: db, ttl: ttl}, nil
}

// Get returns the cached decode result for a VIN, or (nil, false) on miss.
func (c *Cache) Get(vin string) (*models.VINDecodeResult, bool) {
	var result models.VINDecodeResult

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(cacheKeyPrefix + vin))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &result)
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			// Corrupt entries just count as misses; the next Set overwrites.
			metrics.RecordCacheMiss("vin")
			return nil, false
		}
		metrics.RecordCacheMiss("vin")
		return nil, false
	}

	metrics.RecordCacheHit("vin")
	return &result, true
}

// Set stores a decode result with the cache TTL.
func (c *Cache) Set(vin string, result *models.VINDecodeResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal vin result: %w", err)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(cacheKeyPrefix+vin), data).WithTTL(c.ttl)
		return txn.SetEntry(entry)
	})
}

// Close closes the underlying store.
func (c *Cache) Close() error {
	return c.db.Close()
}
