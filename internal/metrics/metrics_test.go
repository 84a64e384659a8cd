// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		duration  time.Duration
		err       error
	}{
		{"successful SELECT", "SELECT", "listings", 10 * time.Millisecond, nil},
		{"successful INSERT", "INSERT", "cars", 5 * time.Millisecond, nil},
		{"failed query", "UPDATE", "users", 100 * time.Millisecond, errors.New("io error")},
		{"fast query", "SELECT", "listings", 500 * time.Microsecond, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Must not panic for any combination.
			RecordDBQuery(tt.operation, tt.table, tt.duration, tt.err)
		})
	}
}

func TestRecordDBQuery_ErrorCounter(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("DELETE", "listings"))
	RecordDBQuery("DELETE", "listings", time.Millisecond, errors.New("boom"))
	after := testutil.ToFloat64(DBQueryErrors.WithLabelValues("DELETE", "listings"))

	if after != before+1 {
		t.Errorf("error counter = %v, want %v", after, before+1)
	}
}

func TestRecordCacheHitMiss(t *testing.T) {
	hitsBefore := testutil.ToFloat64(CacheHits.WithLabelValues("compare"))
	missesBefore := testutil.ToFloat64(CacheMisses.WithLabelValues("compare"))

	RecordCacheHit("compare")
	RecordCacheHit("compare")
	RecordCacheMiss("compare")

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("compare")); got != hitsBefore+2 {
		t.Errorf("hits = %v, want %v", got, hitsBefore+2)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("compare")); got != missesBefore+1 {
		t.Errorf("misses = %v, want %v", got, missesBefore+1)
	}
}

func TestRecordAuthAttempt(t *testing.T) {
	before := testutil.ToFloat64(AuthAttempts.WithLabelValues("login", "failure"))
	RecordAuthAttempt("login", false)
	if got := testutil.ToFloat64(AuthAttempts.WithLabelValues("login", "failure")); got != before+1 {
		t.Errorf("failure counter = %v, want %v", got, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != base+2 {
		t.Errorf("active = %v, want %v", got, base+2)
	}

	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != base {
		t.Errorf("active = %v, want %v", got, base)
	}
}

func TestMetrics_ConcurrentRecording(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				RecordCompareComputation(3)
				RecordAPIRequest("GET", "/api/v1/cars", "200", time.Millisecond)
				RecordVINLookup("success", 20*time.Millisecond)
			}
		}()
	}
	wg.Wait()
}
