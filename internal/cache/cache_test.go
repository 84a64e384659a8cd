// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	c := New("test", time.Minute)

	c.Set("stats:car-1", 42)

	got, ok := c.Get("stats:car-1")
	if !ok {
		t.Fatal("Get() miss, want hit")
	}
	if got.(int) != 42 {
		t.Errorf("Get() = %v, want 42", got)
	}
}

func TestCache_MissingKey(t *testing.T) {
	c := New("test", time.Minute)

	if _, ok := c.Get("absent"); ok {
		t.Error("Get() hit for absent key")
	}
}

func TestCache_Expiration(t *testing.T) {
	c := New("test", 10*time.Millisecond)

	c.Set("k", "v")
	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("entry should have expired")
	}

	stats := c.GetStats()
	if stats.Evictions == 0 {
		t.Error("expired read should count as eviction")
	}
}

func TestCache_SetWithTTL(t *testing.T) {
	c := New("test", 10*time.Millisecond)

	c.SetWithTTL("long", "v", time.Minute)
	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get("long"); !ok {
		t.Error("entry with custom TTL expired early")
	}
}

func TestCache_DeleteAndClear(t *testing.T) {
	c := New("test", time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("deleted entry still present")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("unrelated entry removed by Delete")
	}

	c.Clear()
	if _, ok := c.Get("b"); ok {
		t.Error("entry survived Clear")
	}
}

func TestCache_HitRate(t *testing.T) {
	c := New("test", time.Minute)

	c.Set("k", "v")
	c.Get("k")   // hit
	c.Get("gone") // miss

	if rate := c.HitRate(); rate != 50.0 {
		t.Errorf("HitRate() = %v, want 50.0", rate)
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New("test", time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d-%d", n, j)
				c.Set(key, j)
				c.Get(key)
				if j%10 == 0 {
					c.Delete(key)
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestGenerateKey(t *testing.T) {
	type params struct {
		CarID string
	}

	k1 := GenerateKey("compare", params{CarID: "car-1"})
	k2 := GenerateKey("compare", params{CarID: "car-1"})
	k3 := GenerateKey("compare", params{CarID: "car-2"})

	if k1 != k2 {
		t.Error("equal params must produce equal keys")
	}
	if k1 == k3 {
		t.Error("different params must produce different keys")
	}
}
