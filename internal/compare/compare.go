// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

// Package compare implements the listing comparison statistics engine.
//
// The engine is a pure function over a snapshot of listings for a single
// car. It performs no I/O, holds no state, and may be called concurrently
// from any number of requests. The caller owns input validation and the
// guarantee that all listings belong to the same car.
//
// Mileage semantics: a nil mileage means the posting carried no odometer
// reading. A mileage of exactly 0 is treated the same way, which keeps a
// literal zero from producing a division by zero or an absurd "free car"
// ratio. Listings without positive mileage still participate in the price
// statistics but are excluded from the price-per-mile average and from
// best-deal selection.
//
// Rounding: all output statistics are rounded to 2 decimal places, half
// away from zero (math.Round semantics).
package compare

import (
	"math"

	"github.com/mpreston/carcompare/internal/models"
)

// Stats computes aggregate statistics over the listings of one car.
//
// For an empty input it returns Count 0 with every other field nil.
// MinPrice, MaxPrice, and AvgPrice cover all listings. AvgPricePerMile is
// the arithmetic mean of per-listing price/mileage ratios over listings
// with mileage > 0, not the ratio of summed price over summed mileage;
// the two differ whenever mileages differ, and the per-listing mean is
// the documented statistic.
//
// BestDealListingID selects the qualifying listing with the lowest
// price/mileage ratio. Ties are broken deterministically: lower price
// first, then lower mileage, then the lexicographically smallest id.
// When no listing has positive mileage the field is nil even if priced
// listings exist.
func Stats(listings []models.Listing) models.ComparisonStats {
	stats := models.ComparisonStats{Count: len(listings)}
	if len(listings) == 0 {
		return stats
	}

	minPrice := listings[0].Price
	maxPrice := listings[0].Price
	var priceSum float64

	var ratioSum float64
	var ratioCount int
	var best *models.Listing
	var bestRatio float64

	for i := range listings {
		l := &listings[i]
		priceSum += l.Price
		if l.Price < minPrice {
			minPrice = l.Price
		}
		if l.Price > maxPrice {
			maxPrice = l.Price
		}

		if l.Mileage == nil || *l.Mileage <= 0 {
			continue
		}
		ratio := l.Price / float64(*l.Mileage)
		ratioSum += ratio
		ratioCount++

		if best == nil || betterDeal(l, ratio, best, bestRatio) {
			best = l
			bestRatio = ratio
		}
	}

	stats.MinPrice = round2(minPrice)
	stats.MaxPrice = round2(maxPrice)
	stats.AvgPrice = round2(priceSum / float64(len(listings)))

	if ratioCount > 0 {
		stats.AvgPricePerMile = round2(ratioSum / float64(ratioCount))
	}
	if best != nil {
		id := best.ID
		stats.BestDealListingID = &id
	}

	return stats
}

// betterDeal reports whether candidate l beats the current best under the
// total order: lower ratio, then lower price, then lower mileage, then
// smaller id.
func betterDeal(l *models.Listing, ratio float64, best *models.Listing, bestRatio float64) bool {
	if ratio != bestRatio {
		return ratio < bestRatio
	}
	if l.Price != best.Price {
		return l.Price < best.Price
	}
	if *l.Mileage != *best.Mileage {
		return *l.Mileage < *best.Mileage
	}
	return l.ID < best.ID
}

func round2(v float64) *float64 {
	r := math.Round(v*100) / 100
	return &r
}
