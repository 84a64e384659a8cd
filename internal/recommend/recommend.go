// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

// Package recommend scores a built-in vehicle catalog against buyer
// preferences and returns the best matches. Scoring is deterministic:
// the same request always produces the same suggestions in the same
// order.
package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/mpreston/carcompare/internal/carimg"
	"github.com/mpreston/carcompare/internal/models"
)

const maxRecommendations = 5

// Generate filters the catalog by the hard constraints in req, scores
// the survivors, and returns the top matches with explanations.
func Generate(req models.RecommendationRequest) models.RecommendationResponse {
	type scored struct {
		vehicle vehicle
		score   float64
	}

	var candidates []scored
	for _, v := range catalog {
		if !matchesFilters(v, req) {
			continue
		}
		candidates = append(candidates, scored{vehicle: v, score: matchScore(v, req)})
	}

	// Stable sort keeps catalog order for equal scores.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > maxRecommendations {
		candidates = candidates[:maxRecommendations]
	}

	recommendations := make([]models.Recommendation, 0, len(candidates))
	for _, c := range candidates {
		v := c.vehicle
		trim := v.Trim
		price := v.Price
		img := carimg.URL(v.Make, v.Model, v.Year, 800, 500)
		recommendations = append(recommendations, models.Recommendation{
			Year:            v.Year,
			Make:            v.Make,
			Model:           v.Model,
			Trim:            &trim,
			EstimatedPrice:  &price,
			ImageURL:        &img,
			Reason:          reason(v, req),
			Pros:            pros(v),
			Cons:            cons(v),
			ConfidenceScore: math.Round(c.score*100) / 100,
		})
	}

	return models.RecommendationResponse{
		Recommendations: recommendations,
		TotalCount:      len(recommendations),
		SearchSummary:   summary(req),
	}
}

func matchesFilters(v vehicle, req models.RecommendationRequest) bool {
	if req.BudgetMin != nil && v.Price < *req.BudgetMin {
		return false
	}
	if req.BudgetMax != nil && v.Price > *req.BudgetMax {
		return false
	}
	if req.YearMin != nil && v.Year < *req.YearMin {
		return false
	}
	if req.YearMax != nil && v.Year > *req.YearMax {
		return false
	}
	if len(req.BodyStyles) > 0 && !containsFold(req.BodyStyles, v.Body) {
		return false
	}
	if len(req.Brands) > 0 && !containsFold(req.Brands, v.Make) {
		return false
	}
	return true
}

// matchScore starts every vehicle at 0.5 and adds up to 0.3 for budget
// fit, up to 0.2 for feature matches, and 0.1 for model year 2023 or
// newer, capped at 1.0.
func matchScore(v vehicle, req models.RecommendationRequest) float64 {
	score := 0.5

	if req.BudgetMin != nil && req.BudgetMax != nil {
		budgetRange := *req.BudgetMax - *req.BudgetMin
		if budgetRange > 0 {
			middle := (*req.BudgetMin + *req.BudgetMax) / 2
			fit := 1 - math.Abs(v.Price-middle)/(budgetRange/2)
			if fit > 0 {
				score += fit * 0.3
			}
		}
	}

	if len(req.Features) > 0 {
		matches := 0
		for _, want := range req.Features {
			wantLower := strings.ToLower(want)
			for _, have := range v.Features {
				if strings.Contains(strings.ToLower(have), wantLower) {
					matches++
					break
				}
			}
		}
		score += float64(matches) / float64(len(req.Features)) * 0.2
	}

	if v.Year >= 2023 {
		score += 0.1
	}

	return math.Min(score, 1.0)
}

func reason(v vehicle, req models.RecommendationRequest) string {
	var reasons []string
	if req.BudgetMax != nil && v.Price <= *req.BudgetMax {
		reasons = append(reasons, "fits your budget")
	}
	if len(req.BodyStyles) > 0 && containsFold(req.BodyStyles, v.Body) {
		reasons = append(reasons, fmt.Sprintf("matches your preference for %ss", v.Body))
	}
	if v.Year >= 2023 {
		reasons = append(reasons, "recent model year")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "excellent reliability and value")
	}
	return fmt.Sprintf("Great choice! This car %s.", strings.Join(reasons, ", "))
}

func pros(v vehicle) []string {
	var out []string
	switch strings.ToLower(v.Make) {
	case "toyota", "honda", "mazda", "subaru":
		out = append(out, "Excellent reliability")
	}
	if v.Year >= 2023 {
		out = append(out, "Latest safety features")
	}
	switch v.Body {
	case "suv":
		out = append(out, "Spacious interior and cargo area")
	case "sedan":
		out = append(out, "Fuel efficient")
	case "truck":
		out = append(out, "Strong towing capacity")
	}
	if containsFold(v.Features, "AWD") || containsFold(v.Features, "4WD") {
		out = append(out, "All-weather capability")
	}
	if len(out) < 3 {
		out = append(out, "Good resale value")
	}
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

func cons(v vehicle) []string {
	var out []string
	if v.Price > 45000 {
		out = append(out, "Higher price point")
	}
	if v.Body == "truck" {
		out = append(out, "Lower fuel economy")
	}
	switch strings.ToLower(v.Make) {
	case "bmw", "audi":
		out = append(out, "Higher maintenance costs")
	}
	if v.Year < 2022 {
		out = append(out, "Older technology")
	}
	if len(out) == 0 {
		out = append(out, "Limited inventory in some markets")
	}
	if len(out) > 2 {
		out = out[:2]
	}
	return out
}

func summary(req models.RecommendationRequest) string {
	var parts []string
	switch {
	case req.BudgetMin != nil && req.BudgetMax != nil:
		parts = append(parts, fmt.Sprintf("$%s-$%s", formatThousands(*req.BudgetMin), formatThousands(*req.BudgetMax)))
	case req.BudgetMax != nil:
		parts = append(parts, fmt.Sprintf("up to $%s", formatThousands(*req.BudgetMax)))
	case req.BudgetMin != nil:
		parts = append(parts, fmt.Sprintf("over $%s", formatThousands(*req.BudgetMin)))
	}
	if len(req.BodyStyles) > 0 {
		parts = append(parts, strings.Join(req.BodyStyles, ", "))
	}
	switch {
	case req.YearMin != nil && req.YearMax != nil:
		parts = append(parts, fmt.Sprintf("%d-%d", *req.YearMin, *req.YearMax))
	case req.YearMin != nil:
		parts = append(parts, fmt.Sprintf("%d+", *req.YearMin))
	}
	if len(req.Brands) > 0 {
		parts = append(parts, strings.Join(req.Brands, ", "))
	}
	if len(parts) == 0 {
		return "Showing all available recommendations"
	}
	return "Showing recommendations for: " + strings.Join(parts, " | ")
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}

// formatThousands renders a whole-dollar amount with comma separators.
func formatThousands(v float64) string {
	s := fmt.Sprintf("%.0f", math.Abs(v))
	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
