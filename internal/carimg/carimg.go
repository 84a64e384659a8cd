// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

// Package carimg builds stock-photo URLs for vehicles via the Imagin
// Studio CDN.
package carimg

import (
	"fmt"
	"strings"
)

// modelAliases maps marketing names to the CDN's model-family slugs.
var modelAliases = map[string]string{
	"mazda3":   "mazda-3",
	"mazda6":   "mazda-6",
	"cx-5":     "cx5",
	"cx-30":    "cx30",
	"cx-9":     "cx9",
	"cx-50":    "cx50",
	"3 series": "3-series",
	"5 series": "5-series",
	"x3":       "x-3",
	"x5":       "x-5",
	"f-150":    "f150",
	"model 3":  "model-3",
	"model s":  "model-s",
	"model x":  "model-x",
	"model y":  "model-y",
}

// URL returns an image URL for the given vehicle at the requested
// dimensions.
func URL(make, model string, year, width, height int) string {
	makeSlug := slug(make)
	modelSlug := slug(model)
	if alias, ok := modelAliases[strings.ToLower(model)]; ok {
		modelSlug = strings.ReplaceAll(alias, " ", "%20")
	}
	return fmt.Sprintf(
		"https://cdn.imagin.studio/getImage?customer=hrjavascript-dev&make=%s&modelFamily=%s&modelYear=%d&angle=05&width=%d&height=%d",
		makeSlug, modelSlug, year, width, height,
	)
}

func slug(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "%20")
	return strings.ReplaceAll(s, "-", "%20")
}
