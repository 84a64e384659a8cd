// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

// Package livelistings simulates a marketplace aggregator. A production
// deployment would fan out to listing-site APIs; this generator produces
// market-realistic inventory so the rest of the stack can be exercised
// without upstream credentials.
package livelistings

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mpreston/carcompare/internal/carimg"
	"github.com/mpreston/carcompare/internal/models"
)

const (
	maxResults     = 15
	defaultYearMin = 2016
	maxModelYear   = 2024
)

// sources are the marketplaces a real aggregator would consult.
var sources = []string{"CarGurus", "Autotrader", "Cars.com", "TrueCar", "eBay Motors"}

var (
	colors         = []string{"White", "Black", "Silver", "Gray", "Blue", "Red", "Green", "Brown", "Beige"}
	interiorColors = []string{"Black", "Gray", "Beige", "Brown"}
	transmissions  = []string{"Automatic", "CVT", "Manual", "8-Speed Automatic", "6-Speed Automatic"}
	fuelTypes      = []string{"Gasoline", "Diesel", "Hybrid", "Electric", "Plug-in Hybrid"}
	drivetrains    = []string{"FWD", "RWD", "AWD", "4WD"}
	trims          = []string{"Base", "LX", "EX", "EX-L", "Touring", "Sport", "Limited", "Premium", "SE", "XLE", "LE"}

	dealerNames = []string{
		"Premium Auto Sales", "Elite Motors", "City Car Center", "AutoNation",
		"CarMax", "Carvana", "Vroom", "Highway Motors", "Best Buy Auto",
		"Metro Car Group", "Luxury Auto Gallery", "Quality Cars Inc",
		"Family Motors", "DriveTime", "Hertz Car Sales",
	}

	locations = []string{
		"New York, NY", "Los Angeles, CA", "Chicago, IL", "Houston, TX",
		"Phoenix, AZ", "Philadelphia, PA", "San Antonio, TX", "San Diego, CA",
		"Dallas, TX", "Austin, TX", "Jacksonville, FL", "Fort Worth, TX",
		"San Jose, CA", "Columbus, OH", "Charlotte, NC", "Indianapolis, IN",
		"Seattle, WA", "Denver, CO", "Boston, MA", "Portland, OR",
	}

	commonFeatures = []string{
		"Backup Camera", "Bluetooth", "Cruise Control", "Keyless Entry",
		"Sunroof", "Leather Seats", "Heated Seats", "Navigation System",
		"Apple CarPlay", "Android Auto", "Blind Spot Monitor", "Lane Departure Warning",
		"Adaptive Cruise Control", "Power Liftgate", "Remote Start", "USB Ports",
		"Alloy Wheels", "LED Headlights", "Third Row Seating", "Parking Sensors",
	}

	makes = []string{"Honda", "Toyota", "Ford", "Chevrolet", "Nissan", "Mazda", "Subaru", "Hyundai", "Kia", "Lexus"}

	modelsByMake = map[string][]string{
		"Honda":     {"Civic", "Accord", "CR-V", "Pilot", "HR-V", "Odyssey"},
		"Toyota":    {"Camry", "Corolla", "RAV4", "Highlander", "Tacoma", "4Runner"},
		"Ford":      {"F-150", "Escape", "Explorer", "Mustang", "Edge", "Bronco"},
		"Chevrolet": {"Silverado", "Equinox", "Malibu", "Traverse", "Tahoe", "Camaro"},
		"Nissan":    {"Altima", "Rogue", "Sentra", "Pathfinder", "Murano", "Frontier"},
		"Mazda":     {"Mazda3", "CX-5", "CX-30", "CX-9", "Mazda6", "MX-5 Miata"},
		"Subaru":    {"Outback", "Forester", "Crosstrek", "Impreza", "Ascent", "Legacy"},
		"Hyundai":   {"Elantra", "Sonata", "Tucson", "Santa Fe", "Palisade", "Kona"},
		"Kia":       {"Forte", "Optima", "Sportage", "Sorento", "Telluride", "Soul"},
		"Lexus":     {"ES", "IS", "RX", "NX", "GX", "UX"},
	}

	// Typical market values used as the pricing baseline.
	basePrices = map[string]float64{
		"Civic": 15000, "Accord": 18000, "CR-V": 22000, "Pilot": 28000,
		"Camry": 18000, "Corolla": 15000, "RAV4": 23000, "Highlander": 30000,
		"F-150": 28000, "Escape": 20000, "Explorer": 28000, "Mustang": 25000,
		"Silverado": 30000, "Equinox": 20000, "Malibu": 17000,
		"ES": 28000, "IS": 26000, "RX": 35000, "NX": 32000,
	}
)

const vinCharset = "123456789ABCDEFGHJKLMNPRSTUVWXYZ"

// Generator produces synthetic marketplace listings.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Generator seeded from the clock.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Generator with a fixed seed for reproducible
// output.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Search generates between 10 and 20 listings matching the criteria,
// sorted by price ascending, and returns at most 15 of them.
func (g *Generator) Search(search models.LiveListingSearch) models.LiveListingResponse {
	g.mu.Lock()
	defer g.mu.Unlock()

	count := 10 + g.rng.Intn(11)
	listings := make([]models.LiveListing, 0, count)
	for i := 0; i < count; i++ {
		if l, ok := g.generate(search); ok {
			listings = append(listings, l)
		}
	}

	sort.Slice(listings, func(i, j int) bool { return listings[i].Price < listings[j].Price })

	total := len(listings)
	if len(listings) > maxResults {
		listings = listings[:maxResults]
	}

	return models.LiveListingResponse{
		Listings:       listings,
		TotalCount:     total,
		SearchSummary:  fmt.Sprintf("Found %d listings: %s", total, summarize(search)),
		SourcesScanned: g.sampleSources(),
	}
}

func (g *Generator) generate(search models.LiveListingSearch) (models.LiveListing, bool) {
	carMake := g.pick(makes)
	if search.Make != nil && *search.Make != "" {
		carMake = *search.Make
	}

	modelChoices, ok := modelsByMake[carMake]
	if !ok {
		modelChoices = []string{"Sedan", "SUV"}
	}
	model := g.pick(modelChoices)
	if search.Model != nil && *search.Model != "" {
		model = *search.Model
	}

	year := g.pickYear(search)
	price := g.priceFor(model, year, search)
	mileage := g.mileageFor(year)
	if search.MileageMax != nil && mileage > *search.MileageMax {
		return models.LiveListing{}, false
	}

	trim := g.pick(trims)
	features := g.sampleFeatures()
	source := g.pick(sources)
	location := g.pick(locations)
	dealer := g.pick(dealerNames)
	exterior := g.pick(colors)
	interior := g.pick(interiorColors)
	transmission := g.pick(transmissions)
	fuel := g.pick(fuelTypes)
	drivetrain := g.pick(drivetrains)
	img := carimg.URL(carMake, model, year, 800, 600)
	url := fmt.Sprintf("https://%s.com/listing/%d",
		strings.ReplaceAll(strings.ToLower(source), " ", ""), 100000+g.rng.Intn(900000))
	daysListed := 1 + g.rng.Intn(90)

	var vin *string
	if g.rng.Float64() < 0.7 {
		v := g.randomVIN()
		vin = &v
	}

	var priceDrop *float64
	if g.rng.Float64() < 0.3 {
		d := float64(500 + g.rng.Intn(1501))
		priceDrop = &d
	}

	isCertified := year >= 2020 && g.rng.Float64() < 0.2

	return models.LiveListing{
		Title:         fmt.Sprintf("%d %s %s %s", year, carMake, model, trim),
		Year:          year,
		Make:          carMake,
		Model:         model,
		Trim:          &trim,
		Price:         price,
		Mileage:       &mileage,
		Location:      &location,
		DealerName:    &dealer,
		URL:           url,
		ImageURL:      &img,
		Source:        source,
		VIN:           vin,
		ExteriorColor: &exterior,
		InteriorColor: &interior,
		Transmission:  &transmission,
		FuelType:      &fuel,
		Drivetrain:    &drivetrain,
		Features:      features,
		DaysListed:    &daysListed,
		PriceDrop:     priceDrop,
		IsCertified:   isCertified,
	}, true
}

func (g *Generator) pickYear(search models.LiveListingSearch) int {
	lo, hi := defaultYearMin, maxModelYear
	if search.YearMin != nil {
		lo = *search.YearMin
	}
	if search.YearMax != nil {
		hi = *search.YearMax
	} else if search.YearMin != nil {
		hi = maxModelYear
	}
	if search.YearMin == nil && search.YearMax != nil {
		lo = 2015
	}
	if lo > hi {
		return lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) priceFor(model string, year int, search models.LiveListingSearch) float64 {
	base, ok := basePrices[model]
	if !ok {
		base = 20000
	}

	price := base * (1 + float64(year-2015)*0.08)
	price *= 0.90 + g.rng.Float64()*0.25

	mileage := g.estimateMileage(year)
	switch {
	case mileage > 100000:
		price *= 0.85
	case mileage > 75000:
		price *= 0.90
	case mileage > 50000:
		price *= 0.95
	}

	if search.PriceMin != nil && price < *search.PriceMin {
		price = *search.PriceMin + g.rng.Float64()*(*search.PriceMin*0.2)
	}
	if search.PriceMax != nil && price > *search.PriceMax {
		span := *search.PriceMax * 0.2
		price = *search.PriceMax - g.rng.Float64()*span
	}

	// Nearest $100.
	return float64(int((price+50)/100)) * 100
}

func (g *Generator) mileageFor(year int) int {
	yearsOld := maxModelYear - year
	if yearsOld < 0 {
		yearsOld = 0
	}
	perYear := 10000 + g.rng.Intn(5001)
	mileage := yearsOld*perYear + g.rng.Intn(10001) - 5000
	if mileage < 100 {
		mileage = 100
	}
	return mileage
}

// estimateMileage mirrors mileageFor without consuming a listing's
// actual mileage roll, so the discount tier tracks age realistically.
func (g *Generator) estimateMileage(year int) int {
	yearsOld := maxModelYear - year
	if yearsOld < 0 {
		yearsOld = 0
	}
	return yearsOld * 12500
}

func (g *Generator) sampleFeatures() []string {
	n := 3 + g.rng.Intn(6)
	idx := g.rng.Perm(len(commonFeatures))[:n]
	out := make([]string, n)
	for i, j := range idx {
		out[i] = commonFeatures[j]
	}
	return out
}

func (g *Generator) sampleSources() []string {
	n := 3 + g.rng.Intn(3)
	idx := g.rng.Perm(len(sources))[:n]
	out := make([]string, n)
	for i, j := range idx {
		out[i] = sources[j]
	}
	return out
}

func (g *Generator) randomVIN() string {
	b := make([]byte, 17)
	for i := range b {
		b[i] = vinCharset[g.rng.Intn(len(vinCharset))]
	}
	return string(b)
}

func (g *Generator) pick(options []string) string {
	return options[g.rng.Intn(len(options))]
}

func summarize(search models.LiveListingSearch) string {
	var parts []string
	if search.Make != nil && *search.Make != "" {
		parts = append(parts, *search.Make)
	}
	if search.Model != nil && *search.Model != "" {
		parts = append(parts, *search.Model)
	}
	switch {
	case search.YearMin != nil && search.YearMax != nil:
		parts = append(parts, fmt.Sprintf("%d-%d", *search.YearMin, *search.YearMax))
	case search.YearMin != nil:
		parts = append(parts, fmt.Sprintf("%d+", *search.YearMin))
	case search.YearMax != nil:
		parts = append(parts, fmt.Sprintf("up to %d", *search.YearMax))
	}
	if search.PriceMax != nil {
		parts = append(parts, fmt.Sprintf("under $%.0f", *search.PriceMax))
	}
	if len(parts) == 0 {
		return "All listings"
	}
	return strings.Join(parts, " | ")
}
