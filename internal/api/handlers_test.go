// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/mpreston/carcompare/internal/auth"
	"github.com/mpreston/carcompare/internal/config"
	"github.com/mpreston/carcompare/internal/models"
	"github.com/mpreston/carcompare/internal/vin"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// fakeDecoder returns a canned VIN decode result or error.
type fakeDecoder struct {
	result *models.VINDecodeResult
	err    error
}

func (d *fakeDecoder) Decode(_ context.Context, _ string) (*models.VINDecodeResult, error) {
	return d.result, d.err
}

type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Environment: "development"},
		Security: config.SecurityConfig{
			JWTSecret:         testSecret,
			SessionTimeout:    time.Hour,
			BcryptCost:        4,
			RateLimitDisabled: true,
		},
		API: config.APIConfig{CompareCacheTTL: time.Minute},
	}
}

func newTestRouter(t *testing.T, decoder VINDecoder) (http.Handler, *fakeStore) {
	t.Helper()

	cfg := testConfig()
	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	store := newFakeStore()
	handler := NewHandler(store, jwtManager, decoder, cfg)
	router := NewRouter(handler, auth.NewMiddleware(jwtManager), cfg)
	return router.Setup(), store
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	return env
}

func registerAndLogin(t *testing.T, h http.Handler, username string) string {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", models.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct-horse-battery",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d, body %s", username, rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{
		Username: username,
		Password: "correct-horse-battery",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d, body %s", username, rec.Code, rec.Body.String())
	}

	var resp models.LoginResponse
	env := decodeEnvelope(t, rec)
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login returned empty token")
	}
	return resp.Token
}

func createCar(t *testing.T, h http.Handler, token string, create models.CarCreate) models.Car {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/v1/cars", token, create)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create car: status %d, body %s", rec.Code, rec.Body.String())
	}
	var car models.Car
	env := decodeEnvelope(t, rec)
	if err := json.Unmarshal(env.Data, &car); err != nil {
		t.Fatalf("decode car: %v", err)
	}
	return car
}

func createListing(t *testing.T, h http.Handler, token string, create models.ListingCreate) models.Listing {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/v1/cars/"+create.CarID+"/listings", token, create)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create listing: status %d, body %s", rec.Code, rec.Body.String())
	}
	var listing models.Listing
	env := decodeEnvelope(t, rec)
	if err := json.Unmarshal(env.Data, &listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	return listing
}

func intPtr(v int) *int { return &v }

func TestRegister_DuplicateUsername(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	registerAndLogin(t, h, "alice")

	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", models.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "another-password",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != "CONFLICT" {
		t.Errorf("error = %+v, want CONFLICT", env.Error)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	registerAndLogin(t, h, "alice")

	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{
		Username: "alice",
		Password: "wrong-password",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	// Unknown username must be indistinguishable from a bad password.
	rec2 := doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{
		Username: "nobody",
		Password: "wrong-password",
	})
	if rec2.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user status = %d, want 401", rec2.Code)
	}
	if decodeEnvelope(t, rec).Error.Message != decodeEnvelope(t, rec2).Error.Message {
		t.Error("bad-password and unknown-user responses differ")
	}
}

func TestMe(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	token := registerAndLogin(t, h, "alice")

	rec := doJSON(t, h, http.MethodGet, "/api/v1/auth/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var user models.UserResponse
	env := decodeEnvelope(t, rec)
	if err := json.Unmarshal(env.Data, &user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("username = %q, want alice", user.Username)
	}
}

func TestUnauthenticatedRejected(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	for _, path := range []string{"/api/v1/cars", "/api/v1/listings"} {
		rec := doJSON(t, h, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", path, rec.Code)
		}
	}

	rec := doJSON(t, h, http.MethodGet, "/api/v1/cars", "not-a-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want 401", rec.Code)
	}
}

func TestCarCRUD(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	token := registerAndLogin(t, h, "alice")

	car := createCar(t, h, token, models.CarCreate{Year: 2020, Make: "Honda", Model: "Civic"})
	if car.ID == "" {
		t.Fatal("created car has no ID")
	}

	newYear := 2021
	rec := doJSON(t, h, http.MethodPatch, "/api/v1/cars/"+car.ID, token, models.CarPatch{Year: &newYear})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: status %d, body %s", rec.Code, rec.Body.String())
	}
	var updated models.Car
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &updated); err != nil {
		t.Fatalf("decode updated car: %v", err)
	}
	if updated.Year != 2021 || updated.Make != "Honda" {
		t.Errorf("patch result year=%d make=%q", updated.Year, updated.Make)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/cars", token, nil)
	var cars []models.Car
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &cars); err != nil {
		t.Fatalf("decode cars: %v", err)
	}
	if len(cars) != 1 {
		t.Fatalf("list returned %d cars, want 1", len(cars))
	}

	rec = doJSON(t, h, http.MethodDelete, "/api/v1/cars/"+car.ID, token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d, want 204", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("delete body = %q, want empty", rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/cars/"+car.ID, token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: status %d, want 404", rec.Code)
	}
}

func TestCarValidation(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	token := registerAndLogin(t, h, "alice")

	rec := doJSON(t, h, http.MethodPost, "/api/v1/cars", token, models.CarCreate{Year: 1850, Make: "Honda", Model: "Civic"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", env.Error)
	}

	// Empty patch is rejected.
	car := createCar(t, h, token, models.CarCreate{Year: 2020, Make: "Honda", Model: "Civic"})
	rec = doJSON(t, h, http.MethodPatch, "/api/v1/cars/"+car.ID, token, models.CarPatch{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty patch: status = %d, want 400", rec.Code)
	}
}

func TestOwnershipIsolation(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	aliceToken := registerAndLogin(t, h, "alice")
	bobToken := registerAndLogin(t, h, "bob")

	car := createCar(t, h, aliceToken, models.CarCreate{Year: 2020, Make: "Honda", Model: "Civic"})

	paths := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodGet, "/api/v1/cars/" + car.ID, nil},
		{http.MethodDelete, "/api/v1/cars/" + car.ID, nil},
		{http.MethodGet, "/api/v1/cars/" + car.ID + "/listings", nil},
		{http.MethodGet, "/api/v1/cars/" + car.ID + "/compare", nil},
	}
	for _, p := range paths {
		rec := doJSON(t, h, p.method, p.path, bobToken, p.body)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s %s as bob: status = %d, want 404", p.method, p.path, rec.Code)
		}
		env := decodeEnvelope(t, rec)
		if env.Error == nil || env.Error.Code != "NOT_FOUND" {
			t.Errorf("%s %s: error code %+v, want NOT_FOUND", p.method, p.path, env.Error)
		}
	}

	// A listing recorded under someone else's car reports the car missing.
	rec := doJSON(t, h, http.MethodPost, "/api/v1/cars/"+car.ID+"/listings", bobToken, models.ListingCreate{
		Price:  20000,
		Source: "craigslist",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("create listing on alice's car: status = %d, want 404", rec.Code)
	}

	// Alice is unaffected.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/cars/"+car.ID, aliceToken, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("alice get own car: status = %d, want 200", rec.Code)
	}
}

func TestCompareEndpoint(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	token := registerAndLogin(t, h, "alice")
	car := createCar(t, h, token, models.CarCreate{Year: 2020, Make: "Honda", Model: "Civic"})

	createListing(t, h, token, models.ListingCreate{CarID: car.ID, Price: 25000, Mileage: intPtr(50000), Source: "cargurus"})
	createListing(t, h, token, models.ListingCreate{CarID: car.ID, Price: 27000, Source: "autotrader"})
	best := createListing(t, h, token, models.ListingCreate{CarID: car.ID, Price: 23000, Mileage: intPtr(60000), Source: "craigslist"})

	comparePath := fmt.Sprintf("/api/v1/cars/%s/compare", car.ID)
	rec := doJSON(t, h, http.MethodGet, comparePath, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("compare: status %d, body %s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec)
	if env.Metadata.Cached {
		t.Error("first comparison unexpectedly served from cache")
	}

	var stats models.ComparisonStats
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Count != 3 {
		t.Errorf("count = %d, want 3", stats.Count)
	}
	if stats.MinPrice == nil || *stats.MinPrice != 23000 {
		t.Errorf("min_price = %v, want 23000", stats.MinPrice)
	}
	if stats.MaxPrice == nil || *stats.MaxPrice != 27000 {
		t.Errorf("max_price = %v, want 27000", stats.MaxPrice)
	}
	if stats.AvgPrice == nil || *stats.AvgPrice != 25000 {
		t.Errorf("avg_price = %v, want 25000", stats.AvgPrice)
	}
	if stats.AvgPricePerMile == nil || *stats.AvgPricePerMile != 0.44 {
		t.Errorf("avg_price_per_mile = %v, want 0.44", stats.AvgPricePerMile)
	}
	if stats.BestDealListingID == nil || *stats.BestDealListingID != best.ID {
		t.Errorf("best_deal_listing_id = %v, want %s", stats.BestDealListingID, best.ID)
	}

	// Second read hits the cache.
	rec = doJSON(t, h, http.MethodGet, comparePath, token, nil)
	if !decodeEnvelope(t, rec).Metadata.Cached {
		t.Error("second comparison not served from cache")
	}

	// A new listing invalidates the cached statistics.
	createListing(t, h, token, models.ListingCreate{CarID: car.ID, Price: 30000, Source: "dealer"})
	rec = doJSON(t, h, http.MethodGet, comparePath, token, nil)
	env = decodeEnvelope(t, rec)
	if env.Metadata.Cached {
		t.Error("comparison served stale cache after listing write")
	}
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Count != 4 {
		t.Errorf("count after new listing = %d, want 4", stats.Count)
	}
}

func TestCompareEndpoint_NoListings(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	token := registerAndLogin(t, h, "alice")
	car := createCar(t, h, token, models.CarCreate{Year: 2020, Make: "Honda", Model: "Civic"})

	rec := doJSON(t, h, http.MethodGet, "/api/v1/cars/"+car.ID+"/compare", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	// All statistics must be explicit nulls at count zero.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &raw); err != nil {
		t.Fatalf("decode raw stats: %v", err)
	}
	for _, key := range []string{"min_price", "max_price", "avg_price", "avg_price_per_mile", "best_deal_listing_id"} {
		v, ok := raw[key]
		if !ok {
			t.Errorf("%s missing from response", key)
			continue
		}
		if string(v) != "null" {
			t.Errorf("%s = %s, want null", key, v)
		}
	}
}

func TestListingUpdateAndDelete(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	token := registerAndLogin(t, h, "alice")
	car := createCar(t, h, token, models.CarCreate{Year: 2020, Make: "Honda", Model: "Civic"})
	listing := createListing(t, h, token, models.ListingCreate{CarID: car.ID, Price: 25000, Source: "cargurus"})

	listingPath := "/api/v1/cars/" + car.ID + "/listings/" + listing.ID
	newPrice := 24000.0
	rec := doJSON(t, h, http.MethodPatch, listingPath, token, models.ListingPatch{Price: &newPrice})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: status %d, body %s", rec.Code, rec.Body.String())
	}
	var updated models.Listing
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &updated); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if updated.Price != 24000 {
		t.Errorf("price = %v, want 24000", updated.Price)
	}

	rec = doJSON(t, h, http.MethodDelete, listingPath, token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d, want 204", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, listingPath, token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: status %d, want 404", rec.Code)
	}
}

func TestListingWrongCarScope(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	token := registerAndLogin(t, h, "alice")
	civic := createCar(t, h, token, models.CarCreate{Year: 2020, Make: "Honda", Model: "Civic"})
	accord := createCar(t, h, token, models.CarCreate{Year: 2021, Make: "Honda", Model: "Accord"})
	listing := createListing(t, h, token, models.ListingCreate{CarID: civic.ID, Price: 25000, Source: "cargurus"})

	// Reaching a listing through a different car reports it missing.
	rec := doJSON(t, h, http.MethodGet, "/api/v1/cars/"+accord.ID+"/listings/"+listing.ID, token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-car get: status = %d, want 404", rec.Code)
	}

	// A body car_id that contradicts the path is rejected.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/cars/"+accord.ID+"/listings", token, models.ListingCreate{
		CarID:  civic.ID,
		Price:  20000,
		Source: "autotrader",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("mismatched car_id: status = %d, want 400", rec.Code)
	}
}

func TestDecodeVINEndpoint(t *testing.T) {
	year := "2021"
	honda := "HONDA"
	result := &models.VINDecodeResult{VIN: "1HGBH41JXMN109186", Year: &year, Make: &honda}

	tests := []struct {
		name       string
		decoder    VINDecoder
		wantStatus int
		wantCode   string
	}{
		{"success", &fakeDecoder{result: result}, http.StatusOK, ""},
		{"invalid vin", &fakeDecoder{err: vin.ErrInvalidVIN}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"upstream failure", &fakeDecoder{err: vin.ErrUpstream}, http.StatusBadGateway, "UPSTREAM_ERROR"},
		{"circuit open", &fakeDecoder{err: vin.ErrUnavailable}, http.StatusServiceUnavailable, "UPSTREAM_ERROR"},
		{"not configured", nil, http.StatusServiceUnavailable, "UPSTREAM_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestRouter(t, tt.decoder)

			// No session: VIN decoding works without an account.
			rec := doJSON(t, h, http.MethodGet, "/api/v1/vin/1HGBH41JXMN109186", "", nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			env := decodeEnvelope(t, rec)
			if tt.wantCode == "" {
				var got models.VINDecodeResult
				if err := json.Unmarshal(env.Data, &got); err != nil {
					t.Fatalf("decode result: %v", err)
				}
				if got.Make == nil || *got.Make != "HONDA" {
					t.Errorf("make = %v, want HONDA", got.Make)
				}
				return
			}
			if env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
		})
	}
}

func TestRecommendationsEndpoint(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	token := registerAndLogin(t, h, "alice")

	rec := doJSON(t, h, http.MethodPost, "/api/v1/recommendations", token, models.RecommendationRequest{
		Brands: []string{"Honda"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp models.RecommendationResponse
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalCount == 0 {
		t.Error("expected recommendations for Honda")
	}
	for _, r := range resp.Recommendations {
		if r.Make != "Honda" {
			t.Errorf("make = %q, want Honda", r.Make)
		}
	}
}

func TestLiveListingsEndpoint(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	token := registerAndLogin(t, h, "alice")

	rec := doJSON(t, h, http.MethodPost, "/api/v1/live-listings", token, models.LiveListingSearch{})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp models.LiveListingResponse
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalCount < 10 || resp.TotalCount > 20 {
		t.Errorf("total_count = %d, want 10-20", resp.TotalCount)
	}
}

func TestHealthEndpoints(t *testing.T) {
	h, store := newTestRouter(t, nil)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health: status = %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, "/api/v1/health/live", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("live: status = %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, "/api/v1/health/ready", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ready: status = %d", rec.Code)
	}

	store.pingErr = fmt.Errorf("connection refused")
	rec = doJSON(t, h, http.MethodGet, "/api/v1/health/ready", "", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("ready with down DB: status = %d, want 503", rec.Code)
	}
}

func TestDeleteAccount(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	token := registerAndLogin(t, h, "alice")
	car := createCar(t, h, token, models.CarCreate{Year: 2020, Make: "Honda", Model: "Civic"})
	createListing(t, h, token, models.ListingCreate{CarID: car.ID, Price: 25000, Source: "cargurus"})

	rec := doJSON(t, h, http.MethodDelete, "/api/v1/auth/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete account: status %d, body %s", rec.Code, rec.Body.String())
	}

	// The token still decodes but the account is gone.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/auth/me", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("me after delete: status = %d, want 404", rec.Code)
	}
}

func TestMalformedIDRejected(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	token := registerAndLogin(t, h, "alice")
	car := createCar(t, h, token, models.CarCreate{Year: 2020, Make: "Honda", Model: "Civic"})

	// Identifiers that fail UUID parsing must never reach the store,
	// where the failed cast would surface as a 500.
	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/cars/not-a-uuid"},
		{http.MethodPatch, "/api/v1/cars/not-a-uuid"},
		{http.MethodDelete, "/api/v1/cars/not-a-uuid"},
		{http.MethodGet, "/api/v1/cars/not-a-uuid/compare"},
		{http.MethodGet, "/api/v1/cars/not-a-uuid/listings"},
		{http.MethodPost, "/api/v1/cars/not-a-uuid/listings"},
		{http.MethodGet, "/api/v1/cars/" + car.ID + "/listings/not-a-uuid"},
		{http.MethodPatch, "/api/v1/cars/" + car.ID + "/listings/not-a-uuid"},
		{http.MethodDelete, "/api/v1/cars/" + car.ID + "/listings/not-a-uuid"},
		{http.MethodGet, "/api/v1/calculations/not-a-uuid"},
		{http.MethodDelete, "/api/v1/calculations/not-a-uuid"},
	}
	for _, p := range paths {
		rec := doJSON(t, h, p.method, p.path, token, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s %s: status = %d, want 400", p.method, p.path, rec.Code)
			continue
		}
		env := decodeEnvelope(t, rec)
		if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
			t.Errorf("%s %s: error = %+v, want VALIDATION_ERROR", p.method, p.path, env.Error)
		}
	}
}

func TestCompareCacheInvalidatedOnCarUpdate(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	token := registerAndLogin(t, h, "alice")
	car := createCar(t, h, token, models.CarCreate{Year: 2020, Make: "Honda", Model: "Civic"})
	createListing(t, h, token, models.ListingCreate{CarID: car.ID, Price: 25000, Mileage: intPtr(50000), Source: "cargurus"})

	comparePath := "/api/v1/cars/" + car.ID + "/compare"
	rec := doJSON(t, h, http.MethodGet, comparePath, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("compare: status %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, comparePath, token, nil)
	if !decodeEnvelope(t, rec).Metadata.Cached {
		t.Fatal("second compare should be served from cache")
	}

	newYear := 2021
	rec = doJSON(t, h, http.MethodPatch, "/api/v1/cars/"+car.ID, token, models.CarPatch{Year: &newYear})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch car: status %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, comparePath, token, nil)
	if decodeEnvelope(t, rec).Metadata.Cached {
		t.Error("car update should drop the cached comparison")
	}
}

func TestCalculationCRUD(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	token := registerAndLogin(t, h, "alice")

	rec := doJSON(t, h, http.MethodPost, "/api/v1/calculations", token, models.CalculationCreate{
		Type:   "division",
		Inputs: []float64{100, 10, 5},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d, body %s", rec.Code, rec.Body.String())
	}
	var created models.Calculation
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &created); err != nil {
		t.Fatalf("decode calculation: %v", err)
	}
	if created.Result != 2 {
		t.Errorf("result = %v, want 2", created.Result)
	}

	calcPath := "/api/v1/calculations/" + created.ID
	rec = doJSON(t, h, http.MethodPatch, calcPath, token, models.CalculationPatch{
		Inputs: []float64{100, 4},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: status %d, body %s", rec.Code, rec.Body.String())
	}
	var updated models.Calculation
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &updated); err != nil {
		t.Fatalf("decode calculation: %v", err)
	}
	if updated.Result != 25 {
		t.Errorf("result after update = %v, want 25", updated.Result)
	}
	if updated.Type != "division" {
		t.Errorf("type after update = %q, want division", updated.Type)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/calculations", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}
	var list []models.Calculation
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list length = %d, want 1", len(list))
	}

	rec = doJSON(t, h, http.MethodDelete, calcPath, token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d, want 204", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, calcPath, token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: status %d, want 404", rec.Code)
	}
}

func TestCalculationValidation(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	token := registerAndLogin(t, h, "alice")

	tests := []struct {
		name string
		body models.CalculationCreate
	}{
		{"divide by zero", models.CalculationCreate{Type: "division", Inputs: []float64{10, 0}}},
		{"unknown type", models.CalculationCreate{Type: "modulo", Inputs: []float64{10, 3}}},
		{"one input", models.CalculationCreate{Type: "addition", Inputs: []float64{1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/v1/calculations", token, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
			env := decodeEnvelope(t, rec)
			if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
				t.Errorf("error = %+v, want VALIDATION_ERROR", env.Error)
			}
		})
	}
}

func TestCalculationOwnershipIsolation(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	aliceToken := registerAndLogin(t, h, "alice")
	bobToken := registerAndLogin(t, h, "bob")

	rec := doJSON(t, h, http.MethodPost, "/api/v1/calculations", aliceToken, models.CalculationCreate{
		Type:   "addition",
		Inputs: []float64{1, 2},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d", rec.Code)
	}
	var created models.Calculation
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &created); err != nil {
		t.Fatalf("decode calculation: %v", err)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/calculations/"+created.ID, bobToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("bob get alice's calculation: status = %d, want 404", rec.Code)
	}
	rec = doJSON(t, h, http.MethodDelete, "/api/v1/calculations/"+created.ID, bobToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("bob delete alice's calculation: status = %d, want 404", rec.Code)
	}
}
