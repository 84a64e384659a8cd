// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mpreston/carcompare/internal/auth"
	"github.com/mpreston/carcompare/internal/config"
	"github.com/mpreston/carcompare/internal/middleware"
)

// Router assembles the HTTP routing tree.
type Router struct {
	handler       *Handler
	authMW        *auth.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter wires the routing dependencies.
func NewRouter(handler *Handler, authMW *auth.Middleware, cfg *config.Config) *Router {
	return &Router{
		handler:       handler,
		authMW:        authMW,
		chiMiddleware: NewChiMiddleware(&cfg.Security),
	}
}

// Setup builds the chi routing tree. Health and auth endpoints are
// public; everything else requires a valid session token.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AccessLog)
	r.Use(router.chiMiddleware.CORS())

	// Prometheus scrape endpoint, outside the API envelope.
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())

		// Credential endpoints get the strict limiter on top.
		r.With(router.chiMiddleware.RateLimitLogin()).Post("/register", router.handler.Register)
		r.With(router.chiMiddleware.RateLimitLogin()).Post("/login", router.handler.Login)
		r.Post("/logout", router.handler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(router.authMW.Authenticate)
			r.Get("/me", router.handler.Me)
			r.Delete("/me", router.handler.DeleteAccount)
		})
	})

	// VIN decoding is a public utility; it touches no account data.
	r.With(router.chiMiddleware.RateLimit()).
		Get("/api/v1/vin/{vin}", router.handler.DecodeVIN)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(router.authMW.Authenticate)

		r.Route("/cars", func(r chi.Router) {
			r.Post("/", router.handler.CreateCar)
			r.Get("/", router.handler.ListCars)
			r.Get("/{id}", router.handler.GetCar)
			r.Patch("/{id}", router.handler.UpdateCar)
			r.Delete("/{id}", router.handler.DeleteCar)
			r.Get("/{id}/compare", router.handler.CompareCar)

			// Listings are scoped under their parent car.
			r.Route("/{id}/listings", func(r chi.Router) {
				r.Post("/", router.handler.CreateListing)
				r.Get("/", router.handler.ListCarListings)
				r.Get("/{listingID}", router.handler.GetListing)
				r.Patch("/{listingID}", router.handler.UpdateListing)
				r.Delete("/{listingID}", router.handler.DeleteListing)
			})
		})

		// Cross-car view of every listing the account tracks.
		r.Get("/listings", router.handler.ListListings)

		r.Route("/calculations", func(r chi.Router) {
			r.Post("/", router.handler.CreateCalculation)
			r.Get("/", router.handler.ListCalculations)
			r.Get("/{id}", router.handler.GetCalculation)
			r.Patch("/{id}", router.handler.UpdateCalculation)
			r.Delete("/{id}", router.handler.DeleteCalculation)
		})

		r.Post("/recommendations", router.handler.Recommendations)
		r.Post("/live-listings", router.handler.LiveListings)
	})

	return r
}
