// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package api

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mpreston/carcompare/internal/database"
	"github.com/mpreston/carcompare/internal/models"
)

// fakeStore is an in-memory Store with the same ownership and error
// semantics as the DuckDB implementation.
type fakeStore struct {
	mu           sync.Mutex
	users        map[string]*models.User
	cars         map[string]*models.Car
	listings     []*models.Listing
	calculations []*models.Calculation
	pingErr      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: make(map[string]*models.User),
		cars:  make(map[string]*models.Car),
	}
}

func (s *fakeStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return database.ErrUsernameTaken
		}
		if u.Email == user.Email {
			return database.ErrEmailTaken
		}
	}
	user.ID = uuid.New().String()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *fakeStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, database.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *fakeStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, database.ErrUserNotFound
}

func (s *fakeStore) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return database.ErrUserNotFound
	}
	delete(s.users, id)
	for carID, c := range s.cars {
		if c.UserID == id {
			delete(s.cars, carID)
		}
	}
	kept := s.listings[:0]
	for _, l := range s.listings {
		if l.UserID != id {
			kept = append(kept, l)
		}
	}
	s.listings = kept
	keptCalcs := s.calculations[:0]
	for _, c := range s.calculations {
		if c.UserID != id {
			keptCalcs = append(keptCalcs, c)
		}
	}
	s.calculations = keptCalcs
	return nil
}

func (s *fakeStore) CreateCar(_ context.Context, car *models.Car) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	car.ID = uuid.New().String()
	now := time.Now().UTC()
	car.CreatedAt = now
	car.UpdatedAt = now
	clone := *car
	s.cars[car.ID] = &clone
	return nil
}

func (s *fakeStore) GetCar(_ context.Context, id, userID string) (*models.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getCarLocked(id, userID)
}

func (s *fakeStore) getCarLocked(id, userID string) (*models.Car, error) {
	c, ok := s.cars[id]
	if !ok || c.UserID != userID {
		return nil, database.ErrCarNotFound
	}
	clone := *c
	return &clone, nil
}

func (s *fakeStore) ListCars(_ context.Context, userID string) ([]models.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Car{}
	for _, c := range s.cars {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *fakeStore) UpdateCar(_ context.Context, id, userID string, patch *models.CarPatch) (*models.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cars[id]
	if !ok || c.UserID != userID {
		return nil, database.ErrCarNotFound
	}
	patch.Apply(c, time.Now().UTC())
	clone := *c
	return &clone, nil
}

func (s *fakeStore) DeleteCar(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cars[id]
	if !ok || c.UserID != userID {
		return database.ErrCarNotFound
	}
	delete(s.cars, id)
	kept := s.listings[:0]
	for _, l := range s.listings {
		if l.CarID != id {
			kept = append(kept, l)
		}
	}
	s.listings = kept
	return nil
}

func (s *fakeStore) CreateListing(_ context.Context, listing *models.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.getCarLocked(listing.CarID, listing.UserID); err != nil {
		return err
	}
	listing.ID = uuid.New().String()
	now := time.Now().UTC()
	listing.CreatedAt = now
	listing.UpdatedAt = now
	clone := *listing
	s.listings = append(s.listings, &clone)
	return nil
}

func (s *fakeStore) GetListing(_ context.Context, id, userID string) (*models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.listings {
		if l.ID == id && l.UserID == userID {
			clone := *l
			return &clone, nil
		}
	}
	return nil, database.ErrListingNotFound
}

func (s *fakeStore) ListListings(_ context.Context, userID string) ([]models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Listing{}
	for _, l := range s.listings {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (s *fakeStore) ListListingsByCar(_ context.Context, carID, userID string) ([]models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.getCarLocked(carID, userID); err != nil {
		return nil, err
	}
	out := []models.Listing{}
	for _, l := range s.listings {
		if l.CarID == carID && l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (s *fakeStore) UpdateListing(_ context.Context, id, userID string, patch *models.ListingPatch) (*models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.listings {
		if l.ID == id && l.UserID == userID {
			patch.Apply(l, time.Now().UTC())
			clone := *l
			return &clone, nil
		}
	}
	return nil, database.ErrListingNotFound
}

func (s *fakeStore) DeleteListing(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.listings {
		if l.ID == id && l.UserID == userID {
			s.listings = append(s.listings[:i], s.listings[i+1:]...)
			return nil
		}
	}
	return database.ErrListingNotFound
}

func (s *fakeStore) CreateCalculation(_ context.Context, calculation *models.Calculation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	calculation.ID = uuid.New().String()
	now := time.Now().UTC()
	calculation.CreatedAt = now
	calculation.UpdatedAt = now
	clone := *calculation
	s.calculations = append(s.calculations, &clone)
	return nil
}

func (s *fakeStore) GetCalculation(_ context.Context, id, userID string) (*models.Calculation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.calculations {
		if c.ID == id && c.UserID == userID {
			clone := *c
			return &clone, nil
		}
	}
	return nil, database.ErrCalculationNotFound
}

func (s *fakeStore) ListCalculations(_ context.Context, userID string) ([]models.Calculation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Calculation{}
	for _, c := range s.calculations {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *fakeStore) UpdateCalculation(_ context.Context, id, userID string, inputs []float64, result float64) (*models.Calculation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.calculations {
		if c.ID == id && c.UserID == userID {
			c.Inputs = inputs
			c.Result = result
			c.UpdatedAt = time.Now().UTC()
			clone := *c
			return &clone, nil
		}
	}
	return nil, database.ErrCalculationNotFound
}

func (s *fakeStore) DeleteCalculation(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.calculations {
		if c.ID == id && c.UserID == userID {
			s.calculations = append(s.calculations[:i], s.calculations[i+1:]...)
			return nil
		}
	}
	return database.ErrCalculationNotFound
}

func (s *fakeStore) Ping(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pingErr
}
