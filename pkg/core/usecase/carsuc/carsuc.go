// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsuc contains the cars use case which supports the fleet
// management use cases: filtered listing and substring search for all
// callers, and creation, update, and deletion of cars for
// administrators.
package carsuc

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rentweb/crweb/pkg/core/auth"
	"github.com/rentweb/crweb/pkg/core/cerr"
	"github.com/rentweb/crweb/pkg/core/log"
	"github.com/rentweb/crweb/pkg/core/model"
	"github.com/rentweb/crweb/pkg/core/repo"
)

// Failure conditions of the cars use case operations.
var (
	ErrMissingFields = errors.New("missing required car fields")
	ErrEmptyQuery    = errors.New("search query is required")
	ErrAdminOnly     = errors.New("administrator role is required")
)

// UseCase represents the cars use case. It holds a database
// connection pool and the cars repository instance (to be guided
// with the DB pool).
type UseCase struct {
	pool   repo.Pool
	carsrp repo.Cars
}

// New instantiates a cars use case.
func New(p repo.Pool, c repo.Cars) *UseCase {
	return &UseCase{pool: p, carsrp: c}
}

// List returns the cars matching the f filter, sorted by creation
// time descending.
func (cars *UseCase) List(
	ctx context.Context, f repo.CarFilter,
) (cs []*model.Car, err error) {
	err = cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := cars.carsrp.Conn(c)
		cs, err = q.List(ctx, f)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cs, nil
}

// Search returns the cars whose brand, model, category, or location
// contains the query string, compared case-insensitively.
func (cars *UseCase) Search(
	ctx context.Context, query string,
) (cs []*model.Car, err error) {
	if query == "" {
		return nil, cerr.BadRequest(ErrEmptyQuery)
	}
	err = cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := cars.carsrp.Conn(c)
		cs, err = q.Search(ctx, query)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cs, nil
}

// ByID returns the carID car.
func (cars *UseCase) ByID(
	ctx context.Context, carID uuid.UUID,
) (car *model.Car, err error) {
	err = cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := cars.carsrp.Conn(c)
		car, err = q.ByID(ctx, carID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return car, nil
}

// Create persists the given car on behalf of the actor, which must
// hold the administrator role. A duplicate license plate is reported
// as a conflict.
func (cars *UseCase) Create(
	ctx context.Context, actor auth.Actor, car *model.Car,
) (created *model.Car, err error) {
	if !actor.Role.IsAdmin() {
		return nil, cerr.Authorization(ErrAdminOnly)
	}
	switch {
	case car.Brand == "", car.Model == "", car.Year == 0,
		car.PricePerDay == 0, car.LicensePlate == "":
		return nil, cerr.BadRequest(ErrMissingFields)
	}
	if err := validateTags(car.Category, car.FuelType, car.Transmission); err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := cars.carsrp.Conn(c)
		created, err = q.Create(ctx, car)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "car created",
		log.ID("car", created.ID),
		log.ID("actor", actor.ID),
	)
	return created, nil
}

// Update applies the p patch over the carID car on behalf of the
// actor, which must hold the administrator role. The id and license
// plate of a car are immutable.
func (cars *UseCase) Update(
	ctx context.Context, actor auth.Actor, carID uuid.UUID, p repo.CarPatch,
) (car *model.Car, err error) {
	if !actor.Role.IsAdmin() {
		return nil, cerr.Authorization(ErrAdminOnly)
	}
	if err := validatePatchTags(p); err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := cars.carsrp.Conn(c)
		car, err = q.Update(ctx, carID, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return car, nil
}

// Delete removes the carID car on behalf of the actor, which must
// hold the administrator role. Existing bookings keep referring to
// the price snapshot they were created with.
func (cars *UseCase) Delete(
	ctx context.Context, actor auth.Actor, carID uuid.UUID,
) error {
	if !actor.Role.IsAdmin() {
		return cerr.Authorization(ErrAdminOnly)
	}
	err := cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := cars.carsrp.Conn(c)
		return q.Delete(ctx, carID)
	})
	if err != nil {
		return err
	}
	log.Info(ctx, "car deleted",
		log.ID("car", carID),
		log.ID("actor", actor.ID),
	)
	return nil
}

func validateTags(
	cat model.CarCategory, fuel model.FuelType, tr model.Transmission,
) error {
	if err := cat.Validate(); err != nil {
		return fmt.Errorf("category %q: %w", cat, err)
	}
	if err := fuel.Validate(); err != nil {
		return fmt.Errorf("fuel type %q: %w", fuel, err)
	}
	if err := tr.Validate(); err != nil {
		return fmt.Errorf("transmission %q: %w", tr, err)
	}
	return nil
}

func validatePatchTags(p repo.CarPatch) error {
	if p.Category != nil {
		if err := p.Category.Validate(); err != nil {
			return fmt.Errorf("category %q: %w", *p.Category, err)
		}
	}
	if p.FuelType != nil {
		if err := p.FuelType.Validate(); err != nil {
			return fmt.Errorf("fuel type %q: %w", *p.FuelType, err)
		}
	}
	if p.Transmission != nil {
		if err := p.Transmission.Validate(); err != nil {
			return fmt.Errorf("transmission %q: %w", *p.Transmission, err)
		}
	}
	return nil
}
