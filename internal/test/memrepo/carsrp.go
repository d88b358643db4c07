// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package memrepo

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentweb/crweb/pkg/core/model"
	"github.com/rentweb/crweb/pkg/core/repo"
)

type carsTable struct {
	rows []*model.Car
}

type carsRepo struct {
	s *Store
}

func (cars carsRepo) Conn(repo.Conn) repo.CarsConnQueryer {
	return carsQueryer{s: cars.s, inTx: false}
}

func (cars carsRepo) Tx(repo.Tx) repo.CarsTxQueryer {
	return carsQueryer{s: cars.s, inTx: true}
}

type carsQueryer struct {
	s    *Store
	inTx bool
}

func (cq carsQueryer) List(
	_ context.Context, f repo.CarFilter,
) ([]*model.Car, error) {
	defer lockIfConn(cq.s, cq.inTx)()
	var cs []*model.Car
	for _, car := range cq.s.cars.rows {
		if matchesFilter(car, f) {
			c := *car
			cs = append(cs, &c)
		}
	}
	sortNewestFirst(cs)
	return cs, nil
}

func matchesFilter(car *model.Car, f repo.CarFilter) bool {
	switch {
	case f.Category != nil && car.Category != *f.Category,
		f.FuelType != nil && car.FuelType != *f.FuelType,
		f.Transmission != nil && car.Transmission != *f.Transmission,
		f.MinPrice != nil && car.PricePerDay < *f.MinPrice,
		f.MaxPrice != nil && car.PricePerDay > *f.MaxPrice,
		f.AvailableOnly && !car.IsAvailable:
		return false
	}
	if f.Location != "" && !containsFold(car.Location, f.Location) {
		return false
	}
	return true
}

func (cq carsQueryer) Search(
	_ context.Context, query string,
) ([]*model.Car, error) {
	defer lockIfConn(cq.s, cq.inTx)()
	var cs []*model.Car
	for _, car := range cq.s.cars.rows {
		if containsFold(car.Brand, query) ||
			containsFold(car.Model, query) ||
			containsFold(string(car.Category), query) ||
			containsFold(car.Location, query) {
			c := *car
			cs = append(cs, &c)
		}
	}
	sortNewestFirst(cs)
	return cs, nil
}

func (cq carsQueryer) ByID(
	_ context.Context, carID uuid.UUID,
) (*model.Car, error) {
	defer lockIfConn(cq.s, cq.inTx)()
	return cq.byID(carID)
}

func (cq carsQueryer) byID(carID uuid.UUID) (*model.Car, error) {
	for _, car := range cq.s.cars.rows {
		if car.ID == carID {
			c := *car
			return &c, nil
		}
	}
	return nil, notFound()
}

func (cq carsQueryer) Create(
	_ context.Context, car *model.Car,
) (*model.Car, error) {
	defer lockIfConn(cq.s, cq.inTx)()
	for _, c := range cq.s.cars.rows {
		if c.LicensePlate == car.LicensePlate {
			return nil, conflict("duplicate license plate")
		}
	}
	c := *car
	c.ID = uuidOrNew(car.ID)
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cq.s.cars.rows = append(cq.s.cars.rows, &c)
	cc := c
	return &cc, nil
}

func (cq carsQueryer) Update(
	_ context.Context, carID uuid.UUID, p repo.CarPatch,
) (*model.Car, error) {
	defer lockIfConn(cq.s, cq.inTx)()
	for _, car := range cq.s.cars.rows {
		if car.ID != carID {
			continue
		}
		applyCarPatch(car, p)
		car.UpdatedAt = time.Now()
		c := *car
		return &c, nil
	}
	return nil, notFound()
}

func applyCarPatch(car *model.Car, p repo.CarPatch) {
	setIf(&car.Brand, p.Brand)
	setIf(&car.Model, p.Model)
	setIf(&car.Year, p.Year)
	setIf(&car.Color, p.Color)
	setIf(&car.PricePerDay, p.PricePerDay)
	setIf(&car.Category, p.Category)
	setIf(&car.FuelType, p.FuelType)
	setIf(&car.Transmission, p.Transmission)
	setIf(&car.Seats, p.Seats)
	setIf(&car.Image, p.Image)
	setIf(&car.IsAvailable, p.IsAvailable)
	setIf(&car.Location, p.Location)
	setIf(&car.Description, p.Description)
	if p.Features != nil {
		car.Features = p.Features
	}
}

func (cq carsQueryer) Delete(
	_ context.Context, carID uuid.UUID,
) error {
	defer lockIfConn(cq.s, cq.inTx)()
	for i, car := range cq.s.cars.rows {
		if car.ID == carID {
			cq.s.cars.rows = append(
				cq.s.cars.rows[:i], cq.s.cars.rows[i+1:]...,
			)
			return nil
		}
	}
	return notFound()
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(
		strings.ToLower(s), strings.ToLower(substr),
	)
}

func sortNewestFirst(cs []*model.Car) {
	sort.SliceStable(cs, func(i, j int) bool {
		return cs[i].CreatedAt.After(cs[j].CreatedAt)
	})
}
