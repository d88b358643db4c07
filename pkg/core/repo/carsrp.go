// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentweb/crweb/pkg/core/model"
)

// CarFilter restricts a cars listing. Nil or zero fields do not
// filter. Location matches with a case-insensitive substring test,
// prices with an inclusive range, and the rest with equality.
type CarFilter struct {
	Category      *model.CarCategory
	FuelType      *model.FuelType
	Transmission  *model.Transmission
	MinPrice      *float64
	MaxPrice      *float64
	Location      string
	AvailableOnly bool
}

// CarPatch is a partial update of the mutable car fields. Nil fields
// keep their stored values. The id and license plate of a car are
// immutable and so have no patch counterpart.
type CarPatch struct {
	Brand        *string
	Model        *string
	Year         *int
	Color        *string
	PricePerDay  *float64
	Category     *model.CarCategory
	FuelType     *model.FuelType
	Transmission *model.Transmission
	Seats        *int
	Features     []string
	Image        *string
	IsAvailable  *bool
	Location     *string
	Description  *string
}

type CarsConnQueryer interface {
	CarsQueryer
}

type CarsTxQueryer interface {
	CarsQueryer
}

// CarsQueryer is the cars repository contract. Listings are sorted
// by creation time descending. Create reports a violated license
// plate uniqueness and Update/Delete/ByID report an absent id with
// errors wrapped by the cerr package.
type CarsQueryer interface {
	List(ctx context.Context, f CarFilter) ([]*model.Car, error)
	Search(ctx context.Context, query string) ([]*model.Car, error)
	ByID(ctx context.Context, carID uuid.UUID) (*model.Car, error)
	Create(ctx context.Context, car *model.Car) (*model.Car, error)
	Update(ctx context.Context, carID uuid.UUID, p CarPatch) (*model.Car, error)
	Delete(ctx context.Context, carID uuid.UUID) error
}

type Cars interface {
	Conn(Conn) CarsConnQueryer
	Tx(Tx) CarsTxQueryer
}
