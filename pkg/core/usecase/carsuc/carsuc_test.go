// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsuc_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/rentweb/crweb/internal/test/memrepo"
	"github.com/rentweb/crweb/pkg/core/auth"
	"github.com/rentweb/crweb/pkg/core/cerr"
	"github.com/rentweb/crweb/pkg/core/model"
	"github.com/rentweb/crweb/pkg/core/repo"
	"github.com/rentweb/crweb/pkg/core/usecase/carsuc"
	"github.com/stretchr/testify/suite"
)

type CarsUseCaseTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Cars *carsuc.UseCase

	customer auth.Actor
	admin    auth.Actor
}

func TestCarsUseCaseTestSuite(t *testing.T) {
	suite.Run(t, &CarsUseCaseTestSuite{Ctx: context.Background()})
}

func (cuts *CarsUseCaseTestSuite) SetupTest() {
	store := memrepo.NewStore()
	cuts.Cars = carsuc.New(store.Pool(), store.Cars())
	cuts.customer = auth.Actor{
		ID: uuid.New(), Role: model.RoleCustomer,
	}
	cuts.admin = auth.Actor{ID: uuid.New(), Role: model.RoleAdmin}
}

func (cuts *CarsUseCaseTestSuite) sampleCar(plate string) *model.Car {
	return &model.Car{
		Brand:        "Volkswagen",
		Model:        "Golf",
		Year:         2023,
		Color:        "blue",
		PricePerDay:  45,
		Category:     model.CategoryCompact,
		FuelType:     model.FuelPetrol,
		Transmission: model.TransmissionManual,
		Seats:        5,
		IsAvailable:  true,
		Location:     "Hamburg",
		LicensePlate: plate,
	}
}

func (cuts *CarsUseCaseTestSuite) assertStatusCode(
	err error, code int,
) {
	var ce *cerr.Error
	cuts.Require().ErrorAs(err, &ce)
	cuts.Equal(code, ce.HTTPStatusCode)
}

func (cuts *CarsUseCaseTestSuite) TestCreate() {
	created, err := cuts.Cars.Create(
		cuts.Ctx, cuts.admin, cuts.sampleCar("HH-VW 100"),
	)
	cuts.Require().NoError(err)
	cuts.NotEqual(uuid.Nil, created.ID)
	cuts.Equal("Volkswagen", created.Brand)
}

func (cuts *CarsUseCaseTestSuite) TestCreateAdminOnly() {
	_, err := cuts.Cars.Create(
		cuts.Ctx, cuts.customer, cuts.sampleCar("HH-VW 100"),
	)
	cuts.ErrorIs(err, carsuc.ErrAdminOnly)
	cuts.assertStatusCode(err, http.StatusForbidden)
}

func (cuts *CarsUseCaseTestSuite) TestCreateValidation() {
	car := cuts.sampleCar("HH-VW 100")
	car.Brand = ""
	_, err := cuts.Cars.Create(cuts.Ctx, cuts.admin, car)
	cuts.ErrorIs(err, carsuc.ErrMissingFields)

	car = cuts.sampleCar("HH-VW 101")
	car.Category = "Spaceship"
	_, err = cuts.Cars.Create(cuts.Ctx, cuts.admin, car)
	cuts.ErrorIs(err, model.ErrUnknownCarCategory)
	cuts.assertStatusCode(err, http.StatusBadRequest)
}

func (cuts *CarsUseCaseTestSuite) TestCreateDuplicatePlate() {
	_, err := cuts.Cars.Create(
		cuts.Ctx, cuts.admin, cuts.sampleCar("HH-VW 100"),
	)
	cuts.Require().NoError(err)
	_, err = cuts.Cars.Create(
		cuts.Ctx, cuts.admin, cuts.sampleCar("HH-VW 100"),
	)
	cuts.assertStatusCode(err, http.StatusConflict)
}

func (cuts *CarsUseCaseTestSuite) TestListFilters() {
	_, err := cuts.Cars.Create(
		cuts.Ctx, cuts.admin, cuts.sampleCar("HH-VW 100"),
	)
	cuts.Require().NoError(err)
	suv := cuts.sampleCar("HH-BW 200")
	suv.Brand = "BMW"
	suv.Model = "X5"
	suv.Category = model.CategorySUV
	suv.PricePerDay = 120
	suv.IsAvailable = false
	_, err = cuts.Cars.Create(cuts.Ctx, cuts.admin, suv)
	cuts.Require().NoError(err)

	cs, err := cuts.Cars.List(cuts.Ctx, repo.CarFilter{})
	cuts.Require().NoError(err)
	cuts.Len(cs, 2)

	category := model.CategorySUV
	cs, err = cuts.Cars.List(
		cuts.Ctx, repo.CarFilter{Category: &category},
	)
	cuts.Require().NoError(err)
	if cuts.Len(cs, 1) {
		cuts.Equal("BMW", cs[0].Brand)
	}

	maxPrice := 50.0
	cs, err = cuts.Cars.List(
		cuts.Ctx, repo.CarFilter{MaxPrice: &maxPrice},
	)
	cuts.Require().NoError(err)
	if cuts.Len(cs, 1) {
		cuts.Equal("Volkswagen", cs[0].Brand)
	}

	cs, err = cuts.Cars.List(
		cuts.Ctx, repo.CarFilter{AvailableOnly: true},
	)
	cuts.Require().NoError(err)
	if cuts.Len(cs, 1) {
		cuts.Equal("Volkswagen", cs[0].Brand)
	}
}

func (cuts *CarsUseCaseTestSuite) TestSearch() {
	_, err := cuts.Cars.Create(
		cuts.Ctx, cuts.admin, cuts.sampleCar("HH-VW 100"),
	)
	cuts.Require().NoError(err)

	cs, err := cuts.Cars.Search(cuts.Ctx, "golf")
	cuts.Require().NoError(err)
	cuts.Len(cs, 1, "model match must be case-insensitive")

	cs, err = cuts.Cars.Search(cuts.Ctx, "hamburg")
	cuts.Require().NoError(err)
	cuts.Len(cs, 1, "location must be searchable")

	cs, err = cuts.Cars.Search(cuts.Ctx, "tesla")
	cuts.Require().NoError(err)
	cuts.Empty(cs)

	_, err = cuts.Cars.Search(cuts.Ctx, "")
	cuts.ErrorIs(err, carsuc.ErrEmptyQuery)
	cuts.assertStatusCode(err, http.StatusBadRequest)
}

func (cuts *CarsUseCaseTestSuite) TestUpdate() {
	created, err := cuts.Cars.Create(
		cuts.Ctx, cuts.admin, cuts.sampleCar("HH-VW 100"),
	)
	cuts.Require().NoError(err)

	price := 55.0
	unavailable := false
	car, err := cuts.Cars.Update(
		cuts.Ctx, cuts.admin, created.ID, repo.CarPatch{
			PricePerDay: &price,
			IsAvailable: &unavailable,
		},
	)
	cuts.Require().NoError(err)
	cuts.InDelta(55.0, car.PricePerDay, 1e-9)
	cuts.False(car.IsAvailable)

	_, err = cuts.Cars.Update(
		cuts.Ctx, cuts.customer, created.ID, repo.CarPatch{},
	)
	cuts.ErrorIs(err, carsuc.ErrAdminOnly)

	bogus := model.FuelType("Coal")
	_, err = cuts.Cars.Update(
		cuts.Ctx, cuts.admin, created.ID,
		repo.CarPatch{FuelType: &bogus},
	)
	cuts.ErrorIs(err, model.ErrUnknownFuelType)
}

func (cuts *CarsUseCaseTestSuite) TestDelete() {
	created, err := cuts.Cars.Create(
		cuts.Ctx, cuts.admin, cuts.sampleCar("HH-VW 100"),
	)
	cuts.Require().NoError(err)

	err = cuts.Cars.Delete(cuts.Ctx, cuts.customer, created.ID)
	cuts.ErrorIs(err, carsuc.ErrAdminOnly)

	err = cuts.Cars.Delete(cuts.Ctx, cuts.admin, created.ID)
	cuts.Require().NoError(err)

	_, err = cuts.Cars.ByID(cuts.Ctx, created.ID)
	cuts.assertStatusCode(err, http.StatusNotFound)

	err = cuts.Cars.Delete(cuts.Ctx, cuts.admin, created.ID)
	cuts.assertStatusCode(err, http.StatusNotFound)
}
