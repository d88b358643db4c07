// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package bookingsuc_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentweb/crweb/internal/test/memrepo"
	"github.com/rentweb/crweb/pkg/core/auth"
	"github.com/rentweb/crweb/pkg/core/cerr"
	"github.com/rentweb/crweb/pkg/core/model"
	"github.com/rentweb/crweb/pkg/core/repo"
	"github.com/rentweb/crweb/pkg/core/usecase/bookingsuc"
	"github.com/stretchr/testify/suite"
)

type BookingsUseCaseTestSuite struct {
	suite.Suite

	Ctx      context.Context
	Store    *memrepo.Store
	Bookings *bookingsuc.UseCase

	customer auth.Actor
	other    auth.Actor
	admin    auth.Actor
	car      *model.Car
}

func TestBookingsUseCaseTestSuite(t *testing.T) {
	suite.Run(t, &BookingsUseCaseTestSuite{Ctx: context.Background()})
}

func (buts *BookingsUseCaseTestSuite) SetupTest() {
	buts.Store = memrepo.NewStore()
	buts.Bookings = bookingsuc.New(
		buts.Store.Pool(), buts.Store.Bookings(), buts.Store.Cars(),
	)
	buts.customer = auth.Actor{
		ID: uuid.New(), Role: model.RoleCustomer,
	}
	buts.other = auth.Actor{ID: uuid.New(), Role: model.RoleCustomer}
	buts.admin = auth.Actor{ID: uuid.New(), Role: model.RoleAdmin}
	buts.car = buts.seedCar("ABC-123", 50, true)
}

func (buts *BookingsUseCaseTestSuite) seedCar(
	plate string, pricePerDay float64, available bool,
) *model.Car {
	var car *model.Car
	err := buts.Store.Pool().Conn(
		buts.Ctx, func(ctx context.Context, c repo.Conn) error {
			var err error
			car, err = buts.Store.Cars().Conn(c).Create(
				ctx, &model.Car{
					Brand:        "Toyota",
					Model:        "Corolla",
					Year:         2022,
					PricePerDay:  pricePerDay,
					Category:     model.CategoryEconomy,
					FuelType:     model.FuelPetrol,
					Transmission: model.TransmissionManual,
					Seats:        5,
					IsAvailable:  available,
					Location:     "Berlin",
					LicensePlate: plate,
				},
			)
			return err
		},
	)
	buts.Require().NoError(err, "failed to seed a car")
	return car
}

func (buts *BookingsUseCaseTestSuite) date(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func (buts *BookingsUseCaseTestSuite) createReq(
	start, end int,
) bookingsuc.CreateRequest {
	return bookingsuc.CreateRequest{
		CarID:           buts.car.ID,
		StartDate:       buts.date(start),
		EndDate:         buts.date(end),
		PickupLocation:  "Berlin Airport",
		DropoffLocation: "Berlin Central",
	}
}

func (buts *BookingsUseCaseTestSuite) assertStatusCode(
	err error, code int,
) {
	var ce *cerr.Error
	buts.Require().ErrorAs(err, &ce)
	buts.Equal(code, ce.HTTPStatusCode)
}

func (buts *BookingsUseCaseTestSuite) TestCreate() {
	b, err := buts.Bookings.Create(
		buts.Ctx, buts.customer, buts.createReq(10, 13),
	)
	buts.Require().NoError(err)
	buts.Equal(buts.customer.ID, b.UserID)
	buts.Equal(buts.car.ID, b.CarID)
	buts.Equal(model.BookingPending, b.Status)
	buts.Equal(model.PaymentPending, b.PaymentStatus)
	buts.Equal(3, b.TotalDays)
	buts.InDelta(150.0, b.TotalAmount, 1e-9, "3 days x $50")
	if buts.NotNil(b.Car, "car reference must be resolved") {
		buts.Equal("Toyota", b.Car.Brand)
	}
}

func (buts *BookingsUseCaseTestSuite) TestCreatePartialDayCharge() {
	req := buts.createReq(10, 12)
	req.EndDate = req.EndDate.Add(time.Hour)
	b, err := buts.Bookings.Create(buts.Ctx, buts.customer, req)
	buts.Require().NoError(err)
	buts.Equal(3, b.TotalDays, "partial day must be charged fully")
	buts.InDelta(150.0, b.TotalAmount, 1e-9)
}

func (buts *BookingsUseCaseTestSuite) TestCreatePriceSnapshot() {
	b, err := buts.Bookings.Create(
		buts.Ctx, buts.customer, buts.createReq(10, 13),
	)
	buts.Require().NoError(err)
	// a later price change must not affect the stored amount
	newPrice := 80.0
	err = buts.Store.Pool().Conn(
		buts.Ctx, func(ctx context.Context, c repo.Conn) error {
			_, err := buts.Store.Cars().Conn(c).Update(
				ctx, buts.car.ID,
				repo.CarPatch{PricePerDay: &newPrice},
			)
			return err
		},
	)
	buts.Require().NoError(err)
	b2, err := buts.Bookings.ByID(buts.Ctx, buts.customer, b.ID)
	buts.Require().NoError(err)
	buts.InDelta(150.0, b2.TotalAmount, 1e-9)
}

func (buts *BookingsUseCaseTestSuite) TestCreateValidation() {
	for _, tc := range []struct {
		name   string
		mutate func(r *bookingsuc.CreateRequest)
	}{
		{"no car id", func(r *bookingsuc.CreateRequest) {
			r.CarID = uuid.Nil
		}},
		{"no start date", func(r *bookingsuc.CreateRequest) {
			r.StartDate = time.Time{}
		}},
		{"no end date", func(r *bookingsuc.CreateRequest) {
			r.EndDate = time.Time{}
		}},
		{"no pickup location", func(r *bookingsuc.CreateRequest) {
			r.PickupLocation = ""
		}},
		{"no dropoff location", func(r *bookingsuc.CreateRequest) {
			r.DropoffLocation = ""
		}},
	} {
		buts.Run(tc.name, func() {
			req := buts.createReq(10, 13)
			tc.mutate(&req)
			_, err := buts.Bookings.Create(buts.Ctx, buts.customer, req)
			buts.ErrorIs(err, bookingsuc.ErrMissingFields)
			buts.assertStatusCode(err, http.StatusBadRequest)
		})
	}
}

func (buts *BookingsUseCaseTestSuite) TestCreateInvalidInterval() {
	for _, tc := range []struct {
		name       string
		start, end int
	}{
		{"inverted", 13, 10},
		{"empty", 10, 10},
	} {
		buts.Run(tc.name, func() {
			_, err := buts.Bookings.Create(
				buts.Ctx, buts.customer, buts.createReq(tc.start, tc.end),
			)
			buts.ErrorIs(err, bookingsuc.ErrInvalidInterval)
			buts.assertStatusCode(err, http.StatusBadRequest)
		})
	}
}

func (buts *BookingsUseCaseTestSuite) TestCreateMissingCar() {
	req := buts.createReq(10, 13)
	req.CarID = uuid.New()
	_, err := buts.Bookings.Create(buts.Ctx, buts.customer, req)
	buts.assertStatusCode(err, http.StatusNotFound)
}

func (buts *BookingsUseCaseTestSuite) TestCreateUnavailableCar() {
	unavailable := buts.seedCar("DEF-456", 60, false)
	req := buts.createReq(10, 13)
	req.CarID = unavailable.ID
	_, err := buts.Bookings.Create(buts.Ctx, buts.customer, req)
	buts.ErrorIs(err, bookingsuc.ErrCarNotAvailable)
	buts.assertStatusCode(err, http.StatusBadRequest)
}

func (buts *BookingsUseCaseTestSuite) TestCreateConflict() {
	b, err := buts.Bookings.Create(
		buts.Ctx, buts.customer, buts.createReq(10, 15),
	)
	buts.Require().NoError(err)
	buts.confirm(b.ID)

	for _, tc := range []struct {
		name       string
		start, end int
		conflicts  bool
	}{
		{"contained", 11, 12, true},
		{"containing", 5, 25, true},
		{"partial", 14, 20, true},
		{"touching start", 5, 10, true},
		{"touching end", 15, 20, true},
		{"disjoint before", 1, 5, false},
		{"disjoint after", 20, 25, false},
	} {
		buts.Run(tc.name, func() {
			b, err := buts.Bookings.Create(
				buts.Ctx, buts.other, buts.createReq(tc.start, tc.end),
			)
			if tc.conflicts {
				buts.ErrorIs(err, bookingsuc.ErrDatesConflict)
				buts.assertStatusCode(err, http.StatusConflict)
				return
			}
			buts.Require().NoError(err)
			buts.cancel(b.ID)
		})
	}
}

func (buts *BookingsUseCaseTestSuite) TestCreateIgnoresTerminal() {
	// cancelled bookings must not block the car
	b, err := buts.Bookings.Create(
		buts.Ctx, buts.customer, buts.createReq(10, 15),
	)
	buts.Require().NoError(err)
	buts.confirm(b.ID)
	_, err = buts.Bookings.Cancel(buts.Ctx, buts.customer, b.ID)
	buts.Require().NoError(err)

	_, err = buts.Bookings.Create(
		buts.Ctx, buts.other, buts.createReq(12, 14),
	)
	buts.NoError(err)
}

func (buts *BookingsUseCaseTestSuite) TestPendingDoesNotBlock() {
	_, err := buts.Bookings.Create(
		buts.Ctx, buts.customer, buts.createReq(10, 15),
	)
	buts.Require().NoError(err)
	// an unconfirmed booking holds no reservation yet
	_, err = buts.Bookings.Create(
		buts.Ctx, buts.other, buts.createReq(12, 14),
	)
	buts.NoError(err)
}

func (buts *BookingsUseCaseTestSuite) confirm(bookingID uuid.UUID) {
	confirmed := model.BookingConfirmed
	_, err := buts.Bookings.UpdateStatus(
		buts.Ctx, buts.admin, bookingID,
		repo.BookingPatch{Status: &confirmed},
	)
	buts.Require().NoError(err, "failed to confirm booking")
}

func (buts *BookingsUseCaseTestSuite) cancel(bookingID uuid.UUID) {
	cancelled := model.BookingCancelled
	_, err := buts.Bookings.UpdateStatus(
		buts.Ctx, buts.admin, bookingID,
		repo.BookingPatch{Status: &cancelled},
	)
	buts.Require().NoError(err, "failed to cancel booking")
}

func (buts *BookingsUseCaseTestSuite) TestCancel() {
	for _, tc := range []struct {
		name    string
		status  model.BookingStatus
		confirm bool
	}{
		{"pending", model.BookingPending, false},
		{"confirmed", model.BookingConfirmed, true},
	} {
		buts.Run(tc.name, func() {
			b, err := buts.Bookings.Create(
				buts.Ctx, buts.customer, buts.createReq(10, 13),
			)
			buts.Require().NoError(err)
			if tc.confirm {
				buts.confirm(b.ID)
			}
			cancelled, err := buts.Bookings.Cancel(
				buts.Ctx, buts.customer, b.ID,
			)
			buts.Require().NoError(err)
			buts.Equal(model.BookingCancelled, cancelled.Status)
		})
	}
}

func (buts *BookingsUseCaseTestSuite) TestCancelRejected() {
	for _, status := range []model.BookingStatus{
		model.BookingActive,
		model.BookingCompleted,
		model.BookingCancelled,
	} {
		buts.Run(string(status), func() {
			b, err := buts.Bookings.Create(
				buts.Ctx, buts.customer, buts.createReq(10, 13),
			)
			buts.Require().NoError(err)
			s := status
			_, err = buts.Bookings.UpdateStatus(
				buts.Ctx, buts.admin, b.ID,
				repo.BookingPatch{Status: &s},
			)
			buts.Require().NoError(err)
			_, err = buts.Bookings.Cancel(buts.Ctx, buts.customer, b.ID)
			buts.ErrorIs(err, bookingsuc.ErrCannotCancel)
			buts.assertStatusCode(err, http.StatusBadRequest)
			buts.cancel(b.ID)
		})
	}
}

func (buts *BookingsUseCaseTestSuite) TestCancelOwnership() {
	b, err := buts.Bookings.Create(
		buts.Ctx, buts.customer, buts.createReq(10, 13),
	)
	buts.Require().NoError(err)

	_, err = buts.Bookings.Cancel(buts.Ctx, buts.other, b.ID)
	buts.ErrorIs(err, bookingsuc.ErrNotOwner)
	buts.assertStatusCode(err, http.StatusForbidden)

	// admins may cancel bookings of any user
	cancelled, err := buts.Bookings.Cancel(buts.Ctx, buts.admin, b.ID)
	buts.Require().NoError(err)
	buts.Equal(model.BookingCancelled, cancelled.Status)
}

func (buts *BookingsUseCaseTestSuite) TestUpdateStatus() {
	b, err := buts.Bookings.Create(
		buts.Ctx, buts.customer, buts.createReq(10, 13),
	)
	buts.Require().NoError(err)

	active := model.BookingActive
	mileage := 42000
	fuel := model.FuelFull
	updated, err := buts.Bookings.UpdateStatus(
		buts.Ctx, buts.admin, b.ID, repo.BookingPatch{
			Status:          &active,
			MileageBefore:   &mileage,
			FuelLevelBefore: &fuel,
		},
	)
	buts.Require().NoError(err)
	buts.Equal(model.BookingActive, updated.Status)
	if buts.NotNil(updated.MileageBefore) {
		buts.Equal(42000, *updated.MileageBefore)
	}
	buts.Equal(model.FuelFull, updated.FuelLevelBefore)
}

func (buts *BookingsUseCaseTestSuite) TestUpdateStatusAdminOnly() {
	b, err := buts.Bookings.Create(
		buts.Ctx, buts.customer, buts.createReq(10, 13),
	)
	buts.Require().NoError(err)
	confirmed := model.BookingConfirmed
	_, err = buts.Bookings.UpdateStatus(
		buts.Ctx, buts.customer, b.ID,
		repo.BookingPatch{Status: &confirmed},
	)
	buts.ErrorIs(err, bookingsuc.ErrAdminOnly)
	buts.assertStatusCode(err, http.StatusForbidden)
}

func (buts *BookingsUseCaseTestSuite) TestUpdateStatusValidation() {
	b, err := buts.Bookings.Create(
		buts.Ctx, buts.customer, buts.createReq(10, 13),
	)
	buts.Require().NoError(err)
	bogus := model.BookingStatus("archived")
	_, err = buts.Bookings.UpdateStatus(
		buts.Ctx, buts.admin, b.ID, repo.BookingPatch{Status: &bogus},
	)
	buts.ErrorIs(err, model.ErrUnknownBookingStatus)
	buts.assertStatusCode(err, http.StatusBadRequest)
}

func (buts *BookingsUseCaseTestSuite) TestByIDOwnership() {
	b, err := buts.Bookings.Create(
		buts.Ctx, buts.customer, buts.createReq(10, 13),
	)
	buts.Require().NoError(err)

	got, err := buts.Bookings.ByID(buts.Ctx, buts.customer, b.ID)
	buts.Require().NoError(err)
	buts.Equal(b.ID, got.ID)

	_, err = buts.Bookings.ByID(buts.Ctx, buts.other, b.ID)
	buts.ErrorIs(err, bookingsuc.ErrNotOwner)
	buts.assertStatusCode(err, http.StatusForbidden)

	_, err = buts.Bookings.ByID(buts.Ctx, buts.admin, b.ID)
	buts.NoError(err, "admins may read bookings of any user")
}

func (buts *BookingsUseCaseTestSuite) TestByIDMissing() {
	_, err := buts.Bookings.ByID(buts.Ctx, buts.admin, uuid.New())
	buts.assertStatusCode(err, http.StatusNotFound)
}

func (buts *BookingsUseCaseTestSuite) TestListForActor() {
	_, err := buts.Bookings.Create(
		buts.Ctx, buts.customer, buts.createReq(10, 13),
	)
	buts.Require().NoError(err)
	_, err = buts.Bookings.Create(
		buts.Ctx, buts.other, buts.createReq(20, 23),
	)
	buts.Require().NoError(err)

	bs, err := buts.Bookings.ListForActor(buts.Ctx, buts.customer)
	buts.Require().NoError(err)
	if buts.Len(bs, 1) {
		buts.Equal(buts.customer.ID, bs[0].UserID)
	}
}

func (buts *BookingsUseCaseTestSuite) TestListAll() {
	_, err := buts.Bookings.Create(
		buts.Ctx, buts.customer, buts.createReq(10, 13),
	)
	buts.Require().NoError(err)
	_, err = buts.Bookings.Create(
		buts.Ctx, buts.other, buts.createReq(20, 23),
	)
	buts.Require().NoError(err)

	_, err = buts.Bookings.ListAll(buts.Ctx, buts.customer)
	buts.ErrorIs(err, bookingsuc.ErrAdminOnly)

	bs, err := buts.Bookings.ListAll(buts.Ctx, buts.admin)
	buts.Require().NoError(err)
	buts.Len(bs, 2)
}

func (buts *BookingsUseCaseTestSuite) TestErrorsExposeNoInternals() {
	_, err := buts.Bookings.Create(
		buts.Ctx, buts.customer, buts.createReq(13, 10),
	)
	var ce *cerr.Error
	buts.Require().True(errors.As(err, &ce))
	buts.NotContains(ce.Err.Error(), "SQLSTATE")
}
