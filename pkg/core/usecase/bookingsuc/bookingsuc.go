// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bookingsuc contains the bookings use case which manages the
// booking lifecycle: creation of a pending booking after checking the
// car availability, cancellation by the owner or an administrator,
// administrative status and condition-report updates, and the read
// projections. All operations take an explicit auth.Actor argument
// and authorize themselves against it.
package bookingsuc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentweb/crweb/pkg/core/auth"
	"github.com/rentweb/crweb/pkg/core/cerr"
	"github.com/rentweb/crweb/pkg/core/log"
	"github.com/rentweb/crweb/pkg/core/model"
	"github.com/rentweb/crweb/pkg/core/repo"
)

// Failure conditions of the booking lifecycle operations. Callers
// receive them wrapped in a cerr.Error carrying the relevant HTTP
// status code.
var (
	ErrMissingFields   = errors.New("missing required booking fields")
	ErrInvalidInterval = errors.New("end date must be after start date")
	ErrCarNotAvailable = errors.New("car is not available")
	ErrDatesConflict   = errors.New("car is already booked for the selected dates")
	ErrCannotCancel    = errors.New("cannot cancel an active or completed booking")
	ErrNotOwner        = errors.New("not authorized to access this booking")
	ErrAdminOnly       = errors.New("administrator role is required")
)

// UseCase represents the bookings use case. It holds a database
// connection pool beside the bookings and cars repository instances
// (to be guided with the DB pool).
type UseCase struct {
	pool       repo.Pool
	bookingsrp repo.Bookings
	carsrp     repo.Cars
}

// New instantiates a bookings use case.
func New(p repo.Pool, b repo.Bookings, c repo.Cars) *UseCase {
	return &UseCase{pool: p, bookingsrp: b, carsrp: c}
}

// CreateRequest carries the caller-provided fields of a new booking.
// The remaining booking fields are computed or defaulted by the
// Create use case.
type CreateRequest struct {
	CarID             uuid.UUID
	StartDate         time.Time
	EndDate           time.Time
	PickupLocation    string
	DropoffLocation   string
	AdditionalDrivers []model.Driver
	SpecialRequests   string
}

// Create reserves the requested car for the actor over the [start,
// end] interval, persisting a new booking in the pending status.
// The total amount is computed from the current price of the car and
// frozen on the booking. The car record itself is not modified.
//
// The car loading, the availability check, and the insertion run in
// one transaction, so two concurrent creations for the same car may
// not both observe an empty conflict set. Failures are reported as:
// missing fields or an inverted/empty interval as a bad request, an
// unknown car as not-found, an unavailable car as a bad request, and
// an overlapping confirmed or active booking as a conflict.
func (bookings *UseCase) Create(
	ctx context.Context, actor auth.Actor, req CreateRequest,
) (b *model.Booking, err error) {
	switch {
	case req.CarID == uuid.Nil,
		req.StartDate.IsZero(),
		req.EndDate.IsZero(),
		req.PickupLocation == "",
		req.DropoffLocation == "":
		return nil, cerr.BadRequest(ErrMissingFields)
	}
	if !req.StartDate.Before(req.EndDate) {
		return nil, cerr.BadRequest(ErrInvalidInterval)
	}
	err = bookings.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			cq := bookings.carsrp.Tx(tx)
			car, err := cq.ByID(ctx, req.CarID)
			if err != nil {
				return fmt.Errorf("loading car: %w", err)
			}
			if !car.IsAvailable {
				return cerr.BadRequest(ErrCarNotAvailable)
			}
			bq := bookings.bookingsrp.Tx(tx)
			conflict, err := bq.HasConflict(
				ctx, req.CarID, req.StartDate, req.EndDate, uuid.Nil,
			)
			if err != nil {
				return fmt.Errorf("checking availability: %w", err)
			}
			if conflict {
				return cerr.Conflict(ErrDatesConflict)
			}
			days := model.RentalDays(req.StartDate, req.EndDate)
			b, err = bq.Create(ctx, &model.Booking{
				UserID:            actor.ID,
				CarID:             req.CarID,
				StartDate:         req.StartDate,
				EndDate:           req.EndDate,
				TotalDays:         days,
				TotalAmount:       float64(days) * car.PricePerDay,
				Status:            model.BookingPending,
				PickupLocation:    req.PickupLocation,
				DropoffLocation:   req.DropoffLocation,
				AdditionalDrivers: req.AdditionalDrivers,
				SpecialRequests:   req.SpecialRequests,
				PaymentStatus:     model.PaymentPending,
			})
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "booking created",
		log.ID("booking", b.ID),
		log.ID("car", b.CarID),
		log.ID("user", b.UserID),
	)
	return b, nil
}

// Cancel moves the bookingID booking to the cancelled status on
// behalf of the actor. Only the booking owner and administrators may
// cancel a booking, and only while it did not enter the active or a
// terminal state yet.
func (bookings *UseCase) Cancel(
	ctx context.Context, actor auth.Actor, bookingID uuid.UUID,
) (b *model.Booking, err error) {
	err = bookings.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			bq := bookings.bookingsrp.Tx(tx)
			b, err = bq.ByID(ctx, bookingID)
			if err != nil {
				return err
			}
			if !actor.CanAccess(b.UserID) {
				return cerr.Authorization(ErrNotOwner)
			}
			if !b.Status.CanCancel() {
				return cerr.BadRequest(ErrCannotCancel)
			}
			cancelled := model.BookingCancelled
			b, err = bq.Update(ctx, bookingID, repo.BookingPatch{
				Status: &cancelled,
			})
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "booking cancelled",
		log.ID("booking", bookingID),
		log.ID("actor", actor.ID),
	)
	return b, nil
}

// UpdateStatus applies the given patch over the bookingID booking.
// It is an administrator-only operation and the administrator may set
// any valid status without an ordering restriction, acting as the
// manual override for the lifecycle state machine.
func (bookings *UseCase) UpdateStatus(
	ctx context.Context,
	actor auth.Actor,
	bookingID uuid.UUID,
	patch repo.BookingPatch,
) (b *model.Booking, err error) {
	if !actor.Role.IsAdmin() {
		return nil, cerr.Authorization(ErrAdminOnly)
	}
	if patch.Status != nil {
		if err := patch.Status.Validate(); err != nil {
			return nil, cerr.BadRequest(err)
		}
	}
	err = bookings.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		bq := bookings.bookingsrp.Conn(c)
		b, err = bq.Update(ctx, bookingID, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ByID returns the bookingID booking with its referenced car and
// user records resolved. Only the booking owner and administrators
// may read a booking.
func (bookings *UseCase) ByID(
	ctx context.Context, actor auth.Actor, bookingID uuid.UUID,
) (b *model.Booking, err error) {
	err = bookings.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		bq := bookings.bookingsrp.Conn(c)
		b, err = bq.ByID(ctx, bookingID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(b.UserID) {
		return nil, cerr.Authorization(ErrNotOwner)
	}
	return b, nil
}

// ListForActor returns the bookings which are owned by the actor,
// sorted by creation time descending.
func (bookings *UseCase) ListForActor(
	ctx context.Context, actor auth.Actor,
) (bs []*model.Booking, err error) {
	err = bookings.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		bq := bookings.bookingsrp.Conn(c)
		bs, err = bq.ListForUser(ctx, actor.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return bs, nil
}

// ListAll returns all bookings of all users, sorted by creation time
// descending. It is an administrator-only operation.
func (bookings *UseCase) ListAll(
	ctx context.Context, actor auth.Actor,
) (bs []*model.Booking, err error) {
	if !actor.Role.IsAdmin() {
		return nil, cerr.Authorization(ErrAdminOnly)
	}
	err = bookings.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		bq := bookings.bookingsrp.Conn(c)
		bs, err = bq.ListAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return bs, nil
}
