// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentweb/crweb/pkg/core/model"
)

// BookingPatch is a partial update of the administrator-mutable
// booking fields, that is, the lifecycle status, the payment status,
// and the condition report of the rented car. Nil fields keep their
// stored values.
type BookingPatch struct {
	Status          *model.BookingStatus
	PaymentStatus   *model.PaymentStatus
	MileageBefore   *int
	MileageAfter    *int
	FuelLevelBefore *model.FuelLevel
	FuelLevelAfter  *model.FuelLevel
	Damage          *model.DamageReport
}

type BookingsConnQueryer interface {
	BookingsQueryer
}

type BookingsTxQueryer interface {
	BookingsQueryer
}

// BookingsQueryer is the bookings repository contract.
// The read methods resolve the referenced car and user records into
// the returned bookings for display and sort listings by creation
// time descending.
type BookingsQueryer interface {
	Create(ctx context.Context, b *model.Booking) (*model.Booking, error)
	ByID(ctx context.Context, bookingID uuid.UUID) (*model.Booking, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Booking, error)
	ListAll(ctx context.Context) ([]*model.Booking, error)
	Update(ctx context.Context, bookingID uuid.UUID, p BookingPatch) (*model.Booking, error)

	// HasConflict reports whether any booking of the carID car in one
	// of the model.ConflictingStatuses statuses has a stored closed
	// interval sharing at least one instant with [start, end].
	// A non-nil exclude skips one booking id, so an update-in-place
	// does not compare a booking against itself.
	HasConflict(
		ctx context.Context,
		carID uuid.UUID,
		start, end time.Time,
		exclude uuid.UUID,
	) (bool, error)

	// CountActiveForUser counts the bookings of the userID user which
	// did not reach a terminal state yet. A user with such bookings
	// may not be deleted.
	CountActiveForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type Bookings interface {
	Conn(Conn) BookingsConnQueryer
	Tx(Tx) BookingsTxQueryer
}
