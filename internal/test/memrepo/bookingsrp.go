// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package memrepo

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rentweb/crweb/pkg/core/model"
	"github.com/rentweb/crweb/pkg/core/repo"
)

type bookingsTable struct {
	rows []*model.Booking
}

type bookingsRepo struct {
	s *Store
}

func (bookings bookingsRepo) Conn(repo.Conn) repo.BookingsConnQueryer {
	return bookingsQueryer{s: bookings.s, inTx: false}
}

func (bookings bookingsRepo) Tx(repo.Tx) repo.BookingsTxQueryer {
	return bookingsQueryer{s: bookings.s, inTx: true}
}

type bookingsQueryer struct {
	s    *Store
	inTx bool
}

func (bq bookingsQueryer) Create(
	_ context.Context, b *model.Booking,
) (*model.Booking, error) {
	defer lockIfConn(bq.s, bq.inTx)()
	// simulates the exclusion constraint of the bookings table
	if slices.Contains(model.ConflictingStatuses, b.Status) {
		for _, o := range bq.s.bookings.rows {
			if o.CarID == b.CarID &&
				slices.Contains(model.ConflictingStatuses, o.Status) &&
				model.Overlaps(
					b.StartDate, b.EndDate, o.StartDate, o.EndDate,
				) {
				return nil, conflict("overlapping booking")
			}
		}
	}
	bb := *b
	bb.ID = uuidOrNew(b.ID)
	bb.CreatedAt = time.Now()
	bb.UpdatedAt = bb.CreatedAt
	bq.s.bookings.rows = append(bq.s.bookings.rows, &bb)
	return bq.populate(&bb), nil
}

func (bq bookingsQueryer) ByID(
	_ context.Context, bookingID uuid.UUID,
) (*model.Booking, error) {
	defer lockIfConn(bq.s, bq.inTx)()
	for _, b := range bq.s.bookings.rows {
		if b.ID == bookingID {
			return bq.populate(b), nil
		}
	}
	return nil, notFound()
}

func (bq bookingsQueryer) ListForUser(
	_ context.Context, userID uuid.UUID,
) ([]*model.Booking, error) {
	defer lockIfConn(bq.s, bq.inTx)()
	var bs []*model.Booking
	for _, b := range bq.s.bookings.rows {
		if b.UserID == userID {
			bs = append(bs, bq.populate(b))
		}
	}
	sortBookingsNewestFirst(bs)
	return bs, nil
}

func (bq bookingsQueryer) ListAll(
	context.Context,
) ([]*model.Booking, error) {
	defer lockIfConn(bq.s, bq.inTx)()
	bs := make([]*model.Booking, 0, len(bq.s.bookings.rows))
	for _, b := range bq.s.bookings.rows {
		bs = append(bs, bq.populate(b))
	}
	sortBookingsNewestFirst(bs)
	return bs, nil
}

func (bq bookingsQueryer) Update(
	_ context.Context, bookingID uuid.UUID, p repo.BookingPatch,
) (*model.Booking, error) {
	defer lockIfConn(bq.s, bq.inTx)()
	for _, b := range bq.s.bookings.rows {
		if b.ID != bookingID {
			continue
		}
		setIf(&b.Status, p.Status)
		setIf(&b.PaymentStatus, p.PaymentStatus)
		setIf(&b.FuelLevelBefore, p.FuelLevelBefore)
		setIf(&b.FuelLevelAfter, p.FuelLevelAfter)
		if p.MileageBefore != nil {
			b.MileageBefore = p.MileageBefore
		}
		if p.MileageAfter != nil {
			b.MileageAfter = p.MileageAfter
		}
		if p.Damage != nil {
			b.Damage = p.Damage
		}
		b.UpdatedAt = time.Now()
		return bq.populate(b), nil
	}
	return nil, notFound()
}

func (bq bookingsQueryer) HasConflict(
	_ context.Context,
	carID uuid.UUID,
	start, end time.Time,
	exclude uuid.UUID,
) (bool, error) {
	defer lockIfConn(bq.s, bq.inTx)()
	for _, b := range bq.s.bookings.rows {
		if b.CarID == carID &&
			b.ID != exclude &&
			slices.Contains(model.ConflictingStatuses, b.Status) &&
			model.Overlaps(start, end, b.StartDate, b.EndDate) {
			return true, nil
		}
	}
	return false, nil
}

func (bq bookingsQueryer) CountActiveForUser(
	_ context.Context, userID uuid.UUID,
) (int64, error) {
	defer lockIfConn(bq.s, bq.inTx)()
	var n int64
	for _, b := range bq.s.bookings.rows {
		if b.UserID == userID &&
			b.Status != model.BookingCompleted &&
			b.Status != model.BookingCancelled {
			n++
		}
	}
	return n, nil
}

// populate resolves the referenced car and user rows into a copy of
// the b booking, mirroring the preloading reads of the postgres
// repository.
func (bq bookingsQueryer) populate(b *model.Booking) *model.Booking {
	bb := *b
	for _, car := range bq.s.cars.rows {
		if car.ID == b.CarID {
			c := *car
			bb.Car = &c
			break
		}
	}
	for _, user := range bq.s.users.rows {
		if user.ID == b.UserID {
			u := *user
			bb.User = &u
			break
		}
	}
	return &bb
}

func sortBookingsNewestFirst(bs []*model.Booking) {
	sort.SliceStable(bs, func(i, j int) bool {
		return bs[i].CreatedAt.After(bs[j].CreatedAt)
	})
}
