// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bookingsrp is the adapter layer bookings repository,
// realizing the pkg/core/repo.Bookings interface using the GORM
// framework over a PostgreSQL DBMS. The read operations resolve the
// referenced car and user rows into summary models for display.
package bookingsrp

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rentweb/crweb/pkg/adapter/db/postgres"
	"github.com/rentweb/crweb/pkg/core/cerr"
	"github.com/rentweb/crweb/pkg/core/model"
	"github.com/rentweb/crweb/pkg/core/repo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gBookingCar is the subset of the cars row which is resolved into a
// booking for display purposes.
type gBookingCar struct {
	CID          uuid.UUID `gorm:"primaryKey;type:uuid;column:cid"`
	Brand        string
	Model        string
	Year         int
	Image        string
	PricePerDay  float64
	LicensePlate string
}

func (gc *gBookingCar) TableName() string {
	return "cars"
}

// gBookingUser is the subset of the users row which is resolved into
// a booking for display purposes. The password hash is deliberately
// not selected.
type gBookingUser struct {
	UID           uuid.UUID `gorm:"primaryKey;type:uuid;column:uid"`
	Name          string
	Email         string
	Phone         string
	LicenseNumber string
}

func (gu *gBookingUser) TableName() string {
	return "users"
}

type gBooking struct {
	BID    uuid.UUID `gorm:"primaryKey;type:uuid;column:bid"`
	UserID uuid.UUID `gorm:"type:uuid"`
	CarID  uuid.UUID `gorm:"type:uuid"`

	StartDate   time.Time
	EndDate     time.Time
	TotalDays   int
	TotalAmount float64
	Status      string

	PickupLocation    string
	DropoffLocation   string
	AdditionalDrivers []model.Driver `gorm:"serializer:json"`
	SpecialRequests   string

	PaymentStatus string
	PaymentMethod string

	Damage          *model.DamageReport `gorm:"serializer:json"`
	MileageBefore   *int
	MileageAfter    *int
	FuelLevelBefore *string
	FuelLevelAfter  *string

	Car  *gBookingCar  `gorm:"foreignKey:CarID;references:CID"`
	User *gBookingUser `gorm:"foreignKey:UserID;references:UID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (gb *gBooking) TableName() string {
	return "bookings"
}

func (gb *gBooking) Model() *model.Booking {
	b := &model.Booking{
		ID:                gb.BID,
		UserID:            gb.UserID,
		CarID:             gb.CarID,
		StartDate:         gb.StartDate,
		EndDate:           gb.EndDate,
		TotalDays:         gb.TotalDays,
		TotalAmount:       gb.TotalAmount,
		Status:            model.BookingStatus(gb.Status),
		PickupLocation:    gb.PickupLocation,
		DropoffLocation:   gb.DropoffLocation,
		AdditionalDrivers: gb.AdditionalDrivers,
		SpecialRequests:   gb.SpecialRequests,
		PaymentStatus:     model.PaymentStatus(gb.PaymentStatus),
		PaymentMethod:     model.PaymentMethod(gb.PaymentMethod),
		Damage:            gb.Damage,
		MileageBefore:     gb.MileageBefore,
		MileageAfter:      gb.MileageAfter,
		CreatedAt:         gb.CreatedAt,
		UpdatedAt:         gb.UpdatedAt,
	}
	if gb.FuelLevelBefore != nil {
		b.FuelLevelBefore = model.FuelLevel(*gb.FuelLevelBefore)
	}
	if gb.FuelLevelAfter != nil {
		b.FuelLevelAfter = model.FuelLevel(*gb.FuelLevelAfter)
	}
	if gb.Car != nil {
		b.Car = &model.Car{
			ID:           gb.Car.CID,
			Brand:        gb.Car.Brand,
			Model:        gb.Car.Model,
			Year:         gb.Car.Year,
			Image:        gb.Car.Image,
			PricePerDay:  gb.Car.PricePerDay,
			LicensePlate: gb.Car.LicensePlate,
		}
	}
	if gb.User != nil {
		b.User = &model.User{
			ID:            gb.User.UID,
			Name:          gb.User.Name,
			Email:         gb.User.Email,
			Phone:         gb.User.Phone,
			LicenseNumber: gb.User.LicenseNumber,
		}
	}
	return b
}

func models(gbs []gBooking) []*model.Booking {
	bs := make([]*model.Booking, 0, len(gbs))
	for i := range gbs {
		bs = append(bs, gbs[i].Model())
	}
	return bs
}

func populated(gdb *gorm.DB) *gorm.DB {
	return gdb.Preload("Car").Preload("User")
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, b *model.Booking) (*model.Booking, error) {
	gb := &gBooking{
		BID:               uuid.New(),
		UserID:            b.UserID,
		CarID:             b.CarID,
		StartDate:         b.StartDate,
		EndDate:           b.EndDate,
		TotalDays:         b.TotalDays,
		TotalAmount:       b.TotalAmount,
		Status:            string(b.Status),
		PickupLocation:    b.PickupLocation,
		DropoffLocation:   b.DropoffLocation,
		AdditionalDrivers: b.AdditionalDrivers,
		SpecialRequests:   b.SpecialRequests,
		PaymentStatus:     string(b.PaymentStatus),
		PaymentMethod:     string(b.PaymentMethod),
	}
	gdb := q.GORM(ctx).Omit(clause.Associations).Create(gb)
	if err := gdb.Error; err != nil {
		return nil, postgres.ClassifyError(fmt.Errorf("query: %w", err))
	}
	return ByID(ctx, q, gb.BID)
}

func ByID[Q postgres.Queryer](ctx context.Context, q Q, bookingID uuid.UUID) (*model.Booking, error) {
	var gb gBooking
	gdb := populated(q.GORM(ctx)).First(&gb, "bid = ?", bookingID)
	if err := gdb.Error; err != nil {
		return nil, postgres.ClassifyError(fmt.Errorf("query: %w", err))
	}
	return gb.Model(), nil
}

func ListForUser[Q postgres.Queryer](ctx context.Context, q Q, userID uuid.UUID) ([]*model.Booking, error) {
	var gbs []gBooking
	gdb := populated(q.GORM(ctx)).Where(
		"user_id = ?", userID,
	).Order("created_at DESC").Find(&gbs)
	if err := gdb.Error; err != nil {
		return nil, postgres.ClassifyError(fmt.Errorf("query: %w", err))
	}
	return models(gbs), nil
}

func ListAll[Q postgres.Queryer](ctx context.Context, q Q) ([]*model.Booking, error) {
	var gbs []gBooking
	gdb := populated(q.GORM(ctx)).Order("created_at DESC").Find(&gbs)
	if err := gdb.Error; err != nil {
		return nil, postgres.ClassifyError(fmt.Errorf("query: %w", err))
	}
	return models(gbs), nil
}

func Update[Q postgres.Queryer](ctx context.Context, q Q, bookingID uuid.UUID, p repo.BookingPatch) (*model.Booking, error) {
	vals := map[string]any{}
	if p.Status != nil {
		vals["status"] = string(*p.Status)
	}
	if p.PaymentStatus != nil {
		vals["payment_status"] = string(*p.PaymentStatus)
	}
	if p.MileageBefore != nil {
		vals["mileage_before"] = *p.MileageBefore
	}
	if p.MileageAfter != nil {
		vals["mileage_after"] = *p.MileageAfter
	}
	if p.FuelLevelBefore != nil {
		vals["fuel_level_before"] = string(*p.FuelLevelBefore)
	}
	if p.FuelLevelAfter != nil {
		vals["fuel_level_after"] = string(*p.FuelLevelAfter)
	}
	if p.Damage != nil {
		b, err := json.Marshal(p.Damage)
		if err != nil {
			return nil, fmt.Errorf("marshaling damage: %w", err)
		}
		vals["damage"] = string(b)
	}
	if len(vals) == 0 {
		return ByID(ctx, q, bookingID)
	}
	vals["updated_at"] = time.Now()
	gdb := q.GORM(ctx).Model(&gBooking{}).Where(
		"bid = ?", bookingID,
	).Updates(vals)
	if err := gdb.Error; err != nil {
		return nil, postgres.ClassifyError(fmt.Errorf("query: %w", err))
	}
	if gdb.RowsAffected == 0 {
		return nil, cerr.NotFound(
			fmt.Errorf("no booking with bid %s", bookingID),
		)
	}
	return ByID(ctx, q, bookingID)
}

func HasConflict[Q postgres.Queryer](
	ctx context.Context,
	q Q,
	carID uuid.UUID,
	start, end time.Time,
	exclude uuid.UUID,
) (bool, error) {
	statuses := make([]string, 0, len(model.ConflictingStatuses))
	for _, s := range model.ConflictingStatuses {
		statuses = append(statuses, string(s))
	}
	// Closed-interval overlap test: the stored [s, e] interval
	// conflicts with [start, end] iff s <= end and e >= start, so
	// bookings abutting exactly on a boundary instant conflict too.
	gdb := q.GORM(ctx).Model(&gBooking{}).Where(
		"car_id = ? AND status IN ? AND start_date <= ? AND end_date >= ?",
		carID, statuses, end, start,
	)
	if exclude != uuid.Nil {
		gdb = gdb.Where("bid <> ?", exclude)
	}
	var n int64
	if err := gdb.Count(&n).Error; err != nil {
		return false, postgres.ClassifyError(fmt.Errorf("query: %w", err))
	}
	return n > 0, nil
}

func CountActiveForUser[Q postgres.Queryer](ctx context.Context, q Q, userID uuid.UUID) (int64, error) {
	var n int64
	gdb := q.GORM(ctx).Model(&gBooking{}).Where(
		"user_id = ? AND status NOT IN ?",
		userID,
		[]string{
			string(model.BookingCompleted),
			string(model.BookingCancelled),
		},
	).Count(&n)
	if err := gdb.Error; err != nil {
		return 0, postgres.ClassifyError(fmt.Errorf("query: %w", err))
	}
	return n, nil
}
