// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the lifecycle state of a booking, persisted as a
// string. A booking starts as pending and moves forward until it
// reaches one of the completed or cancelled terminal states. It is
// never physically deleted; cancellation is a status, not a removal.
type BookingStatus string

// Valid values for the BookingStatus enum.
const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingActive    BookingStatus = "active"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// ConflictingStatuses enumerates the statuses which make a booking
// occupy its car for the booked interval. Only bookings in these
// statuses participate in the overlap checks; a pending booking does
// not reserve the car yet and a terminal booking releases it.
var ConflictingStatuses = []BookingStatus{
	BookingConfirmed, BookingActive,
}

// ErrUnknownBookingStatus indicates that a given string may not be
// parsed as a valid/known booking status.
var ErrUnknownBookingStatus = errors.New("unknown booking status")

// ParseBookingStatus parses the given string and returns a
// BookingStatus, helping to deserialize it when reading a REST API
// request. For invalid strings, an empty status and
// ErrUnknownBookingStatus are returned.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingActive,
		BookingCompleted, BookingCancelled:
		return BookingStatus(s), nil
	default:
		return "", ErrUnknownBookingStatus
	}
}

// Validate returns nil if the BookingStatus value is valid and
// ErrUnknownBookingStatus otherwise.
func (s BookingStatus) Validate() error {
	_, err := ParseBookingStatus(string(s))
	return err
}

// CanCancel reports whether a booking in this status may still be
// cancelled. A booking which already entered the active state (the
// car is handed over) or finished may not be cancelled anymore.
func (s BookingStatus) CanCancel() bool {
	return s == BookingPending || s == BookingConfirmed
}

// PaymentStatus is the payment state of a booking.
type PaymentStatus string

// Valid values for the PaymentStatus enum.
const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// PaymentMethod is the payment instrument of a booking.
type PaymentMethod string

// Valid values for the PaymentMethod enum.
const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentPaypal     PaymentMethod = "paypal"
	PaymentCash       PaymentMethod = "cash"
)

// FuelLevel is the coarse-grained fuel gauge reading which is recorded
// when a car is handed over and returned.
type FuelLevel string

// Valid values for the FuelLevel enum.
const (
	FuelEmpty        FuelLevel = "Empty"
	FuelQuarter      FuelLevel = "Quarter"
	FuelHalf         FuelLevel = "Half"
	FuelThreeQuarter FuelLevel = "Three-Quarter"
	FuelFull         FuelLevel = "Full"
)

// ErrUnknownFuelLevel indicates that a given string may not be parsed
// as a valid/known fuel level.
var ErrUnknownFuelLevel = errors.New("unknown fuel level")

// ParseFuelLevel parses the given string and returns a FuelLevel.
// For invalid strings, an empty level and ErrUnknownFuelLevel are
// returned.
func ParseFuelLevel(f string) (FuelLevel, error) {
	switch FuelLevel(f) {
	case FuelEmpty, FuelQuarter, FuelHalf, FuelThreeQuarter, FuelFull:
		return FuelLevel(f), nil
	default:
		return "", ErrUnknownFuelLevel
	}
}

// Driver is an additional driver which is declared on a booking
// beside the booking owner.
type Driver struct {
	Name          string `json:"name"`
	LicenseNumber string `json:"licenseNumber"`
}

// DamageReport records a damage which is observed when a rented car
// is returned.
type DamageReport struct {
	Reported    bool     `json:"reported"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
	Cost        float64  `json:"cost,omitempty"`
}

// Booking models one reservation of one car for a contiguous date
// interval by one user.
// The TotalDays and TotalAmount fields are computed and frozen at
// creation time; a later price change of the referenced car does not
// affect an existing booking.
// Invariant: for a given car, at most one booking with a status out
// of ConflictingStatuses may overlap any other such booking interval,
// where intervals are closed, so two bookings abutting exactly on a
// boundary instant conflict as well.
// The Car and User fields are filled by read operations which resolve
// the referenced records for display and stay nil otherwise.
type Booking struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"userId"`
	CarID  uuid.UUID `json:"carId"`

	StartDate   time.Time     `json:"startDate"`
	EndDate     time.Time     `json:"endDate"`
	TotalDays   int           `json:"totalDays"`
	TotalAmount float64       `json:"totalAmount"`
	Status      BookingStatus `json:"status"`

	PickupLocation    string   `json:"pickupLocation"`
	DropoffLocation   string   `json:"dropoffLocation"`
	AdditionalDrivers []Driver `json:"additionalDrivers,omitempty"`
	SpecialRequests   string   `json:"specialRequests,omitempty"`

	PaymentStatus PaymentStatus `json:"paymentStatus"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty"`

	Damage          *DamageReport `json:"damage,omitempty"`
	MileageBefore   *int          `json:"mileageBefore,omitempty"`
	MileageAfter    *int          `json:"mileageAfter,omitempty"`
	FuelLevelBefore FuelLevel     `json:"fuelLevelBefore,omitempty"`
	FuelLevelAfter  FuelLevel     `json:"fuelLevelAfter,omitempty"`

	Car  *Car  `json:"car,omitempty"`
	User *User `json:"user,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RentalDays computes the chargeable number of days for the [start,
// end] booking interval as the ceiling of the covered 24h spans, so
// a span of 2 days and one hour charges 3 days. The start instant
// must precede the end instant strictly, as validated upstream.
func RentalDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

// Overlaps reports whether the closed intervals [s1, e1] and [s2, e2]
// share at least one instant. Touching endpoints count as overlapping
// since dates are treated with whole-day granularity: a car returned
// on some day may not be picked up again on the same day.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return !s1.After(e2) && !e1.Before(s2)
}
