// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// CarCategory is the rental category of a car, e.g., Economy or SUV.
// It is persisted and (de)serialized as a string.
type CarCategory string

// Valid values for the CarCategory enum.
const (
	CategoryEconomy  CarCategory = "Economy"
	CategoryCompact  CarCategory = "Compact"
	CategoryMidSize  CarCategory = "Mid-size"
	CategoryFullSize CarCategory = "Full-size"
	CategorySUV      CarCategory = "SUV"
	CategoryLuxury   CarCategory = "Luxury"
	CategorySports   CarCategory = "Sports"
)

// ErrUnknownCarCategory indicates that a given string may not be
// parsed as a valid/known car category.
var ErrUnknownCarCategory = errors.New("unknown car category")

// Validate returns nil if the CarCategory value is valid and
// ErrUnknownCarCategory otherwise.
func (c CarCategory) Validate() error {
	switch c {
	case CategoryEconomy, CategoryCompact, CategoryMidSize,
		CategoryFullSize, CategorySUV, CategoryLuxury, CategorySports:
		return nil
	default:
		return ErrUnknownCarCategory
	}
}

// FuelType is the fuel type of a car, persisted as a string.
type FuelType string

// Valid values for the FuelType enum.
const (
	FuelPetrol   FuelType = "Petrol"
	FuelDiesel   FuelType = "Diesel"
	FuelElectric FuelType = "Electric"
	FuelHybrid   FuelType = "Hybrid"
)

// ErrUnknownFuelType indicates that a given string may not be parsed
// as a valid/known fuel type.
var ErrUnknownFuelType = errors.New("unknown fuel type")

// Validate returns nil if the FuelType value is valid and
// ErrUnknownFuelType otherwise.
func (f FuelType) Validate() error {
	switch f {
	case FuelPetrol, FuelDiesel, FuelElectric, FuelHybrid:
		return nil
	default:
		return ErrUnknownFuelType
	}
}

// Transmission is the gearbox type of a car, persisted as a string.
type Transmission string

// Valid values for the Transmission enum.
const (
	TransmissionManual    Transmission = "Manual"
	TransmissionAutomatic Transmission = "Automatic"
)

// ErrUnknownTransmission indicates that a given string may not be
// parsed as a valid/known transmission type.
var ErrUnknownTransmission = errors.New("unknown transmission")

// Validate returns nil if the Transmission value is valid and
// ErrUnknownTransmission otherwise.
func (t Transmission) Validate() error {
	switch t {
	case TransmissionManual, TransmissionAutomatic:
		return nil
	default:
		return ErrUnknownTransmission
	}
}

// Car models a rentable car which may be persisted in a database.
// The ID and LicensePlate fields identify a car and are immutable
// after creation. The IsAvailable flag is an administrative override
// (e.g., for a car under maintenance); it is not an authoritative
// indicator of booking conflicts which are derived from the stored
// bookings intervals instead.
type Car struct {
	ID           uuid.UUID    `json:"id"`
	Brand        string       `json:"brand"`
	Model        string       `json:"model"`
	Year         int          `json:"year"`
	Color        string       `json:"color"`
	PricePerDay  float64      `json:"pricePerDay"`
	Category     CarCategory  `json:"category"`
	FuelType     FuelType     `json:"fuelType"`
	Transmission Transmission `json:"transmission"`
	Seats        int          `json:"seats"`
	Features     []string     `json:"features"`
	Image        string       `json:"image"`
	IsAvailable  bool         `json:"isAvailable"`
	Location     string       `json:"location"`
	LicensePlate string       `json:"licensePlate"`
	Description  string       `json:"description"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
