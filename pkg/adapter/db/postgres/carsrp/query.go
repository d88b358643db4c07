// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsrp is the adapter layer cars repository, realizing the
// pkg/core/repo.Cars interface using the GORM framework over a
// PostgreSQL DBMS.
package carsrp

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
	"gorm.io/gorm/clause"
)

type gCar struct {
	CID          uuid.UUID `gorm:"primaryKey;type:uuid;column:cid"`
	Brand        string
	CarModel     string `gorm:"column:model"`
	Year         int
	Color        string
	PricePerDay  float64
	Category     string
	FuelType     string
	Transmission string
	Seats        int
	Features     []string `gorm:"serializer:json"`
	Image        string
	IsAvailable  bool
	Location     string
	LicensePlate string
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (gc *gCar) TableName() string {
	return "cars"
}

func (gc *gCar) Model() *model.Car {
	return &model.Car{
		ID:           gc.CID,
		Brand:        gc.Brand,
		Model:        gc.CarModel,
		Year:         gc.Year,
		Color:        gc.Color,
		PricePerDay:  gc.PricePerDay,
		Category:     model.CarCategory(gc.Category),
		FuelType:     model.FuelType(gc.FuelType),
		Transmission: model.Transmission(gc.Transmission),
		Seats:        gc.Seats,
		Features:     gc.Features,
		Image:        gc.Image,
		IsAvailable:  gc.IsAvailable,
		Location:     gc.Location,
		LicensePlate: gc.LicensePlate,
		Description:  gc.Description,
		CreatedAt:    gc.CreatedAt,
		UpdatedAt:    gc.UpdatedAt,
	}
}

func models(gcs []gCar) []*model.Car {
	cars := make([]*model.Car, 0, len(gcs))
	for i := range gcs {
		cars = append(cars, gcs[i].Model())
	}
	return cars
}

func List[Q postgres.Queryer](ctx context.Context, q Q, f repo.CarFilter) ([]*model.Car, error) {
	gdb := q.GORM(ctx).Order("created_at DESC")
	if f.Category != nil {
		gdb = gdb.Where("category = ?", string(*f.Category))
	}
	if f.FuelType != nil {
		gdb = gdb.Where("fuel_type = ?", string(*f.FuelType))
	}
	if f.Transmission != nil {
		gdb = gdb.Where("transmission = ?", string(*f.Transmission))
	}
	if f.MinPrice != nil {
		gdb = gdb.Where("price_per_day >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		gdb = gdb.Where("price_per_day <= ?", *f.MaxPrice)
	}
	if f.Location != "" {
		gdb = gdb.Where("location ILIKE ?", "%"+f.Location+"%")
	}
	if f.AvailableOnly {
		gdb = gdb.Where("is_available")
	}
	var gcs []gCar
	if err := gdb.Find(&gcs).Error; err != nil {
		return nil, postgres.ClassifyError(fmt.Errorf("query: %w", err))
	}
	return models(gcs), nil
}

func Search[Q postgres.Queryer](ctx context.Context, q Q, query string) ([]*model.Car, error) {
	pat := "%" + query + "%"
	var gcs []gCar
	gdb := q.GORM(ctx).Where(
		"brand ILIKE ? OR model ILIKE ? OR category ILIKE ? OR location ILIKE ?",
		pat, pat, pat, pat,
	).Order("created_at DESC").Find(&gcs)
	if err := gdb.Error; err != nil {
		return nil, postgres.ClassifyError(fmt.Errorf("query: %w", err))
	}
	return models(gcs), nil
}

func ByID[Q postgres.Queryer](ctx context.Context, q Q, carID uuid.UUID) (*model.Car, error) {
	var gc gCar
	gdb := q.GORM(ctx).First(&gc, "cid = ?", carID)
	if err := gdb.Error; err != nil {
		return nil, postgres.ClassifyError(fmt.Errorf("query: %w", err))
	}
	return gc.Model(), nil
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, car *model.Car) (*model.Car, error) {
	gc := &gCar{
		CID:          uuid.New(),
		Brand:        car.Brand,
		CarModel:     car.Model,
		Year:         car.Year,
		Color:        car.Color,
		PricePerDay:  car.PricePerDay,
		Category:     string(car.Category),
		FuelType:     string(car.FuelType),
		Transmission: string(car.Transmission),
		Seats:        car.Seats,
		Features:     car.Features,
		Image:        car.Image,
		IsAvailable:  car.IsAvailable,
		Location:     car.Location,
		LicensePlate: car.LicensePlate,
		Description:  car.Description,
	}
	gdb := q.GORM(ctx).Create(gc)
	if err := gdb.Error; err != nil {
		return nil, postgres.ClassifyError(fmt.Errorf("query: %w", err))
	}
	return gc.Model(), nil
}

func Update[Q postgres.Queryer](ctx context.Context, q Q, carID uuid.UUID, p repo.CarPatch) (*model.Car, error) {
	vals := map[string]any{}
	setStr := func(col string, v *string) {
		if v != nil {
			vals[col] = *v
		}
	}
	setStr("brand", p.Brand)
	setStr("model", p.Model)
	setStr("color", p.Color)
	setStr("image", p.Image)
	setStr("location", p.Location)
	setStr("description", p.Description)
	if p.Year != nil {
		vals["year"] = *p.Year
	}
	if p.PricePerDay != nil {
		vals["price_per_day"] = *p.PricePerDay
	}
	if p.Category != nil {
		vals["category"] = string(*p.Category)
	}
	if p.FuelType != nil {
		vals["fuel_type"] = string(*p.FuelType)
	}
	if p.Transmission != nil {
		vals["transmission"] = string(*p.Transmission)
	}
	if p.Seats != nil {
		vals["seats"] = *p.Seats
	}
	if p.IsAvailable != nil {
		vals["is_available"] = *p.IsAvailable
	}
	if p.Features != nil {
		b, err := json.Marshal(p.Features)
		if err != nil {
			return nil, fmt.Errorf("marshaling features: %w", err)
		}
		vals["features"] = string(b)
	}
	if len(vals) == 0 {
		return ByID(ctx, q, carID)
	}
	vals["updated_at"] = time.Now()
	var gc []gCar
	gdb := q.GORM(ctx).Model(&gc).Clauses(clause.Returning{}).Where(
		"cid = ?", carID,
	).Updates(vals)
	if err := gdb.Error; err != nil {
		return nil, postgres.ClassifyError(fmt.Errorf("query: %w", err))
	}
	if n := len(gc); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gc[0].Model(), nil
}

func Delete[Q postgres.Queryer](ctx context.Context, q Q, carID uuid.UUID) error {
	gdb := q.GORM(ctx).Delete(&gCar{}, "cid = ?", carID)
	if err := gdb.Error; err != nil {
		return postgres.ClassifyError(fmt.Errorf("query: %w", err))
	}
	if gdb.RowsAffected == 0 {
		return cerr.NotFound(fmt.Errorf("no car with cid %s", carID))
	}
	return nil
}
