// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/rentweb/crweb/pkg/adapter/restful/gin/serdser"
	"github.com/rentweb/crweb/pkg/core/model"
	"github.com/rentweb/crweb/pkg/core/repo"
)

type rawCarFilterReq struct {
	Category     string   `form:"category" binding:"omitempty"`
	FuelType     string   `form:"fuelType" binding:"omitempty"`
	Transmission string   `form:"transmission" binding:"omitempty"`
	MinPrice     *float64 `form:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice     *float64 `form:"maxPrice" binding:"omitempty,gte=0"`
	Location     string   `form:"location" binding:"omitempty"`
	Available    bool     `form:"available" binding:"omitempty"`
}

type rawCarCreateReq struct {
	Brand        string   `json:"brand" binding:"required"`
	Model        string   `json:"model" binding:"required"`
	Year         int      `json:"year" binding:"required,gte=1950"`
	Color        string   `json:"color" binding:"omitempty"`
	PricePerDay  float64  `json:"pricePerDay" binding:"required,gt=0"`
	Category     string   `json:"category" binding:"required"`
	FuelType     string   `json:"fuelType" binding:"required"`
	Transmission string   `json:"transmission" binding:"required"`
	Seats        int      `json:"seats" binding:"omitempty,gte=1"`
	Features     []string `json:"features" binding:"omitempty"`
	Image        string   `json:"image" binding:"omitempty"`
	Location     string   `json:"location" binding:"omitempty"`
	LicensePlate string   `json:"licensePlate" binding:"required"`
	Description  string   `json:"description" binding:"omitempty"`
}

type rawCarUpdateReq struct {
	Brand        *string  `json:"brand"`
	Model        *string  `json:"model"`
	Year         *int     `json:"year" binding:"omitempty,gte=1950"`
	Color        *string  `json:"color"`
	PricePerDay  *float64 `json:"pricePerDay" binding:"omitempty,gt=0"`
	Category     *string  `json:"category"`
	FuelType     *string  `json:"fuelType"`
	Transmission *string  `json:"transmission"`
	Seats        *int     `json:"seats" binding:"omitempty,gte=1"`
	Features     []string `json:"features"`
	Image        *string  `json:"image"`
	IsAvailable  *bool    `json:"isAvailable"`
	Location     *string  `json:"location"`
	Description  *string  `json:"description"`
}

func dserCarID(c *gin.Context) (uuid.UUID, bool) {
	cid, err := uuid.Parse(c.Param("cid"))
	if err != nil {
		serdser.SerErrMsg(
			c, http.StatusBadRequest,
			"path param cid is not a UUID",
		)
		return uuid.Nil, false
	}
	return cid, true
}

func (rs *resource) dserListCarsReq(c *gin.Context) (
	repo.CarFilter, bool,
) {
	req := &rawCarFilterReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return repo.CarFilter{}, false
	}
	f := repo.CarFilter{
		MinPrice:      req.MinPrice,
		MaxPrice:      req.MaxPrice,
		Location:      req.Location,
		AvailableOnly: req.Available,
	}
	if req.Category != "" {
		cat := model.CarCategory(req.Category)
		f.Category = &cat
	}
	if req.FuelType != "" {
		fuel := model.FuelType(req.FuelType)
		f.FuelType = &fuel
	}
	if req.Transmission != "" {
		tr := model.Transmission(req.Transmission)
		f.Transmission = &tr
	}
	return f, true
}

func (rs *resource) dserCreateCarReq(c *gin.Context) (
	*model.Car, bool,
) {
	req := &rawCarCreateReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil, false
	}
	return &model.Car{
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		Color:        req.Color,
		PricePerDay:  req.PricePerDay,
		Category:     model.CarCategory(req.Category),
		FuelType:     model.FuelType(req.FuelType),
		Transmission: model.Transmission(req.Transmission),
		Seats:        req.Seats,
		Features:     req.Features,
		Image:        req.Image,
		IsAvailable:  true,
		Location:     req.Location,
		LicensePlate: req.LicensePlate,
		Description:  req.Description,
	}, true
}

func (rs *resource) dserUpdateCarReq(c *gin.Context) (
	repo.CarPatch, bool,
) {
	req := &rawCarUpdateReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return repo.CarPatch{}, false
	}
	p := repo.CarPatch{
		Brand:       req.Brand,
		Model:       req.Model,
		Year:        req.Year,
		Color:       req.Color,
		PricePerDay: req.PricePerDay,
		Seats:       req.Seats,
		Features:    req.Features,
		Image:       req.Image,
		IsAvailable: req.IsAvailable,
		Location:    req.Location,
		Description: req.Description,
	}
	if req.Category != nil {
		cat := model.CarCategory(*req.Category)
		p.Category = &cat
	}
	if req.FuelType != nil {
		fuel := model.FuelType(*req.FuelType)
		p.FuelType = &fuel
	}
	if req.Transmission != nil {
		tr := model.Transmission(*req.Transmission)
		p.Transmission = &tr
	}
	return p, true
}
