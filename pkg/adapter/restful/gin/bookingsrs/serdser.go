// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package bookingsrs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/rentweb/crweb/pkg/adapter/restful/gin/serdser"
	"github.com/rentweb/crweb/pkg/core/model"
	"github.com/rentweb/crweb/pkg/core/repo"
	"github.com/rentweb/crweb/pkg/core/usecase/bookingsuc"
)

type rawCreateBookingReq struct {
	CarID             string         `json:"carId" binding:"required,uuid"`
	StartDate         time.Time      `json:"startDate" binding:"required"`
	EndDate           time.Time      `json:"endDate" binding:"required"`
	PickupLocation    string         `json:"pickupLocation" binding:"required"`
	DropoffLocation   string         `json:"dropoffLocation" binding:"required"`
	AdditionalDrivers []model.Driver `json:"additionalDrivers" binding:"omitempty,dive"`
	SpecialRequests   string         `json:"specialRequests" binding:"omitempty"`
}

type rawUpdateStatusReq struct {
	Status          *string             `json:"status"`
	PaymentStatus   *string             `json:"paymentStatus"`
	MileageBefore   *int                `json:"mileageBefore" binding:"omitempty,gte=0"`
	MileageAfter    *int                `json:"mileageAfter" binding:"omitempty,gte=0"`
	FuelLevelBefore *string             `json:"fuelLevelBefore"`
	FuelLevelAfter  *string             `json:"fuelLevelAfter"`
	Damage          *model.DamageReport `json:"damage"`
}

func dserBookingID(c *gin.Context) (uuid.UUID, bool) {
	bid, err := uuid.Parse(c.Param("bid"))
	if err != nil {
		serdser.SerErrMsg(
			c, http.StatusBadRequest,
			"path param bid is not a UUID",
		)
		return uuid.Nil, false
	}
	return bid, true
}

func (rs *resource) dserCreateBookingReq(c *gin.Context) (
	bookingsuc.CreateRequest, bool,
) {
	req := &rawCreateBookingReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return bookingsuc.CreateRequest{}, false
	}
	cid, err := uuid.Parse(req.CarID)
	if err != nil {
		serdser.SerErrMsg(c, http.StatusBadRequest, err.Error())
		return bookingsuc.CreateRequest{}, false
	}
	return bookingsuc.CreateRequest{
		CarID:             cid,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		PickupLocation:    req.PickupLocation,
		DropoffLocation:   req.DropoffLocation,
		AdditionalDrivers: req.AdditionalDrivers,
		SpecialRequests:   req.SpecialRequests,
	}, true
}

func (rs *resource) dserUpdateStatusReq(c *gin.Context) (
	repo.BookingPatch, bool,
) {
	req := &rawUpdateStatusReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return repo.BookingPatch{}, false
	}
	p := repo.BookingPatch{
		MileageBefore: req.MileageBefore,
		MileageAfter:  req.MileageAfter,
		Damage:        req.Damage,
	}
	if req.Status != nil {
		s, err := model.ParseBookingStatus(*req.Status)
		if err != nil {
			serdser.SerErrMsg(c, http.StatusBadRequest, err.Error())
			return repo.BookingPatch{}, false
		}
		p.Status = &s
	}
	if req.PaymentStatus != nil {
		ps := model.PaymentStatus(*req.PaymentStatus)
		p.PaymentStatus = &ps
	}
	if req.FuelLevelBefore != nil {
		f, err := model.ParseFuelLevel(*req.FuelLevelBefore)
		if err != nil {
			serdser.SerErrMsg(c, http.StatusBadRequest, err.Error())
			return repo.BookingPatch{}, false
		}
		p.FuelLevelBefore = &f
	}
	if req.FuelLevelAfter != nil {
		f, err := model.ParseFuelLevel(*req.FuelLevelAfter)
		if err != nil {
			serdser.SerErrMsg(c, http.StatusBadRequest, err.Error())
			return repo.BookingPatch{}, false
		}
		p.FuelLevelAfter = &f
	}
	return p, true
}
