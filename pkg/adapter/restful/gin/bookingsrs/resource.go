// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bookingsrs realizes the bookings resource, allowing the
// booking lifecycle REST APIs to be accepted and delegated to the
// bookings use cases respectively. All of these APIs require an
// authenticated actor.
package bookingsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rentweb/crweb/pkg/adapter/restful/gin/middleware"
	"github.com/rentweb/crweb/pkg/adapter/restful/gin/serdser"
	"github.com/rentweb/crweb/pkg/core/usecase/bookingsuc"
)

type resource struct {
	bookings *bookingsuc.UseCase
}

// Register instantiates a resource adapting the bookings use case
// instance with the relevant REST APIs including:
//  1. POST request to /api/crweb/v1/bookings
//     in order to reserve a car over a closed date interval.
//  2. GET request to /api/crweb/v1/bookings/my-bookings
//     in order to list the own bookings.
//  3. GET request to /api/crweb/v1/bookings/:bid
//     in order to fetch a single booking [owner or admin].
//  4. PUT request to /api/crweb/v1/bookings/:bid/cancel
//     in order to cancel a booking [owner or admin].
//  5. GET request to /api/crweb/v1/bookings
//     in order to list all bookings of all users [admin].
//  6. PUT request to /api/crweb/v1/bookings/:bid/status
//     in order to override the lifecycle status and the return
//     inspection fields of a booking [admin].
func Register(auth *gin.RouterGroup, bookings *bookingsuc.UseCase) {
	rs := &resource{bookings: bookings}
	auth.POST("bookings", rs.CreateBooking)
	auth.GET("bookings/my-bookings", rs.ListOwnBookings)
	auth.GET("bookings/:bid", rs.GetBooking)
	auth.PUT("bookings/:bid/cancel", rs.CancelBooking)
	auth.GET("bookings", rs.ListAllBookings)
	auth.PUT("bookings/:bid/status", rs.UpdateBookingStatus)
}

func (rs *resource) CreateBooking(c *gin.Context) {
	req, ok := rs.dserCreateBookingReq(c)
	if !ok {
		return
	}
	b, err := rs.bookings.Create(c, middleware.Actor(c), req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Serialize(c, http.StatusCreated, b)
}

func (rs *resource) ListOwnBookings(c *gin.Context) {
	bs, err := rs.bookings.ListForActor(c, middleware.Actor(c))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Serialize(c, http.StatusOK, bs)
}

func (rs *resource) GetBooking(c *gin.Context) {
	bid, ok := dserBookingID(c)
	if !ok {
		return
	}
	b, err := rs.bookings.ByID(c, middleware.Actor(c), bid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Serialize(c, http.StatusOK, b)
}

func (rs *resource) CancelBooking(c *gin.Context) {
	bid, ok := dserBookingID(c)
	if !ok {
		return
	}
	b, err := rs.bookings.Cancel(c, middleware.Actor(c), bid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Serialize(c, http.StatusOK, b)
}

func (rs *resource) ListAllBookings(c *gin.Context) {
	bs, err := rs.bookings.ListAll(c, middleware.Actor(c))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Serialize(c, http.StatusOK, bs)
}

func (rs *resource) UpdateBookingStatus(c *gin.Context) {
	bid, ok := dserBookingID(c)
	if !ok {
		return
	}
	patch, ok := rs.dserUpdateStatusReq(c)
	if !ok {
		return
	}
	b, err := rs.bookings.UpdateStatus(c, middleware.Actor(c), bid, patch)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Serialize(c, http.StatusOK, b)
}
