// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsrs realizes the cars resource, allowing the cars
// fleet browsing and manipulation REST APIs to be accepted and
// delegated to the cars use cases respectively.
package carsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rentweb/crweb/pkg/adapter/restful/gin/middleware"
	"github.com/rentweb/crweb/pkg/adapter/restful/gin/serdser"
	"github.com/rentweb/crweb/pkg/core/usecase/carsuc"
)

type resource struct {
	cars *carsuc.UseCase
}

// Register instantiates a resource adapting the cars use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/crweb/v1/cars
//     in order to list cars, with optional filtering query params.
//  2. GET request to /api/crweb/v1/cars/search?query=...
//     in order to search cars by a free-form query string.
//  3. GET request to /api/crweb/v1/cars/:cid
//     in order to fetch a single car.
//  4. POST request to /api/crweb/v1/cars
//     in order to register a new car [admin].
//  5. PUT request to /api/crweb/v1/cars/:cid
//     in order to update a car partially [admin].
//  6. DELETE request to /api/crweb/v1/cars/:cid
//     in order to remove a car [admin].
//
// The public group serves the read-only APIs without authentication,
// while the auth group requires a bearer token.
func Register(public, auth *gin.RouterGroup, cars *carsuc.UseCase) {
	rs := &resource{cars: cars}
	public.GET("cars", rs.ListCars)
	public.GET("cars/search", rs.SearchCars)
	public.GET("cars/:cid", rs.GetCar)
	auth.POST("cars", rs.CreateCar)
	auth.PUT("cars/:cid", rs.UpdateCar)
	auth.DELETE("cars/:cid", rs.DeleteCar)
}

func (rs *resource) ListCars(c *gin.Context) {
	filter, ok := rs.dserListCarsReq(c)
	if !ok {
		return
	}
	cs, err := rs.cars.List(c, filter)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Serialize(c, http.StatusOK, cs)
}

func (rs *resource) SearchCars(c *gin.Context) {
	cs, err := rs.cars.Search(c, c.Query("query"))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Serialize(c, http.StatusOK, cs)
}

func (rs *resource) GetCar(c *gin.Context) {
	cid, ok := dserCarID(c)
	if !ok {
		return
	}
	car, err := rs.cars.ByID(c, cid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Serialize(c, http.StatusOK, car)
}

func (rs *resource) CreateCar(c *gin.Context) {
	car, ok := rs.dserCreateCarReq(c)
	if !ok {
		return
	}
	created, err := rs.cars.Create(c, middleware.Actor(c), car)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Serialize(c, http.StatusCreated, created)
}

func (rs *resource) UpdateCar(c *gin.Context) {
	cid, ok := dserCarID(c)
	if !ok {
		return
	}
	patch, ok := rs.dserUpdateCarReq(c)
	if !ok {
		return
	}
	car, err := rs.cars.Update(c, middleware.Actor(c), cid, patch)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Serialize(c, http.StatusOK, car)
}

func (rs *resource) DeleteCar(c *gin.Context) {
	cid, ok := dserCarID(c)
	if !ok {
		return
	}
	err := rs.cars.Delete(c, middleware.Actor(c), cid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Serialize(c, http.StatusOK, gin.H{"deleted": true})
}
