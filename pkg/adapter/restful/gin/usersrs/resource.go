// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersrs realizes the users resource, allowing the account
// registration, login, and profile REST APIs to be accepted and
// delegated to the users use cases respectively.
package usersrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rentweb/crweb/pkg/adapter/restful/gin/middleware"
	"github.com/rentweb/crweb/pkg/adapter/restful/gin/serdser"
	"github.com/rentweb/crweb/pkg/core/usecase/usersuc"
)

type resource struct {
	users *usersuc.UseCase
}

// Register instantiates a resource adapting the users use case
// instance with the relevant REST APIs including:
//  1. POST request to /api/crweb/v1/users/register
//     in order to create a new customer account.
//  2. POST request to /api/crweb/v1/users/login
//     in order to obtain a bearer token for an account.
//  3. GET request to /api/crweb/v1/users/profile
//     in order to fetch the own account record.
//  4. PUT request to /api/crweb/v1/users/profile
//     in order to update the own account record partially.
//  5. GET request to /api/crweb/v1/users
//     in order to list all accounts [admin].
//  6. DELETE request to /api/crweb/v1/users/:uid
//     in order to remove an account [admin].
//
// The public group serves the register/login APIs without
// authentication, while the auth group requires a bearer token.
func Register(public, auth *gin.RouterGroup, users *usersuc.UseCase) {
	rs := &resource{users: users}
	public.POST("users/register", rs.RegisterUser)
	public.POST("users/login", rs.Login)
	auth.GET("users/profile", rs.Profile)
	auth.PUT("users/profile", rs.UpdateProfile)
	auth.GET("users", rs.ListUsers)
	auth.DELETE("users/:uid", rs.DeleteUser)
}

func (rs *resource) RegisterUser(c *gin.Context) {
	req, ok := rs.dserRegisterReq(c)
	if !ok {
		return
	}
	u, token, err := rs.users.Register(c, req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Serialize(c, http.StatusCreated, gin.H{
		"user":  u,
		"token": token,
	})
}

func (rs *resource) Login(c *gin.Context) {
	req, ok := rs.dserLoginReq(c)
	if !ok {
		return
	}
	u, token, err := rs.users.Login(c, req.Email, req.Password)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Serialize(c, http.StatusOK, gin.H{
		"user":  u,
		"token": token,
	})
}

func (rs *resource) Profile(c *gin.Context) {
	u, err := rs.users.Profile(c, middleware.Actor(c))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Serialize(c, http.StatusOK, u)
}

func (rs *resource) UpdateProfile(c *gin.Context) {
	req, ok := rs.dserUpdateProfileReq(c)
	if !ok {
		return
	}
	u, err := rs.users.UpdateProfile(c, middleware.Actor(c), req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Serialize(c, http.StatusOK, u)
}

func (rs *resource) ListUsers(c *gin.Context) {
	us, err := rs.users.List(c, middleware.Actor(c))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Serialize(c, http.StatusOK, us)
}

func (rs *resource) DeleteUser(c *gin.Context) {
	uid, ok := dserUserID(c)
	if !ok {
		return
	}
	err := rs.users.Delete(c, middleware.Actor(c), uid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Serialize(c, http.StatusOK, gin.H{"deleted": true})
}
