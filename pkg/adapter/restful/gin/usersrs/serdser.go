// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersrs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/rentweb/crweb/pkg/adapter/restful/gin/serdser"
	"github.com/rentweb/crweb/pkg/core/usecase/usersuc"
)

type rawRegisterReq struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	DateOfBirth   string `json:"dateOfBirth" binding:"required,datetime=2006-01-02"`
	LicenseNumber string `json:"licenseNumber" binding:"required"`
	Address       string `json:"address" binding:"omitempty"`
}

type rawLoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type rawUpdateProfileReq struct {
	Name         *string `json:"name"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Password     *string `json:"password"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	ProfileImage *string `json:"profileImage"`
}

func dserUserID(c *gin.Context) (uuid.UUID, bool) {
	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		serdser.SerErrMsg(
			c, http.StatusBadRequest,
			"path param uid is not a UUID",
		)
		return uuid.Nil, false
	}
	return uid, true
}

func (rs *resource) dserRegisterReq(c *gin.Context) (
	usersuc.RegisterRequest, bool,
) {
	req := &rawRegisterReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return usersuc.RegisterRequest{}, false
	}
	dob, err := time.Parse(time.DateOnly, req.DateOfBirth)
	if err != nil {
		serdser.SerErrMsg(c, http.StatusBadRequest, err.Error())
		return usersuc.RegisterRequest{}, false
	}
	return usersuc.RegisterRequest{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		Phone:         req.Phone,
		DateOfBirth:   dob,
		LicenseNumber: req.LicenseNumber,
		Address:       req.Address,
	}, true
}

func (rs *resource) dserLoginReq(c *gin.Context) (*rawLoginReq, bool) {
	req := &rawLoginReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil, false
	}
	return req, true
}

func (rs *resource) dserUpdateProfileReq(c *gin.Context) (
	usersuc.UpdateProfileRequest, bool,
) {
	req := &rawUpdateProfileReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return usersuc.UpdateProfileRequest{}, false
	}
	return usersuc.UpdateProfileRequest{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Phone:        req.Phone,
		Address:      req.Address,
		ProfileImage: req.ProfileImage,
	}, true
}
