// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser provides the common request/response
// (de)serialization logic which is shared among the resource
// packages. All responses use one envelope: a successful response is
// {"success": true, "data": ...} and a failed response is
// {"success": false, "message": "..."}.
package serdser

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rentweb/crweb/pkg/core/cerr"
	"github.com/rentweb/crweb/pkg/core/log"
)

// Bind deserializes the request into `req` using the `b` binding and
// reports whether it succeeded. Upon a validation failure, the
// failure envelope is serialized with the names of the offending
// fields and false is returned, so the caller may simply return.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	switch err := c.ShouldBindWith(req, b).(type) {
	case *validator.InvalidValidationError:
		SerErrMsg(c, http.StatusInternalServerError, err.Error())
	case validator.ValidationErrors:
		msg := "invalid fields:"
		for i, ferr := range err {
			if i > 0 {
				msg += ","
			}
			msg += " " + ferr.Field()
		}
		SerErrMsg(c, http.StatusBadRequest, msg)
	default:
		if err == nil {
			return true
		}
		SerErrMsg(c, http.StatusBadRequest, err.Error())
	}
	return false
}

// BindURI deserializes the URI path params into `req` and reports
// whether it succeeded, serializing the failure envelope otherwise.
func BindURI(c *gin.Context, req any) bool {
	if err := c.ShouldBindUri(req); err != nil {
		SerErrMsg(c, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// Serialize writes the success envelope around the given data with
// the given HTTP status code.
func Serialize(c *gin.Context, code int, data any) {
	c.JSON(code, gin.H{
		"success": true,
		"data":    data,
	})
}

// SerErr serializes err with the failure envelope. An err which
// wraps a *cerr.Error determines the HTTP status code and exposes
// its message. Any other error is reported as an internal server
// error with a generic message, logging the error itself, so
// internal details may not leak to the client.
func SerErr(c *gin.Context, err error) {
	var ce *cerr.Error
	if errors.As(err, &ce) {
		SerErrMsg(c, ce.HTTPStatusCode, ce.Err.Error())
		return
	}
	log.Error(c.Request.Context(), "internal error", log.Err("error", err))
	SerErrMsg(c, http.StatusInternalServerError, "internal server error")
}

// SerErrMsg writes the failure envelope with the given HTTP status
// code and message.
func SerErrMsg(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{
		"success": false,
		"message": msg,
	})
}
