// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package middleware provides the authentication and authorization
// gin middlewares. The Authenticate middleware resolves the bearer
// token of a request to an auth.Actor and stores it in the request
// context, so the downstream handlers can pass the acting identity
// to the use cases explicitly.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rentweb/crweb/pkg/adapter/restful/gin/serdser"
	"github.com/rentweb/crweb/pkg/core/auth"
)

// actorKey is the gin context key holding the authenticated actor.
const actorKey = "crweb-actor"

// Authenticate verifies the Authorization bearer token of each
// request using the v verifier and stores the resolved actor in the
// gin context. A missing, malformed, or invalid token aborts the
// request with the 401 status code.
func Authenticate(v auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			serdser.SerErrMsg(
				c, http.StatusUnauthorized,
				"missing bearer token",
			)
			c.Abort()
			return
		}
		actor, err := v.Verify(token)
		if err != nil {
			serdser.SerErrMsg(
				c, http.StatusUnauthorized,
				"invalid bearer token",
			)
			c.Abort()
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// Actor returns the authenticated actor of the request. It may only
// be called by handlers running after the Authenticate middleware.
func Actor(c *gin.Context) auth.Actor {
	return c.MustGet(actorKey).(auth.Actor)
}
