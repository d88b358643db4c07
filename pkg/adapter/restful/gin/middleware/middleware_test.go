// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rentweb/crweb/pkg/adapter/restful/gin/middleware"
	"github.com/rentweb/crweb/pkg/core/auth"
	"github.com/rentweb/crweb/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// verifierFunc adapts a function to the auth.TokenVerifier interface.
type verifierFunc func(token string) (auth.Actor, error)

func (f verifierFunc) Verify(token string) (auth.Actor, error) {
	return f(token)
}

func newEngine(v auth.TokenVerifier) (*gin.Engine, *auth.Actor) {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	seen := &auth.Actor{}
	e.GET(
		"/whoami", middleware.Authenticate(v),
		func(c *gin.Context) {
			*seen = middleware.Actor(c)
			c.Status(http.StatusOK)
		},
	)
	return e, seen
}

func TestAuthenticate(t *testing.T) {
	actor := auth.Actor{ID: uuid.New(), Role: model.RoleCustomer}
	e, seen := newEngine(verifierFunc(
		func(token string) (auth.Actor, error) {
			if token == "good-token" {
				return actor, nil
			}
			return auth.Actor{}, errors.New("unknown token")
		},
	))

	for _, tc := range []struct {
		name   string
		header string
		code   int
	}{
		{"valid token", "Bearer good-token", http.StatusOK},
		{"bad token", "Bearer bad-token", http.StatusUnauthorized},
		{"no header", "", http.StatusUnauthorized},
		{"no bearer prefix", "good-token", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, "/whoami", nil)
			require.NoError(t, err)
			if tc.header != "" {
				req.Header.Add("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			e.ServeHTTP(w, req)
			assert.Equal(t, tc.code, w.Code)
			if tc.code == http.StatusOK {
				assert.Equal(t, actor, *seen)
			}
		})
	}
}
