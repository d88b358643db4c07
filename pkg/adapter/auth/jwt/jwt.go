// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package jwt realizes the pkg/core/auth.TokenIssuer and TokenVerifier
// interfaces using HS256 signed JSON Web Tokens. The token subject
// holds the user id and a custom claim holds the role, so a verified
// token resolves to an auth.Actor without a database lookup.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rentweb/crweb/pkg/core/auth"
	"github.com/rentweb/crweb/pkg/core/model"
)

// Claims is the JWT claims set of an issued bearer token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Guard issues and verifies bearer tokens with a fixed secret,
// issuer name, and time-to-live.
type Guard struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// New instantiates a token guard. The secret must be non-empty and a
// non-positive ttl falls back to 24 hours.
func New(secret, issuer string, ttl time.Duration) (*Guard, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Guard{secret: []byte(secret), issuer: issuer, ttl: ttl}, nil
}

// Issue creates a signed bearer token binding the given actor
// identity for the configured time-to-live.
func (g *Guard) Issue(actor auth.Actor) (string, error) {
	now := time.Now()
	c := Claims{
		Role: string(actor.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID.String(),
			Issuer:    g.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := t.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates the given bearer token, returning the
// actor which it was issued for. Expired, malformed, or tampered
// tokens cause an error.
func (g *Guard) Verify(token string) (auth.Actor, error) {
	c := &Claims{}
	_, err := jwt.ParseWithClaims(
		token, c,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf(
					"unexpected signing method: %v", t.Header["alg"],
				)
			}
			return g.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return auth.Actor{}, fmt.Errorf("parsing token: %w", err)
	}
	uid, err := uuid.Parse(c.Subject)
	if err != nil {
		return auth.Actor{}, fmt.Errorf("parsing subject: %w", err)
	}
	role, err := model.ParseRole(c.Role)
	if err != nil {
		return auth.Actor{}, fmt.Errorf("parsing role claim: %w", err)
	}
	return auth.Actor{ID: uid, Role: role}, nil
}
