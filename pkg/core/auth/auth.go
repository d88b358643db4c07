// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package auth exports the expected interfaces for resolution of a
// caller identity out of an opaque bearer credential, in addition to
// the Actor value which all use case operations accept explicitly in
// order to authorize themselves. No ambient per-request state exists;
// whoever calls a use case has to state on whose behalf it is acting.
// For the token issuance and verification implementation, check the
// adapter layer.
package auth

import (
	"github.com/google/uuid"
	"github.com/rentweb/crweb/pkg/core/model"
)

// Actor identifies an authenticated caller of a use case operation.
// It is resolved at the RESTful boundary from a bearer token and
// passed down explicitly.
type Actor struct {
	ID   uuid.UUID
	Role model.Role
}

// CanAccess reports whether this actor may read or mutate a record
// which is owned by the ownerID user. Owners may access their own
// records while administrators may access all of them.
func (a Actor) CanAccess(ownerID uuid.UUID) bool {
	return a.ID == ownerID || a.Role.IsAdmin()
}

// TokenIssuer represents the expectations from a bearer credential
// generator, as needed by the registration and login use cases.
type TokenIssuer interface {
	// Issue creates a signed bearer token binding the given actor
	// identity for a limited implementation-defined lifetime.
	Issue(actor Actor) (token string, err error)
}

// TokenVerifier represents the expectations from a bearer credential
// resolver, as needed by the RESTful authentication middleware.
type TokenVerifier interface {
	// Verify parses and validates the given bearer token, returning
	// the actor which it was issued for. Expired, malformed, or
	// tampered tokens cause an error.
	Verify(token string) (Actor, error)
}
