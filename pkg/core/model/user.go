// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Role is the authorization role of a registered user.
// It is persisted and (de)serialized as a string.
type Role string

// Valid values for the Role enum.
const (
	RoleCustomer Role = "customer" // may manage their own bookings
	RoleAdmin    Role = "admin"    // may manage all records
)

// ErrUnknownRole indicates that a given string may not be parsed as
// a valid/known user role.
var ErrUnknownRole = errors.New("unknown user role")

// ParseRole parses the given string and returns a Role, helping to
// deserialize it when reading a bearer token claim or a DB column.
// For invalid strings, an empty Role and ErrUnknownRole are returned.
func ParseRole(r string) (Role, error) {
	switch Role(r) {
	case RoleCustomer:
		return RoleCustomer, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrUnknownRole
	}
}

// IsAdmin reports whether this role grants administrative rights.
// All role-based capability checks must go through this predicate
// instead of comparing against RoleAdmin in multiple places.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User models a registered user which may be persisted in a database.
// The PasswordHash field holds a SCRAM stored-credentials string and
// never leaves the server boundary; adapter layers must take care to
// exclude it while serializing a User.
// The Email and LicenseNumber fields are unique among all users.
type User struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Phone         string    `json:"phone"`
	DateOfBirth   time.Time `json:"dateOfBirth"`
	LicenseNumber string    `json:"licenseNumber"`
	Address       string    `json:"address,omitempty"`
	ProfileImage  string    `json:"profileImage,omitempty"`
	Role          Role      `json:"role"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
