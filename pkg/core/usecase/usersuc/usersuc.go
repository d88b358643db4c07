// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersuc contains the users use case which supports the
// account management use cases: registration and login (issuing a
// bearer token), reading and updating the own profile, and the
// administrative listing and deletion of users.
package usersuc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rentweb/crweb/pkg/core/auth"
	"github.com/rentweb/crweb/pkg/core/cerr"
	"github.com/rentweb/crweb/pkg/core/hash"
	"github.com/rentweb/crweb/pkg/core/log"
	"github.com/rentweb/crweb/pkg/core/model"
	"github.com/rentweb/crweb/pkg/core/repo"
)

// Failure conditions of the users use case operations.
var (
	ErrMissingFields      = errors.New("missing required user fields")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAdminOnly          = errors.New("administrator role is required")
	ErrUserHasBookings    = errors.New("user still has non-terminal bookings")
)

// UseCase represents the users use case. It holds a database
// connection pool, the users and bookings repository instances (to be
// guided with the DB pool), the password hasher, and the bearer token
// issuer.
type UseCase struct {
	pool       repo.Pool
	usersrp    repo.Users
	bookingsrp repo.Bookings
	hasher     hash.Hasher
	issuer     auth.TokenIssuer

	minPasswordLength int
}

// New instantiates a users use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(
	p repo.Pool,
	u repo.Users,
	b repo.Bookings,
	h hash.Hasher,
	i auth.TokenIssuer,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{
		pool: p, usersrp: u, bookingsrp: b, hasher: h, issuer: i,
	}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.minPasswordLength == 0 {
		uc.minPasswordLength = 6
	}
	return uc, nil
}

// RegisterRequest carries the caller-provided fields of a new user
// account. The Address field is optional.
type RegisterRequest struct {
	Name          string
	Email         string
	Password      string
	Phone         string
	DateOfBirth   time.Time
	LicenseNumber string
	Address       string
}

// Register creates a new user account with the customer role, hashing
// the given password, and issues a bearer token for the fresh
// account. A duplicate email or license number is reported as a
// conflict.
func (users *UseCase) Register(
	ctx context.Context, req RegisterRequest,
) (u *model.User, token string, err error) {
	switch {
	case req.Name == "", req.Email == "", req.Password == "",
		req.Phone == "", req.DateOfBirth.IsZero(),
		req.LicenseNumber == "":
		return nil, "", cerr.BadRequest(ErrMissingFields)
	}
	if len(req.Password) < users.minPasswordLength {
		return nil, "", cerr.BadRequest(ErrPasswordTooShort)
	}
	hashed, err := users.hasher.Hash(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := users.usersrp.Conn(c)
		u, err = q.Create(ctx, &model.User{
			Name:          req.Name,
			Email:         req.Email,
			PasswordHash:  hashed,
			Phone:         req.Phone,
			DateOfBirth:   req.DateOfBirth,
			LicenseNumber: req.LicenseNumber,
			Address:       req.Address,
			Role:          model.RoleCustomer,
		})
		return err
	})
	if err != nil {
		return nil, "", err
	}
	token, err = users.issuer.Issue(auth.Actor{ID: u.ID, Role: u.Role})
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}
	log.Info(ctx, "user registered", log.ID("user", u.ID))
	return u, token, nil
}

// Login checks the given credentials and issues a bearer token for
// the matching account. An unknown email and a wrong password are
// reported with the same authentication error, so the response does
// not disclose which of the two was presented.
func (users *UseCase) Login(
	ctx context.Context, email, password string,
) (u *model.User, token string, err error) {
	if email == "" || password == "" {
		return nil, "", cerr.BadRequest(ErrMissingFields)
	}
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := users.usersrp.Conn(c)
		u, err = q.ByEmail(ctx, email)
		return err
	})
	switch {
	case err == nil:
	case errorIsNotFound(err):
		return nil, "", cerr.Authentication(ErrInvalidCredentials)
	default:
		return nil, "", err
	}
	ok, err := users.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return nil, "", cerr.Authentication(ErrInvalidCredentials)
	}
	token, err = users.issuer.Issue(auth.Actor{ID: u.ID, Role: u.Role})
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}
	return u, token, nil
}

// Profile returns the account record of the actor.
func (users *UseCase) Profile(
	ctx context.Context, actor auth.Actor,
) (u *model.User, err error) {
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := users.usersrp.Conn(c)
		u, err = q.ByID(ctx, actor.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateProfileRequest is a partial update of the own profile. Nil
// fields keep their stored values. A non-nil Password is re-hashed
// before being stored.
type UpdateProfileRequest struct {
	Name         *string
	Email        *string
	Password     *string
	Phone        *string
	Address      *string
	ProfileImage *string
}

// UpdateProfile applies the given partial update over the account
// record of the actor. A duplicate email is reported as a conflict.
func (users *UseCase) UpdateProfile(
	ctx context.Context, actor auth.Actor, req UpdateProfileRequest,
) (u *model.User, err error) {
	p := repo.UserPatch{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		ProfileImage: req.ProfileImage,
	}
	if req.Password != nil {
		if len(*req.Password) < users.minPasswordLength {
			return nil, cerr.BadRequest(ErrPasswordTooShort)
		}
		hashed, err := users.hasher.Hash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		p.PasswordHash = &hashed
	}
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := users.usersrp.Conn(c)
		u, err = q.Update(ctx, actor.ID, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// List returns all user accounts. It is an administrator-only
// operation.
func (users *UseCase) List(
	ctx context.Context, actor auth.Actor,
) (us []*model.User, err error) {
	if !actor.Role.IsAdmin() {
		return nil, cerr.Authorization(ErrAdminOnly)
	}
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := users.usersrp.Conn(c)
		us, err = q.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return us, nil
}

// Delete removes the userID account on behalf of the actor, which
// must hold the administrator role. An account which still owns
// non-terminal bookings may not be deleted; the count check and the
// deletion run in one transaction, so a booking created concurrently
// does not slip in between.
func (users *UseCase) Delete(
	ctx context.Context, actor auth.Actor, userID uuid.UUID,
) error {
	if !actor.Role.IsAdmin() {
		return cerr.Authorization(ErrAdminOnly)
	}
	err := users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			n, err := users.bookingsrp.Tx(tx).CountActiveForUser(ctx, userID)
			if err != nil {
				return fmt.Errorf("counting bookings: %w", err)
			}
			if n > 0 {
				return cerr.Conflict(ErrUserHasBookings)
			}
			return users.usersrp.Tx(tx).Delete(ctx, userID)
		})
	})
	if err != nil {
		return err
	}
	log.Info(ctx, "user deleted",
		log.ID("user", userID),
		log.ID("actor", actor.ID),
	)
	return nil
}

// errorIsNotFound reports whether err is marked with the not-found
// HTTP status code by the repository layer.
func errorIsNotFound(err error) bool {
	var ce *cerr.Error
	return errors.As(err, &ce) && ce.HTTPStatusCode == http.StatusNotFound
}
