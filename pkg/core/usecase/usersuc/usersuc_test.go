// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersuc_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentweb/crweb/internal/test/memrepo"
	"github.com/rentweb/crweb/pkg/adapter/auth/jwt"
	"github.com/rentweb/crweb/pkg/adapter/hash/scram"
	"github.com/rentweb/crweb/pkg/core/auth"
	"github.com/rentweb/crweb/pkg/core/cerr"
	"github.com/rentweb/crweb/pkg/core/model"
	"github.com/rentweb/crweb/pkg/core/repo"
	"github.com/rentweb/crweb/pkg/core/usecase/bookingsuc"
	"github.com/rentweb/crweb/pkg/core/usecase/usersuc"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type UsersUseCaseTestSuite struct {
	suite.Suite

	Ctx   context.Context
	Store *memrepo.Store
	Users *usersuc.UseCase
	Guard *jwt.Guard
}

func TestUsersUseCaseTestSuite(t *testing.T) {
	guard, err := jwt.New("test-secret", "crweb-test", time.Hour)
	require.NoError(t, err)
	suite.Run(t, &UsersUseCaseTestSuite{
		Ctx:   context.Background(),
		Guard: guard,
	})
}

func (uuts *UsersUseCaseTestSuite) SetupTest() {
	uuts.Store = memrepo.NewStore()
	users, err := usersuc.New(
		uuts.Store.Pool(),
		uuts.Store.Users(),
		uuts.Store.Bookings(),
		scram.SHA256(),
		uuts.Guard,
	)
	uuts.Require().NoError(err)
	uuts.Users = users
}

func (uuts *UsersUseCaseTestSuite) registerReq(
	email string,
) usersuc.RegisterRequest {
	return usersuc.RegisterRequest{
		Name:          "Jane Doe",
		Email:         email,
		Password:      "s3cret+pass",
		Phone:         "+49 40 123456",
		DateOfBirth:   time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
		LicenseNumber: "DL-" + email,
	}
}

func (uuts *UsersUseCaseTestSuite) assertStatusCode(
	err error, code int,
) {
	var ce *cerr.Error
	uuts.Require().ErrorAs(err, &ce)
	uuts.Equal(code, ce.HTTPStatusCode)
}

func (uuts *UsersUseCaseTestSuite) TestRegister() {
	u, token, err := uuts.Users.Register(
		uuts.Ctx, uuts.registerReq("jane@example.com"),
	)
	uuts.Require().NoError(err)
	uuts.Equal(model.RoleCustomer, u.Role)
	uuts.NotEqual(uuid.Nil, u.ID)
	uuts.NotEqual("s3cret+pass", u.PasswordHash,
		"password must not be stored in clear")

	actor, err := uuts.Guard.Verify(token)
	uuts.Require().NoError(err, "token must resolve to the new actor")
	uuts.Equal(u.ID, actor.ID)
	uuts.Equal(model.RoleCustomer, actor.Role)
}

func (uuts *UsersUseCaseTestSuite) TestRegisterValidation() {
	req := uuts.registerReq("jane@example.com")
	req.Email = ""
	_, _, err := uuts.Users.Register(uuts.Ctx, req)
	uuts.ErrorIs(err, usersuc.ErrMissingFields)

	req = uuts.registerReq("jane@example.com")
	req.Password = "abc"
	_, _, err = uuts.Users.Register(uuts.Ctx, req)
	uuts.ErrorIs(err, usersuc.ErrPasswordTooShort)
	uuts.assertStatusCode(err, http.StatusBadRequest)
}

func (uuts *UsersUseCaseTestSuite) TestRegisterDuplicateEmail() {
	_, _, err := uuts.Users.Register(
		uuts.Ctx, uuts.registerReq("jane@example.com"),
	)
	uuts.Require().NoError(err)
	req := uuts.registerReq("jane@example.com")
	req.LicenseNumber = "DL-other"
	_, _, err = uuts.Users.Register(uuts.Ctx, req)
	uuts.assertStatusCode(err, http.StatusConflict)
}

func (uuts *UsersUseCaseTestSuite) TestLogin() {
	registered, _, err := uuts.Users.Register(
		uuts.Ctx, uuts.registerReq("jane@example.com"),
	)
	uuts.Require().NoError(err)

	u, token, err := uuts.Users.Login(
		uuts.Ctx, "jane@example.com", "s3cret+pass",
	)
	uuts.Require().NoError(err)
	uuts.Equal(registered.ID, u.ID)
	actor, err := uuts.Guard.Verify(token)
	uuts.Require().NoError(err)
	uuts.Equal(registered.ID, actor.ID)
}

func (uuts *UsersUseCaseTestSuite) TestLoginInvalidCredentials() {
	_, _, err := uuts.Users.Register(
		uuts.Ctx, uuts.registerReq("jane@example.com"),
	)
	uuts.Require().NoError(err)

	for _, tc := range []struct {
		name            string
		email, password string
	}{
		// both failures must look alike to the caller
		{"unknown email", "john@example.com", "s3cret+pass"},
		{"wrong password", "jane@example.com", "wrong-pass"},
	} {
		uuts.Run(tc.name, func() {
			_, _, err := uuts.Users.Login(
				uuts.Ctx, tc.email, tc.password,
			)
			uuts.ErrorIs(err, usersuc.ErrInvalidCredentials)
			uuts.assertStatusCode(err, http.StatusUnauthorized)
		})
	}
}

func (uuts *UsersUseCaseTestSuite) TestProfile() {
	u, _, err := uuts.Users.Register(
		uuts.Ctx, uuts.registerReq("jane@example.com"),
	)
	uuts.Require().NoError(err)
	actor := auth.Actor{ID: u.ID, Role: u.Role}

	got, err := uuts.Users.Profile(uuts.Ctx, actor)
	uuts.Require().NoError(err)
	uuts.Equal(u.Email, got.Email)

	name := "Jane Smith"
	pass := "an0ther+pass"
	updated, err := uuts.Users.UpdateProfile(
		uuts.Ctx, actor, usersuc.UpdateProfileRequest{
			Name:     &name,
			Password: &pass,
		},
	)
	uuts.Require().NoError(err)
	uuts.Equal("Jane Smith", updated.Name)

	_, _, err = uuts.Users.Login(
		uuts.Ctx, "jane@example.com", "an0ther+pass",
	)
	uuts.NoError(err, "login must use the updated password")
	_, _, err = uuts.Users.Login(
		uuts.Ctx, "jane@example.com", "s3cret+pass",
	)
	uuts.ErrorIs(err, usersuc.ErrInvalidCredentials)
}

func (uuts *UsersUseCaseTestSuite) TestList() {
	u, _, err := uuts.Users.Register(
		uuts.Ctx, uuts.registerReq("jane@example.com"),
	)
	uuts.Require().NoError(err)

	_, err = uuts.Users.List(
		uuts.Ctx, auth.Actor{ID: u.ID, Role: u.Role},
	)
	uuts.ErrorIs(err, usersuc.ErrAdminOnly)
	uuts.assertStatusCode(err, http.StatusForbidden)

	admin := auth.Actor{ID: uuid.New(), Role: model.RoleAdmin}
	us, err := uuts.Users.List(uuts.Ctx, admin)
	uuts.Require().NoError(err)
	uuts.Len(us, 1)
}

func (uuts *UsersUseCaseTestSuite) TestDelete() {
	u, _, err := uuts.Users.Register(
		uuts.Ctx, uuts.registerReq("jane@example.com"),
	)
	uuts.Require().NoError(err)
	admin := auth.Actor{ID: uuid.New(), Role: model.RoleAdmin}

	err = uuts.Users.Delete(
		uuts.Ctx, auth.Actor{ID: u.ID, Role: u.Role}, u.ID,
	)
	uuts.ErrorIs(err, usersuc.ErrAdminOnly)

	err = uuts.Users.Delete(uuts.Ctx, admin, u.ID)
	uuts.Require().NoError(err)
	_, err = uuts.Users.Profile(
		uuts.Ctx, auth.Actor{ID: u.ID, Role: u.Role},
	)
	uuts.assertStatusCode(err, http.StatusNotFound)
}

func (uuts *UsersUseCaseTestSuite) TestDeleteWithBookings() {
	u, _, err := uuts.Users.Register(
		uuts.Ctx, uuts.registerReq("jane@example.com"),
	)
	uuts.Require().NoError(err)
	actor := auth.Actor{ID: u.ID, Role: u.Role}
	admin := auth.Actor{ID: uuid.New(), Role: model.RoleAdmin}

	bookings := bookingsuc.New(
		uuts.Store.Pool(), uuts.Store.Bookings(), uuts.Store.Cars(),
	)
	car := uuts.seedCar()
	b, err := bookings.Create(uuts.Ctx, actor, bookingsuc.CreateRequest{
		CarID:           car.ID,
		StartDate:       time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC),
		PickupLocation:  "Hamburg Airport",
		DropoffLocation: "Hamburg Central",
	})
	uuts.Require().NoError(err)

	err = uuts.Users.Delete(uuts.Ctx, admin, u.ID)
	uuts.ErrorIs(err, usersuc.ErrUserHasBookings)
	uuts.assertStatusCode(err, http.StatusConflict)

	_, err = bookings.Cancel(uuts.Ctx, actor, b.ID)
	uuts.Require().NoError(err)
	err = uuts.Users.Delete(uuts.Ctx, admin, u.ID)
	uuts.NoError(err, "terminal bookings must not block the deletion")
}

func (uuts *UsersUseCaseTestSuite) seedCar() *model.Car {
	var car *model.Car
	err := uuts.Store.Pool().Conn(
		uuts.Ctx, func(ctx context.Context, c repo.Conn) error {
			var err error
			car, err = uuts.Store.Cars().Conn(c).Create(
				ctx, &model.Car{
					Brand:        "Opel",
					Model:        "Astra",
					Year:         2021,
					PricePerDay:  40,
					Category:     model.CategoryCompact,
					FuelType:     model.FuelDiesel,
					Transmission: model.TransmissionAutomatic,
					Seats:        5,
					IsAvailable:  true,
					Location:     "Hamburg",
					LicensePlate: "HH-OP 300",
				},
			)
			return err
		},
	)
	uuts.Require().NoError(err, "failed to seed a car")
	return car
}
