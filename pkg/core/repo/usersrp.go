// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentweb/crweb/pkg/core/model"
)

// UserPatch is a partial update of the mutable user profile fields.
// Nil fields keep their stored values. The role of a user may not be
// changed through a profile update.
type UserPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Phone        *string
	Address      *string
	ProfileImage *string
}

type UsersConnQueryer interface {
	UsersQueryer
}

type UsersTxQueryer interface {
	UsersQueryer
}

// UsersQueryer is the users repository contract. Create reports a
// violated email or license number uniqueness and the id-taking
// methods report an absent id with errors wrapped by the cerr
// package. ByEmail reports an unknown email as a not-found error,
// leaving it to the login use case to decide how much of that reason
// may be disclosed.
type UsersQueryer interface {
	List(ctx context.Context) ([]*model.User, error)
	ByID(ctx context.Context, userID uuid.UUID) (*model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) (*model.User, error)
	Update(ctx context.Context, userID uuid.UUID, p UserPatch) (*model.User, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type Users interface {
	Conn(Conn) UsersConnQueryer
	Tx(Tx) UsersTxQueryer
}
