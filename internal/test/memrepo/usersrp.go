// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package memrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentweb/crweb/pkg/core/model"
	"github.com/rentweb/crweb/pkg/core/repo"
)

type usersTable struct {
	rows []*model.User
}

type usersRepo struct {
	s *Store
}

func (users usersRepo) Conn(repo.Conn) repo.UsersConnQueryer {
	return usersQueryer{s: users.s, inTx: false}
}

func (users usersRepo) Tx(repo.Tx) repo.UsersTxQueryer {
	return usersQueryer{s: users.s, inTx: true}
}

type usersQueryer struct {
	s    *Store
	inTx bool
}

func (uq usersQueryer) List(context.Context) ([]*model.User, error) {
	defer lockIfConn(uq.s, uq.inTx)()
	us := make([]*model.User, 0, len(uq.s.users.rows))
	for _, user := range uq.s.users.rows {
		u := *user
		us = append(us, &u)
	}
	return us, nil
}

func (uq usersQueryer) ByID(
	_ context.Context, userID uuid.UUID,
) (*model.User, error) {
	defer lockIfConn(uq.s, uq.inTx)()
	for _, user := range uq.s.users.rows {
		if user.ID == userID {
			u := *user
			return &u, nil
		}
	}
	return nil, notFound()
}

func (uq usersQueryer) ByEmail(
	_ context.Context, email string,
) (*model.User, error) {
	defer lockIfConn(uq.s, uq.inTx)()
	for _, user := range uq.s.users.rows {
		if user.Email == email {
			u := *user
			return &u, nil
		}
	}
	return nil, notFound()
}

func (uq usersQueryer) Create(
	_ context.Context, user *model.User,
) (*model.User, error) {
	defer lockIfConn(uq.s, uq.inTx)()
	for _, u := range uq.s.users.rows {
		if u.Email == user.Email {
			return nil, conflict("duplicate email")
		}
		if u.LicenseNumber == user.LicenseNumber {
			return nil, conflict("duplicate license number")
		}
	}
	u := *user
	u.ID = uuidOrNew(user.ID)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	uq.s.users.rows = append(uq.s.users.rows, &u)
	uu := u
	return &uu, nil
}

func (uq usersQueryer) Update(
	_ context.Context, userID uuid.UUID, p repo.UserPatch,
) (*model.User, error) {
	defer lockIfConn(uq.s, uq.inTx)()
	for _, user := range uq.s.users.rows {
		if user.ID != userID {
			continue
		}
		if p.Email != nil {
			for _, u := range uq.s.users.rows {
				if u.ID != userID && u.Email == *p.Email {
					return nil, conflict("duplicate email")
				}
			}
		}
		setIf(&user.Name, p.Name)
		setIf(&user.Email, p.Email)
		setIf(&user.PasswordHash, p.PasswordHash)
		setIf(&user.Phone, p.Phone)
		setIf(&user.Address, p.Address)
		setIf(&user.ProfileImage, p.ProfileImage)
		user.UpdatedAt = time.Now()
		u := *user
		return &u, nil
	}
	return nil, notFound()
}

func (uq usersQueryer) Delete(
	_ context.Context, userID uuid.UUID,
) error {
	defer lockIfConn(uq.s, uq.inTx)()
	for i, user := range uq.s.users.rows {
		if user.ID == userID {
			uq.s.users.rows = append(
				uq.s.users.rows[:i], uq.s.users.rows[i+1:]...,
			)
			return nil
		}
	}
	return notFound()
}
