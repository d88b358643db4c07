// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersrp is the adapter layer users repository, realizing
// the pkg/core/repo.Users interface using the GORM framework over a
// PostgreSQL DBMS.
package usersrp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentweb/crweb/pkg/adapter/db/postgres"
	"github.com/rentweb/crweb/pkg/core/cerr"
	"github.com/rentweb/crweb/pkg/core/model"
	"github.com/rentweb/crweb/pkg/core/repo"
	"gorm.io/gorm/clause"
)

type gUser struct {
	UID           uuid.UUID `gorm:"primaryKey;type:uuid;column:uid"`
	Name          string
	Email         string
	PasswordHash  string
	Phone         string
	DateOfBirth   time.Time
	LicenseNumber string
	Address       string
	ProfileImage  string
	Role          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (gu *gUser) TableName() string {
	return "users"
}

func (gu *gUser) Model() *model.User {
	return &model.User{
		ID:            gu.UID,
		Name:          gu.Name,
		Email:         gu.Email,
		PasswordHash:  gu.PasswordHash,
		Phone:         gu.Phone,
		DateOfBirth:   gu.DateOfBirth,
		LicenseNumber: gu.LicenseNumber,
		Address:       gu.Address,
		ProfileImage:  gu.ProfileImage,
		Role:          model.Role(gu.Role),
		CreatedAt:     gu.CreatedAt,
		UpdatedAt:     gu.UpdatedAt,
	}
}

func List[Q postgres.Queryer](ctx context.Context, q Q) ([]*model.User, error) {
	var gus []gUser
	gdb := q.GORM(ctx).Order("created_at DESC").Find(&gus)
	if err := gdb.Error; err != nil {
		return nil, postgres.ClassifyError(fmt.Errorf("query: %w", err))
	}
	users := make([]*model.User, 0, len(gus))
	for i := range gus {
		users = append(users, gus[i].Model())
	}
	return users, nil
}

func ByID[Q postgres.Queryer](ctx context.Context, q Q, userID uuid.UUID) (*model.User, error) {
	var gu gUser
	gdb := q.GORM(ctx).First(&gu, "uid = ?", userID)
	if err := gdb.Error; err != nil {
		return nil, postgres.ClassifyError(fmt.Errorf("query: %w", err))
	}
	return gu.Model(), nil
}

func ByEmail[Q postgres.Queryer](ctx context.Context, q Q, email string) (*model.User, error) {
	var gu gUser
	gdb := q.GORM(ctx).First(&gu, "email = ?", email)
	if err := gdb.Error; err != nil {
		return nil, postgres.ClassifyError(fmt.Errorf("query: %w", err))
	}
	return gu.Model(), nil
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, user *model.User) (*model.User, error) {
	gu := &gUser{
		UID:           uuid.New(),
		Name:          user.Name,
		Email:         user.Email,
		PasswordHash:  user.PasswordHash,
		Phone:         user.Phone,
		DateOfBirth:   user.DateOfBirth,
		LicenseNumber: user.LicenseNumber,
		Address:       user.Address,
		ProfileImage:  user.ProfileImage,
		Role:          string(user.Role),
	}
	gdb := q.GORM(ctx).Create(gu)
	if err := gdb.Error; err != nil {
		return nil, postgres.ClassifyError(fmt.Errorf("query: %w", err))
	}
	return gu.Model(), nil
}

func Update[Q postgres.Queryer](ctx context.Context, q Q, userID uuid.UUID, p repo.UserPatch) (*model.User, error) {
	vals := map[string]any{}
	setStr := func(col string, v *string) {
		if v != nil {
			vals[col] = *v
		}
	}
	setStr("name", p.Name)
	setStr("email", p.Email)
	setStr("password_hash", p.PasswordHash)
	setStr("phone", p.Phone)
	setStr("address", p.Address)
	setStr("profile_image", p.ProfileImage)
	if len(vals) == 0 {
		return ByID(ctx, q, userID)
	}
	vals["updated_at"] = time.Now()
	var gu []gUser
	gdb := q.GORM(ctx).Model(&gu).Clauses(clause.Returning{}).Where(
		"uid = ?", userID,
	).Updates(vals)
	if err := gdb.Error; err != nil {
		return nil, postgres.ClassifyError(fmt.Errorf("query: %w", err))
	}
	if n := len(gu); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gu[0].Model(), nil
}

func Delete[Q postgres.Queryer](ctx context.Context, q Q, userID uuid.UUID) error {
	gdb := q.GORM(ctx).Delete(&gUser{}, "uid = ?", userID)
	if err := gdb.Error; err != nil {
		return postgres.ClassifyError(fmt.Errorf("query: %w", err))
	}
	if gdb.RowsAffected == 0 {
		return cerr.NotFound(fmt.Errorf("no user with uid %s", userID))
	}
	return nil
}
