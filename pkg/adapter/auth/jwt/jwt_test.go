// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package jwt_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentweb/crweb/pkg/adapter/auth/jwt"
	"github.com/rentweb/crweb/pkg/core/auth"
	"github.com/rentweb/crweb/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundtrip(t *testing.T) {
	g, err := jwt.New("test-secret", "crweb-test", time.Hour)
	require.NoError(t, err)

	actor := auth.Actor{ID: uuid.New(), Role: model.RoleAdmin}
	token, err := g.Issue(actor)
	require.NoError(t, err)

	got, err := g.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, actor, got)
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := jwt.New("", "crweb-test", time.Hour)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	g, err := jwt.New("test-secret", "crweb-test", time.Hour)
	require.NoError(t, err)
	for _, token := range []string{
		"", "not-a-token", "a.b.c",
	} {
		_, err := g.Verify(token)
		assert.Error(t, err, "token: %q", token)
	}
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	g1, err := jwt.New("secret-one", "crweb-test", time.Hour)
	require.NoError(t, err)
	g2, err := jwt.New("secret-two", "crweb-test", time.Hour)
	require.NoError(t, err)

	token, err := g1.Issue(
		auth.Actor{ID: uuid.New(), Role: model.RoleCustomer},
	)
	require.NoError(t, err)
	_, err = g2.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	g, err := jwt.New("test-secret", "crweb-test", time.Nanosecond)
	require.NoError(t, err)
	token, err := g.Issue(
		auth.Actor{ID: uuid.New(), Role: model.RoleCustomer},
	)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = g.Verify(token)
	assert.Error(t, err)
}
