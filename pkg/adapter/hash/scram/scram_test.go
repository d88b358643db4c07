// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package scram_test

import (
	"strings"
	"testing"

	"github.com/rentweb/crweb/pkg/adapter/hash/scram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashVerifyRoundtrip(t *testing.T) {
	m := scram.SHA256()
	hashed, err := m.Hash("s3cret+pass")
	require.NoError(t, err)
	assert.True(
		t, strings.HasPrefix(hashed, "SCRAM-SHA-256$"),
		"hash must carry its mechanism name: %s", hashed,
	)

	ok, err := m.Verify("s3cret+pass", hashed)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Verify("wrong-pass", hashed)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	m := scram.SHA256()
	h1, err := m.Hash("s3cret+pass")
	require.NoError(t, err)
	h2, err := m.Hash("s3cret+pass")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "each hash must use a fresh salt")
}

func TestHashWithSaltIsDeterministic(t *testing.T) {
	m := scram.SHA256()
	h1, err := m.HashWithSalt("s3cret+pass", "fixed-salt", 4096)
	require.NoError(t, err)
	h2, err := m.HashWithSalt("s3cret+pass", "fixed-salt", 4096)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestVerifyMalformedHash(t *testing.T) {
	m := scram.SHA256()
	for _, tc := range []struct {
		name   string
		hashed string
	}{
		{"empty", ""},
		{"no separators", "plainhash"},
		{"wrong mechanism", "SCRAM-SHA-1$4096:c2FsdA==$aaaa:bbbb"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := m.Verify("s3cret+pass", tc.hashed)
			assert.Error(t, err)
		})
	}
}

func TestSHA1Mechanism(t *testing.T) {
	m := scram.SHA1()
	hashed, err := m.Hash("s3cret+pass")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hashed, "SCRAM-SHA-1$"))
	ok, err := m.Verify("s3cret+pass", hashed)
	require.NoError(t, err)
	assert.True(t, ok)
}
