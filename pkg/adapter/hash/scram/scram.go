// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram presents an implementation of the
// pkg/core/hash.Hasher interface based on the SCRAM-SHA-256 and
// SCRAM-SHA-1 mechanisms. When a mechanism for a specific underlying
// hash function is instantiated, it can be used for generation of
// hash strings in the SCRAM standard format and for verification of
// presented passwords against such stored strings.
// This format is also known as the scram encrypted password format,
// however, it may not be reversed (so no encryption/decryption is
// taking place).
package scram

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xdg-go/scram"
)

// DefaultIters is the hashing iterations count which is used while
// generating fresh hashes. The RFC 7677 recommends 15000 or more.
const DefaultIters = 15000

// Mechanism provides a Salted Challenge Response Authentication
// Mechanism (SCRAM) having a fixed underlying hash algorithm.
//
// It implements the github.com/rentweb/crweb/pkg/core/hash.Hasher
// interface, so it may be used in the use cases layer without any
// dependency on the actual implementation. This package relies on
// the github.com/xdg-go/scram module for the SCRAM implementation.
type Mechanism struct {
	hashGenerator scram.HashGeneratorFcn
	outLen        int // bytes
	name          string
}

// SHA1 returns a new Mechanism instance using the SHA1 as its
// underlying hash algorithm.
func SHA1() *Mechanism {
	return &Mechanism{
		hashGenerator: scram.SHA1,
		outLen:        160 / 8,
		name:          "SCRAM-SHA-1",
	}
}

// SHA256 returns a new Mechanism instance using the SHA256 as its
// underlying hash algorithm.
func SHA256() *Mechanism {
	return &Mechanism{
		hashGenerator: scram.SHA256,
		outLen:        256 / 8,
		name:          "SCRAM-SHA-256",
	}
}

// Hash computes a hash string for the given non-empty password using
// a freshly generated random salt and the DefaultIters iterations
// count. The given password will be normalized according to the
// SASLprep profile (defined by RFC 4013) of the stringprep algorithm
// and any failure in that normalization returns an error.
//
// The returned string conforms to the following format.
//
//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
func (m *Mechanism) Hash(pass string) (string, error) {
	return m.HashWithSalt(pass, "", DefaultIters)
}

// HashWithSalt computes a hash string like Hash, but takes the salt
// and iterations count explicitly. The salt must contain a base64
// encoding of the desired salt bytes, otherwise, if an empty value is
// passed, a random salt will be generated and used instead.
// The iters must be at least equal to 4096.
func (m *Mechanism) HashWithSalt(pass, salt string, iters int) (string, error) {
	switch {
	case pass == "":
		return "", errors.New("password must be non-empty")
	case iters < 4096:
		return "", fmt.Errorf("iters (%d) is less than 4096", iters)
	}
	if salt == "" {
		saltBytes := make([]byte, m.outLen)
		if _, err := rand.Read(saltBytes); err != nil {
			return "", fmt.Errorf("creating random salt: %w", err)
		}
		s := make([]byte, base64.StdEncoding.EncodedLen(m.outLen))
		base64.StdEncoding.Encode(s, saltBytes)
		salt = string(s)
	}
	sc, err := m.storedCredentials(pass, salt, iters)
	if err != nil {
		return "", fmt.Errorf("obtaining stored credentials: %w", err)
	}
	h := fmt.Sprintf(
		"%s$%d:%s$%s:%s",
		m.name,
		iters, salt,
		base64.StdEncoding.EncodeToString(sc.StoredKey),
		base64.StdEncoding.EncodeToString(sc.ServerKey),
	)
	return h, nil
}

// Verify recomputes the hash of the given password using the salt,
// iterations count, and mechanism name which are embedded in the
// hashed string and reports whether the recomputed stored key matches
// the embedded one, using a constant-time comparison. A hashed string
// which was generated by another mechanism or does not follow the
// expected format causes an error, while a simple password mismatch
// returns false with a nil error.
func (m *Mechanism) Verify(pass, hashed string) (bool, error) {
	iters, salt, storedKey, err := m.parse(hashed)
	if err != nil {
		return false, err
	}
	sc, err := m.storedCredentials(pass, salt, iters)
	if err != nil {
		return false, fmt.Errorf("obtaining stored credentials: %w", err)
	}
	return hmac.Equal(sc.StoredKey, storedKey), nil
}

// parse splits a stored hash string into its iterations count, base64
// salt, and decoded stored key components, after checking that it was
// generated by this mechanism.
func (m *Mechanism) parse(hashed string) (int, string, []byte, error) {
	parts := strings.Split(hashed, "$")
	if len(parts) != 3 || parts[0] != m.name {
		return 0, "", nil, fmt.Errorf(
			"hash does not follow the %s format", m.name,
		)
	}
	iterSalt := strings.SplitN(parts[1], ":", 2)
	if len(iterSalt) != 2 {
		return 0, "", nil, errors.New("missing iters:salt component")
	}
	iters, err := strconv.Atoi(iterSalt[0])
	if err != nil {
		return 0, "", nil, fmt.Errorf("parsing iters: %w", err)
	}
	keys := strings.SplitN(parts[2], ":", 2)
	if len(keys) != 2 {
		return 0, "", nil, errors.New("missing storedKey:serverKey component")
	}
	storedKey, err := base64.StdEncoding.DecodeString(keys[0])
	if err != nil {
		return 0, "", nil, fmt.Errorf("decoding stored key: %w", err)
	}
	return iters, iterSalt[1], storedKey, nil
}

func (m *Mechanism) storedCredentials(
	pass, salt string, iters int,
) (*scram.StoredCredentials, error) {
	c, err := m.hashGenerator.NewClient("username", pass, "authzID")
	if err != nil {
		return nil, fmt.Errorf("creating SCRAM client: %w", err)
	}
	saltBytes, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 salt: %w", err)
	}
	c = c.WithMinIterations(iters)
	sc := c.GetStoredCredentials(scram.KeyFactors{
		Salt:  string(saltBytes),
		Iters: iters,
	})
	return &sc, nil
}
