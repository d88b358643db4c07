// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package hash exports the expected interface for the one-way password
// hashing scheme which protects the stored user credentials. For the
// corresponding SCRAM-based implementation, check the adapter layer.
//
// The Hasher interface is defined based on the use cases requirements:
// the registration and profile-update use cases need to turn a
// plaintext password into a storable hash string, and the login use
// case needs to check a presented password against a stored hash
// without ever persisting or logging the plaintext. A PBKDF2
// iteration count is applied in order to slow down a dictionary
// attack as detailed in RFC 5802.
package hash

// Hasher represents the expectations from a password hasher
// implementation.
type Hasher interface {
	// Hash computes a hash string for the given non-empty password
	// using a freshly generated random salt, so it can be stored and
	// used later for authentication. Two calls with an equal password
	// produce distinct hash strings.
	Hash(pass string) (string, error)

	// Verify recomputes the hash of the given password using the salt
	// and iteration count which are embedded in the hashed string and
	// reports whether it matches. A malformed hashed string causes an
	// error, while a simple mismatch returns false with a nil error.
	Verify(pass, hashed string) (bool, error)
}
