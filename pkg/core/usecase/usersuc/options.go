// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersuc

import "fmt"

// Option is a functional option for the users use case instantiation.
type Option func(*UseCase) error

// WithMinPasswordLength overrides the minimum acceptable password
// length which the registration and profile-update operations
// enforce. The n must be positive; in absence of this option, a
// default of 6 characters is used.
func WithMinPasswordLength(n int) Option {
	return func(uc *UseCase) error {
		if n <= 0 {
			return fmt.Errorf("non-positive length: %d", n)
		}
		uc.minPasswordLength = n
		return nil
	}
}
