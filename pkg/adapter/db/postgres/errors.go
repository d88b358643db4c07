// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rentweb/crweb/pkg/core/cerr"
	"gorm.io/gorm"
)

// SQLSTATE codes which are mapped to domain error categories.
// The exclusion constraint violation is raised by the bookings
// no-overlap constraint when two conflicting bookings are confirmed
// despite the in-transaction availability check (e.g., by two racing
// administrators).
const (
	codeUniqueViolation     = "23505"
	codeExclusionViolation  = "23P01"
	codeForeignKeyViolation = "23503"
)

// ClassifyError inspects a DBMS error and wraps it with the matching
// cerr category: uniqueness and exclusion constraint violations as a
// conflict, a foreign key violation as a bad request (the referenced
// record does not exist), and a missing row as not-found. Unknown
// errors pass through unchanged, to be reported as internal failures
// at the boundary.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cerr.NotFound(err)
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.SQLState() {
	case codeUniqueViolation:
		return cerr.Conflict(fmt.Errorf(
			"unique constraint %s: %w", pgErr.ConstraintName, err,
		))
	case codeExclusionViolation:
		return cerr.Conflict(fmt.Errorf(
			"exclusion constraint %s: %w", pgErr.ConstraintName, err,
		))
	case codeForeignKeyViolation:
		return cerr.BadRequest(fmt.Errorf(
			"foreign key %s: %w", pgErr.ConstraintName, err,
		))
	default:
		return err
	}
}
