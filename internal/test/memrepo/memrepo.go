// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package memrepo is an internal helper for the test packages.
// It provides an in-memory reification of the repo.Pool, repo.Conn,
// and repo.Tx interfaces beside the cars, users, and bookings
// repository interfaces, so the use case packages can be unit tested
// without a real DBMS server. The fakes mirror the error taxonomy of
// the postgres adapter, reporting missing records as not-found and
// unique or exclusion violations as conflicts.
package memrepo

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rentweb/crweb/pkg/core/cerr"
	"github.com/rentweb/crweb/pkg/core/repo"
)

// ErrNoQuery is returned by the Exec and Query methods which are not
// backed by a SQL engine in this in-memory implementation.
var ErrNoQuery = errors.New("memrepo: raw queries are not supported")

// Store is the shared in-memory state behind all fake repositories.
// One Store instance plays the role of one database.
type Store struct {
	mu sync.Mutex

	cars     carsTable
	users    usersTable
	bookings bookingsTable
}

// NewStore creates an empty in-memory database.
func NewStore() *Store {
	return &Store{}
}

// Pool returns a repo.Pool implementation over the s store.
func (s *Store) Pool() repo.Pool {
	return pool{s: s}
}

// Cars returns a repo.Cars implementation over the s store.
func (s *Store) Cars() repo.Cars {
	return carsRepo{s: s}
}

// Users returns a repo.Users implementation over the s store.
func (s *Store) Users() repo.Users {
	return usersRepo{s: s}
}

// Bookings returns a repo.Bookings implementation over the s store.
func (s *Store) Bookings() repo.Bookings {
	return bookingsRepo{s: s}
}

type pool struct {
	s *Store
}

func (p pool) Conn(
	ctx context.Context, handler repo.ConnHandler,
) error {
	return handler(ctx, conn{s: p.s})
}

type conn struct {
	s *Store
}

func (c conn) IsConn() {}

func (c conn) Tx(ctx context.Context, handler repo.TxHandler) error {
	// the store mutex stands in for transaction isolation
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return handler(ctx, tx{s: c.s})
}

func (c conn) Exec(
	context.Context, string, ...any,
) (int64, error) {
	return 0, ErrNoQuery
}

func (c conn) Query(
	context.Context, string, ...any,
) (repo.Rows, error) {
	return nil, ErrNoQuery
}

type tx struct {
	s *Store
}

func (t tx) IsTx() {}

func (t tx) Exec(
	context.Context, string, ...any,
) (int64, error) {
	return 0, ErrNoQuery
}

func (t tx) Query(
	context.Context, string, ...any,
) (repo.Rows, error) {
	return nil, ErrNoQuery
}

// lockIfConn acquires the store mutex unless the queryer is already
// running inside a transaction (which holds the mutex itself).
func lockIfConn(s *Store, inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

var errNotFound = errors.New("record not found")

func notFound() error {
	return cerr.NotFound(errNotFound)
}

func conflict(what string) error {
	return cerr.Conflict(errors.New(what))
}

func inTx(q any) bool {
	_, ok := q.(tx)
	return ok
}

// uuidOrNew returns id itself unless it is the nil uuid.
func uuidOrNew(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}
