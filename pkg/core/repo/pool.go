// Package repo defines the abstract persistence boundary of the car
// rental system. It contains the connection pool, connection, and
// transaction interfaces beside one repository interface per entity
// (cars, users, and bookings). Use case packages depend on these
// interfaces only, while the adapter layer realizes them for a
// concrete DBMS.
package repo

import "context"

type ConnHandler func(context.Context, Conn) error

type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error
}
