package bookingsrp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentweb/crweb/pkg/adapter/db/postgres"
	"github.com/rentweb/crweb/pkg/core/model"
	"github.com/rentweb/crweb/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (bookings *Repo) Conn(c repo.Conn) repo.BookingsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, b *model.Booking) (*model.Booking, error) {
	return Create(ctx, cq.Conn, b)
}

func (cq connQueryer) ByID(ctx context.Context, bookingID uuid.UUID) (*model.Booking, error) {
	return ByID(ctx, cq.Conn, bookingID)
}

func (cq connQueryer) ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Booking, error) {
	return ListForUser(ctx, cq.Conn, userID)
}

func (cq connQueryer) ListAll(ctx context.Context) ([]*model.Booking, error) {
	return ListAll(ctx, cq.Conn)
}

func (cq connQueryer) Update(ctx context.Context, bookingID uuid.UUID, p repo.BookingPatch) (*model.Booking, error) {
	return Update(ctx, cq.Conn, bookingID, p)
}

func (cq connQueryer) HasConflict(ctx context.Context, carID uuid.UUID, start, end time.Time, exclude uuid.UUID) (bool, error) {
	return HasConflict(ctx, cq.Conn, carID, start, end, exclude)
}

func (cq connQueryer) CountActiveForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return CountActiveForUser(ctx, cq.Conn, userID)
}

type txQueryer struct {
	*postgres.Tx
}

func (bookings *Repo) Tx(tx repo.Tx) repo.BookingsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, b *model.Booking) (*model.Booking, error) {
	return Create(ctx, tq.Tx, b)
}

func (tq txQueryer) ByID(ctx context.Context, bookingID uuid.UUID) (*model.Booking, error) {
	return ByID(ctx, tq.Tx, bookingID)
}

func (tq txQueryer) ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Booking, error) {
	return ListForUser(ctx, tq.Tx, userID)
}

func (tq txQueryer) ListAll(ctx context.Context) ([]*model.Booking, error) {
	return ListAll(ctx, tq.Tx)
}

func (tq txQueryer) Update(ctx context.Context, bookingID uuid.UUID, p repo.BookingPatch) (*model.Booking, error) {
	return Update(ctx, tq.Tx, bookingID, p)
}

func (tq txQueryer) HasConflict(ctx context.Context, carID uuid.UUID, start, end time.Time, exclude uuid.UUID) (bool, error) {
	return HasConflict(ctx, tq.Tx, carID, start, end, exclude)
}

func (tq txQueryer) CountActiveForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return CountActiveForUser(ctx, tq.Tx, userID)
}
