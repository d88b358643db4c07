package usersrp

import (
	"context"

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

func (users *Repo) Conn(c repo.Conn) repo.UsersConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) List(ctx context.Context) ([]*model.User, error) {
	return List(ctx, cq.Conn)
}

func (cq connQueryer) ByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return ByID(ctx, cq.Conn, userID)
}

func (cq connQueryer) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return ByEmail(ctx, cq.Conn, email)
}

func (cq connQueryer) Create(ctx context.Context, user *model.User) (*model.User, error) {
	return Create(ctx, cq.Conn, user)
}

func (cq connQueryer) Update(ctx context.Context, userID uuid.UUID, p repo.UserPatch) (*model.User, error) {
	return Update(ctx, cq.Conn, userID, p)
}

func (cq connQueryer) Delete(ctx context.Context, userID uuid.UUID) error {
	return Delete(ctx, cq.Conn, userID)
}

type txQueryer struct {
	*postgres.Tx
}

func (users *Repo) Tx(tx repo.Tx) repo.UsersTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) List(ctx context.Context) ([]*model.User, error) {
	return List(ctx, tq.Tx)
}

func (tq txQueryer) ByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return ByID(ctx, tq.Tx, userID)
}

func (tq txQueryer) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return ByEmail(ctx, tq.Tx, email)
}

func (tq txQueryer) Create(ctx context.Context, user *model.User) (*model.User, error) {
	return Create(ctx, tq.Tx, user)
}

func (tq txQueryer) Update(ctx context.Context, userID uuid.UUID, p repo.UserPatch) (*model.User, error) {
	return Update(ctx, tq.Tx, userID, p)
}

func (tq txQueryer) Delete(ctx context.Context, userID uuid.UUID) error {
	return Delete(ctx, tq.Tx, userID)
}
