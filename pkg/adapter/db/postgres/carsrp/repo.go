package carsrp

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

func (cars *Repo) Conn(c repo.Conn) repo.CarsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) List(ctx context.Context, f repo.CarFilter) ([]*model.Car, error) {
	return List(ctx, cq.Conn, f)
}

func (cq connQueryer) Search(ctx context.Context, query string) ([]*model.Car, error) {
	return Search(ctx, cq.Conn, query)
}

func (cq connQueryer) ByID(ctx context.Context, carID uuid.UUID) (*model.Car, error) {
	return ByID(ctx, cq.Conn, carID)
}

func (cq connQueryer) Create(ctx context.Context, car *model.Car) (*model.Car, error) {
	return Create(ctx, cq.Conn, car)
}

func (cq connQueryer) Update(ctx context.Context, carID uuid.UUID, p repo.CarPatch) (*model.Car, error) {
	return Update(ctx, cq.Conn, carID, p)
}

func (cq connQueryer) Delete(ctx context.Context, carID uuid.UUID) error {
	return Delete(ctx, cq.Conn, carID)
}

type txQueryer struct {
	*postgres.Tx
}

func (cars *Repo) Tx(tx repo.Tx) repo.CarsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) List(ctx context.Context, f repo.CarFilter) ([]*model.Car, error) {
	return List(ctx, tq.Tx, f)
}

func (tq txQueryer) Search(ctx context.Context, query string) ([]*model.Car, error) {
	return Search(ctx, tq.Tx, query)
}

func (tq txQueryer) ByID(ctx context.Context, carID uuid.UUID) (*model.Car, error) {
	return ByID(ctx, tq.Tx, carID)
}

func (tq txQueryer) Create(ctx context.Context, car *model.Car) (*model.Car, error) {
	return Create(ctx, tq.Tx, car)
}

func (tq txQueryer) Update(ctx context.Context, carID uuid.UUID, p repo.CarPatch) (*model.Car, error) {
	return Update(ctx, tq.Tx, carID, p)
}

func (tq txQueryer) Delete(ctx context.Context, carID uuid.UUID) error {
	return Delete(ctx, tq.Tx, carID)
}
