package postgres

import (
	"context"

	"github.com/rentweb/crweb/pkg/core/repo"
	"gorm.io/gorm"
)

type Queryer interface {
	*Conn | *Tx
	repo.Queryer

	// GORM is declared here explicitly because Go does not promote
	// methods from the union terms of a constraint; both *Conn and
	// *Tx already implement it.
	GORM(ctx context.Context) *gorm.DB
}
