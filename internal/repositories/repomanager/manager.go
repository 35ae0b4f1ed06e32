package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/linevault/internal/dbx"
	"github.com/dmitrijs2005/linevault/internal/repositories/cards"
	"github.com/dmitrijs2005/linevault/internal/repositories/claims"
	"github.com/dmitrijs2005/linevault/internal/repositories/communities"
	"github.com/dmitrijs2005/linevault/internal/repositories/vaults"
)

type RepositoryManager interface {
	Dialect() dbx.Dialect
	RunMigrations(context.Context, *sql.DB) error
	Communities(db dbx.DBTX) communities.Repository
	Vaults(db dbx.DBTX) vaults.Repository
	Cards(db dbx.DBTX) cards.Repository
	Claims(db dbx.DBTX) claims.Repository
}
