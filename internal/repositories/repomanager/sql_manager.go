// Package repomanager provides the RepositoryManager for the SQL dialects in
// dbx, wiring together repository constructors and database migrations (via
// goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/linevault/internal/dbx"
	"github.com/dmitrijs2005/linevault/internal/migrations"
	"github.com/dmitrijs2005/linevault/internal/repositories/cards"
	"github.com/dmitrijs2005/linevault/internal/repositories/claims"
	"github.com/dmitrijs2005/linevault/internal/repositories/communities"
	"github.com/dmitrijs2005/linevault/internal/repositories/vaults"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager vends repository implementations for one dialect and
// exposes a schema migration hook.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

// Dialect returns the dialect the repositories are bound to.
func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

// Communities returns a communities.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Communities(db dbx.DBTX) communities.Repository {
	return communities.NewSQLRepository(db, m.dialect)
}

// Vaults returns a vaults.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Vaults(db dbx.DBTX) vaults.Repository {
	return vaults.NewSQLRepository(db, m.dialect)
}

// Cards returns a cards.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Cards(db dbx.DBTX) cards.Repository {
	return cards.NewSQLRepository(db, m.dialect)
}

// Claims returns a claims.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Claims(db dbx.DBTX) claims.Repository {
	return claims.NewSQLRepository(db, m.dialect)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// RunMigrations sets up goose with the embedded migrations of the manager's
// dialect and applies the pending ones. Applied migrations are skipped, so
// calling it on every start is safe.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(m.dialect.Goose); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, m.dialect.MigrationsDir); err != nil {
		return err
	}
	return nil
}

// NewRepositoryManager constructs a RepositoryManager for the dialect.
func NewRepositoryManager(d dbx.Dialect) RepositoryManager {
	return &SQLRepositoryManager{dialect: d}
}
