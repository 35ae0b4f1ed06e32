// Package communities stores the community rows that scope all other data.
package communities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/linevault/internal/common"
	"github.com/dmitrijs2005/linevault/internal/dbx"
	"github.com/dmitrijs2005/linevault/internal/models"
)

type SQLRepository struct {
	db dbx.DBTX
	d  dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, d: d}
}

// Ensure creates the community row if it does not exist yet.
func (r *SQLRepository) Ensure(ctx context.Context, id int64, now time.Time) error {
	query := r.d.Rebind(
		`INSERT INTO communities (id, created_at)
		 VALUES (?, ?)
		 ON CONFLICT (id) DO NOTHING`)

	if _, err := r.db.ExecContext(ctx, query, id, now); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) Get(ctx context.Context, id int64) (*models.Community, error) {
	query := r.d.Rebind(`SELECT id, created_at FROM communities WHERE id = ?`)

	c := &models.Community{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}
