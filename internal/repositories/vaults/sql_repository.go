// Package vaults stores sealed vault storage keyed by community and code.
package vaults

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

const selectColumns = `SELECT id, code, community_id, encrypted_storage, line_count, updated_at, created_at FROM vaults`

type SQLRepository struct {
	db dbx.DBTX
	d  dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, d: d}
}

func (r *SQLRepository) Create(ctx context.Context, vault *models.Vault) (*models.Vault, error) {
	query := r.d.Rebind(
		`INSERT INTO vaults (code, community_id, encrypted_storage, line_count, updated_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING id`)

	err := r.db.QueryRowContext(ctx, query,
		vault.Code, vault.CommunityID, vault.EncryptedStorage, vault.LineCount, vault.UpdatedAt, vault.CreatedAt).
		Scan(&vault.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrVaultExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return vault, nil
}

func (r *SQLRepository) GetByCode(ctx context.Context, communityID int64, code string) (*models.Vault, error) {
	query := r.d.Rebind(selectColumns + ` WHERE community_id = ? AND code = ?`)
	return r.scanOne(r.db.QueryRowContext(ctx, query, communityID, code))
}

func (r *SQLRepository) GetByID(ctx context.Context, communityID, id int64, lock bool) (*models.Vault, error) {
	query := selectColumns + ` WHERE community_id = ? AND id = ?`
	if lock {
		query = r.d.ForUpdate(query)
	} else {
		query = r.d.Rebind(query)
	}
	return r.scanOne(r.db.QueryRowContext(ctx, query, communityID, id))
}

func (r *SQLRepository) scanOne(row *sql.Row) (*models.Vault, error) {
	v := &models.Vault{}
	err := row.Scan(&v.ID, &v.Code, &v.CommunityID, &v.EncryptedStorage, &v.LineCount, &v.UpdatedAt, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}

func (r *SQLRepository) UpdateStorage(ctx context.Context, communityID, id int64, encrypted string, lineCount int, updatedAt time.Time) error {
	query := r.d.Rebind(
		`UPDATE vaults SET encrypted_storage = ?, line_count = ?, updated_at = ?
		 WHERE community_id = ? AND id = ?`)

	res, err := r.db.ExecContext(ctx, query, encrypted, lineCount, updatedAt, communityID, id)
	return affectedOne(res, err)
}

// Delete removes the vault row only. Cards and claims referencing it must be
// deleted first in the same transaction.
func (r *SQLRepository) Delete(ctx context.Context, communityID, id int64) error {
	query := r.d.Rebind(`DELETE FROM vaults WHERE community_id = ? AND id = ?`)

	res, err := r.db.ExecContext(ctx, query, communityID, id)
	return affectedOne(res, err)
}

func affectedOne(res sql.Result, err error) error {
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
