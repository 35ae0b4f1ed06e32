// Package cards stores the published claim cards of each vault.
package cards

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/linevault/internal/common"
	"github.com/dmitrijs2005/linevault/internal/dbx"
	"github.com/dmitrijs2005/linevault/internal/models"
)

const selectColumns = `SELECT id, vault_id, community_id, channel_ref, message_ref, required_role, allowance, cooldown_seconds, created_at FROM cards`

type SQLRepository struct {
	db dbx.DBTX
	d  dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, d: d}
}

func (r *SQLRepository) Create(ctx context.Context, card *models.Card) (*models.Card, error) {
	query := r.d.Rebind(
		`INSERT INTO cards (vault_id, community_id, channel_ref, message_ref, required_role, allowance, cooldown_seconds, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`)

	err := r.db.QueryRowContext(ctx, query,
		card.VaultID, card.CommunityID, card.ChannelRef, card.MessageRef,
		card.RequiredRole, card.Allowance, card.CooldownSeconds, card.CreatedAt).
		Scan(&card.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrCardExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return card, nil
}

func (r *SQLRepository) GetByMessage(ctx context.Context, communityID, messageRef int64) (*models.Card, error) {
	query := r.d.Rebind(selectColumns + ` WHERE community_id = ? AND message_ref = ?`)

	var c models.Card
	err := scan(r.db.QueryRowContext(ctx, query, communityID, messageRef), &c)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &c, nil
}

func (r *SQLRepository) ListByCommunity(ctx context.Context, communityID int64) ([]models.Card, error) {
	query := r.d.Rebind(selectColumns + ` WHERE community_id = ? ORDER BY id`)
	return r.list(ctx, query, communityID)
}

func (r *SQLRepository) ListByVault(ctx context.Context, communityID, vaultID int64) ([]models.Card, error) {
	query := r.d.Rebind(selectColumns + ` WHERE community_id = ? AND vault_id = ? ORDER BY id`)
	return r.list(ctx, query, communityID, vaultID)
}

func (r *SQLRepository) list(ctx context.Context, query string, args ...any) ([]models.Card, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Card
	for rows.Next() {
		var c models.Card
		if err := scan(rows, &c); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner, c *models.Card) error {
	return s.Scan(&c.ID, &c.VaultID, &c.CommunityID, &c.ChannelRef, &c.MessageRef,
		&c.RequiredRole, &c.Allowance, &c.CooldownSeconds, &c.CreatedAt)
}

func (r *SQLRepository) Delete(ctx context.Context, communityID, id int64) error {
	query := r.d.Rebind(`DELETE FROM cards WHERE community_id = ? AND id = ?`)

	res, err := r.db.ExecContext(ctx, query, communityID, id)
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

// DeleteByVault removes every card of a vault and reports how many went.
func (r *SQLRepository) DeleteByVault(ctx context.Context, communityID, vaultID int64) (int64, error) {
	query := r.d.Rebind(`DELETE FROM cards WHERE community_id = ? AND vault_id = ?`)

	res, err := r.db.ExecContext(ctx, query, communityID, vaultID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
