// Package claims stores the last claim time of each (card, member) pair.
package claims

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

func (r *SQLRepository) Get(ctx context.Context, cardID, memberID int64) (*models.Claim, error) {
	query := r.d.Rebind(
		`SELECT card_id, community_id, member_id, claim_time FROM claims
		 WHERE card_id = ? AND member_id = ?`)

	c := &models.Claim{}
	err := r.db.QueryRowContext(ctx, query, cardID, memberID).
		Scan(&c.CardID, &c.CommunityID, &c.MemberID, &c.ClaimTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *SQLRepository) Create(ctx context.Context, claim *models.Claim) error {
	query := r.d.Rebind(
		`INSERT INTO claims (card_id, community_id, member_id, claim_time)
		 VALUES (?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query, claim.CardID, claim.CommunityID, claim.MemberID, claim.ClaimTime)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) UpdateTime(ctx context.Context, cardID, memberID int64, claimTime time.Time) error {
	query := r.d.Rebind(`UPDATE claims SET claim_time = ? WHERE card_id = ? AND member_id = ?`)

	res, err := r.db.ExecContext(ctx, query, claimTime, cardID, memberID)
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

func (r *SQLRepository) DeleteByCard(ctx context.Context, cardID int64) (int64, error) {
	query := r.d.Rebind(`DELETE FROM claims WHERE card_id = ?`)
	return r.exec(ctx, query, cardID)
}

// DeleteByVault removes the claims of every card bound to the vault.
func (r *SQLRepository) DeleteByVault(ctx context.Context, communityID, vaultID int64) (int64, error) {
	query := r.d.Rebind(
		`DELETE FROM claims WHERE card_id IN (
		   SELECT id FROM cards WHERE community_id = ? AND vault_id = ?
		 )`)
	return r.exec(ctx, query, communityID, vaultID)
}

func (r *SQLRepository) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
