package vaults

import (
	"context"
	"time"

	"github.com/dmitrijs2005/linevault/internal/models"
)

// Repository persists vault rows. Storage is kept sealed; decrypting it is
// the caller's job.
type Repository interface {
	Create(ctx context.Context, vault *models.Vault) (*models.Vault, error)
	GetByCode(ctx context.Context, communityID int64, code string) (*models.Vault, error)
	// GetByID loads a vault; with lock set the row stays locked until the
	// surrounding transaction ends.
	GetByID(ctx context.Context, communityID, id int64, lock bool) (*models.Vault, error)
	UpdateStorage(ctx context.Context, communityID, id int64, encrypted string, lineCount int, updatedAt time.Time) error
	Delete(ctx context.Context, communityID, id int64) error
}
