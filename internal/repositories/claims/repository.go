package claims

import (
	"context"
	"time"

	"github.com/dmitrijs2005/linevault/internal/models"
)

type Repository interface {
	Get(ctx context.Context, cardID, memberID int64) (*models.Claim, error)
	Create(ctx context.Context, claim *models.Claim) error
	UpdateTime(ctx context.Context, cardID, memberID int64, claimTime time.Time) error
	DeleteByCard(ctx context.Context, cardID int64) (int64, error)
	DeleteByVault(ctx context.Context, communityID, vaultID int64) (int64, error)
}
