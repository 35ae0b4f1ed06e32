package cards

import (
	"context"

	"github.com/dmitrijs2005/linevault/internal/models"
)

type Repository interface {
	Create(ctx context.Context, card *models.Card) (*models.Card, error)
	GetByMessage(ctx context.Context, communityID, messageRef int64) (*models.Card, error)
	ListByCommunity(ctx context.Context, communityID int64) ([]models.Card, error)
	ListByVault(ctx context.Context, communityID, vaultID int64) ([]models.Card, error)
	Delete(ctx context.Context, communityID, id int64) error
	DeleteByVault(ctx context.Context, communityID, vaultID int64) (int64, error)
}
