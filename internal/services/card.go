package services

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/dmitrijs2005/linevault/internal/common"
	"github.com/dmitrijs2005/linevault/internal/dbx"
	"github.com/dmitrijs2005/linevault/internal/models"
	"github.com/dmitrijs2005/linevault/internal/timex"
)

// CardParams describes a card to publish for a vault.
type CardParams struct {
	ChannelRef      int64
	MessageRef      int64
	RequiredRole    int64
	Allowance       int
	CooldownSeconds int64
}

func (p CardParams) validate() error {
	if p.Allowance < 1 {
		return fmt.Errorf("%w: allowance must be at least 1, got %d", common.ErrValidation, p.Allowance)
	}
	if p.CooldownSeconds < 0 || p.CooldownSeconds >= timex.MaxCooldownSeconds {
		return fmt.Errorf("%w: cool-down out of range: %d", common.ErrValidation, p.CooldownSeconds)
	}
	return nil
}

// CreateCard publishes a card for vault. It fails with
// common.ErrVaultNotFound when the vault is gone and common.ErrCardExists
// when a card already uses the message.
func (s *Session) CreateCard(ctx context.Context, vault *models.Vault, p CardParams) (*models.Card, error) {
	if vault == nil {
		return nil, common.ErrVaultNotFound
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	var card *models.Card
	err := s.inTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repos.Vaults(tx).GetByID(ctx, s.communityID, vault.ID, true); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrVaultNotFound
			}
			return err
		}

		var err error
		card, err = s.repos.Cards(tx).Create(ctx, &models.Card{
			VaultID:         vault.ID,
			CommunityID:     s.communityID,
			ChannelRef:      p.ChannelRef,
			MessageRef:      p.MessageRef,
			RequiredRole:    p.RequiredRole,
			Allowance:       p.Allowance,
			CooldownSeconds: p.CooldownSeconds,
			CreatedAt:       s.now(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "card created", "card", card.ID, "vault", card.VaultID, "message", card.MessageRef)
	return card, nil
}

// GetCard returns the card published as messageRef.
func (s *Session) GetCard(ctx context.Context, messageRef int64) (*models.Card, error) {
	return s.repos.Cards(s.conn).GetByMessage(ctx, s.communityID, messageRef)
}

// Cards returns the community's cards in creation order. The query runs when
// the sequence is ranged over, and all rows are read before the first card is
// yielded, so the loop body may use the session. A failure is yielded once as
// the error of the only element.
func (s *Session) Cards(ctx context.Context) iter.Seq2[models.Card, error] {
	return func(yield func(models.Card, error) bool) {
		cards, err := s.repos.Cards(s.conn).ListByCommunity(ctx, s.communityID)
		if err != nil {
			yield(models.Card{}, err)
			return
		}
		for _, c := range cards {
			if !yield(c, nil) {
				return
			}
		}
	}
}

// RemoveCard deletes the card and every claim made on it.
func (s *Session) RemoveCard(ctx context.Context, card *models.Card) error {
	err := s.inTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repos.Claims(tx).DeleteByCard(ctx, card.ID); err != nil {
			return err
		}
		return s.repos.Cards(tx).Delete(ctx, s.communityID, card.ID)
	})
	if err != nil {
		return err
	}

	s.log.Info(ctx, "card removed", "card", card.ID, "message", card.MessageRef)
	return nil
}
