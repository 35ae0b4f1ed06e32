package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/linevault/internal/common"
	"github.com/dmitrijs2005/linevault/internal/cryptox"
	"github.com/dmitrijs2005/linevault/internal/dbx"
	"github.com/dmitrijs2005/linevault/internal/models"
)

// ClaimResult is the outcome of an accepted claim request: either Lines or
// WaitFor.
type ClaimResult interface {
	claimResult()
}

// Lines are the vault lines handed to the member.
type Lines []string

// WaitFor reports that the member is still cooling down on the card.
type WaitFor struct {
	Seconds int64
}

func (Lines) claimResult()   {}
func (WaitFor) claimResult() {}

// Claim redeems card for memberID and returns the first allowance lines of
// the vault, or WaitFor while the member's cool-down is running.
//
// It fails with common.ErrVaultNotFound when the card's vault is gone or
// unreadable, and with *common.VaultOverLimitError when the vault holds fewer
// lines than the allowance. The cool-down is checked first, so a member who
// is cooling down gets WaitFor even when the vault is short. Rejections leave the vault and the claim row
// untouched. The whole read-modify-write runs in one transaction holding the
// vault row, so concurrent claims never hand out the same lines.
func (s *Session) Claim(ctx context.Context, memberID int64, card *models.Card) (ClaimResult, error) {
	var result ClaimResult

	err := s.inTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		vaults := s.repos.Vaults(tx)
		v, err := vaults.GetByID(ctx, s.communityID, card.VaultID, true)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrVaultNotFound
			}
			return err
		}

		storage, err := s.cipher.Open(v.EncryptedStorage)
		if err != nil {
			if errors.Is(err, cryptox.ErrIntegrity) {
				s.log.Warn(ctx, "vault storage unreadable on claim", "vault", v.ID, "card", card.ID)
				return common.ErrVaultNotFound
			}
			return err
		}

		claims := s.repos.Claims(tx)
		prior, err := claims.Get(ctx, card.ID, memberID)
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		now := s.now()
		if prior != nil {
			if remaining := cooldownRemaining(card.CooldownSeconds, prior.ClaimTime, now); remaining > 0 {
				result = WaitFor{Seconds: remaining}
				return nil
			}
		}

		lines := storedLines(storage)
		if v.LineCount < card.Allowance || len(lines) < card.Allowance {
			return &common.VaultOverLimitError{Code: v.Code}
		}

		taken, rest := lines[:card.Allowance], lines[card.Allowance:]
		sealed, err := s.cipher.Seal(joinLines(rest))
		if err != nil {
			return err
		}
		if err := vaults.UpdateStorage(ctx, s.communityID, v.ID, sealed, len(rest), now); err != nil {
			return err
		}

		if prior != nil {
			err = claims.UpdateTime(ctx, card.ID, memberID, now)
		} else {
			err = claims.Create(ctx, &models.Claim{
				CardID:      card.ID,
				CommunityID: s.communityID,
				MemberID:    memberID,
				ClaimTime:   now,
			})
		}
		if err != nil {
			return err
		}

		result = Lines(taken)
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch r := result.(type) {
	case Lines:
		s.log.Info(ctx, "claim granted", "card", card.ID, "member", memberID, "lines", len(r))
	case WaitFor:
		s.log.Debug(ctx, "claim cooling down", "card", card.ID, "member", memberID, "seconds", r.Seconds)
	}
	return result, nil
}

// cooldownRemaining returns the whole seconds left before a member who last
// claimed at last may claim again. Zero means eligible now.
func cooldownRemaining(cooldown int64, last, now time.Time) int64 {
	elapsed := int64(now.Sub(last) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	return max(cooldown-elapsed, 0)
}
