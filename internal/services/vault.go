package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/linevault/internal/common"
	"github.com/dmitrijs2005/linevault/internal/cryptox"
	"github.com/dmitrijs2005/linevault/internal/dbx"
	"github.com/dmitrijs2005/linevault/internal/models"
)

// GetVault loads and decrypts the vault with the given code. A vault whose
// storage no longer decrypts is removed together with its cards and claims,
// and reported as common.ErrorNotFound.
func (s *Session) GetVault(ctx context.Context, code string) (*models.Vault, error) {
	v, err := s.repos.Vaults(s.conn).GetByCode(ctx, s.communityID, normalizeCode(code))
	if err != nil {
		return nil, err
	}

	storage, err := s.cipher.Open(v.EncryptedStorage)
	if err != nil {
		if !errors.Is(err, cryptox.ErrIntegrity) {
			return nil, err
		}

		s.log.Warn(ctx, "vault storage unreadable, removing vault", "vault", v.ID, "code", v.Code)
		refs, rerr := s.removeVault(ctx, v.ID)
		if rerr != nil && !errors.Is(rerr, common.ErrorNotFound) {
			return nil, fmt.Errorf("remove unreadable vault: %w", rerr)
		}
		s.log.Info(ctx, "unreadable vault removed", "vault", v.ID, "cards", len(refs))
		return nil, common.ErrorNotFound
	}

	v.Storage = storage
	return v, nil
}

// CreateVault stores text under code. The code is lower-cased; the text is
// normalized into non-blank lines before it is sealed.
func (s *Session) CreateVault(ctx context.Context, code, text string) (*models.Vault, error) {
	code = normalizeCode(code)
	if code == "" {
		return nil, fmt.Errorf("%w: vault code is empty", common.ErrValidation)
	}
	if strings.ContainsFunc(code, unicode.IsSpace) {
		return nil, fmt.Errorf("%w: vault code %q contains whitespace", common.ErrValidation, code)
	}

	lines := splitLines(text)
	storage := joinLines(lines)
	sealed, err := s.cipher.Seal(storage)
	if err != nil {
		return nil, fmt.Errorf("seal storage: %w", err)
	}

	now := s.now()
	v, err := s.repos.Vaults(s.conn).Create(ctx, &models.Vault{
		Code:             code,
		CommunityID:      s.communityID,
		EncryptedStorage: sealed,
		LineCount:        len(lines),
		UpdatedAt:        now,
		CreatedAt:        now,
	})
	if err != nil {
		return nil, err
	}

	v.Storage = storage
	s.log.Info(ctx, "vault created", "vault", v.ID, "code", v.Code, "lines", v.LineCount)
	return v, nil
}

// UpdateVault replaces the vault's storage with text.
func (s *Session) UpdateVault(ctx context.Context, vaultID int64, text string) error {
	lines := splitLines(text)
	sealed, err := s.cipher.Seal(joinLines(lines))
	if err != nil {
		return fmt.Errorf("seal storage: %w", err)
	}

	if err := s.repos.Vaults(s.conn).UpdateStorage(ctx, s.communityID, vaultID, sealed, len(lines), s.now()); err != nil {
		return err
	}

	s.log.Info(ctx, "vault updated", "vault", vaultID, "lines", len(lines))
	return nil
}

// RemoveVault deletes the vault with its cards and their claims, and returns
// where those cards were published.
func (s *Session) RemoveVault(ctx context.Context, vaultID int64) ([]models.MessageRef, error) {
	refs, err := s.removeVault(ctx, vaultID)
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "vault removed", "vault", vaultID, "cards", len(refs))
	return refs, nil
}

func (s *Session) removeVault(ctx context.Context, vaultID int64) ([]models.MessageRef, error) {
	var refs []models.MessageRef

	err := s.inTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		vaults := s.repos.Vaults(tx)
		if _, err := vaults.GetByID(ctx, s.communityID, vaultID, true); err != nil {
			return err
		}

		cards, err := s.repos.Cards(tx).ListByVault(ctx, s.communityID, vaultID)
		if err != nil {
			return err
		}
		refs = make([]models.MessageRef, 0, len(cards))
		for _, c := range cards {
			refs = append(refs, c.Ref())
		}

		if _, err := s.repos.Claims(tx).DeleteByVault(ctx, s.communityID, vaultID); err != nil {
			return err
		}
		if _, err := s.repos.Cards(tx).DeleteByVault(ctx, s.communityID, vaultID); err != nil {
			return err
		}
		return vaults.Delete(ctx, s.communityID, vaultID)
	})
	if err != nil {
		return nil, err
	}

	return refs, nil
}
