package cli

import (
	"errors"

	"github.com/dmitrijs2005/linevault/internal/common"
)

var (
	errUnknownVault = errors.New("The code you entered does not match any existing vault.")
	errUnknownCard  = errors.New("Card not found.")
	errMissingRole  = errors.New("You do not have the required role.")
)

// describe turns domain errors into the messages shown to the user. Other
// errors are shown as they are.
func describe(err error) string {
	var over *common.VaultOverLimitError
	switch {
	case errors.As(err, &over):
		return over.Error()
	case errors.Is(err, common.ErrVaultNotFound):
		return "The vault is currently unreachable. Please try again later."
	case errors.Is(err, common.ErrVaultExists):
		return "There is already a vault with that code."
	case errors.Is(err, common.ErrCardExists):
		return "A card is already published as that message."
	default:
		return err.Error()
	}
}
