// Package common defines sentinel errors shared by the storage, service and
// CLI layers of linevault. Callers should use errors.Is / errors.As to match
// these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Vault lifecycle errors.
	ErrVaultNotFound = errors.New("vault does not exist")
	ErrVaultExists   = errors.New("vault already exists")

	// A card is already published as this message.
	ErrCardExists = errors.New("card already exists")

	// Input rejected before it reaches the engine (durations, numbers, codes).
	ErrValidation = errors.New("validation error")
)

// VaultOverLimitError is returned by a claim when the vault holds fewer lines
// than the card's allowance. Code is the vault code, for messaging.
type VaultOverLimitError struct {
	Code string
}

func (e *VaultOverLimitError) Error() string {
	return fmt.Sprintf("The vault `#%s` is currently empty. Please try again later or contact an administrator for assistance.", e.Code)
}
