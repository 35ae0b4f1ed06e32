package models

import "time"

// Vault is a named block of secret lines owned by a community.
type Vault struct {
	ID          int64
	Code        string
	CommunityID int64
	// EncryptedStorage is the sealed text exactly as stored.
	EncryptedStorage string
	// Storage is the decrypted, normalized text. It is only set on vaults
	// returned by a session.
	Storage   string
	LineCount int
	UpdatedAt time.Time
	CreatedAt time.Time
}
