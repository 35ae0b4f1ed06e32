package models

import "time"

// Card is a published claim point bound to a vault.
type Card struct {
	ID              int64
	VaultID         int64
	CommunityID     int64
	ChannelRef      int64
	MessageRef      int64
	RequiredRole    int64
	Allowance       int
	CooldownSeconds int64
	CreatedAt       time.Time
}

// Ref returns the location of the message the card was published as.
func (c Card) Ref() MessageRef {
	return MessageRef{ChannelRef: c.ChannelRef, MessageRef: c.MessageRef}
}

// MessageRef identifies a published card message, so that a collaborator can
// take it down after the card is gone.
type MessageRef struct {
	ChannelRef int64
	MessageRef int64
}
