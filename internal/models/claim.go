package models

import "time"

// Claim records the last time a member redeemed a card.
type Claim struct {
	CardID      int64
	CommunityID int64
	MemberID    int64
	ClaimTime   time.Time
}
