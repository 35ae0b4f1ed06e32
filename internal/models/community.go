// Package models defines the data models persisted in the database.
package models

import "time"

// Community is the scope every vault, card and claim belongs to. Rows are
// created on first use and never deleted.
type Community struct {
	ID        int64
	CreatedAt time.Time
}
