package models

import "time"

// Review is a user-submitted product review. One per user; hidden from the
// public listing until approved.
type Review struct {
	ID         string
	UserID     string
	Name       string
	Rating     int
	Comment    string
	IsApproved bool
	CreatedAt  time.Time
}
