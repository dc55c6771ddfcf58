package entity

import "time"

// Account represents a registered user of the news feed.
// The password is stored only as a bcrypt digest, never in plaintext.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
