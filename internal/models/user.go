package models

import (
	"time"
)

type User struct {
	ID           int64
	Name         string
	Email        string
	Role         string // "user" or "admin"
	StrikeCount  int
	IsBanned     bool
	BanUntil     *time.Time // nil while IsBanned means a permanent ban
	BanReason    string
	LastStrikeAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PermanentlyBanned reports whether the user carries a ban with no expiry.
func (u *User) PermanentlyBanned() bool {
	return u.IsBanned && u.BanUntil == nil
}
