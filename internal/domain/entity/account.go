package entity

import (
	"time"
)

// Role distinguishes the two kinds of accounts on the platform.
type Role string

const (
	RoleConsumer     Role = "consumer"
	RolePractitioner Role = "practitioner"
)

// ValidRole reports whether s is a known account role.
func ValidRole(s string) bool {
	return s == string(RoleConsumer) || s == string(RolePractitioner)
}

// Account is the aggregate root for every platform user, consumer or
// practitioner. Passwords are stored as bcrypt hashes.
type Account struct {
	ID        string
	Email     string
	Password  string
	Name      string
	Role      Role
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPractitioner reports whether the account can carry a professional profile.
func (a *Account) IsPractitioner() bool { return a.Role == RolePractitioner }
