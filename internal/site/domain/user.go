package domain

import "time"

// Role values stored on a user row. They mirror the role carried inside
// session tokens; the row is the authoritative source at issuance time.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID           string
	Email        string
	Name         string
	AvatarURL    string
	PasswordHash string // argon2id encoded
	Role         string // RoleUser or RoleAdmin
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
