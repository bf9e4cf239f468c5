package domain

import "time"

// RoleAdmin is the only role that may mutate site content.
const RoleAdmin = "admin"

// User represents a dashboard account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
