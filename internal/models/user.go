package models

import (
	"time"
)

// Roles known to the user directory.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// User mirrors the account directory owned by the main application. The
// messaging subsystem only reads it: receiver validation and peer profile
// resolution.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Role     string `gorm:"not null;default:employee" json:"role"`
	Position string `json:"position"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Position string `json:"position"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		Position: u.Position,
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
