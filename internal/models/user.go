package models

import (
	"time"

	"gorm.io/gorm"
)

// Role describes the authorization level of an actor.
type Role string

const (
	// RoleUser is a regular adopter account.
	RoleUser Role = "user"
	// RoleAdmin may review applications and manage pets, locations and users.
	RoleAdmin Role = "admin"
)

// Actor is the resolved identity of the caller for a single request.
// Services receive an Actor explicitly; they never consult ambient state.
type Actor struct {
	ID   uint
	Role Role
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// User represents an account on the adoption platform.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"user_id"`
	Email       string         `gorm:"unique;not null" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	DisplayName string         `gorm:"size:120;not null" json:"display_name"`
	IsAdmin     bool           `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Role maps the persisted admin flag onto the request-level Role value.
func (u *User) Role() Role {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// Actor builds the explicit actor identity for this user.
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role()}
}
