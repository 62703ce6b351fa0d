package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin is an administrator account for the management surface
type Admin struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Session is a server-side login session. The session id travels inside a
// signed cookie; deleting the row revokes the login.
type Session struct {
	ID        uuid.UUID `json:"id" db:"id"`
	AdminID   int64     `json:"adminId" db:"admin_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
}
