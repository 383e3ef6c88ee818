package session

import (
	"time"

	"github.com/lib/pq"
)

// Session is a logged-in identity. One row, one source of truth: a session
// exists iff a row with a token exists, there is no separate authenticated
// flag. No expiry is tracked; the backend token is trusted until the backend
// rejects it.
type Session struct {
	SessionID   string `gorm:"primaryKey" json:"-"`
	Cedula      string `gorm:"not null;index" json:"cedula"`
	Token       string `gorm:"not null" json:"-"`
	Rol         string `json:"rol"`
	DisplayName string `json:"displayName"`

	// Notification ids the user has already seen, for the unread badge.
	SeenNotifications pq.StringArray `gorm:"type:text[]" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Session) TableName() string { return "portal.sessions" }
