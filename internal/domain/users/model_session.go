package users

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// SessionTTL matches the 5-day lifetime of the __session cookie.
const SessionTTL = 5 * 24 * time.Hour

// Session is the server-side record behind an opaque __session cookie value.
type Session struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	User      User   `gorm:"constraint:OnDelete:CASCADE"`
	Token     string `gorm:"not null;uniqueIndex"`
	RevokedAt *time.Time
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// NewSessionToken returns a collision-resistant opaque cookie value.
func NewSessionToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}
