package identity

import (
	"fmt"
	"time"

	"highlaunchpad/internal/domain/users"

	"gorm.io/gorm"
)

// Session creation retry policy: 3 attempts, exponential backoff capped
// at 10s.
const (
	sessionCreateAttempts = 3
	sessionBackoffBase    = 1 * time.Second
	sessionBackoffCap     = 10 * time.Second
)

// CreateSession exchanges a verified identity for an opaque session row.
// Transient store failures are retried with exponential backoff.
func CreateSession(db *gorm.DB, userID uint) (*users.Session, error) {
	var lastErr error
	backoff := sessionBackoffBase

	for attempt := 1; attempt <= sessionCreateAttempts; attempt++ {
		session := users.Session{
			UserID:    userID,
			Token:     users.NewSessionToken(),
			ExpiresAt: time.Now().Add(users.SessionTTL),
		}
		if err := db.Create(&session).Error; err != nil {
			lastErr = err
			fmt.Printf("❌ Session create attempt %d failed: %v\n", attempt, err)
			if attempt < sessionCreateAttempts {
				time.Sleep(backoff)
				backoff *= 2
				if backoff > sessionBackoffCap {
					backoff = sessionBackoffCap
				}
			}
			continue
		}
		return &session, nil
	}

	return nil, fmt.Errorf("session creation failed after %d attempts: %w", sessionCreateAttempts, lastErr)
}

// RevokeSession invalidates the session behind a cookie value. Unknown
// tokens are a no-op: logout never fails visibly.
func RevokeSession(db *gorm.DB, token string) error {
	now := time.Now()
	return db.Model(&users.Session{}).
		Where("token = ? AND revoked_at IS NULL", token).
		Update("revoked_at", now).Error
}

// SessionUser resolves an opaque cookie value to its active session's
// user, or nil when the token is unknown, revoked or expired.
func SessionUser(db *gorm.DB, token string) (*users.User, error) {
	var session users.Session
	if err := db.Preload("User").First(&session, "token = ?", token).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	if !session.Active(time.Now()) {
		return nil, nil
	}
	return &session.User, nil
}
