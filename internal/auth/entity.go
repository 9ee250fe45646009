// AngelaMos | 2026
// entity.go

package auth

import (
	"time"
)

// Session is the server-side proof of a successful authentication. Only the
// SHA-256 hash of the opaque token is stored; possession of the raw token is
// the sole proof of identity for the session.
type Session struct {
	ID        string    `db:"id"`
	AccountID string    `db:"account_id"`
	Role      string    `db:"role"`
	TokenHash string    `db:"token_hash"`
	UserAgent string    `db:"user_agent"`
	IPAddress string    `db:"ip_address"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
