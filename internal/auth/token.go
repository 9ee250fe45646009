// AngelaMos | 2026
// token.go

package auth

import (
	"fmt"
	"time"

	"github.com/the3rdukem/markethub-ghana-sub000/internal/core"
)

const DefaultSessionDuration = 7 * 24 * time.Hour

type SessionToken struct {
	Raw       string
	Hash      string
	ExpiresAt time.Time
}

// NewSessionToken mints an opaque random token plus its storage hash. Raw
// goes to the client exactly once; Hash is the lookup key at rest.
func NewSessionToken(duration time.Duration) (*SessionToken, error) {
	raw, err := core.GenerateSessionToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	return &SessionToken{
		Raw:       raw,
		Hash:      core.HashToken(raw),
		ExpiresAt: computeExpiry(time.Now(), duration),
	}, nil
}

// computeExpiry is also the sliding-renewal rule: every successful
// validation recomputes expiry as now + the full duration.
func computeExpiry(now time.Time, duration time.Duration) time.Time {
	if duration <= 0 {
		duration = DefaultSessionDuration
	}
	return now.Add(duration)
}
