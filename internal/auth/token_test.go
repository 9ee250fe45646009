// AngelaMos | 2026
// token_test.go

package auth

import (
	"testing"
	"time"

	"github.com/the3rdukem/markethub-ghana-sub000/internal/core"
)

func TestNewSessionToken(t *testing.T) {
	tok, err := NewSessionToken(time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}

	if tok.Raw == "" {
		t.Fatal("raw token is empty")
	}
	if tok.Hash != core.HashToken(tok.Raw) {
		t.Error("stored hash is not the hash of the raw token")
	}

	remaining := time.Until(tok.ExpiresAt)
	if remaining <= 59*time.Minute || remaining > time.Hour {
		t.Errorf("expiry %v from now, want about an hour", remaining)
	}
}

func TestComputeExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		duration time.Duration
		want     time.Time
	}{
		{
			name:     "explicit duration",
			duration: 24 * time.Hour,
			want:     now.Add(24 * time.Hour),
		},
		{
			name:     "zero falls back to the default week",
			duration: 0,
			want:     now.Add(DefaultSessionDuration),
		},
		{
			name:     "negative falls back to the default week",
			duration: -time.Hour,
			want:     now.Add(DefaultSessionDuration),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeExpiry(now, tt.duration)
			if !got.Equal(tt.want) {
				t.Errorf("computeExpiry = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSessionIsExpired(t *testing.T) {
	live := Session{ExpiresAt: time.Now().Add(time.Minute)}
	if live.IsExpired() {
		t.Error("future expiry reported expired")
	}

	dead := Session{ExpiresAt: time.Now().Add(-time.Minute)}
	if !dead.IsExpired() {
		t.Error("past expiry reported live")
	}
}
