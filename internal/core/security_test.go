// AngelaMos | 2026
// security_test.go

package core

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("hash = %q, want argon2id encoding", hash)
	}

	if !VerifyPassword("correct horse battery staple", hash) {
		t.Error("correct password did not verify")
	}
	if VerifyPassword("wrong password", hash) {
		t.Error("wrong password verified")
	}
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	first, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password are identical")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"garbage", "not-a-hash"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"truncated", "$argon2id$v=19$m=65536"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if VerifyPassword("secret123", tt.hash) {
				t.Error("malformed hash verified as valid")
			}
		})
	}
}

func TestVerifyPasswordTimingSafe(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if !VerifyPasswordTimingSafe("secret123", &hash) {
		t.Error("correct password did not verify")
	}
	if VerifyPasswordTimingSafe("secret123", nil) {
		t.Error("nil stored hash verified")
	}
	empty := ""
	if VerifyPasswordTimingSafe("secret123", &empty) {
		t.Error("empty stored hash verified")
	}
}

func TestGenerateSessionToken(t *testing.T) {
	first, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}
	second, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}

	if len(first) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(first))
	}
	if first == second {
		t.Error("two tokens are identical")
	}
}

func TestHashToken(t *testing.T) {
	hash := HashToken("some-token")

	if len(hash) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(hash))
	}
	if hash != HashToken("some-token") {
		t.Error("hashing is not deterministic")
	}
	if hash == HashToken("other-token") {
		t.Error("different tokens produced the same hash")
	}

	if !CompareTokenHash("some-token", hash) {
		t.Error("CompareTokenHash rejected the matching token")
	}
	if CompareTokenHash("other-token", hash) {
		t.Error("CompareTokenHash accepted a different token")
	}
}
