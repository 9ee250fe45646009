// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/the3rdukem/markethub-ghana-sub000/internal/core"
)

type stubVerifier struct {
	principal *SessionPrincipal
	err       error
}

func (v *stubVerifier) VerifySessionToken(
	ctx context.Context,
	token string,
) (*SessionPrincipal, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.principal, nil
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"missing header", "", ""},
		{"bearer token", "Bearer abc123", "abc123"},
		{"lowercase scheme", "bearer abc123", "abc123"},
		{"wrong scheme", "Basic abc123", ""},
		{"scheme only", "Bearer", ""},
		{"padded token", "Bearer   abc123  ", "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			if got := ExtractToken(r); got != tt.want {
				t.Errorf("ExtractToken = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAuthenticator(t *testing.T) {
	principal := &SessionPrincipal{
		AccountID: "acct-1",
		Email:     "ama@example.com",
		Role:      "buyer",
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetAccountID(r.Context()) != "acct-1" {
			t.Error("account id missing from context")
		}
		if GetAccountRole(r.Context()) != "buyer" {
			t.Error("role missing from context")
		}
		if GetSessionToken(r.Context()) != "tok" {
			t.Error("token missing from context")
		}
		w.WriteHeader(http.StatusOK)
	})

	handler := Authenticator(&stubVerifier{principal: principal})(next)

	t.Run("valid token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("verifier rejects", func(t *testing.T) {
		rejecting := Authenticator(&stubVerifier{
			err: core.UnauthorizedError("session is invalid or expired"),
		})(next)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()

		rejecting.ServeHTTP(w, r)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("forbidden passthrough", func(t *testing.T) {
		forbidden := Authenticator(&stubVerifier{
			err: core.ForbiddenError("account is suspended"),
		})(next)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()

		forbidden.ServeHTTP(w, r)
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	withRole := func(role string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := context.WithValue(r.Context(), AccountRoleKey, role)
		return r.WithContext(ctx)
	}

	t.Run("allowed role", func(t *testing.T) {
		w := httptest.NewRecorder()
		RequireAdmin(next).ServeHTTP(w, withRole("admin"))
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("master admin passes admin gate", func(t *testing.T) {
		w := httptest.NewRecorder()
		RequireAdmin(next).ServeHTTP(w, withRole("master_admin"))
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("admin blocked by master gate", func(t *testing.T) {
		w := httptest.NewRecorder()
		RequireMasterAdmin(next).ServeHTTP(w, withRole("admin"))
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	t.Run("no role", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		RequireAdmin(next).ServeHTTP(w, r)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}
