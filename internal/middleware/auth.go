// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/the3rdukem/markethub-ghana-sub000/internal/core"
)

const (
	AccountIDKey    contextKey = "account_id"
	AccountRoleKey  contextKey = "account_role"
	PrincipalKey    contextKey = "session_principal"
	SessionTokenKey contextKey = "session_token"
)

// SessionPrincipal is the resolved identity a validated session token grants
// to the rest of the request.
type SessionPrincipal struct {
	AccountID   string
	Email       string
	Name        string
	Role        string
	Permissions []string
}

type SessionVerifier interface {
	VerifySessionToken(
		ctx context.Context,
		token string,
	) (*SessionPrincipal, error)
}

func Authenticator(verifier SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token == "" {
				core.JSONError(
					w,
					core.UnauthorizedError("missing authorization token"),
				)
				return
			}

			principal, err := verifier.VerifySessionToken(r.Context(), token)
			if err != nil {
				if core.IsAppError(err) {
					core.JSONError(w, err)
					return
				}
				core.JSONError(
					w,
					core.UnauthorizedError("session is invalid or expired"),
				)
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, AccountIDKey, principal.AccountID)
			ctx = context.WithValue(ctx, AccountRoleKey, principal.Role)
			ctx = context.WithValue(ctx, PrincipalKey, principal)
			ctx = context.WithValue(ctx, SessionTokenKey, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := GetAccountRole(r.Context())

			if role == "" {
				core.JSONError(
					w,
					core.UnauthorizedError("authentication required"),
				)
				return
			}

			if _, ok := roleSet[role]; !ok {
				core.JSONError(
					w,
					core.ForbiddenError("insufficient permissions"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole("admin", "master_admin")(next)
}

func RequireMasterAdmin(next http.Handler) http.Handler {
	return RequireRole("master_admin")(next)
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func GetAccountID(ctx context.Context) string {
	if id, ok := ctx.Value(AccountIDKey).(string); ok {
		return id
	}
	return ""
}

func GetAccountRole(ctx context.Context) string {
	if role, ok := ctx.Value(AccountRoleKey).(string); ok {
		return role
	}
	return ""
}

func GetPrincipal(ctx context.Context) *SessionPrincipal {
	if principal, ok := ctx.Value(PrincipalKey).(*SessionPrincipal); ok {
		return principal
	}
	return nil
}

func GetSessionToken(ctx context.Context) string {
	if token, ok := ctx.Value(SessionTokenKey).(string); ok {
		return token
	}
	return ""
}

func IsAuthenticated(ctx context.Context) bool {
	return GetAccountID(ctx) != ""
}
