// AngelaMos | 2026
// routes_test.go

package auth

import (
	"testing"

	"github.com/the3rdukem/markethub-ghana-sub000/internal/account"
)

func TestRouteForRole(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{account.RoleBuyer, "/"},
		{account.RoleVendor, "/vendor/dashboard"},
		{account.RoleAdmin, "/admin/dashboard"},
		{account.RoleMasterAdmin, "/admin/dashboard"},
		{"", "/"},
		{"unknown", "/"},
	}

	for _, tt := range tests {
		if got := RouteForRole(tt.role); got != tt.want {
			t.Errorf("RouteForRole(%q) = %q, want %q", tt.role, got, tt.want)
		}
	}
}
