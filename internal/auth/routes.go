// AngelaMos | 2026
// routes.go

package auth

import (
	"github.com/the3rdukem/markethub-ghana-sub000/internal/account"
)

// RouteForRole maps a role to its post-login destination. Pure; the only
// place role influences where a login lands, never how it authenticates.
func RouteForRole(role string) string {
	switch role {
	case account.RoleVendor:
		return "/vendor/dashboard"
	case account.RoleAdmin, account.RoleMasterAdmin:
		return "/admin/dashboard"
	default:
		return "/"
	}
}
