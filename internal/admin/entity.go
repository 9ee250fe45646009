// AngelaMos | 2026
// entity.go

package admin

import (
	"encoding/json"
	"time"
)

// LegacyAdmin is a row in the admin_users table, kept for administrators
// created before the unified users table existed. New admin accounts are
// never written here; the pipeline only reads these rows and stamps
// last-login times.
type LegacyAdmin struct {
	ID              string     `db:"id"`
	Email           string     `db:"email"`
	PasswordHash    string     `db:"password_hash"`
	Name            string     `db:"name"`
	Role            string     `db:"role"`
	IsActive        bool       `db:"is_active"`
	Permissions     *string    `db:"permissions"`
	LastLoginAt     *time.Time `db:"last_login_at"`
	PreviousLoginAt *time.Time `db:"previous_login_at"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

// Legacy role vocabulary differs from users.role: uppercase, two values.
const (
	LegacyRoleAdmin       = "ADMIN"
	LegacyRoleMasterAdmin = "MASTER_ADMIN"
)

var adminDefaultPermissions = []string{
	"users.read",
	"users.moderate",
	"vendors.read",
	"vendors.verify",
	"orders.read",
	"products.moderate",
}

var masterAdminDefaultPermissions = []string{
	"users.read",
	"users.moderate",
	"vendors.read",
	"vendors.verify",
	"orders.read",
	"products.moderate",
	"admins.manage",
	"integrations.manage",
	"payouts.approve",
	"system.stats",
}

// DefaultPermissions returns the permission set granted to an admin role when
// no explicit list is stored. role accepts both the unified vocabulary
// (admin/master_admin) and the legacy one (ADMIN/MASTER_ADMIN).
func DefaultPermissions(role string) []string {
	switch role {
	case "master_admin", LegacyRoleMasterAdmin:
		return append([]string(nil), masterAdminDefaultPermissions...)
	case "admin", LegacyRoleAdmin:
		return append([]string(nil), adminDefaultPermissions...)
	}
	return nil
}

// ParsePermissions decodes the stored JSON permission list of a legacy row,
// falling back to the role defaults when the column is null or unreadable.
func ParsePermissions(stored *string, role string) []string {
	if stored == nil || *stored == "" {
		return DefaultPermissions(role)
	}

	var perms []string
	if err := json.Unmarshal([]byte(*stored), &perms); err != nil {
		return DefaultPermissions(role)
	}

	return perms
}

// UnifiedRole maps the legacy role vocabulary onto users.role values.
func (a *LegacyAdmin) UnifiedRole() string {
	if a.Role == LegacyRoleMasterAdmin {
		return "master_admin"
	}
	return "admin"
}
