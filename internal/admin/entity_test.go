// AngelaMos | 2026
// entity_test.go

package admin

import (
	"slices"
	"testing"
)

func TestDefaultPermissions(t *testing.T) {
	admin := DefaultPermissions("admin")
	if len(admin) == 0 {
		t.Fatal("admin defaults are empty")
	}
	if slices.Contains(admin, "admins.manage") {
		t.Error("plain admin got admins.manage")
	}

	master := DefaultPermissions(LegacyRoleMasterAdmin)
	if !slices.Contains(master, "admins.manage") {
		t.Error("master admin missing admins.manage")
	}

	if DefaultPermissions("buyer") != nil {
		t.Error("non-admin role got permissions")
	}

	// Callers mutate their copy freely.
	admin[0] = "mutated"
	if DefaultPermissions("admin")[0] == "mutated" {
		t.Error("defaults are aliased to the caller's slice")
	}
}

func TestParsePermissions(t *testing.T) {
	stored := `["users.read","custom.permission"]`
	badJSON := `{"not": "a list"}`
	empty := ""

	tests := []struct {
		name   string
		stored *string
		role   string
		want   []string
	}{
		{
			name:   "stored list wins",
			stored: &stored,
			role:   LegacyRoleAdmin,
			want:   []string{"users.read", "custom.permission"},
		},
		{
			name:   "nil falls back to defaults",
			stored: nil,
			role:   LegacyRoleAdmin,
			want:   DefaultPermissions(LegacyRoleAdmin),
		},
		{
			name:   "empty string falls back to defaults",
			stored: &empty,
			role:   LegacyRoleMasterAdmin,
			want:   DefaultPermissions(LegacyRoleMasterAdmin),
		},
		{
			name:   "unreadable JSON falls back to defaults",
			stored: &badJSON,
			role:   LegacyRoleAdmin,
			want:   DefaultPermissions(LegacyRoleAdmin),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePermissions(tt.stored, tt.role)
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParsePermissions = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnifiedRole(t *testing.T) {
	adm := LegacyAdmin{Role: LegacyRoleAdmin}
	if got := adm.UnifiedRole(); got != "admin" {
		t.Errorf("UnifiedRole = %q, want admin", got)
	}

	master := LegacyAdmin{Role: LegacyRoleMasterAdmin}
	if got := master.UnifiedRole(); got != "master_admin" {
		t.Errorf("UnifiedRole = %q, want master_admin", got)
	}
}
