// AngelaMos | 2026
// dto_test.go

package account

import (
	"testing"
)

func TestListAccountsParamsNormalize(t *testing.T) {
	tests := []struct {
		name         string
		params       ListAccountsParams
		wantPage     int
		wantPageSize int
		wantOffset   int
	}{
		{
			name:         "zero values get defaults",
			params:       ListAccountsParams{},
			wantPage:     1,
			wantPageSize: 20,
			wantOffset:   0,
		},
		{
			name:         "negative page clamps to first",
			params:       ListAccountsParams{Page: -3, PageSize: 10},
			wantPage:     1,
			wantPageSize: 10,
			wantOffset:   0,
		},
		{
			name:         "oversized page size clamps to cap",
			params:       ListAccountsParams{Page: 2, PageSize: 500},
			wantPage:     2,
			wantPageSize: 100,
			wantOffset:   100,
		},
		{
			name:         "plain paging",
			params:       ListAccountsParams{Page: 3, PageSize: 25},
			wantPage:     3,
			wantPageSize: 25,
			wantOffset:   50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params.Normalize()

			if tt.params.Page != tt.wantPage {
				t.Errorf("page = %d, want %d", tt.params.Page, tt.wantPage)
			}
			if tt.params.PageSize != tt.wantPageSize {
				t.Errorf("page size = %d, want %d", tt.params.PageSize, tt.wantPageSize)
			}
			if got := tt.params.Offset(); got != tt.wantOffset {
				t.Errorf("offset = %d, want %d", got, tt.wantOffset)
			}
		})
	}
}

func TestAccountHelpers(t *testing.T) {
	vendor := Account{Role: RoleVendor, Status: StatusPending}
	if !vendor.IsVendor() {
		t.Error("vendor not recognized")
	}
	if vendor.IsAdminRole() {
		t.Error("vendor counted as admin")
	}

	master := Account{Role: RoleMasterAdmin}
	if !master.IsAdminRole() {
		t.Error("master admin not recognized as admin role")
	}

	if !ValidRole(RoleBuyer) || ValidRole("superuser") {
		t.Error("ValidRole vocabulary is wrong")
	}
	if !ValidVerificationStatus(VerificationUnderReview) ||
		ValidVerificationStatus("maybe") {
		t.Error("ValidVerificationStatus vocabulary is wrong")
	}
}
