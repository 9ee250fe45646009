// AngelaMos | 2026
// entity.go

package account

import (
	"time"
)

type Account struct {
	ID                 string     `db:"id"`
	Email              string     `db:"email"`
	PasswordHash       string     `db:"password_hash"`
	Name               string     `db:"name"`
	Role               string     `db:"role"`
	Status             string     `db:"status"`
	Phone              *string    `db:"phone"`
	Location           *string    `db:"location"`
	BusinessName       *string    `db:"business_name"`
	BusinessType       *string    `db:"business_type"`
	VerificationStatus *string    `db:"verification_status"`
	LastLoginAt        *time.Time `db:"last_login_at"`
	PreviousLoginAt    *time.Time `db:"previous_login_at"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
	DeletedAt          *time.Time `db:"deleted_at"`
}

const (
	RoleBuyer       = "buyer"
	RoleVendor      = "vendor"
	RoleAdmin       = "admin"
	RoleMasterAdmin = "master_admin"
)

const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusPending   = "pending"
	StatusBanned    = "banned"
	StatusDeleted   = "deleted"
)

const (
	VerificationPending     = "pending"
	VerificationUnderReview = "under_review"
	VerificationVerified    = "verified"
	VerificationRejected    = "rejected"
	VerificationSuspended   = "suspended"
)

func ValidRole(role string) bool {
	switch role {
	case RoleBuyer, RoleVendor, RoleAdmin, RoleMasterAdmin:
		return true
	}
	return false
}

func ValidVerificationStatus(status string) bool {
	switch status {
	case VerificationPending, VerificationUnderReview,
		VerificationVerified, VerificationRejected, VerificationSuspended:
		return true
	}
	return false
}

func (a *Account) IsDeleted() bool {
	return a.DeletedAt != nil
}

func (a *Account) IsVendor() bool {
	return a.Role == RoleVendor
}

func (a *Account) IsAdminRole() bool {
	return a.Role == RoleAdmin || a.Role == RoleMasterAdmin
}
