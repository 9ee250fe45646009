// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

type RegisterRequest struct {
	Email        string `json:"email"         validate:"required,email,max=255"`
	Password     string `json:"password"      validate:"required,min=6,max=128"`
	Name         string `json:"name"          validate:"required,min=1,max=100"`
	Role         string `json:"role"          validate:"required,oneof=buyer vendor"`
	Phone        string `json:"phone"         validate:"omitempty,max=32"`
	Location     string `json:"location"      validate:"omitempty,max=255"`
	BusinessName string `json:"business_name" validate:"omitempty,max=255"`
	BusinessType string `json:"business_type" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=1,max=128"`
}

// Identity is the one public shape every pipeline resolves to, regardless of
// which table the account came from.
type Identity struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	Role               string     `json:"role"`
	Status             string     `json:"status"`
	Phone              *string    `json:"phone,omitempty"`
	Location           *string    `json:"location,omitempty"`
	BusinessName       *string    `json:"business_name,omitempty"`
	VerificationStatus *string    `json:"verification_status,omitempty"`
	Permissions        []string   `json:"permissions,omitempty"`
	LastLoginAt        *time.Time `json:"last_login_at,omitempty"`
	PreviousLoginAt    *time.Time `json:"previous_login_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AuthResult struct {
	User       Identity         `json:"user"`
	Session    *SessionResponse `json:"session,omitempty"`
	RedirectTo string           `json:"redirect_to"`
}

// SessionIdentity is what a successful bearer-token validation yields.
type SessionIdentity struct {
	Session *Session `json:"-"`
	User    Identity `json:"user"`
}

type SessionInfo struct {
	ID        string    `json:"id"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionsResponse struct {
	Sessions []SessionInfo `json:"sessions"`
}
