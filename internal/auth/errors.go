// AngelaMos | 2026
// errors.go

package auth

import (
	"errors"
)

type Code string

const (
	CodeInvalidInput             Code = "INVALID_INPUT"
	CodeEmailExists              Code = "EMAIL_EXISTS"
	CodeRoleAssignmentFailed     Code = "ROLE_ASSIGNMENT_FAILED"
	CodeVerificationStateMissing Code = "VERIFICATION_STATE_MISSING"
	CodeUserNotFound             Code = "USER_NOT_FOUND"
	CodeAdminNotFound            Code = "ADMIN_NOT_FOUND"
	CodeInvalidCredentials       Code = "INVALID_CREDENTIALS"
	CodeUserSuspended            Code = "USER_SUSPENDED"
	CodeUserBanned               Code = "USER_BANNED"
	CodeUserDeleted              Code = "USER_DELETED"
	CodeAdminDisabled            Code = "ADMIN_DISABLED"
	CodeSessionCreationFailed    Code = "SESSION_CREATION_FAILED"
	CodeTransactionFailed        Code = "TRANSACTION_FAILED"
)

// AuthError is the tagged failure every pipeline returns. Details carries the
// underlying cause for logging and is never serialized to clients.
type AuthError struct {
	Code    Code
	Message string
	Details error
}

func (e *AuthError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Details
}

func NewAuthError(code Code, message string) *AuthError {
	return &AuthError{Code: code, Message: message}
}

func WrapAuthError(code Code, message string, cause error) *AuthError {
	return &AuthError{Code: code, Message: message, Details: cause}
}

func AsAuthError(err error) (*AuthError, bool) {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr, true
	}
	return nil, false
}

func IsCode(err error, code Code) bool {
	authErr, ok := AsAuthError(err)
	return ok && authErr.Code == code
}

// normalizeTxError keeps typed pipeline failures intact and folds anything
// else that escaped the transaction into TRANSACTION_FAILED.
func normalizeTxError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsAuthError(err); ok {
		return err
	}
	return WrapAuthError(
		CodeTransactionFailed,
		"operation could not be completed",
		err,
	)
}
