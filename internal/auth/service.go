// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/the3rdukem/markethub-ghana-sub000/internal/account"
	"github.com/the3rdukem/markethub-ghana-sub000/internal/admin"
	"github.com/the3rdukem/markethub-ghana-sub000/internal/core"
	"github.com/the3rdukem/markethub-ghana-sub000/internal/middleware"
	"github.com/the3rdukem/markethub-ghana-sub000/internal/vendor"
)

// Service owns the only code paths that create accounts and issue sessions.
// Every role goes through the same pipelines; role decides what gets attached
// to the returned identity, never how authentication works.
type Service struct {
	store    Store
	duration time.Duration
}

func NewService(store Store, sessionDuration time.Duration) *Service {
	if sessionDuration <= 0 {
		sessionDuration = DefaultSessionDuration
	}
	return &Service{
		store:    store,
		duration: sessionDuration,
	}
}

type CreateUserInput struct {
	Email        string
	Password     string
	Name         string
	Role         string
	Phone        string
	Location     string
	BusinessName string
	BusinessType string
	Permissions  []string
}

type CreateUserOptions struct {
	WithoutSession bool
	UserAgent      string
	IPAddress      string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOptions struct {
	UserAgent string
	IPAddress string
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const minPasswordLength = 6

// CreateUser is the canonical creation pipeline for every role. Validation
// failures are rejected before a transaction opens; everything past that
// point runs inside one transaction and either fully commits or leaves no
// trace in any table.
func (s *Service) CreateUser(
	ctx context.Context,
	input CreateUserInput,
	opts CreateUserOptions,
) (*AuthResult, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	var result *AuthResult

	err := s.store.InTx(ctx, func(r Repositories) error {
		// The two tables form one identity namespace; both checks are
		// mandatory. The unique indexes remain the authoritative guard
		// against a concurrent create racing past these reads.
		exists, err := r.Accounts.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return fmt.Errorf("check account email: %w", err)
		}
		if exists {
			return NewAuthError(CodeEmailExists, "email is already registered")
		}

		exists, err = r.LegacyAdmins.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return fmt.Errorf("check legacy admin email: %w", err)
		}
		if exists {
			return NewAuthError(CodeEmailExists, "email is already registered")
		}

		passwordHash, err := core.HashPassword(input.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		status := account.StatusActive
		var verification *string
		if input.Role == account.RoleVendor {
			status = account.StatusPending
			v := account.VerificationPending
			verification = &v
		}

		acct := &account.Account{
			ID:                 uuid.New().String(),
			Email:              strings.ToLower(input.Email),
			PasswordHash:       passwordHash,
			Name:               input.Name,
			Role:               input.Role,
			Status:             status,
			Phone:              optional(input.Phone),
			Location:           optional(input.Location),
			BusinessName:       optional(input.BusinessName),
			BusinessType:       optional(input.BusinessType),
			VerificationStatus: verification,
		}

		if err := r.Accounts.Create(ctx, acct); err != nil {
			if errors.Is(err, core.ErrDuplicateKey) {
				return WrapAuthError(
					CodeEmailExists,
					"email is already registered",
					err,
				)
			}
			return err
		}

		// Read back and assert the row landed with its role before creating
		// anything that depends on it.
		fresh, err := r.Accounts.GetByID(ctx, acct.ID)
		if err != nil {
			return WrapAuthError(
				CodeRoleAssignmentFailed,
				"account was not persisted",
				err,
			)
		}
		if fresh.Role == "" {
			return NewAuthError(
				CodeRoleAssignmentFailed,
				"account role was not assigned",
			)
		}

		if fresh.Role == account.RoleVendor {
			if fresh.VerificationStatus == nil || *fresh.VerificationStatus == "" {
				return NewAuthError(
					CodeVerificationStateMissing,
					"vendor verification state was not initialized",
				)
			}

			v := &vendor.Vendor{
				ID:                 uuid.New().String(),
				AccountID:          fresh.ID,
				BusinessName:       input.BusinessName,
				BusinessType:       optional(input.BusinessType),
				ContactPhone:       fresh.Phone,
				ContactEmail:       &fresh.Email,
				VerificationStatus: account.VerificationPending,
				StoreStatus:        vendor.StoreInactive,
			}
			if err := r.Vendors.Create(ctx, v); err != nil {
				return WrapAuthError(
					CodeRoleAssignmentFailed,
					"vendor profile could not be created",
					err,
				)
			}
		}

		result = &AuthResult{
			User:       identityFromAccount(fresh, input.Permissions),
			RedirectTo: RouteForRole(fresh.Role),
		}

		if !opts.WithoutSession {
			sess, raw, err := s.issueSession(
				ctx, r, fresh.ID, fresh.Role, opts.UserAgent, opts.IPAddress,
			)
			if err != nil {
				return WrapAuthError(
					CodeSessionCreationFailed,
					"session could not be created",
					err,
				)
			}
			result.Session = &SessionResponse{
				Token:     raw,
				ExpiresAt: sess.ExpiresAt,
			}
		}

		return nil
	})
	if err != nil {
		return nil, normalizeTxError(err)
	}

	return result, nil
}

// RegisterUser is the public signup wrapper; only buyer and vendor accounts
// can self-register, and a session is always issued.
func (s *Service) RegisterUser(
	ctx context.Context,
	input CreateUserInput,
	opts LoginOptions,
) (*AuthResult, error) {
	if input.Role != account.RoleBuyer && input.Role != account.RoleVendor {
		return nil, NewAuthError(
			CodeInvalidInput,
			"role must be buyer or vendor",
		)
	}

	return s.CreateUser(ctx, input, CreateUserOptions{
		UserAgent: opts.UserAgent,
		IPAddress: opts.IPAddress,
	})
}

// LoginUser resolves a credential pair against the canonical table first and
// the legacy administrator table second, normalizes whichever matched into
// one identity shape, and issues a session.
func (s *Service) LoginUser(
	ctx context.Context,
	input LoginInput,
	opts LoginOptions,
) (*AuthResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, NewAuthError(
			CodeInvalidInput,
			"email and password are required",
		)
	}

	var result *AuthResult

	err := s.store.InTx(ctx, func(r Repositories) error {
		var res resolvedIdentity

		acct, err := r.Accounts.GetByEmail(ctx, input.Email)
		switch {
		case err == nil:
			res.acct = acct
		case errors.Is(err, core.ErrNotFound):
			adm, lerr := r.LegacyAdmins.GetByEmail(ctx, input.Email)
			if errors.Is(lerr, core.ErrNotFound) {
				core.VerifyPasswordTimingSafe(input.Password, nil)
				return NewAuthError(
					CodeUserNotFound,
					"no account exists for this email",
				)
			}
			if lerr != nil {
				return fmt.Errorf("lookup legacy admin: %w", lerr)
			}
			if !adm.IsActive {
				return NewAuthError(
					CodeAdminDisabled,
					"administrator account is disabled",
				)
			}
			// Legacy rows verify immediately; the identity is tagged as
			// legacy-sourced so no later step re-checks the password or
			// applies the canonical status gate it has no fields for.
			if !core.VerifyPassword(input.Password, adm.PasswordHash) {
				return NewAuthError(
					CodeInvalidCredentials,
					"invalid email or password",
				)
			}
			res.legacy = adm
		default:
			return fmt.Errorf("lookup account: %w", err)
		}

		if res.acct != nil {
			if !core.VerifyPassword(input.Password, res.acct.PasswordHash) {
				return NewAuthError(
					CodeInvalidCredentials,
					"invalid email or password",
				)
			}

			if err := statusGate(res.acct.Status); err != nil {
				return err
			}

			if res.acct.Role == "" {
				return NewAuthError(
					CodeRoleAssignmentFailed,
					"account has no role assigned",
				)
			}

			if res.acct.Role == account.RoleVendor &&
				(res.acct.VerificationStatus == nil || *res.acct.VerificationStatus == "") {
				if err := r.Accounts.SetVerificationStatus(
					ctx, res.acct.ID, account.VerificationPending,
				); err != nil {
					return fmt.Errorf("repair verification status: %w", err)
				}
				v := account.VerificationPending
				res.acct.VerificationStatus = &v

				// Distinct from normal-path login logging: firing at all
				// means the creation path has a bug upstream.
				slog.Warn("repaired missing vendor verification status at login",
					"account_id", res.acct.ID,
				)
			}
		}

		sess, raw, err := s.issueSession(
			ctx, r, res.id(), res.role(), opts.UserAgent, opts.IPAddress,
		)
		if err != nil {
			return WrapAuthError(
				CodeSessionCreationFailed,
				"session could not be created",
				err,
			)
		}

		if res.legacy != nil {
			err = r.LegacyAdmins.StampLogin(ctx, res.legacy.ID)
		} else {
			err = r.Accounts.StampLogin(ctx, res.acct.ID)
		}
		if err != nil {
			return fmt.Errorf("stamp last login: %w", err)
		}

		result = &AuthResult{
			User:       res.identity(),
			Session:    &SessionResponse{Token: raw, ExpiresAt: sess.ExpiresAt},
			RedirectTo: RouteForRole(res.role()),
		}

		return nil
	})
	if err != nil {
		return nil, normalizeTxError(err)
	}

	return result, nil
}

// LoginAdmin runs the unified pipeline and rejects identities that resolved
// to a non-admin role. The session issued for a rejected login is revoked so
// the failed attempt leaves nothing behind.
func (s *Service) LoginAdmin(
	ctx context.Context,
	input LoginInput,
	opts LoginOptions,
) (*AuthResult, error) {
	result, err := s.LoginUser(ctx, input, opts)
	if err != nil {
		return nil, err
	}

	if result.User.Role != account.RoleAdmin &&
		result.User.Role != account.RoleMasterAdmin {
		if result.Session != nil {
			//nolint:errcheck // best-effort cleanup of the rejected session
			_, _ = s.LogoutByToken(ctx, result.Session.Token)
		}
		return nil, NewAuthError(
			CodeAdminNotFound,
			"no administrator account exists for this email",
		)
	}

	return result, nil
}

// ValidateSession resolves a bearer token to an identity and slides the
// session expiry forward by the full duration from now. A missing session
// and an expired one are deliberately indistinguishable.
func (s *Service) ValidateSession(
	ctx context.Context,
	token string,
) (*SessionIdentity, error) {
	if token == "" {
		return nil, NewAuthError(
			CodeInvalidCredentials,
			"session is invalid or expired",
		)
	}

	r := s.store.Repos()

	sess, err := r.Sessions.FindByTokenHash(ctx, core.HashToken(token))
	if errors.Is(err, core.ErrNotFound) {
		return nil, NewAuthError(
			CodeInvalidCredentials,
			"session is invalid or expired",
		)
	}
	if err != nil {
		return nil, WrapAuthError(
			CodeTransactionFailed,
			"session lookup failed",
			err,
		)
	}

	// The role snapshot routes the identity lookup without re-querying who
	// the token belongs to.
	if sess.Role == account.RoleAdmin || sess.Role == account.RoleMasterAdmin {
		adm, err := r.LegacyAdmins.GetByID(ctx, sess.AccountID)
		if err == nil {
			if !adm.IsActive {
				return nil, NewAuthError(
					CodeAdminDisabled,
					"administrator account is disabled",
				)
			}
			if err := s.slide(ctx, r, sess); err != nil {
				return nil, err
			}
			return &SessionIdentity{
				Session: sess,
				User:    identityFromLegacy(adm),
			}, nil
		}
		if !errors.Is(err, core.ErrNotFound) {
			return nil, WrapAuthError(
				CodeTransactionFailed,
				"identity lookup failed",
				err,
			)
		}
	}

	acct, err := r.Accounts.GetByID(ctx, sess.AccountID)
	if errors.Is(err, core.ErrNotFound) {
		return nil, NewAuthError(
			CodeUserNotFound,
			"account no longer exists",
		)
	}
	if err != nil {
		return nil, WrapAuthError(
			CodeTransactionFailed,
			"identity lookup failed",
			err,
		)
	}

	if err := statusGate(acct.Status); err != nil {
		return nil, err
	}

	if err := s.slide(ctx, r, sess); err != nil {
		return nil, err
	}

	return &SessionIdentity{
		Session: sess,
		User:    identityFromAccount(acct, nil),
	}, nil
}

func (s *Service) LogoutByToken(
	ctx context.Context,
	token string,
) (bool, error) {
	if token == "" {
		return false, nil
	}
	return s.store.Repos().Sessions.DeleteByTokenHash(ctx, core.HashToken(token))
}

func (s *Service) DeleteUserSessions(
	ctx context.Context,
	accountID string,
) (int64, error) {
	return s.store.Repos().Sessions.DeleteAllForAccount(ctx, accountID)
}

func (s *Service) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	return s.store.Repos().Sessions.DeleteExpired(ctx)
}

func (s *Service) ListSessions(
	ctx context.Context,
	accountID string,
) ([]SessionInfo, error) {
	sessions, err := s.store.Repos().Sessions.ListActiveForAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	infos := make([]SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		infos = append(infos, SessionInfo{
			ID:        sess.ID,
			UserAgent: sess.UserAgent,
			IPAddress: sess.IPAddress,
			CreatedAt: sess.CreatedAt,
			ExpiresAt: sess.ExpiresAt,
		})
	}

	return infos, nil
}

// VerifySessionToken adapts ValidateSession for the HTTP middleware layer,
// translating pipeline failures into transport-level errors.
func (s *Service) VerifySessionToken(
	ctx context.Context,
	token string,
) (*middleware.SessionPrincipal, error) {
	si, err := s.ValidateSession(ctx, token)
	if err != nil {
		authErr, ok := AsAuthError(err)
		if !ok {
			return nil, core.UnauthorizedError("session is invalid or expired")
		}
		switch authErr.Code {
		case CodeUserSuspended, CodeUserBanned, CodeUserDeleted,
			CodeAdminDisabled:
			return nil, core.ForbiddenError(authErr.Message)
		default:
			return nil, core.UnauthorizedError("session is invalid or expired")
		}
	}

	return &middleware.SessionPrincipal{
		AccountID:   si.User.ID,
		Email:       si.User.Email,
		Name:        si.User.Name,
		Role:        si.User.Role,
		Permissions: si.User.Permissions,
	}, nil
}

func (s *Service) issueSession(
	ctx context.Context,
	r Repositories,
	accountID, role, userAgent, ipAddress string,
) (*Session, string, error) {
	tok, err := NewSessionToken(s.duration)
	if err != nil {
		return nil, "", err
	}

	sess := &Session{
		ID:        uuid.New().String(),
		AccountID: accountID,
		Role:      role,
		TokenHash: tok.Hash,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: tok.ExpiresAt,
	}

	if err := r.Sessions.Create(ctx, sess); err != nil {
		return nil, "", err
	}

	return sess, tok.Raw, nil
}

func (s *Service) slide(
	ctx context.Context,
	r Repositories,
	sess *Session,
) error {
	newExpiry := computeExpiry(time.Now(), s.duration)
	if err := r.Sessions.ExtendExpiry(ctx, sess.ID, newExpiry); err != nil {
		return WrapAuthError(
			CodeTransactionFailed,
			"session renewal failed",
			err,
		)
	}
	sess.ExpiresAt = newExpiry
	return nil
}

// resolvedIdentity is the internal tagged union of the two identity sources.
// It never leaves the pipeline; identity() is the only way out.
type resolvedIdentity struct {
	acct   *account.Account
	legacy *admin.LegacyAdmin
}

func (r *resolvedIdentity) id() string {
	if r.legacy != nil {
		return r.legacy.ID
	}
	return r.acct.ID
}

func (r *resolvedIdentity) role() string {
	if r.legacy != nil {
		return r.legacy.UnifiedRole()
	}
	return r.acct.Role
}

func (r *resolvedIdentity) identity() Identity {
	if r.legacy != nil {
		return identityFromLegacy(r.legacy)
	}
	return identityFromAccount(r.acct, nil)
}

func identityFromAccount(a *account.Account, explicitPerms []string) Identity {
	id := Identity{
		ID:                 a.ID,
		Email:              a.Email,
		Name:               a.Name,
		Role:               a.Role,
		Status:             a.Status,
		Phone:              a.Phone,
		Location:           a.Location,
		BusinessName:       a.BusinessName,
		VerificationStatus: a.VerificationStatus,
		LastLoginAt:        a.LastLoginAt,
		PreviousLoginAt:    a.PreviousLoginAt,
		CreatedAt:          a.CreatedAt,
	}

	if a.IsAdminRole() {
		if len(explicitPerms) > 0 {
			id.Permissions = explicitPerms
		} else {
			id.Permissions = admin.DefaultPermissions(a.Role)
		}
	}

	return id
}

func identityFromLegacy(a *admin.LegacyAdmin) Identity {
	return Identity{
		ID:              a.ID,
		Email:           a.Email,
		Name:            a.Name,
		Role:            a.UnifiedRole(),
		Status:          account.StatusActive,
		Permissions:     admin.ParsePermissions(a.Permissions, a.Role),
		LastLoginAt:     a.LastLoginAt,
		PreviousLoginAt: a.PreviousLoginAt,
		CreatedAt:       a.CreatedAt,
	}
}

func statusGate(status string) error {
	switch status {
	case account.StatusSuspended:
		return NewAuthError(CodeUserSuspended, "account is suspended")
	case account.StatusBanned:
		return NewAuthError(CodeUserBanned, "account is banned")
	case account.StatusDeleted:
		return NewAuthError(CodeUserDeleted, "account has been deleted")
	}
	return nil
}

func validateCreateInput(input CreateUserInput) error {
	if input.Email == "" || input.Password == "" ||
		input.Name == "" || input.Role == "" {
		return NewAuthError(
			CodeInvalidInput,
			"email, password, name, and role are required",
		)
	}

	if !emailPattern.MatchString(input.Email) {
		return NewAuthError(CodeInvalidInput, "email address is not valid")
	}

	if len(input.Password) < minPasswordLength {
		return NewAuthError(
			CodeInvalidInput,
			"password must be at least 6 characters",
		)
	}

	if !account.ValidRole(input.Role) {
		return NewAuthError(CodeInvalidInput, "unknown role: "+input.Role)
	}

	if input.Role == account.RoleVendor && input.BusinessName == "" {
		return NewAuthError(
			CodeInvalidInput,
			"business name is required for vendor accounts",
		)
	}

	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
