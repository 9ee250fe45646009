// AngelaMos | 2026
// service.go

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/the3rdukem/markethub-ghana-sub000/internal/core"
	"github.com/the3rdukem/markethub-ghana-sub000/internal/vendor"
)

// SessionRevoker tears down every live session an account holds. Moderation
// actions that remove an account's access must also kill its sessions in the
// same call path.
type SessionRevoker interface {
	DeleteUserSessions(ctx context.Context, accountID string) (int64, error)
}

type Service struct {
	accounts Repository
	vendors  vendor.Repository
	sessions SessionRevoker
}

func NewService(
	accounts Repository,
	vendors vendor.Repository,
	sessions SessionRevoker,
) *Service {
	return &Service{
		accounts: accounts,
		vendors:  vendors,
		sessions: sessions,
	}
}

func (s *Service) GetProfile(
	ctx context.Context,
	accountID string,
) (*AccountResponse, error) {
	acct, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("account")
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	resp := ToAccountResponse(acct)
	return &resp, nil
}

func (s *Service) UpdateProfile(
	ctx context.Context,
	accountID string,
	req UpdateProfileRequest,
) (*AccountResponse, error) {
	acct, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("account")
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if req.Name != nil {
		acct.Name = *req.Name
	}
	if req.Phone != nil {
		acct.Phone = req.Phone
	}
	if req.Location != nil {
		acct.Location = req.Location
	}

	if err := s.accounts.UpdateProfile(ctx, acct); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("account")
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	resp := ToAccountResponse(acct)
	return &resp, nil
}

func (s *Service) ListAccounts(
	ctx context.Context,
	params ListAccountsParams,
) (*AccountListResponse, error) {
	params.Normalize()

	accounts, total, err := s.accounts.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	return &AccountListResponse{
		Accounts: ToAccountResponseList(accounts),
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

// Suspend locks the account out and revokes every session it holds.
func (s *Service) Suspend(ctx context.Context, accountID string) error {
	return s.moderate(ctx, accountID, StatusSuspended)
}

// Ban permanently locks the account out and revokes every session it holds.
func (s *Service) Ban(ctx context.Context, accountID string) error {
	return s.moderate(ctx, accountID, StatusBanned)
}

// Reinstate lifts a suspension or ban. Sessions are not restored; the
// account logs in again.
func (s *Service) Reinstate(ctx context.Context, accountID string) error {
	if err := s.accounts.UpdateStatus(ctx, accountID, StatusActive); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.NotFoundError("account")
		}
		return fmt.Errorf("reinstate account: %w", err)
	}

	slog.Info("account reinstated", slog.String("account_id", accountID))
	return nil
}

func (s *Service) SoftDelete(ctx context.Context, accountID string) error {
	if err := s.accounts.SoftDelete(ctx, accountID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.NotFoundError("account")
		}
		return fmt.Errorf("delete account: %w", err)
	}

	revoked, err := s.sessions.DeleteUserSessions(ctx, accountID)
	if err != nil {
		return fmt.Errorf("revoke sessions after delete: %w", err)
	}

	slog.Info("account soft-deleted",
		slog.String("account_id", accountID),
		slog.Int64("sessions_revoked", revoked),
	)

	return nil
}

func (s *Service) Restore(ctx context.Context, accountID string) error {
	if err := s.accounts.Restore(ctx, accountID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.NotFoundError("account")
		}
		return fmt.Errorf("restore account: %w", err)
	}

	slog.Info("account restored", slog.String("account_id", accountID))
	return nil
}

// DecideVendor records a verification decision on both the vendor entity and
// the account's denormalized snapshot, and flips the store on or off for
// terminal decisions.
func (s *Service) DecideVendor(
	ctx context.Context,
	accountID string,
	req VendorDecisionRequest,
) error {
	acct, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.NotFoundError("account")
		}
		return fmt.Errorf("decide vendor: %w", err)
	}

	if !acct.IsVendor() {
		return core.NewAppError(
			core.ErrInvalidInput,
			"account is not a vendor",
			http.StatusBadRequest,
			"NOT_A_VENDOR",
		)
	}

	if !ValidVerificationStatus(req.Status) {
		return core.NewAppError(
			core.ErrInvalidInput,
			"invalid verification status",
			http.StatusBadRequest,
			"INVALID_INPUT",
		)
	}

	if err := s.vendors.SetVerificationStatus(ctx, accountID, req.Status); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.NotFoundError("vendor")
		}
		return fmt.Errorf("decide vendor: %w", err)
	}

	if err := s.accounts.SetVerificationStatus(ctx, accountID, req.Status); err != nil {
		return fmt.Errorf("decide vendor: sync account snapshot: %w", err)
	}

	switch req.Status {
	case VerificationVerified:
		err = s.vendors.SetStoreStatus(ctx, accountID, vendor.StoreActive)
	case VerificationSuspended, VerificationRejected:
		err = s.vendors.SetStoreStatus(ctx, accountID, vendor.StoreInactive)
	}
	if err != nil {
		return fmt.Errorf("decide vendor: set store status: %w", err)
	}

	if req.Status == VerificationVerified && acct.Status == StatusPending {
		if err := s.accounts.UpdateStatus(ctx, accountID, StatusActive); err != nil {
			return fmt.Errorf("decide vendor: activate account: %w", err)
		}
	}

	slog.Info("vendor verification decided",
		slog.String("account_id", accountID),
		slog.String("status", req.Status),
	)

	return nil
}

func (s *Service) moderate(ctx context.Context, accountID, status string) error {
	if err := s.accounts.UpdateStatus(ctx, accountID, status); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.NotFoundError("account")
		}
		return fmt.Errorf("moderate account: %w", err)
	}

	revoked, err := s.sessions.DeleteUserSessions(ctx, accountID)
	if err != nil {
		return fmt.Errorf("revoke sessions after moderation: %w", err)
	}

	slog.Info("account moderated",
		slog.String("account_id", accountID),
		slog.String("status", status),
		slog.Int64("sessions_revoked", revoked),
	)

	return nil
}
