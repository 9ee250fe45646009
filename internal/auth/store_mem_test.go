// AngelaMos | 2026
// store_mem_test.go

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/the3rdukem/markethub-ghana-sub000/internal/account"
	"github.com/the3rdukem/markethub-ghana-sub000/internal/admin"
	"github.com/the3rdukem/markethub-ghana-sub000/internal/core"
	"github.com/the3rdukem/markethub-ghana-sub000/internal/vendor"
)

// memStore is an in-memory Store used by the pipeline tests. InTx snapshots
// all tables and restores them when fn fails, matching a real rollback.
type memStore struct {
	accounts map[string]account.Account
	admins   map[string]admin.LegacyAdmin
	vendors  map[string]vendor.Vendor
	sessions map[string]Session
}

func newMemStore() *memStore {
	return &memStore{
		accounts: make(map[string]account.Account),
		admins:   make(map[string]admin.LegacyAdmin),
		vendors:  make(map[string]vendor.Vendor),
		sessions: make(map[string]Session),
	}
}

func (m *memStore) Repos() Repositories {
	return Repositories{
		Accounts:     &memAccounts{m},
		LegacyAdmins: &memAdmins{m},
		Vendors:      &memVendors{m},
		Sessions:     &memSessions{m},
	}
}

func (m *memStore) InTx(
	ctx context.Context,
	fn func(r Repositories) error,
) error {
	accounts := cloneMap(m.accounts)
	admins := cloneMap(m.admins)
	vendors := cloneMap(m.vendors)
	sessions := cloneMap(m.sessions)

	if err := fn(m.Repos()); err != nil {
		m.accounts = accounts
		m.admins = admins
		m.vendors = vendors
		m.sessions = sessions
		return err
	}

	return nil
}

func cloneMap[V any](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

type memAccounts struct{ store *memStore }

func (r *memAccounts) Create(ctx context.Context, acct *account.Account) error {
	for _, existing := range r.store.accounts {
		if strings.EqualFold(existing.Email, acct.Email) {
			return fmt.Errorf("create account: %w", core.ErrDuplicateKey)
		}
	}

	acct.CreatedAt = time.Now()
	acct.UpdatedAt = acct.CreatedAt
	r.store.accounts[acct.ID] = *acct
	return nil
}

func (r *memAccounts) GetByID(
	ctx context.Context,
	id string,
) (*account.Account, error) {
	acct, ok := r.store.accounts[id]
	if !ok || acct.DeletedAt != nil {
		return nil, fmt.Errorf("get account: %w", core.ErrNotFound)
	}
	return &acct, nil
}

func (r *memAccounts) GetByEmail(
	ctx context.Context,
	email string,
) (*account.Account, error) {
	for _, acct := range r.store.accounts {
		if strings.EqualFold(acct.Email, email) && acct.DeletedAt == nil {
			return &acct, nil
		}
	}
	return nil, fmt.Errorf("get account by email: %w", core.ErrNotFound)
}

func (r *memAccounts) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	for _, acct := range r.store.accounts {
		if strings.EqualFold(acct.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memAccounts) UpdateProfile(
	ctx context.Context,
	acct *account.Account,
) error {
	stored, ok := r.store.accounts[acct.ID]
	if !ok || stored.DeletedAt != nil {
		return fmt.Errorf("update profile: %w", core.ErrNotFound)
	}

	stored.Name = acct.Name
	stored.Phone = acct.Phone
	stored.Location = acct.Location
	stored.UpdatedAt = time.Now()
	r.store.accounts[acct.ID] = stored
	return nil
}

func (r *memAccounts) UpdateStatus(ctx context.Context, id, status string) error {
	acct, ok := r.store.accounts[id]
	if !ok || acct.DeletedAt != nil {
		return fmt.Errorf("update status: %w", core.ErrNotFound)
	}

	acct.Status = status
	r.store.accounts[id] = acct
	return nil
}

func (r *memAccounts) SetVerificationStatus(
	ctx context.Context,
	id, status string,
) error {
	acct, ok := r.store.accounts[id]
	if !ok || acct.DeletedAt != nil {
		return fmt.Errorf("set verification status: %w", core.ErrNotFound)
	}

	acct.VerificationStatus = &status
	r.store.accounts[id] = acct
	return nil
}

func (r *memAccounts) StampLogin(ctx context.Context, id string) error {
	acct, ok := r.store.accounts[id]
	if !ok || acct.DeletedAt != nil {
		return fmt.Errorf("stamp login: %w", core.ErrNotFound)
	}

	now := time.Now()
	acct.PreviousLoginAt = acct.LastLoginAt
	acct.LastLoginAt = &now
	r.store.accounts[id] = acct
	return nil
}

func (r *memAccounts) SoftDelete(ctx context.Context, id string) error {
	acct, ok := r.store.accounts[id]
	if !ok || acct.DeletedAt != nil {
		return fmt.Errorf("delete account: %w", core.ErrNotFound)
	}

	now := time.Now()
	acct.DeletedAt = &now
	acct.Status = account.StatusDeleted
	r.store.accounts[id] = acct
	return nil
}

func (r *memAccounts) Restore(ctx context.Context, id string) error {
	acct, ok := r.store.accounts[id]
	if !ok || acct.DeletedAt == nil {
		return fmt.Errorf("restore account: %w", core.ErrNotFound)
	}

	acct.DeletedAt = nil
	acct.Status = account.StatusActive
	r.store.accounts[id] = acct
	return nil
}

func (r *memAccounts) List(
	ctx context.Context,
	params account.ListAccountsParams,
) ([]account.Account, int, error) {
	var accounts []account.Account
	for _, acct := range r.store.accounts {
		if acct.DeletedAt != nil {
			continue
		}
		if params.Role != "" && acct.Role != params.Role {
			continue
		}
		if params.Status != "" && acct.Status != params.Status {
			continue
		}
		accounts = append(accounts, acct)
	}
	return accounts, len(accounts), nil
}

type memAdmins struct{ store *memStore }

func (r *memAdmins) GetByID(
	ctx context.Context,
	id string,
) (*admin.LegacyAdmin, error) {
	adm, ok := r.store.admins[id]
	if !ok {
		return nil, fmt.Errorf("get legacy admin: %w", core.ErrNotFound)
	}
	return &adm, nil
}

func (r *memAdmins) GetByEmail(
	ctx context.Context,
	email string,
) (*admin.LegacyAdmin, error) {
	for _, adm := range r.store.admins {
		if strings.EqualFold(adm.Email, email) {
			return &adm, nil
		}
	}
	return nil, fmt.Errorf("get legacy admin by email: %w", core.ErrNotFound)
}

func (r *memAdmins) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	for _, adm := range r.store.admins {
		if strings.EqualFold(adm.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memAdmins) StampLogin(ctx context.Context, id string) error {
	adm, ok := r.store.admins[id]
	if !ok {
		return fmt.Errorf("stamp legacy admin login: %w", core.ErrNotFound)
	}

	now := time.Now()
	adm.PreviousLoginAt = adm.LastLoginAt
	adm.LastLoginAt = &now
	r.store.admins[id] = adm
	return nil
}

type memVendors struct{ store *memStore }

func (r *memVendors) Create(ctx context.Context, v *vendor.Vendor) error {
	if _, ok := r.store.vendors[v.AccountID]; ok {
		return fmt.Errorf("create vendor: %w", core.ErrDuplicateKey)
	}

	v.CreatedAt = time.Now()
	v.UpdatedAt = v.CreatedAt
	r.store.vendors[v.AccountID] = *v
	return nil
}

func (r *memVendors) GetByAccountID(
	ctx context.Context,
	accountID string,
) (*vendor.Vendor, error) {
	v, ok := r.store.vendors[accountID]
	if !ok {
		return nil, fmt.Errorf("get vendor: %w", core.ErrNotFound)
	}
	return &v, nil
}

func (r *memVendors) SetVerificationStatus(
	ctx context.Context,
	accountID, status string,
) error {
	v, ok := r.store.vendors[accountID]
	if !ok {
		return fmt.Errorf("set vendor verification status: %w", core.ErrNotFound)
	}

	v.VerificationStatus = status
	r.store.vendors[accountID] = v
	return nil
}

func (r *memVendors) SetStoreStatus(
	ctx context.Context,
	accountID, status string,
) error {
	v, ok := r.store.vendors[accountID]
	if !ok {
		return fmt.Errorf("set store status: %w", core.ErrNotFound)
	}

	v.StoreStatus = status
	r.store.vendors[accountID] = v
	return nil
}

type memSessions struct{ store *memStore }

func (r *memSessions) Create(ctx context.Context, session *Session) error {
	session.CreatedAt = time.Now()
	r.store.sessions[session.ID] = *session
	return nil
}

func (r *memSessions) FindByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*Session, error) {
	for _, sess := range r.store.sessions {
		if sess.TokenHash == tokenHash && sess.ExpiresAt.After(time.Now()) {
			return &sess, nil
		}
	}
	return nil, fmt.Errorf("find session: %w", core.ErrNotFound)
}

func (r *memSessions) ExtendExpiry(
	ctx context.Context,
	id string,
	expiresAt time.Time,
) error {
	sess, ok := r.store.sessions[id]
	if !ok {
		return fmt.Errorf("extend session: %w", core.ErrNotFound)
	}

	sess.ExpiresAt = expiresAt
	r.store.sessions[id] = sess
	return nil
}

func (r *memSessions) DeleteByTokenHash(
	ctx context.Context,
	tokenHash string,
) (bool, error) {
	for id, sess := range r.store.sessions {
		if sess.TokenHash == tokenHash {
			delete(r.store.sessions, id)
			return true, nil
		}
	}
	return false, nil
}

func (r *memSessions) DeleteAllForAccount(
	ctx context.Context,
	accountID string,
) (int64, error) {
	var deleted int64
	for id, sess := range r.store.sessions {
		if sess.AccountID == accountID {
			delete(r.store.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *memSessions) DeleteExpired(ctx context.Context) (int64, error) {
	var deleted int64
	for id, sess := range r.store.sessions {
		if !sess.ExpiresAt.After(time.Now()) {
			delete(r.store.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *memSessions) ListActiveForAccount(
	ctx context.Context,
	accountID string,
) ([]Session, error) {
	var sessions []Session
	for _, sess := range r.store.sessions {
		if sess.AccountID == accountID && sess.ExpiresAt.After(time.Now()) {
			sessions = append(sessions, sess)
		}
	}
	return sessions, nil
}

var _ Store = (*memStore)(nil)
