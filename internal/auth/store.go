// AngelaMos | 2026
// store.go

package auth

import (
	"context"

	"github.com/the3rdukem/markethub-ghana-sub000/internal/account"
	"github.com/the3rdukem/markethub-ghana-sub000/internal/admin"
	"github.com/the3rdukem/markethub-ghana-sub000/internal/vendor"
)

// Repositories bundles every table the auth pipelines touch, bound to a
// single handle: the pool for plain reads, one transaction inside InTx.
type Repositories struct {
	Accounts     account.Repository
	LegacyAdmins admin.Repository
	Vendors      vendor.Repository
	Sessions     Repository
}

// Store is the storage collaborator the pipelines depend on. InTx commits
// when fn returns nil and rolls back every write when it returns an error,
// so a failed pipeline never leaves partial account/vendor/session state.
type Store interface {
	Repos() Repositories
	InTx(ctx context.Context, fn func(r Repositories) error) error
}
