// AngelaMos | 2026
// store.go

package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/the3rdukem/markethub-ghana-sub000/internal/account"
	"github.com/the3rdukem/markethub-ghana-sub000/internal/admin"
	"github.com/the3rdukem/markethub-ghana-sub000/internal/auth"
	"github.com/the3rdukem/markethub-ghana-sub000/internal/core"
	"github.com/the3rdukem/markethub-ghana-sub000/internal/vendor"
)

// SQLStore binds the auth pipelines to the Postgres pool. Repos hands out
// pool-bound repositories; InTx rebinds the same repositories to a single
// transaction so every statement inside fn commits or rolls back together.
type SQLStore struct {
	db *sqlx.DB
}

func New(db *core.Database) *SQLStore {
	return &SQLStore{db: db.DB}
}

func (s *SQLStore) Repos() auth.Repositories {
	return reposFor(s.db)
}

func (s *SQLStore) InTx(
	ctx context.Context,
	fn func(r auth.Repositories) error,
) error {
	return core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return fn(reposFor(tx))
	})
}

func reposFor(db core.DBTX) auth.Repositories {
	return auth.Repositories{
		Accounts:     account.NewRepository(db),
		LegacyAdmins: admin.NewRepository(db),
		Vendors:      vendor.NewRepository(db),
		Sessions:     auth.NewRepository(db),
	}
}

var _ auth.Store = (*SQLStore)(nil)
