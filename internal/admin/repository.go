// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/the3rdukem/markethub-ghana-sub000/internal/core"
)

const legacyAdminColumns = `
	id, email, password_hash, name, role, is_active, permissions,
	last_login_at, previous_login_at, created_at, updated_at`

type Repository interface {
	GetByID(ctx context.Context, id string) (*LegacyAdmin, error)
	GetByEmail(ctx context.Context, email string) (*LegacyAdmin, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	StampLogin(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*LegacyAdmin, error) {
	query := `
		SELECT ` + legacyAdminColumns + `
		FROM admin_users
		WHERE id = $1`

	var adm LegacyAdmin
	err := r.db.GetContext(ctx, &adm, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get legacy admin: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get legacy admin: %w", err)
	}

	return &adm, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*LegacyAdmin, error) {
	query := `
		SELECT ` + legacyAdminColumns + `
		FROM admin_users
		WHERE lower(email) = lower($1)`

	var adm LegacyAdmin
	err := r.db.GetContext(ctx, &adm, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get legacy admin by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get legacy admin by email: %w", err)
	}

	return &adm, nil
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	query := `SELECT EXISTS(
		SELECT 1 FROM admin_users WHERE lower(email) = lower($1)
	)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check legacy admin exists: %w", err)
	}

	return exists, nil
}

func (r *repository) StampLogin(ctx context.Context, id string) error {
	query := `
		UPDATE admin_users
		SET previous_login_at = last_login_at, last_login_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("stamp legacy admin login: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("stamp legacy admin login: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("stamp legacy admin login: %w", core.ErrNotFound)
	}

	return nil
}
