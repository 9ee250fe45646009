// AngelaMos | 2026
// repository.go

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/the3rdukem/markethub-ghana-sub000/internal/core"
)

type Repository interface {
	Create(ctx context.Context, session *Session) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*Session, error)
	ExtendExpiry(ctx context.Context, id string, expiresAt time.Time) error
	DeleteByTokenHash(ctx context.Context, tokenHash string) (bool, error)
	DeleteAllForAccount(ctx context.Context, accountID string) (int64, error)
	DeleteExpired(ctx context.Context) (int64, error)
	ListActiveForAccount(
		ctx context.Context,
		accountID string,
	) ([]Session, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, session *Session) error {
	query := `
		INSERT INTO sessions (
			id, account_id, role, token_hash, user_agent, ip_address, expires_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &session.CreatedAt, query,
		session.ID,
		session.AccountID,
		session.Role,
		session.TokenHash,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	return nil
}

// FindByTokenHash only returns live sessions; a missing row and an expired
// row are indistinguishable to the caller.
func (r *repository) FindByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*Session, error) {
	query := `
		SELECT id, account_id, role, token_hash, user_agent, ip_address,
		       expires_at, created_at
		FROM sessions
		WHERE token_hash = $1 AND expires_at > NOW()`

	var session Session
	err := r.db.GetContext(ctx, &session, query, tokenHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find session: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}

	return &session, nil
}

func (r *repository) ExtendExpiry(
	ctx context.Context,
	id string,
	expiresAt time.Time,
) error {
	query := `
		UPDATE sessions
		SET expires_at = $2
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, expiresAt)
	if err != nil {
		return fmt.Errorf("extend session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("extend session: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("extend session: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) DeleteByTokenHash(
	ctx context.Context,
	tokenHash string,
) (bool, error) {
	query := `DELETE FROM sessions WHERE token_hash = $1`

	result, err := r.db.ExecContext(ctx, query, tokenHash)
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}

	return rows > 0, nil
}

func (r *repository) DeleteAllForAccount(
	ctx context.Context,
	accountID string,
) (int64, error) {
	query := `DELETE FROM sessions WHERE account_id = $1`

	result, err := r.db.ExecContext(ctx, query, accountID)
	if err != nil {
		return 0, fmt.Errorf("delete account sessions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete account sessions: %w", err)
	}

	return rows, nil
}

func (r *repository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM sessions WHERE expires_at < NOW()`

	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}

	return rows, nil
}

func (r *repository) ListActiveForAccount(
	ctx context.Context,
	accountID string,
) ([]Session, error) {
	query := `
		SELECT id, account_id, role, token_hash, user_agent, ip_address,
		       expires_at, created_at
		FROM sessions
		WHERE account_id = $1 AND expires_at > NOW()
		ORDER BY created_at DESC`

	var sessions []Session
	err := r.db.SelectContext(ctx, &sessions, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list account sessions: %w", err)
	}

	return sessions, nil
}
