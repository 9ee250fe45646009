// AngelaMos | 2026
// bootstrap.go

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/the3rdukem/markethub-ghana-sub000/internal/account"
	"github.com/the3rdukem/markethub-ghana-sub000/internal/config"
)

// EnsureMasterAdmin seeds the master administrator through the same creation
// pipeline every other account goes through. Safe to run on every startup:
// an already-seeded email is treated as done.
func EnsureMasterAdmin(
	ctx context.Context,
	service *Service,
	cfg config.BootstrapConfig,
) error {
	if cfg.MasterAdminEmail == "" {
		slog.Debug("master admin bootstrap skipped, no email configured")
		return nil
	}

	_, err := service.CreateUser(ctx, CreateUserInput{
		Email:    cfg.MasterAdminEmail,
		Password: cfg.MasterAdminPassword,
		Name:     cfg.MasterAdminName,
		Role:     account.RoleMasterAdmin,
	}, CreateUserOptions{WithoutSession: true})
	if err != nil {
		if IsCode(err, CodeEmailExists) {
			slog.Debug("master admin already seeded",
				slog.String("email", cfg.MasterAdminEmail),
			)
			return nil
		}
		return fmt.Errorf("seed master admin: %w", err)
	}

	slog.Info("master admin seeded",
		slog.String("email", cfg.MasterAdminEmail),
	)

	return nil
}
