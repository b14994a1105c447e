package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-admin/internal/domain/user"
	"github.com/khoahotran/portfolio-admin/pkg/apperror"
	"github.com/khoahotran/portfolio-admin/pkg/auth"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

const (
	DefaultAdminEmail    = "user@gmail.com"
	DefaultAdminPassword = "12345"
)

type SeedResult string

const (
	SeedCreated SeedResult = "created"
	SeedSkipped SeedResult = "skipped"
	SeedReset   SeedResult = "reset"
)

// EnsureAdmin creates the admin account when it is missing. An existing account is left alone
// unless reset is set, in which case its password is replaced.
func EnsureAdmin(ctx context.Context, repo user.Repository, email, password string, reset bool, log logger.Logger) (SeedResult, error) {
	email = user.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", apperror.NewInvalidInput("admin email and password are required", nil)
	}

	existing, err := repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if !reset {
			log.Info("Admin already exists, skip seeding", zap.String("email", email))
			return SeedSkipped, nil
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			return "", fmt.Errorf("hash password: %w", err)
		}
		if err := repo.UpdatePassword(ctx, existing.ID, hash); err != nil {
			return "", fmt.Errorf("reset admin password: %w", err)
		}
		log.Info("Admin password reset", zap.String("email", email))
		return SeedReset, nil
	case !errors.Is(err, apperror.ErrNotFound):
		return "", fmt.Errorf("look up admin: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	now := time.Now().UTC()
	if err := repo.Create(ctx, &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         user.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		return "", fmt.Errorf("create admin: %w", err)
	}
	log.Info("Admin created", zap.String("email", email))
	return SeedCreated, nil
}
