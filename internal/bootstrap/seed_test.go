package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-admin/adapters/memstore"
	"github.com/khoahotran/portfolio-admin/internal/config"
	"github.com/khoahotran/portfolio-admin/internal/domain/user"
	"github.com/khoahotran/portfolio-admin/pkg/auth"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNopLogger()
	repo := memstore.New().Users()

	res, err := EnsureAdmin(ctx, repo, " User@Gmail.com ", DefaultAdminPassword, false, log)
	require.NoError(t, err)
	assert.Equal(t, SeedCreated, res)

	u, err := repo.FindByEmail(ctx, DefaultAdminEmail)
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, u.Role)
	assert.True(t, auth.CheckPasswordHash(DefaultAdminPassword, u.PasswordHash))

	res, err = EnsureAdmin(ctx, repo, DefaultAdminEmail, "other", false, log)
	require.NoError(t, err)
	assert.Equal(t, SeedSkipped, res)
	u, _ = repo.FindByEmail(ctx, DefaultAdminEmail)
	assert.True(t, auth.CheckPasswordHash(DefaultAdminPassword, u.PasswordHash))

	res, err = EnsureAdmin(ctx, repo, DefaultAdminEmail, "other", true, log)
	require.NoError(t, err)
	assert.Equal(t, SeedReset, res)
	u, _ = repo.FindByEmail(ctx, DefaultAdminEmail)
	assert.True(t, auth.CheckPasswordHash("other", u.PasswordHash))

	_, err = EnsureAdmin(ctx, repo, "", "x", false, log)
	assert.Error(t, err)
}

func TestOpenStores_Memory(t *testing.T) {
	var cfg config.Config
	cfg.DB.Driver = config.DriverMemory
	s, err := OpenStores(context.Background(), cfg, logger.NewNopLogger())
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, config.DriverMemory, s.Driver)
	assert.NotNil(t, s.Projects)
}

func TestOpenStores_UnknownDriver(t *testing.T) {
	var cfg config.Config
	cfg.DB.Driver = "sqlite"
	_, err := OpenStores(context.Background(), cfg, logger.NewNopLogger())
	assert.Error(t, err)
}
