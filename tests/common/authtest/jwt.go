//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"hotel-checkout/internal/domain/user"
	"hotel-checkout/internal/pkg/config"
	"hotel-checkout/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// SignAccessToken mints a token with the server's secret without a login.
func SignAccessToken(t *testing.T, cfg config.JWTConfig, userID uuid.UUID, role user.Role) string {
	t.Helper()
	return sign(t, cfg, userID, role, parse(t, cfg.AccessTokenDuration))
}

// ExpiredAccessToken is already past its exp claim when returned.
func ExpiredAccessToken(t *testing.T, cfg config.JWTConfig, userID uuid.UUID, role user.Role) string {
	t.Helper()
	return sign(t, cfg, userID, role, -time.Minute)
}

func sign(t *testing.T, cfg config.JWTConfig, userID uuid.UUID, role user.Role, ttl time.Duration) string {
	t.Helper()
	token, err := jwt.NewService(cfg.Secret, ttl, parse(t, cfg.RefreshTokenDuration)).GenerateAccessToken(userID, role)
	require.NoError(t, err)
	return token
}

func parse(t *testing.T, s string) time.Duration {
	t.Helper()
	d, err := time.ParseDuration(s)
	require.NoError(t, err)
	return d
}
