package bootstrap

import (
	"fmt"
	"time"

	"hotel-checkout/internal/pkg/config"
	"hotel-checkout/internal/pkg/jwt"
	"hotel-checkout/internal/pkg/ratetoken"

	"go.uber.org/fx"
)

// JWTModule provides both token kinds: session tokens for users and rate
// tokens binding a quoted rate to its search session.
var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
		NewRateTokenSigner,
	),
)

func NewJWTService(cfg config.Config) (*jwt.Service, error) {
	accessTokenDuration, err := time.ParseDuration(cfg.JWT.AccessTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_DURATION: %w", err)
	}

	refreshTokenDuration, err := time.ParseDuration(cfg.JWT.RefreshTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_TOKEN_DURATION: %w", err)
	}

	return jwt.NewService(cfg.JWT.Secret, accessTokenDuration, refreshTokenDuration), nil
}

func NewRateTokenSigner(cfg config.Config) (*ratetoken.Signer, error) {
	if cfg.RateToken.Secret == cfg.JWT.Secret {
		return nil, fmt.Errorf("RATE_TOKEN_SECRET must differ from JWT_SECRET")
	}
	return ratetoken.NewSigner(cfg.RateToken.Secret), nil
}
