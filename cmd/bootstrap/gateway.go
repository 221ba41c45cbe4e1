package bootstrap

import (
	"log/slog"

	"hotel-checkout/internal/gateway"
	"hotel-checkout/internal/gateway/ameria"
	"hotel-checkout/internal/gateway/telcell"
	"hotel-checkout/internal/gateway/vpos"
	"hotel-checkout/internal/pkg/config"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		NewGatewayRegistry,
	),
)

// NewGatewayRegistry registers every enabled acquirer, each behind its own
// rate-limited client.
func NewGatewayRegistry(cfg config.Config, logger *slog.Logger) *gateway.Registry {
	g := cfg.Gateways
	newClient := func(baseURL string) *gateway.Client {
		return gateway.NewClient(baseURL, g.Timeout, g.RequestsPerSecond, g.Burst)
	}

	var adapters []gateway.Adapter
	if g.VPOS.Enabled {
		adapters = append(adapters, vpos.New(newClient(g.VPOS.BaseURL), vpos.Credentials{
			Username: g.VPOS.Username,
			Password: g.VPOS.Password,
		}))
	}
	if g.Ameria.Enabled {
		adapters = append(adapters, ameria.New(newClient(g.Ameria.BaseURL), ameria.Credentials{
			ClientID: g.Ameria.ClientID,
			Username: g.Ameria.Username,
			Password: g.Ameria.Password,
		}))
	}
	if g.Telcell.Enabled {
		adapters = append(adapters, telcell.New(newClient(g.Telcell.BaseURL), telcell.Credentials{
			Issuer: g.Telcell.Issuer,
			Secret: g.Telcell.Secret,
		}))
	}

	registry := gateway.NewRegistry(adapters...)
	if len(adapters) == 0 {
		logger.Warn("no payment gateway enabled")
	} else {
		logger.Info("payment gateways registered", "gateways", registry.Names())
	}
	return registry
}
