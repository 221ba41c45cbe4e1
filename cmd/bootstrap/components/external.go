package components

import (
	"hotel-checkout/internal/gateway"
	"hotel-checkout/internal/infra/currency"
	"hotel-checkout/internal/infra/insurance"
	"hotel-checkout/internal/infra/mailer"
	"hotel-checkout/internal/infra/prebookstore"
	"hotel-checkout/internal/infra/supplier"
	"hotel-checkout/internal/pkg/ratetoken"
	"hotel-checkout/internal/usecase/commands"
	"hotel-checkout/internal/usecase/payload"

	"go.uber.org/fx"
)

var ExternalModule = fx.Module("external",
	fx.Provide(
		// Supplier
		fx.Annotate(
			supplier.NewClient,
			fx.As(new(commands.Supplier)),
		),
		// Insurance
		fx.Annotate(
			insurance.NewClient,
			fx.As(new(commands.InsuranceIssuer)),
		),
		// Currency
		fx.Annotate(
			currency.NewRedisCache,
			fx.As(new(currency.RateCache)),
		),
		fx.Annotate(
			currency.NewConverter,
			fx.As(new(commands.CurrencyConverter)),
		),
		// Mail
		fx.Annotate(
			mailer.NewKafkaMailer,
			fx.As(new(commands.Mailer)),
		),
		// Prebook bindings
		fx.Annotate(
			prebookstore.NewStore,
			fx.As(new(commands.PrebookStore)),
		),
		// Rate tokens (signer from bootstrap.JWTModule)
		func(s *ratetoken.Signer) commands.RateTokenSigner { return s },
		func(s *ratetoken.Signer) payload.TokenParser { return s },
		// Payload
		fx.Annotate(
			payload.NewValidator,
			fx.As(new(commands.PayloadParser)),
		),
		// Gateways
		func(r *gateway.Registry) commands.GatewayRegistry { return r },
	),
)
