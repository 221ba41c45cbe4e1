package components

import (
	"hotel-checkout/internal/handler"
	"hotel-checkout/internal/handler/api"
	"hotel-checkout/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewCheckoutHandler,
		api.NewPaymentHandler,
		api.NewBookingHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	auth *api.AuthHandler,
	checkout *api.CheckoutHandler,
	payment *api.PaymentHandler,
	booking *api.BookingHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:     auth,
		Checkout: checkout,
		Payment:  payment,
		Booking:  booking,
	}
}
