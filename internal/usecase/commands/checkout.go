package commands

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"hotel-checkout/internal/domain/booking"
	"hotel-checkout/internal/domain/coupon"
	"hotel-checkout/internal/domain/payment"
	"hotel-checkout/internal/domain/prebook"
	"hotel-checkout/internal/gateway"
	reqdto "hotel-checkout/internal/handler/dto/request"
	"hotel-checkout/internal/infra"
	"hotel-checkout/internal/pkg/clock"
	"hotel-checkout/internal/pkg/config"
	"hotel-checkout/internal/pkg/errs"
	"hotel-checkout/internal/pkg/money"
	"hotel-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCurrencyRateUnavailable = errs.NewCoded(errs.ErrUnavailable, "currency_rate_unavailable", "Exchange rate is not available right now, please try again later")
	ErrBookingNotFound         = errs.NewCoded(errs.ErrNotFound, "booking_not_found", "Booking not found")
	ErrBookingAccessDenied     = errs.NewCoded(errs.ErrForbidden, "booking_access_denied", "You cannot modify this booking")
)

type CheckoutResult struct {
	AttemptID uuid.UUID
	Gateway   string
	OrderID   string
	Amount    decimal.Decimal
	Currency  string
	Discount  decimal.Decimal
	Redirect  gateway.Redirect
}

type CheckoutCommands interface {
	Checkout(ctx context.Context, actor *shared.Actor, req reqdto.CheckoutRequest, sessionID string) (*CheckoutResult, error)
	AddonCheckout(ctx context.Context, actor *shared.Actor, bookingID uuid.UUID, req reqdto.AddonCheckoutRequest) (*CheckoutResult, error)
}

// PayloadParser is the payload validator as checkout sees it.
type PayloadParser interface {
	Parse(ctx context.Context, req reqdto.BookingRequest, externalSessionID string) (*booking.Payload, error)
	ParseAddons(req reqdto.AddonsRequest) (booking.Addons, error)
}

type GatewayRegistry interface {
	Get(name string) (gateway.Adapter, error)
}

type checkoutCommandsImpl struct {
	uow       shared.UnitOfWork
	parser    PayloadParser
	bindings  PrebookStore
	currency  CurrencyConverter
	gateways  GatewayRegistry
	cfg       config.CheckoutConfig
	clock     clock.Clock
	newBillNo func(time.Time) string
}

func NewCheckoutCommands(
	uow shared.UnitOfWork,
	parser PayloadParser,
	bindings PrebookStore,
	currency CurrencyConverter,
	gateways GatewayRegistry,
	cfg config.Config,
	clk clock.Clock,
) CheckoutCommands {
	return &checkoutCommandsImpl{
		uow:       uow,
		parser:    parser,
		bindings:  bindings,
		currency:  currency,
		gateways:  gateways,
		cfg:       cfg.Checkout,
		clock:     clk,
		newBillNo: gateway.BillNumber,
	}
}

func (c *checkoutCommandsImpl) Checkout(ctx context.Context, actor *shared.Actor, req reqdto.CheckoutRequest, sessionID string) (*CheckoutResult, error) {
	p, err := c.parser.Parse(ctx, req.BookingRequest, sessionID)
	if err != nil {
		return nil, err
	}

	adapter, err := c.gateways.Get(req.Gateway)
	if err != nil {
		return nil, err
	}

	binding, err := c.bindings.Get(ctx, p.SessionID, p.HotelCode, p.GroupCode)
	if err != nil {
		return nil, errs.Wrap(err, "load prebook binding")
	}
	now := c.clock.Now()
	if err := binding.Verify(p, now, c.quoteWindow()); err != nil {
		slog.Info("checkout rejected by prebook binding",
			"code", errs.CodeOf(err), "session_id", p.SessionID, "hotel_code", p.HotelCode, "group_code", p.GroupCode)
		return nil, err
	}

	amount, err := c.settle(ctx, p.TotalsByCurrency())
	if err != nil {
		return nil, err
	}

	var applied *payment.Coupon
	if code := req.GetCouponCode(); code != nil {
		applied, amount, err = c.applyCoupon(ctx, *code, amount, now)
		if err != nil {
			return nil, err
		}
	}

	fp := booking.Fingerprint(p)
	query := shared.FingerprintQuery{Fingerprint: fp, SessionID: p.SessionID, HotelCode: p.HotelCode, GroupCode: p.GroupCode}
	if err := c.ensureNotBlocked(ctx, c.uow.Repos(), query, now); err != nil {
		return nil, err
	}

	order, err := adapter.CreateOrder(ctx, gateway.OrderRequest{
		BillNumber:  c.newBillNo(now),
		Amount:      amount,
		Currency:    c.cfg.SettlementCurrency,
		Description: describeStay(p),
		ReturnURL:   c.callbackURL(adapter.Name()),
	})
	if err != nil {
		return nil, err
	}

	attempt, err := payment.NewBookingAttempt(payment.NewBookingAttemptParams{
		Gateway:  adapter.Name(),
		OrderID:  order.OrderID,
		Amount:   amount,
		Currency: c.cfg.SettlementCurrency,
		Payload:  *p,
		Coupon:   applied,
		OwnerID:  actor.IDPtr(),
		Now:      now,
	})
	if err != nil {
		return nil, errs.Wrap(err, "new booking attempt")
	}

	// The guard runs again under the intent lock, so two tabs submitting the
	// same stay cannot both pass it before either insert commits.
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Attempts().LockIntent(ctx, bookingIntentKey(query.Fingerprint)); err != nil {
			return err
		}
		if err := c.ensureNotBlocked(ctx, tx, query, now); err != nil {
			return err
		}
		return tx.Attempts().Create(ctx, attempt)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("payment attempt created",
		"attempt_id", attempt.ID(),
		"gateway", attempt.Gateway(),
		"order_id", attempt.OrderID(),
		"amount", attempt.Amount().String(),
		"currency", attempt.Currency(),
		"fingerprint", fp,
	)
	return resultOf(attempt, order, applied), nil
}

func (c *checkoutCommandsImpl) AddonCheckout(ctx context.Context, actor *shared.Actor, bookingID uuid.UUID, req reqdto.AddonCheckoutRequest) (*CheckoutResult, error) {
	if actor == nil {
		return nil, ErrBookingAccessDenied
	}

	requested, err := c.parser.ParseAddons(req.Addons)
	if err != nil {
		return nil, err
	}

	adapter, err := c.gateways.Get(req.Gateway)
	if err != nil {
		return nil, err
	}

	repos := c.uow.Repos()
	rec, err := repos.Bookings().FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !actor.CanSee(rec.OwnerID()) || rec.OwnerID() == nil && !actor.Role.CanEditBookings() {
		return nil, ErrBookingAccessDenied
	}

	if err := rec.EnsureAddonsMergeable(requested); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	keys := requested.ServiceKeys()
	if err := c.ensureAddonsNotBlocked(ctx, repos, bookingID, keys, now); err != nil {
		return nil, err
	}

	amount, err := c.settle(ctx, requested.TotalsByCurrency(rec.Payload().Currency))
	if err != nil {
		return nil, err
	}

	order, err := adapter.CreateOrder(ctx, gateway.OrderRequest{
		BillNumber:  c.newBillNo(now),
		Amount:      amount,
		Currency:    c.cfg.SettlementCurrency,
		Description: "Services for booking " + rec.Confirmation().Code,
		ReturnURL:   c.callbackURL(adapter.Name()),
	})
	if err != nil {
		return nil, err
	}

	attempt, err := payment.NewAddonAttempt(payment.NewAddonAttemptParams{
		Gateway:         adapter.Name(),
		OrderID:         order.OrderID,
		Amount:          amount,
		Currency:        c.cfg.SettlementCurrency,
		TargetBookingID: bookingID,
		Addons:          requested,
		OwnerID:         actor.IDPtr(),
		Now:             now,
	})
	if err != nil {
		return nil, errs.Wrap(err, "new addon attempt")
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Attempts().LockIntent(ctx, addonIntentKey(bookingID)); err != nil {
			return err
		}
		if err := c.ensureAddonsNotBlocked(ctx, tx, bookingID, keys, now); err != nil {
			return err
		}
		return tx.Attempts().Create(ctx, attempt)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("addon payment attempt created",
		"attempt_id", attempt.ID(),
		"booking_id", bookingID,
		"service_keys", keys,
		"amount", amount.String(),
	)
	return resultOf(attempt, order, nil), nil
}

func (c *checkoutCommandsImpl) ensureNotBlocked(ctx context.Context, repos shared.Repositories, q shared.FingerprintQuery, now time.Time) error {
	candidates, err := repos.Attempts().ListActiveByFingerprint(ctx, q)
	if err != nil {
		return err
	}
	if b := payment.FindBlocking(candidates, now, c.cfg.AttemptFreshness); b != nil {
		slog.Info("checkout blocked by existing attempt",
			"attempt_id", b.Attempt.ID(), "status", b.Attempt.Status(), "reason", b.Reason)
		return b.Error()
	}
	return nil
}

func (c *checkoutCommandsImpl) ensureAddonsNotBlocked(ctx context.Context, repos shared.Repositories, bookingID uuid.UUID, keys []string, now time.Time) error {
	candidates, err := repos.Attempts().ListActiveByAddon(ctx, bookingID, keys)
	if err != nil {
		return err
	}
	if b := payment.FindBlocking(candidates, now, c.cfg.AttemptFreshness); b != nil {
		return b.Error()
	}
	return nil
}

// applyCoupon returns the coupon snapshot for the attempt and the discounted amount.
func (c *checkoutCommandsImpl) applyCoupon(ctx context.Context, code string, amount decimal.Decimal, now time.Time) (*payment.Coupon, decimal.Decimal, error) {
	cp, err := c.uow.Repos().Coupons().FindByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, amount, coupon.ErrCouponNotFound
		}
		return nil, amount, err
	}
	if err := cp.ValidateForCheckout(now); err != nil {
		return nil, amount, err
	}
	applied := cp.Apply(amount)
	return &payment.Coupon{
		Code:     cp.Code().String(),
		Percent:  cp.Discount().PercentOff(),
		Discount: applied.DiscountAmount,
	}, money.Round2(applied.DiscountedAmount), nil
}

// toSettlement fails closed: without a rate there is no checkout.
func bookingIntentKey(fingerprint string) string { return "checkout:booking:" + fingerprint }

func addonIntentKey(bookingID uuid.UUID) string { return "checkout:addon:" + bookingID.String() }

// settle converts each per-currency total and sums them. Any currency
// without a rate fails the whole checkout.
func (c *checkoutCommandsImpl) settle(ctx context.Context, totals map[string]decimal.Decimal) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, cur := range slices.Sorted(maps.Keys(totals)) {
		converted, err := c.toSettlement(ctx, totals[cur], cur)
		if err != nil {
			return decimal.Zero, err
		}
		sum = sum.Add(converted)
	}
	return money.Round2(sum), nil
}

func (c *checkoutCommandsImpl) toSettlement(ctx context.Context, amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	converted, ok, err := c.currency.ConvertToSettlement(ctx, amount, currency)
	if err != nil {
		slog.Warn("currency conversion failed", "currency", currency, "error", err.Error())
		return decimal.Zero, ErrCurrencyRateUnavailable.WithDetail(map[string]any{"currency": currency})
	}
	if !ok {
		return decimal.Zero, ErrCurrencyRateUnavailable.WithDetail(map[string]any{"currency": currency})
	}
	return money.Round2(converted), nil
}

func (c *checkoutCommandsImpl) quoteWindow() time.Duration {
	if c.cfg.QuoteWindow <= 0 {
		return prebook.DefaultValidityWindow
	}
	return c.cfg.QuoteWindow
}

func (c *checkoutCommandsImpl) callbackURL(gatewayName string) string {
	return strings.TrimRight(c.cfg.CallbackBaseURL, "/") + "/" + gatewayName + "/callback"
}

func describeStay(p *booking.Payload) string {
	name := p.HotelName
	if name == "" {
		name = p.HotelCode
	}
	return name + " " + p.CheckIn + " - " + p.CheckOut
}

func resultOf(a *payment.Attempt, order *gateway.Order, applied *payment.Coupon) *CheckoutResult {
	res := &CheckoutResult{
		AttemptID: a.ID(),
		Gateway:   a.Gateway(),
		OrderID:   a.OrderID(),
		Amount:    a.Amount(),
		Currency:  a.Currency(),
		Discount:  decimal.Zero,
		Redirect:  order.Redirect,
	}
	if applied != nil {
		res.Discount = applied.Discount
	}
	return res
}
