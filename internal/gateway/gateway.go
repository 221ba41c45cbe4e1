// Package gateway reconciles payments with the card acquirers the storefront
// redirects to. Every acquirer speaks its own dialect; adapters normalize them
// into Status so the finalizer can verify a charge the same way for all.
package gateway

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"math/big"
	"net/url"
	"sort"
	"strconv"
	"time"

	"hotel-checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrReconciliation is retryable: the gateway could not be asked.
	ErrReconciliation = errs.NewCoded(errs.ErrUnavailable, "gateway_unreachable", "Payment provider is not responding, please try again")
	ErrOrderRejected  = errs.NewCoded(errs.ErrUnavailable, "gateway_order_rejected", "Payment provider rejected the order")
	ErrUnknownGateway = errs.NewCoded(errs.ErrValidation, "unknown_gateway", "Payment method is not available")
	ErrMissingOrderID = errs.NewCoded(errs.ErrValidation, "callback_order_missing", "Payment callback is missing the order reference")
)

// Status is a gateway's answer about one order, normalized.
type Status struct {
	Amount   decimal.Decimal
	Currency string
	Success  bool
	// FailureReason is the gateway's own wording when Success is false.
	FailureReason string
	Raw           json.RawMessage
}

// Redirect is what the browser must submit to reach the payment page.
type Redirect struct {
	Action string            `json:"action"`
	Method string            `json:"method"`
	Fields map[string]string `json:"fields"`
}

type OrderRequest struct {
	// BillNumber is our numeric order reference.
	BillNumber  string
	Amount      decimal.Decimal
	Currency    string
	Description string
	ReturnURL   string
	Language    string
}

type Order struct {
	// OrderID is the id the gateway will report back in its callback.
	OrderID  string
	Redirect Redirect
}

type Adapter interface {
	Name() string
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	QueryStatus(ctx context.Context, orderID string) (*Status, error)
	// CallbackOrderID extracts the order id from the browser return.
	CallbackOrderID(query url.Values) (string, error)
}

type Registry struct {
	adapters map[string]Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Name()] = a
	}
	return r
}

func (r *Registry) Get(name string) (Adapter, error) {
	a, ok := r.adapters[name]
	if !ok {
		return nil, ErrUnknownGateway.WithDetail(map[string]any{"gateway": name})
	}
	return a, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for n := range r.adapters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// BillNumber returns a 12 digit order reference. Ameria requires a numeric
// order id, so every gateway gets the same shape.
func BillNumber(now time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		n = big.NewInt(now.UnixNano() % 1_000_000)
	}
	prefix := now.Unix() % 900_000
	return strconv.FormatInt(prefix*1_000_000+n.Int64()+100_000_000_000, 10)
}
