package booking

import (
	"sort"

	"github.com/shopspring/decimal"
)

type ServiceKind string

const (
	ServiceTransfer  ServiceKind = "transfer"
	ServiceExcursion ServiceKind = "excursion"
	ServiceInsurance ServiceKind = "insurance"
	ServiceFlight    ServiceKind = "flight"
)

type Service struct {
	Key      string          `json:"key"`
	Name     string          `json:"name,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency,omitempty"`
}

type Addons struct {
	Transfer   *Service  `json:"transfer,omitempty"`
	Excursions []Service `json:"excursions,omitempty"`
	Insurance  *Service  `json:"insurance,omitempty"`
	Flights    []Service `json:"flights,omitempty"`
}

// PricedService is an add-on flattened with its kind, used for currency conversion.
type PricedService struct {
	Kind    ServiceKind
	Service Service
}

// ServiceKey is the identity of an add-on on a booking: kind plus provider key.
func ServiceKey(kind ServiceKind, key string) string {
	return string(kind) + ":" + key
}

func (a Addons) Services() []PricedService {
	var out []PricedService
	if a.Transfer != nil {
		out = append(out, PricedService{Kind: ServiceTransfer, Service: *a.Transfer})
	}
	for _, e := range a.Excursions {
		out = append(out, PricedService{Kind: ServiceExcursion, Service: e})
	}
	if a.Insurance != nil {
		out = append(out, PricedService{Kind: ServiceInsurance, Service: *a.Insurance})
	}
	for _, f := range a.Flights {
		out = append(out, PricedService{Kind: ServiceFlight, Service: f})
	}
	return out
}

// ServiceKeys returns the sorted, de-duplicated keys of every attached add-on.
func (a Addons) ServiceKeys() []string {
	seen := map[string]struct{}{}
	keys := []string{}
	for _, s := range a.Services() {
		k := ServiceKey(s.Kind, s.Service.Key)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (a Addons) IsEmpty() bool {
	return len(a.Services()) == 0
}

// TotalsByCurrency sums service prices per pricing currency. Services
// without a currency are priced in fallback.
func (a Addons) TotalsByCurrency(fallback string) map[string]decimal.Decimal {
	totals := map[string]decimal.Decimal{}
	for _, ps := range a.Services() {
		cur := ps.Service.Currency
		if cur == "" {
			cur = fallback
		}
		totals[cur] = totals[cur].Add(ps.Service.Price)
	}
	return totals
}

// Merge returns a with every service of other appended. The caller is
// responsible for rejecting overlaps beforehand.
func (a Addons) Merge(other Addons) Addons {
	merged := Addons{
		Transfer:   a.Transfer,
		Excursions: append(append([]Service{}, a.Excursions...), other.Excursions...),
		Insurance:  a.Insurance,
		Flights:    append(append([]Service{}, a.Flights...), other.Flights...),
	}
	if other.Transfer != nil {
		merged.Transfer = other.Transfer
	}
	if other.Insurance != nil {
		merged.Insurance = other.Insurance
	}
	return merged
}
