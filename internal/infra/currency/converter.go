// Package currency converts supplier prices into the settlement currency.
package currency

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"hotel-checkout/internal/pkg/config"
	"hotel-checkout/internal/pkg/errs"
	"hotel-checkout/internal/pkg/money"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const cacheKeyPrefix = "fx:"

// RateCache holds rates to the settlement currency between fetches.
type RateCache interface {
	Get(ctx context.Context, currency string) (decimal.Decimal, bool, error)
	Set(ctx context.Context, rates map[string]decimal.Decimal, ttl time.Duration) error
}

// ratesResponse is the rate feed: units of Base for one unit of each currency.
type ratesResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

type Converter struct {
	ratesURL   string
	settlement string
	ttl        time.Duration
	http       *http.Client
	cache      RateCache
}

func NewConverter(cfg config.Config, cache RateCache) *Converter {
	return &Converter{
		ratesURL:   cfg.Currency.RatesURL,
		settlement: money.NormalizeCurrency(cfg.Checkout.SettlementCurrency),
		ttl:        cfg.Currency.CacheTTL,
		http:       &http.Client{Timeout: cfg.Currency.Timeout},
		cache:      cache,
	}
}

// ConvertToSettlement reports ok=false when no rate is known. Callers must not
// fall back to the unconverted amount.
func (c *Converter) ConvertToSettlement(ctx context.Context, amount decimal.Decimal, currency string) (decimal.Decimal, bool, error) {
	currency = money.NormalizeCurrency(currency)
	if currency == "" || currency == c.settlement {
		return amount, true, nil
	}

	rate, ok, err := c.cache.Get(ctx, currency)
	if err != nil {
		slog.Warn("fx cache read failed", "currency", currency, "error", err.Error())
	}
	if !ok {
		rates, err := c.fetch(ctx)
		if err != nil {
			return decimal.Zero, false, err
		}
		if err := c.cache.Set(ctx, rates, c.ttl); err != nil {
			slog.Warn("fx cache write failed", "error", err.Error())
		}
		rate, ok = rates[currency]
	}
	if !ok || !rate.IsPositive() {
		return decimal.Zero, false, nil
	}
	return money.Round2(amount.Mul(rate)), true, nil
}

func (c *Converter) fetch(ctx context.Context) (map[string]decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ratesURL, nil)
	if err != nil {
		return nil, errs.Wrap(err, "build rates request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errs.Wrap(err, "fetch rates")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errs.Newf("fetch rates: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errs.Wrap(err, "read rates")
	}

	var parsed ratesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errs.Wrap(err, "decode rates")
	}
	if money.NormalizeCurrency(parsed.Base) != c.settlement {
		return nil, errs.Newf("rates quoted in %s, want %s", parsed.Base, c.settlement)
	}

	rates := make(map[string]decimal.Decimal, len(parsed.Rates))
	for code, r := range parsed.Rates {
		rates[strings.ToUpper(code)] = r
	}
	return rates, nil
}

// RedisCache stores one key per currency so a partial eviction only costs a refetch.
type RedisCache struct {
	rdb redis.Cmdable
}

func NewRedisCache(rdb redis.Cmdable) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func (r *RedisCache) Get(ctx context.Context, currency string) (decimal.Decimal, bool, error) {
	raw, err := r.rdb.Get(ctx, cacheKeyPrefix+currency).Result()
	if errs.Is(err, redis.Nil) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, err
	}
	return rate, true, nil
}

func (r *RedisCache) Set(ctx context.Context, rates map[string]decimal.Decimal, ttl time.Duration) error {
	_, err := r.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		for code, rate := range rates {
			p.Set(ctx, cacheKeyPrefix+code, rate.String(), ttl)
		}
		return nil
	})
	return err
}
