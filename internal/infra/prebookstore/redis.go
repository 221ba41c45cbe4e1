package prebookstore

import (
	"context"
	"encoding/json"
	"time"

	"hotel-checkout/internal/domain/prebook"
	"hotel-checkout/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "prebook:"

// Store keeps prebook bindings in Redis as JSON under a TTL.
type Store struct {
	rdb redis.Cmdable
}

func NewStore(rdb redis.Cmdable) *Store {
	return &Store{rdb: rdb}
}

func Key(sessionID, hotelCode, groupCode string) string {
	return keyPrefix + sessionID + ":" + hotelCode + ":" + groupCode
}

func (s *Store) Save(ctx context.Context, b *prebook.Binding, ttl time.Duration) error {
	raw, err := json.Marshal(b)
	if err != nil {
		return errs.Wrap(err, "marshal prebook binding")
	}
	if err := s.rdb.Set(ctx, Key(b.SessionID, b.HotelCode, b.GroupCode), raw, ttl).Err(); err != nil {
		return errs.Wrap(err, "redis set prebook binding")
	}
	return nil
}

// Get returns nil, nil when nothing was quoted for the key or it was evicted.
func (s *Store) Get(ctx context.Context, sessionID, hotelCode, groupCode string) (*prebook.Binding, error) {
	raw, err := s.rdb.Get(ctx, Key(sessionID, hotelCode, groupCode)).Bytes()
	if errs.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Wrap(err, "redis get prebook binding")
	}

	var b prebook.Binding
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, errs.Wrap(err, "unmarshal prebook binding")
	}
	return &b, nil
}
