package pin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/study-service/internal/domain"
)

const pinKeyPrefix = "pairing:pin:"

// redisStore implements Store on a shared Redis instance. SET NX and
// GETDEL give the create-if-absent and fetch-and-delete atomicity that
// replicated deployments rely on.
type redisStore struct {
	client *redis.Client
}

// NewRedisStore wraps a connected go-redis client.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Reserve(ctx context.Context, pin string, ticket domain.PinTicket, physicalTTL time.Duration) (bool, error) {
	payload, err := json.Marshal(ticket)
	if err != nil {
		return false, fmt.Errorf("marshal pin ticket: %w", err)
	}

	ok, err := s.client.SetNX(ctx, pinKeyPrefix+pin, payload, physicalTTL).Result()
	if err != nil {
		return false, fmt.Errorf("reserve pin: %w", err)
	}
	return ok, nil
}

func (s *redisStore) Claim(ctx context.Context, pin string) (domain.PinTicket, error) {
	payload, err := s.client.GetDel(ctx, pinKeyPrefix+pin).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.PinTicket{}, ErrPinNotFound
		}
		return domain.PinTicket{}, fmt.Errorf("claim pin: %w", err)
	}

	var ticket domain.PinTicket
	if err := json.Unmarshal([]byte(payload), &ticket); err != nil {
		return domain.PinTicket{}, fmt.Errorf("unmarshal pin ticket: %w", err)
	}
	return ticket, nil
}
