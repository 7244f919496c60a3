package idempotency

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/booking-engine/internal/httperr"
)

const (
	keyPrefix = "booking:idem:"

	// reservedMarker is stored while the booking write is in flight.
	reservedMarker = "__reserved__"
)

// Store reserves idempotency keys so a retried booking request resolves
// to the appointment created by the first attempt instead of producing a
// duplicate.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{client: client, ttl: ttl}
}

// Reserve claims the key for this attempt. It returns the previously
// stored appointment id when the key was already finalized, and
// ok=false when another attempt holds the reservation.
func (s *Store) Reserve(ctx context.Context, key string) (appointmentID string, ok bool, err error) {
	set, err := s.client.SetNX(ctx, keyPrefix+key, reservedMarker, s.ttl).Result()
	if err != nil {
		return "", false, httperr.ErrBusiness(httperr.CodeDependencyUnavailable)
	}
	if set {
		return "", true, nil
	}

	val, err := s.client.Get(ctx, keyPrefix+key).Result()
	if err == redis.Nil {
		// Reservation expired between SETNX and GET; caller retries.
		return "", false, nil
	}
	if err != nil {
		return "", false, httperr.ErrBusiness(httperr.CodeDependencyUnavailable)
	}
	if val == reservedMarker {
		return "", false, nil
	}
	return val, false, nil
}

// Finalize records the created appointment id under the key.
func (s *Store) Finalize(ctx context.Context, key, appointmentID string) error {
	if err := s.client.Set(ctx, keyPrefix+key, appointmentID, s.ttl).Err(); err != nil {
		return httperr.ErrBusiness(httperr.CodeDependencyUnavailable)
	}
	return nil
}

// Release frees the key after a failed attempt so the caller may retry.
func (s *Store) Release(ctx context.Context, key string) {
	s.client.Del(ctx, keyPrefix+key)
}
