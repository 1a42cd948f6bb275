package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/booking-gateway/internal/domain"
)

// BookingCache keeps a short-lived per-user copy of the current booking so
// consecutive checkout page loads do not each hit the upstream API.
type BookingCache interface {
	Get(ctx context.Context, userID string) (*domain.Booking, error)
	Set(ctx context.Context, userID string, booking *domain.Booking) error
	Invalidate(ctx context.Context, userID string) error
}

type bookingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookingCache returns a Redis-backed implementation.
func NewBookingCache(client *redis.Client, ttl time.Duration) BookingCache {
	return &bookingCache{client: client, ttl: ttl}
}

func bookingKey(userID string) string {
	return fmt.Sprintf("booking:current:%s", userID)
}

// Get returns the cached booking, or nil on a miss. Cache errors are
// returned so the caller can decide to fall through to the upstream.
func (c *bookingCache) Get(ctx context.Context, userID string) (*domain.Booking, error) {
	if c.client == nil {
		return nil, nil
	}

	data, err := c.client.Get(ctx, bookingKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var booking domain.Booking
	if err := json.Unmarshal(data, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *bookingCache) Set(ctx context.Context, userID string, booking *domain.Booking) error {
	if c.client == nil || booking == nil {
		return nil
	}

	payload, err := json.Marshal(booking)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, bookingKey(userID), payload, c.ttl).Err()
}

func (c *bookingCache) Invalidate(ctx context.Context, userID string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, bookingKey(userID)).Err()
}
