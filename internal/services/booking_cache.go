package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"backoffice/internal/domain/models"

	"github.com/redis/go-redis/v9"
)

// BookingCache holds populated bookings keyed by reference. Get returns
// (nil, nil) on a miss.
type BookingCache interface {
	Get(ctx context.Context, ref string) (*models.BookingDetail, error)
	Set(ctx context.Context, ref string, d *models.BookingDetail) error
}

const bookingCachePrefix = "booking:ref:"

func bookingCacheKey(ref string) string {
	return bookingCachePrefix + ref
}

// RedisBookingCache stores BookingDetail as JSON. Bookings are never updated,
// so entries only expire.
type RedisBookingCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func (c RedisBookingCache) Get(ctx context.Context, ref string) (*models.BookingDetail, error) {
	raw, err := c.Client.Get(ctx, bookingCacheKey(ref)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var d models.BookingDetail
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c RedisBookingCache) Set(ctx context.Context, ref string, d *models.BookingDetail) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, bookingCacheKey(ref), raw, c.TTL).Err()
}
