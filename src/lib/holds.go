package lib

import (
	"context"
	"crs/src/types"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// The availability ledger keeps two keys per pending booking: a per-car lock
// acquired with SETNX (the atomic primitive that decides the winner between
// concurrent requests) and the hold payload keyed by booking code. Both carry
// the hold TTL so the store itself evicts a hold even if the expiry worker
// never runs.

func HoldKey(bookingCode string) string {
	return fmt.Sprintf("hold:%s", bookingCode)
}

func CarLockKey(carId uint) string {
	return fmt.Sprintf("hold:car:%d", carId)
}

// CreateHold acquires the car lock and stores the hold payload. Losing the
// SETNX race surfaces as ErrCarNotAvailable. If the payload write fails the
// lock is released again so the car is not stuck blocked with no hold behind
// it.
func CreateHold(ctx context.Context, hold *types.HoldPayload, ttl time.Duration) error {
	rdb := GetRedisClient()
	raw, err := json.Marshal(hold)
	if err != nil {
		return err
	}
	ok, err := rdb.SetNX(ctx, CarLockKey(hold.CarID), hold.BookingCode, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return types.ErrCarNotAvailable
	}
	if err := rdb.Set(ctx, HoldKey(hold.BookingCode), raw, ttl).Err(); err != nil {
		if derr := rdb.Del(ctx, CarLockKey(hold.CarID)).Err(); derr != nil {
			log.Printf("Error releasing car lock for %s: %s\n", hold.BookingCode, derr.Error())
		}
		return err
	}
	return nil
}

// GetHold returns the hold payload, or nil without error when no hold exists
// for the code.
func GetHold(ctx context.Context, bookingCode string) (*types.HoldPayload, error) {
	rdb := GetRedisClient()
	raw, err := rdb.Get(ctx, HoldKey(bookingCode)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var hold types.HoldPayload
	if err := json.Unmarshal([]byte(raw), &hold); err != nil {
		return nil, err
	}
	return &hold, nil
}

// DeleteHold removes the hold payload and its car lock. Deleting an absent
// hold is a no-op, which is what makes the expiry worker and the payment
// callback safe to race each other.
func DeleteHold(ctx context.Context, bookingCode string) error {
	hold, err := GetHold(ctx, bookingCode)
	if err != nil {
		return err
	}
	if hold == nil {
		return nil
	}
	return GetRedisClient().Del(ctx, HoldKey(bookingCode), CarLockKey(hold.CarID)).Err()
}

// CarHeld reports whether a pending hold currently blocks the car.
func CarHeld(ctx context.Context, carId uint) (bool, error) {
	n, err := GetRedisClient().Exists(ctx, CarLockKey(carId)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
