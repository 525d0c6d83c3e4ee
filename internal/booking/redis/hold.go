package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis places short-lived holds on a slot tuple while a booking submission
// is in flight. The hold narrows the window between the capacity read and
// the insert; uniqueness of the tuple itself is enforced by the database.
type Redis struct {
	Client  *redis.Client
	holdTTL time.Duration
}

// NewRedis wires a client with the hold TTL from configuration. A
// non-positive TTL falls back to 30 seconds.
func NewRedis(client *redis.Client, holdTTL time.Duration) *Redis {
	if holdTTL <= 0 {
		holdTTL = 30 * time.Second
	}
	return &Redis{Client: client, holdTTL: holdTTL}
}

func holdKey(sport, location, date, slot string) string {
	return fmt.Sprintf("slot_hold:%s:%s:%s:%s", sport, location, date, slot)
}

// HoldSlot takes a hold on the slot tuple for the given booking ref.
// Returns false when another submission already holds it.
func (r *Redis) HoldSlot(ctx context.Context, sport, location, date, slot, bookingRef string) (bool, error) {
	key := holdKey(sport, location, date, slot)
	return r.Client.SetNX(ctx, key, bookingRef, r.holdTTL).Result()
}

// ReleaseSlot drops the hold if it is still owned by bookingRef.
func (r *Redis) ReleaseSlot(ctx context.Context, sport, location, date, slot, bookingRef string) error {
	key := holdKey(sport, location, date, slot)
	val, err := r.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil // hold already expired
	}
	if err != nil {
		return err
	}
	if val == bookingRef {
		_, err = r.Client.Del(ctx, key).Result()
		return err
	}
	return nil
}

// AllocateSeats reserves a contiguous range of seat numbers for an event by
// atomically advancing its counter. Returns the allocated numbers.
func (r *Redis) AllocateSeats(ctx context.Context, eventName string, count int) ([]int, error) {
	if count <= 0 {
		return nil, nil
	}
	key := "seat_counter:" + eventName
	end, err := r.Client.IncrBy(ctx, key, int64(count)).Result()
	if err != nil {
		return nil, err
	}
	seats := make([]int, count)
	for i := range seats {
		seats[i] = int(end) - count + 1 + i
	}
	return seats, nil
}
