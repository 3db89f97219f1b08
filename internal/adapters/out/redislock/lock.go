// Package redislock provides a best-effort mutual exclusion across replicas
// using Redis SET NX PX. It guards periodic jobs, not data: correctness of the
// guarded work never depends on the lock being held.
package redislock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only when it still holds our token, so a lock
// that expired and was taken by another replica is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var ErrNotHeld = errors.New("lock is not held")

// Locker takes named locks on one Redis instance.
type Locker struct {
	client *redis.Client
	prefix string
}

func New(addr, password string) *Locker {
	c := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	return &Locker{client: c, prefix: "gasfill:lock:"}
}

// Lock is a held lock. Release it when the guarded work is done; an unreleased
// lock expires after its ttl.
type Lock struct {
	client *redis.Client
	key    string
	token  string
}

// TryAcquire returns (nil, nil) when another holder owns the key.
func (l *Locker) TryAcquire(ctx context.Context, name string, ttl time.Duration) (*Lock, error) {
	key := l.prefix + name
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	return &Lock{client: l.client, key: key, token: token}, nil
}

// Release returns ErrNotHeld when the lock expired and was taken over.
func (lk *Lock) Release(ctx context.Context) error {
	n, err := releaseScript.Run(ctx, lk.client, []string{lk.key}, lk.token).Int()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotHeld
	}
	return nil
}

// TryLock is TryAcquire with the release returned as a function.
func (l *Locker) TryLock(ctx context.Context, name string, ttl time.Duration) (func(context.Context) error, bool, error) {
	lock, err := l.TryAcquire(ctx, name, ttl)
	if err != nil || lock == nil {
		return nil, false, err
	}
	return lock.Release, true, nil
}

func (l *Locker) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

func (l *Locker) Close() error {
	return l.client.Close()
}
