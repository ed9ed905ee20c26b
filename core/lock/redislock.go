package lock

import (
	"context"
	"fmt"
	"time"

	"gestimmo-api/core/utils"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only if it still holds our token, so an
// expired lock reacquired by another worker is never released by us.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

const pollInterval = 100 * time.Millisecond

// Locker provides best-effort mutual exclusion keyed by an arbitrary string,
// backed by redis SET NX.
type Locker struct {
	client *redis.Client
}

func NewLocker(client *redis.Client) *Locker {
	return &Locker{client: client}
}

// Acquire attempts to take the lock once. Returns the release token and
// whether the lock was obtained.
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := utils.GenerateID()
	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("lock acquire %s: %w", key, err)
	}
	return token, ok, nil
}

// AcquireWait polls for the lock until it is obtained, maxWait elapses or the
// context is done.
func (l *Locker) AcquireWait(ctx context.Context, key string, ttl, maxWait time.Duration) (string, bool, error) {
	deadline := time.Now().Add(maxWait)
	for {
		token, ok, err := l.Acquire(ctx, key, ttl)
		if err != nil || ok {
			return token, ok, err
		}
		if time.Now().After(deadline) {
			return "", false, nil
		}
		select {
		case <-ctx.Done():
			return "", false, ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// Release frees the lock if it is still held with the given token.
func (l *Locker) Release(ctx context.Context, key, token string) error {
	return l.client.Eval(ctx, releaseScript, []string{key}, token).Err()
}
