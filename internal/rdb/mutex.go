package rdb

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrLockNotAcquired = errors.New("lock not acquired")

// unlock deletes the key only if it still holds our token, so an expired
// lock reacquired by someone else is never released by us.
const unlockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`

// Mutex is a single-key redis lock. Expiration bounds how long a crashed
// holder can block other clients.
type Mutex struct {
	client     Client
	key        string
	token      string
	expiration time.Duration
}

func NewMutex(client Client, key string, expiration time.Duration) *Mutex {
	return &Mutex{
		client:     client,
		key:        key,
		token:      uuid.NewString(),
		expiration: expiration,
	}
}

func (m *Mutex) TryLock(ctx context.Context) (bool, error) {
	return m.client.SetNX(ctx, m.key, m.token, m.expiration).Result()
}

// Lock retries TryLock until it wins, the retries run out, or ctx is done.
func (m *Mutex) Lock(ctx context.Context, retryInterval time.Duration, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		ok, err := m.TryLock(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	return ErrLockNotAcquired
}

func (m *Mutex) Unlock(ctx context.Context) error {
	return m.client.Eval(ctx, unlockScript, []string{m.key}, m.token).Err()
}
