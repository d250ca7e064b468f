package sessionrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mlukyanov/quizpoints/internal/domain"
	"github.com/mlukyanov/quizpoints/internal/rdb"
)

const (
	keySession     = "session:%s"
	keySessionLock = "session:lock:%s"

	// finished sessions expire with the key, nothing reaps them explicitly
	sessionTTL = 24 * time.Hour

	lockTTL           = 5 * time.Second
	lockRetryInterval = 50 * time.Millisecond
	lockMaxRetries    = 40
)

type Repository struct {
	client rdb.Client
}

func New(client rdb.Client) *Repository {
	return &Repository{client: client}
}

// Get returns nil, nil when no session exists under code.
func (r *Repository) Get(ctx context.Context, code string) (*domain.GameSession, error) {
	data, err := r.client.Get(ctx, fmt.Sprintf(keySession, code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		zap.L().Error("failed to get session", zap.Error(err))
		return nil, err
	}

	var session domain.GameSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", code, err)
	}
	return &session, nil
}

func (r *Repository) Save(ctx context.Context, session *domain.GameSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", session.Code, err)
	}
	if err := r.client.Set(ctx, fmt.Sprintf(keySession, session.Code), data, sessionTTL).Err(); err != nil {
		zap.L().Error("failed to save session", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) Exists(ctx context.Context, code string) (bool, error) {
	n, err := r.client.Exists(ctx, fmt.Sprintf(keySession, code)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Repository) Delete(ctx context.Context, code string) error {
	return r.client.Del(ctx, fmt.Sprintf(keySession, code)).Err()
}

// Mutate runs fn on the stored session under the per-code lock and writes
// the result back. Concurrent mutations of one session serialize here; the
// read-modify-write gap is closed for the lock's lifetime. Returns nil, nil
// when the session does not exist. An error from fn aborts the write.
func (r *Repository) Mutate(ctx context.Context, code string, fn func(*domain.GameSession) error) (*domain.GameSession, error) {
	mu := rdb.NewMutex(r.client, fmt.Sprintf(keySessionLock, code), lockTTL)
	if err := mu.Lock(ctx, lockRetryInterval, lockMaxRetries); err != nil {
		return nil, fmt.Errorf("failed to lock session %s: %w", code, err)
	}
	defer func() {
		if err := mu.Unlock(ctx); err != nil {
			zap.L().Error("failed to unlock session", zap.String("code", code), zap.Error(err))
		}
	}()

	session, err := r.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	if err := fn(session); err != nil {
		return nil, err
	}

	if err := r.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
