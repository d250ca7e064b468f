package watch

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mlukyanov/quizpoints/internal/domain"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionGetter interface {
	Get(ctx context.Context, code string) (*domain.GameSession, error)
}

// Watcher turns the 2-second polling loop into an explicit subscription:
// the returned channel carries session snapshots for as long as the bound
// context lives, and closes itself once the session finishes. Consumers see
// another client's effect at most one interval after it lands.
type Watcher struct {
	sessions SessionGetter
	interval time.Duration
}

func New(sessions SessionGetter, interval time.Duration) *Watcher {
	return &Watcher{
		sessions: sessions,
		interval: interval,
	}
}

// Watch emits the current state immediately, then a fresh snapshot on every
// observed change. The first read happens synchronously so a missing
// session fails the subscription instead of a silent empty channel.
func (w *Watcher) Watch(ctx context.Context, code string) (<-chan domain.GameSession, error) {
	current, err := w.sessions.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrSessionNotFound
	}

	updates := make(chan domain.GameSession, 1)
	go w.run(ctx, code, *current, updates)
	return updates, nil
}

func (w *Watcher) run(ctx context.Context, code string, last domain.GameSession, updates chan<- domain.GameSession) {
	defer close(updates)

	select {
	case updates <- last:
	case <-ctx.Done():
		return
	}
	if last.Status == domain.StatusFinished {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			session, err := w.sessions.Get(ctx, code)
			if err != nil {
				// transient read failure, next tick retries
				zap.L().Warn("session poll failed", zap.String("code", code), zap.Error(err))
				continue
			}
			if session == nil {
				// dissolved while being watched
				return
			}
			if !changed(&last, session) {
				continue
			}
			last = *session
			select {
			case updates <- last:
			case <-ctx.Done():
				return
			}
			if last.Status == domain.StatusFinished {
				return
			}
		}
	}
}

// changed compares the fields a client renders; timestamps and question
// bodies never change after start and are skipped.
func changed(prev, next *domain.GameSession) bool {
	if prev.Status != next.Status ||
		prev.CurrentQuestionIndex != next.CurrentQuestionIndex ||
		len(prev.Players) != len(next.Players) {
		return true
	}
	for i := range prev.Players {
		if prev.Players[i] != next.Players[i] {
			return true
		}
	}
	return false
}
