package syncservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mlukyanov/quizpoints/internal/domain"
)

type ActionRepo interface {
	Enqueue(ctx context.Context, action *domain.OfflineAction) (*domain.OfflineAction, error)
	ListPending(ctx context.Context, accountID int) ([]domain.OfflineAction, error)
	AccountIDsWithPending(ctx context.Context, limit int) ([]int, error)
	Delete(ctx context.Context, id int64) error
}

type AccountRepo interface {
	GetByID(ctx context.Context, id int) (*domain.Account, error)
	GetByUserID(ctx context.Context, userID int) (*domain.Account, error)
	Update(ctx context.Context, acc *domain.Account) (*domain.Account, error)
}

var ErrAccountNotFound = errors.New("account not found")

// CAS retries per action before the drain gives up
const maxMergeRetries = 3

// Service is the offline reconciliation queue: mutations that could not
// reach the record store are parked here and folded back in on reconnect.
type Service struct {
	actions  ActionRepo
	accounts AccountRepo
}

func New(actions ActionRepo, accounts AccountRepo) *Service {
	return &Service{
		actions:  actions,
		accounts: accounts,
	}
}

// Enqueue durably records a deferred mutation for the user's account.
// RequestID lets a client retry the enqueue itself without duplicating the
// action.
func (s *Service) Enqueue(ctx context.Context, userID int, kind, requestID string, patch domain.AccountPatch) (*domain.OfflineAction, error) {
	acc, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, ErrAccountNotFound
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}
	action := &domain.OfflineAction{
		AccountID: acc.ID,
		Kind:      kind,
		RequestID: requestID,
		Payload:   patch,
	}
	queued, err := s.actions.Enqueue(ctx, action)
	if err != nil {
		zap.L().Error("failed to enqueue offline action", zap.Error(err))
		return nil, err
	}
	zap.L().Info("offline action queued",
		zap.Int("accountID", acc.ID), zap.String("kind", kind))
	return queued, nil
}

// DrainForUser resolves the user's account and drains its queue.
func (s *Service) DrainForUser(ctx context.Context, userID int) (int, error) {
	acc, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if acc == nil {
		return 0, ErrAccountNotFound
	}
	return s.DrainAndReconcile(ctx, acc.ID)
}

// DrainAndReconcile replays an account's queued actions one at a time in
// timestamp order: fetch the authoritative account, merge, write back under
// compare-and-swap, and only then delete the consumed action. A crash
// between write and delete replays the action, which the union merge
// absorbs. Returns how many actions were folded in.
func (s *Service) DrainAndReconcile(ctx context.Context, accountID int) (int, error) {
	pending, err := s.actions.ListPending(ctx, accountID)
	if err != nil {
		return 0, err
	}

	drained := 0
	for _, action := range pending {
		if err := s.reconcileOne(ctx, &action); err != nil {
			return drained, fmt.Errorf("failed to reconcile action %d: %w", action.ID, err)
		}
		if err := s.actions.Delete(ctx, action.ID); err != nil {
			return drained, err
		}
		drained++
	}

	if drained > 0 {
		zap.L().Info("offline queue drained",
			zap.Int("accountID", accountID), zap.Int("actions", drained))
	}
	return drained, nil
}

func (s *Service) reconcileOne(ctx context.Context, action *domain.OfflineAction) error {
	for attempt := 0; attempt < maxMergeRetries; attempt++ {
		acc, err := s.accounts.GetByID(ctx, action.AccountID)
		if err != nil {
			return err
		}
		if acc == nil {
			return ErrAccountNotFound
		}

		applyPatch(acc, action.Payload)

		_, err = s.accounts.Update(ctx, acc)
		if errors.Is(err, domain.ErrVersionConflict) {
			zap.L().Warn("reconcile lost a concurrent write, refetching",
				zap.Int64("actionID", action.ID), zap.Int("attempt", attempt+1))
			continue
		}
		return err
	}
	return domain.ErrVersionConflict
}

// AccountsWithPending feeds the background reconciler loop.
func (s *Service) AccountsWithPending(ctx context.Context, limit int) ([]int, error) {
	return s.actions.AccountIDsWithPending(ctx, limit)
}
