package reconciler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Queue is the slice of the sync service the reconciler drives.
type Queue interface {
	AccountsWithPending(ctx context.Context, limit int) ([]int, error)
	DrainAndReconcile(ctx context.Context, accountID int) (int, error)
}

// accounts currently being drained, shared across ticks
var drainingAccounts sync.Map

// Service periodically sweeps the offline queue and replays every pending
// account, so mutations deferred by a disconnected client are folded in
// even when that client never calls reconcile itself.
type Service struct {
	queue         Queue
	limit         uint32
	workerPool    WorkerPoolI
	sweepInterval time.Duration
}

func New(queue Queue) *Service {
	return &Service{
		queue:         queue,
		limit:         1000,
		workerPool:    NewWorkerPool(10),
		sweepInterval: time.Second * 30,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("offline reconciler started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("context canceled, stopping reconciler")
			s.workerPool.Close()
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Service) sweep(ctx context.Context) {
	accountIDs, err := s.queue.AccountsWithPending(ctx, int(atomic.LoadUint32(&s.limit)))
	if err != nil {
		zap.L().Error("failed to list accounts with pending actions", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, accountID := range accountIDs {
		accountID := accountID

		if _, loaded := drainingAccounts.LoadOrStore(accountID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer drainingAccounts.Delete(accountID)
				_, err := s.queue.DrainAndReconcile(ctx, accountID)
				return err
			})
			if err != nil {
				drainingAccounts.Delete(accountID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("error draining offline queues", zap.Error(err))
	}
}
