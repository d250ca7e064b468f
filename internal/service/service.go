package service

import (
	"time"

	"github.com/mlukyanov/quizpoints/internal/handlers/ledger"
	"github.com/mlukyanov/quizpoints/internal/handlers/session"

	"github.com/mlukyanov/quizpoints/internal/pg"
	"github.com/mlukyanov/quizpoints/internal/questions"
	"github.com/mlukyanov/quizpoints/internal/repo"
	ledgerservice "github.com/mlukyanov/quizpoints/internal/service/ledgerservice"
	sessionservice "github.com/mlukyanov/quizpoints/internal/service/sessionservice"
	syncservice "github.com/mlukyanov/quizpoints/internal/service/syncservice"
	"github.com/mlukyanov/quizpoints/internal/watch"
)

type Services struct {
	LedgerService  ledger.Service
	SessionService session.Service
	SyncService    *syncservice.Service
	Watcher        *watch.Watcher
}

func New(repo *repo.Repositories, provider questions.Provider, txManager pg.TXManager, pollInterval time.Duration) *Services {
	ledgerService := ledgerservice.New(repo.Accounts, repo.Txns, txManager)
	sessionService := sessionservice.New(repo.Sessions, provider, ledgerService)
	syncService := syncservice.New(repo.Actions, repo.Accounts)

	return &Services{
		LedgerService:  ledgerService,
		SessionService: sessionService,
		SyncService:    syncService,
		Watcher:        watch.New(repo.Sessions, pollInterval),
	}
}
