package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/mlukyanov/quizpoints/docs"
	ledgerhandlers "github.com/mlukyanov/quizpoints/internal/handlers/ledger"
	offlinehandlers "github.com/mlukyanov/quizpoints/internal/handlers/offline"
	sessionhandlers "github.com/mlukyanov/quizpoints/internal/handlers/session"
	"github.com/mlukyanov/quizpoints/internal/service"
	"github.com/mlukyanov/quizpoints/pkg/auth"
)

type LedgerHandler interface {
	CreateAccount(w http.ResponseWriter, r *http.Request)
	GetAccount(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
	Credit(w http.ResponseWriter, r *http.Request)
	Debit(w http.ResponseWriter, r *http.Request)
	Transfer(w http.ResponseWriter, r *http.Request)
	Redeem(w http.ResponseWriter, r *http.Request)
}

type SessionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Join(w http.ResponseWriter, r *http.Request)
	Leave(w http.ResponseWriter, r *http.Request)
	Start(w http.ResponseWriter, r *http.Request)
	SubmitAnswer(w http.ResponseWriter, r *http.Request)
	Watch(w http.ResponseWriter, r *http.Request)
}

type OfflineHandler interface {
	Sync(w http.ResponseWriter, r *http.Request)
	Reconcile(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	LedgerHandler  LedgerHandler
	SessionHandler SessionHandler
	OfflineHandler OfflineHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		LedgerHandler:  ledgerhandlers.New(s.LedgerService),
		SessionHandler: sessionhandlers.New(s.SessionService, s.Watcher),
		OfflineHandler: offlinehandlers.New(s.SyncService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Route("/api/user", func(r chi.Router) {
			r.Post("/account", h.LedgerHandler.CreateAccount)
			r.Get("/account", h.LedgerHandler.GetAccount)
			r.Get("/transactions", h.LedgerHandler.GetTransactions)
			r.Route("/ledger", func(r chi.Router) {
				r.Post("/credit", h.LedgerHandler.Credit)
				r.Post("/debit", h.LedgerHandler.Debit)
				r.Post("/transfer", h.LedgerHandler.Transfer)
				r.Post("/redeem", h.LedgerHandler.Redeem)
			})
			r.Route("/sync", func(r chi.Router) {
				r.Post("/", h.OfflineHandler.Sync)
				r.Post("/reconcile", h.OfflineHandler.Reconcile)
			})
		})

		r.Route("/api/sessions", func(r chi.Router) {
			r.Post("/", h.SessionHandler.Create)
			r.Route("/{code}", func(r chi.Router) {
				r.Get("/", h.SessionHandler.Get)
				r.Get("/watch", h.SessionHandler.Watch)
				r.Post("/join", h.SessionHandler.Join)
				r.Post("/leave", h.SessionHandler.Leave)
				r.Post("/start", h.SessionHandler.Start)
				r.Post("/answers", h.SessionHandler.SubmitAnswer)
			})
		})
	})

	return r
}
