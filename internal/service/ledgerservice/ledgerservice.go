package ledgerservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mlukyanov/quizpoints/internal/domain"
	"github.com/mlukyanov/quizpoints/internal/pg"
)

type AccountRepo interface {
	GetByUserID(ctx context.Context, userID int) (*domain.Account, error)
	GetByID(ctx context.Context, id int) (*domain.Account, error)
	Create(ctx context.Context, userID int) (*domain.Account, error)
	Update(ctx context.Context, acc *domain.Account) (*domain.Account, error)
}

type TxnRepo interface {
	Add(ctx context.Context, txn *domain.Transaction) error
	ListByAccountID(ctx context.Context, accountID int) ([]domain.Transaction, error)
}

const (
	// DailyTransferCap bounds one sender's outgoing transfers per UTC
	// calendar day.
	DailyTransferCap = 200

	dailyDateLayout = "2006-01-02"

	// version-conflict retries before giving up
	maxRetries = 3
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrSelfTransfer       = errors.New("cannot transfer to self")
	ErrDailyLimitExceeded = errors.New("daily transfer limit exceeded")
	ErrInvalidAmount      = errors.New("amount must be positive")
)

// Badges the ledger can award on game results.
const (
	BadgeFirstGame    = "first-game"
	BadgeFirstWin     = "first-win"
	BadgePerfectRound = "perfect-round"
)

type Service struct {
	accounts  AccountRepo
	txns      TxnRepo
	txManager pg.TXManager
	now       func() time.Time
}

func New(accounts AccountRepo, txns TxnRepo, txManager pg.TXManager) *Service {
	return &Service{
		accounts:  accounts,
		txns:      txns,
		txManager: txManager,
		now:       time.Now,
	}
}

func (s *Service) CreateAccount(ctx context.Context, userID int) (*domain.Account, error) {
	acc, err := s.accounts.Create(ctx, userID)
	if err != nil {
		zap.L().Error("failed to create account", zap.Error(err))
		return nil, err
	}
	return acc, nil
}

func (s *Service) GetAccount(ctx context.Context, userID int) (*domain.Account, error) {
	acc, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get account", zap.Error(err))
		return nil, err
	}
	if acc == nil {
		return nil, ErrAccountNotFound
	}
	return acc, nil
}

func (s *Service) GetTransactions(ctx context.Context, userID int) ([]domain.Transaction, error) {
	acc, err := s.GetAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	txns, err := s.txns.ListByAccountID(ctx, acc.ID)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.Error(err))
		return nil, err
	}
	return txns, nil
}

func (s *Service) Credit(ctx context.Context, userID, amount int, description string) (*domain.Account, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return s.apply(ctx, userID, domain.TxnEarn, amount, description, 0, func(acc *domain.Account) error {
		acc.Balance += amount
		return nil
	})
}

func (s *Service) Debit(ctx context.Context, userID, amount int, description string) (*domain.Account, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return s.apply(ctx, userID, domain.TxnSpend, amount, description, 0, func(acc *domain.Account) error {
		if acc.Balance < amount {
			return ErrInsufficientFunds
		}
		acc.Balance -= amount
		return nil
	})
}

// Redeem debits cost and applies the item's effect as one unit. Nothing is
// granted when the debit fails.
func (s *Service) Redeem(ctx context.Context, userID int, itemID string, cost int, effect domain.RedeemEffect) (*domain.Account, error) {
	if cost <= 0 {
		return nil, ErrInvalidAmount
	}
	return s.apply(ctx, userID, domain.TxnSpend, cost, "redeem: "+itemID, 0, func(acc *domain.Account) error {
		if acc.Balance < cost {
			return ErrInsufficientFunds
		}
		acc.Balance -= cost
		if effect.Badge != "" {
			acc.Badges = appendIfMissing(acc.Badges, effect.Badge)
		}
		if effect.Theme != "" {
			acc.UnlockedThemes = appendIfMissing(acc.UnlockedThemes, effect.Theme)
		}
		acc.Tokens += effect.Tokens
		return nil
	})
}

// RecordGameResult credits a finished session's score and updates game
// stats and badges. The session coordinator calls this exactly once per
// player per finished session.
func (s *Service) RecordGameResult(ctx context.Context, userID, score int, won, perfect bool) (*domain.Account, error) {
	kind := domain.TxnEarn
	return s.apply(ctx, userID, kind, score, "practice session payout", 0, func(acc *domain.Account) error {
		acc.Balance += score
		acc.GamesPlayed++
		if won {
			acc.GamesWon++
		}
		if acc.GamesPlayed == 1 {
			acc.Badges = appendIfMissing(acc.Badges, BadgeFirstGame)
		}
		if won && acc.GamesWon == 1 {
			acc.Badges = appendIfMissing(acc.Badges, BadgeFirstWin)
		}
		if perfect {
			acc.Badges = appendIfMissing(acc.Badges, BadgePerfectRound)
		}
		return nil
	})
}

// Transfer moves amount between two accounts as a single transaction:
// both compare-and-swap updates and both ledger entries commit together.
// Version conflicts rerun the whole read-modify-write.
func (s *Service) Transfer(ctx context.Context, senderUserID, recipientUserID, amount int, message string) (*domain.Account, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if senderUserID == recipientUserID {
		return nil, ErrSelfTransfer
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		sender, err := s.GetAccount(ctx, senderUserID)
		if err != nil {
			return nil, err
		}
		recipient, err := s.GetAccount(ctx, recipientUserID)
		if err != nil {
			return nil, err
		}

		s.resetDailyCounter(sender)
		if sender.Balance < amount {
			return nil, ErrInsufficientFunds
		}
		if sender.DailySent+amount > DailyTransferCap {
			return nil, ErrDailyLimitExceeded
		}

		sender.Balance -= amount
		sender.DailySent += amount
		recipient.Balance += amount

		// rows are locked in account-id order so reciprocal concurrent
		// transfers cannot deadlock
		first, second := sender, recipient
		if second.ID < first.ID {
			first, second = second, first
		}

		var updated *domain.Account
		err = s.txManager.Begin(ctx, func(ctx context.Context) error {
			for _, acc := range []*domain.Account{first, second} {
				res, txErr := s.accounts.Update(ctx, acc)
				if txErr != nil {
					return txErr
				}
				if acc == sender {
					updated = res
				}
			}
			if txErr := s.txns.Add(ctx, newTransaction(sender.ID, domain.TxnSend, amount, message, recipient.ID)); txErr != nil {
				return txErr
			}
			return s.txns.Add(ctx, newTransaction(recipient.ID, domain.TxnReceive, amount, message, sender.ID))
		})
		if errors.Is(err, domain.ErrVersionConflict) {
			zap.L().Warn("transfer lost a concurrent update, retrying",
				zap.Int("sender", senderUserID), zap.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			zap.L().Error("transfer failed", zap.Error(err))
			return nil, err
		}
		return updated, nil
	}
	return nil, fmt.Errorf("transfer from %d: %w", senderUserID, domain.ErrVersionConflict)
}

// apply is the shared single-account read-modify-write loop: fetch, mutate,
// CAS-update plus ledger entry in one transaction, retry on conflict.
func (s *Service) apply(ctx context.Context, userID int, kind domain.TransactionKind, amount int, description string, counterparty int, mutate func(*domain.Account) error) (*domain.Account, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		acc, err := s.GetAccount(ctx, userID)
		if err != nil {
			return nil, err
		}
		if err := mutate(acc); err != nil {
			return nil, err
		}

		var updated *domain.Account
		err = s.txManager.Begin(ctx, func(ctx context.Context) error {
			var txErr error
			if updated, txErr = s.accounts.Update(ctx, acc); txErr != nil {
				return txErr
			}
			if amount == 0 {
				return nil
			}
			return s.txns.Add(ctx, newTransaction(acc.ID, kind, amount, description, counterparty))
		})
		if errors.Is(err, domain.ErrVersionConflict) {
			zap.L().Warn("account update lost a concurrent write, retrying",
				zap.Int("userID", userID), zap.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			zap.L().Error("failed to apply account mutation", zap.Error(err))
			return nil, err
		}
		return updated, nil
	}
	return nil, fmt.Errorf("account %d: %w", userID, domain.ErrVersionConflict)
}

// resetDailyCounter lazily zeroes the outgoing-transfer counter on the
// first transfer attempt of a new calendar day.
func (s *Service) resetDailyCounter(acc *domain.Account) {
	today := s.now().UTC().Format(dailyDateLayout)
	if acc.DailyDate != today {
		acc.DailyDate = today
		acc.DailySent = 0
	}
}

func newTransaction(accountID int, kind domain.TransactionKind, amount int, description string, counterparty int) *domain.Transaction {
	return &domain.Transaction{
		ID:           uuid.NewString(),
		AccountID:    accountID,
		Kind:         kind,
		Amount:       amount,
		Description:  description,
		Counterparty: counterparty,
	}
}

func appendIfMissing(set []string, v string) []string {
	for _, s := range set {
		if s == v {
			return set
		}
	}
	return append(set, v)
}
