package sessionservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mlukyanov/quizpoints/internal/domain"
)

type SessionRepo interface {
	Get(ctx context.Context, code string) (*domain.GameSession, error)
	Save(ctx context.Context, session *domain.GameSession) error
	Exists(ctx context.Context, code string) (bool, error)
	Delete(ctx context.Context, code string) error
	Mutate(ctx context.Context, code string, fn func(*domain.GameSession) error) (*domain.GameSession, error)
}

type QuestionProvider interface {
	Draw(ctx context.Context, n int) ([]domain.Question, error)
}

type Ledger interface {
	RecordGameResult(ctx context.Context, userID, score int, won, perfect bool) (*domain.Account, error)
}

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrAlreadyStarted   = errors.New("session already started")
	ErrSessionFull      = errors.New("session is full")
	ErrNotHost          = errors.New("only the host can start the session")
	ErrNotWaiting       = errors.New("session is not waiting for players")
	ErrNotStarted       = errors.New("session has not started")
	ErrNotInSession     = errors.New("player is not in the session")
	ErrQuestionMismatch = errors.New("question does not match the current one")
)

const pointsPerCorrectAnswer = 10

// collision retries when generating a join code
const maxCodeAttempts = 5

type Service struct {
	sessions  SessionRepo
	questions QuestionProvider
	ledger    Ledger
}

func New(sessions SessionRepo, questions QuestionProvider, ledger Ledger) *Service {
	return &Service{
		sessions:  sessions,
		questions: questions,
		ledger:    ledger,
	}
}

// Create registers a new waiting session with the host as its only player,
// under a join code checked for collisions against the store.
func (s *Service) Create(ctx context.Context, hostID int, hostName string) (*domain.GameSession, error) {
	var code string
	for attempt := 0; ; attempt++ {
		c, err := newCode()
		if err != nil {
			return nil, err
		}
		exists, err := s.sessions.Exists(ctx, c)
		if err != nil {
			zap.L().Error("failed to check session code", zap.Error(err))
			return nil, err
		}
		if !exists {
			code = c
			break
		}
		if attempt+1 == maxCodeAttempts {
			return nil, fmt.Errorf("failed to find a free session code in %d attempts", maxCodeAttempts)
		}
	}

	session := &domain.GameSession{
		Code:      code,
		HostID:    hostID,
		Status:    domain.StatusWaiting,
		Players:   []domain.Player{{ID: hostID, Name: hostName}},
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	zap.L().Info("session created", zap.String("code", code), zap.Int("hostID", hostID))
	return session, nil
}

func (s *Service) Get(ctx context.Context, code string) (*domain.GameSession, error) {
	session, err := s.sessions.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Join adds the player to a waiting session. Re-joining with an identity
// that is already present returns the session unchanged, so a retried or
// polled join can never corrupt the roster.
func (s *Service) Join(ctx context.Context, code string, userID int, name string) (*domain.GameSession, error) {
	session, err := s.sessions.Mutate(ctx, code, func(sess *domain.GameSession) error {
		if sess.FindPlayer(userID) != nil {
			return nil
		}
		if sess.Status != domain.StatusWaiting {
			return ErrAlreadyStarted
		}
		if len(sess.Players) == domain.MaxPlayers {
			return ErrSessionFull
		}
		sess.Players = append(sess.Players, domain.Player{ID: userID, Name: name})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Leave removes a player from a session that has not started. The host
// leaving dissolves the session. Leaving mid-game is not supported: the
// player simply stops answering.
func (s *Service) Leave(ctx context.Context, code string, userID int) error {
	dissolve := false
	session, err := s.sessions.Mutate(ctx, code, func(sess *domain.GameSession) error {
		if sess.Status != domain.StatusWaiting {
			return ErrAlreadyStarted
		}
		if sess.FindPlayer(userID) == nil {
			return nil
		}
		if userID == sess.HostID {
			dissolve = true
			return nil
		}
		players := sess.Players[:0]
		for _, p := range sess.Players {
			if p.ID != userID {
				players = append(players, p)
			}
		}
		sess.Players = players
		return nil
	})
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}
	if dissolve {
		return s.sessions.Delete(ctx, code)
	}
	return nil
}

// Start freezes a random question set and moves the session to in-progress.
func (s *Service) Start(ctx context.Context, code string, callerID int) (*domain.GameSession, error) {
	session, err := s.sessions.Mutate(ctx, code, func(sess *domain.GameSession) error {
		if callerID != sess.HostID {
			return ErrNotHost
		}
		if sess.Status != domain.StatusWaiting {
			return ErrNotWaiting
		}
		drawn, err := s.questions.Draw(ctx, domain.QuestionsPerRound)
		if err != nil {
			zap.L().Error("failed to draw questions", zap.Error(err))
			return err
		}
		sess.Questions = drawn
		sess.CurrentQuestionIndex = 0
		for i := range sess.Players {
			sess.Players[i].ProgressIndex = 0
		}
		sess.Status = domain.StatusInProgress
		return nil
	})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	zap.L().Info("session started", zap.String("code", code), zap.Int("players", len(session.Players)))
	return session, nil
}

// SubmitAnswer records one player's answer to the current question and
// advances the shared question pointer once everyone has answered. The
// whole read-modify-write runs under the session lock, and a duplicate or
// late submission is a pure no-op, so the finished transition and its side
// effects fire exactly once no matter how many retries arrive.
func (s *Service) SubmitAnswer(ctx context.Context, code string, userID int, questionID string, answerIndex int, elapsedMs int) (*domain.GameSession, error) {
	finished := false
	session, err := s.sessions.Mutate(ctx, code, func(sess *domain.GameSession) error {
		if sess.Status == domain.StatusFinished {
			return nil
		}
		if sess.Status != domain.StatusInProgress {
			return ErrNotStarted
		}

		player := sess.FindPlayer(userID)
		if player == nil {
			return ErrNotInSession
		}
		if player.ProgressIndex > sess.CurrentQuestionIndex {
			// duplicate or late submission
			return nil
		}

		current := sess.Questions[sess.CurrentQuestionIndex]
		if questionID != current.ID {
			return ErrQuestionMismatch
		}

		if answerIndex == current.CorrectIndex {
			player.Score += pointsPerCorrectAnswer
			player.Streak++
		} else {
			player.Streak = 0
		}
		player.ProgressIndex = sess.CurrentQuestionIndex + 1

		if !allAdvanced(sess) {
			return nil
		}
		if sess.CurrentQuestionIndex+1 < len(sess.Questions) {
			sess.CurrentQuestionIndex++
			return nil
		}

		sess.Status = domain.StatusFinished
		finished = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if finished {
		s.payout(ctx, session)
	}
	return session, nil
}

func allAdvanced(sess *domain.GameSession) bool {
	for _, p := range sess.Players {
		if p.ProgressIndex <= sess.CurrentQuestionIndex {
			return false
		}
	}
	return true
}

// payout runs the one-time terminal side effect after the finished state
// has been persisted, so a failed session write can never leave credited
// players in a live game. Only the submission that performed the finished
// transition reaches it. A failed credit for one player must not abort the
// other players' payouts, so errors are logged and the loop continues.
func (s *Service) payout(ctx context.Context, sess *domain.GameSession) {
	top := 0
	for _, p := range sess.Players {
		if p.Score > top {
			top = p.Score
		}
	}
	perfectScore := pointsPerCorrectAnswer * len(sess.Questions)

	for _, p := range sess.Players {
		won := p.Score == top && top > 0
		perfect := p.Score == perfectScore
		if _, err := s.ledger.RecordGameResult(ctx, p.ID, p.Score, won, perfect); err != nil {
			zap.L().Error("failed to record game result",
				zap.String("code", sess.Code), zap.Int("userID", p.ID), zap.Error(err))
		}
	}
	zap.L().Info("session finished", zap.String("code", sess.Code))
}
