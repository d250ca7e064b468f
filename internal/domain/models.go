package domain

import "time"

type TransactionKind string

const (
	TxnEarn    TransactionKind = "earn"
	TxnSpend   TransactionKind = "spend"
	TxnSend    TransactionKind = "send"
	TxnReceive TransactionKind = "receive"
)

// Account is the points ledger record for one user. Balance always equals
// the signed sum of the account's transactions. Version guards every write:
// an update only lands if the stored version still matches the one the
// caller read.
type Account struct {
	ID               int       `db:"id"`
	UserID           int       `db:"user_id"`
	Balance          int       `db:"balance"`
	DailyDate        string    `db:"daily_date"`
	DailySent        int       `db:"daily_sent"`
	GamesPlayed      int       `db:"games_played"`
	GamesWon         int       `db:"games_won"`
	Tokens           int       `db:"tokens"`
	Badges           []string  `db:"badges"`
	UnlockedThemes   []string  `db:"unlocked_themes"`
	CompletedLessons []string  `db:"completed_lessons"`
	Version          int       `db:"version"`
	CreatedAt        time.Time `db:"created_at"`
}

type Transaction struct {
	ID           string          `db:"id"`
	AccountID    int             `db:"account_id"`
	Kind         TransactionKind `db:"kind"`
	Amount       int             `db:"amount"`
	Description  string          `db:"description"`
	Counterparty int             `db:"counterparty"`
	CreatedAt    time.Time       `db:"created_at"`
}

type SessionStatus string

const (
	StatusWaiting    SessionStatus = "waiting"
	StatusInProgress SessionStatus = "in-progress"
	StatusFinished   SessionStatus = "finished"
)

const (
	MaxPlayers        = 10
	QuestionsPerRound = 5
)

// GameSession is the shared quiz-round record. It is mutated only under the
// per-code store lock and becomes immutable once Status is finished.
type GameSession struct {
	Code                 string        `json:"code"`
	HostID               int           `json:"host_id"`
	Status               SessionStatus `json:"status"`
	Players              []Player      `json:"players"`
	Questions            []Question    `json:"questions"`
	CurrentQuestionIndex int           `json:"current_question_index"`
	CreatedAt            time.Time     `json:"created_at"`
}

// Player rides inside GameSession. ProgressIndex counts answered questions
// and is the signal that advances the shared question pointer.
type Player struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Score         int    `json:"score"`
	ProgressIndex int    `json:"progress_index"`
	Streak        int    `json:"streak"`
}

type Question struct {
	ID           string   `json:"id"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// FindPlayer returns a pointer into s.Players, or nil.
func (s *GameSession) FindPlayer(userID int) *Player {
	for i := range s.Players {
		if s.Players[i].ID == userID {
			return &s.Players[i]
		}
	}
	return nil
}

// RedeemEffect describes what a shop item grants when redeemed. The debit
// and the effect commit together or not at all.
type RedeemEffect struct {
	Badge  string `json:"badge,omitempty"`
	Theme  string `json:"theme,omitempty"`
	Tokens int    `json:"tokens,omitempty"`
}

// OfflineAction is one deferred account mutation. Payload is a partial
// account patch; the action is deleted only after the merged account has
// been written back.
type OfflineAction struct {
	ID        int64        `db:"id"`
	AccountID int          `db:"account_id"`
	Kind      string       `db:"kind"`
	RequestID string       `db:"request_id"`
	Payload   AccountPatch `db:"payload"`
	CreatedAt time.Time    `db:"created_at"`
}

// AccountPatch carries the fields an offline client touched. Collection
// fields merge by set union; scalar pointers overwrite when present.
type AccountPatch struct {
	Balance          *int     `json:"balance,omitempty"`
	Tokens           *int     `json:"tokens,omitempty"`
	GamesPlayed      *int     `json:"games_played,omitempty"`
	Badges           []string `json:"badges,omitempty"`
	UnlockedThemes   []string `json:"unlocked_themes,omitempty"`
	CompletedLessons []string `json:"completed_lessons,omitempty"`
}
