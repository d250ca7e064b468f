package accountrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/mlukyanov/quizpoints/internal/domain"
)

var accountCols = []string{
	"id", "user_id", "balance", "daily_date", "daily_sent",
	"games_played", "games_won", "tokens",
	"badges", "unlocked_themes", "completed_lessons",
	"version", "created_at",
}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return New(mockDB), mockDB
}

func TestRepository_GetByUserID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		userID    int
		mockSetup func()
		expectErr bool
		result    *domain.Account
	}{
		{
			name:   "Account exists",
			userID: 1,
			mockSetup: func() {
				rows := pgxmock.NewRows(accountCols).
					AddRow(10, 1, 150, "2026-08-28", 40, 3, 1, 5,
						[]string{"first-game"}, []string{}, []string{}, 2, now)
				mock.ExpectQuery(`(?s)SELECT.+FROM accounts.+WHERE user_id = \$1`).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectErr: false,
			result: &domain.Account{
				ID: 10, UserID: 1, Balance: 150, DailyDate: "2026-08-28", DailySent: 40,
				GamesPlayed: 3, GamesWon: 1, Tokens: 5,
				Badges: []string{"first-game"}, UnlockedThemes: []string{}, CompletedLessons: []string{},
				Version: 2, CreatedAt: now,
			},
		},
		{
			name:   "Account does not exist",
			userID: 2,
			mockSetup: func() {
				mock.ExpectQuery(`(?s)SELECT.+FROM accounts.+WHERE user_id = \$1`).
					WithArgs(2).
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    nil,
		},
		{
			name:   "Database error",
			userID: 1,
			mockSetup: func() {
				mock.ExpectQuery(`(?s)SELECT.+FROM accounts.+WHERE user_id = \$1`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetByUserID(context.Background(), tt.userID)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		id        int
		mockSetup func()
		expectErr bool
		result    *domain.Account
	}{
		{
			name: "Account exists",
			id:   10,
			mockSetup: func() {
				rows := pgxmock.NewRows(accountCols).
					AddRow(10, 1, 150, "2026-08-28", 0, 0, 0, 0,
						[]string{}, []string{}, []string{}, 1, now)
				mock.ExpectQuery(`(?s)SELECT.+FROM accounts.+WHERE id = \$1`).
					WithArgs(10).
					WillReturnRows(rows)
			},
			expectErr: false,
			result: &domain.Account{
				ID: 10, UserID: 1, Balance: 150, DailyDate: "2026-08-28",
				Badges: []string{}, UnlockedThemes: []string{}, CompletedLessons: []string{},
				Version: 1, CreatedAt: now,
			},
		},
		{
			name: "Account does not exist",
			id:   99,
			mockSetup: func() {
				mock.ExpectQuery(`(?s)SELECT.+FROM accounts.+WHERE id = \$1`).
					WithArgs(99).
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetByID(context.Background(), tt.id)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		userID    int
		mockSetup func()
		expectErr bool
		result    *domain.Account
	}{
		{
			name:   "Created",
			userID: 7,
			mockSetup: func() {
				rows := pgxmock.NewRows(accountCols).
					AddRow(1, 7, 0, "2026-08-28", 0, 0, 0, 0,
						[]string{}, []string{}, []string{}, 1, now)
				mock.ExpectQuery(`(?s)INSERT INTO accounts.+RETURNING`).
					WithArgs(7).
					WillReturnRows(rows)
			},
			expectErr: false,
			result: &domain.Account{
				ID: 1, UserID: 7, DailyDate: "2026-08-28",
				Badges: []string{}, UnlockedThemes: []string{}, CompletedLessons: []string{},
				Version: 1, CreatedAt: now,
			},
		},
		{
			name:   "Database error",
			userID: 7,
			mockSetup: func() {
				mock.ExpectQuery(`(?s)INSERT INTO accounts.+RETURNING`).
					WithArgs(7).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Create(context.Background(), tt.userID)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Update(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	acc := &domain.Account{
		ID: 10, UserID: 1, Balance: 200, DailyDate: "2026-08-28", DailySent: 50,
		GamesPlayed: 4, GamesWon: 2, Tokens: 1,
		Badges: []string{"first-game"}, UnlockedThemes: []string{}, CompletedLessons: []string{},
		Version: 3, CreatedAt: now,
	}

	tests := []struct {
		name      string
		acc       *domain.Account
		mockSetup func()
		wantErr   error
		expectErr bool
		result    *domain.Account
	}{
		{
			name: "Updated",
			acc:  acc,
			mockSetup: func() {
				rows := pgxmock.NewRows(accountCols).
					AddRow(10, 1, 200, "2026-08-28", 50, 4, 2, 1,
						[]string{"first-game"}, []string{}, []string{}, 4, now)
				mock.ExpectQuery(`(?s)UPDATE accounts.+WHERE id = \$10 AND version = \$11`).
					WithArgs(
						acc.Balance, acc.DailyDate, acc.DailySent,
						acc.GamesPlayed, acc.GamesWon, acc.Tokens,
						acc.Badges, acc.UnlockedThemes, acc.CompletedLessons,
						acc.ID, acc.Version,
					).
					WillReturnRows(rows)
			},
			expectErr: false,
			result: &domain.Account{
				ID: 10, UserID: 1, Balance: 200, DailyDate: "2026-08-28", DailySent: 50,
				GamesPlayed: 4, GamesWon: 2, Tokens: 1,
				Badges: []string{"first-game"}, UnlockedThemes: []string{}, CompletedLessons: []string{},
				Version: 4, CreatedAt: now,
			},
		},
		{
			name: "Version conflict",
			acc:  acc,
			mockSetup: func() {
				mock.ExpectQuery(`(?s)UPDATE accounts.+WHERE id = \$10 AND version = \$11`).
					WithArgs(
						acc.Balance, acc.DailyDate, acc.DailySent,
						acc.GamesPlayed, acc.GamesWon, acc.Tokens,
						acc.Badges, acc.UnlockedThemes, acc.CompletedLessons,
						acc.ID, acc.Version,
					).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr:   domain.ErrVersionConflict,
			expectErr: true,
			result:    nil,
		},
		{
			name: "Database error",
			acc:  acc,
			mockSetup: func() {
				mock.ExpectQuery(`(?s)UPDATE accounts.+WHERE id = \$10 AND version = \$11`).
					WithArgs(
						acc.Balance, acc.DailyDate, acc.DailySent,
						acc.GamesPlayed, acc.GamesWon, acc.Tokens,
						acc.Badges, acc.UnlockedThemes, acc.CompletedLessons,
						acc.ID, acc.Version,
					).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Update(context.Background(), tt.acc)
			if tt.expectErr {
				assert.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
