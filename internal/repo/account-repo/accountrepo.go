package accountrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/mlukyanov/quizpoints/internal/domain"
	"github.com/mlukyanov/quizpoints/internal/pg"
)

const accountColumns = `
        id, user_id, balance, daily_date, daily_sent,
        games_played, games_won, tokens,
        badges, unlocked_themes, completed_lessons,
        version, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var acc domain.Account
	err := row.Scan(
		&acc.ID, &acc.UserID, &acc.Balance, &acc.DailyDate, &acc.DailySent,
		&acc.GamesPlayed, &acc.GamesWon, &acc.Tokens,
		&acc.Badges, &acc.UnlockedThemes, &acc.CompletedLessons,
		&acc.Version, &acc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *Repository) GetByUserID(ctx context.Context, userID int) (*domain.Account, error) {
	query := `
        SELECT` + accountColumns + `
        FROM accounts
        WHERE user_id = $1
    `
	acc, err := scanAccount(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get account by user id", zap.Error(err))
		return nil, err
	}
	return acc, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*domain.Account, error) {
	query := `
        SELECT` + accountColumns + `
        FROM accounts
        WHERE id = $1
    `
	acc, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get account", zap.Error(err))
		return nil, err
	}
	return acc, nil
}

func (r *Repository) Create(ctx context.Context, userID int) (*domain.Account, error) {
	query := `
        INSERT INTO accounts (user_id)
        VALUES ($1)
        RETURNING` + accountColumns + `
    `
	acc, err := scanAccount(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		zap.L().Error("failed to create account", zap.Error(err))
		return nil, err
	}
	return acc, nil
}

// Update writes every mutable field with a compare-and-swap on version.
// A concurrent writer bumping the version first makes this a no-op and the
// caller gets domain.ErrVersionConflict.
func (r *Repository) Update(ctx context.Context, acc *domain.Account) (*domain.Account, error) {
	query := `
        UPDATE accounts
        SET balance = $1, daily_date = $2, daily_sent = $3,
            games_played = $4, games_won = $5, tokens = $6,
            badges = $7, unlocked_themes = $8, completed_lessons = $9,
            version = version + 1
        WHERE id = $10 AND version = $11
        RETURNING` + accountColumns + `
    `
	updated, err := scanAccount(r.db.QueryRow(ctx, query,
		acc.Balance, acc.DailyDate, acc.DailySent,
		acc.GamesPlayed, acc.GamesWon, acc.Tokens,
		acc.Badges, acc.UnlockedThemes, acc.CompletedLessons,
		acc.ID, acc.Version,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVersionConflict
		}
		zap.L().Error("failed to update account", zap.Error(err))
		return nil, err
	}
	return updated, nil
}
