package actionrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/mlukyanov/quizpoints/internal/domain"
	"github.com/mlukyanov/quizpoints/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

// Enqueue inserts the action keyed by its client request id. Replaying a
// request id returns the already-queued action instead of a duplicate.
func (r *Repository) Enqueue(ctx context.Context, action *domain.OfflineAction) (*domain.OfflineAction, error) {
	payload, err := json.Marshal(action.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal action payload: %w", err)
	}

	query := `
        INSERT INTO offline_actions (account_id, kind, request_id, payload)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (request_id) DO NOTHING
        RETURNING id, created_at
    `
	row := r.db.QueryRow(ctx, query, action.AccountID, action.Kind, action.RequestID, payload)
	err = row.Scan(&action.ID, &action.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return r.getByRequestID(ctx, action.RequestID)
	}
	if err != nil {
		zap.L().Error("failed to enqueue offline action", zap.Error(err))
		return nil, err
	}
	return action, nil
}

func (r *Repository) getByRequestID(ctx context.Context, requestID string) (*domain.OfflineAction, error) {
	query := `
        SELECT id, account_id, kind, request_id, payload, created_at
        FROM offline_actions
        WHERE request_id = $1
    `
	var (
		action  domain.OfflineAction
		payload []byte
	)
	row := r.db.QueryRow(ctx, query, requestID)
	if err := row.Scan(
		&action.ID, &action.AccountID, &action.Kind,
		&action.RequestID, &payload, &action.CreatedAt,
	); err != nil {
		zap.L().Error("failed to fetch queued action", zap.Error(err))
		return nil, err
	}
	if err := json.Unmarshal(payload, &action.Payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal action payload: %w", err)
	}
	return &action, nil
}

// ListPending returns an account's queued actions in replay order.
func (r *Repository) ListPending(ctx context.Context, accountID int) ([]domain.OfflineAction, error) {
	query := `
        SELECT id, account_id, kind, request_id, payload, created_at
        FROM offline_actions
        WHERE account_id = $1
        ORDER BY created_at, id
    `
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		zap.L().Error("failed to list pending actions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var actions []domain.OfflineAction
	for rows.Next() {
		var (
			action  domain.OfflineAction
			payload []byte
		)
		if err := rows.Scan(
			&action.ID, &action.AccountID, &action.Kind,
			&action.RequestID, &payload, &action.CreatedAt,
		); err != nil {
			zap.L().Error("failed to scan offline action", zap.Error(err))
			return nil, err
		}
		if err := json.Unmarshal(payload, &action.Payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal action payload: %w", err)
		}
		actions = append(actions, action)
	}
	return actions, rows.Err()
}

// AccountIDsWithPending feeds the background reconciler.
func (r *Repository) AccountIDsWithPending(ctx context.Context, limit int) ([]int, error) {
	query := `
        SELECT DISTINCT account_id
        FROM offline_actions
        LIMIT $1
    `
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		zap.L().Error("failed to list accounts with pending actions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM offline_actions WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		zap.L().Error("failed to delete offline action", zap.Error(err))
		return err
	}
	return nil
}
