package txnrepo

import (
	"context"

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

func (r *Repository) Add(ctx context.Context, txn *domain.Transaction) error {
	query := `
        INSERT INTO transactions (id, account_id, kind, amount, description, counterparty)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := r.db.Exec(ctx, query,
		txn.ID, txn.AccountID, txn.Kind, txn.Amount, txn.Description, txn.Counterparty,
	)
	if err != nil {
		zap.L().Error("failed to insert transaction", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) ListByAccountID(ctx context.Context, accountID int) ([]domain.Transaction, error) {
	query := `
        SELECT id, account_id, kind, amount, description, counterparty, created_at
        FROM transactions
        WHERE account_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		zap.L().Error("failed to list transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var txn domain.Transaction
		if err := rows.Scan(
			&txn.ID, &txn.AccountID, &txn.Kind, &txn.Amount,
			&txn.Description, &txn.Counterparty, &txn.CreatedAt,
		); err != nil {
			zap.L().Error("failed to scan transaction", zap.Error(err))
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}
