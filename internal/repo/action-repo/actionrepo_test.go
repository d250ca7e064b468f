package actionrepo

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/mlukyanov/quizpoints/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return New(mockDB), mockDB
}

func intPtr(v int) *int { return &v }

func TestRepository_Enqueue(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	action := &domain.OfflineAction{
		AccountID: 10,
		Kind:      "lesson_complete",
		RequestID: "7b1c8f0a-93a2-4a0e-b9a1-02f3f5a6c7d8",
		Payload: domain.AccountPatch{
			Balance:          intPtr(120),
			CompletedLessons: []string{"unit-3"},
		},
	}
	payload, err := json.Marshal(action.Payload)
	assert.NoError(t, err)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Enqueued",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), now)
				mock.ExpectQuery(`(?s)INSERT INTO offline_actions.+RETURNING id, created_at`).
					WithArgs(action.AccountID, action.Kind, action.RequestID, payload).
					WillReturnRows(rows)
			},
			expectErr: false,
		},
		{
			name: "Replayed request id returns the queued action",
			mockSetup: func() {
				mock.ExpectQuery(`(?s)INSERT INTO offline_actions.+ON CONFLICT \(request_id\) DO NOTHING.+RETURNING id, created_at`).
					WithArgs(action.AccountID, action.Kind, action.RequestID, payload).
					WillReturnError(pgx.ErrNoRows)
				rows := pgxmock.NewRows([]string{"id", "account_id", "kind", "request_id", "payload", "created_at"}).
					AddRow(int64(5), action.AccountID, action.Kind, action.RequestID, payload, now)
				mock.ExpectQuery(`(?s)SELECT.+FROM offline_actions.+WHERE request_id = \$1`).
					WithArgs(action.RequestID).
					WillReturnRows(rows)
			},
			expectErr: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(`(?s)INSERT INTO offline_actions.+RETURNING id, created_at`).
					WithArgs(action.AccountID, action.Kind, action.RequestID, payload).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Enqueue(context.Background(), action)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(5), result.ID)
				assert.Equal(t, now, result.CreatedAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_ListPending(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		accountID int
		mockSetup func()
		expectErr bool
		result    []domain.OfflineAction
	}{
		{
			name:      "Actions found in replay order",
			accountID: 10,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "account_id", "kind", "request_id", "payload", "created_at"}).
					AddRow(int64(1), 10, "lesson_complete", "req-1", []byte(`{"completed_lessons":["unit-1"]}`), now.Add(-time.Minute)).
					AddRow(int64(2), 10, "token_spend", "req-2", []byte(`{"tokens":3}`), now)
				mock.ExpectQuery(`(?s)SELECT.+FROM offline_actions.+ORDER BY created_at, id`).
					WithArgs(10).
					WillReturnRows(rows)
			},
			expectErr: false,
			result: []domain.OfflineAction{
				{
					ID: 1, AccountID: 10, Kind: "lesson_complete", RequestID: "req-1",
					Payload:   domain.AccountPatch{CompletedLessons: []string{"unit-1"}},
					CreatedAt: now.Add(-time.Minute),
				},
				{
					ID: 2, AccountID: 10, Kind: "token_spend", RequestID: "req-2",
					Payload:   domain.AccountPatch{Tokens: intPtr(3)},
					CreatedAt: now,
				},
			},
		},
		{
			name:      "Empty queue",
			accountID: 11,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "account_id", "kind", "request_id", "payload", "created_at"})
				mock.ExpectQuery(`(?s)SELECT.+FROM offline_actions.+ORDER BY created_at, id`).
					WithArgs(11).
					WillReturnRows(rows)
			},
			expectErr: false,
			result:    nil,
		},
		{
			name:      "Malformed payload",
			accountID: 10,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "account_id", "kind", "request_id", "payload", "created_at"}).
					AddRow(int64(1), 10, "lesson_complete", "req-1", []byte(`{not json`), now)
				mock.ExpectQuery(`(?s)SELECT.+FROM offline_actions.+ORDER BY created_at, id`).
					WithArgs(10).
					WillReturnRows(rows)
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.ListPending(context.Background(), tt.accountID)
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

func TestRepository_AccountIDsWithPending(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		limit     int
		mockSetup func()
		expectErr bool
		result    []int
	}{
		{
			name:  "Accounts found",
			limit: 100,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"account_id"}).AddRow(10).AddRow(11)
				mock.ExpectQuery(`(?s)SELECT DISTINCT account_id.+FROM offline_actions`).
					WithArgs(100).
					WillReturnRows(rows)
			},
			expectErr: false,
			result:    []int{10, 11},
		},
		{
			name:  "Database error",
			limit: 100,
			mockSetup: func() {
				mock.ExpectQuery(`(?s)SELECT DISTINCT account_id.+FROM offline_actions`).
					WithArgs(100).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.AccountIDsWithPending(context.Background(), tt.limit)
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

func TestRepository_Delete(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		id        int64
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Deleted",
			id:   5,
			mockSetup: func() {
				mock.ExpectExec(`DELETE FROM offline_actions WHERE id = \$1`).
					WithArgs(int64(5)).
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
			expectErr: false,
		},
		{
			name: "Database error",
			id:   5,
			mockSetup: func() {
				mock.ExpectExec(`DELETE FROM offline_actions WHERE id = \$1`).
					WithArgs(int64(5)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Delete(context.Background(), tt.id)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
