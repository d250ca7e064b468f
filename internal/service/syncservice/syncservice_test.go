package syncservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/mlukyanov/quizpoints/internal/domain"
)

func NewMock(t *testing.T) (*Service, *MockActionRepo, *MockAccountRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	actionRepo := NewMockActionRepo(ctrl)
	accountRepo := NewMockAccountRepo(ctrl)
	service := New(actionRepo, accountRepo)
	return service, actionRepo, accountRepo
}

func intPtr(v int) *int { return &v }

func TestEnqueue(t *testing.T) {
	patch := domain.AccountPatch{CompletedLessons: []string{"unit-3"}}

	tests := []struct {
		name          string
		requestID     string
		prepareMock   func(actionRepo *MockActionRepo, accountRepo *MockAccountRepo)
		expectedError error
	}{
		{
			name:      "Queued with client request id",
			requestID: "req-1",
			prepareMock: func(actionRepo *MockActionRepo, accountRepo *MockAccountRepo) {
				accountRepo.EXPECT().GetByUserID(gomock.Any(), 1).
					Return(&domain.Account{ID: 101, UserID: 1}, nil)
				actionRepo.EXPECT().Enqueue(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, action *domain.OfflineAction) (*domain.OfflineAction, error) {
						assert.Equal(t, 101, action.AccountID)
						assert.Equal(t, "req-1", action.RequestID)
						action.ID = 7
						return action, nil
					})
			},
		},
		{
			name:      "Missing request id gets a generated one",
			requestID: "",
			prepareMock: func(actionRepo *MockActionRepo, accountRepo *MockAccountRepo) {
				accountRepo.EXPECT().GetByUserID(gomock.Any(), 1).
					Return(&domain.Account{ID: 101, UserID: 1}, nil)
				actionRepo.EXPECT().Enqueue(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, action *domain.OfflineAction) (*domain.OfflineAction, error) {
						assert.NotEmpty(t, action.RequestID)
						return action, nil
					})
			},
		},
		{
			name:      "Account not found",
			requestID: "req-1",
			prepareMock: func(actionRepo *MockActionRepo, accountRepo *MockAccountRepo) {
				accountRepo.EXPECT().GetByUserID(gomock.Any(), 1).Return(nil, nil)
			},
			expectedError: ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, actionRepo, accountRepo := NewMock(t)
			tt.prepareMock(actionRepo, accountRepo)

			queued, err := service.Enqueue(context.Background(), 1, "lesson_complete", tt.requestID, patch)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, queued)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, queued)
			}
		})
	}
}

func TestDrainAndReconcile(t *testing.T) {
	actions := []domain.OfflineAction{
		{ID: 1, AccountID: 101, Kind: "lesson_complete", Payload: domain.AccountPatch{CompletedLessons: []string{"unit-1"}}},
		{ID: 2, AccountID: 101, Kind: "token_spend", Payload: domain.AccountPatch{Tokens: intPtr(3)}},
	}

	t.Run("Actions merged in order and deleted after the write", func(t *testing.T) {
		service, actionRepo, accountRepo := NewMock(t)

		acc := &domain.Account{ID: 101, Tokens: 5, CompletedLessons: []string{"unit-0"}, Version: 1}
		actionRepo.EXPECT().ListPending(gomock.Any(), 101).Return(actions, nil)

		var events []string
		accountRepo.EXPECT().GetByID(gomock.Any(), 101).Return(acc, nil).Times(2)
		accountRepo.EXPECT().Update(gomock.Any(), acc).
			DoAndReturn(func(_ context.Context, a *domain.Account) (*domain.Account, error) {
				events = append(events, "update")
				return a, nil
			}).Times(2)
		actionRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, id int64) error {
				events = append(events, "delete")
				return nil
			}).Times(2)

		drained, err := service.DrainAndReconcile(context.Background(), 101)
		assert.NoError(t, err)
		assert.Equal(t, 2, drained)
		assert.Equal(t, []string{"update", "delete", "update", "delete"}, events)
		assert.Equal(t, []string{"unit-0", "unit-1"}, acc.CompletedLessons)
		assert.Equal(t, 3, acc.Tokens)
	})

	t.Run("Replayed action merges idempotently", func(t *testing.T) {
		service, actionRepo, accountRepo := NewMock(t)

		// unit-1 already landed before the crash, the queued action survived
		acc := &domain.Account{ID: 101, CompletedLessons: []string{"unit-0", "unit-1"}, Version: 2}
		actionRepo.EXPECT().ListPending(gomock.Any(), 101).Return(actions[:1], nil)
		accountRepo.EXPECT().GetByID(gomock.Any(), 101).Return(acc, nil)
		accountRepo.EXPECT().Update(gomock.Any(), acc).Return(acc, nil)
		actionRepo.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)

		drained, err := service.DrainAndReconcile(context.Background(), 101)
		assert.NoError(t, err)
		assert.Equal(t, 1, drained)
		assert.Equal(t, []string{"unit-0", "unit-1"}, acc.CompletedLessons)
	})

	t.Run("Version conflict refetches and retries", func(t *testing.T) {
		service, actionRepo, accountRepo := NewMock(t)

		actionRepo.EXPECT().ListPending(gomock.Any(), 101).Return(actions[:1], nil)
		accountRepo.EXPECT().GetByID(gomock.Any(), 101).
			DoAndReturn(func(_ context.Context, id int) (*domain.Account, error) {
				return &domain.Account{ID: 101, Version: 1}, nil
			}).Times(2)
		gomock.InOrder(
			accountRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil, domain.ErrVersionConflict),
			accountRepo.EXPECT().Update(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, a *domain.Account) (*domain.Account, error) {
					return a, nil
				}),
		)
		actionRepo.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)

		drained, err := service.DrainAndReconcile(context.Background(), 101)
		assert.NoError(t, err)
		assert.Equal(t, 1, drained)
	})

	t.Run("Failed merge keeps the action queued", func(t *testing.T) {
		service, actionRepo, accountRepo := NewMock(t)

		actionRepo.EXPECT().ListPending(gomock.Any(), 101).Return(actions, nil)
		accountRepo.EXPECT().GetByID(gomock.Any(), 101).Return(nil, errors.New("db error"))

		drained, err := service.DrainAndReconcile(context.Background(), 101)
		assert.Error(t, err)
		assert.Equal(t, 0, drained)
	})

	t.Run("Empty queue", func(t *testing.T) {
		service, actionRepo, _ := NewMock(t)

		actionRepo.EXPECT().ListPending(gomock.Any(), 101).Return(nil, nil)

		drained, err := service.DrainAndReconcile(context.Background(), 101)
		assert.NoError(t, err)
		assert.Equal(t, 0, drained)
	})
}

func TestDrainForUser(t *testing.T) {
	service, actionRepo, accountRepo := NewMock(t)

	accountRepo.EXPECT().GetByUserID(gomock.Any(), 1).Return(&domain.Account{ID: 101, UserID: 1}, nil)
	actionRepo.EXPECT().ListPending(gomock.Any(), 101).Return(nil, nil)

	drained, err := service.DrainForUser(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 0, drained)
}

func TestAccountsWithPending(t *testing.T) {
	service, actionRepo, _ := NewMock(t)

	actionRepo.EXPECT().AccountIDsWithPending(gomock.Any(), 1000).Return([]int{101, 102}, nil)

	ids, err := service.AccountsWithPending(context.Background(), 1000)
	assert.NoError(t, err)
	assert.Equal(t, []int{101, 102}, ids)
}
