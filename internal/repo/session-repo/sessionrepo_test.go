package sessionrepo

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/mlukyanov/quizpoints/internal/domain"
	"github.com/mlukyanov/quizpoints/internal/rdb"
)

func NewMock(t *testing.T) (*Repository, *rdb.MockClient) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	client := rdb.NewMockClient(ctrl)
	return New(client), client
}

func fixtureSession() *domain.GameSession {
	return &domain.GameSession{
		Code:   "ABC234",
		HostID: 1,
		Status: domain.StatusWaiting,
		Players: []domain.Player{
			{ID: 1, Name: "host"},
		},
		CreatedAt: time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
	}
}

func TestRepository_Get(t *testing.T) {
	session := fixtureSession()
	data, err := json.Marshal(session)
	assert.NoError(t, err)

	tests := []struct {
		name      string
		mockSetup func(client *rdb.MockClient)
		expectErr bool
		result    *domain.GameSession
	}{
		{
			name: "Session exists",
			mockSetup: func(client *rdb.MockClient) {
				client.EXPECT().
					Get(gomock.Any(), "session:ABC234").
					Return(redis.NewStringResult(string(data), nil))
			},
			expectErr: false,
			result:    session,
		},
		{
			name: "Session does not exist",
			mockSetup: func(client *rdb.MockClient) {
				client.EXPECT().
					Get(gomock.Any(), "session:ABC234").
					Return(redis.NewStringResult("", redis.Nil))
			},
			expectErr: false,
			result:    nil,
		},
		{
			name: "Redis error",
			mockSetup: func(client *rdb.MockClient) {
				client.EXPECT().
					Get(gomock.Any(), "session:ABC234").
					Return(redis.NewStringResult("", errors.New("redis error")))
			},
			expectErr: true,
			result:    nil,
		},
		{
			name: "Malformed payload",
			mockSetup: func(client *rdb.MockClient) {
				client.EXPECT().
					Get(gomock.Any(), "session:ABC234").
					Return(redis.NewStringResult("{not json", nil))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, client := NewMock(t)
			tt.mockSetup(client)

			result, err := repo.Get(context.Background(), "ABC234")
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_Save(t *testing.T) {
	session := fixtureSession()
	data, err := json.Marshal(session)
	assert.NoError(t, err)

	tests := []struct {
		name      string
		mockSetup func(client *rdb.MockClient)
		expectErr bool
	}{
		{
			name: "Saved with TTL",
			mockSetup: func(client *rdb.MockClient) {
				client.EXPECT().
					Set(gomock.Any(), "session:ABC234", data, sessionTTL).
					Return(redis.NewStatusResult("OK", nil))
			},
			expectErr: false,
		},
		{
			name: "Redis error",
			mockSetup: func(client *rdb.MockClient) {
				client.EXPECT().
					Set(gomock.Any(), "session:ABC234", data, sessionTTL).
					Return(redis.NewStatusResult("", errors.New("redis error")))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, client := NewMock(t)
			tt.mockSetup(client)

			err := repo.Save(context.Background(), session)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_Exists(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(client *rdb.MockClient)
		expectErr bool
		result    bool
	}{
		{
			name: "Key present",
			mockSetup: func(client *rdb.MockClient) {
				client.EXPECT().
					Exists(gomock.Any(), "session:ABC234").
					Return(redis.NewIntResult(1, nil))
			},
			result: true,
		},
		{
			name: "Key absent",
			mockSetup: func(client *rdb.MockClient) {
				client.EXPECT().
					Exists(gomock.Any(), "session:ABC234").
					Return(redis.NewIntResult(0, nil))
			},
			result: false,
		},
		{
			name: "Redis error",
			mockSetup: func(client *rdb.MockClient) {
				client.EXPECT().
					Exists(gomock.Any(), "session:ABC234").
					Return(redis.NewIntResult(0, errors.New("redis error")))
			},
			expectErr: true,
			result:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, client := NewMock(t)
			tt.mockSetup(client)

			ok, err := repo.Exists(context.Background(), "ABC234")
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, ok)
		})
	}
}

func TestRepository_Delete(t *testing.T) {
	repo, client := NewMock(t)

	client.EXPECT().
		Del(gomock.Any(), "session:ABC234").
		Return(redis.NewIntResult(1, nil))

	assert.NoError(t, repo.Delete(context.Background(), "ABC234"))
}

func TestRepository_Mutate(t *testing.T) {
	session := fixtureSession()
	data, err := json.Marshal(session)
	assert.NoError(t, err)

	expectLock := func(client *rdb.MockClient) {
		client.EXPECT().
			SetNX(gomock.Any(), "session:lock:ABC234", gomock.Any(), lockTTL).
			Return(redis.NewBoolResult(true, nil))
		client.EXPECT().
			Eval(gomock.Any(), gomock.Any(), []string{"session:lock:ABC234"}, gomock.Any()).
			Return(redis.NewCmdResult(int64(1), nil))
	}

	tests := []struct {
		name      string
		fn        func(*domain.GameSession) error
		mockSetup func(client *rdb.MockClient)
		expectErr bool
		result    *domain.GameSession
	}{
		{
			name: "Mutation written back under lock",
			fn: func(s *domain.GameSession) error {
				s.Players = append(s.Players, domain.Player{ID: 2, Name: "guest"})
				return nil
			},
			mockSetup: func(client *rdb.MockClient) {
				expectLock(client)
				client.EXPECT().
					Get(gomock.Any(), "session:ABC234").
					Return(redis.NewStringResult(string(data), nil))
				client.EXPECT().
					Set(gomock.Any(), "session:ABC234", gomock.Any(), sessionTTL).
					Return(redis.NewStatusResult("OK", nil))
			},
			expectErr: false,
			result: &domain.GameSession{
				Code:   "ABC234",
				HostID: 1,
				Status: domain.StatusWaiting,
				Players: []domain.Player{
					{ID: 1, Name: "host"},
					{ID: 2, Name: "guest"},
				},
				CreatedAt: session.CreatedAt,
			},
		},
		{
			name: "Session missing",
			fn: func(s *domain.GameSession) error {
				t.Fatal("fn must not run without a session")
				return nil
			},
			mockSetup: func(client *rdb.MockClient) {
				expectLock(client)
				client.EXPECT().
					Get(gomock.Any(), "session:ABC234").
					Return(redis.NewStringResult("", redis.Nil))
			},
			expectErr: false,
			result:    nil,
		},
		{
			name: "Mutation error aborts the write",
			fn: func(s *domain.GameSession) error {
				return errors.New("rejected")
			},
			mockSetup: func(client *rdb.MockClient) {
				expectLock(client)
				client.EXPECT().
					Get(gomock.Any(), "session:ABC234").
					Return(redis.NewStringResult(string(data), nil))
			},
			expectErr: true,
			result:    nil,
		},
		{
			name: "Lock not acquired",
			fn: func(s *domain.GameSession) error {
				return nil
			},
			mockSetup: func(client *rdb.MockClient) {
				client.EXPECT().
					SetNX(gomock.Any(), "session:lock:ABC234", gomock.Any(), lockTTL).
					Return(redis.NewBoolResult(false, nil)).
					Times(lockMaxRetries)
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, client := NewMock(t)
			tt.mockSetup(client)

			result, err := repo.Mutate(context.Background(), "ABC234", tt.fn)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
		})
	}
}
