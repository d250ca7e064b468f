package rdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestMutex_TryLock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := NewMockClient(ctrl)

	mu := NewMutex(client, "session:lock:ABC123", 5*time.Second)

	client.EXPECT().
		SetNX(gomock.Any(), "session:lock:ABC123", mu.token, 5*time.Second).
		Return(redis.NewBoolResult(true, nil))

	ok, err := mu.TryLock(context.Background())
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestMutex_Lock(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(client *MockClient, mu *Mutex)
		wantErr   error
	}{
		{
			name: "Acquired after contention",
			mockSetup: func(client *MockClient, mu *Mutex) {
				gomock.InOrder(
					client.EXPECT().
						SetNX(gomock.Any(), mu.key, mu.token, mu.expiration).
						Return(redis.NewBoolResult(false, nil)),
					client.EXPECT().
						SetNX(gomock.Any(), mu.key, mu.token, mu.expiration).
						Return(redis.NewBoolResult(true, nil)),
				)
			},
			wantErr: nil,
		},
		{
			name: "Retries exhausted",
			mockSetup: func(client *MockClient, mu *Mutex) {
				client.EXPECT().
					SetNX(gomock.Any(), mu.key, mu.token, mu.expiration).
					Return(redis.NewBoolResult(false, nil)).
					Times(3)
			},
			wantErr: ErrLockNotAcquired,
		},
		{
			name: "Redis error",
			mockSetup: func(client *MockClient, mu *Mutex) {
				client.EXPECT().
					SetNX(gomock.Any(), mu.key, mu.token, mu.expiration).
					Return(redis.NewBoolResult(false, errors.New("redis error")))
			},
			wantErr: errors.New("redis error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			client := NewMockClient(ctrl)
			mu := NewMutex(client, "session:lock:ABC123", 5*time.Second)
			tt.mockSetup(client, mu)

			err := mu.Lock(context.Background(), time.Millisecond, 3)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMutex_Unlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := NewMockClient(ctrl)

	mu := NewMutex(client, "session:lock:ABC123", 5*time.Second)

	client.EXPECT().
		Eval(gomock.Any(), unlockScript, []string{mu.key}, mu.token).
		Return(redis.NewCmdResult(int64(1), nil))

	assert.NoError(t, mu.Unlock(context.Background()))
}
