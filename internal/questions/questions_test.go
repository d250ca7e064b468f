package questions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mlukyanov/quizpoints/internal/domain"
)

func TestStatic_Draw(t *testing.T) {
	tests := []struct {
		name      string
		pool      []domain.Question
		n         int
		expectErr bool
	}{
		{
			name: "Draw from default pool",
			pool: nil,
			n:    domain.QuestionsPerRound,
		},
		{
			name: "Draw whole custom pool",
			pool: []domain.Question{
				{ID: "q1"}, {ID: "q2"}, {ID: "q3"},
			},
			n: 3,
		},
		{
			name: "Pool too small",
			pool: []domain.Question{
				{ID: "q1"},
			},
			n:         2,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := NewStatic(tt.pool)

			drawn, err := provider.Draw(context.Background(), tt.n)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, drawn)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, drawn, tt.n)

			seen := make(map[string]struct{}, len(drawn))
			for _, q := range drawn {
				_, dup := seen[q.ID]
				assert.False(t, dup, "question %s drawn twice", q.ID)
				seen[q.ID] = struct{}{}
			}
		})
	}
}

func TestStatic_DrawDoesNotMutatePool(t *testing.T) {
	pool := []domain.Question{{ID: "q1"}, {ID: "q2"}, {ID: "q3"}, {ID: "q4"}}
	provider := NewStatic(pool)

	for i := 0; i < 20; i++ {
		_, err := provider.Draw(context.Background(), 2)
		assert.NoError(t, err)
	}
	assert.Equal(t, []domain.Question{{ID: "q1"}, {ID: "q2"}, {ID: "q3"}, {ID: "q4"}}, pool)
}
