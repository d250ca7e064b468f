package questions

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/mlukyanov/quizpoints/internal/domain"
)

// Provider hands out question subsets for a round. The real question bank
// lives in the curriculum service; Static is the built-in pool used until
// that integration lands.
type Provider interface {
	Draw(ctx context.Context, n int) ([]domain.Question, error)
}

type Static struct {
	pool []domain.Question
}

func NewStatic(pool []domain.Question) *Static {
	if pool == nil {
		pool = defaultPool
	}
	return &Static{pool: pool}
}

// Draw returns n distinct questions in random order. Drawing more than the
// pool holds is a caller bug.
func (s *Static) Draw(_ context.Context, n int) ([]domain.Question, error) {
	if n > len(s.pool) {
		return nil, fmt.Errorf("question pool has %d questions, need %d", len(s.pool), n)
	}
	picked := make([]domain.Question, len(s.pool))
	copy(picked, s.pool)
	rand.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked[:n], nil
}

var defaultPool = []domain.Question{
	{ID: "q-001", Prompt: "Which word means 'happy'?", Options: []string{"joyful", "tired", "angry", "late"}, CorrectIndex: 0},
	{ID: "q-002", Prompt: "Pick the synonym of 'fast'.", Options: []string{"slow", "quick", "heavy", "tall"}, CorrectIndex: 1},
	{ID: "q-003", Prompt: "Which is the opposite of 'begin'?", Options: []string{"start", "open", "finish", "enter"}, CorrectIndex: 2},
	{ID: "q-004", Prompt: "Choose the correct article: '__ apple'.", Options: []string{"a", "an", "the", "no article"}, CorrectIndex: 1},
	{ID: "q-005", Prompt: "Which word is a verb?", Options: []string{"table", "run", "blue", "slowly"}, CorrectIndex: 1},
	{ID: "q-006", Prompt: "Pick the plural of 'child'.", Options: []string{"childs", "childes", "children", "childen"}, CorrectIndex: 2},
	{ID: "q-007", Prompt: "Which word means 'big'?", Options: []string{"tiny", "large", "thin", "short"}, CorrectIndex: 1},
	{ID: "q-008", Prompt: "Choose the past tense of 'go'.", Options: []string{"goed", "gone", "went", "going"}, CorrectIndex: 2},
	{ID: "q-009", Prompt: "Which is a color?", Options: []string{"loud", "crimson", "sour", "rough"}, CorrectIndex: 1},
	{ID: "q-010", Prompt: "Pick the opposite of 'above'.", Options: []string{"below", "beside", "between", "behind"}, CorrectIndex: 0},
	{ID: "q-011", Prompt: "Which word means 'to look quickly'?", Options: []string{"stare", "glance", "gaze", "observe"}, CorrectIndex: 1},
	{ID: "q-012", Prompt: "Choose the comparative of 'good'.", Options: []string{"gooder", "more good", "better", "best"}, CorrectIndex: 2},
}
