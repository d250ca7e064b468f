package dto

import "time"

type PlayerDTO struct {
	ID            int    `json:"id" example:"17"`
	Name          string `json:"name" example:"dana"`
	Score         int    `json:"score" example:"30"`
	ProgressIndex int    `json:"progress_index" example:"3"`
	Streak        int    `json:"streak" example:"3"`
}

// QuestionDTO deliberately omits the correct answer index.
type QuestionDTO struct {
	ID      string   `json:"id" example:"q-004"`
	Prompt  string   `json:"prompt" example:"Choose the correct article: '__ apple'."`
	Options []string `json:"options" example:"a,an,the,no article"`
}

type SessionResponseDTO struct {
	Code                 string        `json:"code" example:"K7KP2N"`
	HostID               int           `json:"host_id" example:"17"`
	Status               string        `json:"status" example:"in-progress"`
	Players              []PlayerDTO   `json:"players"`
	Questions            []QuestionDTO `json:"questions,omitempty"`
	CurrentQuestionIndex int           `json:"current_question_index" example:"2"`
	CreatedAt            time.Time     `json:"created_at" example:"2024-11-02T16:09:57+03:00"`
}

type JoinRequestDTO struct {
	Name string `json:"name" example:"dana"`
}

type SubmitAnswerRequestDTO struct {
	QuestionID  string `json:"question_id" example:"q-004"`
	AnswerIndex int    `json:"answer_index" example:"1"`
	ElapsedMs   int    `json:"elapsed_ms" example:"4200"`
}
