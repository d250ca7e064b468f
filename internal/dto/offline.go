package dto

type AccountPatchDTO struct {
	Balance          *int     `json:"balance,omitempty" example:"120"`
	Tokens           *int     `json:"tokens,omitempty" example:"3"`
	GamesPlayed      *int     `json:"games_played,omitempty" example:"7"`
	Badges           []string `json:"badges,omitempty" example:"early-bird"`
	UnlockedThemes   []string `json:"unlocked_themes,omitempty" example:"dark"`
	CompletedLessons []string `json:"completed_lessons,omitempty" example:"lesson-12"`
}

type OfflineActionDTO struct {
	Kind      string          `json:"kind" example:"redeem"`
	RequestID string          `json:"request_id" example:"8dc9a860-5a65-4b0e-9cbe-aa4a3bbcbf34"`
	Payload   AccountPatchDTO `json:"payload"`
}

type SyncRequestDTO struct {
	Actions []OfflineActionDTO `json:"actions"`
}

type SyncResponseDTO struct {
	Queued int `json:"queued" example:"2"`
}

type ReconcileResponseDTO struct {
	Drained int `json:"drained" example:"2"`
}
