package dto

import "time"

type AccountResponseDTO struct {
	UserID      int      `json:"user_id" example:"17"`
	Balance     int      `json:"balance" example:"340"`
	DailySent   int      `json:"daily_sent" example:"50"`
	GamesPlayed int      `json:"games_played" example:"12"`
	GamesWon    int      `json:"games_won" example:"4"`
	Tokens      int      `json:"tokens" example:"3"`
	Badges      []string `json:"badges" example:"first-game,first-win"`
	Themes      []string `json:"themes" example:"dark,forest"`
}

type TransactionResponseDTO struct {
	ID           string    `json:"id" example:"8dc9a860-5a65-4b0e-9cbe-aa4a3bbcbf34"`
	Kind         string    `json:"kind" example:"send"`
	Amount       int       `json:"amount" example:"25"`
	Description  string    `json:"description" example:"thanks for the help"`
	Counterparty int       `json:"counterparty,omitempty" example:"4"`
	CreatedAt    time.Time `json:"created_at" example:"2024-11-02T16:09:57+03:00"`
}

type CreditRequestDTO struct {
	Amount      int    `json:"amount" example:"50"`
	Description string `json:"description" example:"lesson completed"`
}

type DebitRequestDTO struct {
	Amount      int    `json:"amount" example:"30"`
	Description string `json:"description" example:"hint used"`
}

type TransferRequestDTO struct {
	RecipientID int    `json:"recipient_id" example:"4"`
	Amount      int    `json:"amount" example:"25"`
	Message     string `json:"message" example:"great match!"`
}

type RedeemEffectDTO struct {
	Badge  string `json:"badge,omitempty" example:"collector"`
	Theme  string `json:"theme,omitempty" example:"dark"`
	Tokens int    `json:"tokens,omitempty" example:"2"`
}

type RedeemRequestDTO struct {
	ItemID string          `json:"item_id" example:"theme-dark"`
	Cost   int             `json:"cost" example:"100"`
	Effect RedeemEffectDTO `json:"effect"`
}
