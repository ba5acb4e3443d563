package dto

import "time"

type PlaceBetRequestDTO struct {
	BetType string `json:"bet_type" example:"yes"`
	Amount  int64  `json:"amount" example:"25"`
}

type BetResponseDTO struct {
	ID          int       `json:"id" example:"101"`
	ChallengeID int       `json:"challenge_id" example:"42"`
	BetType     string    `json:"bet_type" example:"yes"`
	Amount      int64     `json:"amount" example:"25"`
	Payout      *int64    `json:"payout,omitempty" example:"50"`
	CreatedAt   time.Time `json:"created_at"`
}
