package dto

import "time"

type CreateChallengeRequestDTO struct {
	Title       string    `json:"title" example:"Run 5k every day this week"`
	Description string    `json:"description" example:"Strava screenshots as proof"`
	MinimumBet  int64     `json:"minimum_bet" example:"10"`
	Deadline    time.Time `json:"deadline" example:"2025-02-01T18:00:00+03:00"`
	GroupID     *int      `json:"group_id,omitempty" example:"7"`
	IsGlobal    bool      `json:"is_global" example:"false"`
}

type ChallengeResponseDTO struct {
	ID           int        `json:"id" example:"42"`
	CreatorID    int        `json:"creator_id" example:"1"`
	GroupID      *int       `json:"group_id,omitempty" example:"7"`
	IsGlobal     bool       `json:"is_global" example:"false"`
	Title        string     `json:"title" example:"Run 5k every day this week"`
	Description  string     `json:"description" example:"Strava screenshots as proof"`
	MinimumBet   int64      `json:"minimum_bet" example:"10"`
	Deadline     time.Time  `json:"deadline" example:"2025-02-01T18:00:00+03:00"`
	Status       string     `json:"status" example:"active"`
	Phase        string     `json:"phase" example:"betting"`
	ProofURL     *string    `json:"proof_url,omitempty"`
	VotingEndsAt *time.Time `json:"voting_ends_at,omitempty"`
	TotalYesBets int64      `json:"total_yes_bets" example:"120"`
	TotalNoBets  int64      `json:"total_no_bets" example:"80"`
	IsCompleted  bool       `json:"is_completed" example:"false"`
	YesVotes     int        `json:"yes_votes" example:"0"`
	NoVotes      int        `json:"no_votes" example:"0"`
	CreatedAt    time.Time  `json:"created_at"`
}

type SubmitProofRequestDTO struct {
	ImageURL    string `json:"image_url" example:"https://storage.example.com/proofs/42.jpg"`
	Description string `json:"description" example:"All seven runs logged"`
}

type CastVoteRequestDTO struct {
	Vote string `json:"vote" example:"yes"`
}
