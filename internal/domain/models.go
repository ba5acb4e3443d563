package domain

import "time"

type User struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

const (
	// ActiveStatus челлендж принимает ставки до дедлайна;
	ActiveStatus string = "active"
	// VotingStatus пруф отправлен, участники голосуют;
	VotingStatus string = "voting"
	// CompletedStatus терминальный статус, вердикт зафиксирован.
	CompletedStatus string = "completed"
)

const (
	BetTypeYes string = "yes"
	BetTypeNo  string = "no"
)

type Challenge struct {
	ID               int        `db:"id"`
	CreatorID        int        `db:"creator_id"`
	GroupID          *int       `db:"group_id"`
	IsGlobal         bool       `db:"is_global"`
	Title            string     `db:"title"`
	Description      string     `db:"description"`
	MinimumBet       int64      `db:"minimum_bet"`
	Deadline         time.Time  `db:"deadline"`
	Status           string     `db:"status"`
	ProofImageURL    *string    `db:"proof_image_url"`
	ProofDescription *string    `db:"proof_description"`
	ProofSubmittedAt *time.Time `db:"proof_submitted_at"`
	VotingEndsAt     *time.Time `db:"voting_ends_at"`
	TotalYesBets     int64      `db:"total_yes_bets"`
	TotalNoBets      int64      `db:"total_no_bets"`
	IsCompleted      bool       `db:"is_completed"`
	YesVotes         int        `db:"yes_votes"`
	NoVotes          int        `db:"no_votes"`
	CreatedAt        time.Time  `db:"created_at"`
}

type Bet struct {
	ID          int       `db:"id"`
	UserID      int       `db:"user_id"`
	ChallengeID int       `db:"challenge_id"`
	BetType     string    `db:"bet_type"`
	Amount      int64     `db:"amount"`
	Payout      *int64    `db:"payout"`
	CreatedAt   time.Time `db:"created_at"`
}

type Vote struct {
	ChallengeID int       `db:"challenge_id"`
	UserID      int       `db:"user_id"`
	Vote        string    `db:"vote"`
	UpdatedAt   time.Time `db:"updated_at"`
}

const (
	EntryTypeReward   string = "reward"
	EntryTypeBet      string = "bet"
	EntryTypePayout   string = "payout"
	EntryTypePenalty  string = "penalty"
	EntryTypePurchase string = "purchase"
)

type LedgerEntry struct {
	ID          int       `db:"id"`
	UserID      int       `db:"user_id"`
	Amount      int64     `db:"amount"`
	Type        string    `db:"type"`
	Description string    `db:"description"`
	RelatedID   *int      `db:"related_id"`
	CreatedAt   time.Time `db:"created_at"`
}
