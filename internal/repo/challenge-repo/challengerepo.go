package challengerepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dkotenko/challenger/internal/domain"
	"github.com/dkotenko/challenger/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

const challengeColumns = `id, creator_id, group_id, is_global, title, description, minimum_bet, deadline, status, proof_image_url, proof_description, proof_submitted_at, voting_ends_at, total_yes_bets, total_no_bets, is_completed, yes_votes, no_votes, created_at`

func scanChallenge(row pgx.Row) (*domain.Challenge, error) {
	var ch domain.Challenge
	err := row.Scan(
		&ch.ID, &ch.CreatorID, &ch.GroupID, &ch.IsGlobal, &ch.Title, &ch.Description,
		&ch.MinimumBet, &ch.Deadline, &ch.Status, &ch.ProofImageURL, &ch.ProofDescription,
		&ch.ProofSubmittedAt, &ch.VotingEndsAt, &ch.TotalYesBets, &ch.TotalNoBets,
		&ch.IsCompleted, &ch.YesVotes, &ch.NoVotes, &ch.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *Repository) Create(ctx context.Context, ch *domain.Challenge) (*domain.Challenge, error) {
	query := `
        INSERT INTO challenges (creator_id, group_id, is_global, title, description, minimum_bet, deadline, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		ch.CreatorID, ch.GroupID, ch.IsGlobal, ch.Title, ch.Description,
		ch.MinimumBet, ch.Deadline, domain.ActiveStatus,
	).Scan(&ch.ID, &ch.CreatedAt)
	if err != nil {
		zap.L().Error("can't save challenge", zap.Error(err))
		return nil, err
	}
	ch.Status = domain.ActiveStatus
	return ch, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Challenge, error) {
	query := `
        SELECT ` + challengeColumns + `
        FROM challenges
        WHERE id = $1
    `
	ch, err := scanChallenge(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find challenge", zap.Error(err))
		return nil, err
	}
	return ch, nil
}

// List returns group challenges when groupID is set, global ones otherwise.
func (r *Repository) List(ctx context.Context, groupID *int) ([]domain.Challenge, error) {
	query := `
        SELECT ` + challengeColumns + `
        FROM challenges
        WHERE is_global = TRUE
        ORDER BY created_at DESC
    `
	args := []any{}
	if groupID != nil {
		query = `
        SELECT ` + challengeColumns + `
        FROM challenges
        WHERE group_id = $1
        ORDER BY created_at DESC
    `
		args = append(args, *groupID)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get challenges", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var challenges []domain.Challenge
	for rows.Next() {
		ch, err := scanChallenge(rows)
		if err != nil {
			zap.L().Error("can't scan challenge row", zap.Error(err))
			return nil, err
		}
		challenges = append(challenges, *ch)
	}
	return challenges, nil
}

// AddBetTotal atomically adds amount to the side total. The WHERE clause
// re-checks that betting is still open, so a bet racing the deadline loses.
func (r *Repository) AddBetTotal(ctx context.Context, challengeID int, betType string, amount int64) (bool, error) {
	column := "total_no_bets"
	if betType == domain.BetTypeYes {
		column = "total_yes_bets"
	}
	query := `
        UPDATE challenges
        SET ` + column + ` = ` + column + ` + $1
        WHERE id = $2 AND status = 'active' AND deadline > now()
    `
	var updated bool
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		tag, err := r.db.Exec(ctx, query, amount, challengeID)
		if err != nil {
			zap.L().Error("can't increment bet total", zap.Error(err))
			return err
		}
		updated = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return updated, nil
}

// SetProof records the proof and opens voting. Proof is write-once: the
// update only applies while the challenge is active with no proof stored.
func (r *Repository) SetProof(ctx context.Context, challengeID int, imageURL, description string, submittedAt, votingEndsAt time.Time) (bool, error) {
	query := `
        UPDATE challenges
        SET status = 'voting', proof_image_url = $2, proof_description = $3, proof_submitted_at = $4, voting_ends_at = $5
        WHERE id = $1 AND status = 'active' AND proof_image_url IS NULL
    `
	var updated bool
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		tag, err := r.db.Exec(ctx, query, challengeID, imageURL, description, submittedAt, votingEndsAt)
		if err != nil {
			zap.L().Error("can't set proof", zap.Error(err))
			return err
		}
		updated = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return updated, nil
}

// CompleteIf transitions the challenge to completed only if it still has the
// expected status. Exactly one of several racing finalizers gets true back.
func (r *Repository) CompleteIf(ctx context.Context, challengeID int, fromStatus string, isCompleted bool, yesVotes, noVotes int) (bool, error) {
	query := `
        UPDATE challenges
        SET status = 'completed', is_completed = $3, yes_votes = $4, no_votes = $5
        WHERE id = $1 AND status = $2
    `
	var updated bool
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		tag, err := r.db.Exec(ctx, query, challengeID, fromStatus, isCompleted, yesVotes, noVotes)
		if err != nil {
			zap.L().Error("can't complete challenge", zap.Error(err))
			return err
		}
		updated = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return updated, nil
}

// FindNeedingReconcile picks up challenges whose time-based transition was
// missed: voting that has ended, or active ones whose proof window elapsed.
func (r *Repository) FindNeedingReconcile(ctx context.Context, now time.Time, proofWindow time.Duration, limit uint32) ([]domain.Challenge, error) {
	query := `
        SELECT ` + challengeColumns + `
        FROM challenges
        WHERE (status = 'voting' AND voting_ends_at <= $1)
           OR (status = 'active' AND proof_image_url IS NULL AND deadline <= $2)
        ORDER BY deadline ASC
        LIMIT $3
    `
	rows, err := r.db.Query(ctx, query, now, now.Add(-proofWindow), int(limit))
	if err != nil {
		zap.L().Error("can't get challenges for reconcile", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var challenges []domain.Challenge
	for rows.Next() {
		ch, err := scanChallenge(rows)
		if err != nil {
			zap.L().Error("can't scan challenge row for reconcile", zap.Error(err))
			return nil, err
		}
		challenges = append(challenges, *ch)
	}
	return challenges, nil
}
