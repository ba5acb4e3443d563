package voterepo

import (
	"context"

	"github.com/dkotenko/challenger/internal/domain"
	"github.com/dkotenko/challenger/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Upsert records the vote; revoting overwrites, last write wins.
func (r *Repository) Upsert(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (challenge_id, user_id, vote, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (challenge_id, user_id)
		DO UPDATE SET vote = EXCLUDED.vote, updated_at = now()
	`
	_, err := r.db.Exec(ctx, query, vote.ChallengeID, vote.UserID, vote.Vote)
	if err != nil {
		zap.L().Error("can't save vote", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) Tally(ctx context.Context, challengeID int) (yes, no int, err error) {
	query := `
        SELECT
            COUNT(*) FILTER (WHERE vote = 'yes'),
            COUNT(*) FILTER (WHERE vote = 'no')
        FROM votes
        WHERE challenge_id = $1
    `
	err = r.db.QueryRow(ctx, query, challengeID).Scan(&yes, &no)
	if err != nil {
		zap.L().Error("can't tally votes", zap.Error(err))
		return 0, 0, err
	}
	return yes, no, nil
}
