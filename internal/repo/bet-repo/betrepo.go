package betrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dkotenko/challenger/internal/domain"
	"github.com/dkotenko/challenger/internal/pg"
	"go.uber.org/zap"
)

const uniqueViolationCode = "23505"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Create inserts the bet. The (user_id, challenge_id) unique index enforces
// one bet per user per challenge; a second insert fails, never overwrites.
func (r *Repository) Create(ctx context.Context, bet *domain.Bet) (*domain.Bet, error) {
	query := `
		INSERT INTO bets (user_id, challenge_id, bet_type, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, bet.UserID, bet.ChallengeID, bet.BetType, bet.Amount).Scan(&bet.ID, &bet.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, domain.ErrDuplicateBet
		}
		zap.L().Error("can't save bet", zap.Error(err))
		return nil, err
	}
	return bet, nil
}

func (r *Repository) FindByUserAndChallenge(ctx context.Context, userID, challengeID int) (*domain.Bet, error) {
	query := `
        SELECT id, user_id, challenge_id, bet_type, amount, payout, created_at
        FROM bets
        WHERE user_id = $1 AND challenge_id = $2
    `
	var bet domain.Bet
	err := r.db.QueryRow(ctx, query, userID, challengeID).Scan(
		&bet.ID, &bet.UserID, &bet.ChallengeID, &bet.BetType, &bet.Amount, &bet.Payout, &bet.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find bet", zap.Error(err))
		return nil, err
	}
	return &bet, nil
}

func (r *Repository) FindByChallengeID(ctx context.Context, challengeID int) ([]domain.Bet, error) {
	query := `
        SELECT id, user_id, challenge_id, bet_type, amount, payout, created_at
        FROM bets
        WHERE challenge_id = $1
        ORDER BY created_at ASC
    `
	return r.findAll(ctx, query, challengeID)
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Bet, error) {
	query := `
        SELECT id, user_id, challenge_id, bet_type, amount, payout, created_at
        FROM bets
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	return r.findAll(ctx, query, userID)
}

func (r *Repository) findAll(ctx context.Context, query string, arg any) ([]domain.Bet, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		zap.L().Error("can't get bets", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var bets []domain.Bet
	for rows.Next() {
		var bet domain.Bet
		err := rows.Scan(&bet.ID, &bet.UserID, &bet.ChallengeID, &bet.BetType, &bet.Amount, &bet.Payout, &bet.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan bet row", zap.Error(err))
			return nil, err
		}
		bets = append(bets, bet)
	}
	return bets, nil
}

// SetPayout annotates the bet with its settled payout, once.
func (r *Repository) SetPayout(ctx context.Context, betID int, payout int64) error {
	query := `
        UPDATE bets
        SET payout = $1
        WHERE id = $2 AND payout IS NULL
    `
	_, err := r.db.Exec(ctx, query, payout, betID)
	if err != nil {
		zap.L().Error("can't set bet payout", zap.Error(err))
		return err
	}
	return nil
}
