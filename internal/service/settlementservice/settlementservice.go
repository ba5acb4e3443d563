package settlementservice

import (
	"context"
	"math"

	"github.com/dkotenko/challenger/internal/domain"
	"go.uber.org/zap"
)

//go:generate mockgen -source=settlementservice.go -destination=mock_settlementservice.go -package=settlementservice

type BetRepo interface {
	FindByChallengeID(ctx context.Context, challengeID int) ([]domain.Bet, error)
	SetPayout(ctx context.Context, betID int, payout int64) error
}

type LedgerRepo interface {
	CreateEntry(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error)
	HasPayoutForChallenge(ctx context.Context, challengeID int) (bool, error)
}

// Service implements the pari-mutuel payout. Winners get their stake back
// plus a pro-rata share of the losing pool, the creator takes a configured
// cut of the losing pool when they bet on the winning side, and one-sided
// pools are voided with full refunds.
type Service struct {
	betRepo    BetRepo
	ledgerRepo LedgerRepo
	bonusRate  float64
}

func New(betRepo BetRepo, ledgerRepo LedgerRepo, bonusRate float64) *Service {
	return &Service{
		betRepo:    betRepo,
		ledgerRepo: ledgerRepo,
		bonusRate:  bonusRate,
	}
}

// Settle distributes the pool for the given verdict. It runs at most once
// per challenge: an existing payout entry for the challenge makes it a no-op.
func (s *Service) Settle(ctx context.Context, ch *domain.Challenge, completed bool) error {
	settled, err := s.ledgerRepo.HasPayoutForChallenge(ctx, ch.ID)
	if err != nil {
		return err
	}
	if settled {
		zap.L().Info("challenge already settled, skipping", zap.Int("challengeID", ch.ID))
		return nil
	}

	bets, err := s.betRepo.FindByChallengeID(ctx, ch.ID)
	if err != nil {
		return err
	}

	winSide := domain.BetTypeNo
	if completed {
		winSide = domain.BetTypeYes
	}

	var winners, losers []domain.Bet
	var winTotal, loseTotal int64
	for _, bet := range bets {
		if bet.BetType == winSide {
			winners = append(winners, bet)
			winTotal += bet.Amount
		} else {
			losers = append(losers, bet)
			loseTotal += bet.Amount
		}
	}

	// A one-sided market has nothing to redistribute.
	if winTotal == 0 || loseTotal == 0 {
		return s.refundAll(ctx, ch, bets)
	}

	var bonus int64
	for _, bet := range winners {
		if bet.UserID == ch.CreatorID {
			bonus = int64(math.Floor(s.bonusRate * float64(loseTotal)))
			break
		}
	}
	pool := loseTotal - bonus

	failed := 0
	for _, bet := range winners {
		// floor(w + (w/W)*P) for integer w: the flooring residual stays
		// undistributed.
		payout := bet.Amount + bet.Amount*pool/winTotal
		if err := s.credit(ctx, bet.UserID, payout, "challenge payout", ch.ID); err != nil {
			failed++
			continue
		}
		if err := s.betRepo.SetPayout(ctx, bet.ID, payout); err != nil {
			failed++
		}
	}
	for _, bet := range losers {
		if err := s.betRepo.SetPayout(ctx, bet.ID, 0); err != nil {
			failed++
		}
	}

	if bonus > 0 {
		if err := s.credit(ctx, ch.CreatorID, bonus, "creator bonus", ch.ID); err != nil {
			failed++
		}
	}

	if failed > 0 {
		return &domain.SettlementPartialError{ChallengeID: ch.ID, Failed: failed}
	}
	zap.L().Info("challenge settled",
		zap.Int("challengeID", ch.ID),
		zap.Bool("completed", completed),
		zap.Int("winners", len(winners)),
		zap.Int64("pool", pool),
		zap.Int64("creatorBonus", bonus),
	)
	return nil
}

// Void refunds every stake regardless of sides. Used when no verdict was
// ever reached (proof window elapsed without proof).
func (s *Service) Void(ctx context.Context, ch *domain.Challenge) error {
	settled, err := s.ledgerRepo.HasPayoutForChallenge(ctx, ch.ID)
	if err != nil {
		return err
	}
	if settled {
		zap.L().Info("challenge already settled, skipping void", zap.Int("challengeID", ch.ID))
		return nil
	}

	bets, err := s.betRepo.FindByChallengeID(ctx, ch.ID)
	if err != nil {
		return err
	}
	return s.refundAll(ctx, ch, bets)
}

func (s *Service) refundAll(ctx context.Context, ch *domain.Challenge, bets []domain.Bet) error {
	failed := 0
	for _, bet := range bets {
		if err := s.credit(ctx, bet.UserID, bet.Amount, "bet refund", ch.ID); err != nil {
			failed++
			continue
		}
		if err := s.betRepo.SetPayout(ctx, bet.ID, bet.Amount); err != nil {
			failed++
		}
	}
	if failed > 0 {
		return &domain.SettlementPartialError{ChallengeID: ch.ID, Failed: failed}
	}
	zap.L().Info("challenge voided, stakes refunded", zap.Int("challengeID", ch.ID), zap.Int("bets", len(bets)))
	return nil
}

// credit writes one payout entry. Failures are logged and counted by the
// caller; one user's broken payout must not block the others.
func (s *Service) credit(ctx context.Context, userID int, amount int64, description string, challengeID int) error {
	_, err := s.ledgerRepo.CreateEntry(ctx, &domain.LedgerEntry{
		UserID:      userID,
		Amount:      amount,
		Type:        domain.EntryTypePayout,
		Description: description,
		RelatedID:   &challengeID,
	})
	if err != nil {
		zap.L().Error("can't credit payout",
			zap.Int("userID", userID),
			zap.Int("challengeID", challengeID),
			zap.Int64("amount", amount),
			zap.Error(err),
		)
	}
	return err
}
