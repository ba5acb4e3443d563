package challengeservice

import (
	"context"
	"errors"
	"time"

	"github.com/dkotenko/challenger/internal/config"
	"github.com/dkotenko/challenger/internal/domain"
	"github.com/dkotenko/challenger/internal/pg"
	"go.uber.org/zap"
)

//go:generate mockgen -source=challengeservice.go -destination=mock_challengeservice.go -package=challengeservice

type ChallengeRepo interface {
	Create(ctx context.Context, ch *domain.Challenge) (*domain.Challenge, error)
	FindByID(ctx context.Context, id int) (*domain.Challenge, error)
	List(ctx context.Context, groupID *int) ([]domain.Challenge, error)
	AddBetTotal(ctx context.Context, challengeID int, betType string, amount int64) (bool, error)
	SetProof(ctx context.Context, challengeID int, imageURL, description string, submittedAt, votingEndsAt time.Time) (bool, error)
	CompleteIf(ctx context.Context, challengeID int, fromStatus string, isCompleted bool, yesVotes, noVotes int) (bool, error)
	FindNeedingReconcile(ctx context.Context, now time.Time, proofWindow time.Duration, limit uint32) ([]domain.Challenge, error)
}

type BetRepo interface {
	Create(ctx context.Context, bet *domain.Bet) (*domain.Bet, error)
	FindByUserAndChallenge(ctx context.Context, userID, challengeID int) (*domain.Bet, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.Bet, error)
}

type VoteRepo interface {
	Upsert(ctx context.Context, vote *domain.Vote) error
	Tally(ctx context.Context, challengeID int) (yes, no int, err error)
}

// Ledger debits the bettor's stake; the debit joins the place-bet
// transaction through the context.
type Ledger interface {
	DebitForBet(ctx context.Context, userID int, amount int64, challengeID int) error
}

// Settlement distributes or refunds the pool once a verdict is fixed.
type Settlement interface {
	Settle(ctx context.Context, ch *domain.Challenge, completed bool) error
	Void(ctx context.Context, ch *domain.Challenge) error
}

// Notifier fires after a challenge reaches its terminal state. Best effort,
// may be nil.
type Notifier interface {
	ChallengeFinalized(ctx context.Context, ch *domain.Challenge)
}

var (
	ErrInvalidChallenge = errors.New("invalid challenge parameters")
	ErrInvalidBetType   = errors.New("bet type must be yes or no")
	ErrInvalidVote      = errors.New("vote must be yes or no")
)

type Service struct {
	challengeRepo ChallengeRepo
	betRepo       BetRepo
	voteRepo      VoteRepo
	ledger        Ledger
	settlement    Settlement
	notifier      Notifier
	txManager     pg.TXManager

	proofWindow  time.Duration
	votingWindow time.Duration
	minBetGroup  int64
	minBetGlobal int64
}

func New(challengeRepo ChallengeRepo, betRepo BetRepo, voteRepo VoteRepo, ledger Ledger, settlement Settlement, notifier Notifier, txManager pg.TXManager, cfg *config.Config) *Service {
	return &Service{
		challengeRepo: challengeRepo,
		betRepo:       betRepo,
		voteRepo:      voteRepo,
		ledger:        ledger,
		settlement:    settlement,
		notifier:      notifier,
		txManager:     txManager,
		proofWindow:   cfg.ProofWindow(),
		votingWindow:  cfg.VotingWindow(),
		minBetGroup:   cfg.MinBetGroup,
		minBetGlobal:  cfg.MinBetGlobal,
	}
}

type CreateChallengeInput struct {
	Title       string
	Description string
	MinimumBet  int64
	Deadline    time.Time
	GroupID     *int
	IsGlobal    bool
}

func (s *Service) CreateChallenge(ctx context.Context, creatorID int, in CreateChallengeInput) (*domain.Challenge, error) {
	if in.Title == "" || !in.Deadline.After(time.Now()) {
		return nil, ErrInvalidChallenge
	}
	if (in.GroupID == nil) == !in.IsGlobal {
		return nil, ErrInvalidChallenge
	}
	floor := s.minBetGroup
	if in.IsGlobal {
		floor = s.minBetGlobal
	}
	if in.MinimumBet < floor {
		return nil, domain.ErrBelowMinimum
	}

	ch := &domain.Challenge{
		CreatorID:   creatorID,
		GroupID:     in.GroupID,
		IsGlobal:    in.IsGlobal,
		Title:       in.Title,
		Description: in.Description,
		MinimumBet:  in.MinimumBet,
		Deadline:    in.Deadline,
	}
	created, err := s.challengeRepo.Create(ctx, ch)
	if err != nil {
		zap.L().Error("can't create challenge", zap.Error(err))
		return nil, err
	}
	zap.L().Info("challenge created", zap.Int("challengeID", created.ID), zap.Int("creatorID", creatorID))
	return created, nil
}

// PlaceBet debits the stake, stores the bet and bumps the side total in a
// single transaction: either all three commit or none. The total increment's
// own status/deadline condition re-checks the phase at commit time, so a bet
// racing the deadline or a concurrent finalize rolls back whole.
func (s *Service) PlaceBet(ctx context.Context, userID, challengeID int, betType string, amount int64) (*domain.Bet, error) {
	if betType != domain.BetTypeYes && betType != domain.BetTypeNo {
		return nil, ErrInvalidBetType
	}

	var bet *domain.Bet
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		ch, err := s.challengeRepo.FindByID(ctx, challengeID)
		if err != nil {
			return err
		}
		if ch == nil {
			return domain.ErrChallengeNotFound
		}
		if ChallengePhase(ch, time.Now(), s.proofWindow) != PhaseBetting {
			return domain.ErrWrongPhase
		}
		if amount < ch.MinimumBet {
			return domain.ErrBelowMinimum
		}

		if err := s.ledger.DebitForBet(ctx, userID, amount, challengeID); err != nil {
			return err
		}

		bet, err = s.betRepo.Create(ctx, &domain.Bet{
			UserID:      userID,
			ChallengeID: challengeID,
			BetType:     betType,
			Amount:      amount,
		})
		if err != nil {
			return err
		}

		ok, err := s.challengeRepo.AddBetTotal(ctx, challengeID, betType, amount)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrWrongPhase
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("bet placed",
		zap.Int("challengeID", challengeID),
		zap.Int("userID", userID),
		zap.String("betType", betType),
		zap.Int64("amount", amount),
	)
	return bet, nil
}

// SubmitProof is creator-only and allowed only inside the proof window. The
// conditional update makes proof write-once even under concurrent submits.
func (s *Service) SubmitProof(ctx context.Context, userID, challengeID int, imageURL, description string) (*domain.Challenge, error) {
	ch, err := s.challengeRepo.FindByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, domain.ErrChallengeNotFound
	}
	if ch.CreatorID != userID {
		return nil, domain.ErrNotCreator
	}
	now := time.Now()
	if ChallengePhase(ch, now, s.proofWindow) != PhaseProofWindow {
		return nil, domain.ErrWrongPhase
	}

	votingEndsAt := now.Add(s.votingWindow)
	ok, err := s.challengeRepo.SetProof(ctx, challengeID, imageURL, description, now, votingEndsAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrWrongPhase
	}

	ch.Status = domain.VotingStatus
	ch.ProofImageURL = &imageURL
	ch.ProofDescription = &description
	ch.ProofSubmittedAt = &now
	ch.VotingEndsAt = &votingEndsAt
	zap.L().Info("proof submitted, voting opened", zap.Int("challengeID", challengeID))
	return ch, nil
}

// CastVote upserts the caller's vote. Only bettors other than the creator
// may vote, and only while the voting window is open.
func (s *Service) CastVote(ctx context.Context, userID, challengeID int, choice string) error {
	if choice != domain.BetTypeYes && choice != domain.BetTypeNo {
		return ErrInvalidVote
	}

	ch, err := s.challengeRepo.FindByID(ctx, challengeID)
	if err != nil {
		return err
	}
	if ch == nil {
		return domain.ErrChallengeNotFound
	}
	if ch.Status != domain.VotingStatus || ch.VotingEndsAt == nil || !time.Now().Before(*ch.VotingEndsAt) {
		return domain.ErrWrongPhase
	}
	if ch.CreatorID == userID {
		return domain.ErrNotEligible
	}

	bet, err := s.betRepo.FindByUserAndChallenge(ctx, userID, challengeID)
	if err != nil {
		return err
	}
	if bet == nil {
		return domain.ErrNotEligible
	}

	return s.voteRepo.Upsert(ctx, &domain.Vote{
		ChallengeID: challengeID,
		UserID:      userID,
		Vote:        choice,
	})
}

// Finalize drives the challenge to completed and settles the pool. The
// conditional status update elects exactly one finalizer among concurrent
// callers; the rest no-op. A settlement failure is reported but never undoes
// the terminal transition.
func (s *Service) Finalize(ctx context.Context, ch *domain.Challenge) error {
	now := time.Now()
	switch ch.Status {
	case domain.CompletedStatus:
		return nil

	case domain.VotingStatus:
		if ch.VotingEndsAt == nil || now.Before(*ch.VotingEndsAt) {
			return domain.ErrWrongPhase
		}
		yes, no, err := s.voteRepo.Tally(ctx, ch.ID)
		if err != nil {
			return err
		}
		// tie counts as failure
		completed := yes > no
		won, err := s.challengeRepo.CompleteIf(ctx, ch.ID, domain.VotingStatus, completed, yes, no)
		if err != nil {
			return err
		}
		if !won {
			return nil
		}
		ch.Status = domain.CompletedStatus
		ch.IsCompleted = completed
		ch.YesVotes, ch.NoVotes = yes, no

		if err := s.settlement.Settle(ctx, ch, completed); err != nil {
			zap.L().Error("settlement failed, challenge stays completed",
				zap.Int("challengeID", ch.ID), zap.Error(err))
			s.notifyFinalized(ctx, ch)
			return err
		}
		s.notifyFinalized(ctx, ch)
		return nil

	case domain.ActiveStatus:
		if ChallengePhase(ch, now, s.proofWindow) != PhaseExpired {
			return domain.ErrWrongPhase
		}
		won, err := s.challengeRepo.CompleteIf(ctx, ch.ID, domain.ActiveStatus, false, 0, 0)
		if err != nil {
			return err
		}
		if !won {
			return nil
		}
		ch.Status = domain.CompletedStatus
		ch.IsCompleted = false

		// No proof was ever submitted, so no verdict exists: the pool is
		// voided and every stake refunded.
		if err := s.settlement.Void(ctx, ch); err != nil {
			zap.L().Error("void refund failed, challenge stays completed",
				zap.Int("challengeID", ch.ID), zap.Error(err))
			s.notifyFinalized(ctx, ch)
			return err
		}
		s.notifyFinalized(ctx, ch)
		return nil
	}
	return nil
}

func (s *Service) notifyFinalized(ctx context.Context, ch *domain.Challenge) {
	if s.notifier != nil {
		s.notifier.ChallengeFinalized(ctx, ch)
	}
}

// Reconcile drives one challenge through any time-based transition it
// missed. Safe to call redundantly: a challenge needing nothing is a no-op.
func (s *Service) Reconcile(ctx context.Context, challengeID int) error {
	ch, err := s.challengeRepo.FindByID(ctx, challengeID)
	if err != nil {
		return err
	}
	if ch == nil {
		return domain.ErrChallengeNotFound
	}

	now := time.Now()
	switch ChallengePhase(ch, now, s.proofWindow) {
	case PhaseVoting:
		if ch.VotingEndsAt != nil && !now.Before(*ch.VotingEndsAt) {
			return s.Finalize(ctx, ch)
		}
	case PhaseExpired:
		return s.Finalize(ctx, ch)
	}
	return nil
}

func (s *Service) ChallengesNeedingReconcile(ctx context.Context, limit uint32) ([]domain.Challenge, error) {
	return s.challengeRepo.FindNeedingReconcile(ctx, time.Now(), s.proofWindow, limit)
}

// ReconcileAll sweeps every stuck challenge it can find. Each row is
// processed independently; one failure never blocks the others.
func (s *Service) ReconcileAll(ctx context.Context, limit uint32) error {
	challenges, err := s.ChallengesNeedingReconcile(ctx, limit)
	if err != nil {
		return err
	}
	for _, ch := range challenges {
		if err := s.Finalize(ctx, &ch); err != nil {
			zap.L().Error("can't reconcile challenge", zap.Int("challengeID", ch.ID), zap.Error(err))
		}
	}
	return nil
}

// GetChallenge reconciles first so a read after a missed deadline already
// sees the terminal state.
func (s *Service) GetChallenge(ctx context.Context, challengeID int) (*domain.Challenge, error) {
	if err := s.Reconcile(ctx, challengeID); err != nil && !errors.Is(err, domain.ErrChallengeNotFound) {
		zap.L().Warn("reconcile before read failed", zap.Int("challengeID", challengeID), zap.Error(err))
	}
	ch, err := s.challengeRepo.FindByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, domain.ErrChallengeNotFound
	}
	return ch, nil
}

// ListChallenges sweeps before listing, the documented replacement for the
// scattered fix-stuck calls the mobile client used to make on every screen.
func (s *Service) ListChallenges(ctx context.Context, groupID *int, sweepLimit uint32) ([]domain.Challenge, error) {
	if err := s.ReconcileAll(ctx, sweepLimit); err != nil {
		zap.L().Warn("sweep before list failed", zap.Error(err))
	}
	return s.challengeRepo.List(ctx, groupID)
}

func (s *Service) GetUserBets(ctx context.Context, userID int) ([]domain.Bet, error) {
	return s.betRepo.FindByUserID(ctx, userID)
}

// Phase exposes the derived phase for the API layer.
func (s *Service) Phase(ch *domain.Challenge) Phase {
	return ChallengePhase(ch, time.Now(), s.proofWindow)
}
