package ledgerservice

import (
	"context"

	"github.com/dkotenko/challenger/internal/domain"
	"go.uber.org/zap"
)

//go:generate mockgen -source=ledgerservice.go -destination=mock_ledgerservice.go -package=ledgerservice

type Repo interface {
	CreateEntry(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error)
	GetBalance(ctx context.Context, userID int) (int64, error)
	DebitIfSufficient(ctx context.Context, userID int, amount int64, entryType, description string, relatedID *int) error
	FindByUserID(ctx context.Context, userID int) ([]domain.LedgerEntry, error)
}

type Service struct {
	repo         Repo
	signupReward int64
}

func New(repo Repo, signupReward int64) *Service {
	return &Service{
		repo:         repo,
		signupReward: signupReward,
	}
}

func (s *Service) GetBalance(ctx context.Context, userID int) (int64, error) {
	balance, err := s.repo.GetBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Error(err))
		return 0, err
	}
	return balance, nil
}

func (s *Service) GetHistory(ctx context.Context, userID int) ([]domain.LedgerEntry, error) {
	entries, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch ledger entries", zap.Error(err))
		return nil, err
	}
	return entries, nil
}

// GrantSignupReward seeds a new account with starting points.
func (s *Service) GrantSignupReward(ctx context.Context, userID int) error {
	if s.signupReward <= 0 {
		return nil
	}
	_, err := s.repo.CreateEntry(ctx, &domain.LedgerEntry{
		UserID:      userID,
		Amount:      s.signupReward,
		Type:        domain.EntryTypeReward,
		Description: "signup reward",
	})
	if err != nil {
		zap.L().Error("failed to grant signup reward", zap.Error(err))
		return err
	}
	return nil
}

// DebitForBet moves the stake out of the bettor's balance, failing without
// any write when funds are short.
func (s *Service) DebitForBet(ctx context.Context, userID int, amount int64, challengeID int) error {
	err := s.repo.DebitIfSufficient(ctx, userID, amount, domain.EntryTypeBet, "challenge bet", &challengeID)
	if err != nil {
		if err != domain.ErrInsufficientFunds {
			zap.L().Error("failed to debit bet", zap.Error(err))
		}
		return err
	}
	return nil
}
