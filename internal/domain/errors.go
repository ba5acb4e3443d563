package domain

import (
	"errors"
	"fmt"
)

// Shared error kinds. They cross the repo/service boundary (the bet store
// detects duplicates, the ledger detects insufficient funds), so they live
// next to the models instead of a single service package.
var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrWrongPhase        = errors.New("operation not allowed in current challenge phase")
	ErrNotCreator        = errors.New("only the challenge creator may do this")
	ErrNotEligible       = errors.New("only bettors other than the creator may vote")
	ErrDuplicateBet      = errors.New("user already has a bet on this challenge")
	ErrBelowMinimum      = errors.New("bet amount is below the challenge minimum")
	ErrInsufficientFunds = errors.New("insufficient balance")
)

// SettlementPartialError reports how many ledger writes failed during a
// settlement run. The challenge is still completed; the failed payouts need
// manual reconciliation.
type SettlementPartialError struct {
	ChallengeID int
	Failed      int
}

func (e *SettlementPartialError) Error() string {
	return fmt.Sprintf("settlement of challenge %d incomplete: %d ledger writes failed", e.ChallengeID, e.Failed)
}
