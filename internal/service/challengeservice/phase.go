package challengeservice

import (
	"time"

	"github.com/dkotenko/challenger/internal/domain"
)

// Phase is the derived position of a challenge in its lifecycle. Only
// {active, voting, completed} are stored; the proof window and expiry are
// functions of the clock, so they are computed, never persisted.
type Phase string

const (
	// PhaseBetting принимаются ставки;
	PhaseBetting Phase = "betting"
	// PhaseProofWindow дедлайн прошёл, создатель может отправить пруф;
	PhaseProofWindow Phase = "proof_window"
	// PhaseVoting участники голосуют за пруф;
	PhaseVoting Phase = "voting"
	// PhaseExpired окно пруфа истекло без пруфа, нужен реконсайл;
	PhaseExpired Phase = "expired"
	// PhaseCompleted терминальная фаза.
	PhaseCompleted Phase = "completed"
)

// ChallengePhase is the single source of truth for phase derivation. The
// state machine guards, the reconcile path and the API layer all go through
// it so wall-clock phases cannot desync between callers.
func ChallengePhase(ch *domain.Challenge, now time.Time, proofWindow time.Duration) Phase {
	switch {
	case ch.Status == domain.CompletedStatus:
		return PhaseCompleted
	case ch.Status == domain.VotingStatus:
		return PhaseVoting
	case now.Before(ch.Deadline):
		return PhaseBetting
	case ch.ProofImageURL == nil && now.Before(ch.Deadline.Add(proofWindow)):
		return PhaseProofWindow
	default:
		return PhaseExpired
	}
}
