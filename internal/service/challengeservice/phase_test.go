package challengeservice

import (
	"testing"
	"time"

	"github.com/dkotenko/challenger/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestChallengePhase(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	proofWindow := 24 * time.Hour
	proofURL := "https://img.example/proof.jpg"

	tests := []struct {
		name      string
		challenge *domain.Challenge
		expected  Phase
	}{
		{
			name:      "Active before deadline is betting",
			challenge: &domain.Challenge{Status: domain.ActiveStatus, Deadline: now.Add(time.Hour)},
			expected:  PhaseBetting,
		},
		{
			name:      "Active just past deadline is proof window",
			challenge: &domain.Challenge{Status: domain.ActiveStatus, Deadline: now.Add(-time.Hour)},
			expected:  PhaseProofWindow,
		},
		{
			name:      "Active past deadline plus proof window is expired",
			challenge: &domain.Challenge{Status: domain.ActiveStatus, Deadline: now.Add(-25 * time.Hour)},
			expected:  PhaseExpired,
		},
		{
			name:      "Exactly at deadline the betting window is closed",
			challenge: &domain.Challenge{Status: domain.ActiveStatus, Deadline: now},
			expected:  PhaseProofWindow,
		},
		{
			name:      "Voting status wins over clock",
			challenge: &domain.Challenge{Status: domain.VotingStatus, Deadline: now.Add(-48 * time.Hour), ProofImageURL: &proofURL},
			expected:  PhaseVoting,
		},
		{
			name:      "Completed is terminal",
			challenge: &domain.Challenge{Status: domain.CompletedStatus, Deadline: now.Add(time.Hour)},
			expected:  PhaseCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ChallengePhase(tt.challenge, now, proofWindow))
		})
	}
}
