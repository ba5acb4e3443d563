package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/dkotenko/challenger/internal/domain"
	"go.uber.org/zap"
)

// Client is the posting surface of pkg/clients.HTTPClient.
type Client interface {
	Post(url, contentType string, body io.Reader) (int, error)
}

type Event struct {
	ChallengeID int    `json:"challenge_id"`
	Status      string `json:"status"`
	Completed   bool   `json:"completed"`
	YesVotes    int    `json:"yes_votes"`
	NoVotes     int    `json:"no_votes"`
}

// Notifier posts a small event to a configured webhook when a challenge
// finalizes. Strictly best-effort: delivery is external, clients re-fetch
// state anyway.
type Notifier struct {
	url    string
	client Client
}

func New(url string, client Client) *Notifier {
	return &Notifier{
		url:    url,
		client: client,
	}
}

func (n *Notifier) ChallengeFinalized(_ context.Context, ch *domain.Challenge) {
	event := Event{
		ChallengeID: ch.ID,
		Status:      ch.Status,
		Completed:   ch.IsCompleted,
		YesVotes:    ch.YesVotes,
		NoVotes:     ch.NoVotes,
	}
	body, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("can't marshal webhook event", zap.Error(err))
		return
	}

	status, err := n.client.Post(n.url, "application/json", bytes.NewReader(body))
	if err != nil {
		zap.L().Warn("webhook delivery failed", zap.Int("challengeID", ch.ID), zap.Error(err))
		return
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		zap.L().Warn("webhook rejected event", zap.Int("challengeID", ch.ID), zap.Int("status", status))
	}
}
