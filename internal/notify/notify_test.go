package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/dkotenko/challenger/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	url         string
	contentType string
	body        []byte
	status      int
	err         error
	calls       int
}

func (f *fakeClient) Post(url, contentType string, body io.Reader) (int, error) {
	f.calls++
	f.url = url
	f.contentType = contentType
	f.body, _ = io.ReadAll(body)
	return f.status, f.err
}

func TestNotifier_ChallengeFinalized(t *testing.T) {
	ch := &domain.Challenge{
		ID:          42,
		Status:      domain.CompletedStatus,
		IsCompleted: true,
		YesVotes:    3,
		NoVotes:     1,
	}

	tests := []struct {
		name   string
		status int
		err    error
	}{
		{
			name:   "Delivered event carries the final state",
			status: http.StatusOK,
		},
		{
			name: "Delivery error is swallowed",
			err:  errors.New("connection refused"),
		},
		{
			name:   "Rejected event is swallowed",
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{status: tt.status, err: tt.err}
			notifier := New("http://localhost/hook", client)

			notifier.ChallengeFinalized(context.Background(), ch)

			assert.Equal(t, 1, client.calls)
			assert.Equal(t, "http://localhost/hook", client.url)
			assert.Equal(t, "application/json", client.contentType)

			var event Event
			require.NoError(t, json.Unmarshal(client.body, &event))
			assert.Equal(t, Event{
				ChallengeID: 42,
				Status:      domain.CompletedStatus,
				Completed:   true,
				YesVotes:    3,
				NoVotes:     1,
			}, event)
		})
	}
}
