package challengerepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/dkotenko/challenger/internal/domain"
	"github.com/dkotenko/challenger/internal/pg"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()
	defer ctrl.Finish()

	return repo, mockDB, mockTxManager
}

func expectTx(txManager *pg.MockTXManager) {
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func challengeRows(ch domain.Challenge) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "creator_id", "group_id", "is_global", "title", "description",
		"minimum_bet", "deadline", "status", "proof_image_url", "proof_description",
		"proof_submitted_at", "voting_ends_at", "total_yes_bets", "total_no_bets",
		"is_completed", "yes_votes", "no_votes", "created_at",
	}).AddRow(
		ch.ID, ch.CreatorID, ch.GroupID, ch.IsGlobal, ch.Title, ch.Description,
		ch.MinimumBet, ch.Deadline, ch.Status, ch.ProofImageURL, ch.ProofDescription,
		ch.ProofSubmittedAt, ch.VotingEndsAt, ch.TotalYesBets, ch.TotalNoBets,
		ch.IsCompleted, ch.YesVotes, ch.NoVotes, ch.CreatedAt,
	)
}

func TestRepository_Create(t *testing.T) {
	repo, mock, _ := NewMock(t)
	deadline := time.Now().Add(48 * time.Hour)
	createdAt := time.Now()

	tests := []struct {
		name      string
		challenge *domain.Challenge
		mockSetup func()
		expectErr bool
	}{
		{
			name:      "Challenge inserted as active",
			challenge: &domain.Challenge{CreatorID: 1, IsGlobal: true, Title: "run 5k", MinimumBet: 50, Deadline: deadline},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO challenges`)).
					WithArgs(1, (*int)(nil), true, "run 5k", "", int64(50), deadline, domain.ActiveStatus).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, createdAt))
			},
			expectErr: false,
		},
		{
			name:      "Database error",
			challenge: &domain.Challenge{CreatorID: 1, IsGlobal: true, Title: "run 5k", MinimumBet: 50, Deadline: deadline},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO challenges`)).
					WithArgs(1, (*int)(nil), true, "run 5k", "", int64(50), deadline, domain.ActiveStatus).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Create(context.Background(), tt.challenge)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, result.ID)
				assert.Equal(t, domain.ActiveStatus, result.Status)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock, _ := NewMock(t)
	challenge := domain.Challenge{
		ID: 1, CreatorID: 2, IsGlobal: true, Title: "run 5k", MinimumBet: 50,
		Deadline: time.Now().Add(time.Hour), Status: domain.ActiveStatus, CreatedAt: time.Now(),
	}

	tests := []struct {
		name      string
		id        int
		mockSetup func()
		expectErr bool
		result    *domain.Challenge
	}{
		{
			name: "Existing challenge returned",
			id:   1,
			mockSetup: func() {
				mock.ExpectQuery(`SELECT .+ FROM challenges`).
					WithArgs(1).
					WillReturnRows(challengeRows(challenge))
			},
			result: &challenge,
		},
		{
			name: "Missing challenge returns nil",
			id:   99,
			mockSetup: func() {
				mock.ExpectQuery(`SELECT .+ FROM challenges`).
					WithArgs(99).
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name: "Database error",
			id:   1,
			mockSetup: func() {
				mock.ExpectQuery(`SELECT .+ FROM challenges`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByID(context.Background(), tt.id)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_List(t *testing.T) {
	repo, mock, _ := NewMock(t)
	groupID := 5
	global := domain.Challenge{ID: 1, IsGlobal: true, Status: domain.ActiveStatus}
	grouped := domain.Challenge{ID: 2, GroupID: &groupID, Status: domain.ActiveStatus}

	t.Run("Global challenges when no group given", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE is_global = TRUE`)).
			WillReturnRows(challengeRows(global))

		result, err := repo.List(context.Background(), nil)
		assert.NoError(t, err)
		assert.Equal(t, []domain.Challenge{global}, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Group challenges when group given", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE group_id = $1`)).
			WithArgs(groupID).
			WillReturnRows(challengeRows(grouped))

		result, err := repo.List(context.Background(), &groupID)
		assert.NoError(t, err)
		assert.Equal(t, []domain.Challenge{grouped}, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE is_global = TRUE`)).
			WillReturnError(errors.New("database error"))

		_, err := repo.List(context.Background(), nil)
		assert.Error(t, err)
	})
}

func TestRepository_AddBetTotal(t *testing.T) {
	repo, mock, txManager := NewMock(t)

	tests := []struct {
		name      string
		betType   string
		mockSetup func()
		expectErr bool
		updated   bool
	}{
		{
			name:    "Yes bet bumps yes total",
			betType: domain.BetTypeYes,
			mockSetup: func() {
				expectTx(txManager)
				mock.ExpectExec(regexp.QuoteMeta(`SET total_yes_bets = total_yes_bets + $1`)).
					WithArgs(int64(25), 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			updated: true,
		},
		{
			name:    "No bet bumps no total",
			betType: domain.BetTypeNo,
			mockSetup: func() {
				expectTx(txManager)
				mock.ExpectExec(regexp.QuoteMeta(`SET total_no_bets = total_no_bets + $1`)).
					WithArgs(int64(25), 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			updated: true,
		},
		{
			name:    "Closed challenge leaves totals alone",
			betType: domain.BetTypeYes,
			mockSetup: func() {
				expectTx(txManager)
				mock.ExpectExec(regexp.QuoteMeta(`SET total_yes_bets = total_yes_bets + $1`)).
					WithArgs(int64(25), 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			updated: false,
		},
		{
			name:    "Database error",
			betType: domain.BetTypeYes,
			mockSetup: func() {
				expectTx(txManager)
				mock.ExpectExec(regexp.QuoteMeta(`SET total_yes_bets = total_yes_bets + $1`)).
					WithArgs(int64(25), 1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			updated, err := repo.AddBetTotal(context.Background(), 1, tt.betType, 25)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.updated, updated)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_SetProof(t *testing.T) {
	repo, mock, txManager := NewMock(t)
	submittedAt := time.Now()
	votingEndsAt := submittedAt.Add(24 * time.Hour)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		updated   bool
	}{
		{
			name: "First proof opens voting",
			mockSetup: func() {
				expectTx(txManager)
				mock.ExpectExec(regexp.QuoteMeta(`SET status = 'voting'`)).
					WithArgs(1, "https://img/1.jpg", "done", submittedAt, votingEndsAt).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			updated: true,
		},
		{
			name: "Second proof loses the write-once race",
			mockSetup: func() {
				expectTx(txManager)
				mock.ExpectExec(regexp.QuoteMeta(`SET status = 'voting'`)).
					WithArgs(1, "https://img/1.jpg", "done", submittedAt, votingEndsAt).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			updated: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				expectTx(txManager)
				mock.ExpectExec(regexp.QuoteMeta(`SET status = 'voting'`)).
					WithArgs(1, "https://img/1.jpg", "done", submittedAt, votingEndsAt).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			updated, err := repo.SetProof(context.Background(), 1, "https://img/1.jpg", "done", submittedAt, votingEndsAt)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.updated, updated)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_CompleteIf(t *testing.T) {
	repo, mock, txManager := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		updated   bool
	}{
		{
			name: "First finalizer wins the transition",
			mockSetup: func() {
				expectTx(txManager)
				mock.ExpectExec(regexp.QuoteMeta(`SET status = 'completed'`)).
					WithArgs(1, domain.VotingStatus, true, 3, 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			updated: true,
		},
		{
			name: "Second finalizer finds the status already moved",
			mockSetup: func() {
				expectTx(txManager)
				mock.ExpectExec(regexp.QuoteMeta(`SET status = 'completed'`)).
					WithArgs(1, domain.VotingStatus, true, 3, 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			updated: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				expectTx(txManager)
				mock.ExpectExec(regexp.QuoteMeta(`SET status = 'completed'`)).
					WithArgs(1, domain.VotingStatus, true, 3, 1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			updated, err := repo.CompleteIf(context.Background(), 1, domain.VotingStatus, true, 3, 1)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.updated, updated)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindNeedingReconcile(t *testing.T) {
	repo, mock, _ := NewMock(t)
	now := time.Now()
	proofWindow := 24 * time.Hour
	stuck := domain.Challenge{ID: 1, Status: domain.VotingStatus, Deadline: now.Add(-48 * time.Hour)}

	t.Run("Stuck challenges returned", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`voting_ends_at <= $1`)).
			WithArgs(now, now.Add(-proofWindow), 10).
			WillReturnRows(challengeRows(stuck))

		result, err := repo.FindNeedingReconcile(context.Background(), now, proofWindow, 10)
		assert.NoError(t, err)
		assert.Equal(t, []domain.Challenge{stuck}, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`voting_ends_at <= $1`)).
			WithArgs(now, now.Add(-proofWindow), 10).
			WillReturnError(errors.New("database error"))

		_, err := repo.FindNeedingReconcile(context.Background(), now, proofWindow, 10)
		assert.Error(t, err)
	})
}
