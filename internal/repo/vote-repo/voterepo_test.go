package voterepo

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/dkotenko/challenger/internal/domain"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_Upsert(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		vote      *domain.Vote
		mockSetup func()
		expectErr bool
	}{
		{
			name: "First vote inserted",
			vote: &domain.Vote{ChallengeID: 7, UserID: 1, Vote: domain.BetTypeYes},
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO votes`)).
					WithArgs(7, 1, domain.BetTypeYes).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name: "Revote overwrites through the conflict clause",
			vote: &domain.Vote{ChallengeID: 7, UserID: 1, Vote: domain.BetTypeNo},
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (challenge_id, user_id)`)).
					WithArgs(7, 1, domain.BetTypeNo).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "Database error",
			vote: &domain.Vote{ChallengeID: 7, UserID: 1, Vote: domain.BetTypeYes},
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO votes`)).
					WithArgs(7, 1, domain.BetTypeYes).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Upsert(context.Background(), tt.vote)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Tally(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name        string
		mockSetup   func()
		expectErr   bool
		expectedYes int
		expectedNo  int
	}{
		{
			name: "Votes counted per side",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM votes`)).
					WithArgs(7).
					WillReturnRows(pgxmock.NewRows([]string{"yes", "no"}).AddRow(3, 1))
			},
			expectedYes: 3,
			expectedNo:  1,
		},
		{
			name: "No votes at all",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM votes`)).
					WithArgs(7).
					WillReturnRows(pgxmock.NewRows([]string{"yes", "no"}).AddRow(0, 0))
			},
			expectedYes: 0,
			expectedNo:  0,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM votes`)).
					WithArgs(7).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			yes, no, err := repo.Tally(context.Background(), 7)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedYes, yes)
				assert.Equal(t, tt.expectedNo, no)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
