package ledgerrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/dkotenko/challenger/internal/domain"
	"github.com/dkotenko/challenger/internal/pg"
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

func TestRepository_CreateEntry(t *testing.T) {
	repo, mock, _ := NewMock(t)
	createdAt := time.Now()
	challengeID := 7

	tests := []struct {
		name      string
		entry     *domain.LedgerEntry
		mockSetup func()
		expectErr bool
	}{
		{
			name:  "Payout entry inserted",
			entry: &domain.LedgerEntry{UserID: 1, Amount: 50, Type: domain.EntryTypePayout, Description: "challenge payout", RelatedID: &challengeID},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO ledger_entries`)).
					WithArgs(1, int64(50), domain.EntryTypePayout, "challenge payout", &challengeID).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, createdAt))
			},
		},
		{
			name:  "Database error",
			entry: &domain.LedgerEntry{UserID: 1, Amount: 50, Type: domain.EntryTypePayout},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO ledger_entries`)).
					WithArgs(1, int64(50), domain.EntryTypePayout, "", (*int)(nil)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.CreateEntry(context.Background(), tt.entry)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, result.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_GetBalance(t *testing.T) {
	repo, mock, _ := NewMock(t)

	tests := []struct {
		name            string
		mockSetup       func()
		expectErr       bool
		expectedBalance int64
	}{
		{
			name: "Balance is the entry sum",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0)`)).
					WithArgs(1).
					WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(int64(480)))
			},
			expectedBalance: 480,
		},
		{
			name: "No entries sum to zero",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0)`)).
					WithArgs(1).
					WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(int64(0)))
			},
			expectedBalance: 0,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0)`)).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			balance, err := repo.GetBalance(context.Background(), 1)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedBalance, balance)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_DebitIfSufficient(t *testing.T) {
	repo, mock, txManager := NewMock(t)
	challengeID := 7

	tests := []struct {
		name        string
		amount      int64
		mockSetup   func()
		expectedErr error
	}{
		{
			name:   "Debit passes the balance check",
			amount: 25,
			mockSetup: func() {
				expectTx(txManager)
				mock.ExpectExec(regexp.QuoteMeta(`SELECT pg_advisory_xact_lock($1, $2)`)).
					WithArgs(ledgerLockClass, 1).
					WillReturnResult(pgxmock.NewResult("SELECT", 1))
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0)`)).
					WithArgs(1).
					WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(int64(100)))
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO ledger_entries`)).
					WithArgs(1, int64(-25), domain.EntryTypeBet, "challenge bet", &challengeID).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))
			},
			expectedErr: nil,
		},
		{
			name:   "Balance short of the stake",
			amount: 200,
			mockSetup: func() {
				expectTx(txManager)
				mock.ExpectExec(regexp.QuoteMeta(`SELECT pg_advisory_xact_lock($1, $2)`)).
					WithArgs(ledgerLockClass, 1).
					WillReturnResult(pgxmock.NewResult("SELECT", 1))
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0)`)).
					WithArgs(1).
					WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(int64(100)))
			},
			expectedErr: domain.ErrInsufficientFunds,
		},
		{
			name:   "Lock error",
			amount: 25,
			mockSetup: func() {
				expectTx(txManager)
				mock.ExpectExec(regexp.QuoteMeta(`SELECT pg_advisory_xact_lock($1, $2)`)).
					WithArgs(ledgerLockClass, 1).
					WillReturnError(errors.New("database error"))
			},
			expectedErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.DebitIfSufficient(context.Background(), 1, tt.amount, domain.EntryTypeBet, "challenge bet", &challengeID)

			if tt.expectedErr != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedErr.Error(), err.Error())
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock, _ := NewMock(t)
	createdAt := time.Now()

	t.Run("Entries returned newest first", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "user_id", "amount", "type", "description", "related_id", "created_at"}).
			AddRow(2, 1, int64(-25), domain.EntryTypeBet, "challenge bet", nil, createdAt).
			AddRow(1, 1, int64(500), domain.EntryTypeReward, "signup reward", nil, createdAt)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM ledger_entries`)).
			WithArgs(1).
			WillReturnRows(rows)

		entries, err := repo.FindByUserID(context.Background(), 1)
		assert.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM ledger_entries`)).
			WithArgs(1).
			WillReturnError(errors.New("database error"))

		_, err := repo.FindByUserID(context.Background(), 1)
		assert.Error(t, err)
	})
}

func TestRepository_HasPayoutForChallenge(t *testing.T) {
	repo, mock, _ := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		exists    bool
	}{
		{
			name: "Settled challenge has payout entries",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
					WithArgs(7).
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
			},
			exists: true,
		},
		{
			name: "Unsettled challenge has none",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
					WithArgs(7).
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
			},
			exists: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
					WithArgs(7).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			exists, err := repo.HasPayoutForChallenge(context.Background(), 7)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.exists, exists)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
