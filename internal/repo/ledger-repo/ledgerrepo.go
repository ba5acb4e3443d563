package ledgerrepo

import (
	"context"

	"github.com/dkotenko/challenger/internal/domain"
	"github.com/dkotenko/challenger/internal/pg"
	"go.uber.org/zap"
)

// Advisory lock class for per-user ledger serialization. The entries table is
// append-only and the balance is derived, so check-then-debit has to hold the
// user's lock for the length of the transaction.
const ledgerLockClass = 7201

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (r *Repository) CreateEntry(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	query := `
		INSERT INTO ledger_entries (user_id, amount, type, description, related_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, entry.UserID, entry.Amount, entry.Type, entry.Description, entry.RelatedID).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		zap.L().Error("can't save ledger entry", zap.Error(err))
		return nil, err
	}
	return entry, nil
}

func (r *Repository) GetBalance(ctx context.Context, userID int) (int64, error) {
	query := `
        SELECT COALESCE(SUM(amount), 0)
        FROM ledger_entries
        WHERE user_id = $1
    `
	var balance int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&balance)
	if err != nil {
		zap.L().Error("can't get balance", zap.Error(err))
		return 0, err
	}
	return balance, nil
}

// DebitIfSufficient appends a negative entry only when the derived balance
// covers it. The advisory xact lock serializes concurrent debits of the same
// user so two debits cannot both pass the balance check.
func (r *Repository) DebitIfSufficient(ctx context.Context, userID int, amount int64, entryType, description string, relatedID *int) error {
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, ledgerLockClass, userID); err != nil {
			zap.L().Error("can't take ledger lock", zap.Error(err))
			return err
		}

		balance, err := r.GetBalance(ctx, userID)
		if err != nil {
			return err
		}
		if balance < amount {
			return domain.ErrInsufficientFunds
		}

		entry := &domain.LedgerEntry{
			UserID:      userID,
			Amount:      -amount,
			Type:        entryType,
			Description: description,
			RelatedID:   relatedID,
		}
		_, err = r.CreateEntry(ctx, entry)
		return err
	})
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.LedgerEntry, error) {
	query := `
        SELECT id, user_id, amount, type, description, related_id, created_at
        FROM ledger_entries
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get ledger entries", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var entry domain.LedgerEntry
		err := rows.Scan(&entry.ID, &entry.UserID, &entry.Amount, &entry.Type, &entry.Description, &entry.RelatedID, &entry.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan ledger entry row", zap.Error(err))
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// HasPayoutForChallenge backs the settlement idempotency guard.
func (r *Repository) HasPayoutForChallenge(ctx context.Context, challengeID int) (bool, error) {
	query := `
        SELECT EXISTS (
            SELECT 1 FROM ledger_entries
            WHERE type = 'payout' AND related_id = $1
        )
    `
	var exists bool
	err := r.db.QueryRow(ctx, query, challengeID).Scan(&exists)
	if err != nil {
		zap.L().Error("can't check challenge payouts", zap.Error(err))
		return false, err
	}
	return exists, nil
}
