package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendsense/spendsense/constants"
	"github.com/spendsense/spendsense/internal/common"
	"github.com/spendsense/spendsense/internal/entity"
)

type TransactionRepository interface {
	Insert(ctx context.Context, tx *entity.Transaction) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Transaction, error)
	DeleteByIDAndUser(ctx context.Context, id, userID uuid.UUID) error
}

type transactionRepository struct {
	db     *sql.DB
	driver string
	logger *slog.Logger
}

func NewTransactionRepository(db *sql.DB, driver string, logger *slog.Logger) TransactionRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &transactionRepository{db: db, driver: driver, logger: logger}
}

// Dates cross the storage boundary as YYYY-MM-DD text; amounts as decimal
// strings. Both drivers then agree on the column encoding.
const insertTransactionSQL = `
INSERT INTO transactions
	(id, user_id, amount, tx_date, time_of_day, sender, receiver, transaction_ref, category, ai_confidence, corrected, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (r *transactionRepository) Insert(ctx context.Context, tx *entity.Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}

	var ref sql.NullString
	if tx.TransactionID != nil {
		ref = sql.NullString{String: *tx.TransactionID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, rebind(r.driver, insertTransactionSQL),
		tx.ID.String(),
		tx.UserID.String(),
		tx.Amount.String(),
		tx.StorageDate(),
		tx.TimeOfDay,
		tx.Sender,
		tx.Receiver,
		ref,
		string(tx.Category),
		tx.AIConfidence,
		tx.Corrected,
		tx.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		r.logger.Error("tx.insert_failed", "tx_id", tx.ID, "user_id", tx.UserID, "error", err)
		return common.WrapError(err, "insert transaction")
	}
	return nil
}

const listByUserSQL = `
SELECT id, user_id, amount, tx_date, time_of_day, sender, receiver, transaction_ref, category, ai_confidence, corrected, created_at
FROM transactions
WHERE user_id = ?
ORDER BY tx_date DESC, created_at DESC`

func (r *transactionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, rebind(r.driver, listByUserSQL), userID.String())
	if err != nil {
		r.logger.Error("tx.list_failed", "user_id", userID, "error", err)
		return nil, common.WrapError(err, "list transactions")
	}
	defer func() { _ = rows.Close() }()

	var out []entity.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, common.WrapError(err, "list transactions")
	}
	return out, nil
}

func (r *transactionRepository) DeleteByIDAndUser(ctx context.Context, id, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		rebind(r.driver, `DELETE FROM transactions WHERE id = ? AND user_id = ?`),
		id.String(), userID.String(),
	)
	if err != nil {
		r.logger.Error("tx.delete_failed", "tx_id", id, "user_id", userID, "error", err)
		return common.WrapError(err, "delete transaction")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return common.WrapError(err, "delete transaction")
	}
	if n == 0 {
		return fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}
	r.logger.Info("tx.deleted", "tx_id", id, "user_id", userID)
	return nil
}

func scanTransaction(rows *sql.Rows) (entity.Transaction, error) {
	var (
		tx                         entity.Transaction
		idStr, userStr             string
		amountStr, dateStr, catStr string
		ref                        sql.NullString
		createdStr                 string
	)
	if err := rows.Scan(&idStr, &userStr, &amountStr, &dateStr, &tx.TimeOfDay,
		&tx.Sender, &tx.Receiver, &ref, &catStr, &tx.AIConfidence, &tx.Corrected, &createdStr); err != nil {
		return entity.Transaction{}, common.WrapError(err, "scan transaction")
	}

	var err error
	if tx.ID, err = uuid.Parse(idStr); err != nil {
		return entity.Transaction{}, common.WrapError(err, "parse transaction id")
	}
	if tx.UserID, err = uuid.Parse(userStr); err != nil {
		return entity.Transaction{}, common.WrapError(err, "parse user id")
	}
	if tx.Amount, err = decimal.NewFromString(amountStr); err != nil {
		return entity.Transaction{}, common.WrapError(err, "parse amount")
	}
	if tx.Date, err = time.Parse("2006-01-02", dateStr); err != nil {
		return entity.Transaction{}, common.WrapError(err, "parse date")
	}
	if ref.Valid {
		v := ref.String
		tx.TransactionID = &v
	}
	tx.Category = constants.Category(catStr)
	if t, err := time.Parse(time.RFC3339, createdStr); err == nil {
		tx.CreatedAt = t
	}
	return tx, nil
}
