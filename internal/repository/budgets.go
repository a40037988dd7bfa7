package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendsense/spendsense/constants"
	"github.com/spendsense/spendsense/internal/common"
	"github.com/spendsense/spendsense/internal/entity"
)

// BudgetRepository stores per-user category spending ceilings.
type BudgetRepository interface {
	Upsert(ctx context.Context, userID uuid.UUID, category constants.Category, limit decimal.Decimal) error
	ListByUser(ctx context.Context, userID uuid.UUID) (entity.BudgetLimits, error)
}

type budgetRepository struct {
	db     *sql.DB
	driver string
	logger *slog.Logger
}

func NewBudgetRepository(db *sql.DB, driver string, logger *slog.Logger) BudgetRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &budgetRepository{db: db, driver: driver, logger: logger}
}

const upsertBudgetSQL = `
INSERT INTO budget_limits (user_id, category, limit_amount)
VALUES (?, ?, ?)
ON CONFLICT (user_id, category) DO UPDATE SET limit_amount = excluded.limit_amount`

func (r *budgetRepository) Upsert(ctx context.Context, userID uuid.UUID, category constants.Category, limit decimal.Decimal) error {
	_, err := r.db.ExecContext(ctx, rebind(r.driver, upsertBudgetSQL),
		userID.String(), string(category), limit.String())
	if err != nil {
		r.logger.Error("budget.upsert_failed", "user_id", userID, "category", string(category), "error", err)
		return common.WrapError(err, "upsert budget limit")
	}
	return nil
}

func (r *budgetRepository) ListByUser(ctx context.Context, userID uuid.UUID) (entity.BudgetLimits, error) {
	rows, err := r.db.QueryContext(ctx,
		rebind(r.driver, `SELECT category, limit_amount FROM budget_limits WHERE user_id = ?`),
		userID.String())
	if err != nil {
		r.logger.Error("budget.list_failed", "user_id", userID, "error", err)
		return nil, common.WrapError(err, "list budget limits")
	}
	defer func() { _ = rows.Close() }()

	limits := entity.BudgetLimits{}
	for rows.Next() {
		var cat, amountStr string
		if err := rows.Scan(&cat, &amountStr); err != nil {
			return nil, common.WrapError(err, "scan budget limit")
		}
		limit, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, common.WrapError(err, "parse budget limit")
		}
		limits[constants.Category(cat)] = limit
	}
	if err := rows.Err(); err != nil {
		return nil, common.WrapError(err, "list budget limits")
	}
	return limits, nil
}
