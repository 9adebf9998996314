package repository

import (
	"context"
	"fmt"

	"design-dojo/internal/domain"
	"design-dojo/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type contextKey string

// TransactionContextKey is the context key holding the active *sqlx.Tx.
const TransactionContextKey contextKey = "tx"

// GetExecutor returns the transaction stored in ctx, or db when there is none.
func GetExecutor(ctx context.Context, db DBTX) DBTX {
	if tx, ok := ctx.Value(TransactionContextKey).(*sqlx.Tx); ok && tx != nil {
		return tx
	}
	return db
}

// TransactionManagerAdapter implements domain.TransactionManager over sqlx.
type TransactionManagerAdapter struct {
	db *sqlx.DB
}

// NewTransactionManagerAdapter creates a new TransactionManagerAdapter
func NewTransactionManagerAdapter(db *sqlx.DB) domain.TransactionManager {
	return &TransactionManagerAdapter{db: db}
}

// WithTransaction commits when fn returns nil and rolls back otherwise.
// A panic inside fn rolls back and is re-raised.
func (tma *TransactionManagerAdapter) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(TransactionContextKey).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	tx, err := tma.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				logger.Get().Error("Failed to rollback transaction after panic", zap.Error(rollbackErr))
			}
			panic(p)
		}
	}()

	txCtx := context.WithValue(ctx, TransactionContextKey, tx)

	if err := fn(txCtx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("failed to rollback transaction: %v (original error: %w)", rollbackErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
