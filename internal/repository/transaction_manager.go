package repository

import (
	"context"
	"errors"
	"fmt"

	"ai-interviewer/internal/domain"
	"ai-interviewer/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// 트랜잭션은 context 에 실려 repository 까지 전달된다
type txKey struct{}

func txFromContext(ctx context.Context) (*sqlx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sqlx.Tx)
	return tx, ok && tx != nil
}

// GetExecutor picks the transaction carried by ctx, falling back to db.
func GetExecutor(ctx context.Context, db DBTX) DBTX {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return db
}

type sqlxTxManager struct {
	db *sqlx.DB
}

// NewTransactionManagerAdapter returns a domain.TransactionManager backed by db.
func NewTransactionManagerAdapter(db *sqlx.DB) domain.TransactionManager {
	return &sqlxTxManager{db: db}
}

// WithTransaction commits when fn returns nil and rolls back otherwise.
// A call made inside fn reuses the outer transaction instead of opening a second one.
func (m *sqlxTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Get().Error("Rollback after panic failed", zap.Error(rbErr))
		}
		panic(p)
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
