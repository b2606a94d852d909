package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ai-interviewer/internal/domain"
	"ai-interviewer/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

const paymentTransactionColumns = "id, device_id, checkout_id, product_id, amount_cents, currency, status, created_at, updated_at"

type sqlxPaymentTransactionRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSQLXPaymentTransactionRepository(db *sqlx.DB) domain.PaymentTransactionRepository {
	return &sqlxPaymentTransactionRepository{db: db, now: time.Now}
}

func toDomainPaymentTransaction(m *models.PaymentTransaction) *domain.PaymentTransaction {
	if m == nil {
		return nil
	}
	return &domain.PaymentTransaction{
		ID:          m.ID,
		DeviceID:    m.DeviceID,
		CheckoutID:  m.CheckoutID,
		ProductID:   m.ProductID,
		AmountCents: m.AmountCents,
		Currency:    m.Currency,
		Status:      domain.PaymentStatus(m.Status),
		CreatedAt:   m.CreatedAt,
	}
}

func (r *sqlxPaymentTransactionRepository) Create(ctx context.Context, tx *domain.PaymentTransaction) error {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`INSERT INTO payment_transactions (` + paymentTransactionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := exec.ExecContext(ctx, query,
		tx.ID, tx.DeviceID, tx.CheckoutID, tx.ProductID, tx.AmountCents, tx.Currency, string(tx.Status), tx.CreatedAt, tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment transaction for checkout %s: %w", tx.CheckoutID, err)
	}
	return nil
}

func (r *sqlxPaymentTransactionRepository) GetByCheckoutID(ctx context.Context, checkoutID string) (*domain.PaymentTransaction, error) {
	var m models.PaymentTransaction
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`SELECT ` + paymentTransactionColumns + ` FROM payment_transactions WHERE checkout_id = ?`)
	if err := exec.GetContext(ctx, &m, query, checkoutID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment transaction for checkout %s: %w", checkoutID, err)
	}
	return toDomainPaymentTransaction(&m), nil
}

func (r *sqlxPaymentTransactionRepository) MarkCompleted(ctx context.Context, checkoutID string) (bool, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`UPDATE payment_transactions SET status = ?, updated_at = ? WHERE checkout_id = ? AND status = ?`)
	res, err := exec.ExecContext(ctx, query,
		string(domain.PaymentStatusCompleted), r.now().UTC(), checkoutID, string(domain.PaymentStatusPending))
	if err != nil {
		return false, fmt.Errorf("failed to complete payment transaction for checkout %s: %w", checkoutID, err)
	}
	return rowsAffected(res)
}
