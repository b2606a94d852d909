package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"ai-interviewer/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentTransactionRepository_Create(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXPaymentTransactionRepository(db)
	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payment_transactions (id, device_id, checkout_id, product_id, amount_cents, currency, status, created_at, updated_at)")).
		WithArgs("tx1", "D", "ch_1", "starter", 499, "USD", "pending", createdAt, createdAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), &domain.PaymentTransaction{
		ID: "tx1", DeviceID: "D", CheckoutID: "ch_1", ProductID: "starter",
		AmountCents: 499, Currency: "USD", Status: domain.PaymentStatusPending, CreatedAt: createdAt,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentTransactionRepository_GetByCheckoutID(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXPaymentTransactionRepository(db)
	now := time.Now().UTC().Truncate(time.Second)
	query := "SELECT (.+) FROM payment_transactions WHERE checkout_id = \\?"
	cols := []string{"id", "device_id", "checkout_id", "product_id", "amount_cents", "currency", "status", "created_at", "updated_at"}

	mock.ExpectQuery(query).WithArgs("ch_1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("tx1", "D", "ch_1", "pro", 999, "USD", "completed", now, now))
	tx, err := repo.GetByCheckoutID(context.Background(), "ch_1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCompleted, tx.Status)
	assert.Equal(t, 999, tx.AmountCents)

	mock.ExpectQuery(query).WithArgs("ch_missing").WillReturnRows(sqlmock.NewRows(cols))
	tx, err = repo.GetByCheckoutID(context.Background(), "ch_missing")
	require.NoError(t, err)
	assert.Nil(t, tx)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentTransactionRepository_MarkCompleted(t *testing.T) {
	update := regexp.QuoteMeta("UPDATE payment_transactions SET status = ?, updated_at = ? WHERE checkout_id = ? AND status = ?")

	for _, tc := range []struct {
		name     string
		affected int64
		want     bool
	}{
		{"pending row moves", 1, true},
		{"already completed", 0, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := setupTestDB(t)
			repo := NewSQLXPaymentTransactionRepository(db)
			mock.ExpectExec(update).
				WithArgs("completed", sqlmock.AnyArg(), "ch_1", "pending").
				WillReturnResult(sqlmock.NewResult(0, tc.affected))

			moved, err := repo.MarkCompleted(context.Background(), "ch_1")
			require.NoError(t, err)
			assert.Equal(t, tc.want, moved)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
