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

const tokenBalanceColumns = "device_id, balance, free_trial_used, created_at, updated_at"

type sqlxTokenBalanceRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSQLXTokenBalanceRepository(db *sqlx.DB) domain.TokenBalanceRepository {
	return &sqlxTokenBalanceRepository{db: db, now: time.Now}
}

func toDomainTokenBalance(m *models.TokenBalance) *domain.TokenBalance {
	if m == nil {
		return nil
	}
	return &domain.TokenBalance{
		DeviceID:      m.DeviceID,
		Balance:       m.Balance,
		FreeTrialUsed: m.FreeTrialUsed,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (r *sqlxTokenBalanceRepository) Get(ctx context.Context, deviceID string) (*domain.TokenBalance, error) {
	var m models.TokenBalance
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`SELECT ` + tokenBalanceColumns + ` FROM token_balances WHERE device_id = ?`)
	if err := exec.GetContext(ctx, &m, query, deviceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get token balance for device %s: %w", deviceID, err)
	}
	return toDomainTokenBalance(&m), nil
}

func (r *sqlxTokenBalanceRepository) insert(ctx context.Context, exec DBTX, deviceID string, balance int) (*domain.TokenBalance, error) {
	now := r.now().UTC()
	query := exec.Rebind(`INSERT INTO token_balances (` + tokenBalanceColumns + `) VALUES (?, ?, 0, ?, ?)`)
	if _, err := exec.ExecContext(ctx, query, deviceID, balance, now, now); err != nil {
		return nil, err
	}
	return &domain.TokenBalance{DeviceID: deviceID, Balance: balance, CreatedAt: now, UpdatedAt: now}, nil
}

// CreateIfAbsent inserts a zero balance for an unseen device. A concurrent insert
// for the same device loses on the primary key and falls back to reading the winner's row.
func (r *sqlxTokenBalanceRepository) CreateIfAbsent(ctx context.Context, deviceID string) (*domain.TokenBalance, bool, error) {
	existing, err := r.Get(ctx, deviceID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	created, insertErr := r.insert(ctx, GetExecutor(ctx, r.db), deviceID, 0)
	if insertErr == nil {
		return created, true, nil
	}
	if !isUniqueViolation(insertErr) {
		return nil, false, fmt.Errorf("failed to create token balance for device %s: %w", deviceID, insertErr)
	}

	existing, err = r.Get(ctx, deviceID)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("token balance for device %s vanished after duplicate insert: %w", deviceID, insertErr)
	}
	return existing, false, nil
}

func (r *sqlxTokenBalanceRepository) ConsumeFreeTrial(ctx context.Context, deviceID string, limit int) (bool, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`UPDATE token_balances SET free_trial_used = free_trial_used + 1, updated_at = ? WHERE device_id = ? AND free_trial_used < ?`)
	res, err := exec.ExecContext(ctx, query, r.now().UTC(), deviceID, limit)
	if err != nil {
		return false, fmt.Errorf("failed to consume free trial for device %s: %w", deviceID, err)
	}
	return rowsAffected(res)
}

func (r *sqlxTokenBalanceRepository) ConsumePaid(ctx context.Context, deviceID string) (bool, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`UPDATE token_balances SET balance = balance - 1, updated_at = ? WHERE device_id = ? AND balance > 0`)
	res, err := exec.ExecContext(ctx, query, r.now().UTC(), deviceID)
	if err != nil {
		return false, fmt.Errorf("failed to consume paid credit for device %s: %w", deviceID, err)
	}
	return rowsAffected(res)
}

func (r *sqlxTokenBalanceRepository) AddCredits(ctx context.Context, deviceID string, credits int) error {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`UPDATE token_balances SET balance = balance + ?, updated_at = ? WHERE device_id = ?`)
	res, err := exec.ExecContext(ctx, query, credits, r.now().UTC(), deviceID)
	if err != nil {
		return fmt.Errorf("failed to add credits for device %s: %w", deviceID, err)
	}
	updated, err := rowsAffected(res)
	if err != nil {
		return fmt.Errorf("failed to add credits for device %s: %w", deviceID, err)
	}
	if updated {
		return nil
	}
	if _, err := r.insert(ctx, exec, deviceID, credits); err != nil {
		return fmt.Errorf("failed to create token balance for device %s: %w", deviceID, err)
	}
	return nil
}
