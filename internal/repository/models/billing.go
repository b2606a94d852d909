package models

import "time"

type TokenBalance struct {
	DeviceID      string    `db:"device_id"`
	Balance       int       `db:"balance"`
	FreeTrialUsed int       `db:"free_trial_used"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type PaymentTransaction struct {
	ID          string    `db:"id"`
	DeviceID    string    `db:"device_id"`
	CheckoutID  string    `db:"checkout_id"`
	ProductID   string    `db:"product_id"`
	AmountCents int       `db:"amount_cents"`
	Currency    string    `db:"currency"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
