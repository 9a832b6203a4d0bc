package credit

import (
	"time"

	"github.com/google/uuid"
)

// Package is a purchasable bundle of credits
type Package struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	CreditAmount int       `db:"credit_amount" json:"credit_amount"`
	Price        int       `db:"price" json:"price"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
}

// Purchase is an append-only record of a package bought by a user. Credit
// amount and price are copied from the package at purchase time.
type Purchase struct {
	ID               uuid.UUID `db:"id"`
	UserID           uuid.UUID `db:"user_id"`
	CreditPackageID  uuid.UUID `db:"credit_package_id"`
	PurchasedCredits int       `db:"purchased_credits"`
	PricePaid        int       `db:"price_paid"`
	PurchasedAt      time.Time `db:"purchased_at"`
}

// PurchaseRecord is a purchase joined with its package name
type PurchaseRecord struct {
	PurchasedCredits int       `db:"purchased_credits" json:"purchased_credits"`
	PricePaid        int       `db:"price_paid" json:"price_paid"`
	Name             string    `db:"name" json:"name"`
	PurchasedAt      time.Time `db:"purchased_at" json:"purchase_at"`
}

// Totals sums price and credit amount over all packages
type Totals struct {
	Price        int64 `db:"total_price"`
	CreditAmount int64 `db:"total_credit_amount"`
}
