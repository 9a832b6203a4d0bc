package credit

import (
	"context"

	"github.com/google/uuid"
)

// Ledger is the read side of credit accounting. Balances are never stored:
// purchased credits minus active bookings is the remaining balance.
type Ledger interface {
	SumPurchasedCredits(ctx context.Context, userID uuid.UUID) (int, error)
	CountActiveBookings(ctx context.Context, userID uuid.UUID) (int, error)
}

// Accountant computes credit balances from a Ledger. It works the same on the
// connection pool and inside an open transaction.
type Accountant struct {
	ledger Ledger
}

func NewAccountant(ledger Ledger) *Accountant {
	return &Accountant{ledger: ledger}
}

// TotalPurchasedCredits returns the sum of purchased credits, 0 if none
func (a *Accountant) TotalPurchasedCredits(ctx context.Context, userID uuid.UUID) (int, error) {
	return a.ledger.SumPurchasedCredits(ctx, userID)
}

// CreditUsage returns the number of active bookings
func (a *Accountant) CreditUsage(ctx context.Context, userID uuid.UUID) (int, error) {
	return a.ledger.CountActiveBookings(ctx, userID)
}

// CreditRemain returns purchased minus used credits
func (a *Accountant) CreditRemain(ctx context.Context, userID uuid.UUID) (int, error) {
	total, err := a.TotalPurchasedCredits(ctx, userID)
	if err != nil {
		return 0, err
	}
	used, err := a.CreditUsage(ctx, userID)
	if err != nil {
		return 0, err
	}
	return total - used, nil
}
