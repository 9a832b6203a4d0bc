package revenue

import "errors"

var (
	ErrNotCoach     = errors.New("coach role required")
	ErrInvalidMonth = errors.New("invalid month")
	// ErrNoCreditPackages means the credit price cannot be derived because
	// the packages hold no credits
	ErrNoCreditPackages = errors.New("no credit packages to price credits")
)
