package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/livefit/livefit-api/internal/domain/credit"
)

// Store is the persistence used by Service
type Store interface {
	credit.Ledger
	// InTx runs fn in a single transaction, committing when fn returns nil.
	InTx(ctx context.Context, fn func(tx Tx) error) error
	FindActive(ctx context.Context, userID, courseID uuid.UUID) (*Booking, error)
	// CancelActive sets cancelled_at on the active booking only if it is
	// still active and returns the number of rows changed.
	CancelActive(ctx context.Context, userID, courseID uuid.UUID, at time.Time) (int64, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]BookedCourse, error)
}

// Tx is the view of Store inside a booking transaction
type Tx interface {
	credit.Ledger
	// LockCourse locks the course row. ErrCourseNotFound if absent.
	LockCourse(ctx context.Context, courseID uuid.UUID) (*Course, error)
	// LockUser locks the user row. ErrUserNotFound if absent.
	LockUser(ctx context.Context, userID uuid.UUID) error
	FindActive(ctx context.Context, userID, courseID uuid.UUID) (*Booking, error)
	CountActiveByCourse(ctx context.Context, courseID uuid.UUID) (int, error)
	// Insert stores an active booking. ErrAlreadyBooked on a duplicate.
	Insert(ctx context.Context, b *Booking) error
}
