package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/livefit/livefit-api/internal/domain/credit"
	"github.com/livefit/livefit-api/internal/pkg/logger"
)

// Service books and cancels course seats against the user's credits.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Book reserves a seat on the course for the user. The checks and the
// insert run in one transaction holding row locks on the course and the
// user, so concurrent bookings cannot oversell seats or credits.
func (s *Service) Book(ctx context.Context, userID, courseID uuid.UUID) error {
	err := s.store.InTx(ctx, func(tx Tx) error {
		course, err := tx.LockCourse(ctx, courseID)
		if err != nil {
			return err
		}
		if err := tx.LockUser(ctx, userID); err != nil {
			return err
		}

		existing, err := tx.FindActive(ctx, userID, courseID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrAlreadyBooked
		}

		remain, err := credit.NewAccountant(tx).CreditRemain(ctx, userID)
		if err != nil {
			return err
		}
		if remain <= 0 {
			return ErrNoCredits
		}

		booked, err := tx.CountActiveByCourse(ctx, courseID)
		if err != nil {
			return err
		}
		if booked >= course.MaxParticipants {
			return ErrCourseFull
		}

		return tx.Insert(ctx, &Booking{
			ID:        uuid.New(),
			UserID:    userID,
			CourseID:  courseID,
			CreatedAt: s.now().UTC(),
		})
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info().
		Str("user_id", userID.String()).
		Str("course_id", courseID.String()).
		Msg("course booked")
	return nil
}

// Cancel releases the user's active booking on the course, refunding the credit.
func (s *Service) Cancel(ctx context.Context, userID, courseID uuid.UUID) error {
	existing, err := s.store.FindActive(ctx, userID, courseID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrBookingNotFound
	}

	rows, err := s.store.CancelActive(ctx, userID, courseID, s.now().UTC())
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCancelFailed
	}

	logger.FromContext(ctx).Info().
		Str("user_id", userID.String()).
		Str("course_id", courseID.String()).
		Msg("booking cancelled")
	return nil
}

// CreditSummary returns remaining and used credits with the active bookings
func (s *Service) CreditSummary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	acc := credit.NewAccountant(s.store)

	total, err := acc.TotalPurchasedCredits(ctx, userID)
	if err != nil {
		return nil, err
	}
	used, err := acc.CreditUsage(ctx, userID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.store.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		CreditRemain:  total - used,
		CreditUsage:   used,
		CourseBooking: bookings,
	}, nil
}
