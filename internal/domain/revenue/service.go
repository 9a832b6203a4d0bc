package revenue

import (
	"context"
	"time"

	"github.com/livefit/livefit-api/internal/domain/user"
	"github.com/livefit/livefit-api/internal/pkg/logger"
)

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// MonthlyRevenue reports bookings, distinct participants and revenue of the
// calling coach's courses for a month of the current year. Revenue is the
// booking count priced at the average credit price over all packages,
// rounded down.
func (s *Service) MonthlyRevenue(ctx context.Context, caller user.Actor, monthName string) (*Report, error) {
	if !caller.IsCoach() {
		return nil, ErrNotCoach
	}
	month, ok := ParseMonth(monthName)
	if !ok {
		return nil, ErrInvalidMonth
	}

	courseIDs, err := s.store.CourseIDsByCoach(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if len(courseIDs) == 0 {
		return &Report{}, nil
	}

	window := MonthWindow(s.now().UTC().Year(), month)
	stats, err := s.store.BookingStats(ctx, courseIDs, window)
	if err != nil {
		return nil, err
	}

	totals, err := s.store.PackageTotals(ctx)
	if err != nil {
		return nil, err
	}
	if totals.CreditAmount == 0 {
		return nil, ErrNoCreditPackages
	}

	// multiply before dividing so the only rounding is the final floor
	revenue := int64(stats.Bookings) * totals.Price / totals.CreditAmount

	logger.FromContext(ctx).Debug().
		Str("coach_id", caller.ID.String()).
		Str("month", month.String()).
		Int("bookings", stats.Bookings).
		Int64("revenue", revenue).
		Msg("monthly revenue computed")

	return &Report{Total: Total{
		Revenue:      revenue,
		Participants: stats.Participants,
		CourseCount:  stats.Bookings,
	}}, nil
}
