package revenue

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/livefit/livefit-api/internal/domain/credit"
	"github.com/livefit/livefit-api/internal/pkg/database"
)

// Store is the data needed to compute monthly revenue
type Store interface {
	CourseIDsByCoach(ctx context.Context, coachID uuid.UUID) ([]uuid.UUID, error)
	BookingStats(ctx context.Context, courseIDs []uuid.UUID, w Window) (BookingStats, error)
	PackageTotals(ctx context.Context) (credit.Totals, error)
}

type PostgresStore struct {
	*credit.PostgresRepository
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{PostgresRepository: credit.NewRepository(db), db: db}
}

func (s *PostgresStore) CourseIDsByCoach(ctx context.Context, coachID uuid.UUID) ([]uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	ids := []uuid.UUID{}
	if err := s.db.SelectContext(ctx, &ids, `SELECT id FROM courses WHERE user_id = $1`, coachID); err != nil {
		return nil, fmt.Errorf("list coach course ids: %w", err)
	}
	return ids, nil
}

func (s *PostgresStore) BookingStats(ctx context.Context, courseIDs []uuid.UUID, w Window) (BookingStats, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	ids := make([]string, len(courseIDs))
	for i, id := range courseIDs {
		ids[i] = id.String()
	}

	var stats BookingStats
	err := s.db.GetContext(ctx, &stats, `
		SELECT COUNT(*) AS bookings, COUNT(DISTINCT user_id) AS participants
		FROM course_bookings
		WHERE course_id = ANY($1::uuid[])
		  AND cancelled_at IS NULL
		  AND created_at >= $2 AND created_at < $3
	`, pq.Array(ids), w.From, w.To)
	if err != nil {
		return BookingStats{}, fmt.Errorf("booking stats: %w", err)
	}
	return stats, nil
}
