package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/livefit/livefit-api/internal/domain/credit"
	"github.com/livefit/livefit-api/internal/pkg/database"
)

const activeBookingIndex = "course_bookings_active_uniq"

// queries holds the statements shared by the pool and transaction views
type queries struct {
	db sqlx.ExtContext
}

func (q queries) FindActive(ctx context.Context, userID, courseID uuid.UUID) (*Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	var b Booking
	err := sqlx.GetContext(ctx, q.db, &b, `
		SELECT id, user_id, course_id, created_at, join_at, cancelled_at
		FROM course_bookings
		WHERE user_id = $1 AND course_id = $2 AND cancelled_at IS NULL
	`, userID, courseID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find active booking: %w", err)
	}
	return &b, nil
}

// PostgresStore implements Store with sqlx
type PostgresStore struct {
	queries
	*credit.PostgresRepository
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{
		queries:            queries{db: db},
		PostgresRepository: credit.NewRepository(db),
		db:                 db,
	}
}

func (s *PostgresStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	return database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return fn(&pgTx{
			queries:            queries{db: tx},
			PostgresRepository: credit.NewRepository(tx),
		})
	})
}

func (s *PostgresStore) CancelActive(ctx context.Context, userID, courseID uuid.UUID, at time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	result, err := s.db.ExecContext(ctx, `
		UPDATE course_bookings
		SET cancelled_at = $3
		WHERE user_id = $1 AND course_id = $2 AND cancelled_at IS NULL
	`, userID, courseID, at)
	if err != nil {
		return 0, fmt.Errorf("cancel booking: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("cancel booking: %w", err)
	}
	return rows, nil
}

func (s *PostgresStore) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]BookedCourse, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	rows := []BookedCourse{}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT c.name, c.id AS course_id, u.name AS coach_name,
		       c.start_at, c.end_at, c.meeting_url,
		       b.join_at, b.cancelled_at
		FROM course_bookings b
		JOIN courses c ON c.id = b.course_id
		JOIN users u ON u.id = c.user_id
		WHERE b.user_id = $1 AND b.cancelled_at IS NULL
		ORDER BY c.start_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list active bookings: %w", err)
	}
	for i := range rows {
		rows[i].Status = StatusOf(rows[i].JoinAt, rows[i].CancelledAt)
	}
	return rows, nil
}

type pgTx struct {
	queries
	*credit.PostgresRepository
}

func (t *pgTx) LockCourse(ctx context.Context, courseID uuid.UUID) (*Course, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	var c Course
	err := sqlx.GetContext(ctx, t.queries.db, &c, `
		SELECT id, max_participants FROM courses WHERE id = $1 FOR UPDATE
	`, courseID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock course row: %w", err)
	}
	return &c, nil
}

func (t *pgTx) LockUser(ctx context.Context, userID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	var id uuid.UUID
	err := sqlx.GetContext(ctx, t.queries.db, &id, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("lock user row: %w", err)
	}
	return nil
}

func (t *pgTx) CountActiveByCourse(ctx context.Context, courseID uuid.UUID) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	var count int
	err := sqlx.GetContext(ctx, t.queries.db, &count, `
		SELECT COUNT(*) FROM course_bookings WHERE course_id = $1 AND cancelled_at IS NULL
	`, courseID)
	if err != nil {
		return 0, fmt.Errorf("count course bookings: %w", err)
	}
	return count, nil
}

func (t *pgTx) Insert(ctx context.Context, b *Booking) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	_, err := t.queries.db.ExecContext(ctx, `
		INSERT INTO course_bookings (id, user_id, course_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, b.ID, b.UserID, b.CourseID, b.CreatedAt)
	if database.IsUniqueViolation(err, activeBookingIndex) {
		return ErrAlreadyBooked
	}
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}
