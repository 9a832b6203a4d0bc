package course

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/livefit/livefit-api/internal/pkg/database"
)

type Repository interface {
	List(ctx context.Context) ([]Listing, error)
	ListByCoach(ctx context.Context, coachID uuid.UUID) ([]Listing, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Course, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Course, error)
	Create(ctx context.Context, c *Course) error
	Update(ctx context.Context, c *Course) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const listingColumns = `
	c.id, u.name AS coach_name, s.name AS skill_name, c.name, c.description,
	c.start_at, c.end_at, c.max_participants`

const courseColumns = `
	id, user_id, skill_id, name, description, start_at, end_at,
	max_participants, meeting_url, created_at, updated_at`

func (r *repository) List(ctx context.Context) ([]Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	courses := []Listing{}
	err := r.db.SelectContext(ctx, &courses, `
		SELECT`+listingColumns+`
		FROM courses c
		JOIN users u ON u.id = c.user_id
		JOIN skills s ON s.id = c.skill_id
		ORDER BY c.start_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (r *repository) ListByCoach(ctx context.Context, coachID uuid.UUID) ([]Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	var userID uuid.UUID
	err := r.db.GetContext(ctx, &userID, `SELECT user_id FROM coaches WHERE id = $1`, coachID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCoachNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get coach: %w", err)
	}

	courses := []Listing{}
	err = r.db.SelectContext(ctx, &courses, `
		SELECT`+listingColumns+`
		FROM courses c
		JOIN users u ON u.id = c.user_id
		JOIN skills s ON s.id = c.skill_id
		WHERE c.user_id = $1
		ORDER BY c.start_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list coach courses: %w", err)
	}
	return courses, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Course, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	courses := []Course{}
	err := r.db.SelectContext(ctx, &courses, `
		SELECT`+courseColumns+`
		FROM courses
		WHERE user_id = $1
		ORDER BY start_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list own courses: %w", err)
	}
	return courses, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Course, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	var c Course
	err := r.db.GetContext(ctx, &c, `SELECT`+courseColumns+` FROM courses WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	return &c, nil
}

func (r *repository) Create(ctx context.Context, c *Course) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO courses (`+courseColumns+`)
		VALUES (:id, :user_id, :skill_id, :name, :description, :start_at, :end_at,
		        :max_participants, :meeting_url, :created_at, :updated_at)
	`, c)
	if database.IsForeignKeyViolation(err) {
		return ErrSkillNotFound
	}
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

func (r *repository) Update(ctx context.Context, c *Course) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	result, err := r.db.NamedExecContext(ctx, `
		UPDATE courses SET
			skill_id = :skill_id,
			name = :name,
			description = :description,
			start_at = :start_at,
			end_at = :end_at,
			max_participants = :max_participants,
			meeting_url = :meeting_url,
			updated_at = :updated_at
		WHERE id = :id
	`, c)
	if database.IsForeignKeyViolation(err) {
		return ErrSkillNotFound
	}
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	if rows == 0 {
		return ErrCourseNotFound
	}
	return nil
}
