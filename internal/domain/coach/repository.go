package coach

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/livefit/livefit-api/internal/domain/user"
	"github.com/livefit/livefit-api/internal/pkg/database"
)

type Repository interface {
	// Promote switches the user's role to COACH and inserts the profile atomically
	Promote(ctx context.Context, c *Coach) (*UserInfo, error)
	List(ctx context.Context, limit, offset int) ([]Summary, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Detail, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Coach, error)
	SkillIDs(ctx context.Context, coachID uuid.UUID) ([]uuid.UUID, error)
	// UpdateProfile saves the profile and replaces its skill links atomically
	UpdateProfile(ctx context.Context, c *Coach, skillIDs []uuid.UUID) error
	SetProfileImage(ctx context.Context, coachID uuid.UUID, url string, updatedAt time.Time) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const coachColumns = `id, user_id, experience_years, description, profile_image_url, created_at, updated_at`

func (r *repository) Promote(ctx context.Context, c *Coach) (*UserInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	var info UserInfo
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &info, `SELECT name, role FROM users WHERE id = $1 FOR UPDATE`, c.UserID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("lock user: %w", err)
		}
		if info.Role == string(user.RoleCoach) {
			return ErrAlreadyCoach
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE users SET role = $2, updated_at = $3 WHERE id = $1
		`, c.UserID, user.RoleCoach, c.UpdatedAt); err != nil {
			return fmt.Errorf("update role: %w", err)
		}

		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO coaches (`+coachColumns+`)
			VALUES (:id, :user_id, :experience_years, :description, :profile_image_url, :created_at, :updated_at)
		`, c)
		if database.IsUniqueViolation(err, "coaches_user_id_key") {
			return ErrAlreadyCoach
		}
		if err != nil {
			return fmt.Errorf("insert coach: %w", err)
		}
		info.Role = string(user.RoleCoach)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]Summary, int, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM coaches`); err != nil {
		return nil, 0, fmt.Errorf("count coaches: %w", err)
	}

	coaches := []Summary{}
	err := r.db.SelectContext(ctx, &coaches, `
		SELECT c.id, u.name
		FROM coaches c
		JOIN users u ON u.id = c.user_id
		ORDER BY c.created_at, c.id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list coaches: %w", err)
	}
	return coaches, total, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Detail, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	var row struct {
		Coach
		UserName string `db:"user_name"`
		UserRole string `db:"user_role"`
	}
	err := r.db.GetContext(ctx, &row, `
		SELECT c.id, c.user_id, c.experience_years, c.description, c.profile_image_url,
		       c.created_at, c.updated_at, u.name AS user_name, u.role AS user_role
		FROM coaches c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCoachNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get coach: %w", err)
	}

	c := row.Coach
	return &Detail{User: UserInfo{Name: row.UserName, Role: row.UserRole}, Coach: &c}, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*Coach, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	var c Coach
	err := r.db.GetContext(ctx, &c, `SELECT `+coachColumns+` FROM coaches WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCoachNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get coach by user: %w", err)
	}
	return &c, nil
}

func (r *repository) SkillIDs(ctx context.Context, coachID uuid.UUID) ([]uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	ids := []uuid.UUID{}
	err := r.db.SelectContext(ctx, &ids, `
		SELECT skill_id FROM coach_skills WHERE coach_id = $1 ORDER BY skill_id
	`, coachID)
	if err != nil {
		return nil, fmt.Errorf("list coach skills: %w", err)
	}
	return ids, nil
}

func (r *repository) UpdateProfile(ctx context.Context, c *Coach, skillIDs []uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE coaches
			SET experience_years = $2, description = $3, profile_image_url = $4, updated_at = $5
			WHERE id = $1
		`, c.ID, c.ExperienceYears, c.Description, c.ProfileImageURL, c.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update coach: %w", err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return ErrCoachNotFound
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM coach_skills WHERE coach_id = $1`, c.ID); err != nil {
			return fmt.Errorf("clear coach skills: %w", err)
		}
		for _, skillID := range skillIDs {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO coach_skills (coach_id, skill_id) VALUES ($1, $2)
				ON CONFLICT DO NOTHING
			`, c.ID, skillID)
			if database.IsForeignKeyViolation(err) {
				return ErrSkillNotFound
			}
			if err != nil {
				return fmt.Errorf("link coach skill: %w", err)
			}
		}
		return nil
	})
}

func (r *repository) SetProfileImage(ctx context.Context, coachID uuid.UUID, url string, updatedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `
		UPDATE coaches SET profile_image_url = $2, updated_at = $3 WHERE id = $1
	`, coachID, url, updatedAt)
	if err != nil {
		return fmt.Errorf("set profile image: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrCoachNotFound
	}
	return nil
}
