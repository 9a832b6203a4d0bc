package skill

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/livefit/livefit-api/internal/pkg/database"
)

type Repository interface {
	List(ctx context.Context) ([]Skill, error)
	Create(ctx context.Context, s *Skill) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Skill, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	skills := []Skill{}
	if err := r.db.SelectContext(ctx, &skills, `SELECT id, name, created_at FROM skills ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return skills, nil
}

func (r *repository) Create(ctx context.Context, s *Skill) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO skills (id, name, created_at) VALUES ($1, $2, $3)
	`, s.ID, s.Name, s.CreatedAt)
	if database.IsUniqueViolation(err, "skills_name_key") {
		return ErrSkillNameTaken
	}
	if err != nil {
		return fmt.Errorf("create skill: %w", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if database.IsForeignKeyViolation(err) {
		return ErrSkillInUse
	}
	if err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	if rows == 0 {
		return ErrSkillNotFound
	}
	return nil
}
