package skill

import (
	"time"

	"github.com/google/uuid"
)

// Skill is a reference entry that courses and coaches link to
type Skill struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
