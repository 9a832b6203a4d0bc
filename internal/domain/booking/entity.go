package booking

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status of a booking as shown to its owner
type Status string

const (
	StatusPending   Status = "pending"
	StatusJoined    Status = "joined"
	StatusCancelled Status = "cancelled"
)

// Booking is a seat held by a user on a course. A nil CancelledAt means the
// booking is active and consumes one credit.
type Booking struct {
	ID          uuid.UUID    `db:"id"`
	UserID      uuid.UUID    `db:"user_id"`
	CourseID    uuid.UUID    `db:"course_id"`
	CreatedAt   time.Time    `db:"created_at"`
	JoinAt      sql.NullTime `db:"join_at"`
	CancelledAt sql.NullTime `db:"cancelled_at"`
}

func (b *Booking) IsActive() bool {
	return !b.CancelledAt.Valid
}

// Course is the part of a course row the booking engine needs
type Course struct {
	ID              uuid.UUID `db:"id"`
	MaxParticipants int       `db:"max_participants"`
}

// BookedCourse is one entry of the user's credit summary
type BookedCourse struct {
	Name        string       `db:"name" json:"name"`
	CourseID    uuid.UUID    `db:"course_id" json:"course_id"`
	CoachName   string       `db:"coach_name" json:"coach_name"`
	Status      Status       `db:"-" json:"status"`
	StartAt     time.Time    `db:"start_at" json:"start_at"`
	EndAt       time.Time    `db:"end_at" json:"end_at"`
	MeetingURL  string       `db:"meeting_url" json:"meeting_url"`
	JoinAt      sql.NullTime `db:"join_at" json:"-"`
	CancelledAt sql.NullTime `db:"cancelled_at" json:"-"`
}

// StatusOf derives the display status of a booking
func StatusOf(joinAt, cancelledAt sql.NullTime) Status {
	switch {
	case cancelledAt.Valid:
		return StatusCancelled
	case joinAt.Valid:
		return StatusJoined
	default:
		return StatusPending
	}
}

// Summary is the response of GET /api/users/courses
type Summary struct {
	CreditRemain  int            `json:"credit_remain"`
	CreditUsage   int            `json:"credit_usage"`
	CourseBooking []BookedCourse `json:"course_booking"`
}
