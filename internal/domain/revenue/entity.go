package revenue

import (
	"strings"
	"time"
)

// Total is the monthly figure for one coach
type Total struct {
	Revenue      int64 `json:"revenue"`
	Participants int   `json:"participants"`
	CourseCount  int   `json:"course_count"`
}

// Report is the response of GET /api/admin/coaches/revenue
type Report struct {
	Total Total `json:"total"`
}

// BookingStats counts active bookings created in a window
type BookingStats struct {
	Bookings     int `db:"bookings"`
	Participants int `db:"participants"`
}

// Window is the half-open range [From, To).
type Window struct {
	From time.Time
	To   time.Time
}

// ParseMonth maps an English month name to time.Month. Case and surrounding
// whitespace are ignored.
func ParseMonth(s string) (time.Month, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m := time.January; m <= time.December; m++ {
		if strings.ToLower(m.String()) == s {
			return m, true
		}
	}
	return 0, false
}

// MonthWindow spans the whole month in UTC. To is the first instant of the
// next month and is excluded; Postgres timestamps only keep microseconds.
func MonthWindow(year int, month time.Month) Window {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Window{From: from, To: from.AddDate(0, 1, 0)}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}
