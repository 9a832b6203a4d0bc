package booking

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memStore is an in-memory Store. InTx holds a single mutex, standing in
// for the row locks of the Postgres implementation.
type memStore struct {
	mu        sync.Mutex
	courses   map[uuid.UUID]Course
	users     map[uuid.UUID]bool
	purchased map[uuid.UUID]int
	bookings  []*Booking

	// loseCancelRace makes CancelActive report zero rows
	loseCancelRace bool
}

func newMemStore() *memStore {
	return &memStore{
		courses:   map[uuid.UUID]Course{},
		users:     map[uuid.UUID]bool{},
		purchased: map[uuid.UUID]int{},
	}
}

func (m *memStore) addUser(credits int) uuid.UUID {
	id := uuid.New()
	m.users[id] = true
	m.purchased[id] = credits
	return id
}

func (m *memStore) addCourse(max int) uuid.UUID {
	id := uuid.New()
	m.courses[id] = Course{ID: id, MaxParticipants: max}
	return id
}

func (m *memStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := append([]*Booking(nil), m.bookings...)
	if err := fn(memTx{m}); err != nil {
		m.bookings = snapshot
		return err
	}
	return nil
}

// Store methods used outside InTx take the lock; memTx calls the unlocked
// helpers because InTx already holds it.

func (m *memStore) SumPurchasedCredits(ctx context.Context, userID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.purchased[userID], nil
}

func (m *memStore) CountActiveBookings(ctx context.Context, userID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.countActive(userID), nil
}

func (m *memStore) FindActive(ctx context.Context, userID, courseID uuid.UUID) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findActive(userID, courseID), nil
}

func (m *memStore) CancelActive(ctx context.Context, userID, courseID uuid.UUID, at time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loseCancelRace {
		return 0, nil
	}
	var n int64
	for _, b := range m.bookings {
		if b.UserID == userID && b.CourseID == courseID && b.IsActive() {
			b.CancelledAt = sql.NullTime{Time: at, Valid: true}
			n++
		}
	}
	return n, nil
}

func (m *memStore) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]BookedCourse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []BookedCourse{}
	for _, b := range m.bookings {
		if b.UserID == userID && b.IsActive() {
			out = append(out, BookedCourse{
				CourseID: b.CourseID,
				Status:   StatusOf(b.JoinAt, b.CancelledAt),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseID.String() < out[j].CourseID.String() })
	return out, nil
}

func (m *memStore) countActive(userID uuid.UUID) int {
	n := 0
	for _, b := range m.bookings {
		if b.UserID == userID && b.IsActive() {
			n++
		}
	}
	return n
}

func (m *memStore) findActive(userID, courseID uuid.UUID) *Booking {
	for _, b := range m.bookings {
		if b.UserID == userID && b.CourseID == courseID && b.IsActive() {
			cp := *b
			return &cp
		}
	}
	return nil
}

func (m *memStore) activeOnCourse(courseID uuid.UUID) int {
	n := 0
	for _, b := range m.bookings {
		if b.CourseID == courseID && b.IsActive() {
			n++
		}
	}
	return n
}

type memTx struct {
	m *memStore
}

func (t memTx) SumPurchasedCredits(ctx context.Context, userID uuid.UUID) (int, error) {
	return t.m.purchased[userID], nil
}

func (t memTx) CountActiveBookings(ctx context.Context, userID uuid.UUID) (int, error) {
	return t.m.countActive(userID), nil
}

func (t memTx) LockCourse(ctx context.Context, courseID uuid.UUID) (*Course, error) {
	c, ok := t.m.courses[courseID]
	if !ok {
		return nil, ErrCourseNotFound
	}
	return &c, nil
}

func (t memTx) LockUser(ctx context.Context, userID uuid.UUID) error {
	if !t.m.users[userID] {
		return ErrUserNotFound
	}
	return nil
}

func (t memTx) FindActive(ctx context.Context, userID, courseID uuid.UUID) (*Booking, error) {
	return t.m.findActive(userID, courseID), nil
}

func (t memTx) CountActiveByCourse(ctx context.Context, courseID uuid.UUID) (int, error) {
	return t.m.activeOnCourse(courseID), nil
}

func (t memTx) Insert(ctx context.Context, b *Booking) error {
	if t.m.findActive(b.UserID, b.CourseID) != nil {
		return ErrAlreadyBooked
	}
	cp := *b
	t.m.bookings = append(t.m.bookings, &cp)
	return nil
}
