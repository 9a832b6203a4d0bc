package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert booking: %w", &pq.Error{Code: "23505", Constraint: "course_bookings_active_uniq"})

	if !IsUniqueViolation(err, "") {
		t.Fatal("expected unique violation without constraint filter")
	}
	if !IsUniqueViolation(err, "course_bookings_active_uniq") {
		t.Fatal("expected unique violation for matching constraint")
	}
	if IsUniqueViolation(err, "users_email_key") {
		t.Fatal("constraint filter must not match a different constraint")
	}
	if IsUniqueViolation(errors.New("boom"), "") {
		t.Fatal("plain errors are not unique violations")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	if !IsForeignKeyViolation(&pq.Error{Code: "23503"}) {
		t.Fatal("expected foreign key violation")
	}
	if IsForeignKeyViolation(&pq.Error{Code: "23505"}) {
		t.Fatal("unique violation is not a foreign key violation")
	}
}
