package booking

import (
	"errors"
	"fmt"
)

var (
	ErrCourseNotFound  = errors.New("course not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrAlreadyBooked   = errors.New("course already booked")
	ErrBookingNotFound = errors.New("no active booking for course")
	// ErrCancelFailed means the booking was cancelled concurrently
	ErrCancelFailed = errors.New("update failed")

	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrNoCredits        = fmt.Errorf("%w: no credits remaining", ErrCapacityExceeded)
	ErrCourseFull       = fmt.Errorf("%w: course is full", ErrCapacityExceeded)
)
