package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrNameUnchanged      = errors.New("name is unchanged")
	ErrPasswordMismatch   = errors.New("new password and confirmation do not match")
	ErrPasswordUnchanged  = errors.New("new password must differ from the current one")
	ErrWrongPassword      = errors.New("current password is incorrect")
)
