package credit

import "errors"

var (
	ErrPackageNotFound  = errors.New("credit package not found")
	ErrPackageNameTaken = errors.New("credit package name already exists")
	// ErrPackageInUse is returned when deleting a package that has purchases
	ErrPackageInUse = errors.New("credit package has purchases")
	ErrForbidden    = errors.New("admin role required")
)
