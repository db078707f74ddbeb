package pets

import "errors"

var (
	ErrNotFound  = errors.New("pet not found")
	ErrForbidden = errors.New("forbidden")
)
