package catalog

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("service not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidServiceType = errors.New("invalid service type")
)
