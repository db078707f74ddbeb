package review

import "errors"

var (
	ErrNotEligible   = errors.New("not_eligible")
	ErrInvalidRating = errors.New("invalid_rating")
	ErrNotFound      = errors.New("not_found")
)
