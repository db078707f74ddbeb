package payment

import "errors"

var (
	ErrNotFound         = errors.New("not_found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotPayable       = errors.New("booking_not_payable")
	ErrAlreadyProcessed = errors.New("already_processed")
	ErrGateway          = errors.New("payment_gateway_error")
	ErrBadSignature     = errors.New("invalid webhook signature")
)
