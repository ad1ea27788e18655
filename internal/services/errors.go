package services

import "errors"

var (
	// ErrValidation marks bad input: a missing required field or a duplicate invoice number.
	ErrValidation = errors.New("validation failed")
	// ErrOrderNotFound is returned when no order has the requested invoice number.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidOrderStatus is returned for a status outside confirm/Preparing/Completed.
	ErrInvalidOrderStatus = errors.New("invalid order status")
	// ErrInvalidDate is returned for a date parameter that parses as neither form.
	ErrInvalidDate = errors.New("invalid date")
	// ErrComputation wraps store failures hit while computing a report.
	ErrComputation = errors.New("failed to compute sales data")
)
