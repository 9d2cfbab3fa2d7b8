package types

import "errors"

var (
	ErrCarNotFound        = errors.New("car not found")
	ErrCarNotAvailable    = errors.New("car is not available for the requested dates")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrBookingConflict    = errors.New("booking conflicts with an existing reservation")
	ErrInvalidDateRange   = errors.New("invalid date range")
	ErrUnsupportedGateway = errors.New("unsupported payment gateway")
	ErrGatewayUnreachable = errors.New("payment gateway unreachable")
)
