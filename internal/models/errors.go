package models

import "errors"

// Common errors used throughout the application
var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrPassportNotFound = errors.New("passport not found")
	ErrSellerNotFound   = errors.New("seller not found")
	ErrInvalidInput     = errors.New("invalid input")
)

// GenericDeclineCode is the synthetic error code assigned to failures that
// arrive without a structured error list.
const GenericDeclineCode = "GENERIC_DECLINE"

// ErrorDetail is one normalized payment-processor error. Code maps through a
// static message table; Detail is the raw server-provided text.
type ErrorDetail struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}
