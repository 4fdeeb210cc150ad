package services

import "errors"

// Sentinel errors the handlers map onto HTTP statuses. Validation and
// business-rule violations become 400s, credential failures 401s.
var (
	ErrValidation            = errors.New("validation failed")
	ErrEmailExists           = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidTransition     = errors.New("status transition not allowed")
	ErrInvoiceExists         = errors.New("visit already has an active invoice")
	ErrPaymentMethodRequired = errors.New("payment method is required")
	ErrUnknownPeriod         = errors.New("unknown report period")
)
