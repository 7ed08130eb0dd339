package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Appointment errors
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSlotTaken           = errors.New("slot already booked")
	ErrInvalidTimeSlot     = errors.New("invalid time slot")
	ErrInvalidLocalTime    = errors.New("local time does not exist in zone")
	ErrUnknownTimeZone     = errors.New("unknown time zone")
	ErrNotAppointmentOwner = errors.New("not the appointment owner")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
