package errs

// Domain-specific sentinel errors shared by the usecase and handler layers
var (
	// Conflict family: retryable by picking another slot or retrying shortly
	ErrBookingConflict     = New("booking conflict")
	ErrTimeSlotUnavailable = Mark(New("time slot unavailable"), ErrBookingConflict)
	ErrSlotLocked          = Mark(New("time slot is being processed"), ErrBookingConflict)

	// Caller faults
	ErrValidation               = New("validation error")
	ErrInvalidTimeSlot          = New("invalid time slot")
	ErrServiceInactive          = New("service is not active")
	ErrInvalidStatusTransition  = New("invalid booking status transition")
	ErrInvalidPaymentTransition = New("invalid payment status transition")

	// Lookups
	ErrBookingNotFound = New("booking not found")
	ErrServiceNotFound = New("service not found")

	// System degradation
	ErrTransactionTimeout         = New("transaction timed out")
	ErrConfirmationCodeGeneration = New("failed to generate unique confirmation code")
	ErrDatabaseOperationFailed    = New("database operation failed")
)

// IsConflict covers both a taken slot and a slot held by another attempt.
func IsConflict(err error) bool {
	return Is(err, ErrBookingConflict)
}

func IsValidation(err error) bool {
	return IsAny(err, ErrValidation, ErrInvalidTimeSlot, ErrServiceInactive)
}
