package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")

	// ErrImbalancedEntry indicates a journal entry whose debits and credits do
	// not sum to the same total. This is an internal invariant violation, never
	// a user error.
	ErrImbalancedEntry = NewDomainError("IMBALANCED_ENTRY", "Journal entry debits do not equal credits")

	// ErrMissingAccount indicates a seeded chart-of-accounts entry is absent.
	// A correctly initialized system can never produce it.
	ErrMissingAccount = NewDomainError("MISSING_ACCOUNT", "Seeded account is missing from the chart of accounts")

	// ErrNumberConflict indicates a document number collision between
	// concurrent transactions. Callers retry the whole unit of work.
	ErrNumberConflict = NewDomainError("NUMBER_CONFLICT", "Document number was taken by a concurrent transaction")
)

// IsRetryable reports whether the error is a transient conflict that a caller
// may retry without surfacing a failure.
func IsRetryable(err error) bool {
	de, ok := err.(*DomainError)
	return ok && (de.Code == ErrNumberConflict.Code || de.Code == ErrConcurrencyConflict.Code)
}
