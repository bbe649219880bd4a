package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the request conflicts with the current state of a resource.
var ErrConflict = errors.New("resource state conflict")

// ErrEmptyEntry indicates a posting request with fewer than two usable lines,
// or a line that is neither a pure debit nor a pure credit.
var ErrEmptyEntry = errors.New("entry must contain at least two one-sided lines")

// ErrUnbalanced indicates that the debit and credit totals of an entry differ.
var ErrUnbalanced = errors.New("entry debits and credits do not balance")

// ErrPeriodClosed indicates a posting dated inside a closed accounting period.
var ErrPeriodClosed = errors.New("accounting period is closed")

// ErrAlreadyLinked indicates the referenced document already carries a journal entry.
var ErrAlreadyLinked = errors.New("document is already linked to a journal entry")

// ErrHasPostings indicates an account cannot be deleted because postings reference it.
var ErrHasPostings = errors.New("account has postings and cannot be deleted")

// ErrNotPosted indicates an operation that requires a POSTED entry (e.g. reversal).
var ErrNotPosted = errors.New("journal entry is not posted")

// ErrStoreUnavailable indicates a transient infrastructure failure; callers may retry.
var ErrStoreUnavailable = errors.New("backing store unavailable")

// AppError wraps a lower-level error with an HTTP-ish status code and a message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that satisfies errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
