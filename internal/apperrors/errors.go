package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates a missing or invalid session on a protected operation.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the resource is in a state that does not allow the operation.
var ErrConflict = errors.New("conflict")

// ErrInternal indicates an unexpected storage or runtime failure.
var ErrInternal = errors.New("internal server error")

// ErrUnbalancedEntry indicates that the debit and credit sides of a journal entry differ.
var ErrUnbalancedEntry = errors.New("journal entry is unbalanced")

// ErrInvalidAccountReference indicates that a journal line points at an account that does not exist.
var ErrInvalidAccountReference = errors.New("invalid account reference")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// UnbalancedEntryError reports both computed sums so the caller can correct the input.
type UnbalancedEntryError struct {
	SumDebit  decimal.Decimal
	SumCredit decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("%s: debits %s, credits %s", ErrUnbalancedEntry.Error(), e.SumDebit.StringFixed(2), e.SumCredit.StringFixed(2))
}

// Is lets errors.Is(err, ErrUnbalancedEntry) match.
func (e *UnbalancedEntryError) Is(target error) bool {
	return target == ErrUnbalancedEntry
}

// NewUnbalancedEntryError creates an UnbalancedEntryError.
func NewUnbalancedEntryError(sumDebit, sumCredit decimal.Decimal) *UnbalancedEntryError {
	return &UnbalancedEntryError{SumDebit: sumDebit, SumCredit: sumCredit}
}
