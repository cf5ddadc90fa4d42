package services

import "errors"

// ErrorKind classifies every failure a core operation can return.
type ErrorKind string

const (
	KindValidation        ErrorKind = "VALIDATION"
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindAuth              ErrorKind = "AUTH"
	KindInsufficientFunds ErrorKind = "INSUFFICIENT_FUNDS"
)

// BankError is the structured result of a failed core operation.
// Field is set for validation failures and names the offending input.
type BankError struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *BankError) Error() string {
	return e.Message
}

// Is matches a sentinel of the same kind, so errors.Is(err, ErrNotFound) works
// for every not-found error regardless of its message.
func (e *BankError) Is(target error) bool {
	t, ok := target.(*BankError)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

var (
	ErrValidation        = &BankError{Kind: KindValidation}
	ErrNotFound          = &BankError{Kind: KindNotFound}
	ErrAuth              = &BankError{Kind: KindAuth}
	ErrInsufficientFunds = &BankError{Kind: KindInsufficientFunds}
)

func validationError(field, message string) *BankError {
	return &BankError{Kind: KindValidation, Field: field, Message: message}
}

func notFoundError(message string) *BankError {
	return &BankError{Kind: KindNotFound, Message: message}
}

func authError(message string) *BankError {
	return &BankError{Kind: KindAuth, Message: message}
}

func insufficientFundsError(message string) *BankError {
	return &BankError{Kind: KindInsufficientFunds, Message: message}
}

// KindOf returns the kind carried by err, or "" when err is not a BankError.
func KindOf(err error) ErrorKind {
	var be *BankError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}
