package shelf

import (
	"errors"
	"fmt"
)

// Code is a machine-readable reason attached to a store rejection.
type Code string

// Rejection codes. The user-actionable ones carry a message meant for display.
const (
	CodeRowOccupied     Code = "ROW_OCCUPIED"
	CodeLastRow         Code = "LAST_ROW"
	CodeInvalidCapacity Code = "INVALID_CAPACITY"
	CodeInvalidLayout   Code = "INVALID_LAYOUT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeEmptySelection  Code = "EMPTY_SELECTION"
	CodeInvalidBook     Code = "INVALID_BOOK"
)

// Error is a structured rejection from the layout store.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error with the same code, so errors.Is works against
// the sentinel values below.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Reject creates a rejection with a formatted message.
func Reject(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Sentinels for errors.Is checks.
var (
	ErrRowOccupied     = &Error{Code: CodeRowOccupied, Message: "row is not empty"}
	ErrLastRow         = &Error{Code: CodeLastRow, Message: "shelf needs at least one row"}
	ErrInvalidCapacity = &Error{Code: CodeInvalidCapacity, Message: "books per shelf must be positive"}
	ErrInvalidLayout   = &Error{Code: CodeInvalidLayout, Message: "layout breaks placement rules"}
	ErrNotFound        = &Error{Code: CodeNotFound, Message: "book not found"}
	ErrEmptySelection  = &Error{Code: CodeEmptySelection, Message: "no books selected"}
	ErrInvalidBook     = &Error{Code: CodeInvalidBook, Message: "invalid book"}
)

// UserMessage returns the reason to show the user when err is a store
// rejection. Transient failures (I/O, driver errors) return false.
func UserMessage(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Message, true
	}
	return "", false
}
