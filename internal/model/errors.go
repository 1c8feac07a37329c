package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by stores when a row does not exist.
var ErrNotFound = errors.New("not found")

// Kind classifies business-rule failures. Infrastructure failures (store or
// mail transport errors) are never wrapped in an Error and propagate as plain
// wrapped errors, so callers can tell the two apart with errors.As.
type Kind int

const (
	KindUnauthorized Kind = iota
	KindNotFound
	KindConflict
	KindValidation
)

// Error is a business-rule failure with a caller-facing message. Validation
// errors may carry individual rejection reasons.
type Error struct {
	Kind    Kind
	Message string
	Reasons []string
}

func (e *Error) Error() string {
	if len(e.Reasons) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Reasons, "; "))
	}
	return e.Message
}

// Unauthorized builds a KindUnauthorized error.
func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// NotFoundError builds a KindNotFound error.
func NotFoundError(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Conflict builds a KindConflict error.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Validation builds a KindValidation error carrying rejection reasons.
func Validation(msg string, reasons ...string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Reasons: reasons}
}

// KindOf reports the kind of a business-rule error. ok is false for
// infrastructure errors.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
