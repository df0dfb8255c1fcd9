package store

import (
	"errors"
	"fmt"
)

// Kind classifies store failures so handlers can pick a response code
// without string matching.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindStorage    Kind = "storage"
)

// Error is the discriminated failure value returned by all fallible store
// operations. Field names the offending input for validation failures.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func validationErr(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func notFoundErr(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func storageErr(cause error) *Error {
	return &Error{Kind: KindStorage, Message: "storage operation failed", cause: cause}
}

// KindOf returns the error's kind, or KindStorage for anything that is not a
// store.Error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindStorage
}

// IsNotFound reports whether err is a not-found store error.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsValidation reports whether err is a validation store error.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}
