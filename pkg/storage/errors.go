package storage

import (
	"errors"
	"fmt"
)

// ErrKind categorises an error returned by the storage client. Every failure
// a caller can observe maps to exactly one of these kinds.
type ErrKind int

const (
	KindUnknown      ErrKind = iota
	KindValidation           // bad or missing attributes, raised before any request
	KindFileNotFound         // a local file could not be opened for upload
	KindTransport            // network or HTTP failure, including non-2xx responses
	KindParse                // response body did not match the expected shape
)

func (k ErrKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindFileNotFound:
		return "file_not_found"
	case KindTransport:
		return "transport"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Error is the error type returned by all client operations. Status is only
// set for transport errors produced from a non-2xx HTTP response.
type Error struct {
	Kind    ErrKind
	Message string
	Status  int
	Cause   error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("[%s] %s (status %d)", e.Kind, e.Message, e.Status)
	case e.Cause != nil:
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	default:
		return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	}
}

// Unwrap lets errors.Is / errors.As traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func wrapError(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// IsValidation reports whether err was raised by attribute validation before
// any request was issued.
func IsValidation(err error) bool {
	return kindOf(err) == KindValidation
}

// IsFileNotFound reports whether err means a local file reference could not
// be opened.
func IsFileNotFound(err error) bool {
	return kindOf(err) == KindFileNotFound
}

// IsTransport reports whether err came from the transport layer, including
// non-2xx responses and cancelled or timed-out requests.
func IsTransport(err error) bool {
	return kindOf(err) == KindTransport
}

// IsParse reports whether err means a response body did not have the
// expected shape.
func IsParse(err error) bool {
	return kindOf(err) == KindParse
}

func kindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
