// Package booking implements the reservation conflict and multi-room
// booking engine.  It decides whether a requested interval can be booked,
// atomically associates a reservation with its rooms, enforces ownership,
// and keeps room availability coherent with the reservation lifecycle.
// The HTTP layer is a thin translation around this package.
package booking

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the stable classification of an engine failure.  Handlers map
// kinds to HTTP statuses; callers branch on kinds, never on messages.
type Kind string

const (
	KindBadRequest       Kind = "BAD_REQUEST"
	KindForbidden        Kind = "FORBIDDEN"
	KindDateNotAvailable Kind = "DATE_NOT_AVAILABLE"
	KindRoomNotAvailable Kind = "ROOM_NOT_AVAILABLE"
	KindNotFound         Kind = "NOT_FOUND"
	KindConflict         Kind = "CONFLICT"
	KindStoreError       Kind = "STORE_ERROR"
	KindInternal         Kind = "INTERNAL"
)

// Error carries a stable kind, a human-readable message and, for
// validation failures, a field-level reasons map.  Store errors wrap the
// underlying cause for logs; the cause is never serialized to callers.
type Error struct {
	Kind    Kind              `json:"kind"`
	Message string            `json:"message"`
	Reasons map[string]string `json:"reasons,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// NewError builds an engine error of the given kind.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Invalid builds a BadRequest error with a field-level reasons map.
func Invalid(message string, reasons map[string]string) *Error {
	return &Error{Kind: KindBadRequest, Message: message, Reasons: reasons}
}

// StoreErr wraps a persistence failure.  Store errors are always
// surfaced, never retried transparently: a blind retry could double-book
// a room.
func StoreErr(err error) *Error {
	return &Error{Kind: KindStoreError, Message: "store operation failed", cause: err}
}

// Internal wraps an unanticipated failure.  The cause stays available for
// logging but the message shown to callers is generic.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", cause: err}
}

// KindOf extracts the kind from any error.  Non-engine errors classify as
// Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error kind to the HTTP status the handlers respond
// with.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindDateNotAvailable, KindRoomNotAvailable, KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindStoreError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
