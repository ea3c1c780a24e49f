// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// booking engine and handlers to distinguish between different failure
// scenarios without treating absence as an exceptional path. For example,
// ErrRoomNotFound indicates that a room lookup came up empty, while
// ErrConflict signals that an operation cannot proceed due to existing
// dependent records (e.g. deleting a room that still backs reservations).
package repository

import "errors"

// ErrRoomNotFound is returned when a room lookup fails.
var ErrRoomNotFound = errors.New("room not found")

// ErrReservationNotFound is returned when a reservation lookup fails.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrConflict is returned when a delete or update cannot be
// performed because of conflicting state, such as attempting to
// delete a room that still has reservations attached. Handlers
// should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
