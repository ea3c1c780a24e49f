package model

import "time"

// Reservation status labels as stored in reservations.status.
const (
	ReservationPending   = "PENDING"
	ReservationConfirmed = "CONFIRMED"
	ReservationCanceled  = "CANCELED"
	ReservationCompleted = "COMPLETED"
)

// Reservation records a user's booking of one or more rooms for a fixed
// time interval.  The interval is closed on both ends for conflict
// purposes: two reservations that merely touch (one ends exactly when the
// other starts) count as overlapping.
//
// Fields:
//  ID          – primary key identifier, immutable once assigned.
//  UserID      – owning user; exactly one per reservation.
//  Status      – one of the Reservation* labels above.
//  Description – optional free text, at most 255 characters.
//  DateInit    – start of the interval (required).
//  DateEnd     – end of the interval (required, never before DateInit).
//  RoomIDs     – associated rooms; always at least one.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Reservation struct {
	ID          uint64    `json:"id"`          // reservations.id
	UserID      uint64    `json:"user_id"`     // reservations.user_id
	Status      string    `json:"status"`      // reservations.status
	Description string    `json:"description"` // reservations.description
	DateInit    time.Time `json:"date_init"`   // reservations.date_init
	DateEnd     time.Time `json:"date_end"`    // reservations.date_end
	RoomIDs     []uint64  `json:"room_ids"`    // reservation_rooms.room_id set
	CreatedAt   time.Time `json:"created_at"`  // reservations.created_at
	UpdatedAt   time.Time `json:"updated_at"`  // reservations.updated_at
}

// ValidReservationStatus reports whether s names a known reservation status.
func ValidReservationStatus(s string) bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCanceled, ReservationCompleted:
		return true
	}
	return false
}

// Overlaps reports whether the intervals [aInit, aEnd] and [bInit, bEnd]
// intersect under closed-interval comparison.  Touching boundaries count
// as an overlap, matching the SQL gate used by the reservation repository
// (date_init <= end AND date_end >= start).
func Overlaps(aInit, aEnd, bInit, bEnd time.Time) bool {
	return !aInit.After(bEnd) && !aEnd.Before(bInit)
}
