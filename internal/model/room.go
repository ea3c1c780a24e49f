package model

import (
	"strings"
	"time"
)

// Room status labels as stored in the rooms.status column.  AVAILABLE is
// the only state in which a room may be booked; the other three block new
// reservations.  Status is descriptive metadata managed by administrators,
// it is not flipped automatically by the reservation lifecycle.
const (
	RoomAvailable    = "AVAILABLE"
	RoomBusy         = "BUSY"
	RoomMaintenance  = "MAINTENANCE"
	RoomNotAvailable = "NOT_AVAILABLE"
)

// Room represents a bookable space in the coworking office.  Rooms are
// referenced by zero or more reservations through the reservation_rooms
// join table; the Room row itself carries no back-pointers.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – human readable label (e.g. "Sala A").
//  Capacity  – number of people the room holds; always positive.
//  Status    – one of the Room* status labels above.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Room struct {
	ID        uint64    `json:"id"`         // rooms.id
	Name      string    `json:"name"`       // rooms.name
	Capacity  uint32    `json:"capacity"`   // rooms.capacity
	Status    string    `json:"status"`     // rooms.status
	CreatedAt time.Time `json:"created_at"` // rooms.created_at
	UpdatedAt time.Time `json:"updated_at"` // rooms.updated_at
}

// Bookable reports whether the room may take new reservations.  The
// comparison is case-insensitive and tolerates a space in place of the
// underscore ("Not Available") because older rows used the display label.
func (r Room) Bookable() bool {
	status := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(r.Status), " ", "_"))
	switch status {
	case RoomBusy, RoomMaintenance, RoomNotAvailable:
		return false
	}
	return true
}

// ValidRoomStatus reports whether s names a known room status.  Used by
// the admin room handlers before persisting a create or update.
func ValidRoomStatus(s string) bool {
	status := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
	switch status {
	case RoomAvailable, RoomBusy, RoomMaintenance, RoomNotAvailable:
		return true
	}
	return false
}
