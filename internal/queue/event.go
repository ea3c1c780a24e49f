// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationCreatedEvent is published once after a reservation commits.
// It carries everything a downstream notifier needs to invite the
// participants without querying the primary database.
type ReservationCreatedEvent struct {
	ReservationID     uint64   `json:"reservation_id"`
	UserID            uint64   `json:"user_id"`
	Username          string   `json:"username"`
	RoomNames         []string `json:"rooms"`
	DateInit          string   `json:"date_init"`
	DateEnd           string   `json:"date_end"`
	Description       string   `json:"description,omitempty"`
	ParticipantEmails []string `json:"participant_emails"`
	CreatedAt         string   `json:"created_at"`
}
