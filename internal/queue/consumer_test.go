package queue

import (
	"strings"
	"testing"
)

func TestInvitationLines(t *testing.T) {
	ev := ReservationCreatedEvent{
		ReservationID:     12,
		UserID:            3,
		Username:          "alice",
		RoomNames:         []string{"Sala A", "Sala B"},
		DateInit:          "2026-03-01T09:00:00Z",
		DateEnd:           "2026-03-01T11:00:00Z",
		ParticipantEmails: []string{"bob@example.com", "carol@example.com"},
		CreatedAt:         "2026-02-28T10:00:00Z",
	}
	lines := InvitationLines(ev)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "to=bob@example.com") {
		t.Errorf("first line missing recipient: %s", lines[0])
	}
	if !strings.Contains(lines[1], "to=carol@example.com") {
		t.Errorf("second line missing recipient: %s", lines[1])
	}
	for _, line := range lines {
		for _, want := range []string{"reservation_id=12", `host="alice"`, "Sala A,Sala B", "from=2026-03-01T09:00:00Z", "until=2026-03-01T11:00:00Z"} {
			if !strings.Contains(line, want) {
				t.Errorf("line %q missing %q", line, want)
			}
		}
	}
}

func TestInvitationLinesNoParticipants(t *testing.T) {
	if lines := InvitationLines(ReservationCreatedEvent{ReservationID: 1}); len(lines) != 0 {
		t.Fatalf("event without participants produced %d lines", len(lines))
	}
}
