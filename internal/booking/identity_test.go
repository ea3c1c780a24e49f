package booking

import (
	"testing"
	"time"

	"github.com/grupo05/coworking-space/internal/model"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func zeroTime() time.Time { return time.Time{} }

func TestIdentityCanActFor(t *testing.T) {
	cases := []struct {
		name    string
		id      Identity
		ownerID uint64
		want    bool
	}{
		{"owner acts for self", Identity{UserID: 7, Role: model.RoleUser}, 7, true},
		{"user cannot act for another", Identity{UserID: 7, Role: model.RoleUser}, 8, false},
		{"admin acts for anyone", Identity{UserID: 1, Role: model.RoleAdmin}, 99, true},
		{"admin acts for self", Identity{UserID: 1, Role: model.RoleAdmin}, 1, true},
		{"empty role is not admin", Identity{UserID: 7}, 8, false},
		{"role is case sensitive", Identity{UserID: 7, Role: "admin"}, 8, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.id.CanActFor(tc.ownerID); got != tc.want {
				t.Fatalf("CanActFor(%d) = %v, want %v", tc.ownerID, got, tc.want)
			}
		})
	}
}

func TestValidateInterval(t *testing.T) {
	init := ts("2026-03-01T09:00:00Z")
	end := ts("2026-03-01T10:00:00Z")

	if err := validateInterval(init, end, []uint64{1}, "weekly sync", model.ReservationPending); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	cases := []struct {
		name  string
		check func() *Error
		field string
	}{
		{"missing date_init", func() *Error {
			return validateInterval(zeroTime(), end, []uint64{1}, "", "")
		}, "date_init"},
		{"missing date_end", func() *Error {
			return validateInterval(init, zeroTime(), []uint64{1}, "", "")
		}, "date_end"},
		{"end before init", func() *Error {
			return validateInterval(end, init, []uint64{1}, "", "")
		}, "date_end"},
		{"no rooms", func() *Error {
			return validateInterval(init, end, nil, "", "")
		}, "room_ids"},
		{"zero room id", func() *Error {
			return validateInterval(init, end, []uint64{0}, "", "")
		}, "room_ids"},
		{"oversized description", func() *Error {
			long := make([]byte, maxDescriptionLen+1)
			for i := range long {
				long[i] = 'x'
			}
			return validateInterval(init, end, []uint64{1}, string(long), "")
		}, "description"},
		{"unknown status", func() *Error {
			return validateInterval(init, end, []uint64{1}, "", "BOGUS")
		}, "status"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.check()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if err.Kind != KindBadRequest {
				t.Fatalf("kind = %s, want %s", err.Kind, KindBadRequest)
			}
			if _, ok := err.Reasons[tc.field]; !ok {
				t.Fatalf("reasons = %v, want entry for %q", err.Reasons, tc.field)
			}
		})
	}
}

func TestValidateIntervalSameInstant(t *testing.T) {
	at := ts("2026-03-01T09:00:00Z")
	if err := validateInterval(at, at, []uint64{1}, "", ""); err != nil {
		t.Fatalf("equal start and end must be accepted: %v", err)
	}
}
