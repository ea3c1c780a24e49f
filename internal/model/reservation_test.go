package model

import (
	"testing"
	"time"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aInit, aEnd, bInit, bEnd   time.Time
		want                       bool
	}{
		{
			name:  "disjoint before",
			aInit: ts("2026-03-01T09:00:00Z"), aEnd: ts("2026-03-01T10:00:00Z"),
			bInit: ts("2026-03-01T11:00:00Z"), bEnd: ts("2026-03-01T12:00:00Z"),
			want: false,
		},
		{
			name:  "disjoint after",
			aInit: ts("2026-03-02T09:00:00Z"), aEnd: ts("2026-03-02T10:00:00Z"),
			bInit: ts("2026-03-01T09:00:00Z"), bEnd: ts("2026-03-01T10:00:00Z"),
			want: false,
		},
		{
			name:  "touching boundary counts as overlap",
			aInit: ts("2026-03-01T09:00:00Z"), aEnd: ts("2026-03-01T10:00:00Z"),
			bInit: ts("2026-03-01T10:00:00Z"), bEnd: ts("2026-03-01T11:00:00Z"),
			want: true,
		},
		{
			name:  "touching boundary reversed",
			aInit: ts("2026-03-01T10:00:00Z"), aEnd: ts("2026-03-01T11:00:00Z"),
			bInit: ts("2026-03-01T09:00:00Z"), bEnd: ts("2026-03-01T10:00:00Z"),
			want: true,
		},
		{
			name:  "partial overlap",
			aInit: ts("2026-03-01T09:00:00Z"), aEnd: ts("2026-03-01T11:00:00Z"),
			bInit: ts("2026-03-01T10:00:00Z"), bEnd: ts("2026-03-01T12:00:00Z"),
			want: true,
		},
		{
			name:  "containment",
			aInit: ts("2026-03-01T08:00:00Z"), aEnd: ts("2026-03-01T18:00:00Z"),
			bInit: ts("2026-03-01T10:00:00Z"), bEnd: ts("2026-03-01T11:00:00Z"),
			want: true,
		},
		{
			name:  "identical intervals",
			aInit: ts("2026-03-01T09:00:00Z"), aEnd: ts("2026-03-01T10:00:00Z"),
			bInit: ts("2026-03-01T09:00:00Z"), bEnd: ts("2026-03-01T10:00:00Z"),
			want: true,
		},
		{
			name:  "single instant interval inside",
			aInit: ts("2026-03-01T09:30:00Z"), aEnd: ts("2026-03-01T09:30:00Z"),
			bInit: ts("2026-03-01T09:00:00Z"), bEnd: ts("2026-03-01T10:00:00Z"),
			want: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.aInit, tc.aEnd, tc.bInit, tc.bEnd); got != tc.want {
				t.Fatalf("Overlaps() = %v, want %v", got, tc.want)
			}
			// The relation is symmetric.
			if got := Overlaps(tc.bInit, tc.bEnd, tc.aInit, tc.aEnd); got != tc.want {
				t.Fatalf("Overlaps() reversed = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestValidReservationStatus(t *testing.T) {
	for _, s := range []string{ReservationPending, ReservationConfirmed, ReservationCanceled, ReservationCompleted} {
		if !ValidReservationStatus(s) {
			t.Errorf("ValidReservationStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "pending", "UNKNOWN", "DONE"} {
		if ValidReservationStatus(s) {
			t.Errorf("ValidReservationStatus(%q) = true, want false", s)
		}
	}
}
