package model

import "testing"

func TestRoomBookable(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{RoomAvailable, true},
		{"available", true},
		{"Available", true},
		{RoomBusy, false},
		{"busy", false},
		{RoomMaintenance, false},
		{"maintenance", false},
		{RoomNotAvailable, false},
		{"not_available", false},
		// legacy rows stored the display label with a space
		{"Not Available", false},
		{"NOT AVAILABLE", false},
		{"  BUSY  ", false},
		// unknown statuses do not block booking
		{"", true},
		{"SOMETHING_ELSE", true},
	}
	for _, tc := range cases {
		r := Room{Status: tc.status}
		if got := r.Bookable(); got != tc.want {
			t.Errorf("Room{Status: %q}.Bookable() = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestValidRoomStatus(t *testing.T) {
	for _, s := range []string{RoomAvailable, RoomBusy, RoomMaintenance, RoomNotAvailable, "available", "Not Available"} {
		if !ValidRoomStatus(s) {
			t.Errorf("ValidRoomStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "OPEN", "CLOSED"} {
		if ValidRoomStatus(s) {
			t.Errorf("ValidRoomStatus(%q) = true, want false", s)
		}
	}
}
