package booking

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindBadRequest, http.StatusBadRequest},
		{KindForbidden, http.StatusForbidden},
		{KindDateNotAvailable, http.StatusConflict},
		{KindRoomNotAvailable, http.StatusConflict},
		{KindConflict, http.StatusConflict},
		{KindNotFound, http.StatusNotFound},
		{KindStoreError, http.StatusServiceUnavailable},
		{KindInternal, http.StatusInternalServerError},
		{Kind("SOMETHING_NEW"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.kind); got != tc.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(NewError(KindNotFound, "gone")); got != KindNotFound {
		t.Errorf("KindOf(engine error) = %s, want %s", got, KindNotFound)
	}
	wrapped := fmt.Errorf("handler context: %w", NewError(KindForbidden, "nope"))
	if got := KindOf(wrapped); got != KindForbidden {
		t.Errorf("KindOf(wrapped) = %s, want %s", got, KindForbidden)
	}
	if got := KindOf(errors.New("plain")); got != KindInternal {
		t.Errorf("KindOf(plain error) = %s, want %s", got, KindInternal)
	}
}

func TestStoreErrWrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := StoreErr(cause)
	if !errors.Is(err, cause) {
		t.Fatal("StoreErr must wrap its cause for errors.Is")
	}
	if KindOf(err) != KindStoreError {
		t.Fatalf("KindOf(StoreErr) = %s, want %s", KindOf(err), KindStoreError)
	}
}

func TestInvalidCarriesReasons(t *testing.T) {
	err := Invalid("invalid reservation payload", map[string]string{"date_init": "required"})
	var be *Error
	if !errors.As(err, &be) {
		t.Fatal("Invalid must produce a *Error")
	}
	if be.Kind != KindBadRequest {
		t.Errorf("kind = %s, want %s", be.Kind, KindBadRequest)
	}
	if be.Reasons["date_init"] != "required" {
		t.Errorf("reasons = %v, want date_init: required", be.Reasons)
	}
}
