package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRateUserID(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"float64 sub claim", float64(7), "7"},
		{"uint64", uint64(12), "12"},
		{"string", "42", "42"},
		{"empty string", "", "anon"},
		{"unset", nil, "anon"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
			if tc.value != nil {
				c.Set("user_id", tc.value)
			}
			if got := rateUserID(c); got != tc.want {
				t.Errorf("rateUserID = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRateKeySeparatesUsers(t *testing.T) {
	e := echo.New()
	newCtx := func() echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/v1/reservations", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/v1/reservations")
		return c
	}

	anon := rateKey("rl", newCtx())
	if !strings.Contains(anon, "anon") {
		t.Errorf("anonymous key %q should fall into the anon bucket", anon)
	}

	authed := newCtx()
	authed.Set("user_id", float64(7))
	if got := rateKey("rl", authed); got == anon {
		t.Error("authenticated and anonymous requests must not share a bucket")
	}
}
