package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name       string
		role       interface{}
		allowed    []string
		wantStatus int
	}{
		{"allowed single role", "ADMIN", []string{"ADMIN"}, http.StatusOK},
		{"allowed from set", "USER", []string{"USER", "ADMIN"}, http.StatusOK},
		{"role not in set", "USER", []string{"ADMIN"}, http.StatusForbidden},
		{"missing role", nil, []string{"ADMIN"}, http.StatusForbidden},
		{"role wrong type", 42, []string{"ADMIN"}, http.StatusForbidden},
		{"case sensitive", "admin", []string{"ADMIN"}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tc.role != nil {
				c.Set("role", tc.role)
			}
			next := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
			err := RequireRole(tc.allowed...)(next)(c)
			if err != nil {
				t.Fatalf("middleware returned error: %v", err)
			}
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}
