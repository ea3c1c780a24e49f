package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestJWTAuth(t *testing.T) {
	valid := signToken(t, testSecret, jwt.MapClaims{
		"sub":  float64(7),
		"role": "USER",
		"exp":  time.Now().Add(time.Minute).Unix(),
	})
	expired := signToken(t, testSecret, jwt.MapClaims{
		"sub":  float64(7),
		"role": "USER",
		"exp":  time.Now().Add(-time.Minute).Unix(),
	})
	wrongKey := signToken(t, "other-secret", jwt.MapClaims{
		"sub": float64(7),
		"exp": time.Now().Add(time.Minute).Unix(),
	})

	cases := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + valid, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong signing key", "Bearer " + wrongKey, http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var gotUser, gotRole interface{}
			next := func(c echo.Context) error {
				gotUser = c.Get("user_id")
				gotRole = c.Get("role")
				return c.String(http.StatusOK, "ok")
			}
			if err := JWTAuth(testSecret)(next)(c); err != nil {
				t.Fatalf("middleware returned error: %v", err)
			}
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if tc.wantStatus == http.StatusOK {
				if sub, _ := gotUser.(float64); uint64(sub) != 7 {
					t.Errorf("user_id = %v, want 7", gotUser)
				}
				if gotRole != "USER" {
					t.Errorf("role = %v, want USER", gotRole)
				}
			}
		})
	}
}
