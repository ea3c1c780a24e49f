// Package handler defines the HTTP handlers.  Handlers translate
// between echo requests and the booking engine / repositories; business
// rules live below this layer.
package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/grupo05/coworking-space/internal/booking"
)

// getUserID extracts the user_id stashed by the JWT middleware and
// converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getRole returns the role stashed by the JWT middleware, empty when absent.
func getRole(c echo.Context) string {
	if s, ok := c.Get("role").(string); ok {
		return strings.ToUpper(strings.TrimSpace(s))
	}
	return ""
}

// identityFrom builds the caller identity the booking engine expects.
func identityFrom(c echo.Context) (booking.Identity, error) {
	uid, err := getUserID(c)
	if err != nil {
		return booking.Identity{}, err
	}
	return booking.Identity{UserID: uid, Role: getRole(c)}, nil
}

// parseIDParam parses a positive numeric path parameter.
func parseIDParam(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// parseTimestamp accepts RFC 3339 timestamps and plain dates
// (YYYY-MM-DD).  Plain dates are interpreted as midnight UTC.
func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// engineError writes a booking engine failure as JSON, mapping the
// error kind to a status code.  Validation failures include the
// field-level reasons map.
func engineError(c echo.Context, err error) error {
	kind := booking.KindOf(err)
	body := echo.Map{"error": string(kind)}
	var be *booking.Error
	if errors.As(err, &be) {
		body["message"] = be.Message
		if len(be.Reasons) > 0 {
			body["reasons"] = be.Reasons
		}
	}
	return c.JSON(booking.HTTPStatus(kind), body)
}
