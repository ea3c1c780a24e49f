package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health answers liveness checks from load balancers and uptime
// monitors.  It deliberately touches no dependency: a degraded Redis or
// MySQL shows up in request errors, not here.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
