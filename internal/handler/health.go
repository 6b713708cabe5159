package handler // handler contains the HTTP handlers of the seat editor API

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a liveness probe for load balancers.  It returns "ok".
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
