// Package handler implements the HTTP boundary: request decoding,
// authenticated-user extraction and the mapping from service errors to
// status codes. Business rules live in internal/service.
package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

var errNoUser = errors.New("no authenticated user in context")

// getUserID reads the authenticated user id that the JWT middleware stored
// in the context. JWT numeric claims decode as float64; tests may set the
// value directly as uint64 or string.
func getUserID(c echo.Context) (uint64, error) {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v), nil
	case uint64:
		return v, nil
	case int64:
		return uint64(v), nil
	case string:
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, errNoUser
		}
		return id, nil
	default:
		return 0, errNoUser
	}
}
