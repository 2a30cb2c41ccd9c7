package handler

import (
	"errors"

	"github.com/labstack/echo/v4"
)

// getUsername extracts the authenticated username placed in the context by
// the JWT middleware.
func getUsername(c echo.Context) (string, error) {
	if s, ok := c.Get("username").(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("missing username in context")
}
