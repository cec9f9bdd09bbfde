package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/task-manager/internal/api/middleware"
	"github.com/99minutos/task-manager/internal/core/domain"
)

// bindAndValidate decodes the request body into req and runs the registered
// validator. Malformed bodies and failed rules both surface as
// domain.ErrInvalidInput.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return c.Validate(req)
}

// callerID returns the user id placed in context by the auth middleware.
// A missing id means the route was mounted without the gate.
func callerID(c echo.Context) (string, error) {
	id := middleware.UserID(c)
	if id == "" {
		return "", domain.ErrUnauthenticated
	}
	return id, nil
}
