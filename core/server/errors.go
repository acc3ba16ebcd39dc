package server

import (
	"errors"
	"fmt"
	"net/http"

	"isoserve/core/logger"
	"isoserve/core/middleware/isolation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var (
	// ErrNotFound means the request path does not map to a servable file.
	ErrNotFound = errors.New("not found")
	// ErrAccess means the request path tried to leave the document root.
	ErrAccess = errors.New("access denied")
)

// StartupError is returned when the listener cannot be bound.
type StartupError struct {
	Addr string
	Err  error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("failed to listen on %s: %v", e.Addr, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// StatusCode maps a handler error to the HTTP status sent to the client.
// Anything unrecognised is an internal error.
func StatusCode(err error) int {
	var fe *fiber.Error
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrAccess):
		return fiber.StatusForbidden
	case errors.As(err, &fe):
		return fe.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// handleError is the Fiber error handler. Internal errors are logged, the
// client only sees the status text.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := StatusCode(err)
	if code >= fiber.StatusInternalServerError {
		logger.WithRayID(s.logger, c).Error("Request failed",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	c.Response().ResetBody()
	isolation.Apply(c)
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(code).SendString(http.StatusText(code))
}
