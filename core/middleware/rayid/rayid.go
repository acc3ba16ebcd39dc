package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header is the response header carrying the request id.
	Header = "X-Ray-ID"
	// LocalKey is the Fiber locals key the id is stored under.
	LocalKey = "ray_id"
)

// New returns a middleware that assigns every request a fresh RayID.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := uuid.NewString()
		c.Locals(LocalKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}

// Get returns the RayID of the current request, or "" outside the middleware.
func Get(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalKey).(string)
	return id
}
