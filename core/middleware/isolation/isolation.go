package isolation

import "github.com/gofiber/fiber/v2"

// Header names and the values that enable cross-origin isolation.
const (
	HeaderOpenerPolicy   = "Cross-Origin-Opener-Policy"
	HeaderEmbedderPolicy = "Cross-Origin-Embedder-Policy"

	OpenerPolicy   = "same-origin"
	EmbedderPolicy = "require-corp"
)

// Apply sets both isolation headers on the response. It is idempotent.
func Apply(c *fiber.Ctx) {
	c.Set(HeaderOpenerPolicy, OpenerPolicy)
	c.Set(HeaderEmbedderPolicy, EmbedderPolicy)
}

// New returns a middleware that sets the isolation headers and passes the
// request on unconditionally.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		Apply(c)
		return c.Next()
	}
}
