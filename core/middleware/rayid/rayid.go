package rayid

import (
	"strings"

	"vehicle-catalogue/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the ray id.
const HeaderName = "X-Ray-ID"

// New returns a middleware that tags every request with a ray id. A valid
// UUID sent by the client is reused, anything else is replaced.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.Clone(c.Get(HeaderName))
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Locals(logger.RayIDKey, id)
		c.Set(HeaderName, id)
		return c.Next()
	}
}
