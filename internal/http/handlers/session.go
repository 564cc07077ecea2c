package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"farmacoplus/internal/services"
)

// Session binds each browser to a workspace through the sid cookie. Unknown
// or malformed ids get a fresh one.
func Session(ws *services.Workspaces) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if _, err := uuid.Parse(sid); err != nil {
			sid = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     "sid",
				Value:    sid,
				Path:     "/",
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
				Secure:   false, // enable true behind TLS
			})
		}
		c.Locals("sid", sid)
		c.Locals("workspace", ws.Get(sid))
		return c.Next()
	}
}
