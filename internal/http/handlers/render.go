package handlers

import (
	"github.com/gofiber/fiber/v2"

	"farmacoplus/internal/services"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		// Fall back to the cookie when Locals was not populated.
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": msg})
}

// workspace returns the page controllers of the caller's session.
func workspace(c *fiber.Ctx) *services.Workspace {
	ws, _ := c.Locals("workspace").(*services.Workspace)
	return ws
}

// ExposeCSRF copies the token the CSRF middleware stored under "csrf" to
// the key templates read.
func ExposeCSRF(c *fiber.Ctx) error {
	if tok, ok := c.Locals("csrf").(string); ok {
		c.Locals("CSRFToken", tok)
	}
	return c.Next()
}
