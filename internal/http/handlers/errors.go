package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "farmacoplus/internal/log"
)

// ErrorHandler logs err and shows a friendly page without internal details.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Algo salió mal. Inténtalo de nuevo."
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		code = fe.Code
		if code == fiber.StatusNotFound {
			msg = "Página no encontrada"
		}
	}
	applog.Error(c, "server.error", err, map[string]any{"code": code})
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
