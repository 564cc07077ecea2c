package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	applog "farmacoplus/internal/log"
	"farmacoplus/internal/services"
	"farmacoplus/internal/validate"
)

type SaleHandler struct{}

func (h *SaleHandler) show(c *fiber.Ctx, status int, p *services.SalePage) error {
	return render(c.Status(status), "sales", fiber.Map{"Nav": "sales", "Base": "/ventas", "Page": p.View()})
}

// GET /ventas
func (h *SaleHandler) List(c *fiber.Ctx) error {
	p := workspace(c).Sales
	if (c.Query("page") == "" && c.Query("select") == "") || !p.Loaded() {
		if err := p.Load(); err != nil && !errors.Is(err, services.ErrBusy) {
			applog.Error(c, "sales.fetch.fail", err, nil)
		}
	}
	if n := c.Query("page"); n != "" {
		p.Goto(validate.Page(n))
	}
	if s := c.Query("select"); s != "" {
		if id, ok := validate.ID(s); ok {
			_ = p.Select(id)
		}
	}
	return h.show(c, fiber.StatusOK, p)
}

// POST /ventas/:id/eliminar
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "id"})
		return notFound(c, "Venta no encontrada")
	}
	p := workspace(c).Sales
	err := p.Delete(id)
	switch {
	case errors.Is(err, services.ErrBusy):
		p.Status().Error("Hay una operación en curso, espera un momento")
		return h.show(c, fiber.StatusConflict, p)
	case err != nil && !errors.Is(err, services.ErrRefresh):
		applog.Error(c, "sales.delete.fail", err, map[string]any{"id": id})
		return h.show(c, fiber.StatusBadGateway, p)
	}
	applog.Audit(c, "sales.delete", map[string]any{"id": id})
	if err != nil {
		applog.Error(c, "sales.fetch.fail", err, map[string]any{"id": id})
	}
	return c.Redirect("/ventas?page="+strconv.Itoa(p.View().Page), fiber.StatusSeeOther)
}
