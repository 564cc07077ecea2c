package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"farmacoplus/internal/domain"
	applog "farmacoplus/internal/log"
	"farmacoplus/internal/services"
	"farmacoplus/internal/validate"
)

type QueryHandler struct{}

func (h *QueryHandler) show(c *fiber.Ctx, status int, s *services.QuerySession, extra fiber.Map) error {
	v, err := s.View()
	if err != nil {
		return err
	}
	data := fiber.Map{"Nav": "query", "Query": v}
	for k, val := range extra {
		data[k] = val
	}
	return render(c.Status(status), "query", data)
}

// GET /consultas-ia, ?sel=i shows a stored answer.
func (h *QueryHandler) Page(c *fiber.Ctx) error {
	s := workspace(c).Query
	if raw := c.Query("sel"); raw != "" {
		i, ok := validate.Index(raw)
		if !ok {
			return notFound(c, "Consulta no encontrada")
		}
		if err := s.Select(i); err != nil {
			if errors.Is(err, domain.ErrNoEntry) {
				return notFound(c, "Consulta no encontrada")
			}
			return err
		}
	}
	return h.show(c, fiber.StatusOK, s, nil)
}

// POST /consultas-ia
func (h *QueryHandler) Submit(c *fiber.Ctx) error {
	s := workspace(c).Query
	raw := c.FormValue("consulta")
	q, ok := validate.Question(raw)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "consulta"})
		s.SetDraft(raw)
		return h.show(c, fiber.StatusBadRequest, s, fiber.Map{"Err": "Escribe una consulta (máximo 1000 caracteres)"})
	}
	if err := s.Submit(q); err != nil {
		switch {
		case errors.Is(err, services.ErrBusy):
			return h.show(c, fiber.StatusConflict, s, fiber.Map{"Err": "Ya hay una consulta en curso"})
		case errors.Is(err, services.ErrEmptyQuestion):
			return h.show(c, fiber.StatusBadRequest, s, nil)
		}
		applog.Error(c, "nlq.query.fail", err, nil)
		return h.show(c, fiber.StatusBadGateway, s, nil)
	}
	applog.Audit(c, "nlq.query", map[string]any{"chars": len(q)})
	return c.Redirect("/consultas-ia", fiber.StatusSeeOther)
}

// POST /consultas-ia/historial/:idx/eliminar
func (h *QueryHandler) DeleteEntry(c *fiber.Ctx) error {
	i, ok := validate.Index(c.Params("idx"))
	if !ok {
		return notFound(c, "Consulta no encontrada")
	}
	if err := workspace(c).Query.Delete(i); err != nil {
		if errors.Is(err, domain.ErrNoEntry) {
			return notFound(c, "Consulta no encontrada")
		}
		return err
	}
	return c.Redirect("/consultas-ia", fiber.StatusSeeOther)
}

// POST /consultas-ia/nueva
func (h *QueryHandler) NewQuery(c *fiber.Ctx) error {
	workspace(c).Query.NewQuery()
	return c.Redirect("/consultas-ia", fiber.StatusSeeOther)
}
