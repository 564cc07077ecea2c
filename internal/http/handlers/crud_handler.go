package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	applog "farmacoplus/internal/log"
	"farmacoplus/internal/services"
	"farmacoplus/internal/validate"
)

// CRUDHandler serves one editable resource screen: list, add/edit form,
// create, update and delete.
type CRUDHandler[T services.Keyed, F any] struct {
	Name     string // log action prefix, e.g. "medications"
	Base     string // route prefix, e.g. "/medicamentos"
	Template string
	Page     func(*services.Workspace) *services.EditablePage[T, F]
	Extra    fiber.Map
}

func (h *CRUDHandler[T, F]) page(c *fiber.Ctx) *services.EditablePage[T, F] {
	return h.Page(workspace(c))
}

// load fetches on first visit or when asked to; a failed fetch is already on
// the page's status board.
func (h *CRUDHandler[T, F]) load(c *fiber.Ctx, p *services.EditablePage[T, F], force bool) {
	if !force && p.Loaded() {
		return
	}
	if err := p.Load(); err != nil && !errors.Is(err, services.ErrBusy) {
		applog.Error(c, h.Name+".fetch.fail", err, nil)
	}
}

func (h *CRUDHandler[T, F]) show(c *fiber.Ctx, status int, p *services.EditablePage[T, F]) error {
	data := fiber.Map{
		"Nav":    h.Name,
		"Base":   h.Base,
		"Page":   p.View(),
		"Editor": p.Editor(),
	}
	for k, v := range h.Extra {
		data[k] = v
	}
	return render(c.Status(status), h.Template, data)
}

func (h *CRUDHandler[T, F]) back(c *fiber.Ctx, p *services.EditablePage[T, F]) error {
	return c.Redirect(h.Base+"?page="+strconv.Itoa(p.View().Page), fiber.StatusSeeOther)
}

// GET /{base}: plain visits re-fetch; ?page= and ?select= navigate the
// last fetched collection.
func (h *CRUDHandler[T, F]) List(c *fiber.Ctx) error {
	p := h.page(c)
	h.load(c, p, c.Query("page") == "" && c.Query("select") == "")
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

// GET /{base}/nuevo
func (h *CRUDHandler[T, F]) NewForm(c *fiber.Ctx) error {
	p := h.page(c)
	h.load(c, p, false)
	p.OpenAdd()
	return h.show(c, fiber.StatusOK, p)
}

// GET /{base}/:id/editar
func (h *CRUDHandler[T, F]) EditForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "id"})
		return notFound(c, "Registro no encontrado")
	}
	p := h.page(c)
	h.load(c, p, false)
	if err := p.OpenEdit(id); err != nil {
		return notFound(c, "Registro no encontrado")
	}
	return h.show(c, fiber.StatusOK, p)
}

// GET /{base}/cancelar
func (h *CRUDHandler[T, F]) Cancel(c *fiber.Ctx) error {
	p := h.page(c)
	p.Cancel()
	return h.back(c, p)
}

// POST /{base}
func (h *CRUDHandler[T, F]) Create(c *fiber.Ctx) error {
	p := h.page(c)
	var f F
	if err := c.BodyParser(&f); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"form": h.Name})
		return c.Status(fiber.StatusBadRequest).SendString("invalid form")
	}
	err := p.Create(f)
	if err != nil && !errors.Is(err, services.ErrRefresh) {
		return h.failed(c, p, "create", err, nil)
	}
	return h.applied(c, p, "create", err, nil)
}

// POST /{base}/:id
func (h *CRUDHandler[T, F]) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "id"})
		return notFound(c, "Registro no encontrado")
	}
	p := h.page(c)
	var f F
	if err := c.BodyParser(&f); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"form": h.Name})
		return c.Status(fiber.StatusBadRequest).SendString("invalid form")
	}
	err := p.Update(id, f)
	if err != nil && !errors.Is(err, services.ErrRefresh) {
		return h.failed(c, p, "update", err, map[string]any{"id": id})
	}
	return h.applied(c, p, "update", err, map[string]any{"id": id})
}

// POST /{base}/:id/eliminar
func (h *CRUDHandler[T, F]) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "id"})
		return notFound(c, "Registro no encontrado")
	}
	p := h.page(c)
	err := p.Delete(id)
	if err != nil && !errors.Is(err, services.ErrRefresh) {
		return h.failed(c, p, "delete", err, map[string]any{"id": id})
	}
	return h.applied(c, p, "delete", err, map[string]any{"id": id})
}

// applied audits a mutation the backend accepted. A failed re-fetch is
// logged and stays on the page's status board for the redirected view.
func (h *CRUDHandler[T, F]) applied(c *fiber.Ctx, p *services.EditablePage[T, F], op string, refreshErr error, fields map[string]any) error {
	applog.Audit(c, h.Name+"."+op, fields)
	if refreshErr != nil {
		applog.Error(c, h.Name+".fetch.fail", refreshErr, fields)
	}
	return h.back(c, p)
}

// failed re-renders the page with the error the controller recorded.
func (h *CRUDHandler[T, F]) failed(c *fiber.Ctx, p *services.EditablePage[T, F], op string, err error, fields map[string]any) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		applog.Security(c, "validation.fail", map[string]any{"form": h.Name, "msg": verr.Msg})
		return h.show(c, fiber.StatusBadRequest, p)
	case errors.Is(err, services.ErrBusy):
		p.Status().Error("Hay una operación en curso, espera un momento")
		return h.show(c, fiber.StatusConflict, p)
	default:
		applog.Error(c, h.Name+"."+op+".fail", err, fields)
		return h.show(c, fiber.StatusBadGateway, p)
	}
}
