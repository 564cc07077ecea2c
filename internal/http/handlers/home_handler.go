package handlers

import "github.com/gofiber/fiber/v2"

type section struct {
	Title       string
	Description string
	Path        string
}

var sections = []section{
	{"Medicamentos", "Gestiona el inventario de medicamentos", "/medicamentos"},
	{"Clientes", "Administra la información de clientes", "/clientes"},
	{"Ventas", "Consulta y gestiona las ventas", "/ventas"},
	{"Consultas IA", "Pregunta en lenguaje natural sobre los datos de la farmacia", "/consultas-ia"},
}

type HomeHandler struct{}

// GET /
func (h *HomeHandler) Home(c *fiber.Ctx) error {
	return render(c, "home", fiber.Map{"Sections": sections, "Nav": "home"})
}
