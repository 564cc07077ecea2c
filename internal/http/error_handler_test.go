package handlers_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"farmacoplus/internal/http/handlers"
)

func TestErrorHandlerFriendlyMessage(t *testing.T) {
	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine, ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())

	app.Get("/err", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusInternalServerError, "dial tcp 10.0.0.5:8080: secret trace")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/err", nil))
	if err != nil {
		t.Fatalf("test request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	s := string(body)
	if !strings.Contains(s, "Algo salió mal") {
		t.Fatalf("friendly message missing; body=%s", s)
	}
	if strings.Contains(s, "dial tcp") || strings.Contains(s, "secret") {
		t.Fatalf("internal details leaked to user; body=%s", s)
	}
}

func TestCSRFRequiredOnForms(t *testing.T) {
	app, _ := newApp(t,
		csrf.New(csrf.Config{KeyLookup: "form:csrf", ContextKey: "csrf", CookieName: "csrf_", CookieSameSite: "Lax"}),
		handlers.ExposeCSRF,
	)

	b := newBrowser(t, app)
	resp, body := b.get("/medicamentos/nuevo")
	expectStatus(t, resp, 200)
	tok := b.cookies["csrf_"]
	if tok == "" {
		t.Fatal("csrf cookie missing")
	}
	if !strings.Contains(body, `name="csrf" value="`+tok+`"`) {
		t.Fatal("form does not carry the csrf token")
	}

	resp, _ = b.post("/medicamentos", medicationForm("Sin token", "1"))
	expectStatus(t, resp, fiber.StatusForbidden)

	form := medicationForm("Con token", "1")
	form.Set("csrf", tok)
	resp, _ = b.post("/medicamentos", form)
	expectStatus(t, resp, fiber.StatusSeeOther)
}
