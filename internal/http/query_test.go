package handlers_test

import (
	"net/url"
	"strings"
	"testing"

	"farmacoplus/internal/config"
)

func ask(q string) url.Values { return url.Values{"consulta": {q}} }

func TestQueryAnswerAndHistory(t *testing.T) {
	app, _ := newApp(t)
	b := newBrowser(t, app)

	resp, body := b.get("/consultas-ia")
	expectStatus(t, resp, 200)
	if !strings.Contains(body, "Aún no has realizado consultas") {
		t.Fatal("empty history placeholder missing")
	}

	resp, _ = b.post("/consultas-ia", ask("stock de paracetamol"))
	expectStatus(t, resp, 303)
	resp, _ = b.post("/consultas-ia", ask("ventas de hoy"))
	expectStatus(t, resp, 303)

	_, body = b.get("/consultas-ia")
	if !strings.Contains(body, "Respuesta a: ventas de hoy") {
		t.Fatalf("latest answer not shown; body=%s", body)
	}
	if strings.Index(body, ">ventas de hoy</a>") > strings.Index(body, ">stock de paracetamol</a>") {
		t.Fatal("history should list the newest question first")
	}

	// Selecting an older entry shows its stored answer.
	_, body = b.get("/consultas-ia?sel=1")
	if !strings.Contains(body, "Respuesta a: stock de paracetamol") {
		t.Fatalf("selected answer not shown; body=%s", body)
	}

	resp, _ = b.post("/consultas-ia/historial/1/eliminar", nil)
	expectStatus(t, resp, 303)
	_, body = b.get("/consultas-ia")
	if strings.Contains(body, "stock de paracetamol") {
		t.Fatal("deleted entry still shown")
	}

	resp, _ = b.post("/consultas-ia/historial/9/eliminar", nil)
	expectStatus(t, resp, 404)
	resp, _ = b.get("/consultas-ia?sel=9")
	expectStatus(t, resp, 404)
}

func TestQueryRejectsEmptyQuestion(t *testing.T) {
	app, api := newApp(t)
	b := newBrowser(t, app)
	before := api.hitCount()

	resp, body := b.post("/consultas-ia", ask("   "))
	expectStatus(t, resp, 400)
	if !strings.Contains(body, "Escribe una consulta") {
		t.Fatalf("validation message missing; body=%s", body)
	}
	if api.hitCount() != before {
		t.Fatal("empty question reached the backend")
	}
}

func TestQueryBackendError(t *testing.T) {
	app, api := newApp(t)
	b := newBrowser(t, app)
	api.fail(503, "modelo no disponible")

	resp, body := b.post("/consultas-ia", ask("clientes activos"))
	expectStatus(t, resp, 502)
	if !strings.Contains(body, "Error: Error 503: modelo no disponible") {
		t.Fatalf("error not shown; body=%s", body)
	}
	if !strings.Contains(body, "Aún no has realizado consultas") {
		t.Fatal("failed queries must not enter the history")
	}
}

func TestNewQueryKeepsHistory(t *testing.T) {
	app, _ := newApp(t)
	b := newBrowser(t, app)
	b.post("/consultas-ia", ask("stock bajo"))

	resp, _ := b.post("/consultas-ia/nueva", nil)
	expectStatus(t, resp, 303)
	_, body := b.get("/consultas-ia")
	if strings.Contains(body, "Respuesta a: stock bajo") {
		t.Fatal("answer should be cleared")
	}
	if !strings.Contains(body, ">stock bajo</a>") {
		t.Fatal("history should be kept")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	app, _ := newApp(t)
	alice := newBrowser(t, app)
	bob := newBrowser(t, app)

	alice.post("/consultas-ia", ask("pregunta de alice"))
	_, body := bob.get("/consultas-ia")
	if strings.Contains(body, "pregunta de alice") {
		t.Fatal("history leaked between sessions")
	}
	if alice.cookies["sid"] == "" || alice.cookies["sid"] == bob.cookies["sid"] {
		t.Fatal("each browser should get its own sid")
	}
}

func TestEvictedSessionLosesHistory(t *testing.T) {
	app, _, deps := newAppWith(t, func(cfg *config.Config) { cfg.MaxSessions = 2 })
	first := newBrowser(t, app)
	first.post("/consultas-ia", ask("pregunta antigua"))

	// Cookieless traffic pushes the first session out.
	for i := 0; i < 20; i++ {
		resp, _ := newBrowser(t, app).get("/")
		expectStatus(t, resp, 200)
	}
	if n := deps.Workspaces.Len(); n != 2 {
		t.Fatalf("expected the session cap to hold, got %d workspaces", n)
	}

	_, body := first.get("/consultas-ia")
	if strings.Contains(body, "pregunta antigua") {
		t.Fatal("history of an evicted session should be purged")
	}
}
