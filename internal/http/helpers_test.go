package handlers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"farmacoplus/internal/config"
	"farmacoplus/internal/http/handlers"
	"farmacoplus/internal/repos"
)

// fakeBackend is an in-memory stand-in for the pharmacy REST API.
type fakeBackend struct {
	mu     sync.Mutex
	data   map[string][]map[string]any
	nextID int64
	hits   int
	status int
	body   string

	// failMethod limits the injected failure to one HTTP method.
	failMethod string
}

func newFakeBackend() *fakeBackend {
	f := &fakeBackend{data: map[string][]map[string]any{
		"medicamentos": {},
		"clientes":     {},
		"ventas":       {},
	}}
	for i := 1; i <= 12; i++ {
		f.data["medicamentos"] = append(f.data["medicamentos"], map[string]any{
			"id": i, "nombre": fmt.Sprintf("Med %d", i), "precio": 2.5, "stock": i, "stockMinimo": 5,
			"categoria": "ANALGESICOS", "estado": "ACTIVO",
		})
	}
	f.data["clientes"] = append(f.data["clientes"], map[string]any{
		"id": 1, "nombre": "Ana", "apellido": "Quispe", "email": "ana@example.com",
		"telefono": "5512345678", "dni": "12345678", "estado": "ACTIVO",
	})
	f.data["ventas"] = append(f.data["ventas"],
		map[string]any{"id": 1, "numeroFactura": "F001-1", "subtotal": 10, "igv": 1.8, "total": 11.8, "fechaVenta": "2025-03-01T10:30:00"},
		map[string]any{"id": 2, "numeroFactura": "F001-2", "subtotal": nil, "igv": nil, "total": nil, "fechaVenta": nil},
	)
	f.nextID = 100
	return f
}

func (f *fakeBackend) fail(status int, body string) {
	f.mu.Lock()
	f.status, f.body = status, body
	f.mu.Unlock()
}

// failOn makes only requests with the given method fail.
func (f *fakeBackend) failOn(method string, status int, body string) {
	f.mu.Lock()
	f.failMethod, f.status, f.body = method, status, body
	f.mu.Unlock()
}

func (f *fakeBackend) hitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hits++
	if f.status != 0 && (f.failMethod == "" || f.failMethod == r.Method) {
		w.WriteHeader(f.status)
		_, _ = io.WriteString(w, f.body)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/api/")
	if rest == "nlq/query" {
		var in struct {
			Pregunta string `json:"pregunta"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		_, _ = io.WriteString(w, "Respuesta a: "+in.Pregunta)
		return
	}
	parts := strings.Split(rest, "/")
	coll := parts[0]
	items, ok := f.data[coll]
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		_ = json.NewEncoder(w).Encode(items)
	case len(parts) == 1 && r.Method == http.MethodPost:
		var m map[string]any
		_ = json.NewDecoder(r.Body).Decode(&m)
		f.nextID++
		m["id"] = f.nextID
		f.data[coll] = append(items, m)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(m)
	case len(parts) == 2:
		for i, m := range items {
			if fmt.Sprint(m["id"]) != parts[1] {
				continue
			}
			switch r.Method {
			case http.MethodPut:
				var in map[string]any
				_ = json.NewDecoder(r.Body).Decode(&in)
				in["id"] = m["id"]
				items[i] = in
				_ = json.NewEncoder(w).Encode(in)
			case http.MethodDelete:
				f.data[coll] = append(items[:i], items[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
			}
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, "Registro no encontrado")
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newApp(t *testing.T, mw ...fiber.Handler) (*fiber.App, *fakeBackend) {
	t.Helper()
	app, api, _ := newAppWith(t, nil, mw...)
	return app, api
}

// newAppWith lets a test adjust the config before the routes are built.
func newAppWith(t *testing.T, tweak func(*config.Config), mw ...fiber.Handler) (*fiber.App, *fakeBackend, *handlers.Deps) {
	t.Helper()
	api := newFakeBackend()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{APIBaseURL: srv.URL + "/api/api", PageSize: 10, FlashTTL: time.Minute}
	if tweak != nil {
		tweak(&cfg)
	}
	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine, ErrorHandler: handlers.ErrorHandler})
	for _, h := range mw {
		app.Use(h)
	}
	deps := handlers.NewDeps(db, cfg)
	deps.Mount(app)
	return app, api, deps
}

// browser replays the session cookie across requests.
type browser struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
}

func newBrowser(t *testing.T, app *fiber.App) *browser {
	return &browser{t: t, app: app, cookies: map[string]string{}}
}

func (b *browser) do(method, path string, form url.Values) (*http.Response, string) {
	b.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range b.cookies {
		req.AddCookie(&http.Cookie{Name: k, Value: v})
	}
	resp, err := b.app.Test(req, -1)
	if err != nil {
		b.t.Fatalf("%s %s: %v", method, path, err)
	}
	for _, c := range resp.Cookies() {
		b.cookies[c.Name] = c.Value
	}
	raw, _ := io.ReadAll(resp.Body)
	return resp, string(raw)
}

func (b *browser) get(path string) (*http.Response, string) { return b.do("GET", path, nil) }

func (b *browser) post(path string, form url.Values) (*http.Response, string) {
	if form == nil {
		form = url.Values{}
	}
	return b.do("POST", path, form)
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("expected %d, got %d", want, resp.StatusCode)
	}
}

func medicationForm(name, price string) url.Values {
	return url.Values{
		"nombre":      {name},
		"precio":      {price},
		"stock":       {"40"},
		"stockMinimo": {"5"},
		"categoria":   {"ANTIBIOTICOS"},
		"estado":      {"ACTIVO"},
	}
}
