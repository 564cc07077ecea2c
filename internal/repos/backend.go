package repos

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	applog "farmacoplus/internal/log"
)

// ErrUnreachable wraps transport failures: refused connections, DNS, resets.
var ErrUnreachable = errors.New("backend unreachable")

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string { return fmt.Sprintf("Error %d: %s", e.Status, e.Body) }

// Backend issues single-attempt requests against the pharmacy REST API.
// There is no retry and no timeout.
type Backend struct {
	BaseURL string
}

func NewBackend(baseURL string) *Backend {
	return &Backend{BaseURL: strings.TrimRight(baseURL, "/")}
}

func (b *Backend) url(path string, id ...int64) string {
	u := b.BaseURL + "/" + strings.TrimLeft(path, "/")
	for _, v := range id {
		u += "/" + strconv.FormatInt(v, 10)
	}
	return u
}

// do sends the request held by a and returns the body of a 2xx answer.
func (b *Backend) do(a *fiber.Agent, method, path string) ([]byte, error) {
	start := time.Now()
	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		applog.Error(nil, "backend.fail", err, map[string]any{"method": method, "path": path})
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	code, body, errs := a.Bytes()
	fields := map[string]any{"method": method, "path": path, "status": code, "latency_ms": time.Since(start).Milliseconds()}
	if len(errs) > 0 {
		err := errors.Join(errs...)
		applog.Error(nil, "backend.fail", err, fields)
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if code < 200 || code > 299 {
		serr := &StatusError{Status: code, Body: string(body)}
		applog.Error(nil, "backend.fail", serr, fields)
		return nil, serr
	}
	applog.Info(nil, "backend.request", fields)
	return body, nil
}

// resource is the CRUD plumbing shared by the entity repos.
type resource[T any] struct {
	api  *Backend
	path string
}

func (r resource[T]) list() ([]T, error) {
	a := fiber.Get(r.api.url(r.path)).Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	body, err := r.api.do(a, fiber.MethodGet, r.path)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return out, nil
}

func (r resource[T]) create(v T) (T, error) {
	a := fiber.Post(r.api.url(r.path)).JSON(v)
	body, err := r.api.do(a, fiber.MethodPost, r.path)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeOne[T](body, r.path)
}

func (r resource[T]) update(id int64, v T) (T, error) {
	a := fiber.Put(r.api.url(r.path, id)).JSON(v)
	body, err := r.api.do(a, fiber.MethodPut, r.path)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeOne[T](body, r.path)
}

func (r resource[T]) delete(id int64) error {
	_, err := r.api.do(fiber.Delete(r.api.url(r.path, id)), fiber.MethodDelete, r.path)
	return err
}

// decodeOne tolerates an empty 2xx body, which some endpoints send.
func decodeOne[T any](body []byte, path string) (T, error) {
	var out T
	if len(strings.TrimSpace(string(body))) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}
