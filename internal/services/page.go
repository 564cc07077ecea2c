package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"farmacoplus/internal/repos"
)

var (
	// ErrBusy rejects a request while the controller's own request is in flight.
	ErrBusy = errors.New("operation already in progress")
	// ErrNotFound is returned for ids missing from the last fetched collection.
	ErrNotFound = errors.New("record not found")
	// ErrRefresh wraps a failed re-fetch after a mutation the backend accepted.
	ErrRefresh = errors.New("mutation applied, refresh failed")
)

// ValidationError blocks a submission before it reaches the backend.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// Keyed records carry a backend-assigned id.
type Keyed interface{ Key() int64 }

type Lister[T any] interface {
	List() ([]T, error)
}

type Deleter interface {
	Delete(id int64) error
}

type Writer[T any] interface {
	Create(v T) (T, error)
	Update(id int64, v T) (T, error)
}

// Repo is the full CRUD surface of an editable resource.
type Repo[T any] interface {
	Lister[T]
	Deleter
	Writer[T]
}

// Messages are the user-facing texts a page shows after each operation.
type Messages struct {
	Created string
	Updated string
	Deleted string
}

// Describe turns a failed call into the text shown to the user: backend
// failures verbatim, transport failures as a connection error.
func Describe(err error) string {
	var se *repos.StatusError
	if errors.As(err, &se) {
		return se.Error()
	}
	return "Error de conexión: " + err.Error()
}

// PageView is a render-ready snapshot of a list page.
type PageView[T any] struct {
	Items      []T
	Total      int
	Page       int
	TotalPages int
	Pages      []int
	HasPrev    bool
	HasNext    bool
	Selected   int64
	Loading    bool
	Loaded     bool
	Error      string
	Success    string
}

func (v PageView[T]) PrevPage() int { return v.Page - 1 }
func (v PageView[T]) NextPage() int { return v.Page + 1 }

// ListPage owns one screen's collection, pagination, selection, loading
// flag and status messages. The list only changes through a full fetch.
type ListPage[T Keyed] struct {
	mu       sync.Mutex
	list     Lister[T]
	del      Deleter
	msgs     Messages
	pager    *Pager[T]
	status   *StatusBoard
	loading  bool
	loaded   bool
	selected int64
}

func NewListPage[T Keyed](list Lister[T], del Deleter, msgs Messages, pageSize int, ttl time.Duration) *ListPage[T] {
	return &ListPage[T]{
		list:   list,
		del:    del,
		msgs:   msgs,
		pager:  NewPager[T](pageSize),
		status: NewStatusBoard(ttl),
	}
}

// begin marks the page busy; callers must pair it with end.
func (p *ListPage[T]) begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loading {
		return ErrBusy
	}
	p.loading = true
	return nil
}

func (p *ListPage[T]) end() {
	p.mu.Lock()
	p.loading = false
	p.mu.Unlock()
}

// fetch replaces the collection with the backend's current list. It runs
// without mu held; the caller owns the loading flag.
func (p *ListPage[T]) fetch() error {
	p.status.ClearError()
	items, err := p.list.List()
	if err != nil {
		p.status.Error(Describe(err))
		return err
	}
	p.mu.Lock()
	p.pager.Replace(items)
	p.loaded = true
	if p.selected != 0 && p.indexOf(p.selected) < 0 {
		p.selected = 0
	}
	p.mu.Unlock()
	return nil
}

// Load fetches the collection (mount or explicit refresh).
func (p *ListPage[T]) Load() error {
	if err := p.begin(); err != nil {
		return err
	}
	defer p.end()
	return p.fetch()
}

// Loaded reports whether at least one fetch has succeeded.
func (p *ListPage[T]) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

// Goto moves to page n (clamped) and returns the resulting page.
func (p *ListPage[T]) Goto(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pager.Goto(n)
}

// Select marks the record with id as the current row.
func (p *ListPage[T]) Select(id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.indexOf(id) < 0 {
		return ErrNotFound
	}
	p.selected = id
	return nil
}

func (p *ListPage[T]) ClearSelection() {
	p.mu.Lock()
	p.selected = 0
	p.mu.Unlock()
}

// Selected returns the selected record, if any.
func (p *ListPage[T]) Selected() (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lookup(p.selected)
}

// Delete removes id on the backend, then re-fetches.
func (p *ListPage[T]) Delete(id int64) error {
	if err := p.begin(); err != nil {
		return err
	}
	defer p.end()
	if err := p.del.Delete(id); err != nil {
		p.status.Error(Describe(err))
		return err
	}
	p.status.Success(p.msgs.Deleted)
	p.ClearSelection()
	return p.refresh()
}

// refresh re-fetches after a successful mutation.
func (p *ListPage[T]) refresh() error {
	if err := p.fetch(); err != nil {
		return fmt.Errorf("%w: %w", ErrRefresh, err)
	}
	return nil
}

// Status exposes the page's message board.
func (p *ListPage[T]) Status() *StatusBoard { return p.status }

func (p *ListPage[T]) View() PageView[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	errMsg, okMsg := p.status.Messages()
	total := p.pager.TotalPages()
	pages := make([]int, total)
	for i := range pages {
		pages[i] = i + 1
	}
	page := p.pager.Page()
	return PageView[T]{
		Items:      p.pager.Visible(),
		Total:      p.pager.Len(),
		Page:       page,
		TotalPages: total,
		Pages:      pages,
		HasPrev:    page > 1,
		HasNext:    page < total,
		Selected:   p.selected,
		Loading:    p.loading,
		Loaded:     p.loaded,
		Error:      errMsg,
		Success:    okMsg,
	}
}

// indexOf must be called with mu held.
func (p *ListPage[T]) indexOf(id int64) int {
	if id == 0 {
		return -1
	}
	for i, it := range p.pager.Items() {
		if it.Key() == id {
			return i
		}
	}
	return -1
}

func (p *ListPage[T]) lookup(id int64) (T, bool) {
	if i := p.indexOf(id); i >= 0 {
		return p.pager.Items()[i], true
	}
	var zero T
	return zero, false
}
