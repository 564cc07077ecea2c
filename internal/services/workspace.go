package services

import (
	"sync"
	"time"
)

// Workspace is the set of page controllers owned by one browser session.
type Workspace struct {
	SID         string
	Medications *MedicationPage
	Clients     *ClientPage
	Sales       *SalePage
	Query       *QuerySession

	lastSeen time.Time
}

// Close stops the pending message timers of the workspace's pages.
func (w *Workspace) Close() {
	if w.Medications != nil {
		w.Medications.Status().Stop()
	}
	if w.Clients != nil {
		w.Clients.Status().Stop()
	}
	if w.Sales != nil {
		w.Sales.Status().Stop()
	}
}

// WorkspaceLimits bounds how many workspaces are kept and for how long.
// Zero values disable the corresponding limit.
type WorkspaceLimits struct {
	Idle    time.Duration // evict workspaces not seen for this long
	Max     int           // evict the least recently seen beyond this many
	OnEvict func(sid string)
	Now     func() time.Time
}

// Workspaces hands out one Workspace per session id, built on first use.
type Workspaces struct {
	mu     sync.Mutex
	build  func(sid string) *Workspace
	limits WorkspaceLimits
	items  map[string]*Workspace
}

func NewWorkspaces(build func(sid string) *Workspace, limits WorkspaceLimits) *Workspaces {
	if limits.Now == nil {
		limits.Now = time.Now
	}
	return &Workspaces{build: build, limits: limits, items: map[string]*Workspace{}}
}

func (w *Workspaces) Get(sid string) *Workspace {
	w.mu.Lock()
	now := w.limits.Now()
	var evicted []*Workspace
	ws, ok := w.items[sid]
	if !ok {
		evicted = w.sweep(now)
		if w.limits.Max > 0 && len(w.items) >= w.limits.Max {
			evicted = append(evicted, w.evictOldest())
		}
		ws = w.build(sid)
		ws.SID = sid
		w.items[sid] = ws
	}
	ws.lastSeen = now
	w.mu.Unlock()

	w.release(evicted)
	return ws
}

// Sweep evicts idle workspaces and returns how many were removed.
func (w *Workspaces) Sweep() int {
	w.mu.Lock()
	evicted := w.sweep(w.limits.Now())
	w.mu.Unlock()

	w.release(evicted)
	return len(evicted)
}

func (w *Workspaces) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}

// sweep must be called with mu held.
func (w *Workspaces) sweep(now time.Time) []*Workspace {
	if w.limits.Idle <= 0 {
		return nil
	}
	var out []*Workspace
	for sid, ws := range w.items {
		if now.Sub(ws.lastSeen) >= w.limits.Idle {
			delete(w.items, sid)
			out = append(out, ws)
		}
	}
	return out
}

// evictOldest must be called with mu held and a non-empty map.
func (w *Workspaces) evictOldest() *Workspace {
	var oldest *Workspace
	for _, ws := range w.items {
		if oldest == nil || ws.lastSeen.Before(oldest.lastSeen) {
			oldest = ws
		}
	}
	delete(w.items, oldest.SID)
	return oldest
}

// release runs outside mu: OnEvict may hit the database.
func (w *Workspaces) release(evicted []*Workspace) {
	for _, ws := range evicted {
		ws.Close()
		if w.limits.OnEvict != nil {
			w.limits.OnEvict(ws.SID)
		}
	}
}
