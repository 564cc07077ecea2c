package services

import (
	"errors"
	"strings"
	"sync"

	"farmacoplus/internal/domain"
)

var ErrEmptyQuestion = errors.New("question is empty")

// Asker sends a natural-language question to the backend.
type Asker interface {
	Query(question string) (string, error)
}

// HistoryStore keeps a session's QA entries, most recent first.
type HistoryStore interface {
	Prepend(e domain.QAEntry) error
	Entries() ([]domain.QAEntry, error)
	RemoveAt(i int) error
}

type QueryState int

const (
	QueryIdle QueryState = iota
	QuerySubmitting
	QueryAnswered
	QueryErrored
)

func (s QueryState) String() string {
	switch s {
	case QuerySubmitting:
		return "submitting"
	case QueryAnswered:
		return "answered"
	case QueryErrored:
		return "errored"
	default:
		return "idle"
	}
}

// QueryView is a render-ready snapshot of the AI query page.
type QueryView struct {
	State        QueryState
	Draft        string
	LastQuestion string
	Answer       string
	HasAnswer    bool
	Error        string
	Selected     int
	History      []domain.QAEntry
}

func (v QueryView) Submitting() bool { return v.State == QuerySubmitting }

// QuerySession is the AI query page: the composed question, the displayed
// answer, and the history with a selection pointer (-1 = none).
type QuerySession struct {
	mu           sync.Mutex
	nlq          Asker
	history      HistoryStore
	state        QueryState
	draft        string
	lastQuestion string
	answer       string
	hasAnswer    bool
	errMsg       string
	selected     int
}

func NewQuerySession(nlq Asker, history HistoryStore) *QuerySession {
	return &QuerySession{nlq: nlq, history: history, selected: -1}
}

// SetDraft stores the question being composed.
func (s *QuerySession) SetDraft(q string) {
	s.mu.Lock()
	s.draft = q
	s.mu.Unlock()
}

// Submit sends question to the backend. On success the answer is displayed,
// prepended to the history and selected; on failure the error is displayed
// and no answer is shown. The draft is cleared either way.
func (s *QuerySession) Submit(question string) error {
	q := strings.TrimSpace(question)
	s.mu.Lock()
	if s.state == QuerySubmitting {
		s.mu.Unlock()
		return ErrBusy
	}
	if q == "" {
		s.mu.Unlock()
		return ErrEmptyQuestion
	}
	s.state = QuerySubmitting
	s.lastQuestion = q
	s.draft = ""
	s.answer, s.hasAnswer = "", false
	s.errMsg = ""
	s.selected = -1
	s.mu.Unlock()

	ans, err := s.nlq.Query(q)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = QueryErrored
		s.errMsg = "Error: " + err.Error()
		return err
	}
	s.state = QueryAnswered
	s.answer, s.hasAnswer = ans, true
	if err := s.history.Prepend(domain.QAEntry{Question: q, Answer: ans}); err != nil {
		s.errMsg = "No se pudo guardar la consulta en el historial"
		return err
	}
	s.selected = 0
	return nil
}

// Select displays history entry i without querying the backend.
func (s *QuerySession) Select(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.history.Entries()
	if err != nil {
		return err
	}
	if i < 0 || i >= len(entries) {
		return domain.ErrNoEntry
	}
	s.selected = i
	s.lastQuestion = entries[i].Question
	s.answer, s.hasAnswer = entries[i].Answer, true
	s.errMsg = ""
	return nil
}

// Delete removes history entry i. Deleting the selected entry clears the
// selection and the displayed answer; deleting an earlier entry shifts the
// selection so it keeps pointing at the same entry.
func (s *QuerySession) Delete(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.history.RemoveAt(i); err != nil {
		return err
	}
	switch {
	case i == s.selected:
		s.selected = -1
		s.answer, s.hasAnswer = "", false
	case i < s.selected:
		s.selected--
	}
	return nil
}

// NewQuery resets the composer and the display. History is kept.
func (s *QuerySession) NewQuery() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = ""
	s.lastQuestion = ""
	s.answer, s.hasAnswer = "", false
	s.errMsg = ""
	s.selected = -1
	if s.state != QuerySubmitting {
		s.state = QueryIdle
	}
}

func (s *QuerySession) View() (QueryView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.history.Entries()
	if err != nil {
		return QueryView{}, err
	}
	return QueryView{
		State:        s.state,
		Draft:        s.draft,
		LastQuestion: s.lastQuestion,
		Answer:       s.answer,
		HasAnswer:    s.hasAnswer,
		Error:        s.errMsg,
		Selected:     s.selected,
		History:      entries,
	}, nil
}

// MemoryHistory is an in-process HistoryStore.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []domain.QAEntry
}

func (h *MemoryHistory) Prepend(e domain.QAEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append([]domain.QAEntry{e}, h.entries...)
	return nil
}

func (h *MemoryHistory) Entries() ([]domain.QAEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]domain.QAEntry, len(h.entries))
	copy(out, h.entries)
	return out, nil
}

func (h *MemoryHistory) RemoveAt(i int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if i < 0 || i >= len(h.entries) {
		return domain.ErrNoEntry
	}
	h.entries = append(h.entries[:i], h.entries[i+1:]...)
	return nil
}
