package services

import "time"

type EditorMode int

const (
	EditorClosed EditorMode = iota
	EditorAdding
	EditorEditing
)

// FormSpec binds a record type to its form: blank state, prefill from a
// stored record, validation, and conversion back to a record.
type FormSpec[T any, F any] struct {
	Blank    func() F
	Of       func(T) F
	Validate func(F) string
	Record   func(F) (T, error)
}

// EditorView is the render-ready state of the add/edit form.
type EditorView[F any] struct {
	Mode      EditorMode
	EditingID int64
	Form      F
}

func (v EditorView[F]) Open() bool    { return v.Mode != EditorClosed }
func (v EditorView[F]) Adding() bool  { return v.Mode == EditorAdding }
func (v EditorView[F]) Editing() bool { return v.Mode == EditorEditing }

// EditablePage adds create/update and the form editor to a ListPage.
type EditablePage[T Keyed, F any] struct {
	*ListPage[T]
	w       Writer[T]
	form    FormSpec[T, F]
	mode    EditorMode
	editing int64
	draft   F
}

func NewEditablePage[T Keyed, F any](repo Repo[T], form FormSpec[T, F], msgs Messages, pageSize int, ttl time.Duration) *EditablePage[T, F] {
	return &EditablePage[T, F]{
		ListPage: NewListPage[T](repo, repo, msgs, pageSize, ttl),
		w:        repo,
		form:     form,
		draft:    form.Blank(),
	}
}

// OpenAdd shows a blank add form.
func (p *EditablePage[T, F]) OpenAdd() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = EditorAdding
	p.editing = 0
	p.draft = p.form.Blank()
}

// OpenEdit selects id and prefills the edit form from the fetched record.
func (p *EditablePage[T, F]) OpenEdit(id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	rec, ok := p.lookup(id)
	if !ok {
		return ErrNotFound
	}
	p.selected = id
	p.mode = EditorEditing
	p.editing = id
	p.draft = p.form.Of(rec)
	return nil
}

// Cancel closes the editor, resets the form and clears the error message.
func (p *EditablePage[T, F]) Cancel() {
	p.mu.Lock()
	p.closeEditor()
	p.mu.Unlock()
	p.status.ClearError()
}

// Create validates f and, if valid, creates the record and re-fetches. A
// failed re-fetch after the create is reported as ErrRefresh.
func (p *EditablePage[T, F]) Create(f F) error {
	rec, err := p.prepare(EditorAdding, 0, f)
	if err != nil {
		return err
	}
	defer p.end()
	if _, err := p.w.Create(rec); err != nil {
		p.status.Error(Describe(err))
		return err
	}
	p.status.Success(p.msgs.Created)
	p.mu.Lock()
	p.closeEditor()
	p.mu.Unlock()
	return p.refresh()
}

// Update validates f and, if valid, replaces record id and re-fetches. A
// failed re-fetch after the update is reported as ErrRefresh.
func (p *EditablePage[T, F]) Update(id int64, f F) error {
	rec, err := p.prepare(EditorEditing, id, f)
	if err != nil {
		return err
	}
	defer p.end()
	if _, err := p.w.Update(id, rec); err != nil {
		p.status.Error(Describe(err))
		return err
	}
	p.status.Success(p.msgs.Updated)
	p.mu.Lock()
	p.closeEditor()
	p.selected = 0
	p.mu.Unlock()
	return p.refresh()
}

func (p *EditablePage[T, F]) Editor() EditorView[F] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return EditorView[F]{Mode: p.mode, EditingID: p.editing, Form: p.draft}
}

// prepare keeps the submitted form as the editor state, validates it and
// marks the page busy. On success the caller owns the loading flag.
func (p *EditablePage[T, F]) prepare(mode EditorMode, id int64, f F) (T, error) {
	var zero T
	p.mu.Lock()
	if p.loading {
		p.mu.Unlock()
		return zero, ErrBusy
	}
	p.mode, p.editing, p.draft = mode, id, f
	p.mu.Unlock()

	if msg := p.form.Validate(f); msg != "" {
		p.status.Error(msg)
		return zero, &ValidationError{Msg: msg}
	}
	rec, err := p.form.Record(f)
	if err != nil {
		p.status.Error(err.Error())
		return zero, &ValidationError{Msg: err.Error()}
	}
	if err := p.begin(); err != nil {
		return zero, err
	}
	p.status.ClearError()
	return rec, nil
}

// closeEditor must be called with mu held.
func (p *EditablePage[T, F]) closeEditor() {
	p.mode = EditorClosed
	p.editing = 0
	p.draft = p.form.Blank()
}
