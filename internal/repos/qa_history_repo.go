package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"farmacoplus/internal/domain"
)

type QAHistoryRepo struct{ db *sqlx.DB }

func NewQAHistoryRepo(db *sqlx.DB) *QAHistoryRepo { return &QAHistoryRepo{db: db} }

// Session scopes the repo to one browser session's history.
func (r *QAHistoryRepo) Session(sid string) *SessionHistory {
	return &SessionHistory{db: r.db, sid: sid}
}

// SessionHistory is one session's ordered QA history, most recent first.
type SessionHistory struct {
	db  *sqlx.DB
	sid string
}

func (h *SessionHistory) Prepend(e domain.QAEntry) error {
	_, err := h.db.Exec(`
		INSERT INTO qa_history(session_id, question, answer)
		VALUES (?, ?, ?)
	`, h.sid, e.Question, e.Answer)
	return err
}

func (h *SessionHistory) Entries() ([]domain.QAEntry, error) {
	var rows []domain.QAEntry
	err := h.db.Select(&rows, `
		SELECT question, answer FROM qa_history
		WHERE session_id = ?
		ORDER BY seq DESC
	`, h.sid)
	return rows, err
}

// RemoveAt deletes the entry at position i of Entries().
func (h *SessionHistory) RemoveAt(i int) error {
	if i < 0 {
		return domain.ErrNoEntry
	}
	var seq int64
	err := h.db.Get(&seq, `
		SELECT seq FROM qa_history
		WHERE session_id = ?
		ORDER BY seq DESC
		LIMIT 1 OFFSET ?
	`, h.sid, i)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNoEntry
	}
	if err != nil {
		return fmt.Errorf("find history entry %d: %w", i, err)
	}
	_, err = h.db.Exec(`DELETE FROM qa_history WHERE seq = ?`, seq)
	return err
}

// Purge drops every history entry of session sid.
func (r *QAHistoryRepo) Purge(sid string) error {
	_, err := r.db.Exec(`DELETE FROM qa_history WHERE session_id = ?`, sid)
	return err
}
