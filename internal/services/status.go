package services

import (
	"sync"
	"time"
)

// StatusBoard holds a page's transient error and success messages. Setting
// either one (re)starts a single timer; when it fires both are cleared.
type StatusBoard struct {
	mu     sync.Mutex
	ttl    time.Duration
	errMsg string
	okMsg  string
	timer  *time.Timer
	gen    uint64
}

func NewStatusBoard(ttl time.Duration) *StatusBoard {
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	return &StatusBoard{ttl: ttl}
}

func (b *StatusBoard) Error(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.errMsg = msg
	b.restart()
}

func (b *StatusBoard) Success(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.okMsg = msg
	b.restart()
}

// ClearError drops the error message without touching the timer.
func (b *StatusBoard) ClearError() {
	b.mu.Lock()
	b.errMsg = ""
	b.mu.Unlock()
}

// Messages returns the current error and success messages.
func (b *StatusBoard) Messages() (errMsg, okMsg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errMsg, b.okMsg
}

// Clear cancels the pending timer and empties both messages.
func (b *StatusBoard) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stop()
	b.errMsg, b.okMsg = "", ""
}

// Stop cancels the pending timer, leaving the messages in place.
func (b *StatusBoard) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stop()
}

// restart must be called with mu held. gen lets a timer that already fired,
// but lost the race for mu, see that it was superseded.
func (b *StatusBoard) restart() {
	b.stop()
	g := b.gen
	b.timer = time.AfterFunc(b.ttl, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.gen != g {
			return
		}
		b.errMsg, b.okMsg = "", ""
		b.timer = nil
	})
}

func (b *StatusBoard) stop() {
	b.gen++
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
