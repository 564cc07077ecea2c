package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// isoMillis is the canonical wire layout for dates sent to the backend.
const isoMillis = "2006-01-02T15:04:05.000Z"

// Layouts accepted from the backend and from HTML date inputs.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Timestamp is an optional point in time. The zero value means "absent" and
// is sent as JSON null.
type Timestamp struct {
	time.Time
}

// ParseTimestamp reads a backend or form value. Blank input yields the zero
// Timestamp. Values without a zone are taken as UTC.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return Timestamp{Time: t.UTC()}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid date %q", s)
}

func (t Timestamp) Set() bool { return !t.IsZero() }

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(isoMillis))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// DateInput formats the value for an <input type="date">.
func (t Timestamp) DateInput() string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

// DateTimeInput formats the value for an <input type="datetime-local">.
func (t Timestamp) DateTimeInput() string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02T15:04")
}

// Display is the list-view rendering; "-" when absent.
func (t Timestamp) Display() string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("02/01/2006 15:04")
}
