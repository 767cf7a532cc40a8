// Package dashboard holds the admin dashboard's view of the form backend:
// the last fetched records, their counters and the connection status.
package dashboard

import (
	"time"

	"github.com/wolfman30/submissions-dashboard/internal/submissions"
)

// StatusKind is the connection indicator shown above the table.
type StatusKind string

const (
	StatusLoading   StatusKind = "loading"
	StatusConnected StatusKind = "connected"
	StatusError     StatusKind = "error"
)

// Status pairs the indicator with its message.
type Status struct {
	Kind    StatusKind `json:"status"`
	Message string     `json:"message"`
}

// Snapshot is an immutable copy of the dashboard state.
type Snapshot struct {
	Records   []submissions.Submission
	Stats     submissions.Stats
	Status    Status
	UpdatedAt time.Time
}

// DataAge returns whole seconds since the last fetch attempt. ok is false
// before the first attempt.
func (s Snapshot) DataAge(now time.Time) (seconds int64, ok bool) {
	if s.UpdatedAt.IsZero() {
		return 0, false
	}
	age := now.Sub(s.UpdatedAt)
	if age < 0 {
		return 0, true
	}
	return int64(age / time.Second), true
}

func (s Snapshot) clone() Snapshot {
	out := s
	if s.Records != nil {
		out.Records = make([]submissions.Submission, len(s.Records))
		copy(out.Records, s.Records)
	}
	return out
}
