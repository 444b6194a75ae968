package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Application statuses written by the run when the job board does not supply one.
const (
	StatusApplied = "applied"
	StatusDryRun  = "dry_run"
	StatusError   = "error"
)

// ApplicationLogEntry is one durable record of an application attempt.
// Any entry for a vacancy id suppresses further attempts, whatever its status.
type ApplicationLogEntry struct {
	ID                 uuid.UUID `json:"id"`
	RunID              uuid.UUID `json:"run_id"`
	VacancyID          string    `json:"vacancy_id"`
	ProfileName        string    `json:"profile_name"`
	Status             string    `json:"status"`
	AppliedAt          time.Time `json:"applied_at"`
	CoverLetterSnippet *string   `json:"cover_letter_snippet,omitempty"`
	RawResponse        *string   `json:"raw_response,omitempty"`
}

// ApplyResponse is the job board's (or the simulated) answer to an application.
type ApplyResponse map[string]any

// Status returns the response's own status field, or "" when absent.
func (r ApplyResponse) Status() string {
	if s, ok := r["status"].(string); ok {
		return s
	}
	return ""
}

// JSON serializes the response for the audit column.
func (r ApplyResponse) JSON() (string, error) {
	data, err := json.Marshal(map[string]any(r))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// RunSummary reports the counters of one run.
type RunSummary struct {
	Processed int `json:"processed"`
	Logged    int `json:"logged"`
}
