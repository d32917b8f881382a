package entity

import (
	"time"
)

// RunStatus is the lifecycle state of a search run.
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run records one search request end to end: the query, which user's
// corpus it ran against, and the final merged result.
type Run struct {
	ID     string    `json:"id"`
	UserID string    `json:"user_id"`
	Query  string    `json:"query"`
	Status RunStatus `json:"status"`

	// Result is the synthesized answer on success, or the error text
	// returned to the caller on failure.
	Result string `json:"result,omitempty"`

	// Agents records the per-category outcomes that fed the result.
	Agents []AgentRecord `json:"agents,omitempty"`

	CreatedAt   time.Time `json:"created_at"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
}

// AgentRecord is the persisted outcome of one category agent.
type AgentRecord struct {
	Category string `json:"category"`
	OK       bool   `json:"ok"`
	Result   string `json:"result,omitempty"`
	Error    string `json:"error,omitempty"`
	Turns    int    `json:"turns"`
}

// Done reports whether the run reached a terminal status.
func (r *Run) Done() bool {
	return r.Status == RunStatusCompleted || r.Status == RunStatusFailed
}
