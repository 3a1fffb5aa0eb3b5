// Package journal records what happened in each live view: clicks and their
// outcomes, dataset reloads and session lifetimes.
package journal

import "time"

// Event identifies the kind of journal entry.
type Event string

const (
	EventClick  Event = "click"
	EventReload Event = "reload"
	EventResize Event = "resize"
	EventOpen   Event = "open"
	EventClose  Event = "close"
)

// Entry is a single journal record.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	Event     Event     `json:"event"`
	NodeID    int       `json:"node_id,omitempty"`
	NodeName  string    `json:"node_name,omitempty"`
	Outcome   string    `json:"outcome,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Focus     string    `json:"focus,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}
