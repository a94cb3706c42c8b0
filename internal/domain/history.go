package domain

import "time"

// HistoryAction labels an entry in an incident's audit trail.
type HistoryAction string

// History actions. Status changes always record status_change; resolved and
// closed are legal stored labels carried in the schema vocabulary.
const (
	HistoryActionCreated      HistoryAction = "created"
	HistoryActionAssigned     HistoryAction = "assigned"
	HistoryActionStatusChange HistoryAction = "status_change"
	HistoryActionResolved     HistoryAction = "resolved"
	HistoryActionClosed       HistoryAction = "closed"
	HistoryActionNote         HistoryAction = "note"
)

// HistoryEntry is one immutable audit record of an action taken on an
// incident. Entries are appended by the workflow engine and never mutated.
type HistoryEntry struct {
	ID             string          `json:"id"`
	IncidentID     string          `json:"incident_id"`
	Action         HistoryAction   `json:"action"`
	PreviousStatus *IncidentStatus `json:"previous_status"`
	NewStatus      *IncidentStatus `json:"new_status"`
	PerformedBy    string          `json:"performed_by"`
	Notes          *string         `json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
}
