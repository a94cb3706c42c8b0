// Package domain contains the core types shared across the application.
package domain

import "time"

// IncidentStatus represents the lifecycle state of an incident.
type IncidentStatus string

// Incident statuses.
const (
	IncidentStatusNew        IncidentStatus = "new"
	IncidentStatusAssigned   IncidentStatus = "assigned"
	IncidentStatusInProgress IncidentStatus = "in_progress"
	IncidentStatusResolved   IncidentStatus = "resolved"
	IncidentStatusClosed     IncidentStatus = "closed"
)

// Category represents the incident category.
type Category string

// Incident categories.
const (
	CategoryIT    Category = "it"
	CategoryCyber Category = "cyber"
)

// Severity represents the severity level of an incident.
type Severity string

// Severity levels.
const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Incident represents a reported IT or cyber-security incident.
type Incident struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Category        Category       `json:"category"`
	Severity        Severity       `json:"severity"`
	Status          IncidentStatus `json:"status"`
	AffectedSystems []string       `json:"affected_systems"`
	ReportedBy      string         `json:"reported_by"`
	AssignedTo      *string        `json:"assigned_to"`
	AITags          []string       `json:"ai_tags"`
	AIAnalysis      *string        `json:"ai_analysis"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	ResolvedAt      *time.Time     `json:"resolved_at"`
}

// transitions is the allowed-next-state table for incident statuses.
// Closed is terminal; only Resolved can be reopened back to InProgress.
var transitions = map[IncidentStatus][]IncidentStatus{
	IncidentStatusNew:        {IncidentStatusAssigned},
	IncidentStatusAssigned:   {IncidentStatusInProgress},
	IncidentStatusInProgress: {IncidentStatusResolved},
	IncidentStatusResolved:   {IncidentStatusClosed, IncidentStatusInProgress},
	IncidentStatusClosed:     {},
}

// CanTransitionTo reports whether the status may change to target.
func (s IncidentStatus) CanTransitionTo(target IncidentStatus) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from s.
func (s IncidentStatus) AllowedTransitions() []IncidentStatus {
	return transitions[s]
}

// IsValid checks if the status is a known incident status.
func (s IncidentStatus) IsValid() bool {
	switch s {
	case IncidentStatusNew, IncidentStatusAssigned, IncidentStatusInProgress,
		IncidentStatusResolved, IncidentStatusClosed:
		return true
	}
	return false
}

// IsValid checks if the category is valid.
func (c Category) IsValid() bool {
	return c == CategoryIT || c == CategoryCyber
}

// IsValid checks if the severity is valid.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// SimilarIncident is a transient projection of another incident with a
// computed similarity score. It is derived, never persisted.
type SimilarIncident struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      IncidentStatus `json:"status"`
	Similarity  float64        `json:"similarity"`
	ResolvedAt  *time.Time     `json:"resolved_at"`
}

// DashboardStats aggregates incident counts for the dashboard.
type DashboardStats struct {
	Total      int                    `json:"total"`
	ByStatus   map[IncidentStatus]int `json:"by_status"`
	BySeverity map[Severity]int       `json:"by_severity"`
	ByCategory map[Category]int       `json:"by_category"`
}
