package incidents

import "errors"

var (
	// ErrIncidentNotFound is returned when an incident does not exist.
	ErrIncidentNotFound = errors.New("incident not found")

	// ErrInvalidTransition is returned when a status change is not allowed
	// by the workflow.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidStatus is returned when a status value is not recognized.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidCategory is returned when a category value is not recognized.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidSeverity is returned when a severity value is not recognized.
	ErrInvalidSeverity = errors.New("invalid severity")
)
