package incidents

import (
	"context"
	"time"

	"github.com/Domikas122/ITSM-System-VIKO/internal/domain"
)

// Filters narrows incident listings. Zero-valued fields are ignored.
type Filters struct {
	Statuses   []domain.IncidentStatus
	Categories []domain.Category
	Severities []domain.Severity
	ReportedBy string
	AssignedTo string
	Search     string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// Repository defines incident persistence operations.
type Repository interface {
	Create(ctx context.Context, incident *domain.Incident) error
	GetByID(ctx context.Context, id string) (*domain.Incident, error)
	List(ctx context.Context, filters Filters) ([]domain.Incident, error)
	Update(ctx context.Context, incident *domain.Incident) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*domain.DashboardStats, error)

	AddHistory(ctx context.Context, entry *domain.HistoryEntry) error

	// ListHistory returns an incident's audit trail, newest first.
	ListHistory(ctx context.Context, incidentID string) ([]domain.HistoryEntry, error)
}
