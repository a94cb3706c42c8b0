package incidents

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Domikas122/ITSM-System-VIKO/internal/analysis"
	"github.com/Domikas122/ITSM-System-VIKO/internal/domain"
	"github.com/Domikas122/ITSM-System-VIKO/internal/pkg/ctxlog"
)

// Notifier hands off assignment events for delivery. Implementations must be
// non-blocking; delivery happens out of band.
type Notifier interface {
	NotifyAssignment(ctx context.Context, incident *domain.Incident, assigneeID string) error
}

// CreateInput is the payload for registering a new incident.
type CreateInput struct {
	Title           string   `json:"title" validate:"required,min=5,max=200"`
	Description     string   `json:"description" validate:"required,min=20,max=5000"`
	Category        string   `json:"category" validate:"required"`
	Severity        string   `json:"severity" validate:"required"`
	AffectedSystems []string `json:"affectedSystems" validate:"omitempty,dive,min=1,max=100"`
}

// NoteInput is the payload for attaching a note to an incident.
type NoteInput struct {
	Notes string `json:"notes" validate:"required,min=1,max=2000"`
}

// Details bundles an incident with its history and similar incidents for the
// detail view.
type Details struct {
	Incident *domain.Incident         `json:"incident"`
	History  []domain.HistoryEntry    `json:"history"`
	Similar  []domain.SimilarIncident `json:"similarIncidents"`
}

// Service implements incident workflow operations.
type Service struct {
	repo     Repository
	analyzer analysis.Analyzer
	notifier Notifier
	validate *validator.Validate
}

// NewService creates an incident service. The notifier may be nil when
// notifications are disabled.
func NewService(repo Repository, analyzer analysis.Analyzer, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		analyzer: analyzer,
		notifier: notifier,
		validate: validator.New(),
	}
}

// Validate checks a create payload against field constraints. Exposed so the
// handler can return structured validation errors.
func (s *Service) Validate(input any) error {
	return s.validate.Struct(input)
}

// Create registers a new incident, records the creation in its history and
// returns it together with similar existing incidents.
func (s *Service) Create(ctx context.Context, input CreateInput, reportedBy string) (*Details, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	category := domain.Category(input.Category)
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, input.Category)
	}
	severity := domain.Severity(input.Severity)
	if !severity.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSeverity, input.Severity)
	}

	now := time.Now().UTC()
	incident := &domain.Incident{
		ID:              uuid.NewString(),
		Title:           input.Title,
		Description:     input.Description,
		Category:        category,
		Severity:        severity,
		Status:          domain.IncidentStatusNew,
		AffectedSystems: input.AffectedSystems,
		ReportedBy:      reportedBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, incident); err != nil {
		return nil, fmt.Errorf("create incident: %w", err)
	}

	s.recordHistory(ctx, &domain.HistoryEntry{
		IncidentID:  incident.ID,
		Action:      domain.HistoryActionCreated,
		NewStatus:   statusPtr(domain.IncidentStatusNew),
		PerformedBy: reportedBy,
		CreatedAt:   now,
	})

	incidentsCreated.WithLabelValues(string(category), string(severity)).Inc()

	similar, err := s.findSimilar(ctx, incident)
	if err != nil {
		ctxlog.FromContext(ctx).Warn("similarity lookup failed",
			"incident_id", incident.ID, "error", err)
	}

	return &Details{Incident: incident, Similar: similar}, nil
}

// Get returns a single incident.
func (s *Service) Get(ctx context.Context, id string) (*domain.Incident, error) {
	return s.repo.GetByID(ctx, id)
}

// GetDetails returns an incident with its history and similar incidents.
func (s *Service) GetDetails(ctx context.Context, id string) (*Details, error) {
	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	history, err := s.repo.ListHistory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	similar, err := s.findSimilar(ctx, incident)
	if err != nil {
		ctxlog.FromContext(ctx).Warn("similarity lookup failed",
			"incident_id", id, "error", err)
	}

	return &Details{Incident: incident, History: history, Similar: similar}, nil
}

// List returns incidents matching the filters, newest first.
func (s *Service) List(ctx context.Context, filters Filters) ([]domain.Incident, error) {
	return s.repo.List(ctx, filters)
}

// Stats returns dashboard aggregates.
func (s *Service) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	return s.repo.Stats(ctx)
}

// History returns the audit trail of an incident, newest first.
func (s *Service) History(ctx context.Context, incidentID string) ([]domain.HistoryEntry, error) {
	if _, err := s.repo.GetByID(ctx, incidentID); err != nil {
		return nil, err
	}
	return s.repo.ListHistory(ctx, incidentID)
}

// Transition moves an incident to a new status. Only transitions permitted by
// the workflow are accepted; everything else returns ErrInvalidTransition.
func (s *Service) Transition(ctx context.Context, id string, newStatus domain.IncidentStatus, performedBy string, notes string) (*domain.Incident, error) {
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := incident.Status
	if !from.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s (allowed: %v)",
			ErrInvalidTransition, from, newStatus, from.AllowedTransitions())
	}

	now := time.Now().UTC()
	incident.Status = newStatus
	incident.UpdatedAt = now

	assigneeDefaulted := false
	if newStatus == domain.IncidentStatusAssigned && incident.AssignedTo == nil {
		incident.AssignedTo = &performedBy
		assigneeDefaulted = true
	}
	// resolved_at is stamped once; reopening keeps the original timestamp
	if newStatus == domain.IncidentStatusResolved && incident.ResolvedAt == nil {
		incident.ResolvedAt = &now
	}

	if err := s.repo.Update(ctx, incident); err != nil {
		return nil, fmt.Errorf("update incident: %w", err)
	}

	s.recordHistory(ctx, &domain.HistoryEntry{
		IncidentID:     id,
		Action:         domain.HistoryActionStatusChange,
		PreviousStatus: statusPtr(from),
		NewStatus:      statusPtr(newStatus),
		PerformedBy:    performedBy,
		Notes:          notesPtr(notes),
		CreatedAt:      now,
	})

	statusTransitions.WithLabelValues(string(from), string(newStatus)).Inc()

	if assigneeDefaulted {
		s.notifyAssignment(ctx, incident, performedBy)
	}

	return incident, nil
}

// Assign sets the assignee and forces the incident into the assigned status
// regardless of its current one. This is the specialist takeover path.
func (s *Service) Assign(ctx context.Context, id, assigneeID, performedBy string) (*domain.Incident, error) {
	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := incident.Status
	now := time.Now().UTC()
	incident.AssignedTo = &assigneeID
	incident.Status = domain.IncidentStatusAssigned
	incident.UpdatedAt = now

	if err := s.repo.Update(ctx, incident); err != nil {
		return nil, fmt.Errorf("update incident: %w", err)
	}

	s.recordHistory(ctx, &domain.HistoryEntry{
		IncidentID:     id,
		Action:         domain.HistoryActionAssigned,
		PreviousStatus: statusPtr(from),
		NewStatus:      statusPtr(domain.IncidentStatusAssigned),
		PerformedBy:    performedBy,
		CreatedAt:      now,
	})

	if from != domain.IncidentStatusAssigned {
		statusTransitions.WithLabelValues(string(from), string(domain.IncidentStatusAssigned)).Inc()
	}

	s.notifyAssignment(ctx, incident, assigneeID)

	return incident, nil
}

// AddNote attaches a free-form note to the incident's history.
func (s *Service) AddNote(ctx context.Context, id, performedBy string, input NoteInput) (*domain.HistoryEntry, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	entry := &domain.HistoryEntry{
		ID:          uuid.NewString(),
		IncidentID:  id,
		Action:      domain.HistoryActionNote,
		PerformedBy: performedBy,
		Notes:       &input.Notes,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.AddHistory(ctx, entry); err != nil {
		return nil, fmt.Errorf("add note: %w", err)
	}
	return entry, nil
}

// Analyze runs the AI analyzer over the incident text and stores the
// resulting tags and assessment on the incident.
func (s *Service) Analyze(ctx context.Context, id string) (*analysis.Result, error) {
	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := s.analyzer.Analyze(ctx, incident.Title, incident.Description)
	if err != nil {
		return nil, fmt.Errorf("analyze incident: %w", err)
	}

	incident.AITags = result.Tags
	incident.AIAnalysis = &result.Analysis
	incident.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, incident); err != nil {
		return nil, fmt.Errorf("store analysis: %w", err)
	}

	analysesPerformed.Inc()

	return result, nil
}

// Delete removes an incident and its history.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) findSimilar(ctx context.Context, incident *domain.Incident) ([]domain.SimilarIncident, error) {
	candidates, err := s.repo.List(ctx, Filters{})
	if err != nil {
		return nil, err
	}
	return FindSimilar(incident, candidates), nil
}

// recordHistory logs failures instead of failing the operation; the primary
// state change has already been committed.
func (s *Service) recordHistory(ctx context.Context, entry *domain.HistoryEntry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if err := s.repo.AddHistory(ctx, entry); err != nil {
		ctxlog.FromContext(ctx).Error("failed to record incident history",
			"incident_id", entry.IncidentID, "action", entry.Action, "error", err)
	}
}

func (s *Service) notifyAssignment(ctx context.Context, incident *domain.Incident, assigneeID string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyAssignment(ctx, incident, assigneeID); err != nil {
		ctxlog.FromContext(ctx).Error("failed to queue assignment notification",
			"incident_id", incident.ID, "assignee", assigneeID, "error", err)
	}
}

func statusPtr(s domain.IncidentStatus) *domain.IncidentStatus {
	return &s
}

func notesPtr(notes string) *string {
	if notes == "" {
		return nil
	}
	return &notes
}
