// Package postgres provides PostgreSQL implementation of incidents repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domikas122/ITSM-System-VIKO/internal/domain"
	"github.com/Domikas122/ITSM-System-VIKO/internal/incidents"
)

// Repository implements incidents.Repository using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const incidentColumns = `
	id, title, description, category, severity, status,
	affected_systems, reported_by, assigned_to, ai_tags, ai_analysis,
	created_at, updated_at, resolved_at
`

// Create inserts a new incident.
func (r *Repository) Create(ctx context.Context, incident *domain.Incident) error {
	query := `
		INSERT INTO incidents (
			id, title, description, category, severity, status,
			affected_systems, reported_by, assigned_to, ai_tags, ai_analysis,
			created_at, updated_at, resolved_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.Exec(ctx, query,
		incident.ID,
		incident.Title,
		incident.Description,
		incident.Category,
		incident.Severity,
		incident.Status,
		incident.AffectedSystems,
		incident.ReportedBy,
		incident.AssignedTo,
		incident.AITags,
		incident.AIAnalysis,
		incident.CreatedAt,
		incident.UpdatedAt,
		incident.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("create incident: %w", err)
	}
	return nil
}

// GetByID retrieves an incident by ID.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1`

	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, incidents.ErrIncidentNotFound
		}
		return nil, fmt.Errorf("get incident: %w", err)
	}
	return incident, nil
}

// List retrieves incidents with optional filters, newest first.
func (r *Repository) List(ctx context.Context, filters incidents.Filters) ([]domain.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE 1=1`
	args := []any{}
	argNum := 1

	if len(filters.Statuses) > 0 {
		query += fmt.Sprintf(" AND status = ANY($%d)", argNum)
		args = append(args, statusStrings(filters.Statuses))
		argNum++
	}
	if len(filters.Categories) > 0 {
		query += fmt.Sprintf(" AND category = ANY($%d)", argNum)
		args = append(args, categoryStrings(filters.Categories))
		argNum++
	}
	if len(filters.Severities) > 0 {
		query += fmt.Sprintf(" AND severity = ANY($%d)", argNum)
		args = append(args, severityStrings(filters.Severities))
		argNum++
	}
	if filters.ReportedBy != "" {
		query += fmt.Sprintf(" AND reported_by = $%d", argNum)
		args = append(args, filters.ReportedBy)
		argNum++
	}
	if filters.AssignedTo != "" {
		query += fmt.Sprintf(" AND assigned_to = $%d", argNum)
		args = append(args, filters.AssignedTo)
		argNum++
	}
	if filters.Search != "" {
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", argNum, argNum)
		args = append(args, "%"+filters.Search+"%")
		argNum++
	}
	if filters.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argNum)
		args = append(args, *filters.From)
		argNum++
	}
	if filters.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argNum)
		args = append(args, *filters.To)
		argNum++
	}

	query += " ORDER BY created_at DESC, id ASC"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, filters.Limit)
		argNum++
	}
	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argNum)
		args = append(args, filters.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	defer rows.Close()

	list := make([]domain.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("scan incident: %w", err)
		}
		list = append(list, *incident)
	}
	return list, rows.Err()
}

// Update persists changes to an existing incident.
func (r *Repository) Update(ctx context.Context, incident *domain.Incident) error {
	query := `
		UPDATE incidents
		SET title = $2, description = $3, category = $4, severity = $5,
		    status = $6, affected_systems = $7, assigned_to = $8,
		    ai_tags = $9, ai_analysis = $10, updated_at = $11, resolved_at = $12
		WHERE id = $1
	`
	result, err := r.db.Exec(ctx, query,
		incident.ID,
		incident.Title,
		incident.Description,
		incident.Category,
		incident.Severity,
		incident.Status,
		incident.AffectedSystems,
		incident.AssignedTo,
		incident.AITags,
		incident.AIAnalysis,
		incident.UpdatedAt,
		incident.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("update incident: %w", err)
	}
	if result.RowsAffected() == 0 {
		return incidents.ErrIncidentNotFound
	}
	return nil
}

// Delete removes an incident. History rows go with it via ON DELETE CASCADE.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM incidents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete incident: %w", err)
	}
	if result.RowsAffected() == 0 {
		return incidents.ErrIncidentNotFound
	}
	return nil
}

// Stats returns dashboard aggregates grouped by status, severity and category.
func (r *Repository) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{
		ByStatus:   make(map[domain.IncidentStatus]int),
		BySeverity: make(map[domain.Severity]int),
		ByCategory: make(map[domain.Category]int),
	}

	rows, err := r.db.Query(ctx, `SELECT status, severity, category, COUNT(*) FROM incidents GROUP BY status, severity, category`)
	if err != nil {
		return nil, fmt.Errorf("incident stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status   domain.IncidentStatus
			severity domain.Severity
			category domain.Category
			count    int
		)
		if err := rows.Scan(&status, &severity, &category, &count); err != nil {
			return nil, fmt.Errorf("scan stats row: %w", err)
		}
		stats.Total += count
		stats.ByStatus[status] += count
		stats.BySeverity[severity] += count
		stats.ByCategory[category] += count
	}
	return stats, rows.Err()
}

// AddHistory inserts a history entry.
func (r *Repository) AddHistory(ctx context.Context, entry *domain.HistoryEntry) error {
	query := `
		INSERT INTO incident_history (
			id, incident_id, action, previous_status, new_status,
			performed_by, notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.IncidentID,
		entry.Action,
		entry.PreviousStatus,
		entry.NewStatus,
		entry.PerformedBy,
		entry.Notes,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("add history entry: %w", err)
	}
	return nil
}

// ListHistory retrieves all history entries for an incident, newest first.
func (r *Repository) ListHistory(ctx context.Context, incidentID string) ([]domain.HistoryEntry, error) {
	query := `
		SELECT id, incident_id, action, previous_status, new_status,
		       performed_by, notes, created_at
		FROM incident_history
		WHERE incident_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, incidentID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.HistoryEntry, 0)
	for rows.Next() {
		var entry domain.HistoryEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.IncidentID,
			&entry.Action,
			&entry.PreviousStatus,
			&entry.NewStatus,
			&entry.PerformedBy,
			&entry.Notes,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanIncident(row pgx.Row) (*domain.Incident, error) {
	var incident domain.Incident
	err := row.Scan(
		&incident.ID,
		&incident.Title,
		&incident.Description,
		&incident.Category,
		&incident.Severity,
		&incident.Status,
		&incident.AffectedSystems,
		&incident.ReportedBy,
		&incident.AssignedTo,
		&incident.AITags,
		&incident.AIAnalysis,
		&incident.CreatedAt,
		&incident.UpdatedAt,
		&incident.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}
	return &incident, nil
}

func statusStrings(in []domain.IncidentStatus) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

func categoryStrings(in []domain.Category) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

func severityStrings(in []domain.Severity) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
