package incidents

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Domikas122/ITSM-System-VIKO/internal/domain"
	"github.com/Domikas122/ITSM-System-VIKO/internal/pkg/httputil"
	"github.com/Domikas122/ITSM-System-VIKO/internal/pkg/i18n"
)

// Handler exposes incident operations over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates an incident HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts incident routes. The router is expected to already
// carry authentication middleware.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/incidents", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/stats", h.stats)
		r.Get("/labels", h.labels)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.get)
			r.Post("/notes", h.addNote)
			r.Get("/history", h.history)

			r.Group(func(r chi.Router) {
				r.Use(httputil.RequireRole(domain.RoleSpecialist))
				r.Patch("/status", h.transition)
				r.Patch("/assign", h.assign)
				r.Post("/analyze", h.analyze)
				r.Delete("/", h.remove)
			})
		})
	})
}

var errorMappings = []httputil.ErrorMapping{
	{Error: ErrIncidentNotFound, Status: http.StatusNotFound, Message: "incident not found"},
	{Error: ErrInvalidTransition, Status: http.StatusBadRequest, Message: "status transition not allowed"},
	{Error: ErrInvalidStatus, Status: http.StatusBadRequest, Message: "unknown status"},
	{Error: ErrInvalidCategory, Status: http.StatusBadRequest, Message: "unknown category"},
	{Error: ErrInvalidSeverity, Status: http.StatusBadRequest, Message: "unknown severity"},
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		httputil.ValidationError(w, verrs)
		return
	}
	httputil.HandleError(r.Context(), w, err, errorMappings)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var input CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	details, err := h.service.Create(r.Context(), input, httputil.GetUserID(r.Context()))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusCreated, details)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	incidents, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, incidents)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.GetDetails(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.Success(w, http.StatusOK, details)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.Success(w, http.StatusOK, stats)
}

// labels returns localized display labels for the enum vocabularies, resolved
// from the Accept-Language header.
func (h *Handler) labels(w http.ResponseWriter, r *http.Request) {
	tag := i18n.Match(r.Header.Get("Accept-Language"))

	statuses := make(map[domain.IncidentStatus]string)
	for _, s := range []domain.IncidentStatus{
		domain.IncidentStatusNew, domain.IncidentStatusAssigned,
		domain.IncidentStatusInProgress, domain.IncidentStatusResolved,
		domain.IncidentStatusClosed,
	} {
		statuses[s] = i18n.StatusLabel(tag, s)
	}

	severities := make(map[domain.Severity]string)
	for _, s := range []domain.Severity{
		domain.SeverityCritical, domain.SeverityHigh,
		domain.SeverityMedium, domain.SeverityLow,
	} {
		severities[s] = i18n.SeverityLabel(tag, s)
	}

	categories := make(map[domain.Category]string)
	for _, c := range []domain.Category{domain.CategoryIT, domain.CategoryCyber} {
		categories[c] = i18n.CategoryLabel(tag, c)
	}

	httputil.Success(w, http.StatusOK, map[string]any{
		"locale":     tag.String(),
		"statuses":   statuses,
		"severities": severities,
		"categories": categories,
	})
}

type transitionRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	incident, err := h.service.Transition(r.Context(), chi.URLParam(r, "id"),
		domain.IncidentStatus(req.Status), httputil.GetUserID(r.Context()), req.Notes)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, incident)
}

type assignRequest struct {
	AssigneeID string `json:"assigneeId"`
}

func (h *Handler) assign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AssigneeID == "" {
		httputil.Error(w, http.StatusBadRequest, "assigneeId is required")
		return
	}

	incident, err := h.service.Assign(r.Context(), chi.URLParam(r, "id"),
		req.AssigneeID, httputil.GetUserID(r.Context()))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, incident)
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Analyze(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.Success(w, http.StatusOK, result)
}

func (h *Handler) addNote(w http.ResponseWriter, r *http.Request) {
	var input NoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.service.AddNote(r.Context(), chi.URLParam(r, "id"),
		httputil.GetUserID(r.Context()), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusCreated, entry)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.Success(w, http.StatusOK, entries)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseFilters(r *http.Request) (Filters, error) {
	q := r.URL.Query()
	var filters Filters

	for _, raw := range splitMulti(q["status"]) {
		s := domain.IncidentStatus(raw)
		if !s.IsValid() {
			return filters, errors.New("unknown status filter: " + raw)
		}
		filters.Statuses = append(filters.Statuses, s)
	}
	for _, raw := range splitMulti(q["category"]) {
		c := domain.Category(raw)
		if !c.IsValid() {
			return filters, errors.New("unknown category filter: " + raw)
		}
		filters.Categories = append(filters.Categories, c)
	}
	for _, raw := range splitMulti(q["severity"]) {
		s := domain.Severity(raw)
		if !s.IsValid() {
			return filters, errors.New("unknown severity filter: " + raw)
		}
		filters.Severities = append(filters.Severities, s)
	}

	filters.Search = q.Get("search")
	filters.ReportedBy = q.Get("reported_by")
	filters.AssignedTo = q.Get("assigned_to")

	if raw := q.Get("from"); raw != "" {
		ts, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filters, errors.New("invalid from date, expected YYYY-MM-DD")
		}
		filters.From = &ts
	}
	if raw := q.Get("to"); raw != "" {
		ts, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filters, errors.New("invalid to date, expected YYYY-MM-DD")
		}
		// inclusive upper bound: end of the given day
		end := ts.Add(24*time.Hour - time.Nanosecond)
		filters.To = &end
	}

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return filters, errors.New("invalid limit")
		}
		filters.Limit = n
	}
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return filters, errors.New("invalid offset")
		}
		filters.Offset = n
	}

	return filters, nil
}

// splitMulti accepts both repeated query params and comma separated values.
func splitMulti(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
