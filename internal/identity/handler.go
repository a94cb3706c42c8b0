package identity

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Domikas122/ITSM-System-VIKO/internal/domain"
	"github.com/Domikas122/ITSM-System-VIKO/internal/pkg/httputil"
)

// Handler exposes identity operations over HTTP.
type Handler struct {
	service  *Service
	validate *validator.Validate
}

// NewHandler creates an identity HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service, validate: validator.New()}
}

// RegisterRoutes mounts public identity routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.login)
	})
}

// RegisterProtectedRoutes mounts routes that require authentication.
func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/me", h.me)
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.listUsers)

		r.Group(func(r chi.Router) {
			r.Use(httputil.RequireRole(domain.RoleSpecialist))
			r.Post("/", h.createUser)
		})
	})
}

var errorMappings = []httputil.ErrorMapping{
	{Error: ErrUserNotFound, Status: http.StatusNotFound, Message: "user not found"},
	{Error: ErrUsernameExists, Status: http.StatusConflict, Message: "username already exists"},
	{Error: ErrInvalidCredentials, Status: http.StatusUnauthorized, Message: "invalid credentials"},
	{Error: ErrInvalidToken, Status: http.StatusUnauthorized, Message: "invalid or expired token"},
	{Error: ErrInvalidRole, Status: http.StatusBadRequest, Message: "unknown role"},
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		httputil.ValidationError(w, verrs)
		return
	}
	httputil.HandleError(r.Context(), w, err, errorMappings)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var input LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(input); err != nil {
		h.handleError(w, r, err)
		return
	}

	session, err := h.service.Login(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, session)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUser(r.Context(), httputil.GetUserID(r.Context()))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.Success(w, http.StatusOK, user)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var input RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(input); err != nil {
		h.handleError(w, r, err)
		return
	}

	user, err := h.service.Register(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusCreated, user)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	httputil.Success(w, http.StatusOK, users)
}
