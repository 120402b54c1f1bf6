// InstaBids | 2026
// handler.go

package project

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/instabids/management-api/internal/core"
	"github.com/instabids/management-api/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/projects", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{projectID}", h.Get)
		r.Put("/{projectID}", h.Update)
		r.Patch("/{projectID}/status", h.UpdateStatus)
		r.Post("/{projectID}/publish", h.Publish)
	})
}

func actorFromRequest(r *http.Request) Actor {
	ctx := r.Context()
	return Actor{
		UserID:         middleware.GetUserID(ctx),
		UserType:       middleware.GetUserType(ctx),
		OrganizationID: middleware.GetOrganizationID(ctx),
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.Create(r.Context(), actorFromRequest(r), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Created(w, p)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := ListParams{
		Page:       parseIntQuery(r, "page", 1),
		PageSize:   parseIntQuery(r, "page_size", 20),
		Search:     q.Get("search"),
		Status:     q.Get("status"),
		Category:   q.Get("category"),
		Urgency:    q.Get("urgency"),
		PropertyID: q.Get("property_id"),
	}
	params.Normalize()

	projects, total, err := h.service.List(
		r.Context(),
		actorFromRequest(r),
		params,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Paginated(w, projects, params.Page, params.PageSize, total)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	if projectID == "" {
		core.BadRequest(w, "project ID required")
		return
	}

	p, err := h.service.Get(r.Context(), actorFromRequest(r), projectID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, p)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	if projectID == "" {
		core.BadRequest(w, "project ID required")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.Update(
		r.Context(),
		actorFromRequest(r),
		projectID,
		req,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, p)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	if projectID == "" {
		core.BadRequest(w, "project ID required")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.UpdateStatus(
		r.Context(),
		actorFromRequest(r),
		projectID,
		req.Status,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, p)
}

func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	if projectID == "" {
		core.BadRequest(w, "project ID required")
		return
	}

	p, err := h.service.Publish(r.Context(), actorFromRequest(r), projectID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, p)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "project")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	case errors.Is(err, core.ErrConflict):
		core.Conflict(w, err.Error())
	default:
		core.InternalServerError(w, err)
	}
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
