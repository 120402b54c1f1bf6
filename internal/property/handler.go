// InstaBids | 2026
// handler.go

package property

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
	r.Route("/properties", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Post("/bulk", h.BulkCreate)
		r.Get("/{propertyID}", h.Get)
		r.Put("/{propertyID}", h.Update)
		r.Delete("/{propertyID}", h.Delete)
		r.Post("/{propertyID}/archive", h.Archive)
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
	params := listParamsFromQuery(r)

	properties, total, err := h.service.List(
		r.Context(),
		actorFromRequest(r),
		params,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Paginated(w, properties, params.Page, params.PageSize, total)
}

func listParamsFromQuery(r *http.Request) ListParams {
	q := r.URL.Query()

	params := ListParams{
		Page:            parseIntQuery(r, "page", 1),
		PageSize:        parseIntQuery(r, "page_size", 20),
		Search:          q.Get("search"),
		PropertyType:    q.Get("property_type"),
		Status:          q.Get("status"),
		ManagerID:       q.Get("manager_id"),
		City:            q.Get("city"),
		State:           q.Get("state"),
		MinBedrooms:     parseIntQuery(r, "min_bedrooms", 0),
		MinSquareFeet:   parseIntQuery(r, "min_square_feet", 0),
		MaxSquareFeet:   parseIntQuery(r, "max_square_feet", 0),
		MinYearBuilt:    parseIntQuery(r, "min_year_built", 0),
		MaxYearBuilt:    parseIntQuery(r, "max_year_built", 0),
		IncludeArchived: q.Get("include_archived") == "true",
	}
	params.Normalize()

	return params
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")
	if propertyID == "" {
		core.BadRequest(w, "property ID required")
		return
	}

	p, err := h.service.Get(r.Context(), actorFromRequest(r), propertyID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, p)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")
	if propertyID == "" {
		core.BadRequest(w, "property ID required")
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
		propertyID,
		req,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, p)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")
	if propertyID == "" {
		core.BadRequest(w, "property ID required")
		return
	}

	err := h.service.Delete(r.Context(), actorFromRequest(r), propertyID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")
	if propertyID == "" {
		core.BadRequest(w, "property ID required")
		return
	}

	err := h.service.Archive(r.Context(), actorFromRequest(r), propertyID)
	if err != nil {
		if errors.Is(err, core.ErrConflict) {
			core.Conflict(w, "property is already archived")
			return
		}
		h.writeError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var req BulkCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	result, err := h.service.BulkCreate(r.Context(), actorFromRequest(r), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Created(w, result)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "property")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	case errors.Is(err, core.ErrDuplicateKey):
		core.JSONError(w, core.DuplicateError("property"))
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
