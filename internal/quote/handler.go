// InstaBids | 2026
// handler.go

package quote

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
	r.Route("/quotes", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/mine", h.ListMine)
		r.Post("/", h.Submit)
		r.Get("/{quoteID}", h.Get)
		r.Put("/{quoteID}", h.Update)
		r.Post("/{quoteID}/withdraw", h.Withdraw)
		r.Post("/{quoteID}/accept", h.Accept)
	})

	r.Route("/projects/{projectID}/quotes", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.ListByProject)
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

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	q, err := h.service.Submit(r.Context(), actorFromRequest(r), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Created(w, q)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	quoteID := chi.URLParam(r, "quoteID")
	if quoteID == "" {
		core.BadRequest(w, "quote ID required")
		return
	}

	q, err := h.service.Get(r.Context(), actorFromRequest(r), quoteID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, q)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	quoteID := chi.URLParam(r, "quoteID")
	if quoteID == "" {
		core.BadRequest(w, "quote ID required")
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

	q, err := h.service.Update(r.Context(), actorFromRequest(r), quoteID, req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, q)
}

func (h *Handler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	if projectID == "" {
		core.BadRequest(w, "project ID required")
		return
	}

	params := listParamsFromQuery(r)

	quotes, total, err := h.service.ListByProject(
		r.Context(),
		actorFromRequest(r),
		projectID,
		params,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Paginated(w, quotes, params.Page, params.PageSize, total)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	params := listParamsFromQuery(r)

	quotes, total, err := h.service.ListMine(
		r.Context(),
		actorFromRequest(r),
		params,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Paginated(w, quotes, params.Page, params.PageSize, total)
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	quoteID := chi.URLParam(r, "quoteID")
	if quoteID == "" {
		core.BadRequest(w, "quote ID required")
		return
	}

	if err := h.service.Withdraw(r.Context(), actorFromRequest(r), quoteID); err != nil {
		h.writeError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	quoteID := chi.URLParam(r, "quoteID")
	if quoteID == "" {
		core.BadRequest(w, "quote ID required")
		return
	}

	q, err := h.service.Accept(r.Context(), actorFromRequest(r), quoteID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, q)
}

func listParamsFromQuery(r *http.Request) ListParams {
	params := ListParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Status:   r.URL.Query().Get("status"),
	}
	params.Normalize()

	return params
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "quote")
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
