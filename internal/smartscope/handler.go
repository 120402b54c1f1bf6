// InstaBids | 2026
// handler.go

package smartscope

import (
	"encoding/json"
	"errors"
	"net/http"

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
	r.Route("/smartscope", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/analyses", h.RequestAnalysis)
		r.Get("/analyses/{analysisID}", h.Get)
		r.Post("/analyses/{analysisID}/feedback", h.SubmitFeedback)
		r.Get("/projects/{projectID}/analyses", h.GetByProject)
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

func (h *Handler) RequestAnalysis(w http.ResponseWriter, r *http.Request) {
	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	analysis, err := h.service.RequestAnalysis(
		r.Context(),
		actorFromRequest(r),
		req,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Created(w, analysis)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	analysisID := chi.URLParam(r, "analysisID")
	if analysisID == "" {
		core.BadRequest(w, "analysis ID required")
		return
	}

	analysis, err := h.service.Get(r.Context(), actorFromRequest(r), analysisID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, analysis)
}

func (h *Handler) GetByProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	if projectID == "" {
		core.BadRequest(w, "project ID required")
		return
	}

	analyses, err := h.service.GetByProject(
		r.Context(),
		actorFromRequest(r),
		projectID,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, analyses)
}

func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	analysisID := chi.URLParam(r, "analysisID")
	if analysisID == "" {
		core.BadRequest(w, "analysis ID required")
		return
	}

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	feedback, err := h.service.SubmitFeedback(
		r.Context(),
		actorFromRequest(r),
		analysisID,
		req,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Created(w, feedback)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "analysis")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	default:
		core.InternalServerError(w, err)
	}
}
