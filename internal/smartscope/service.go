// InstaBids | 2026
// service.go

package smartscope

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/instabids/management-api/internal/core"
)

type Actor struct {
	UserID         string
	UserType       string
	OrganizationID string
}

func (a Actor) isAdmin() bool {
	return a.UserType == "admin"
}

func (a Actor) canManage() bool {
	return a.UserType == "property_manager" || a.isAdmin()
}

// ProjectResolver reports a project's owning organization and lets the
// service link a finished analysis back to it.
type ProjectResolver interface {
	ProjectOwner(ctx context.Context, projectID string) (string, error)
	AttachAnalysis(ctx context.Context, projectID, analysisID string) error
}

type Service struct {
	repo     Repository
	provider Provider
	projects ProjectResolver
}

func NewService(
	repo Repository,
	provider Provider,
	projects ProjectResolver,
) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		projects: projects,
	}
}

func (s *Service) RequestAnalysis(
	ctx context.Context,
	actor Actor,
	req AnalysisRequest,
) (*Analysis, error) {
	if !actor.canManage() {
		return nil, fmt.Errorf(
			"request analysis: requires manager role: %w",
			core.ErrForbidden,
		)
	}

	projectOrg, err := s.projects.ProjectOwner(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if !actor.isAdmin() && projectOrg != actor.OrganizationID {
		return nil, fmt.Errorf("request analysis: %w", core.ErrForbidden)
	}

	result, err := s.provider.Analyze(ctx, AnalysisInput{
		PhotoURLs:     req.PhotoURLs,
		PropertyType:  req.PropertyType,
		Area:          req.Area,
		ReportedIssue: req.ReportedIssue,
		Category:      req.Category,
		Priority:      req.Priority,
	})
	if err != nil {
		return nil, fmt.Errorf("run analysis: %w", err)
	}

	if !ValidSeverity(result.Severity) {
		return nil, fmt.Errorf(
			"run analysis: invalid severity %q: %w",
			result.Severity,
			core.ErrInvalidInput,
		)
	}

	analysis := &Analysis{
		ID:                     uuid.New().String(),
		ProjectID:              req.ProjectID,
		RequestedBy:            actor.UserID,
		PhotoURLs:              req.PhotoURLs,
		PropertyType:           req.PropertyType,
		Area:                   req.Area,
		ReportedIssue:          req.ReportedIssue,
		PrimaryIssue:           result.PrimaryIssue,
		Severity:               result.Severity,
		Category:               result.Category,
		ScopeItems:             result.ScopeItems,
		Materials:              result.Materials,
		EstimatedHours:         result.EstimatedHours,
		SafetyNotes:            result.SafetyNotes,
		AdditionalObservations: result.AdditionalObservations,
		ConfidenceScore:        result.ConfidenceScore,
		ProviderResponseRaw:    RawResponse(result.Raw),
	}

	if err := s.repo.Create(ctx, analysis); err != nil {
		return nil, err
	}

	//nolint:errcheck // the analysis stands on its own if linking fails
	_ = s.projects.AttachAnalysis(ctx, req.ProjectID, analysis.ID)

	return analysis, nil
}

func (s *Service) Get(
	ctx context.Context,
	actor Actor,
	id string,
) (*Analysis, error) {
	analysis, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(ctx, actor, analysis.ProjectID); err != nil {
		return nil, err
	}

	return analysis, nil
}

func (s *Service) GetByProject(
	ctx context.Context,
	actor Actor,
	projectID string,
) ([]Analysis, error) {
	if err := s.checkAccess(ctx, actor, projectID); err != nil {
		return nil, err
	}

	return s.repo.GetByProject(ctx, projectID)
}

func (s *Service) SubmitFeedback(
	ctx context.Context,
	actor Actor,
	analysisID string,
	req FeedbackRequest,
) (*Feedback, error) {
	analysis, err := s.repo.GetByID(ctx, analysisID)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(ctx, actor, analysis.ProjectID); err != nil {
		return nil, err
	}

	feedback := &Feedback{
		ID:                  uuid.New().String(),
		AnalysisID:          analysisID,
		UserID:              actor.UserID,
		AccuracyRating:      req.AccuracyRating,
		ScopeCorrections:    req.ScopeCorrections,
		MaterialCorrections: req.MaterialCorrections,
		Comments:            req.Comments,
	}

	if err := s.repo.CreateFeedback(ctx, feedback); err != nil {
		return nil, err
	}

	return feedback, nil
}

func (s *Service) checkAccess(
	ctx context.Context,
	actor Actor,
	projectID string,
) error {
	if actor.isAdmin() {
		return nil
	}

	projectOrg, err := s.projects.ProjectOwner(ctx, projectID)
	if err != nil {
		return err
	}

	if projectOrg != actor.OrganizationID {
		return fmt.Errorf("analysis access: %w", core.ErrForbidden)
	}

	return nil
}
