// InstaBids | 2026
// service.go

package project

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/instabids/management-api/internal/config"
	"github.com/instabids/management-api/internal/core"
	"github.com/instabids/management-api/internal/quote"
	"github.com/instabids/management-api/internal/smartscope"
)

type Actor struct {
	UserID         string
	UserType       string
	OrganizationID string
}

func (a Actor) isAdmin() bool {
	return a.UserType == "admin"
}

func (a Actor) isContractor() bool {
	return a.UserType == "contractor"
}

func (a Actor) canManage() bool {
	return a.UserType == "property_manager" || a.isAdmin()
}

// PropertyChecker confirms a property exists and reports its owning
// organization before a project is attached to it.
type PropertyChecker interface {
	PropertyOrganization(ctx context.Context, propertyID string) (string, error)
}

type Service struct {
	repo       Repository
	properties PropertyChecker
	bidding    config.BiddingConfig
}

func NewService(
	repo Repository,
	properties PropertyChecker,
	bidding config.BiddingConfig,
) *Service {
	return &Service{
		repo:       repo,
		properties: properties,
		bidding:    bidding,
	}
}

func (s *Service) Create(
	ctx context.Context,
	actor Actor,
	req CreateRequest,
) (*Project, error) {
	if err := s.requireManager(actor); err != nil {
		return nil, err
	}

	if err := s.validateEnums(req.Category, req.Urgency, req.BudgetRange); err != nil {
		return nil, err
	}

	if err := s.validateSchedule(
		req.BidDeadline,
		req.PreferredStartDate,
		req.CompletionDeadline,
	); err != nil {
		return nil, err
	}

	if err := validateBudget(req.BudgetMin, req.BudgetMax); err != nil {
		return nil, err
	}

	propertyOrg, err := s.properties.PropertyOrganization(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if !actor.isAdmin() && propertyOrg != actor.OrganizationID {
		return nil, fmt.Errorf(
			"create project: property outside organization: %w",
			core.ErrForbidden,
		)
	}

	urgency := req.Urgency
	if urgency == "" {
		urgency = UrgencyRoutine
	}

	minimumBids := s.bidding.DefaultMinBids
	if req.MinimumBids != nil {
		minimumBids = *req.MinimumBids
	}

	insurance := true
	if req.InsuranceRequired != nil {
		insurance = *req.InsuranceRequired
	}

	license := true
	if req.LicenseRequired != nil {
		license = *req.LicenseRequired
	}

	p := &Project{
		ID:                 uuid.New().String(),
		PropertyID:         req.PropertyID,
		OrganizationID:     propertyOrg,
		CreatedBy:          actor.UserID,
		Title:              req.Title,
		Description:        req.Description,
		Category:           req.Category,
		Urgency:            urgency,
		Status:             StatusDraft,
		BidDeadline:        req.BidDeadline,
		PreferredStartDate: req.PreferredStartDate,
		CompletionDeadline: req.CompletionDeadline,
		BudgetMin:          req.BudgetMin,
		BudgetMax:          req.BudgetMax,
		BudgetRange:        req.BudgetRange,
		InsuranceRequired:  insurance,
		LicenseRequired:    license,
		MinimumBids:        minimumBids,
		IsOpenBidding:      req.IsOpenBidding,
		VirtualAccess:      req.VirtualAccess,
		LocationDetails:    req.LocationDetails,
		SpecialConditions:  req.SpecialConditions,
	}

	if req.Publish {
		now := time.Now()
		p.Status = StatusOpenForBids
		p.PublishedAt = &now
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(
	ctx context.Context,
	actor Actor,
	id string,
) (*Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkReadAccess(actor, p); err != nil {
		return nil, err
	}

	//nolint:errcheck // view counts are best-effort
	_ = s.repo.IncrementViewCount(ctx, id)

	return p, nil
}

func (s *Service) List(
	ctx context.Context,
	actor Actor,
	params ListParams,
) ([]Project, int, error) {
	if actor.isContractor() {
		return s.repo.ListOpenForBidding(ctx, params)
	}

	if actor.OrganizationID == "" {
		return nil, 0, fmt.Errorf(
			"list projects: no organization: %w",
			core.ErrForbidden,
		)
	}

	return s.repo.List(ctx, actor.OrganizationID, params)
}

func (s *Service) Update(
	ctx context.Context,
	actor Actor,
	id string,
	req UpdateRequest,
) (*Project, error) {
	if err := s.requireManager(actor); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkWriteAccess(actor, p); err != nil {
		return nil, err
	}

	if !p.IsDraft() {
		return nil, fmt.Errorf(
			"update project: only drafts are editable: %w",
			core.ErrConflict,
		)
	}

	if err := s.applyUpdate(p, req); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

//nolint:gocyclo // field-by-field partial update
func (s *Service) applyUpdate(p *Project, req UpdateRequest) error {
	if req.Category != nil || req.Urgency != nil || req.BudgetRange != nil {
		category := p.Category
		if req.Category != nil {
			category = *req.Category
		}
		urgency := p.Urgency
		if req.Urgency != nil {
			urgency = *req.Urgency
		}
		budgetRange := p.BudgetRange
		if req.BudgetRange != nil {
			budgetRange = req.BudgetRange
		}
		if err := s.validateEnums(category, urgency, budgetRange); err != nil {
			return err
		}
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Urgency != nil {
		p.Urgency = *req.Urgency
	}
	if req.BidDeadline != nil {
		p.BidDeadline = *req.BidDeadline
	}
	if req.PreferredStartDate != nil {
		p.PreferredStartDate = req.PreferredStartDate
	}
	if req.CompletionDeadline != nil {
		p.CompletionDeadline = req.CompletionDeadline
	}
	if req.BudgetMin != nil {
		p.BudgetMin = req.BudgetMin
	}
	if req.BudgetMax != nil {
		p.BudgetMax = req.BudgetMax
	}
	if req.BudgetRange != nil {
		p.BudgetRange = req.BudgetRange
	}
	if req.InsuranceRequired != nil {
		p.InsuranceRequired = *req.InsuranceRequired
	}
	if req.LicenseRequired != nil {
		p.LicenseRequired = *req.LicenseRequired
	}
	if req.MinimumBids != nil {
		p.MinimumBids = *req.MinimumBids
	}
	if req.IsOpenBidding != nil {
		p.IsOpenBidding = *req.IsOpenBidding
	}
	if req.VirtualAccess != nil {
		p.VirtualAccess = req.VirtualAccess
	}
	if req.LocationDetails != nil {
		p.LocationDetails = req.LocationDetails
	}
	if req.SpecialConditions != nil {
		p.SpecialConditions = req.SpecialConditions
	}

	if err := s.validateSchedule(
		p.BidDeadline,
		p.PreferredStartDate,
		p.CompletionDeadline,
	); err != nil {
		return err
	}

	return validateBudget(p.BudgetMin, p.BudgetMax)
}

func (s *Service) UpdateStatus(
	ctx context.Context,
	actor Actor,
	id, newStatus string,
) (*Project, error) {
	if err := s.requireManager(actor); err != nil {
		return nil, err
	}

	if !ValidStatus(newStatus) {
		return nil, fmt.Errorf(
			"update status: invalid status %q: %w",
			newStatus,
			core.ErrInvalidInput,
		)
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkWriteAccess(actor, p); err != nil {
		return nil, err
	}

	if !CanTransition(p.Status, newStatus) {
		return nil, fmt.Errorf(
			"update status: cannot move from %s to %s: %w",
			p.Status,
			newStatus,
			core.ErrConflict,
		)
	}

	var publishedAt, closedAt sql.NullTime
	now := time.Now()

	if newStatus == StatusOpenForBids && p.PublishedAt == nil {
		publishedAt = sql.NullTime{Time: now, Valid: true}
	}
	if newStatus == StatusCompleted || newStatus == StatusCancelled {
		closedAt = sql.NullTime{Time: now, Valid: true}
	}

	if err := s.repo.SetStatus(ctx, id, newStatus, publishedAt, closedAt); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) Publish(
	ctx context.Context,
	actor Actor,
	id string,
) (*Project, error) {
	return s.UpdateStatus(ctx, actor, id, StatusOpenForBids)
}

// ProjectForBidding exposes the fields the bid flow gates on.
func (s *Service) ProjectForBidding(
	ctx context.Context,
	projectID string,
) (*quote.ProjectInfo, error) {
	p, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return &quote.ProjectInfo{
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
		Status:         p.Status,
		BidDeadline:    p.BidDeadline,
	}, nil
}

func (s *Service) RecordBid(
	ctx context.Context,
	projectID string,
	delta int,
) error {
	return s.repo.IncrementBidCount(ctx, projectID, delta)
}

var _ quote.ProjectGateway = (*Service)(nil)

// ProjectOwner reports the organization a project belongs to.
func (s *Service) ProjectOwner(
	ctx context.Context,
	projectID string,
) (string, error) {
	p, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return "", err
	}

	return p.OrganizationID, nil
}

// AttachAnalysis links a finished scope analysis to its project.
func (s *Service) AttachAnalysis(
	ctx context.Context,
	projectID, analysisID string,
) error {
	return s.repo.SetAnalysis(ctx, projectID, analysisID)
}

var _ smartscope.ProjectResolver = (*Service)(nil)

func (s *Service) validateEnums(
	category, urgency string,
	budgetRange *string,
) error {
	if !ValidCategory(category) {
		return fmt.Errorf(
			"project: invalid category %q: %w",
			category,
			core.ErrInvalidInput,
		)
	}
	if urgency != "" && !ValidUrgency(urgency) {
		return fmt.Errorf(
			"project: invalid urgency %q: %w",
			urgency,
			core.ErrInvalidInput,
		)
	}
	if budgetRange != nil && !ValidBudgetRange(*budgetRange) {
		return fmt.Errorf(
			"project: invalid budget range %q: %w",
			*budgetRange,
			core.ErrInvalidInput,
		)
	}
	return nil
}

func (s *Service) validateSchedule(
	bidDeadline time.Time,
	preferredStart, completionDeadline *time.Time,
) error {
	now := time.Now()

	if !bidDeadline.After(now) {
		return fmt.Errorf(
			"project: bid deadline must be in the future: %w",
			core.ErrInvalidInput,
		)
	}

	maxDeadline := now.AddDate(0, 0, s.bidding.MaxDeadlineDays)
	if bidDeadline.After(maxDeadline) {
		return fmt.Errorf(
			"project: bid deadline cannot be more than %d days out: %w",
			s.bidding.MaxDeadlineDays,
			core.ErrInvalidInput,
		)
	}

	if preferredStart != nil {
		today := now.Truncate(24 * time.Hour)
		if preferredStart.Before(today) {
			return fmt.Errorf(
				"project: preferred start date cannot be in the past: %w",
				core.ErrInvalidInput,
			)
		}
		if bidDeadline.After(preferredStart.AddDate(0, 0, 1)) {
			return fmt.Errorf(
				"project: bid deadline must be on or before the start date: %w",
				core.ErrInvalidInput,
			)
		}
	}

	if completionDeadline != nil && preferredStart != nil &&
		completionDeadline.Before(*preferredStart) {
		return fmt.Errorf(
			"project: completion deadline must be after the start date: %w",
			core.ErrInvalidInput,
		)
	}

	return nil
}

func validateBudget(budgetMin, budgetMax *float64) error {
	if budgetMin != nil && budgetMax != nil && *budgetMin > *budgetMax {
		return fmt.Errorf(
			"project: minimum budget cannot exceed maximum: %w",
			core.ErrInvalidInput,
		)
	}
	return nil
}

func (s *Service) requireManager(actor Actor) error {
	if !actor.canManage() {
		return fmt.Errorf(
			"project write: requires manager role: %w",
			core.ErrForbidden,
		)
	}
	if actor.OrganizationID == "" && !actor.isAdmin() {
		return fmt.Errorf(
			"project write: no organization: %w",
			core.ErrForbidden,
		)
	}
	return nil
}

func (s *Service) checkReadAccess(actor Actor, p *Project) error {
	if actor.isAdmin() {
		return nil
	}
	if actor.isContractor() {
		if p.Status == StatusDraft {
			return fmt.Errorf("project access: %w", core.ErrForbidden)
		}
		return nil
	}
	if actor.OrganizationID != p.OrganizationID {
		return fmt.Errorf("project access: %w", core.ErrForbidden)
	}
	return nil
}

func (s *Service) checkWriteAccess(actor Actor, p *Project) error {
	if actor.isAdmin() {
		return nil
	}
	if actor.OrganizationID != p.OrganizationID {
		return fmt.Errorf("project access: %w", core.ErrForbidden)
	}
	return nil
}
