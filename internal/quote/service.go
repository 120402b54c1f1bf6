// InstaBids | 2026
// service.go

package quote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

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

func (a Actor) isContractor() bool {
	return a.UserType == "contractor"
}

func (a Actor) canManage() bool {
	return a.UserType == "property_manager" || a.isAdmin()
}

// ProjectInfo is the slice of a project a bid flow needs.
type ProjectInfo struct {
	ID             string
	OrganizationID string
	Status         string
	BidDeadline    time.Time
}

type ProjectGateway interface {
	ProjectForBidding(ctx context.Context, projectID string) (*ProjectInfo, error)
	RecordBid(ctx context.Context, projectID string, delta int) error
}

// AwardFunc marks a project awarded inside the accept transaction.
type AwardFunc func(
	ctx context.Context,
	tx core.DBTX,
	projectID, quoteID string,
) error

type Service struct {
	repo     Repository
	projects ProjectGateway
	award    AwardFunc
	db       *sqlx.DB
}

func NewService(
	repo Repository,
	projects ProjectGateway,
	award AwardFunc,
	db *sqlx.DB,
) *Service {
	return &Service{
		repo:     repo,
		projects: projects,
		award:    award,
		db:       db,
	}
}

func (s *Service) Submit(
	ctx context.Context,
	actor Actor,
	req SubmitRequest,
) (*Quote, error) {
	if !actor.isContractor() {
		return nil, fmt.Errorf(
			"submit quote: contractors only: %w",
			core.ErrForbidden,
		)
	}

	info, err := s.projects.ProjectForBidding(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	if err := checkBiddingOpen(info); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByProjectAndContractor(
		ctx,
		req.ProjectID,
		actor.UserID,
	)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf(
			"submit quote: quote already exists for this project: %w",
			core.ErrConflict,
		)
	}

	q := &Quote{
		ID:                    uuid.New().String(),
		ProjectID:             req.ProjectID,
		ContractorID:          actor.UserID,
		Status:                StatusSubmitted,
		TotalAmount:           req.TotalAmount,
		LaborCost:             req.LaborCost,
		MaterialsCost:         req.MaterialsCost,
		OtherCosts:            req.OtherCosts,
		TaxAmount:             req.TaxAmount,
		CanStartDate:          req.CanStartDate,
		EstimatedDurationDays: req.EstimatedDurationDays,
		CompletionDate:        req.CompletionDate,
		PaymentTerms:          req.PaymentTerms,
		WarrantyPeriodMonths:  req.WarrantyPeriodMonths,
		Notes:                 req.Notes,
		LineItems:             req.LineItems,
	}

	if req.IsDraft {
		q.Status = StatusDraft
	} else {
		now := time.Now()
		q.SubmittedAt = &now
	}

	if err := s.repo.Create(ctx, q); err != nil {
		return nil, err
	}

	if q.Status == StatusSubmitted {
		//nolint:errcheck // counters are best-effort
		_ = s.projects.RecordBid(ctx, req.ProjectID, 1)
	}

	return q, nil
}

func (s *Service) Update(
	ctx context.Context,
	actor Actor,
	id string,
	req UpdateRequest,
) (*Quote, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if q.ContractorID != actor.UserID && !actor.isAdmin() {
		return nil, fmt.Errorf("update quote: %w", core.ErrForbidden)
	}

	if !q.IsOpen() {
		return nil, fmt.Errorf(
			"update quote: quote is %s: %w",
			q.Status,
			core.ErrConflict,
		)
	}

	info, err := s.projects.ProjectForBidding(ctx, q.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := checkBiddingOpen(info); err != nil {
		return nil, err
	}

	wasDraft := q.Status == StatusDraft
	applyUpdate(q, req)

	switch {
	case wasDraft && req.Submit:
		now := time.Now()
		q.Status = StatusSubmitted
		q.SubmittedAt = &now
	case !wasDraft:
		q.Status = StatusUpdated
	}

	if err := s.repo.Update(ctx, q); err != nil {
		return nil, err
	}

	if wasDraft && q.Status == StatusSubmitted {
		//nolint:errcheck // counters are best-effort
		_ = s.projects.RecordBid(ctx, q.ProjectID, 1)
	}

	return q, nil
}

func applyUpdate(q *Quote, req UpdateRequest) {
	if req.TotalAmount != nil {
		q.TotalAmount = *req.TotalAmount
	}
	if req.LaborCost != nil {
		q.LaborCost = req.LaborCost
	}
	if req.MaterialsCost != nil {
		q.MaterialsCost = req.MaterialsCost
	}
	if req.OtherCosts != nil {
		q.OtherCosts = req.OtherCosts
	}
	if req.TaxAmount != nil {
		q.TaxAmount = req.TaxAmount
	}
	if req.CanStartDate != nil {
		q.CanStartDate = req.CanStartDate
	}
	if req.EstimatedDurationDays != nil {
		q.EstimatedDurationDays = req.EstimatedDurationDays
	}
	if req.CompletionDate != nil {
		q.CompletionDate = req.CompletionDate
	}
	if req.PaymentTerms != nil {
		q.PaymentTerms = req.PaymentTerms
	}
	if req.WarrantyPeriodMonths != nil {
		q.WarrantyPeriodMonths = req.WarrantyPeriodMonths
	}
	if req.Notes != nil {
		q.Notes = req.Notes
	}
	if req.LineItems != nil {
		q.LineItems = req.LineItems
	}
}

func (s *Service) Get(
	ctx context.Context,
	actor Actor,
	id string,
) (*Quote, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkReadAccess(ctx, actor, q); err != nil {
		return nil, err
	}

	return q, nil
}

func (s *Service) ListByProject(
	ctx context.Context,
	actor Actor,
	projectID string,
	params ListParams,
) ([]Quote, int, error) {
	if !actor.canManage() {
		return nil, 0, fmt.Errorf(
			"list project quotes: %w",
			core.ErrForbidden,
		)
	}

	info, err := s.projects.ProjectForBidding(ctx, projectID)
	if err != nil {
		return nil, 0, err
	}

	if !actor.isAdmin() && info.OrganizationID != actor.OrganizationID {
		return nil, 0, fmt.Errorf(
			"list project quotes: %w",
			core.ErrForbidden,
		)
	}

	return s.repo.ListByProject(ctx, projectID, params)
}

func (s *Service) ListMine(
	ctx context.Context,
	actor Actor,
	params ListParams,
) ([]Quote, int, error) {
	if !actor.isContractor() {
		return nil, 0, fmt.Errorf(
			"list own quotes: contractors only: %w",
			core.ErrForbidden,
		)
	}

	return s.repo.ListByContractor(ctx, actor.UserID, params)
}

func (s *Service) Withdraw(
	ctx context.Context,
	actor Actor,
	id string,
) error {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if q.ContractorID != actor.UserID && !actor.isAdmin() {
		return fmt.Errorf("withdraw quote: %w", core.ErrForbidden)
	}

	if !q.IsOpen() {
		return fmt.Errorf(
			"withdraw quote: quote is %s: %w",
			q.Status,
			core.ErrConflict,
		)
	}

	wasSubmitted := q.Status != StatusDraft

	if err := s.repo.SetStatus(ctx, id, StatusWithdrawn); err != nil {
		return err
	}

	if wasSubmitted {
		//nolint:errcheck // counters are best-effort
		_ = s.projects.RecordBid(ctx, q.ProjectID, -1)
	}

	return nil
}

// Accept awards the project to the quote's contractor. The winning
// quote, its open siblings, and the project row all move together or
// not at all.
func (s *Service) Accept(
	ctx context.Context,
	actor Actor,
	id string,
) (*Quote, error) {
	if !actor.canManage() {
		return nil, fmt.Errorf("accept quote: %w", core.ErrForbidden)
	}

	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if q.Status != StatusSubmitted && q.Status != StatusUpdated {
		return nil, fmt.Errorf(
			"accept quote: quote is %s: %w",
			q.Status,
			core.ErrConflict,
		)
	}

	info, err := s.projects.ProjectForBidding(ctx, q.ProjectID)
	if err != nil {
		return nil, err
	}

	if !actor.isAdmin() && info.OrganizationID != actor.OrganizationID {
		return nil, fmt.Errorf("accept quote: %w", core.ErrForbidden)
	}

	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		txRepo := NewRepository(tx)

		if err := txRepo.SetStatus(ctx, id, StatusAccepted); err != nil {
			return err
		}

		if err := txRepo.RejectOpenSiblings(ctx, q.ProjectID, id); err != nil {
			return err
		}

		return s.award(ctx, tx, q.ProjectID, id)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) checkReadAccess(
	ctx context.Context,
	actor Actor,
	q *Quote,
) error {
	if actor.isAdmin() || q.ContractorID == actor.UserID {
		return nil
	}

	if actor.canManage() {
		info, err := s.projects.ProjectForBidding(ctx, q.ProjectID)
		if err != nil {
			return err
		}
		if info.OrganizationID == actor.OrganizationID {
			return nil
		}
	}

	return fmt.Errorf("quote access: %w", core.ErrForbidden)
}

func checkBiddingOpen(info *ProjectInfo) error {
	if info.Status != "open_for_bids" {
		return fmt.Errorf(
			"quote: project is not accepting bids: %w",
			core.ErrConflict,
		)
	}
	if !info.BidDeadline.After(time.Now()) {
		return fmt.Errorf(
			"quote: bid deadline has passed: %w",
			core.ErrConflict,
		)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, core.ErrNotFound)
}
