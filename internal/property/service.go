// InstaBids | 2026
// service.go

package property

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/instabids/management-api/internal/core"
)

// Actor carries the caller identity resolved by the auth middleware.
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

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	actor Actor,
	req CreateRequest,
) (*Property, error) {
	if err := s.requireManager(actor); err != nil {
		return nil, err
	}

	p, err := buildProperty(actor, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func buildProperty(actor Actor, req CreateRequest) (*Property, error) {
	propertyType := req.PropertyType
	if propertyType == "" {
		propertyType = TypeOther
	}
	if !ValidType(propertyType) {
		return nil, fmt.Errorf(
			"create property: invalid property type %q: %w",
			propertyType,
			core.ErrInvalidInput,
		)
	}

	status := req.Status
	if status == "" {
		status = StatusActive
	}
	if !ValidStatus(status) {
		return nil, fmt.Errorf(
			"create property: invalid status %q: %w",
			status,
			core.ErrInvalidInput,
		)
	}

	country := req.Country
	if country == "" {
		country = "USA"
	}

	managerID := req.ManagerID
	if managerID == nil {
		id := actor.UserID
		managerID = &id
	}

	return &Property{
		ID:             uuid.New().String(),
		OrganizationID: actor.OrganizationID,
		Name:           req.Name,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		Zip:            req.Zip,
		Country:        country,
		PropertyType:   propertyType,
		Status:         status,
		ManagerID:      managerID,
		Bedrooms:       req.Bedrooms,
		Bathrooms:      req.Bathrooms,
		SquareFeet:     req.SquareFeet,
		YearBuilt:      req.YearBuilt,
		Units:          req.Units,
		LotSize:        req.LotSize,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Notes:          req.Notes,
		Amenities:      req.Amenities,
	}, nil
}

func (s *Service) Get(
	ctx context.Context,
	actor Actor,
	id string,
) (*Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkOrgAccess(actor, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) List(
	ctx context.Context,
	actor Actor,
	params ListParams,
) ([]Property, int, error) {
	if actor.OrganizationID == "" {
		return nil, 0, fmt.Errorf(
			"list properties: no organization: %w",
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
) (*Property, error) {
	if err := s.requireManager(actor); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkOrgAccess(actor, p); err != nil {
		return nil, err
	}

	if err := applyUpdate(p, req); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

//nolint:gocyclo // field-by-field partial update
func applyUpdate(p *Property, req UpdateRequest) error {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.City != nil {
		p.City = *req.City
	}
	if req.State != nil {
		p.State = *req.State
	}
	if req.Zip != nil {
		p.Zip = *req.Zip
	}
	if req.Country != nil {
		p.Country = *req.Country
	}
	if req.PropertyType != nil {
		if !ValidType(*req.PropertyType) {
			return fmt.Errorf(
				"update property: invalid property type %q: %w",
				*req.PropertyType,
				core.ErrInvalidInput,
			)
		}
		p.PropertyType = *req.PropertyType
	}
	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return fmt.Errorf(
				"update property: invalid status %q: %w",
				*req.Status,
				core.ErrInvalidInput,
			)
		}
		p.Status = *req.Status
	}
	if req.ManagerID != nil {
		p.ManagerID = req.ManagerID
	}
	if req.Bedrooms != nil {
		p.Bedrooms = req.Bedrooms
	}
	if req.Bathrooms != nil {
		p.Bathrooms = req.Bathrooms
	}
	if req.SquareFeet != nil {
		p.SquareFeet = req.SquareFeet
	}
	if req.YearBuilt != nil {
		p.YearBuilt = req.YearBuilt
	}
	if req.Units != nil {
		p.Units = req.Units
	}
	if req.LotSize != nil {
		p.LotSize = req.LotSize
	}
	if req.Latitude != nil {
		p.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		p.Longitude = req.Longitude
	}
	if req.Notes != nil {
		p.Notes = req.Notes
	}
	if req.Amenities != nil {
		p.Amenities = req.Amenities
	}

	return nil
}

func (s *Service) Delete(ctx context.Context, actor Actor, id string) error {
	if err := s.requireManager(actor); err != nil {
		return err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.checkOrgAccess(actor, p); err != nil {
		return err
	}

	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) Archive(ctx context.Context, actor Actor, id string) error {
	if err := s.requireManager(actor); err != nil {
		return err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.checkOrgAccess(actor, p); err != nil {
		return err
	}

	if p.IsArchived() {
		return fmt.Errorf("archive property: %w", core.ErrConflict)
	}

	return s.repo.SetStatus(ctx, id, StatusArchived)
}

func (s *Service) BulkCreate(
	ctx context.Context,
	actor Actor,
	req BulkCreateRequest,
) (*BulkCreateResult, error) {
	if err := s.requireManager(actor); err != nil {
		return nil, err
	}

	result := &BulkCreateResult{
		Created: make([]Property, 0, len(req.Properties)),
		Skipped: make([]string, 0),
	}

	for _, create := range req.Properties {
		if req.SkipDuplicates {
			exists, err := s.repo.ExistsByAddress(
				ctx,
				actor.OrganizationID,
				create.Address,
				create.City,
				create.State,
				create.Zip,
			)
			if err != nil {
				return nil, err
			}
			if exists {
				result.Skipped = append(result.Skipped, create.Address)
				continue
			}
		}

		p, err := buildProperty(actor, create)
		if err != nil {
			return nil, err
		}

		if err := s.repo.Create(ctx, p); err != nil {
			if req.SkipDuplicates && errors.Is(err, core.ErrDuplicateKey) {
				result.Skipped = append(result.Skipped, create.Address)
				continue
			}
			return nil, err
		}

		result.Created = append(result.Created, *p)
	}

	return result, nil
}

// PropertyOrganization reports the owning organization of a property
// for collaborators that attach records to it.
func (s *Service) PropertyOrganization(
	ctx context.Context,
	propertyID string,
) (string, error) {
	p, err := s.repo.GetByID(ctx, propertyID)
	if err != nil {
		return "", err
	}

	return p.OrganizationID, nil
}

func (s *Service) requireManager(actor Actor) error {
	if !actor.canManage() {
		return fmt.Errorf(
			"property write: requires manager role: %w",
			core.ErrForbidden,
		)
	}
	if actor.OrganizationID == "" && !actor.isAdmin() {
		return fmt.Errorf(
			"property write: no organization: %w",
			core.ErrForbidden,
		)
	}
	return nil
}

func (s *Service) checkOrgAccess(actor Actor, p *Property) error {
	if actor.isAdmin() {
		return nil
	}
	if actor.OrganizationID == "" || actor.OrganizationID != p.OrganizationID {
		return fmt.Errorf("property access: %w", core.ErrForbidden)
	}
	return nil
}
