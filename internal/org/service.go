// InstaBids | 2026
// service.go

package org

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/instabids/management-api/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	name, orgType string,
) (*Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("create organization: name: %w", core.ErrInvalidInput)
	}

	switch orgType {
	case TypePropertyManagement, TypeContractor, TypeOther:
	default:
		return nil, fmt.Errorf(
			"create organization: invalid type %q: %w",
			orgType,
			core.ErrInvalidInput,
		)
	}

	organization := &Organization{
		ID:   uuid.New().String(),
		Name: name,
		Type: orgType,
	}

	if err := s.repo.Create(ctx, organization); err != nil {
		return nil, err
	}

	return organization, nil
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*Organization, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateOrganization satisfies the registration flow's collaborator
// interface without exposing the entity type across package lines.
func (s *Service) CreateOrganization(
	ctx context.Context,
	name, orgType string,
) (string, error) {
	organization, err := s.Create(ctx, name, orgType)
	if err != nil {
		return "", err
	}

	return organization.ID, nil
}
