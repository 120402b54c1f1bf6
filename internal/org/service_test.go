// InstaBids | 2026
// service_test.go

package org

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instabids/management-api/internal/core"
)

type memRepo struct {
	orgs map[string]*Organization
}

func newMemRepo() *memRepo {
	return &memRepo{orgs: map[string]*Organization{}}
}

func (r *memRepo) Create(_ context.Context, organization *Organization) error {
	copied := *organization
	r.orgs[organization.ID] = &copied
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Organization, error) {
	organization, ok := r.orgs[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *organization
	return &copied, nil
}

func TestCreate(t *testing.T) {
	svc := NewService(newMemRepo())

	organization, err := svc.Create(
		context.Background(),
		"  Lakeside Property Group  ",
		TypePropertyManagement,
	)
	require.NoError(t, err)

	assert.NotEmpty(t, organization.ID)
	assert.Equal(t, "Lakeside Property Group", organization.Name)
	assert.Equal(t, TypePropertyManagement, organization.Type)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, "   ", TypeContractor)
	require.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = svc.Create(ctx, "Acme", "cooperative")
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestCreateOrganization(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)

	id, err := svc.CreateOrganization(
		context.Background(),
		"Rapid Repairs LLC",
		TypeContractor,
	)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	fetched, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Rapid Repairs LLC", fetched.Name)
}
