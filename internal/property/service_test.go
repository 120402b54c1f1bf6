// InstaBids | 2026
// service_test.go

package property

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instabids/management-api/internal/core"
)

type memRepo struct {
	properties map[string]*Property
}

func newMemRepo() *memRepo {
	return &memRepo{properties: map[string]*Property{}}
}

func (r *memRepo) Create(_ context.Context, p *Property) error {
	for _, existing := range r.properties {
		if existing.OrganizationID == p.OrganizationID &&
			strings.EqualFold(existing.Address, p.Address) &&
			strings.EqualFold(existing.City, p.City) &&
			strings.EqualFold(existing.State, p.State) &&
			existing.Zip == p.Zip &&
			existing.DeletedAt == nil {
			return core.ErrDuplicateKey
		}
	}

	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	copied := *p
	r.properties[p.ID] = &copied
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Property, error) {
	p, ok := r.properties[id]
	if !ok || p.DeletedAt != nil {
		return nil, core.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *memRepo) List(
	_ context.Context,
	orgID string,
	params ListParams,
) ([]Property, int, error) {
	var out []Property
	for _, p := range r.properties {
		if p.OrganizationID != orgID || p.DeletedAt != nil {
			continue
		}
		if !params.IncludeArchived && p.Status == StatusArchived {
			continue
		}
		if params.City != "" && !strings.EqualFold(p.City, params.City) {
			continue
		}
		if params.MinBedrooms > 0 &&
			(p.Bedrooms == nil || *p.Bedrooms < params.MinBedrooms) {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (r *memRepo) Update(_ context.Context, p *Property) error {
	if _, ok := r.properties[p.ID]; !ok {
		return core.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	copied := *p
	r.properties[p.ID] = &copied
	return nil
}

func (r *memRepo) SoftDelete(_ context.Context, id string) error {
	p, ok := r.properties[id]
	if !ok {
		return core.ErrNotFound
	}
	now := time.Now()
	p.DeletedAt = &now
	return nil
}

func (r *memRepo) SetStatus(_ context.Context, id, status string) error {
	p, ok := r.properties[id]
	if !ok {
		return core.ErrNotFound
	}
	p.Status = status
	return nil
}

func (r *memRepo) ExistsByAddress(
	_ context.Context,
	orgID, address, city, state, zip string,
) (bool, error) {
	for _, p := range r.properties {
		if p.OrganizationID == orgID &&
			strings.EqualFold(p.Address, address) &&
			strings.EqualFold(p.City, city) &&
			strings.EqualFold(p.State, state) &&
			p.Zip == zip &&
			p.DeletedAt == nil {
			return true, nil
		}
	}
	return false, nil
}

func managerActor() Actor {
	return Actor{
		UserID:         "u-1",
		UserType:       "property_manager",
		OrganizationID: "org-1",
	}
}

func validCreateRequest() CreateRequest {
	return CreateRequest{
		Name:    "Lakeview Duplex",
		Address: "123 Shoreline Dr",
		City:    "Austin",
		State:   "TX",
		Zip:     "78701",
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc := NewService(newMemRepo())

	p, err := svc.Create(context.Background(), managerActor(), validCreateRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "org-1", p.OrganizationID)
	assert.Equal(t, TypeOther, p.PropertyType)
	assert.Equal(t, StatusActive, p.Status)
	assert.Equal(t, "USA", p.Country)
	require.NotNil(t, p.ManagerID)
	assert.Equal(t, "u-1", *p.ManagerID)
}

func TestCreateRejectsInvalidType(t *testing.T) {
	svc := NewService(newMemRepo())

	req := validCreateRequest()
	req.PropertyType = "castle"

	_, err := svc.Create(context.Background(), managerActor(), req)
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestCreateRequiresManagerRole(t *testing.T) {
	svc := NewService(newMemRepo())

	tenant := Actor{UserID: "u-2", UserType: "tenant", OrganizationID: "org-1"}
	_, err := svc.Create(context.Background(), tenant, validCreateRequest())
	require.ErrorIs(t, err, core.ErrForbidden)

	contractor := Actor{
		UserID:         "u-3",
		UserType:       "contractor",
		OrganizationID: "org-2",
	}
	_, err = svc.Create(context.Background(), contractor, validCreateRequest())
	require.ErrorIs(t, err, core.ErrForbidden)
}

func TestCreateRequiresOrganization(t *testing.T) {
	svc := NewService(newMemRepo())

	orphan := Actor{UserID: "u-1", UserType: "property_manager"}
	_, err := svc.Create(context.Background(), orphan, validCreateRequest())
	require.ErrorIs(t, err, core.ErrForbidden)
}

func TestGetEnforcesOrgBoundary(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, managerActor(), validCreateRequest())
	require.NoError(t, err)

	outsider := Actor{
		UserID:         "u-9",
		UserType:       "property_manager",
		OrganizationID: "org-other",
	}
	_, err = svc.Get(ctx, outsider, created.ID)
	require.ErrorIs(t, err, core.ErrForbidden)

	// Admins cross organization boundaries.
	admin := Actor{UserID: "u-0", UserType: "admin"}
	fetched, err := svc.Get(ctx, admin, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
}

func TestListRequiresOrganization(t *testing.T) {
	svc := NewService(newMemRepo())

	_, _, err := svc.List(
		context.Background(),
		Actor{UserID: "u-1", UserType: "property_manager"},
		ListParams{},
	)
	require.ErrorIs(t, err, core.ErrForbidden)
}

func TestListFilters(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()
	actor := managerActor()

	two := 2
	four := 4
	seeds := []CreateRequest{
		{
			Name: "A", Address: "1 Main St", City: "Austin",
			State: "TX", Zip: "78701", Bedrooms: &two,
		},
		{
			Name: "B", Address: "2 Main St", City: "Austin",
			State: "TX", Zip: "78702", Bedrooms: &four,
		},
		{
			Name: "C", Address: "3 Main St", City: "Dallas",
			State: "TX", Zip: "75001", Bedrooms: &four,
		},
	}
	for _, seed := range seeds {
		_, err := svc.Create(ctx, actor, seed)
		require.NoError(t, err)
	}

	all, total, err := svc.List(ctx, actor, ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, all, 3)

	austin, _, err := svc.List(ctx, actor, ListParams{City: "Austin"})
	require.NoError(t, err)
	assert.Len(t, austin, 2)

	bigAustin, _, err := svc.List(ctx, actor, ListParams{
		City:        "Austin",
		MinBedrooms: 3,
	})
	require.NoError(t, err)
	require.Len(t, bigAustin, 1)
	assert.Equal(t, "B", bigAustin[0].Name)
}

func TestUpdatePartial(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()
	actor := managerActor()

	created, err := svc.Create(ctx, actor, validCreateRequest())
	require.NoError(t, err)

	newName := "Renamed Duplex"
	three := 3
	updated, err := svc.Update(ctx, actor, created.ID, UpdateRequest{
		Name:     &newName,
		Bedrooms: &three,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed Duplex", updated.Name)
	require.NotNil(t, updated.Bedrooms)
	assert.Equal(t, 3, *updated.Bedrooms)
	// Untouched fields survive.
	assert.Equal(t, "123 Shoreline Dr", updated.Address)
	assert.Equal(t, "Austin", updated.City)
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()
	actor := managerActor()

	created, err := svc.Create(ctx, actor, validCreateRequest())
	require.NoError(t, err)

	bad := "condemned"
	_, err = svc.Update(ctx, actor, created.ID, UpdateRequest{Status: &bad})
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestDeleteIsSoft(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()
	actor := managerActor()

	created, err := svc.Create(ctx, actor, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, actor, created.ID))

	_, err = svc.Get(ctx, actor, created.ID)
	require.ErrorIs(t, err, core.ErrNotFound)

	// The row still exists underneath.
	raw, ok := repo.properties[created.ID]
	require.True(t, ok)
	assert.NotNil(t, raw.DeletedAt)
}

func TestArchive(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()
	actor := managerActor()

	created, err := svc.Create(ctx, actor, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Archive(ctx, actor, created.ID))

	// Archived properties drop out of default listings.
	visible, _, err := svc.List(ctx, actor, ListParams{})
	require.NoError(t, err)
	assert.Empty(t, visible)

	withArchived, _, err := svc.List(ctx, actor, ListParams{
		IncludeArchived: true,
	})
	require.NoError(t, err)
	assert.Len(t, withArchived, 1)

	// Double archive conflicts.
	err = svc.Archive(ctx, actor, created.ID)
	require.ErrorIs(t, err, core.ErrConflict)
}

func TestBulkCreateSkipsDuplicates(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()
	actor := managerActor()

	_, err := svc.Create(ctx, actor, validCreateRequest())
	require.NoError(t, err)

	result, err := svc.BulkCreate(ctx, actor, BulkCreateRequest{
		Properties: []CreateRequest{
			validCreateRequest(),
			{
				Name: "Fresh", Address: "9 New St", City: "Austin",
				State: "TX", Zip: "78705",
			},
		},
		SkipDuplicates: true,
	})
	require.NoError(t, err)

	assert.Len(t, result.Created, 1)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "123 Shoreline Dr", result.Skipped[0])
}

func TestBulkCreateFailsOnDuplicateWithoutSkip(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()
	actor := managerActor()

	_, err := svc.Create(ctx, actor, validCreateRequest())
	require.NoError(t, err)

	_, err = svc.BulkCreate(ctx, actor, BulkCreateRequest{
		Properties: []CreateRequest{validCreateRequest()},
	})
	require.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestPropertyOrganization(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, managerActor(), validCreateRequest())
	require.NoError(t, err)

	orgID, err := svc.PropertyOrganization(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "org-1", orgID)

	_, err = svc.PropertyOrganization(ctx, "missing")
	require.ErrorIs(t, err, core.ErrNotFound)
}
