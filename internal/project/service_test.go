// InstaBids | 2026
// service_test.go

package project

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instabids/management-api/internal/config"
	"github.com/instabids/management-api/internal/core"
)

type memRepo struct {
	projects map[string]*Project
}

func newMemRepo() *memRepo {
	return &memRepo{projects: map[string]*Project{}}
}

func (r *memRepo) Create(_ context.Context, p *Project) error {
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	copied := *p
	r.projects[p.ID] = &copied
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *memRepo) List(
	_ context.Context,
	orgID string,
	params ListParams,
) ([]Project, int, error) {
	var out []Project
	for _, p := range r.projects {
		if p.OrganizationID != orgID {
			continue
		}
		if params.Status != "" && p.Status != params.Status {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (r *memRepo) ListOpenForBidding(
	_ context.Context,
	_ ListParams,
) ([]Project, int, error) {
	var out []Project
	for _, p := range r.projects {
		if p.Status == StatusOpenForBids {
			out = append(out, *p)
		}
	}
	return out, len(out), nil
}

func (r *memRepo) Update(_ context.Context, p *Project) error {
	if _, ok := r.projects[p.ID]; !ok {
		return core.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	copied := *p
	r.projects[p.ID] = &copied
	return nil
}

func (r *memRepo) SetStatus(
	_ context.Context,
	id, status string,
	publishedAt, closedAt sql.NullTime,
) error {
	p, ok := r.projects[id]
	if !ok {
		return core.ErrNotFound
	}
	p.Status = status
	if publishedAt.Valid {
		p.PublishedAt = &publishedAt.Time
	}
	if closedAt.Valid {
		p.ClosedAt = &closedAt.Time
	}
	return nil
}

func (r *memRepo) IncrementViewCount(_ context.Context, id string) error {
	p, ok := r.projects[id]
	if !ok {
		return core.ErrNotFound
	}
	p.ViewCount++
	return nil
}

func (r *memRepo) IncrementBidCount(
	_ context.Context,
	id string,
	delta int,
) error {
	p, ok := r.projects[id]
	if !ok {
		return core.ErrNotFound
	}
	p.BidCount += delta
	return nil
}

func (r *memRepo) SetAwardedQuote(_ context.Context, id, quoteID string) error {
	p, ok := r.projects[id]
	if !ok {
		return core.ErrNotFound
	}
	p.Status = StatusAwarded
	p.AwardedQuoteID = &quoteID
	return nil
}

func (r *memRepo) SetAnalysis(_ context.Context, id, analysisID string) error {
	p, ok := r.projects[id]
	if !ok {
		return core.ErrNotFound
	}
	p.SmartScopeAnalysisID = &analysisID
	return nil
}

type fakePropertyChecker struct {
	orgs map[string]string
}

func (f *fakePropertyChecker) PropertyOrganization(
	_ context.Context,
	propertyID string,
) (string, error) {
	org, ok := f.orgs[propertyID]
	if !ok {
		return "", core.ErrNotFound
	}
	return org, nil
}

const testPropertyID = "5f2b2d7e-03a1-4a47-9c5c-0f62a84a1f10"

func newTestService() (*Service, *memRepo) {
	repo := newMemRepo()
	checker := &fakePropertyChecker{
		orgs: map[string]string{testPropertyID: "org-1"},
	}
	bidding := config.BiddingConfig{
		MaxDeadlineDays: 90,
		DefaultMinBids:  3,
		MaxBulkCreate:   100,
	}
	return NewService(repo, checker, bidding), repo
}

func managerActor() Actor {
	return Actor{
		UserID:         "u-1",
		UserType:       "property_manager",
		OrganizationID: "org-1",
	}
}

func contractorActor() Actor {
	return Actor{UserID: "u-5", UserType: "contractor", OrganizationID: "org-c"}
}

func validCreateRequest() CreateRequest {
	return CreateRequest{
		PropertyID: testPropertyID,
		Title:      "Replace water heater",
		Description: "The 40-gallon tank in unit 2B is leaking from the base " +
			"and needs a full replacement.",
		Category:    CategoryPlumbing,
		BidDeadline: time.Now().Add(72 * time.Hour),
	}
}

func TestCreateDraftDefaults(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), managerActor(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusDraft, p.Status)
	assert.Equal(t, UrgencyRoutine, p.Urgency)
	assert.Equal(t, 3, p.MinimumBids)
	assert.True(t, p.InsuranceRequired)
	assert.True(t, p.LicenseRequired)
	assert.Equal(t, "org-1", p.OrganizationID)
	assert.Equal(t, "u-1", p.CreatedBy)
	assert.Nil(t, p.PublishedAt)
}

func TestCreateWithPublish(t *testing.T) {
	svc, _ := newTestService()

	req := validCreateRequest()
	req.Publish = true

	p, err := svc.Create(context.Background(), managerActor(), req)
	require.NoError(t, err)

	assert.Equal(t, StatusOpenForBids, p.Status)
	require.NotNil(t, p.PublishedAt)
}

func TestCreateRejectsForeignProperty(t *testing.T) {
	svc, _ := newTestService()

	outsider := Actor{
		UserID:         "u-9",
		UserType:       "property_manager",
		OrganizationID: "org-other",
	}
	_, err := svc.Create(context.Background(), outsider, validCreateRequest())
	require.ErrorIs(t, err, core.ErrForbidden)
}

func TestCreateRejectsContractor(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), contractorActor(), validCreateRequest())
	require.ErrorIs(t, err, core.ErrForbidden)
}

func TestCreateRejectsBadEnums(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	req := validCreateRequest()
	req.Category = "alchemy"
	_, err := svc.Create(ctx, managerActor(), req)
	require.ErrorIs(t, err, core.ErrInvalidInput)

	req = validCreateRequest()
	req.Urgency = "whenever"
	_, err = svc.Create(ctx, managerActor(), req)
	require.ErrorIs(t, err, core.ErrInvalidInput)

	req = validCreateRequest()
	bad := "priceless"
	req.BudgetRange = &bad
	_, err = svc.Create(ctx, managerActor(), req)
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestCreateScheduleValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// Deadline in the past.
	req := validCreateRequest()
	req.BidDeadline = time.Now().Add(-time.Hour)
	_, err := svc.Create(ctx, managerActor(), req)
	require.ErrorIs(t, err, core.ErrInvalidInput)

	// Deadline beyond the configured horizon.
	req = validCreateRequest()
	req.BidDeadline = time.Now().AddDate(0, 0, 91)
	_, err = svc.Create(ctx, managerActor(), req)
	require.ErrorIs(t, err, core.ErrInvalidInput)

	// Start date before the bid deadline.
	req = validCreateRequest()
	req.BidDeadline = time.Now().Add(10 * 24 * time.Hour)
	start := time.Now().Add(48 * time.Hour)
	req.PreferredStartDate = &start
	_, err = svc.Create(ctx, managerActor(), req)
	require.ErrorIs(t, err, core.ErrInvalidInput)

	// Completion before start.
	req = validCreateRequest()
	start = time.Now().Add(7 * 24 * time.Hour)
	completion := start.Add(-24 * time.Hour)
	req.PreferredStartDate = &start
	req.CompletionDeadline = &completion
	_, err = svc.Create(ctx, managerActor(), req)
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestCreateBudgetValidation(t *testing.T) {
	svc, _ := newTestService()

	req := validCreateRequest()
	low := 500.0
	high := 200.0
	req.BudgetMin = &low
	req.BudgetMax = &high

	_, err := svc.Create(context.Background(), managerActor(), req)
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestContractorCannotSeeDrafts(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	draft, err := svc.Create(ctx, managerActor(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Get(ctx, contractorActor(), draft.ID)
	require.ErrorIs(t, err, core.ErrForbidden)

	published, err := svc.Publish(ctx, managerActor(), draft.ID)
	require.NoError(t, err)

	seen, err := svc.Get(ctx, contractorActor(), published.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusOpenForBids, seen.Status)
}

func TestGetIncrementsViewCount(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	actor := managerActor()

	p, err := svc.Create(ctx, actor, validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Get(ctx, actor, p.ID)
	require.NoError(t, err)
	_, err = svc.Get(ctx, actor, p.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.projects[p.ID].ViewCount)
}

func TestContractorListSeesOnlyOpenProjects(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	actor := managerActor()

	_, err := svc.Create(ctx, actor, validCreateRequest())
	require.NoError(t, err)

	published := validCreateRequest()
	published.Publish = true
	open, err := svc.Create(ctx, actor, published)
	require.NoError(t, err)

	visible, total, err := svc.List(ctx, contractorActor(), ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, visible, 1)
	assert.Equal(t, open.ID, visible[0].ID)
}

func TestUpdateOnlyDrafts(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	actor := managerActor()

	p, err := svc.Create(ctx, actor, validCreateRequest())
	require.NoError(t, err)

	newTitle := "Replace water heater and expansion tank"
	updated, err := svc.Update(ctx, actor, p.ID, UpdateRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)

	_, err = svc.Publish(ctx, actor, p.ID)
	require.NoError(t, err)

	_, err = svc.Update(ctx, actor, p.ID, UpdateRequest{Title: &newTitle})
	require.ErrorIs(t, err, core.ErrConflict)
}

func TestUpdateRevalidatesSchedule(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	actor := managerActor()

	p, err := svc.Create(ctx, actor, validCreateRequest())
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	_, err = svc.Update(ctx, actor, p.ID, UpdateRequest{BidDeadline: &past})
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestStatusTransitions(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	actor := managerActor()

	p, err := svc.Create(ctx, actor, validCreateRequest())
	require.NoError(t, err)

	// Draft cannot jump straight to awarded.
	_, err = svc.UpdateStatus(ctx, actor, p.ID, StatusAwarded)
	require.ErrorIs(t, err, core.ErrConflict)

	open, err := svc.UpdateStatus(ctx, actor, p.ID, StatusOpenForBids)
	require.NoError(t, err)
	require.NotNil(t, open.PublishedAt)
	firstPublished := *open.PublishedAt

	closed, err := svc.UpdateStatus(ctx, actor, p.ID, StatusBiddingClosed)
	require.NoError(t, err)
	assert.Equal(t, StatusBiddingClosed, closed.Status)

	// Reopening keeps the original publish timestamp.
	reopened, err := svc.UpdateStatus(ctx, actor, p.ID, StatusOpenForBids)
	require.NoError(t, err)
	require.NotNil(t, reopened.PublishedAt)
	assert.Equal(t, firstPublished, *reopened.PublishedAt)

	cancelled, err := svc.UpdateStatus(ctx, actor, p.ID, StatusCancelled)
	require.NoError(t, err)
	require.NotNil(t, cancelled.ClosedAt)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	actor := managerActor()

	p, err := svc.Create(ctx, actor, validCreateRequest())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, actor, p.ID, "paused")
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestProjectForBidding(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	req := validCreateRequest()
	req.Publish = true
	p, err := svc.Create(ctx, managerActor(), req)
	require.NoError(t, err)

	info, err := svc.ProjectForBidding(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, info.ID)
	assert.Equal(t, "org-1", info.OrganizationID)
	assert.Equal(t, StatusOpenForBids, info.Status)
	assert.WithinDuration(t, p.BidDeadline, info.BidDeadline, time.Second)
}

func TestRecordBid(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, managerActor(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.RecordBid(ctx, p.ID, 1))
	require.NoError(t, svc.RecordBid(ctx, p.ID, 1))
	require.NoError(t, svc.RecordBid(ctx, p.ID, -1))

	assert.Equal(t, 1, repo.projects[p.ID].BidCount)
}

func TestAttachAnalysis(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, managerActor(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.AttachAnalysis(ctx, p.ID, "analysis-1"))

	stored := repo.projects[p.ID]
	require.NotNil(t, stored.SmartScopeAnalysisID)
	assert.Equal(t, "analysis-1", *stored.SmartScopeAnalysisID)
}
