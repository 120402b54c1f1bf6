// InstaBids | 2026
// service_test.go

package quote

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instabids/management-api/internal/core"
)

type memRepo struct {
	quotes map[string]*Quote
}

func newMemRepo() *memRepo {
	return &memRepo{quotes: map[string]*Quote{}}
}

func (r *memRepo) Create(_ context.Context, q *Quote) error {
	q.CreatedAt = time.Now()
	q.UpdatedAt = q.CreatedAt
	copied := *q
	r.quotes[q.ID] = &copied
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Quote, error) {
	q, ok := r.quotes[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *q
	return &copied, nil
}

func (r *memRepo) GetByProjectAndContractor(
	_ context.Context,
	projectID, contractorID string,
) (*Quote, error) {
	for _, q := range r.quotes {
		if q.ProjectID != projectID || q.ContractorID != contractorID {
			continue
		}
		if q.Status == StatusWithdrawn || q.Status == StatusRejected {
			continue
		}
		copied := *q
		return &copied, nil
	}
	return nil, core.ErrNotFound
}

func (r *memRepo) ListByProject(
	_ context.Context,
	projectID string,
	params ListParams,
) ([]Quote, int, error) {
	var out []Quote
	for _, q := range r.quotes {
		if q.ProjectID != projectID {
			continue
		}
		if params.Status != "" && q.Status != params.Status {
			continue
		}
		out = append(out, *q)
	}
	return out, len(out), nil
}

func (r *memRepo) ListByContractor(
	_ context.Context,
	contractorID string,
	params ListParams,
) ([]Quote, int, error) {
	var out []Quote
	for _, q := range r.quotes {
		if q.ContractorID != contractorID {
			continue
		}
		if params.Status != "" && q.Status != params.Status {
			continue
		}
		out = append(out, *q)
	}
	return out, len(out), nil
}

func (r *memRepo) Update(_ context.Context, q *Quote) error {
	if _, ok := r.quotes[q.ID]; !ok {
		return core.ErrNotFound
	}
	q.UpdatedAt = time.Now()
	copied := *q
	r.quotes[q.ID] = &copied
	return nil
}

func (r *memRepo) SetStatus(_ context.Context, id, status string) error {
	q, ok := r.quotes[id]
	if !ok {
		return core.ErrNotFound
	}
	q.Status = status
	return nil
}

func (r *memRepo) RejectOpenSiblings(
	_ context.Context,
	projectID, acceptedID string,
) error {
	for _, q := range r.quotes {
		if q.ProjectID == projectID && q.ID != acceptedID && q.IsOpen() {
			q.Status = StatusRejected
		}
	}
	return nil
}

type fakeGateway struct {
	projects map[string]*ProjectInfo
	bidDelta int
}

func (f *fakeGateway) ProjectForBidding(
	_ context.Context,
	projectID string,
) (*ProjectInfo, error) {
	info, ok := f.projects[projectID]
	if !ok {
		return nil, core.ErrNotFound
	}
	return info, nil
}

func (f *fakeGateway) RecordBid(_ context.Context, _ string, delta int) error {
	f.bidDelta += delta
	return nil
}

const testProjectID = "9d1c5f7a-44e2-4e5b-8b7e-2f0c6a93d4e1"

func newTestService() (*Service, *memRepo, *fakeGateway) {
	repo := newMemRepo()
	gateway := &fakeGateway{
		projects: map[string]*ProjectInfo{
			testProjectID: {
				ID:             testProjectID,
				OrganizationID: "org-1",
				Status:         "open_for_bids",
				BidDeadline:    time.Now().Add(72 * time.Hour),
			},
		},
	}
	svc := NewService(repo, gateway, nil, nil)
	return svc, repo, gateway
}

func contractorActor() Actor {
	return Actor{UserID: "c-1", UserType: "contractor", OrganizationID: "org-c"}
}

func managerActor() Actor {
	return Actor{
		UserID:         "m-1",
		UserType:       "property_manager",
		OrganizationID: "org-1",
	}
}

func validSubmitRequest() SubmitRequest {
	return SubmitRequest{
		ProjectID:   testProjectID,
		TotalAmount: 1250.00,
	}
}

func TestSubmit(t *testing.T) {
	svc, _, gateway := newTestService()

	q, err := svc.Submit(context.Background(), contractorActor(), validSubmitRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusSubmitted, q.Status)
	assert.Equal(t, "c-1", q.ContractorID)
	assert.InEpsilon(t, 1250.00, q.TotalAmount, 0.001)
	require.NotNil(t, q.SubmittedAt)
	assert.Equal(t, 1, gateway.bidDelta)
}

func TestSubmitDraftDoesNotCountAsBid(t *testing.T) {
	svc, _, gateway := newTestService()

	req := validSubmitRequest()
	req.IsDraft = true

	q, err := svc.Submit(context.Background(), contractorActor(), req)
	require.NoError(t, err)

	assert.Equal(t, StatusDraft, q.Status)
	assert.Nil(t, q.SubmittedAt)
	assert.Zero(t, gateway.bidDelta)
}

func TestSubmitContractorsOnly(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Submit(context.Background(), managerActor(), validSubmitRequest())
	require.ErrorIs(t, err, core.ErrForbidden)
}

func TestSubmitRequiresOpenBidding(t *testing.T) {
	svc, _, gateway := newTestService()
	ctx := context.Background()

	gateway.projects[testProjectID].Status = "bidding_closed"
	_, err := svc.Submit(ctx, contractorActor(), validSubmitRequest())
	require.ErrorIs(t, err, core.ErrConflict)

	gateway.projects[testProjectID].Status = "open_for_bids"
	gateway.projects[testProjectID].BidDeadline = time.Now().Add(-time.Hour)
	_, err = svc.Submit(ctx, contractorActor(), validSubmitRequest())
	require.ErrorIs(t, err, core.ErrConflict)
}

func TestSubmitRejectsSecondOpenQuote(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	actor := contractorActor()

	_, err := svc.Submit(ctx, actor, validSubmitRequest())
	require.NoError(t, err)

	_, err = svc.Submit(ctx, actor, validSubmitRequest())
	require.ErrorIs(t, err, core.ErrConflict)
}

func TestSubmitAllowedAfterWithdraw(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	actor := contractorActor()

	first, err := svc.Submit(ctx, actor, validSubmitRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Withdraw(ctx, actor, first.ID))

	_, err = svc.Submit(ctx, actor, validSubmitRequest())
	require.NoError(t, err)
}

func TestUpdateDraftThenSubmit(t *testing.T) {
	svc, _, gateway := newTestService()
	ctx := context.Background()
	actor := contractorActor()

	req := validSubmitRequest()
	req.IsDraft = true
	draft, err := svc.Submit(ctx, actor, req)
	require.NoError(t, err)

	amount := 1400.00
	updated, err := svc.Update(ctx, actor, draft.ID, UpdateRequest{
		TotalAmount: &amount,
		Submit:      true,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusSubmitted, updated.Status)
	assert.InEpsilon(t, 1400.00, updated.TotalAmount, 0.001)
	require.NotNil(t, updated.SubmittedAt)
	assert.Equal(t, 1, gateway.bidDelta)
}

func TestUpdateSubmittedMarksUpdated(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	actor := contractorActor()

	q, err := svc.Submit(ctx, actor, validSubmitRequest())
	require.NoError(t, err)

	amount := 1100.00
	updated, err := svc.Update(ctx, actor, q.ID, UpdateRequest{
		TotalAmount: &amount,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusUpdated, updated.Status)
}

func TestUpdateSomeoneElsesQuote(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	q, err := svc.Submit(ctx, contractorActor(), validSubmitRequest())
	require.NoError(t, err)

	rival := Actor{UserID: "c-2", UserType: "contractor"}
	amount := 900.00
	_, err = svc.Update(ctx, rival, q.ID, UpdateRequest{TotalAmount: &amount})
	require.ErrorIs(t, err, core.ErrForbidden)
}

func TestUpdateClosedQuote(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	actor := contractorActor()

	q, err := svc.Submit(ctx, actor, validSubmitRequest())
	require.NoError(t, err)

	require.NoError(t, repo.SetStatus(ctx, q.ID, StatusRejected))

	amount := 999.00
	_, err = svc.Update(ctx, actor, q.ID, UpdateRequest{TotalAmount: &amount})
	require.ErrorIs(t, err, core.ErrConflict)
}

func TestWithdraw(t *testing.T) {
	svc, repo, gateway := newTestService()
	ctx := context.Background()
	actor := contractorActor()

	q, err := svc.Submit(ctx, actor, validSubmitRequest())
	require.NoError(t, err)
	require.Equal(t, 1, gateway.bidDelta)

	require.NoError(t, svc.Withdraw(ctx, actor, q.ID))

	assert.Equal(t, StatusWithdrawn, repo.quotes[q.ID].Status)
	assert.Zero(t, gateway.bidDelta)

	// A second withdraw conflicts.
	err = svc.Withdraw(ctx, actor, q.ID)
	require.ErrorIs(t, err, core.ErrConflict)
}

func TestWithdrawDraftSkipsBidCounter(t *testing.T) {
	svc, _, gateway := newTestService()
	ctx := context.Background()
	actor := contractorActor()

	req := validSubmitRequest()
	req.IsDraft = true
	q, err := svc.Submit(ctx, actor, req)
	require.NoError(t, err)

	require.NoError(t, svc.Withdraw(ctx, actor, q.ID))
	assert.Zero(t, gateway.bidDelta)
}

func TestGetAccessRules(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	q, err := svc.Submit(ctx, contractorActor(), validSubmitRequest())
	require.NoError(t, err)

	// The owning contractor sees it.
	_, err = svc.Get(ctx, contractorActor(), q.ID)
	require.NoError(t, err)

	// A rival contractor does not.
	rival := Actor{UserID: "c-2", UserType: "contractor"}
	_, err = svc.Get(ctx, rival, q.ID)
	require.ErrorIs(t, err, core.ErrForbidden)

	// The project's manager sees it.
	_, err = svc.Get(ctx, managerActor(), q.ID)
	require.NoError(t, err)

	// A manager from another org does not.
	foreign := Actor{
		UserID:         "m-2",
		UserType:       "property_manager",
		OrganizationID: "org-other",
	}
	_, err = svc.Get(ctx, foreign, q.ID)
	require.ErrorIs(t, err, core.ErrForbidden)
}

func TestListByProject(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Submit(ctx, contractorActor(), validSubmitRequest())
	require.NoError(t, err)

	rival := Actor{UserID: "c-2", UserType: "contractor"}
	_, err = svc.Submit(ctx, rival, validSubmitRequest())
	require.NoError(t, err)

	quotes, total, err := svc.ListByProject(ctx, managerActor(), testProjectID, ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, quotes, 2)

	// Contractors cannot list a project's quotes.
	_, _, err = svc.ListByProject(ctx, contractorActor(), testProjectID, ListParams{})
	require.ErrorIs(t, err, core.ErrForbidden)

	// Neither can managers from another organization.
	foreign := Actor{
		UserID:         "m-2",
		UserType:       "property_manager",
		OrganizationID: "org-other",
	}
	_, _, err = svc.ListByProject(ctx, foreign, testProjectID, ListParams{})
	require.ErrorIs(t, err, core.ErrForbidden)
}

func TestListMine(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	actor := contractorActor()

	_, err := svc.Submit(ctx, actor, validSubmitRequest())
	require.NoError(t, err)

	mine, total, err := svc.ListMine(ctx, actor, ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, mine, 1)
	assert.Equal(t, "c-1", mine[0].ContractorID)

	_, _, err = svc.ListMine(ctx, managerActor(), ListParams{})
	require.ErrorIs(t, err, core.ErrForbidden)
}

func TestAcceptGuards(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	q, err := svc.Submit(ctx, contractorActor(), validSubmitRequest())
	require.NoError(t, err)

	// Contractors cannot accept.
	_, err = svc.Accept(ctx, contractorActor(), q.ID)
	require.ErrorIs(t, err, core.ErrForbidden)

	// Managers from another org cannot accept.
	foreign := Actor{
		UserID:         "m-2",
		UserType:       "property_manager",
		OrganizationID: "org-other",
	}
	_, err = svc.Accept(ctx, foreign, q.ID)
	require.ErrorIs(t, err, core.ErrForbidden)

	// A withdrawn quote cannot be accepted.
	require.NoError(t, repo.SetStatus(ctx, q.ID, StatusWithdrawn))
	_, err = svc.Accept(ctx, managerActor(), q.ID)
	require.ErrorIs(t, err, core.ErrConflict)
}
