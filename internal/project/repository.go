// InstaBids | 2026
// repository.go

package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/instabids/management-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, p *Project) error
	GetByID(ctx context.Context, id string) (*Project, error)
	List(
		ctx context.Context,
		orgID string,
		params ListParams,
	) ([]Project, int, error)
	ListOpenForBidding(
		ctx context.Context,
		params ListParams,
	) ([]Project, int, error)
	Update(ctx context.Context, p *Project) error
	SetStatus(
		ctx context.Context,
		id, status string,
		publishedAt, closedAt sql.NullTime,
	) error
	IncrementViewCount(ctx context.Context, id string) error
	IncrementBidCount(ctx context.Context, id string, delta int) error
	SetAwardedQuote(ctx context.Context, id, quoteID string) error
	SetAnalysis(ctx context.Context, id, analysisID string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const projectColumns = `
	id, property_id, organization_id, created_by, title, description,
	category, urgency, status, bid_deadline, preferred_start_date,
	completion_deadline, budget_min, budget_max, budget_range,
	insurance_required, license_required, minimum_bids, is_open_bidding,
	virtual_access, location_details, special_conditions, view_count,
	bid_count, question_count, smartscope_analysis_id, awarded_quote_id,
	created_at, updated_at, published_at, closed_at`

func (r *repository) Create(ctx context.Context, p *Project) error {
	query := `
		INSERT INTO projects (
			id, property_id, organization_id, created_by, title,
			description, category, urgency, status, bid_deadline,
			preferred_start_date, completion_deadline, budget_min,
			budget_max, budget_range, insurance_required, license_required,
			minimum_bids, is_open_bidding, virtual_access, location_details,
			special_conditions, smartscope_analysis_id, published_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24
		)
		RETURNING created_at, updated_at`

	row := struct {
		CreatedAt sql.NullTime `db:"created_at"`
		UpdatedAt sql.NullTime `db:"updated_at"`
	}{}

	err := r.db.GetContext(ctx, &row, query,
		p.ID, p.PropertyID, p.OrganizationID, p.CreatedBy, p.Title,
		p.Description, p.Category, p.Urgency, p.Status, p.BidDeadline,
		p.PreferredStartDate, p.CompletionDeadline, p.BudgetMin,
		p.BudgetMax, p.BudgetRange, p.InsuranceRequired, p.LicenseRequired,
		p.MinimumBids, p.IsOpenBidding, p.VirtualAccess, p.LocationDetails,
		p.SpecialConditions, p.SmartScopeAnalysisID, p.PublishedAt,
	)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	p.CreatedAt = row.CreatedAt.Time
	p.UpdatedAt = row.UpdatedAt.Time

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM projects
		WHERE id = $1`, projectColumns)

	var p Project
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get project: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	return &p, nil
}

func (r *repository) List(
	ctx context.Context,
	orgID string,
	params ListParams,
) ([]Project, int, error) {
	conditions := []string{"organization_id = $1"}
	args := []any{orgID}

	return r.list(ctx, conditions, args, params)
}

// ListOpenForBidding is the contractor-facing feed: published projects
// across all organizations whose bid window is still open.
func (r *repository) ListOpenForBidding(
	ctx context.Context,
	params ListParams,
) ([]Project, int, error) {
	conditions := []string{
		"status = 'open_for_bids'",
		"bid_deadline > NOW()",
	}

	return r.list(ctx, conditions, nil, params)
}

func (r *repository) list(
	ctx context.Context,
	conditions []string,
	args []any,
	params ListParams,
) ([]Project, int, error) {
	params.Normalize()
	argIdx := len(args) + 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	if params.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, params.Category)
		argIdx++
	}

	if params.Urgency != "" {
		conditions = append(conditions, fmt.Sprintf("urgency = $%d", argIdx))
		args = append(args, params.Urgency)
		argIdx++
	}

	if params.PropertyID != "" {
		conditions = append(
			conditions,
			fmt.Sprintf("property_id = $%d", argIdx),
		)
		args = append(args, params.PropertyID)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM projects WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM projects
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		projectColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var projects []Project
	if err := r.db.SelectContext(ctx, &projects, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}

	return projects, total, nil
}

func (r *repository) Update(ctx context.Context, p *Project) error {
	query := `
		UPDATE projects
		SET title = $2, description = $3, category = $4, urgency = $5,
			bid_deadline = $6, preferred_start_date = $7,
			completion_deadline = $8, budget_min = $9, budget_max = $10,
			budget_range = $11, insurance_required = $12,
			license_required = $13, minimum_bids = $14,
			is_open_bidding = $15, virtual_access = $16,
			location_details = $17, special_conditions = $18,
			updated_at = NOW()
		WHERE id = $1`

	return r.execExpectingRow(ctx, "update project", query,
		p.ID, p.Title, p.Description, p.Category, p.Urgency,
		p.BidDeadline, p.PreferredStartDate, p.CompletionDeadline,
		p.BudgetMin, p.BudgetMax, p.BudgetRange, p.InsuranceRequired,
		p.LicenseRequired, p.MinimumBids, p.IsOpenBidding,
		p.VirtualAccess, p.LocationDetails, p.SpecialConditions,
	)
}

func (r *repository) SetStatus(
	ctx context.Context,
	id, status string,
	publishedAt, closedAt sql.NullTime,
) error {
	query := `
		UPDATE projects
		SET status = $2,
			published_at = COALESCE($3, published_at),
			closed_at = COALESCE($4, closed_at),
			updated_at = NOW()
		WHERE id = $1`

	return r.execExpectingRow(
		ctx,
		"set project status",
		query,
		id,
		status,
		publishedAt,
		closedAt,
	)
}

func (r *repository) IncrementViewCount(
	ctx context.Context,
	id string,
) error {
	query := `
		UPDATE projects
		SET view_count = view_count + 1
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}

	return nil
}

func (r *repository) IncrementBidCount(
	ctx context.Context,
	id string,
	delta int,
) error {
	query := `
		UPDATE projects
		SET bid_count = GREATEST(bid_count + $2, 0)
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, delta)
	if err != nil {
		return fmt.Errorf("increment bid count: %w", err)
	}

	return nil
}

func (r *repository) SetAwardedQuote(
	ctx context.Context,
	id, quoteID string,
) error {
	query := `
		UPDATE projects
		SET awarded_quote_id = $2, updated_at = NOW()
		WHERE id = $1`

	return r.execExpectingRow(ctx, "set awarded quote", query, id, quoteID)
}

func (r *repository) SetAnalysis(
	ctx context.Context,
	id, analysisID string,
) error {
	query := `
		UPDATE projects
		SET smartscope_analysis_id = $2, updated_at = NOW()
		WHERE id = $1`

	return r.execExpectingRow(ctx, "set project analysis", query, id, analysisID)
}

// AwardInTx marks a project awarded inside a caller-owned transaction.
// The project must still be accepting or evaluating bids.
func AwardInTx(
	ctx context.Context,
	tx core.DBTX,
	projectID, quoteID string,
) error {
	query := `
		UPDATE projects
		SET status = 'awarded', awarded_quote_id = $2, updated_at = NOW()
		WHERE id = $1 AND status IN ('open_for_bids', 'bidding_closed')`

	result, err := tx.ExecContext(ctx, query, projectID, quoteID)
	if err != nil {
		return fmt.Errorf("award project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("award project: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("award project: %w", core.ErrConflict)
	}

	return nil
}

func (r *repository) execExpectingRow(
	ctx context.Context,
	op, query string,
	args ...any,
) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
