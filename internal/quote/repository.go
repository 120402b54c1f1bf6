// InstaBids | 2026
// repository.go

package quote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/instabids/management-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, q *Quote) error
	GetByID(ctx context.Context, id string) (*Quote, error)
	GetByProjectAndContractor(
		ctx context.Context,
		projectID, contractorID string,
	) (*Quote, error)
	ListByProject(
		ctx context.Context,
		projectID string,
		params ListParams,
	) ([]Quote, int, error)
	ListByContractor(
		ctx context.Context,
		contractorID string,
		params ListParams,
	) ([]Quote, int, error)
	Update(ctx context.Context, q *Quote) error
	SetStatus(ctx context.Context, id, status string) error
	RejectOpenSiblings(
		ctx context.Context,
		projectID, acceptedID string,
	) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const quoteColumns = `
	id, project_id, contractor_id, status, total_amount, labor_cost,
	materials_cost, other_costs, tax_amount, can_start_date,
	estimated_duration_days, completion_date, payment_terms,
	warranty_period_months, notes, line_items, standardized,
	created_at, updated_at, submitted_at`

func (r *repository) Create(ctx context.Context, q *Quote) error {
	query := `
		INSERT INTO quotes (
			id, project_id, contractor_id, status, total_amount,
			labor_cost, materials_cost, other_costs, tax_amount,
			can_start_date, estimated_duration_days, completion_date,
			payment_terms, warranty_period_months, notes, line_items,
			standardized, submitted_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18
		)
		RETURNING created_at, updated_at`

	row := struct {
		CreatedAt sql.NullTime `db:"created_at"`
		UpdatedAt sql.NullTime `db:"updated_at"`
	}{}

	err := r.db.GetContext(ctx, &row, query,
		q.ID, q.ProjectID, q.ContractorID, q.Status, q.TotalAmount,
		q.LaborCost, q.MaterialsCost, q.OtherCosts, q.TaxAmount,
		q.CanStartDate, q.EstimatedDurationDays, q.CompletionDate,
		q.PaymentTerms, q.WarrantyPeriodMonths, q.Notes, q.LineItems,
		q.Standardized, q.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("create quote: %w", err)
	}

	q.CreatedAt = row.CreatedAt.Time
	q.UpdatedAt = row.UpdatedAt.Time

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Quote, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM quotes
		WHERE id = $1`, quoteColumns)

	var q Quote
	err := r.db.GetContext(ctx, &q, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get quote: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get quote: %w", err)
	}

	return &q, nil
}

func (r *repository) GetByProjectAndContractor(
	ctx context.Context,
	projectID, contractorID string,
) (*Quote, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM quotes
		WHERE project_id = $1 AND contractor_id = $2
			AND status NOT IN ('withdrawn', 'rejected')
		ORDER BY created_at DESC
		LIMIT 1`, quoteColumns)

	var q Quote
	err := r.db.GetContext(ctx, &q, query, projectID, contractorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get quote: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get quote: %w", err)
	}

	return &q, nil
}

func (r *repository) ListByProject(
	ctx context.Context,
	projectID string,
	params ListParams,
) ([]Quote, int, error) {
	conditions := []string{"project_id = $1"}
	args := []any{projectID}

	return r.list(ctx, conditions, args, params)
}

func (r *repository) ListByContractor(
	ctx context.Context,
	contractorID string,
	params ListParams,
) ([]Quote, int, error) {
	conditions := []string{"contractor_id = $1"}
	args := []any{contractorID}

	return r.list(ctx, conditions, args, params)
}

func (r *repository) list(
	ctx context.Context,
	conditions []string,
	args []any,
	params ListParams,
) ([]Quote, int, error) {
	params.Normalize()
	argIdx := len(args) + 1

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM quotes WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count quotes: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM quotes
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		quoteColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var quotes []Quote
	if err := r.db.SelectContext(ctx, &quotes, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list quotes: %w", err)
	}

	return quotes, total, nil
}

func (r *repository) Update(ctx context.Context, q *Quote) error {
	query := `
		UPDATE quotes
		SET status = $2, total_amount = $3, labor_cost = $4,
			materials_cost = $5, other_costs = $6, tax_amount = $7,
			can_start_date = $8, estimated_duration_days = $9,
			completion_date = $10, payment_terms = $11,
			warranty_period_months = $12, notes = $13, line_items = $14,
			submitted_at = $15, updated_at = NOW()
		WHERE id = $1`

	return r.execExpectingRow(ctx, "update quote", query,
		q.ID, q.Status, q.TotalAmount, q.LaborCost, q.MaterialsCost,
		q.OtherCosts, q.TaxAmount, q.CanStartDate,
		q.EstimatedDurationDays, q.CompletionDate, q.PaymentTerms,
		q.WarrantyPeriodMonths, q.Notes, q.LineItems, q.SubmittedAt,
	)
}

func (r *repository) SetStatus(ctx context.Context, id, status string) error {
	query := `
		UPDATE quotes
		SET status = $2, updated_at = NOW()
		WHERE id = $1`

	return r.execExpectingRow(ctx, "set quote status", query, id, status)
}

func (r *repository) RejectOpenSiblings(
	ctx context.Context,
	projectID, acceptedID string,
) error {
	query := `
		UPDATE quotes
		SET status = 'rejected', updated_at = NOW()
		WHERE project_id = $1
			AND id != $2
			AND status IN ('draft', 'submitted', 'updated')`

	_, err := r.db.ExecContext(ctx, query, projectID, acceptedID)
	if err != nil {
		return fmt.Errorf("reject sibling quotes: %w", err)
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
