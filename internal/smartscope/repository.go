// InstaBids | 2026
// repository.go

package smartscope

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/instabids/management-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, a *Analysis) error
	GetByID(ctx context.Context, id string) (*Analysis, error)
	GetByProject(ctx context.Context, projectID string) ([]Analysis, error)
	CreateFeedback(ctx context.Context, f *Feedback) error
	GetFeedback(ctx context.Context, analysisID string) ([]Feedback, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const analysisColumns = `
	id, project_id, requested_by, photo_urls, property_type, area,
	reported_issue, primary_issue, severity, category, scope_items,
	materials, estimated_hours, safety_notes, additional_observations,
	confidence_score, provider_response_raw, created_at, updated_at`

func (r *repository) Create(ctx context.Context, a *Analysis) error {
	query := `
		INSERT INTO smartscope_analyses (
			id, project_id, requested_by, photo_urls, property_type,
			area, reported_issue, primary_issue, severity, category,
			scope_items, materials, estimated_hours, safety_notes,
			additional_observations, confidence_score, provider_response_raw
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17
		)
		RETURNING created_at, updated_at`

	row := struct {
		CreatedAt sql.NullTime `db:"created_at"`
		UpdatedAt sql.NullTime `db:"updated_at"`
	}{}

	err := r.db.GetContext(ctx, &row, query,
		a.ID, a.ProjectID, a.RequestedBy, a.PhotoURLs, a.PropertyType,
		a.Area, a.ReportedIssue, a.PrimaryIssue, a.Severity, a.Category,
		a.ScopeItems, a.Materials, a.EstimatedHours, a.SafetyNotes,
		a.AdditionalObservations, a.ConfidenceScore, a.ProviderResponseRaw,
	)
	if err != nil {
		return fmt.Errorf("create analysis: %w", err)
	}

	a.CreatedAt = row.CreatedAt.Time
	a.UpdatedAt = row.UpdatedAt.Time

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Analysis, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM smartscope_analyses
		WHERE id = $1`, analysisColumns)

	var a Analysis
	err := r.db.GetContext(ctx, &a, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get analysis: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get analysis: %w", err)
	}

	return &a, nil
}

func (r *repository) GetByProject(
	ctx context.Context,
	projectID string,
) ([]Analysis, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM smartscope_analyses
		WHERE project_id = $1
		ORDER BY created_at DESC`, analysisColumns)

	var analyses []Analysis
	err := r.db.SelectContext(ctx, &analyses, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}

	return analyses, nil
}

func (r *repository) CreateFeedback(
	ctx context.Context,
	f *Feedback,
) error {
	query := `
		INSERT INTO smartscope_feedback (
			id, analysis_id, user_id, accuracy_rating,
			scope_corrections, material_corrections, comments
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &f.CreatedAt, query,
		f.ID, f.AnalysisID, f.UserID, f.AccuracyRating,
		f.ScopeCorrections, f.MaterialCorrections, f.Comments,
	)
	if err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}

	return nil
}

func (r *repository) GetFeedback(
	ctx context.Context,
	analysisID string,
) ([]Feedback, error) {
	query := `
		SELECT
			id, analysis_id, user_id, accuracy_rating,
			scope_corrections, material_corrections, comments, created_at
		FROM smartscope_feedback
		WHERE analysis_id = $1
		ORDER BY created_at DESC`

	var feedback []Feedback
	err := r.db.SelectContext(ctx, &feedback, query, analysisID)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}

	return feedback, nil
}
