// InstaBids | 2026
// repository.go

package property

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/instabids/management-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, p *Property) error
	GetByID(ctx context.Context, id string) (*Property, error)
	List(
		ctx context.Context,
		orgID string,
		params ListParams,
	) ([]Property, int, error)
	Update(ctx context.Context, p *Property) error
	SoftDelete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id, status string) error
	ExistsByAddress(
		ctx context.Context,
		orgID, address, city, state, zip string,
	) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const propertyColumns = `
	id, organization_id, name, address, city, state, zip, country,
	property_type, status, manager_id, bedrooms, bathrooms, square_feet,
	year_built, units, lot_size, latitude, longitude, notes, amenities,
	created_at, updated_at, deleted_at`

func (r *repository) Create(ctx context.Context, p *Property) error {
	query := `
		INSERT INTO properties (
			id, organization_id, name, address, city, state, zip, country,
			property_type, status, manager_id, bedrooms, bathrooms,
			square_feet, year_built, units, lot_size, latitude, longitude,
			notes, amenities
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21
		)
		RETURNING created_at, updated_at`

	row := struct {
		CreatedAt sql.NullTime `db:"created_at"`
		UpdatedAt sql.NullTime `db:"updated_at"`
	}{}

	err := r.db.GetContext(ctx, &row, query,
		p.ID, p.OrganizationID, p.Name, p.Address, p.City, p.State,
		p.Zip, p.Country, p.PropertyType, p.Status, p.ManagerID,
		p.Bedrooms, p.Bathrooms, p.SquareFeet, p.YearBuilt, p.Units,
		p.LotSize, p.Latitude, p.Longitude, p.Notes, p.Amenities,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create property: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create property: %w", err)
	}

	p.CreatedAt = row.CreatedAt.Time
	p.UpdatedAt = row.UpdatedAt.Time

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Property, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM properties
		WHERE id = $1 AND deleted_at IS NULL`, propertyColumns)

	var p Property
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get property: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}

	return &p, nil
}

//nolint:gocyclo // each filter is one branch, splitting them obscures the query
func (r *repository) List(
	ctx context.Context,
	orgID string,
	params ListParams,
) ([]Property, int, error) {
	params.Normalize()

	conditions := []string{"deleted_at IS NULL", "organization_id = $1"}
	args := []any{orgID}
	argIdx := 2

	if !params.IncludeArchived {
		conditions = append(conditions, "status != 'archived'")
	}

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR address ILIKE $%d OR city ILIKE $%d)",
			argIdx, argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	addEq := func(column string, value any) {
		conditions = append(
			conditions,
			fmt.Sprintf("%s = $%d", column, argIdx),
		)
		args = append(args, value)
		argIdx++
	}
	addCmp := func(column, op string, value any) {
		conditions = append(
			conditions,
			fmt.Sprintf("%s %s $%d", column, op, argIdx),
		)
		args = append(args, value)
		argIdx++
	}

	if params.PropertyType != "" {
		addEq("property_type", params.PropertyType)
	}
	if params.Status != "" {
		addEq("status", params.Status)
	}
	if params.ManagerID != "" {
		addEq("manager_id", params.ManagerID)
	}
	if params.City != "" {
		addEq("city", params.City)
	}
	if params.State != "" {
		addEq("state", params.State)
	}
	if params.MinBedrooms > 0 {
		addCmp("bedrooms", ">=", params.MinBedrooms)
	}
	if params.MinSquareFeet > 0 {
		addCmp("square_feet", ">=", params.MinSquareFeet)
	}
	if params.MaxSquareFeet > 0 {
		addCmp("square_feet", "<=", params.MaxSquareFeet)
	}
	if params.MinYearBuilt > 0 {
		addCmp("year_built", ">=", params.MinYearBuilt)
	}
	if params.MaxYearBuilt > 0 {
		addCmp("year_built", "<=", params.MaxYearBuilt)
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM properties WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM properties
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		propertyColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var properties []Property
	if err := r.db.SelectContext(ctx, &properties, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}

	return properties, total, nil
}

func (r *repository) Update(ctx context.Context, p *Property) error {
	query := `
		UPDATE properties
		SET name = $2, address = $3, city = $4, state = $5, zip = $6,
			country = $7, property_type = $8, status = $9, manager_id = $10,
			bedrooms = $11, bathrooms = $12, square_feet = $13,
			year_built = $14, units = $15, lot_size = $16, latitude = $17,
			longitude = $18, notes = $19, amenities = $20, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	return r.execExpectingRow(ctx, "update property", query,
		p.ID, p.Name, p.Address, p.City, p.State, p.Zip, p.Country,
		p.PropertyType, p.Status, p.ManagerID, p.Bedrooms, p.Bathrooms,
		p.SquareFeet, p.YearBuilt, p.Units, p.LotSize, p.Latitude,
		p.Longitude, p.Notes, p.Amenities,
	)
}

func (r *repository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE properties
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	return r.execExpectingRow(ctx, "delete property", query, id)
}

func (r *repository) SetStatus(ctx context.Context, id, status string) error {
	query := `
		UPDATE properties
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	return r.execExpectingRow(ctx, "set property status", query, id, status)
}

func (r *repository) ExistsByAddress(
	ctx context.Context,
	orgID, address, city, state, zip string,
) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM properties
			WHERE organization_id = $1
				AND lower(address) = lower($2)
				AND lower(city) = lower($3)
				AND lower(state) = lower($4)
				AND zip = $5
				AND deleted_at IS NULL
		)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, orgID, address, city, state, zip)
	if err != nil {
		return false, fmt.Errorf("check property address: %w", err)
	}

	return exists, nil
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

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
