// InstaBids | 2026
// properties.go

package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Property mirrors the backend's property payload.
type Property struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	Zip            string    `json:"zip"`
	Country        string    `json:"country"`
	PropertyType   string    `json:"property_type"`
	Status         string    `json:"status"`
	ManagerID      *string   `json:"manager_id"`
	Bedrooms       *int      `json:"bedrooms"`
	Bathrooms      *float64  `json:"bathrooms"`
	SquareFeet     *int      `json:"square_feet"`
	YearBuilt      *int      `json:"year_built"`
	Units          *int      `json:"units"`
	LotSize        *float64  `json:"lot_size"`
	Latitude       *float64  `json:"latitude"`
	Longitude      *float64  `json:"longitude"`
	Notes          *string   `json:"notes"`
	Amenities      []string  `json:"amenities"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PropertyForm is the create payload. Update uses pointer fields so
// omitted values stay untouched server-side.
type PropertyForm struct {
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Zip          string   `json:"zip"`
	Country      string   `json:"country,omitempty"`
	PropertyType string   `json:"property_type,omitempty"`
	Status       string   `json:"status,omitempty"`
	ManagerID    *string  `json:"manager_id,omitempty"`
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	Bathrooms    *float64 `json:"bathrooms,omitempty"`
	SquareFeet   *int     `json:"square_feet,omitempty"`
	YearBuilt    *int     `json:"year_built,omitempty"`
	Units        *int     `json:"units,omitempty"`
	LotSize      *float64 `json:"lot_size,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
}

type PropertyUpdate struct {
	Name         *string  `json:"name,omitempty"`
	Address      *string  `json:"address,omitempty"`
	City         *string  `json:"city,omitempty"`
	State        *string  `json:"state,omitempty"`
	Zip          *string  `json:"zip,omitempty"`
	Country      *string  `json:"country,omitempty"`
	PropertyType *string  `json:"property_type,omitempty"`
	Status       *string  `json:"status,omitempty"`
	ManagerID    *string  `json:"manager_id,omitempty"`
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	Bathrooms    *float64 `json:"bathrooms,omitempty"`
	SquareFeet   *int     `json:"square_feet,omitempty"`
	YearBuilt    *int     `json:"year_built,omitempty"`
	Units        *int     `json:"units,omitempty"`
	LotSize      *float64 `json:"lot_size,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
}

// PropertyFilter is a flat filter object; zero-valued fields are
// omitted from the query string.
type PropertyFilter struct {
	Page            int
	PageSize        int
	Search          string
	PropertyType    string
	Status          string
	ManagerID       string
	City            string
	State           string
	MinBedrooms     int
	MinSquareFeet   int
	MaxSquareFeet   int
	MinYearBuilt    int
	MaxYearBuilt    int
	IncludeArchived bool
}

func (f PropertyFilter) query() url.Values {
	q := url.Values{}
	setQueryInt(q, "page", f.Page)
	setQueryInt(q, "page_size", f.PageSize)
	setQueryString(q, "search", f.Search)
	setQueryString(q, "property_type", f.PropertyType)
	setQueryString(q, "status", f.Status)
	setQueryString(q, "manager_id", f.ManagerID)
	setQueryString(q, "city", f.City)
	setQueryString(q, "state", f.State)
	setQueryInt(q, "min_bedrooms", f.MinBedrooms)
	setQueryInt(q, "min_square_feet", f.MinSquareFeet)
	setQueryInt(q, "max_square_feet", f.MaxSquareFeet)
	setQueryInt(q, "min_year_built", f.MinYearBuilt)
	setQueryInt(q, "max_year_built", f.MaxYearBuilt)
	if f.IncludeArchived {
		q.Set("include_archived", "true")
	}
	return q
}

// ListProperties returns one page of the organization's properties.
func (c *Client) ListProperties(
	ctx context.Context,
	filter PropertyFilter,
) ([]Property, *PageMeta, error) {
	var properties []Property
	meta, err := c.do(
		ctx,
		http.MethodGet,
		"/v1/properties",
		filter.query(),
		nil,
		&properties,
	)
	if err != nil {
		return nil, nil, err
	}
	return properties, meta, nil
}

func (c *Client) GetProperty(ctx context.Context, id string) (*Property, error) {
	var p Property
	_, err := c.do(ctx, http.MethodGet, "/v1/properties/"+id, nil, nil, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreateProperty(
	ctx context.Context,
	form PropertyForm,
) (*Property, error) {
	var p Property
	_, err := c.do(ctx, http.MethodPost, "/v1/properties", nil, form, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProperty(
	ctx context.Context,
	id string,
	update PropertyUpdate,
) (*Property, error) {
	var p Property
	_, err := c.do(ctx, http.MethodPut, "/v1/properties/"+id, nil, update, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteProperty(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/v1/properties/"+id, nil, nil, nil)
	return err
}

func (c *Client) ArchiveProperty(ctx context.Context, id string) error {
	_, err := c.do(
		ctx,
		http.MethodPost,
		"/v1/properties/"+id+"/archive",
		nil,
		nil,
		nil,
	)
	return err
}

// BulkCreateResult reports per-batch outcomes; Skipped holds the
// addresses of dropped duplicates.
type BulkCreateResult struct {
	Created []Property `json:"created"`
	Skipped []string   `json:"skipped"`
}

func (c *Client) BulkCreateProperties(
	ctx context.Context,
	forms []PropertyForm,
	skipDuplicates bool,
) (*BulkCreateResult, error) {
	body := struct {
		Properties     []PropertyForm `json:"properties"`
		SkipDuplicates bool           `json:"skip_duplicates"`
	}{Properties: forms, SkipDuplicates: skipDuplicates}

	var result BulkCreateResult
	_, err := c.do(ctx, http.MethodPost, "/v1/properties/bulk", nil, body, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
