// InstaBids | 2026
// projects.go

package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Project mirrors the backend's project payload.
type Project struct {
	ID                   string         `json:"id"`
	PropertyID           string         `json:"property_id"`
	OrganizationID       string         `json:"organization_id"`
	CreatedBy            string         `json:"created_by"`
	Title                string         `json:"title"`
	Description          string         `json:"description"`
	Category             string         `json:"category"`
	Urgency              string         `json:"urgency"`
	Status               string         `json:"status"`
	BidDeadline          time.Time      `json:"bid_deadline"`
	PreferredStartDate   *time.Time     `json:"preferred_start_date"`
	CompletionDeadline   *time.Time     `json:"completion_deadline"`
	BudgetMin            *float64       `json:"budget_min"`
	BudgetMax            *float64       `json:"budget_max"`
	BudgetRange          *string        `json:"budget_range"`
	InsuranceRequired    bool           `json:"insurance_required"`
	LicenseRequired      bool           `json:"license_required"`
	MinimumBids          int            `json:"minimum_bids"`
	IsOpenBidding        bool           `json:"is_open_bidding"`
	VirtualAccess        *VirtualAccess `json:"virtual_access"`
	LocationDetails      *string        `json:"location_details"`
	SpecialConditions    *string        `json:"special_conditions"`
	ViewCount            int            `json:"view_count"`
	BidCount             int            `json:"bid_count"`
	QuestionCount        int            `json:"question_count"`
	SmartScopeAnalysisID *string        `json:"smartscope_analysis_id"`
	AwardedQuoteID       *string        `json:"awarded_quote_id"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	PublishedAt          *time.Time     `json:"published_at"`
	ClosedAt             *time.Time     `json:"closed_at"`
}

// VirtualAccess holds site access details shared with the awarded
// contractor.
type VirtualAccess struct {
	GateCode            *string `json:"gate_code,omitempty"`
	LockboxCode         *string `json:"lockbox_code,omitempty"`
	KeyLocation         *string `json:"key_location,omitempty"`
	OnsiteContactName   *string `json:"onsite_contact_name,omitempty"`
	OnsiteContactPhone  *string `json:"onsite_contact_phone,omitempty"`
	ParkingInstructions *string `json:"parking_instructions,omitempty"`
	WorkHours           *string `json:"work_hours,omitempty"`
	Hazards             *string `json:"hazards,omitempty"`
}

type ProjectForm struct {
	PropertyID         string         `json:"property_id"`
	Title              string         `json:"title"`
	Description        string         `json:"description"`
	Category           string         `json:"category"`
	Urgency            string         `json:"urgency,omitempty"`
	BidDeadline        time.Time      `json:"bid_deadline"`
	PreferredStartDate *time.Time     `json:"preferred_start_date,omitempty"`
	CompletionDeadline *time.Time     `json:"completion_deadline,omitempty"`
	BudgetMin          *float64       `json:"budget_min,omitempty"`
	BudgetMax          *float64       `json:"budget_max,omitempty"`
	BudgetRange        *string        `json:"budget_range,omitempty"`
	InsuranceRequired  *bool          `json:"insurance_required,omitempty"`
	LicenseRequired    *bool          `json:"license_required,omitempty"`
	MinimumBids        *int           `json:"minimum_bids,omitempty"`
	IsOpenBidding      bool           `json:"is_open_bidding"`
	VirtualAccess      *VirtualAccess `json:"virtual_access,omitempty"`
	LocationDetails    *string        `json:"location_details,omitempty"`
	SpecialConditions  *string        `json:"special_conditions,omitempty"`
	Publish            bool           `json:"publish"`
}

type ProjectUpdate struct {
	Title              *string        `json:"title,omitempty"`
	Description        *string        `json:"description,omitempty"`
	Category           *string        `json:"category,omitempty"`
	Urgency            *string        `json:"urgency,omitempty"`
	BidDeadline        *time.Time     `json:"bid_deadline,omitempty"`
	PreferredStartDate *time.Time     `json:"preferred_start_date,omitempty"`
	CompletionDeadline *time.Time     `json:"completion_deadline,omitempty"`
	BudgetMin          *float64       `json:"budget_min,omitempty"`
	BudgetMax          *float64       `json:"budget_max,omitempty"`
	BudgetRange        *string        `json:"budget_range,omitempty"`
	InsuranceRequired  *bool          `json:"insurance_required,omitempty"`
	LicenseRequired    *bool          `json:"license_required,omitempty"`
	MinimumBids        *int           `json:"minimum_bids,omitempty"`
	IsOpenBidding      *bool          `json:"is_open_bidding,omitempty"`
	VirtualAccess      *VirtualAccess `json:"virtual_access,omitempty"`
	LocationDetails    *string        `json:"location_details,omitempty"`
	SpecialConditions  *string        `json:"special_conditions,omitempty"`
}

type ProjectFilter struct {
	Page       int
	PageSize   int
	Search     string
	Status     string
	Category   string
	Urgency    string
	PropertyID string
}

func (f ProjectFilter) query() url.Values {
	q := url.Values{}
	setQueryInt(q, "page", f.Page)
	setQueryInt(q, "page_size", f.PageSize)
	setQueryString(q, "search", f.Search)
	setQueryString(q, "status", f.Status)
	setQueryString(q, "category", f.Category)
	setQueryString(q, "urgency", f.Urgency)
	setQueryString(q, "property_id", f.PropertyID)
	return q
}

// ListProjects returns one page of projects. Contractors see open
// bidding opportunities; managers see their organization's projects.
func (c *Client) ListProjects(
	ctx context.Context,
	filter ProjectFilter,
) ([]Project, *PageMeta, error) {
	var projects []Project
	meta, err := c.do(
		ctx,
		http.MethodGet,
		"/v1/projects",
		filter.query(),
		nil,
		&projects,
	)
	if err != nil {
		return nil, nil, err
	}
	return projects, meta, nil
}

func (c *Client) GetProject(ctx context.Context, id string) (*Project, error) {
	var p Project
	_, err := c.do(ctx, http.MethodGet, "/v1/projects/"+id, nil, nil, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreateProject(
	ctx context.Context,
	form ProjectForm,
) (*Project, error) {
	var p Project
	_, err := c.do(ctx, http.MethodPost, "/v1/projects", nil, form, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProject(
	ctx context.Context,
	id string,
	update ProjectUpdate,
) (*Project, error) {
	var p Project
	_, err := c.do(ctx, http.MethodPut, "/v1/projects/"+id, nil, update, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// PublishProject opens a draft project for bidding.
func (c *Client) PublishProject(ctx context.Context, id string) (*Project, error) {
	var p Project
	_, err := c.do(
		ctx,
		http.MethodPost,
		"/v1/projects/"+id+"/publish",
		nil,
		nil,
		&p,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProjectStatus(
	ctx context.Context,
	id, status string,
) (*Project, error) {
	body := map[string]string{"status": status}

	var p Project
	_, err := c.do(
		ctx,
		http.MethodPatch,
		"/v1/projects/"+id+"/status",
		nil,
		body,
		&p,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
