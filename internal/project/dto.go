// InstaBids | 2026
// dto.go

package project

import "time"

type CreateRequest struct {
	PropertyID         string         `json:"property_id"  validate:"required,uuid"`
	Title              string         `json:"title"        validate:"required,min=3,max=100"`
	Description        string         `json:"description"  validate:"required,min=30,max=2000"`
	Category           string         `json:"category"     validate:"required"`
	Urgency            string         `json:"urgency,omitempty"`
	BidDeadline        time.Time      `json:"bid_deadline" validate:"required"`
	PreferredStartDate *time.Time     `json:"preferred_start_date,omitempty"`
	CompletionDeadline *time.Time     `json:"completion_deadline,omitempty"`
	BudgetMin          *float64       `json:"budget_min,omitempty"  validate:"omitempty,gte=0"`
	BudgetMax          *float64       `json:"budget_max,omitempty"  validate:"omitempty,gte=0"`
	BudgetRange        *string        `json:"budget_range,omitempty"`
	InsuranceRequired  *bool          `json:"insurance_required,omitempty"`
	LicenseRequired    *bool          `json:"license_required,omitempty"`
	MinimumBids        *int           `json:"minimum_bids,omitempty" validate:"omitempty,gte=1,lte=20"`
	IsOpenBidding      bool           `json:"is_open_bidding"`
	VirtualAccess      *VirtualAccess `json:"virtual_access,omitempty"`
	LocationDetails    *string        `json:"location_details,omitempty"   validate:"omitempty,max=500"`
	SpecialConditions  *string        `json:"special_conditions,omitempty" validate:"omitempty,max=1000"`
	Publish            bool           `json:"publish"`
}

type UpdateRequest struct {
	Title              *string        `json:"title,omitempty"        validate:"omitempty,min=3,max=100"`
	Description        *string        `json:"description,omitempty"  validate:"omitempty,min=30,max=2000"`
	Category           *string        `json:"category,omitempty"`
	Urgency            *string        `json:"urgency,omitempty"`
	BidDeadline        *time.Time     `json:"bid_deadline,omitempty"`
	PreferredStartDate *time.Time     `json:"preferred_start_date,omitempty"`
	CompletionDeadline *time.Time     `json:"completion_deadline,omitempty"`
	BudgetMin          *float64       `json:"budget_min,omitempty"  validate:"omitempty,gte=0"`
	BudgetMax          *float64       `json:"budget_max,omitempty"  validate:"omitempty,gte=0"`
	BudgetRange        *string        `json:"budget_range,omitempty"`
	InsuranceRequired  *bool          `json:"insurance_required,omitempty"`
	LicenseRequired    *bool          `json:"license_required,omitempty"`
	MinimumBids        *int           `json:"minimum_bids,omitempty" validate:"omitempty,gte=1,lte=20"`
	IsOpenBidding      *bool          `json:"is_open_bidding,omitempty"`
	VirtualAccess      *VirtualAccess `json:"virtual_access,omitempty"`
	LocationDetails    *string        `json:"location_details,omitempty"   validate:"omitempty,max=500"`
	SpecialConditions  *string        `json:"special_conditions,omitempty" validate:"omitempty,max=1000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ListParams struct {
	Page       int
	PageSize   int
	Search     string
	Status     string
	Category   string
	Urgency    string
	PropertyID string
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}
