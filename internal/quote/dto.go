// InstaBids | 2026
// dto.go

package quote

import "time"

type SubmitRequest struct {
	ProjectID             string     `json:"project_id"   validate:"required,uuid"`
	TotalAmount           float64    `json:"total_amount" validate:"required,gt=0"`
	LaborCost             *float64   `json:"labor_cost,omitempty"     validate:"omitempty,gte=0"`
	MaterialsCost         *float64   `json:"materials_cost,omitempty" validate:"omitempty,gte=0"`
	OtherCosts            *float64   `json:"other_costs,omitempty"    validate:"omitempty,gte=0"`
	TaxAmount             *float64   `json:"tax_amount,omitempty"     validate:"omitempty,gte=0"`
	CanStartDate          *time.Time `json:"can_start_date,omitempty"`
	EstimatedDurationDays *int       `json:"estimated_duration_days,omitempty" validate:"omitempty,gte=1,lte=365"`
	CompletionDate        *time.Time `json:"completion_date,omitempty"`
	PaymentTerms          *string    `json:"payment_terms,omitempty"          validate:"omitempty,max=500"`
	WarrantyPeriodMonths  *int       `json:"warranty_period_months,omitempty" validate:"omitempty,gte=0,lte=240"`
	Notes                 *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
	LineItems             []LineItem `json:"line_items,omitempty" validate:"omitempty,max=100"`
	IsDraft               bool       `json:"is_draft"`
}

type UpdateRequest struct {
	TotalAmount           *float64   `json:"total_amount,omitempty"   validate:"omitempty,gt=0"`
	LaborCost             *float64   `json:"labor_cost,omitempty"     validate:"omitempty,gte=0"`
	MaterialsCost         *float64   `json:"materials_cost,omitempty" validate:"omitempty,gte=0"`
	OtherCosts            *float64   `json:"other_costs,omitempty"    validate:"omitempty,gte=0"`
	TaxAmount             *float64   `json:"tax_amount,omitempty"     validate:"omitempty,gte=0"`
	CanStartDate          *time.Time `json:"can_start_date,omitempty"`
	EstimatedDurationDays *int       `json:"estimated_duration_days,omitempty" validate:"omitempty,gte=1,lte=365"`
	CompletionDate        *time.Time `json:"completion_date,omitempty"`
	PaymentTerms          *string    `json:"payment_terms,omitempty"          validate:"omitempty,max=500"`
	WarrantyPeriodMonths  *int       `json:"warranty_period_months,omitempty" validate:"omitempty,gte=0,lte=240"`
	Notes                 *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
	LineItems             []LineItem `json:"line_items,omitempty" validate:"omitempty,max=100"`
	Submit                bool       `json:"submit"`
}

type ListParams struct {
	Page     int
	PageSize int
	Status   string
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
