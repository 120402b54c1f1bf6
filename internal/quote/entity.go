// InstaBids | 2026
// entity.go

package quote

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusUpdated   = "updated"
	StatusWithdrawn = "withdrawn"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusUpdated, StatusWithdrawn,
		StatusAccepted, StatusRejected:
		return true
	}
	return false
}

type LineItem struct {
	Description   string   `json:"description"`
	Category      *string  `json:"category,omitempty"`
	Quantity      *float64 `json:"quantity,omitempty"`
	UnitOfMeasure *string  `json:"unit_of_measure,omitempty"`
	UnitPrice     *float64 `json:"unit_price,omitempty"`
	LineTotal     float64  `json:"line_total"`
	IsIncluded    bool     `json:"is_included"`
}

// LineItems maps to a jsonb column.
type LineItems []LineItem

func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal line items: %w", err)
	}
	return string(data), nil
}

func (l *LineItems) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("scan line items: unsupported type %T", src)
	}
}

type Quote struct {
	ID                    string     `db:"id"                      json:"id"`
	ProjectID             string     `db:"project_id"              json:"project_id"`
	ContractorID          string     `db:"contractor_id"           json:"contractor_id"`
	Status                string     `db:"status"                  json:"status"`
	TotalAmount           float64    `db:"total_amount"            json:"total_amount"`
	LaborCost             *float64   `db:"labor_cost"              json:"labor_cost"`
	MaterialsCost         *float64   `db:"materials_cost"          json:"materials_cost"`
	OtherCosts            *float64   `db:"other_costs"             json:"other_costs"`
	TaxAmount             *float64   `db:"tax_amount"              json:"tax_amount"`
	CanStartDate          *time.Time `db:"can_start_date"          json:"can_start_date"`
	EstimatedDurationDays *int       `db:"estimated_duration_days" json:"estimated_duration_days"`
	CompletionDate        *time.Time `db:"completion_date"         json:"completion_date"`
	PaymentTerms          *string    `db:"payment_terms"           json:"payment_terms"`
	WarrantyPeriodMonths  *int       `db:"warranty_period_months"  json:"warranty_period_months"`
	Notes                 *string    `db:"notes"                   json:"notes"`
	LineItems             LineItems  `db:"line_items"              json:"line_items"`
	Standardized          bool       `db:"standardized"            json:"standardized"`
	CreatedAt             time.Time  `db:"created_at"              json:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at"              json:"updated_at"`
	SubmittedAt           *time.Time `db:"submitted_at"            json:"submitted_at"`
}

func (q *Quote) IsOpen() bool {
	switch q.Status {
	case StatusDraft, StatusSubmitted, StatusUpdated:
		return true
	}
	return false
}
