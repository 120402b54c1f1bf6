// InstaBids | 2026
// entity.go

package project

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	CategoryPlumbing           = "plumbing"
	CategoryElectrical         = "electrical"
	CategoryHVAC               = "hvac"
	CategoryRoofing            = "roofing"
	CategoryPainting           = "painting"
	CategoryLandscaping        = "landscaping"
	CategoryCarpentry          = "carpentry"
	CategoryGeneralMaintenance = "general_maintenance"
	CategoryOther              = "other"
)

const (
	UrgencyEmergency = "emergency"
	UrgencyUrgent    = "urgent"
	UrgencyRoutine   = "routine"
	UrgencyScheduled = "scheduled"
)

const (
	StatusDraft         = "draft"
	StatusOpenForBids   = "open_for_bids"
	StatusBiddingClosed = "bidding_closed"
	StatusAwarded       = "awarded"
	StatusInProgress    = "in_progress"
	StatusCompleted     = "completed"
	StatusCancelled     = "cancelled"
)

const (
	BudgetUnder500  = "under_500"
	Budget500To1K   = "500_1000"
	Budget1KTo5K    = "1000_5000"
	Budget5KTo10K   = "5000_10000"
	BudgetOver10K   = "over_10000"
	BudgetOpenEnded = "open"
)

func ValidCategory(c string) bool {
	switch c {
	case CategoryPlumbing, CategoryElectrical, CategoryHVAC,
		CategoryRoofing, CategoryPainting, CategoryLandscaping,
		CategoryCarpentry, CategoryGeneralMaintenance, CategoryOther:
		return true
	}
	return false
}

func ValidUrgency(u string) bool {
	switch u {
	case UrgencyEmergency, UrgencyUrgent, UrgencyRoutine, UrgencyScheduled:
		return true
	}
	return false
}

func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusOpenForBids, StatusBiddingClosed,
		StatusAwarded, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func ValidBudgetRange(b string) bool {
	switch b {
	case BudgetUnder500, Budget500To1K, Budget1KTo5K, Budget5KTo10K,
		BudgetOver10K, BudgetOpenEnded:
		return true
	}
	return false
}

// statusTransitions defines the legal lifecycle edges. Terminal states
// have no outgoing edges.
var statusTransitions = map[string][]string{
	StatusDraft:         {StatusOpenForBids, StatusCancelled},
	StatusOpenForBids:   {StatusBiddingClosed, StatusCancelled},
	StatusBiddingClosed: {StatusAwarded, StatusOpenForBids, StatusCancelled},
	StatusAwarded:       {StatusInProgress, StatusCancelled},
	StatusInProgress:    {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// VirtualAccess maps to a jsonb column holding site access details
// shared with the awarded contractor.
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

func (v *VirtualAccess) Value() (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal virtual access: %w", err)
	}
	return string(data), nil
}

func (v *VirtualAccess) Scan(src any) error {
	switch raw := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(raw, v)
	case string:
		return json.Unmarshal([]byte(raw), v)
	default:
		return fmt.Errorf("scan virtual access: unsupported type %T", src)
	}
}

type Project struct {
	ID                   string         `db:"id"                     json:"id"`
	PropertyID           string         `db:"property_id"            json:"property_id"`
	OrganizationID       string         `db:"organization_id"        json:"organization_id"`
	CreatedBy            string         `db:"created_by"             json:"created_by"`
	Title                string         `db:"title"                  json:"title"`
	Description          string         `db:"description"            json:"description"`
	Category             string         `db:"category"               json:"category"`
	Urgency              string         `db:"urgency"                json:"urgency"`
	Status               string         `db:"status"                 json:"status"`
	BidDeadline          time.Time      `db:"bid_deadline"           json:"bid_deadline"`
	PreferredStartDate   *time.Time     `db:"preferred_start_date"   json:"preferred_start_date"`
	CompletionDeadline   *time.Time     `db:"completion_deadline"    json:"completion_deadline"`
	BudgetMin            *float64       `db:"budget_min"             json:"budget_min"`
	BudgetMax            *float64       `db:"budget_max"             json:"budget_max"`
	BudgetRange          *string        `db:"budget_range"           json:"budget_range"`
	InsuranceRequired    bool           `db:"insurance_required"     json:"insurance_required"`
	LicenseRequired      bool           `db:"license_required"       json:"license_required"`
	MinimumBids          int            `db:"minimum_bids"           json:"minimum_bids"`
	IsOpenBidding        bool           `db:"is_open_bidding"        json:"is_open_bidding"`
	VirtualAccess        *VirtualAccess `db:"virtual_access"         json:"virtual_access"`
	LocationDetails      *string        `db:"location_details"       json:"location_details"`
	SpecialConditions    *string        `db:"special_conditions"     json:"special_conditions"`
	ViewCount            int            `db:"view_count"             json:"view_count"`
	BidCount             int            `db:"bid_count"              json:"bid_count"`
	QuestionCount        int            `db:"question_count"         json:"question_count"`
	SmartScopeAnalysisID *string        `db:"smartscope_analysis_id" json:"smartscope_analysis_id"`
	AwardedQuoteID       *string        `db:"awarded_quote_id"       json:"awarded_quote_id"`
	CreatedAt            time.Time      `db:"created_at"             json:"created_at"`
	UpdatedAt            time.Time      `db:"updated_at"             json:"updated_at"`
	PublishedAt          *time.Time     `db:"published_at"           json:"published_at"`
	ClosedAt             *time.Time     `db:"closed_at"              json:"closed_at"`
}

func (p *Project) IsDraft() bool {
	return p.Status == StatusDraft
}

func (p *Project) IsOpenForBids() bool {
	return p.Status == StatusOpenForBids
}

func (p *Project) IsTerminal() bool {
	return p.Status == StatusCompleted || p.Status == StatusCancelled
}
