// InstaBids | 2026
// entity.go

package smartscope

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	SeverityEmergency = "Emergency"
	SeverityHigh      = "High"
	SeverityMedium    = "Medium"
	SeverityLow       = "Low"
)

func ValidSeverity(s string) bool {
	switch s {
	case SeverityEmergency, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

type ScopeItem struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Trade          *string  `json:"trade,omitempty"`
	Materials      []string `json:"materials,omitempty"`
	SafetyNotes    []string `json:"safety_notes,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
}

type MaterialItem struct {
	Name           string  `json:"name"`
	Quantity       *string `json:"quantity,omitempty"`
	Specifications *string `json:"specifications,omitempty"`
}

// jsonbValue and jsonbScan back the jsonb-mapped slice types below.
func jsonbValue(v any) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal jsonb: %w", err)
	}
	return string(data), nil
}

func jsonbScan(src, dest any) error {
	switch raw := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(raw, dest)
	case string:
		return json.Unmarshal([]byte(raw), dest)
	default:
		return fmt.Errorf("scan jsonb: unsupported type %T", src)
	}
}

type ScopeItems []ScopeItem

func (s ScopeItems) Value() (driver.Value, error) { return jsonbValue(s) }
func (s *ScopeItems) Scan(src any) error          { return jsonbScan(src, s) }

type MaterialItems []MaterialItem

func (m MaterialItems) Value() (driver.Value, error) { return jsonbValue(m) }
func (m *MaterialItems) Scan(src any) error          { return jsonbScan(src, m) }

type StringList []string

func (l StringList) Value() (driver.Value, error) { return jsonbValue(l) }
func (l *StringList) Scan(src any) error          { return jsonbScan(src, l) }

type RawResponse json.RawMessage

func (r RawResponse) Value() (driver.Value, error) {
	if len(r) == 0 {
		return "{}", nil
	}
	return string(r), nil
}

func (r *RawResponse) Scan(src any) error {
	switch raw := src.(type) {
	case nil:
		return nil
	case []byte:
		*r = append((*r)[:0], raw...)
		return nil
	case string:
		*r = RawResponse(raw)
		return nil
	default:
		return fmt.Errorf("scan raw response: unsupported type %T", src)
	}
}

func (r RawResponse) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

func (r *RawResponse) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}

type Analysis struct {
	ID                     string        `db:"id"                      json:"id"`
	ProjectID              string        `db:"project_id"              json:"project_id"`
	RequestedBy            string        `db:"requested_by"            json:"requested_by"`
	PhotoURLs              StringList    `db:"photo_urls"              json:"photo_urls"`
	PropertyType           string        `db:"property_type"           json:"property_type"`
	Area                   string        `db:"area"                    json:"area"`
	ReportedIssue          string        `db:"reported_issue"          json:"reported_issue"`
	PrimaryIssue           string        `db:"primary_issue"           json:"primary_issue"`
	Severity               string        `db:"severity"                json:"severity"`
	Category               string        `db:"category"                json:"category"`
	ScopeItems             ScopeItems    `db:"scope_items"             json:"scope_items"`
	Materials              MaterialItems `db:"materials"               json:"materials"`
	EstimatedHours         *float64      `db:"estimated_hours"         json:"estimated_hours"`
	SafetyNotes            *string       `db:"safety_notes"            json:"safety_notes"`
	AdditionalObservations StringList    `db:"additional_observations" json:"additional_observations"`
	ConfidenceScore        float64       `db:"confidence_score"        json:"confidence_score"`
	ProviderResponseRaw    RawResponse   `db:"provider_response_raw"   json:"-"`
	CreatedAt              time.Time     `db:"created_at"              json:"created_at"`
	UpdatedAt              time.Time     `db:"updated_at"              json:"updated_at"`
}

type Feedback struct {
	ID                  string      `db:"id"                   json:"id"`
	AnalysisID          string      `db:"analysis_id"          json:"analysis_id"`
	UserID              string      `db:"user_id"              json:"user_id"`
	AccuracyRating      int         `db:"accuracy_rating"      json:"accuracy_rating"`
	ScopeCorrections    RawResponse `db:"scope_corrections"    json:"scope_corrections"`
	MaterialCorrections RawResponse `db:"material_corrections" json:"material_corrections"`
	Comments            *string     `db:"comments"             json:"comments"`
	CreatedAt           time.Time   `db:"created_at"           json:"created_at"`
}
