// InstaBids | 2026
// entity.go

package property

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	TypeSingleFamily         = "single_family"
	TypeMultiFamily          = "multi_family"
	TypeApartment            = "apartment"
	TypeCondo                = "condo"
	TypeTownhouse            = "townhouse"
	TypeCommercialOffice     = "commercial_office"
	TypeCommercialRetail     = "commercial_retail"
	TypeCommercialIndustrial = "commercial_industrial"
	TypeMixedUse             = "mixed_use"
	TypeOther                = "other"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusArchived = "archived"
)

func ValidType(t string) bool {
	switch t {
	case TypeSingleFamily, TypeMultiFamily, TypeApartment, TypeCondo,
		TypeTownhouse, TypeCommercialOffice, TypeCommercialRetail,
		TypeCommercialIndustrial, TypeMixedUse, TypeOther:
		return true
	}
	return false
}

func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusInactive, StatusArchived:
		return true
	}
	return false
}

// StringList maps to a jsonb column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal string list: %w", err)
	}
	return string(data), nil
}

func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("scan string list: unsupported type %T", src)
	}
}

type Property struct {
	ID             string     `db:"id"              json:"id"`
	OrganizationID string     `db:"organization_id" json:"organization_id"`
	Name           string     `db:"name"            json:"name"`
	Address        string     `db:"address"         json:"address"`
	City           string     `db:"city"            json:"city"`
	State          string     `db:"state"           json:"state"`
	Zip            string     `db:"zip"             json:"zip"`
	Country        string     `db:"country"         json:"country"`
	PropertyType   string     `db:"property_type"   json:"property_type"`
	Status         string     `db:"status"          json:"status"`
	ManagerID      *string    `db:"manager_id"      json:"manager_id"`
	Bedrooms       *int       `db:"bedrooms"        json:"bedrooms"`
	Bathrooms      *float64   `db:"bathrooms"       json:"bathrooms"`
	SquareFeet     *int       `db:"square_feet"     json:"square_feet"`
	YearBuilt      *int       `db:"year_built"      json:"year_built"`
	Units          *int       `db:"units"           json:"units"`
	LotSize        *float64   `db:"lot_size"        json:"lot_size"`
	Latitude       *float64   `db:"latitude"        json:"latitude"`
	Longitude      *float64   `db:"longitude"       json:"longitude"`
	Notes          *string    `db:"notes"           json:"notes"`
	Amenities      StringList `db:"amenities"       json:"amenities"`
	CreatedAt      time.Time  `db:"created_at"      json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"      json:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"      json:"-"`
}

func (p *Property) IsDeleted() bool {
	return p.DeletedAt != nil
}

func (p *Property) IsArchived() bool {
	return p.Status == StatusArchived
}
