// InstaBids | 2026
// dto.go

package property

type CreateRequest struct {
	Name         string   `json:"name"          validate:"required,min=1,max=255"`
	Address      string   `json:"address"       validate:"required,min=1,max=500"`
	City         string   `json:"city"          validate:"required,min=1,max=100"`
	State        string   `json:"state"         validate:"required,min=2,max=50"`
	Zip          string   `json:"zip"           validate:"required,min=5,max=20"`
	Country      string   `json:"country,omitempty"       validate:"omitempty,max=100"`
	PropertyType string   `json:"property_type,omitempty"`
	Status       string   `json:"status,omitempty"`
	ManagerID    *string  `json:"manager_id,omitempty"    validate:"omitempty,uuid"`
	Bedrooms     *int     `json:"bedrooms,omitempty"      validate:"omitempty,min=0,max=100"`
	Bathrooms    *float64 `json:"bathrooms,omitempty"     validate:"omitempty,min=0,max=100"`
	SquareFeet   *int     `json:"square_feet,omitempty"   validate:"omitempty,gt=0,lte=1000000"`
	YearBuilt    *int     `json:"year_built,omitempty"    validate:"omitempty,gte=1800,lte=2100"`
	Units        *int     `json:"units,omitempty"         validate:"omitempty,gte=1,lte=1000"`
	LotSize      *float64 `json:"lot_size,omitempty"      validate:"omitempty,gt=0"`
	Latitude     *float64 `json:"latitude,omitempty"      validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude,omitempty"     validate:"omitempty,gte=-180,lte=180"`
	Notes        *string  `json:"notes,omitempty"         validate:"omitempty,max=2000"`
	Amenities    []string `json:"amenities,omitempty"     validate:"omitempty,max=50,dive,min=1,max=100"`
}

type UpdateRequest struct {
	Name         *string  `json:"name,omitempty"          validate:"omitempty,min=1,max=255"`
	Address      *string  `json:"address,omitempty"       validate:"omitempty,min=1,max=500"`
	City         *string  `json:"city,omitempty"          validate:"omitempty,min=1,max=100"`
	State        *string  `json:"state,omitempty"         validate:"omitempty,min=2,max=50"`
	Zip          *string  `json:"zip,omitempty"           validate:"omitempty,min=5,max=20"`
	Country      *string  `json:"country,omitempty"       validate:"omitempty,max=100"`
	PropertyType *string  `json:"property_type,omitempty"`
	Status       *string  `json:"status,omitempty"`
	ManagerID    *string  `json:"manager_id,omitempty"    validate:"omitempty,uuid"`
	Bedrooms     *int     `json:"bedrooms,omitempty"      validate:"omitempty,min=0,max=100"`
	Bathrooms    *float64 `json:"bathrooms,omitempty"     validate:"omitempty,min=0,max=100"`
	SquareFeet   *int     `json:"square_feet,omitempty"   validate:"omitempty,gt=0,lte=1000000"`
	YearBuilt    *int     `json:"year_built,omitempty"    validate:"omitempty,gte=1800,lte=2100"`
	Units        *int     `json:"units,omitempty"         validate:"omitempty,gte=1,lte=1000"`
	LotSize      *float64 `json:"lot_size,omitempty"      validate:"omitempty,gt=0"`
	Latitude     *float64 `json:"latitude,omitempty"      validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude,omitempty"     validate:"omitempty,gte=-180,lte=180"`
	Notes        *string  `json:"notes,omitempty"         validate:"omitempty,max=2000"`
	Amenities    []string `json:"amenities,omitempty"     validate:"omitempty,max=50,dive,min=1,max=100"`
}

type ListParams struct {
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

type BulkCreateRequest struct {
	Properties     []CreateRequest `json:"properties" validate:"required,min=1,max=100,dive"`
	SkipDuplicates bool            `json:"skip_duplicates"`
}

type BulkCreateResult struct {
	Created []Property `json:"created"`
	Skipped []string   `json:"skipped"`
}
