// InstaBids | 2026
// dto.go

package smartscope

type AnalysisRequest struct {
	ProjectID     string   `json:"project_id"     validate:"required,uuid"`
	PhotoURLs     []string `json:"photo_urls"     validate:"required,min=1,max=20,dive,url"`
	PropertyType  string   `json:"property_type"  validate:"required,max=100"`
	Area          string   `json:"area"           validate:"required,max=100"`
	ReportedIssue string   `json:"reported_issue" validate:"required,min=10,max=2000"`
	Category      string   `json:"category"       validate:"required,max=100"`
	Priority      *string  `json:"priority,omitempty" validate:"omitempty,max=50"`
}

type FeedbackRequest struct {
	AccuracyRating      int         `json:"accuracy_rating" validate:"required,gte=1,lte=5"`
	ScopeCorrections    RawResponse `json:"scope_corrections,omitempty"`
	MaterialCorrections RawResponse `json:"material_corrections,omitempty"`
	Comments            *string     `json:"comments,omitempty" validate:"omitempty,max=2000"`
}
