// InstaBids | 2026
// provider.go

package smartscope

import (
	"context"
	"encoding/json"
)

type AnalysisInput struct {
	PhotoURLs     []string
	PropertyType  string
	Area          string
	ReportedIssue string
	Category      string
	Priority      *string
}

type AnalysisResult struct {
	PrimaryIssue           string
	Severity               string
	Category               string
	ScopeItems             []ScopeItem
	Materials              []MaterialItem
	EstimatedHours         *float64
	SafetyNotes            *string
	AdditionalObservations []string
	ConfidenceScore        float64
	Raw                    json.RawMessage
}

// Provider turns photos and a reported issue into a structured work
// scope. Implementations call an external vision model; the service
// only sees this interface.
type Provider interface {
	Analyze(ctx context.Context, input AnalysisInput) (*AnalysisResult, error)
}
