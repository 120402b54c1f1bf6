// InstaBids | 2026
// provider_http.go

package smartscope

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/instabids/management-api/internal/config"
)

// ErrProviderUnconfigured is returned when no provider URL is set.
var ErrProviderUnconfigured = errors.New("smartscope provider not configured")

// HTTPProvider posts analysis requests to the external vision service.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPProvider(cfg config.SmartScopeConfig) *HTTPProvider {
	return &HTTPProvider{
		baseURL: cfg.ProviderURL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type providerRequest struct {
	PhotoURLs     []string `json:"photo_urls"`
	PropertyType  string   `json:"property_type"`
	Area          string   `json:"area"`
	ReportedIssue string   `json:"reported_issue"`
	Category      string   `json:"category"`
	Priority      *string  `json:"priority,omitempty"`
}

type providerResponse struct {
	PrimaryIssue           string         `json:"primary_issue"`
	Severity               string         `json:"severity"`
	Category               string         `json:"category"`
	ScopeItems             []ScopeItem    `json:"scope_items"`
	Materials              []MaterialItem `json:"materials"`
	EstimatedHours         *float64       `json:"estimated_hours"`
	SafetyNotes            *string        `json:"safety_notes"`
	AdditionalObservations []string       `json:"additional_observations"`
	ConfidenceScore        float64        `json:"confidence_score"`
}

func (p *HTTPProvider) Analyze(
	ctx context.Context,
	input AnalysisInput,
) (*AnalysisResult, error) {
	if p.baseURL == "" {
		return nil, ErrProviderUnconfigured
	}

	body, err := json.Marshal(providerRequest{
		PhotoURLs:     input.PhotoURLs,
		PropertyType:  input.PropertyType,
		Area:          input.Area,
		ReportedIssue: input.ReportedIssue,
		Category:      input.Category,
		Priority:      input.Priority,
	})
	if err != nil {
		return nil, fmt.Errorf("encode analysis request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.baseURL+"/v1/analyses",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("build analysis request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call analysis provider: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-side close

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf(
			"analysis provider returned status %d",
			resp.StatusCode,
		)
	}

	var decoded providerResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode provider response: %w", err)
	}

	return &AnalysisResult{
		PrimaryIssue:           decoded.PrimaryIssue,
		Severity:               decoded.Severity,
		Category:               decoded.Category,
		ScopeItems:             decoded.ScopeItems,
		Materials:              decoded.Materials,
		EstimatedHours:         decoded.EstimatedHours,
		SafetyNotes:            decoded.SafetyNotes,
		AdditionalObservations: decoded.AdditionalObservations,
		ConfidenceScore:        decoded.ConfidenceScore,
		Raw:                    raw,
	}, nil
}

var _ Provider = (*HTTPProvider)(nil)
