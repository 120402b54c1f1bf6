// InstaBids | 2026
// provider_http_test.go

package smartscope

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instabids/management-api/internal/config"
)

func testProvider(url string) *HTTPProvider {
	return NewHTTPProvider(config.SmartScopeConfig{
		ProviderURL: url,
		APIKey:      "test-key",
		Timeout:     5 * time.Second,
	})
}

func testInput() AnalysisInput {
	return AnalysisInput{
		PhotoURLs:     []string{"https://photos.example.com/leak-1.jpg"},
		PropertyType:  "apartment",
		Area:          "kitchen",
		ReportedIssue: "water pooling under the sink cabinet",
		Category:      "plumbing",
	}
}

func TestHTTPProviderAnalyze(t *testing.T) {
	var gotAuth string
	var gotReq providerRequest

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/v1/analyses", r.URL.Path)
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

			hours := 3.5
			_ = json.NewEncoder(w).Encode(providerResponse{
				PrimaryIssue: "Corroded P-trap leaking at the joint",
				Severity:     SeverityHigh,
				Category:     "plumbing",
				ScopeItems: []ScopeItem{
					{Title: "Replace P-trap", Description: "Swap the corroded trap assembly"},
				},
				Materials:       []MaterialItem{{Name: "1.5in PVC P-trap"}},
				EstimatedHours:  &hours,
				ConfidenceScore: 0.87,
			})
		},
	))
	defer srv.Close()

	result, err := testProvider(srv.URL).Analyze(context.Background(), testInput())
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "kitchen", gotReq.Area)
	assert.Equal(t, "plumbing", gotReq.Category)

	assert.Equal(t, "Corroded P-trap leaking at the joint", result.PrimaryIssue)
	assert.Equal(t, SeverityHigh, result.Severity)
	require.Len(t, result.ScopeItems, 1)
	require.NotNil(t, result.EstimatedHours)
	assert.InEpsilon(t, 3.5, *result.EstimatedHours, 0.001)
	assert.InEpsilon(t, 0.87, result.ConfidenceScore, 0.001)
	assert.NotEmpty(t, result.Raw)
}

func TestHTTPProviderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
	))
	defer srv.Close()

	_, err := testProvider(srv.URL).Analyze(context.Background(), testInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestHTTPProviderMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("not json"))
		},
	))
	defer srv.Close()

	_, err := testProvider(srv.URL).Analyze(context.Background(), testInput())
	require.Error(t, err)
}

func TestHTTPProviderUnconfigured(t *testing.T) {
	provider := NewHTTPProvider(config.SmartScopeConfig{})

	_, err := provider.Analyze(context.Background(), testInput())
	require.ErrorIs(t, err, ErrProviderUnconfigured)
}
