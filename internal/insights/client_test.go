package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluffyriot/peerbench/internal/benchmark"
)

func TestSummarizeSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/insights", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req benchmark.SummaryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, benchmark.PlatformInstagram, req.Platform)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"positioning":"strong niche fit","strengths":["consistency"],"posting_cadence":"daily"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second)
	insight, err := client.Summarize(context.Background(), benchmark.SummaryRequest{
		Platform:     benchmark.PlatformInstagram,
		ProfileCount: 3,
	})
	require.NoError(t, err)
	require.NotNil(t, insight)

	assert.Equal(t, "strong niche fit", insight.Positioning)
	assert.Equal(t, []string{"consistency"}, insight.Strengths)
	// The service omitted generated_at, so the client stamps it.
	assert.False(t, insight.GeneratedAt.IsZero())
}

func TestSummarizeEmptyAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 5*time.Second)
	insight, err := client.Summarize(context.Background(), benchmark.SummaryRequest{})
	require.NoError(t, err)
	assert.Nil(t, insight)
}

func TestSummarizeServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 5*time.Second)
	_, err := client.Summarize(context.Background(), benchmark.SummaryRequest{})
	assert.Error(t, err)
}
