package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visual-layer/vl-mcp-server/internal/vlapi"
)

// callReq builds a tool call request with the given arguments.
func callReq(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// firstText returns the text of the first TextContent in the result.
func firstText(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, r.Content, "result has no content")
	txt, ok := r.Content[0].(mcp.TextContent)
	require.True(t, ok, "first content item is not TextContent")
	return txt.Text
}

func isErrorResult(r *mcp.CallToolResult) bool {
	return r != nil && r.IsError
}

// ─── fakes ────────────────────────────────────────────────────────────────────

type fakeLister struct {
	datasets []vlapi.Dataset
	err      error
	calls    int
}

func (f *fakeLister) Datasets(ctx context.Context) ([]vlapi.Dataset, error) {
	f.calls++
	return f.datasets, f.err
}

type fakeGetter struct {
	dataset vlapi.Dataset
	err     error
	calls   int
}

func (f *fakeGetter) Dataset(ctx context.Context, id string) (vlapi.Dataset, error) {
	f.calls++
	return f.dataset, f.err
}

type fakeHealth struct {
	status vlapi.HealthStatus
	err    error
}

func (f *fakeHealth) Health(ctx context.Context) (vlapi.HealthStatus, error) {
	return f.status, f.err
}

type fakeSearcher struct {
	result    vlapi.SearchResult
	searchErr error
	datasets  []vlapi.Dataset
	listErr   error

	searchCalls  int
	listCalls    int
	gotDatasetID string
	gotLabels    []string
	gotOperator  vlapi.SearchOperator
}

func (f *fakeSearcher) SearchLabels(ctx context.Context, datasetID string, labels []string, op vlapi.SearchOperator) (vlapi.SearchResult, error) {
	f.searchCalls++
	f.gotDatasetID = datasetID
	f.gotLabels = labels
	f.gotOperator = op
	return f.result, f.searchErr
}

func (f *fakeSearcher) Datasets(ctx context.Context) ([]vlapi.Dataset, error) {
	f.listCalls++
	return f.datasets, f.listErr
}

func rows(raw ...string) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(raw))
	for _, r := range raw {
		out = append(out, json.RawMessage(r))
	}
	return out
}

// ─── get_all_datasets ─────────────────────────────────────────────────────────

func TestGetAllDatasets(t *testing.T) {
	tests := []struct {
		name        string
		fake        *fakeLister
		wantIsError bool
		wantText    []string
	}{
		{
			name: "formats every documented field",
			fake: &fakeLister{datasets: []vlapi.Dataset{
				{ID: "d1", DisplayName: "Wildlife", Description: "animal photos", CreatedAt: "2026-01-01", Status: "READY"},
				{ID: "d2", DisplayName: "Traffic", CreatedAt: "2026-02-01", Status: "INDEXING"},
			}},
			wantText: []string{
				"Found 2 datasets:",
				"ID: d1", "Name: Wildlife", "Description: animal photos", "Created: 2026-01-01", "Status: READY",
				"ID: d2", "Name: Traffic", "No description available", "Status: INDEXING",
			},
		},
		{
			name:     "empty list yields a message, not an error",
			fake:     &fakeLister{datasets: nil},
			wantText: []string{"No datasets found."},
		},
		{
			name:        "remote error surfaces verbatim",
			fake:        &fakeLister{err: &vlapi.APIError{StatusCode: 500, Message: "index rebuild in progress"}},
			wantIsError: true,
			wantText:    []string{"index rebuild in progress"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &GetAllDatasetsHandler{Service: tt.fake}
			result, err := h.ToolAdapter(t.Context(), callReq(nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantIsError, isErrorResult(result))
			text := firstText(t, result)
			for _, want := range tt.wantText {
				assert.Contains(t, text, want)
			}
		})
	}
}

// ─── health_check ─────────────────────────────────────────────────────────────

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name        string
		fake        *fakeHealth
		wantIsError bool
		wantText    []string
	}{
		{
			name:     "healthy",
			fake:     &fakeHealth{status: vlapi.HealthStatus{Status: "healthy", Message: "all good"}},
			wantText: []string{"Status: healthy", "Message: all good"},
		},
		{
			name:     "unhealthy response is a result, not an error",
			fake:     &fakeHealth{status: vlapi.HealthStatus{Status: "unhealthy", Message: "search index degraded"}},
			wantText: []string{"Status: unhealthy", "search index degraded"},
		},
		{
			name:     "healthy with no message gets a default",
			fake:     &fakeHealth{status: vlapi.HealthStatus{Status: "ok"}},
			wantText: []string{"Status: healthy", "API is healthy and responding"},
		},
		{
			name:        "unreachable API is an error",
			fake:        &fakeHealth{err: errors.New("connection refused")},
			wantIsError: true,
			wantText:    []string{"connection refused"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &HealthCheckHandler{Service: tt.fake}
			result, err := h.ToolAdapter(t.Context(), callReq(nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantIsError, isErrorResult(result))
			text := firstText(t, result)
			for _, want := range tt.wantText {
				assert.Contains(t, text, want)
			}
		})
	}
}

// ─── get_dataset_info ─────────────────────────────────────────────────────────

func TestGetDatasetInfo(t *testing.T) {
	tests := []struct {
		name        string
		args        map[string]any
		fake        *fakeGetter
		wantIsError bool
		wantText    []string
		wantCalls   int
	}{
		{
			name:        "missing dataset_id never reaches the service",
			args:        nil,
			fake:        &fakeGetter{},
			wantIsError: true,
			wantText:    []string{"dataset_id"},
			wantCalls:   0,
		},
		{
			name:        "empty dataset_id never reaches the service",
			args:        map[string]any{"dataset_id": "   "},
			fake:        &fakeGetter{},
			wantIsError: true,
			wantText:    []string{"dataset_id"},
			wantCalls:   0,
		},
		{
			name: "formats every documented field",
			args: map[string]any{"dataset_id": "abc123"},
			fake: &fakeGetter{dataset: vlapi.Dataset{
				ID: "abc123", DisplayName: "Wildlife", Description: "animal photos",
				CreatedAt: "2026-01-01", Status: "READY", Type: "images", SizeBytes: 2048,
			}},
			wantText: []string{
				"ID: abc123", "Name: Wildlife", "Description: animal photos",
				"Created: 2026-01-01", "Status: READY", "Type: images", "Size: 2.0 kB",
			},
			wantCalls: 1,
		},
		{
			name:      "not found yields a clear message, not an error",
			args:      map[string]any{"dataset_id": "missing"},
			fake:      &fakeGetter{err: fmt.Errorf("dataset %q: %w", "missing", vlapi.ErrNotFound)},
			wantText:  []string{"No dataset found with ID: missing"},
			wantCalls: 1,
		},
		{
			name:        "remote error surfaces as error result",
			args:        map[string]any{"dataset_id": "abc123"},
			fake:        &fakeGetter{err: &vlapi.APIError{StatusCode: 502, Message: "upstream down"}},
			wantIsError: true,
			wantText:    []string{"upstream down"},
			wantCalls:   1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &GetDatasetInfoHandler{Service: tt.fake}
			result, err := h.ToolAdapter(t.Context(), callReq(tt.args))
			require.NoError(t, err)
			assert.Equal(t, tt.wantIsError, isErrorResult(result))
			assert.Equal(t, tt.wantCalls, tt.fake.calls)
			text := firstText(t, result)
			for _, want := range tt.wantText {
				assert.Contains(t, text, want)
			}
		})
	}
}

func TestGetDatasetInfoIsIdempotent(t *testing.T) {
	fake := &fakeGetter{dataset: vlapi.Dataset{ID: "abc123", DisplayName: "Wildlife", Status: "READY"}}
	h := &GetDatasetInfoHandler{Service: fake}
	req := callReq(map[string]any{"dataset_id": "abc123"})

	first, err := h.ToolAdapter(t.Context(), req)
	require.NoError(t, err)
	second, err := h.ToolAdapter(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, firstText(t, first), firstText(t, second))
}

// ─── search_by_labels ─────────────────────────────────────────────────────────

func TestSearchByLabelsValidation(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]any
		wantText string
	}{
		{
			name:     "missing label_query",
			args:     nil,
			wantText: "label_query",
		},
		{
			name:     "invalid operator",
			args:     map[string]any{"label_query": "cat", "search_operator": "CONTAINS"},
			wantText: "invalid search operator",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeSearcher{}
			h := &SearchByLabelsHandler{Service: fake}
			result, err := h.ToolAdapter(t.Context(), callReq(tt.args))
			require.NoError(t, err)
			assert.True(t, isErrorResult(result))
			assert.Contains(t, firstText(t, result), tt.wantText)
			assert.Zero(t, fake.searchCalls, "validation failure must not reach the remote API")
			assert.Zero(t, fake.listCalls, "validation failure must not reach the remote API")
		})
	}
}

func TestSearchByLabelsScoped(t *testing.T) {
	fake := &fakeSearcher{result: vlapi.SearchResult{
		Images: rows(
			`{"image_id":"i1","labels":["cat"],"uri":"s3://b/i1.jpg"}`,
			`{"image_id":"i2","labels":["cat","tabby"],"uri":"s3://b/i2.jpg"}`,
		),
		Total: 2,
	}}
	h := &SearchByLabelsHandler{Service: fake}

	result, err := h.ToolAdapter(t.Context(), callReq(map[string]any{
		"label_query":     "cat",
		"dataset_id":      "d1",
		"search_operator": "IS",
	}))
	require.NoError(t, err)
	require.False(t, isErrorResult(result))

	assert.Equal(t, 1, fake.searchCalls)
	assert.Zero(t, fake.listCalls)
	assert.Equal(t, "d1", fake.gotDatasetID)
	assert.Equal(t, []string{"cat"}, fake.gotLabels)
	assert.Equal(t, vlapi.OperatorIs, fake.gotOperator)

	text := firstText(t, result)
	assert.Contains(t, text, "Found 2 images")
	assert.Contains(t, text, "Available columns: image_id, labels, uri")
	assert.Contains(t, text, "image_id: i1")
	assert.Contains(t, text, "image_id: i2")
}

func TestSearchByLabelsDefaultsOperator(t *testing.T) {
	fake := &fakeSearcher{result: vlapi.SearchResult{}}
	h := &SearchByLabelsHandler{Service: fake}

	_, err := h.ToolAdapter(t.Context(), callReq(map[string]any{
		"label_query": "cat",
		"dataset_id":  "d1",
	}))
	require.NoError(t, err)
	assert.Equal(t, vlapi.OperatorIsOneOf, fake.gotOperator)
}

func TestSearchByLabelsScopedEmpty(t *testing.T) {
	fake := &fakeSearcher{result: vlapi.SearchResult{}}
	h := &SearchByLabelsHandler{Service: fake}

	result, err := h.ToolAdapter(t.Context(), callReq(map[string]any{
		"label_query": "unicorn",
		"dataset_id":  "d1",
	}))
	require.NoError(t, err)
	assert.False(t, isErrorResult(result))
	assert.Contains(t, firstText(t, result), "No images found")
}

func TestSearchByLabelsScopedDatasetMissing(t *testing.T) {
	fake := &fakeSearcher{searchErr: fmt.Errorf("dataset %q: %w", "nope", vlapi.ErrNotFound)}
	h := &SearchByLabelsHandler{Service: fake}

	result, err := h.ToolAdapter(t.Context(), callReq(map[string]any{
		"label_query": "cat",
		"dataset_id":  "nope",
	}))
	require.NoError(t, err)
	assert.False(t, isErrorResult(result))
	assert.Contains(t, firstText(t, result), "No dataset found with ID: nope")
}

func TestSearchByLabelsUnscoped(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		datasets    []vlapi.Dataset
		wantIsError bool
		wantText    []string
	}{
		{
			name:  "matches name, description and type case-insensitively",
			query: "WILD",
			datasets: []vlapi.Dataset{
				{ID: "d1", DisplayName: "Wildlife", Type: "images", Status: "READY"},
				{ID: "d2", DisplayName: "Traffic", Type: "images", Status: "READY"},
			},
			wantText: []string{"Found 1 datasets matching", "ID: d1", "Name: Wildlife"},
		},
		{
			name:     "no datasets at all",
			query:    "cat",
			datasets: nil,
			wantText: []string{"No datasets found to search through."},
		},
		{
			name:  "no matches",
			query: "unicorn",
			datasets: []vlapi.Dataset{
				{ID: "d1", DisplayName: "Wildlife"},
			},
			wantText: []string{`No datasets found matching the label query: "unicorn"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeSearcher{datasets: tt.datasets}
			h := &SearchByLabelsHandler{Service: fake}
			result, err := h.ToolAdapter(t.Context(), callReq(map[string]any{"label_query": tt.query}))
			require.NoError(t, err)
			assert.Equal(t, tt.wantIsError, isErrorResult(result))
			assert.Equal(t, 1, fake.listCalls)
			assert.Zero(t, fake.searchCalls)
			text := firstText(t, result)
			for _, want := range tt.wantText {
				assert.Contains(t, text, want)
			}
		})
	}
}
