package vlapi

import (
	"encoding/json"
	"strings"
)

// Dataset is a read-only projection of a remote dataset. Nothing is cached
// locally; every tool call fetches fresh state.
type Dataset struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	Status      string `json:"status"`
	Type        string `json:"type"`
	SizeBytes   uint64 `json:"size_bytes"`
	ImageCount  int    `json:"n_images"`
}

// HealthStatus is the remote API's self-reported health.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Healthy reports whether the remote API considers itself healthy.
func (h HealthStatus) Healthy() bool {
	return strings.EqualFold(h.Status, "healthy") || strings.EqualFold(h.Status, "ok")
}

// SearchOperator selects the matching semantics of a label search.
type SearchOperator string

const (
	OperatorIs         SearchOperator = "IS"
	OperatorIsNot      SearchOperator = "IS_NOT"
	OperatorIsOneOf    SearchOperator = "IS_ONE_OF"
	OperatorIsNotOneOf SearchOperator = "IS_NOT_ONE_OF"
)

// SearchOperators lists all operators accepted by the remote API.
func SearchOperators() []SearchOperator {
	return []SearchOperator{OperatorIs, OperatorIsNot, OperatorIsOneOf, OperatorIsNotOneOf}
}

// SearchResult holds label-search matches. The metadata columns attached to
// each image are owned by the remote service and vary per dataset, so rows
// are kept as raw JSON for the formatter to walk.
type SearchResult struct {
	Images []json.RawMessage `json:"results"`
	Total  int               `json:"total"`
}

type labelSearchRequest struct {
	Labels   []string       `json:"labels"`
	Operator SearchOperator `json:"search_operator"`
}
