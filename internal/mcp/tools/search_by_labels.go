package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/visual-layer/vl-mcp-server/internal/vlapi"
)

type LabelSearcher interface {
	SearchLabels(ctx context.Context, datasetID string, labels []string, op vlapi.SearchOperator) (vlapi.SearchResult, error)
	Datasets(ctx context.Context) ([]vlapi.Dataset, error)
}

type SearchByLabelsHandler struct {
	Service LabelSearcher
}

type SearchByLabelsParams struct {
	LabelQuery     string `json:"label_query" validate:"required"`
	DatasetID      string `json:"dataset_id"`
	SearchOperator string `json:"search_operator" validate:"omitempty,oneof=IS IS_NOT IS_ONE_OF IS_NOT_ONE_OF"`
}

func (h *SearchByLabelsHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := SearchByLabelsParams{
		LabelQuery:     stringArg(req, "label_query"),
		DatasetID:      stringArg(req, "dataset_id"),
		SearchOperator: stringArg(req, "search_operator"),
	}
	if err := validate.Struct(params); err != nil {
		return mcp.NewToolResultError(searchValidationMessage(params, err)), nil
	}

	operator := vlapi.OperatorIsOneOf
	if params.SearchOperator != "" {
		operator = vlapi.SearchOperator(params.SearchOperator)
	}

	if params.DatasetID != "" {
		return h.searchDataset(ctx, params.DatasetID, params.LabelQuery, operator)
	}
	return h.searchAllDatasets(ctx, params.LabelQuery)
}

// searchDataset runs a remote label search scoped to a single dataset.
func (h *SearchByLabelsHandler) searchDataset(ctx context.Context, datasetID, labelQuery string, operator vlapi.SearchOperator) (*mcp.CallToolResult, error) {
	result, err := h.Service.SearchLabels(ctx, datasetID, []string{labelQuery}, operator)
	if err != nil {
		if errors.Is(err, vlapi.ErrNotFound) {
			return mcp.NewToolResultText(fmt.Sprintf("No dataset found with ID: %s", datasetID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("error searching dataset %s: %v", datasetID, err)), nil
	}
	if len(result.Images) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf(
			"No images found with label %q using operator %q in dataset %s",
			labelQuery, operator, datasetID)), nil
	}

	header := fmt.Sprintf(
		"Found %d images with label %q using operator %q in dataset %s.\n\nAvailable columns: %s\n\nResults:\n",
		result.Total, labelQuery, operator, datasetID,
		strings.Join(columnNames(result.Images[0]), ", "))
	return mcp.NewToolResultText(header + formatSearchRows(result.Images)), nil
}

// searchAllDatasets matches the query against dataset name, description and
// type across the full dataset list. One HTTP call, filtering is local.
func (h *SearchByLabelsHandler) searchAllDatasets(ctx context.Context, labelQuery string) (*mcp.CallToolResult, error) {
	datasets, err := h.Service.Datasets(ctx)
	if err != nil {
		return mcp.NewToolResultError("error searching datasets by labels: " + err.Error()), nil
	}
	if len(datasets) == 0 {
		return mcp.NewToolResultText("No datasets found to search through."), nil
	}

	query := strings.ToLower(labelQuery)
	var matching []vlapi.Dataset
	for _, d := range datasets {
		text := strings.ToLower(d.DisplayName + " " + d.Description + " " + d.Type)
		if strings.Contains(text, query) {
			matching = append(matching, d)
		}
	}
	if len(matching) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf(
			"No datasets found matching the label query: %q", labelQuery)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Found %d datasets matching %q:\n", len(matching), labelQuery) +
		formatMatchingDatasets(matching)), nil
}

func searchValidationMessage(params SearchByLabelsParams, err error) string {
	if fe, ok := firstFieldError(err); ok && fe.StructField() == "SearchOperator" {
		return fmt.Sprintf("invalid search operator %q, valid options are: IS, IS_NOT, IS_ONE_OF, IS_NOT_ONE_OF",
			params.SearchOperator)
	}
	return "label_query parameter is required"
}
