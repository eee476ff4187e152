package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/visual-layer/vl-mcp-server/internal/vlapi"
)

type DatasetLister interface {
	Datasets(ctx context.Context) ([]vlapi.Dataset, error)
}

type GetAllDatasetsHandler struct {
	Service DatasetLister
}

func (h *GetAllDatasetsHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	datasets, err := h.Service.Datasets(ctx)
	if err != nil {
		return mcp.NewToolResultError("error getting datasets: " + err.Error()), nil
	}
	return mcp.NewToolResultText(formatDatasets(datasets)), nil
}
