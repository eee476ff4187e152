package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/visual-layer/vl-mcp-server/internal/vlapi"
)

type DatasetGetter interface {
	Dataset(ctx context.Context, id string) (vlapi.Dataset, error)
}

type GetDatasetInfoHandler struct {
	Service DatasetGetter
}

type GetDatasetInfoParams struct {
	DatasetID string `json:"dataset_id" validate:"required"`
}

func (h *GetDatasetInfoHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := GetDatasetInfoParams{DatasetID: stringArg(req, "dataset_id")}
	if err := validate.Struct(params); err != nil {
		return mcp.NewToolResultError("dataset_id parameter is required"), nil
	}

	dataset, err := h.Service.Dataset(ctx, params.DatasetID)
	if err != nil {
		if errors.Is(err, vlapi.ErrNotFound) {
			return mcp.NewToolResultText(fmt.Sprintf("No dataset found with ID: %s", params.DatasetID)), nil
		}
		return mcp.NewToolResultError("error getting dataset info: " + err.Error()), nil
	}
	return mcp.NewToolResultText(formatDatasetInfo(dataset)), nil
}
