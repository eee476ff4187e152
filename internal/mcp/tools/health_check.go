package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/visual-layer/vl-mcp-server/internal/vlapi"
)

type HealthChecker interface {
	Health(ctx context.Context) (vlapi.HealthStatus, error)
}

type HealthCheckHandler struct {
	Service HealthChecker
}

// ToolAdapter reports the remote API's health. A reachable-but-unhealthy API
// is a normal text result; only unreachability is an error.
func (h *HealthCheckHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hs, err := h.Service.Health(ctx)
	if err != nil {
		return mcp.NewToolResultError("health check failed: " + err.Error()), nil
	}
	status := "unhealthy"
	msg := hs.Message
	if hs.Healthy() {
		status = "healthy"
		if msg == "" {
			msg = "API is healthy and responding"
		}
	} else if msg == "" {
		msg = "API reported a problem"
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"Visual Layer API Health Check:\nStatus: %s\nMessage: %s", status, msg)), nil
}
