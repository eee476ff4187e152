package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/visual-layer/vl-mcp-server/internal/logging"
)

const (
	serverName    = "visual-layer"
	serverVersion = "1.0.0"
)

type ToolAdapter interface {
	ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

type Server struct {
	MCP *server.MCPServer
	log logging.Logger
}

func New(cfg Config) *Server {
	mcpServer := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
	)

	// Register tools with their proper schemas using the mcp-go builder pattern.
	toolDefinitions := map[string]mcp.Tool{
		"get_all_datasets": mcp.NewTool("get_all_datasets",
			mcp.WithDescription("Get a list of all datasets available in Visual Layer. Returns ID, name, description, creation date and status for each dataset."),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		"health_check": mcp.NewTool("health_check",
			mcp.WithDescription("Check the health of the Visual Layer API. Returns the health status and any message supplied by the API."),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		"get_dataset_info": mcp.NewTool("get_dataset_info",
			mcp.WithDescription("Get detailed information about a specific dataset: ID, name, description, creation date, status, type and size."),
			mcp.WithString("dataset_id",
				mcp.Required(),
				mcp.Description("The ID of the dataset to get information about"),
			),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		"search_by_labels": mcp.NewTool("search_by_labels",
			mcp.WithDescription("Search for images within datasets using label criteria. Returns matching images with all available metadata fields."),
			mcp.WithString("label_query",
				mcp.Required(),
				mcp.Description("The label or text to search for in dataset labels"),
			),
			mcp.WithString("dataset_id",
				mcp.Description("Optional dataset ID to scope the search. When omitted the search covers all datasets."),
			),
			mcp.WithString("search_operator",
				mcp.Description("Search operator to apply to the label query (default: IS_ONE_OF)"),
				mcp.Enum("IS", "IS_NOT", "IS_ONE_OF", "IS_NOT_ONE_OF"),
				mcp.DefaultString("IS_ONE_OF"),
			),
			mcp.WithReadOnlyHintAnnotation(true),
		),
	}

	for name, adapter := range cfg.ToolAdapters {
		tool, ok := toolDefinitions[name]
		if !ok {
			continue
		}
		mcpServer.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return adapter.ToolAdapter(ctx, req)
		})
	}

	return &Server{
		MCP: mcpServer,
		log: logging.New(cfg.Logger.Logr()),
	}
}

const instructions = `You are connected to a Visual Layer MCP server.

Available tools let you list datasets, check API health, inspect a single
dataset, and search images by label. All tools are read-only; nothing you call
here mutates remote state.`

// ServeStdio runs the MCP server over stdin/stdout until ctx is cancelled.
// This is the standard transport used by local agent integrations.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := server.NewStdioServer(s.MCP)
	s.log.Info("mcp server listening on stdio")
	if err := srv.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

// ServeHTTP runs the MCP server as a Streamable HTTP server on addr until ctx
// is cancelled.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	streamSrv := server.NewStreamableHTTPServer(s.MCP,
		server.WithEndpointPath("/mcp"),
		server.WithStateLess(true),
	)

	s.log.Info("mcp server listening on http", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := streamSrv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("mcp http server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.log.Info("mcp server shutting down")
		if err := streamSrv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("mcp http server shutdown error: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}
