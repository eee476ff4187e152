package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/visual-layer/vl-mcp-server/internal/config"
	"github.com/visual-layer/vl-mcp-server/internal/mcp"
)

func main() {
	root := &cobra.Command{
		Use:          "vl-mcp-server",
		Short:        "Visual Layer MCP server",
		RunE:         run,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("transport", "stdio", "MCP transport (stdio or http)")
	root.PersistentFlags().String("host", "0.0.0.0", "HTTP host (http transport only)")
	root.PersistentFlags().Int("port", 8000, "HTTP port (http transport only)")
	root.PersistentFlags().String("base-url", "", "Visual Layer API base URL")
	root.PersistentFlags().Duration("timeout", 30*time.Second, "Per-request timeout for Visual Layer API calls")
	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	config.Init(root)

	if err := root.Execute(); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := mcp.DefaultConfig()
	if err != nil {
		return err
	}
	srv := mcp.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch config.Transport() {
	case "stdio":
		return srv.ServeStdio(ctx)
	case "http":
		addr := net.JoinHostPort(config.Host(), strconv.Itoa(config.Port()))
		return srv.ServeHTTP(ctx, addr)
	default:
		return fmt.Errorf("unknown transport %q (want stdio or http)", config.Transport())
	}
}
