package mcp

import (
	"fmt"

	"github.com/visual-layer/vl-mcp-server/internal/config"
	"github.com/visual-layer/vl-mcp-server/internal/logging"
	"github.com/visual-layer/vl-mcp-server/internal/mcp/tools"
	"github.com/visual-layer/vl-mcp-server/internal/vlapi"
)

type Config struct {
	ToolAdapters map[string]ToolAdapter
	Logger       logging.Logger
}

// DefaultConfig wires the four dataset tools to a Visual Layer API client
// built from the process configuration. Missing credentials fail here, before
// the server starts serving.
func DefaultConfig() (Config, error) {
	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration: %w", err)
	}

	baseLogger := logging.New(logging.ForLevel(config.LogLevel()))
	client := vlapi.New(vlapi.Config{
		BaseURL:   config.BaseURL(),
		APIKey:    config.APIKey(),
		APISecret: config.APISecret(),
		Timeout:   config.RequestTimeout(),
		RateLimit: config.APIRateLimit(),
		Logger:    baseLogger.WithName("vlapi"),
	})

	return Config{
		ToolAdapters: map[string]ToolAdapter{
			"get_all_datasets": &tools.GetAllDatasetsHandler{Service: client},
			"health_check":     &tools.HealthCheckHandler{Service: client},
			"get_dataset_info": &tools.GetDatasetInfoHandler{Service: client},
			"search_by_labels": &tools.SearchByLabelsHandler{Service: client},
		},
		Logger: baseLogger.WithName("mcp"),
	}, nil
}
