package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"

	"github.com/visual-layer/vl-mcp-server/internal/vlapi"
)

// maxFieldLen caps individual metadata values in search output so a single
// embedding vector or URL does not drown the rest of the result.
const maxFieldLen = 200

func formatDatasets(datasets []vlapi.Dataset) string {
	if len(datasets) == 0 {
		return "No datasets found."
	}
	blocks := make([]string, 0, len(datasets))
	for i, d := range datasets {
		blocks = append(blocks, fmt.Sprintf(
			"Dataset %d:\nID: %s\nName: %s\nDescription: %s\nCreated: %s\nStatus: %s",
			i+1, orNA(d.ID), orNA(d.DisplayName),
			orDefault(d.Description, "No description available"),
			orNA(d.CreatedAt), orNA(d.Status)))
	}
	return fmt.Sprintf("Found %d datasets:\n", len(datasets)) + strings.Join(blocks, "\n---\n")
}

func formatDatasetInfo(d vlapi.Dataset) string {
	size := "N/A"
	if d.SizeBytes > 0 {
		size = humanize.Bytes(d.SizeBytes)
	}
	return fmt.Sprintf(
		"Dataset Information:\nID: %s\nName: %s\nDescription: %s\nCreated: %s\nStatus: %s\nType: %s\nSize: %s",
		orNA(d.ID), orNA(d.DisplayName),
		orDefault(d.Description, "No description available"),
		orNA(d.CreatedAt), orNA(d.Status), orNA(d.Type), size)
}

// formatSearchRows renders every metadata field present on each image row.
// The column set is owned by the remote service and varies per dataset, so
// rows are walked dynamically instead of through a fixed struct.
func formatSearchRows(rows []json.RawMessage) string {
	blocks := make([]string, 0, len(rows))
	for i, raw := range rows {
		var b strings.Builder
		fmt.Fprintf(&b, "Result %d:", i+1)
		gjson.ParseBytes(raw).ForEach(func(key, value gjson.Result) bool {
			fmt.Fprintf(&b, "\n%s: %s", key.String(), truncate(value.String(), maxFieldLen))
			return true
		})
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n---\n")
}

// columnNames lists the metadata fields present on a search row.
func columnNames(row json.RawMessage) []string {
	var cols []string
	gjson.ParseBytes(row).ForEach(func(key, _ gjson.Result) bool {
		cols = append(cols, key.String())
		return true
	})
	return cols
}

func formatMatchingDatasets(datasets []vlapi.Dataset) string {
	blocks := make([]string, 0, len(datasets))
	for i, d := range datasets {
		blocks = append(blocks, fmt.Sprintf(
			"Dataset %d:\nID: %s\nName: %s\nDescription: %s\nType: %s\nStatus: %s",
			i+1, orNA(d.ID), orNA(d.DisplayName),
			orDefault(d.Description, "No description available"),
			orNA(d.Type), orNA(d.Status)))
	}
	return strings.Join(blocks, "\n---\n")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

func orNA(s string) string {
	return orDefault(s, "N/A")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
