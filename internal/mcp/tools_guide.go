// tools_guide.go implements hive_guide.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/hive/guide"
	"github.com/jpl-au/hive/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// getGuide handles hive_guide tool calls. An unknown topic returns the
// list of topics.
func (h *handlers) getGuide(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := getString(req, "topic", "")

	content, err := guide.Get(topic)
	log.Event("mcp:guide", "read").Author("mcp").Detail("topic", topic).Write(err)

	if err != nil {
		topics, listErr := guide.List()
		if listErr != nil {
			return nil, fmt.Errorf("listing guides: %w", listErr)
		}
		return jsonResult(map[string]any{
			"error":            err.Error(),
			"available_topics": topics,
		})
	}
	return mcp.NewToolResultText(content), nil
}
