package service

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/rollson/internal/services/mcp/domain"
)

// registerDiceTools registers tools that throw or evaluate dice.
func registerDiceTools(mcpServer *mcp.Server, locale string) {
	mcp.AddTool(mcpServer, domain.RollDiceTool(), domain.RollDiceHandler())
	mcp.AddTool(mcpServer, domain.Roll2d6PlusTool(), domain.Roll2d6PlusHandler(locale))
}

// registerRollOnTools registers tools that evaluate rolls on quality and success.
func registerRollOnTools(mcpServer *mcp.Server, locale string) {
	mcp.AddTool(mcpServer, domain.RollOnSuccessTool(), domain.RollOnSuccessHandler(locale))
	mcp.AddTool(mcpServer, domain.CompareRollsTool(), domain.CompareRollsHandler(locale))
}
