package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	mcpGoServer "github.com/mark3labs/mcp-go/server"

	"github.com/i2y/figma-mcp/internal/domain"
)

// RegisterToolsUseCase publishes the tool catalog to an MCP server. Every
// registered handler routes back through the dispatcher so that discovery and
// dispatch are served from the same repository entries.
type RegisterToolsUseCase struct {
	repository ToolRepository
	dispatcher *InvokeToolUseCase
	server     MCPServerAdapter
	logger     *slog.Logger
}

// NewRegisterToolsUseCase creates a new RegisterToolsUseCase.
func NewRegisterToolsUseCase(
	repository ToolRepository,
	dispatcher *InvokeToolUseCase,
	server MCPServerAdapter,
	logger *slog.Logger,
) *RegisterToolsUseCase {
	return &RegisterToolsUseCase{
		repository: repository,
		dispatcher: dispatcher,
		server:     server,
		logger:     logger.With("usecase", "RegisterTools"),
	}
}

// Execute registers every stored tool with the MCP server.
func (uc *RegisterToolsUseCase) Execute(ctx context.Context) error {
	tools, err := uc.repository.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list tools for registration", slog.Any("error", err))
		return fmt.Errorf("failed to list tools for registration: %w", err)
	}

	for _, tool := range tools {
		mcpTool, err := ToMCPTool(tool)
		if err != nil {
			uc.logger.Error("Failed to convert tool", slog.String("tool_name", tool.Name), slog.Any("error", err))
			return err
		}
		name := tool.Name
		uc.server.AddTool(mcpTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return ToCallToolResult(uc.dispatcher.Execute(ctx, name, request.GetArguments())), nil
		})
		uc.logger.Debug("Registered tool", slog.String("tool_name", name))
	}

	uc.logger.Info("Registered tools with MCP server", slog.Int("count", len(tools)))
	return nil
}

// ToMCPTool converts a descriptor into the mcp-go representation, carrying the
// input schema verbatim.
func ToMCPTool(tool domain.Tool) (mcp.Tool, error) {
	raw, err := json.Marshal(tool.InputSchema)
	if err != nil {
		return mcp.Tool{}, fmt.Errorf("failed to marshal input schema for tool %s: %w", tool.Name, err)
	}
	return mcp.NewToolWithRawSchema(tool.Name, tool.Description, raw), nil
}

// ToCallToolResult converts the dispatcher envelope into the MCP result type.
func ToCallToolResult(result domain.ToolResult) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, len(result.Content))
	for _, c := range result.Content {
		content = append(content, mcp.NewTextContent(c.Text))
	}
	return &mcp.CallToolResult{
		Content: content,
		IsError: result.IsError,
	}
}

var _ MCPServerAdapter = (*mcpGoServer.MCPServer)(nil)
