package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/i2y/figma-mcp/internal/domain"
)

// ServeToolsUseCase answers listTools: the Figma tool catalog with input
// schemas, in registration order. It backs the admin endpoint and the tools
// command; the MCP tools/list reply is produced by the protocol server.
type ServeToolsUseCase struct {
	repository ToolRepository
	logger     *slog.Logger
}

// NewServeToolsUseCase creates a new ServeToolsUseCase.
func NewServeToolsUseCase(repository ToolRepository, logger *slog.Logger) *ServeToolsUseCase {
	return &ServeToolsUseCase{
		repository: repository,
		logger:     logger.With("usecase", "ServeTools"),
	}
}

// Execute returns the registered Figma tools. An empty catalog is reported as
// an empty, non-nil slice so it serializes as [].
func (uc *ServeToolsUseCase) Execute(ctx context.Context) ([]domain.Tool, error) {
	uc.logger.Debug("Listing Figma tools")
	tools, err := uc.repository.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list tools from repository", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list tools from repository: %w", err)
	}
	if tools == nil {
		tools = []domain.Tool{}
	}

	names := make([]string, len(tools))
	for i, tool := range tools {
		names[i] = tool.Name
	}
	uc.logger.Debug("Listed Figma tools", slog.Int("count", len(tools)), slog.Any("tools", names))
	return tools, nil
}
