package usecase

import (
	"context"
	"errors"

	"github.com/i2y/figma-mcp/internal/domain"
	"github.com/mark3labs/mcp-go/mcp"
	mcpGoServer "github.com/mark3labs/mcp-go/server"
)

// Standard errors returned by use cases and adapters.
var (
	ErrToolNotFound  = errors.New("tool not found")
	ErrDuplicateTool = errors.New("duplicate tool name")
)

// --- Remote API ---

// FigmaAPI is the subset of the Figma REST API the tools call.
// Implementations authenticate with the process-wide credential.
type FigmaAPI interface {
	GetMe(ctx context.Context) (*domain.User, error)
	GetFile(ctx context.Context, fileKey string, opts domain.FileOptions) (*domain.File, error)
	GetFileComponents(ctx context.Context, fileKey string) ([]domain.Component, error)
	GetFileStyles(ctx context.Context, fileKey string) ([]domain.Style, error)
	GetComments(ctx context.Context, fileKey string) ([]domain.Comment, error)
	PostComment(ctx context.Context, fileKey string, comment domain.NewComment) (*domain.Comment, error)
	GetFileVersions(ctx context.Context, fileKey string) ([]domain.Version, error)
	GetTeamProjects(ctx context.Context, teamID string) ([]domain.Project, error)
}

// --- Tool Registry ---

// ToolHandler runs one tool against already-validated arguments.
// A returned error is converted into a failed ToolResult by the dispatcher.
type ToolHandler func(ctx context.Context, args map[string]interface{}) (domain.ToolResult, error)

// ToolDefinition pairs a tool descriptor with its handler.
type ToolDefinition struct {
	Tool    domain.Tool
	Handler ToolHandler
}

// ToolRepository stores the tool catalog.
// List MUST return tools in the order they were saved.
type ToolRepository interface {
	// Save appends the definitions to the catalog. Names must be unique.
	Save(ctx context.Context, defs []ToolDefinition) error

	// List returns every stored tool descriptor in registration order.
	List(ctx context.Context) ([]domain.Tool, error)

	// FindByName returns the definition registered under name.
	FindByName(ctx context.Context, name string) (*ToolDefinition, error)
}

// ArgumentValidator checks tool arguments against a tool's input schema.
type ArgumentValidator interface {
	Validate(schema domain.JSONSchemaProps, args map[string]interface{}) error
}

// --- MCP Server Abstraction ---

// MCPServerAdapter is the part of the mcp-go server the registration use case needs.
type MCPServerAdapter interface {
	AddTool(tool mcp.Tool, handlerFunc mcpGoServer.ToolHandlerFunc)
}
