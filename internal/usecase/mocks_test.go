package usecase_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	mcpGoServer "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/mock"

	"github.com/i2y/figma-mcp/internal/domain"
	"github.com/i2y/figma-mcp/internal/usecase"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// MockToolRepository is a mock implementation of the ToolRepository interface.
type MockToolRepository struct {
	mock.Mock
}

func (m *MockToolRepository) Save(ctx context.Context, defs []usecase.ToolDefinition) error {
	args := m.Called(ctx, defs)
	return args.Error(0)
}

func (m *MockToolRepository) List(ctx context.Context) ([]domain.Tool, error) {
	args := m.Called(ctx)
	var tools []domain.Tool
	if args.Get(0) != nil {
		tools = args.Get(0).([]domain.Tool)
	}
	return tools, args.Error(1)
}

func (m *MockToolRepository) FindByName(ctx context.Context, name string) (*usecase.ToolDefinition, error) {
	args := m.Called(ctx, name)
	var def *usecase.ToolDefinition
	if args.Get(0) != nil {
		def = args.Get(0).(*usecase.ToolDefinition)
	}
	return def, args.Error(1)
}

// MockArgumentValidator is a mock implementation of the ArgumentValidator interface.
type MockArgumentValidator struct {
	mock.Mock
}

func (m *MockArgumentValidator) Validate(schema domain.JSONSchemaProps, params map[string]interface{}) error {
	args := m.Called(schema, params)
	return args.Error(0)
}

// MockFigmaAPI is a mock implementation of the FigmaAPI interface.
type MockFigmaAPI struct {
	mock.Mock
}

func (m *MockFigmaAPI) GetMe(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockFigmaAPI) GetFile(ctx context.Context, fileKey string, opts domain.FileOptions) (*domain.File, error) {
	args := m.Called(ctx, fileKey, opts)
	var file *domain.File
	if args.Get(0) != nil {
		file = args.Get(0).(*domain.File)
	}
	return file, args.Error(1)
}

func (m *MockFigmaAPI) GetFileComponents(ctx context.Context, fileKey string) ([]domain.Component, error) {
	args := m.Called(ctx, fileKey)
	var out []domain.Component
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.Component)
	}
	return out, args.Error(1)
}

func (m *MockFigmaAPI) GetFileStyles(ctx context.Context, fileKey string) ([]domain.Style, error) {
	args := m.Called(ctx, fileKey)
	var out []domain.Style
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.Style)
	}
	return out, args.Error(1)
}

func (m *MockFigmaAPI) GetComments(ctx context.Context, fileKey string) ([]domain.Comment, error) {
	args := m.Called(ctx, fileKey)
	var out []domain.Comment
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.Comment)
	}
	return out, args.Error(1)
}

func (m *MockFigmaAPI) PostComment(ctx context.Context, fileKey string, comment domain.NewComment) (*domain.Comment, error) {
	args := m.Called(ctx, fileKey, comment)
	var out *domain.Comment
	if args.Get(0) != nil {
		out = args.Get(0).(*domain.Comment)
	}
	return out, args.Error(1)
}

func (m *MockFigmaAPI) GetFileVersions(ctx context.Context, fileKey string) ([]domain.Version, error) {
	args := m.Called(ctx, fileKey)
	var out []domain.Version
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.Version)
	}
	return out, args.Error(1)
}

func (m *MockFigmaAPI) GetTeamProjects(ctx context.Context, teamID string) ([]domain.Project, error) {
	args := m.Called(ctx, teamID)
	var out []domain.Project
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.Project)
	}
	return out, args.Error(1)
}

// MockMCPServer records the tools registered through AddTool.
type MockMCPServer struct {
	mock.Mock
	handlers map[string]mcpGoServer.ToolHandlerFunc
}

func (m *MockMCPServer) AddTool(tool mcp.Tool, handler mcpGoServer.ToolHandlerFunc) {
	m.Called(tool.Name)
	if m.handlers == nil {
		m.handlers = make(map[string]mcpGoServer.ToolHandlerFunc)
	}
	m.handlers[tool.Name] = handler
}

var (
	_ usecase.ToolRepository    = (*MockToolRepository)(nil)
	_ usecase.ArgumentValidator = (*MockArgumentValidator)(nil)
	_ usecase.FigmaAPI          = (*MockFigmaAPI)(nil)
	_ usecase.MCPServerAdapter  = (*MockMCPServer)(nil)
)
