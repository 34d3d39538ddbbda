package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/i2y/figma-mcp/internal/adapter/outbound/memrepo"
	"github.com/i2y/figma-mcp/internal/adapter/outbound/schemavalidator"
	"github.com/i2y/figma-mcp/internal/domain"
	"github.com/i2y/figma-mcp/internal/usecase"
)

func newCatalogRepo(t *testing.T, api usecase.FigmaAPI) *memrepo.InMemoryToolRepository {
	t.Helper()
	logger := newTestLogger()
	repo := memrepo.NewInMemoryToolRepository(logger)
	require.NoError(t, repo.Save(context.Background(), usecase.NewFigmaToolset(api, logger).Definitions()))
	return repo
}

func TestRegisterToolsUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()

	api := new(MockFigmaAPI)
	api.On("GetComments", mock.Anything, "abc").Return([]domain.Comment{{ID: "c1", Message: "hi"}}, nil).Once()

	repo := newCatalogRepo(t, api)
	dispatcher := usecase.NewInvokeToolUseCase(repo, schemavalidator.New(logger), nil, logger)
	server := new(MockMCPServer)
	server.On("AddTool", mock.AnythingOfType("string")).Times(7)

	uc := usecase.NewRegisterToolsUseCase(repo, dispatcher, server, logger)
	require.NoError(t, uc.Execute(ctx))
	server.AssertExpectations(t)
	require.Len(t, server.handlers, 7)

	t.Run("handler routes through the dispatcher", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Name = usecase.ToolGetComments
		req.Params.Arguments = map[string]interface{}{"fileKey": "abc"}

		res, err := server.handlers[usecase.ToolGetComments](ctx, req)

		require.NoError(t, err)
		assert.False(t, res.IsError)
		require.Len(t, res.Content, 1)
		text, ok := res.Content[0].(mcp.TextContent)
		require.True(t, ok)
		assert.Contains(t, text.Text, `"id": "c1"`)
		api.AssertExpectations(t)
	})

	t.Run("validation failures are in-band", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Name = usecase.ToolGetVersions

		res, err := server.handlers[usecase.ToolGetVersions](ctx, req)

		require.NoError(t, err)
		assert.True(t, res.IsError)
		text := res.Content[0].(mcp.TextContent)
		assert.Contains(t, text.Text, "Invalid arguments for get_versions")
	})
}

func TestRegisterToolsUseCase_ListError(t *testing.T) {
	logger := newTestLogger()
	repo := new(MockToolRepository)
	repo.On("List", mock.Anything).Return(nil, errors.New("unavailable")).Once()
	server := new(MockMCPServer)

	dispatcher := usecase.NewInvokeToolUseCase(repo, new(MockArgumentValidator), nil, logger)
	err := usecase.NewRegisterToolsUseCase(repo, dispatcher, server, logger).Execute(context.Background())

	assert.Error(t, err)
	server.AssertNotCalled(t, "AddTool", mock.Anything)
}

func TestToMCPTool(t *testing.T) {
	tool := usecase.NewFigmaToolset(nil, newTestLogger()).Definitions()[1].Tool

	mcpTool, err := usecase.ToMCPTool(tool)
	require.NoError(t, err)

	assert.Equal(t, usecase.ToolGetFileInfo, mcpTool.Name)
	assert.Equal(t, tool.Description, mcpTool.Description)

	var schema domain.JSONSchemaProps
	require.NoError(t, json.Unmarshal(mcpTool.RawInputSchema, &schema))
	assert.Equal(t, tool.InputSchema, schema)
}

func TestToCallToolResult(t *testing.T) {
	res := usecase.ToCallToolResult(domain.NewErrorResult("Unknown tool: nope"))

	assert.True(t, res.IsError)
	require.Len(t, res.Content, 1)
	assert.Equal(t, mcp.NewTextContent("Unknown tool: nope"), res.Content[0])
}
