package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/i2y/figma-mcp/internal/domain"
	"github.com/i2y/figma-mcp/internal/usecase"
)

func TestInvokeToolUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	toolName := "get_file_info"
	schema := domain.JSONSchemaProps{Type: "object", Required: []string{"fileKey"}}
	inputParams := map[string]interface{}{"fileKey": "abc"}

	defWith := func(handler usecase.ToolHandler) *usecase.ToolDefinition {
		return &usecase.ToolDefinition{
			Tool:    domain.Tool{Name: toolName, InputSchema: schema},
			Handler: handler,
		}
	}

	tests := []struct {
		name        string
		mockSetup   func(*MockToolRepository, *MockArgumentValidator, *int)
		aliases     map[string]string
		inToolName  string
		inParams    map[string]interface{}
		wantText    string
		wantIsError bool
		wantCalls   int
	}{
		{
			name: "Success - handler output returned",
			mockSetup: func(repo *MockToolRepository, v *MockArgumentValidator, calls *int) {
				repo.On("FindByName", mock.Anything, toolName).Return(defWith(func(ctx context.Context, args map[string]interface{}) (domain.ToolResult, error) {
					*calls++
					return domain.NewTextResult(`{"name":"Design"}`), nil
				}), nil).Once()
				v.On("Validate", schema, inputParams).Return(nil).Once()
			},
			inToolName: toolName,
			inParams:   inputParams,
			wantText:   `{"name":"Design"}`,
			wantCalls:  1,
		},
		{
			name: "Failure - unknown tool",
			mockSetup: func(repo *MockToolRepository, v *MockArgumentValidator, calls *int) {
				repo.On("FindByName", mock.Anything, "nope").Return(nil, usecase.ErrToolNotFound).Once()
			},
			inToolName:  "nope",
			inParams:    inputParams,
			wantText:    "Unknown tool: nope",
			wantIsError: true,
		},
		{
			name: "Failure - invalid arguments skip the handler",
			mockSetup: func(repo *MockToolRepository, v *MockArgumentValidator, calls *int) {
				repo.On("FindByName", mock.Anything, toolName).Return(defWith(func(ctx context.Context, args map[string]interface{}) (domain.ToolResult, error) {
					*calls++
					return domain.NewTextResult("unreachable"), nil
				}), nil).Once()
				v.On("Validate", schema, map[string]interface{}{}).Return(errors.New("(root): fileKey is required")).Once()
			},
			inToolName:  toolName,
			inParams:    map[string]interface{}{},
			wantText:    "Invalid arguments for get_file_info: (root): fileKey is required",
			wantIsError: true,
		},
		{
			name: "Nil params are validated as an empty object",
			mockSetup: func(repo *MockToolRepository, v *MockArgumentValidator, calls *int) {
				repo.On("FindByName", mock.Anything, toolName).Return(defWith(func(ctx context.Context, args map[string]interface{}) (domain.ToolResult, error) {
					*calls++
					return domain.NewTextResult("ok"), nil
				}), nil).Once()
				v.On("Validate", schema, map[string]interface{}{}).Return(nil).Once()
			},
			inToolName: toolName,
			inParams:   nil,
			wantText:   "ok",
			wantCalls:  1,
		},
		{
			name: "Failure - handler error",
			mockSetup: func(repo *MockToolRepository, v *MockArgumentValidator, calls *int) {
				repo.On("FindByName", mock.Anything, toolName).Return(defWith(func(ctx context.Context, args map[string]interface{}) (domain.ToolResult, error) {
					*calls++
					return domain.ToolResult{}, errors.New("boom")
				}), nil).Once()
				v.On("Validate", schema, inputParams).Return(nil).Once()
			},
			inToolName:  toolName,
			inParams:    inputParams,
			wantText:    "Tool get_file_info failed: boom",
			wantIsError: true,
			wantCalls:   1,
		},
		{
			name: "Failure - handler panic is recovered",
			mockSetup: func(repo *MockToolRepository, v *MockArgumentValidator, calls *int) {
				repo.On("FindByName", mock.Anything, toolName).Return(defWith(func(ctx context.Context, args map[string]interface{}) (domain.ToolResult, error) {
					*calls++
					panic("kaboom")
				}), nil).Once()
				v.On("Validate", schema, inputParams).Return(nil).Once()
			},
			inToolName:  toolName,
			inParams:    inputParams,
			wantText:    "Tool get_file_info failed: kaboom",
			wantIsError: true,
			wantCalls:   1,
		},
		{
			name: "Handler failure result passes through",
			mockSetup: func(repo *MockToolRepository, v *MockArgumentValidator, calls *int) {
				repo.On("FindByName", mock.Anything, toolName).Return(defWith(func(ctx context.Context, args map[string]interface{}) (domain.ToolResult, error) {
					*calls++
					return domain.NewErrorResult("Failed to get file info: not found"), nil
				}), nil).Once()
				v.On("Validate", schema, inputParams).Return(nil).Once()
			},
			inToolName:  toolName,
			inParams:    inputParams,
			wantText:    "Failed to get file info: not found",
			wantIsError: true,
			wantCalls:   1,
		},
		{
			name: "Empty handler content becomes empty text",
			mockSetup: func(repo *MockToolRepository, v *MockArgumentValidator, calls *int) {
				repo.On("FindByName", mock.Anything, toolName).Return(defWith(func(ctx context.Context, args map[string]interface{}) (domain.ToolResult, error) {
					*calls++
					return domain.ToolResult{}, nil
				}), nil).Once()
				v.On("Validate", schema, inputParams).Return(nil).Once()
			},
			inToolName: toolName,
			inParams:   inputParams,
			wantText:   "",
			wantCalls:  1,
		},
		{
			name: "Alias resolves to canonical tool",
			mockSetup: func(repo *MockToolRepository, v *MockArgumentValidator, calls *int) {
				repo.On("FindByName", mock.Anything, toolName).Return(defWith(func(ctx context.Context, args map[string]interface{}) (domain.ToolResult, error) {
					*calls++
					return domain.NewTextResult("ok"), nil
				}), nil).Once()
				v.On("Validate", schema, inputParams).Return(nil).Once()
			},
			aliases:    map[string]string{"getFileInfo": toolName},
			inToolName: "getFileInfo",
			inParams:   inputParams,
			wantText:   "ok",
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			mockRepo := new(MockToolRepository)
			mockValidator := new(MockArgumentValidator)
			handlerCalls := 0
			tt.mockSetup(mockRepo, mockValidator, &handlerCalls)

			uc := usecase.NewInvokeToolUseCase(mockRepo, mockValidator, tt.aliases, newTestLogger())
			result := uc.Execute(ctx, tt.inToolName, tt.inParams)

			assert.Len(result.Content, 1)
			assert.Equal(domain.ContentTypeText, result.Content[0].Type)
			assert.Equal(tt.wantText, result.Text())
			assert.Equal(tt.wantIsError, result.IsError)
			assert.Equal(tt.wantCalls, handlerCalls)

			mockRepo.AssertExpectations(t)
			mockValidator.AssertExpectations(t)
		})
	}
}

func TestInvokeToolUseCase_CanonicalName(t *testing.T) {
	uc := usecase.NewInvokeToolUseCase(new(MockToolRepository), new(MockArgumentValidator), map[string]string{
		"figma_get_file": usecase.ToolGetFileInfo,
	}, newTestLogger())

	assert.Equal(t, usecase.ToolGetFileInfo, uc.CanonicalName("figma_get_file"))
	assert.Equal(t, usecase.ToolGetComments, uc.CanonicalName(usecase.ToolGetComments))
}
