package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/i2y/figma-mcp/internal/domain"
)

const instrumentationName = "github.com/i2y/figma-mcp/internal/usecase"

// Outcome labels attached to the invocation counter.
const (
	outcomeSuccess     = "success"
	outcomeUnknownTool = "unknown_tool"
	outcomeInvalidArgs = "invalid_arguments"
	outcomeFailed      = "failed"
)

// InvokeToolUseCase is the dispatcher: it resolves a tool by name, validates the
// arguments and runs the handler. It never returns an error; every failure is
// reported inside the ToolResult.
type InvokeToolUseCase struct {
	repository ToolRepository
	validator  ArgumentValidator
	aliases    map[string]string
	logger     *slog.Logger
	tracer     trace.Tracer
	counter    metric.Int64Counter
}

// NewInvokeToolUseCase creates a new InvokeToolUseCase. aliases maps alternative
// tool names onto canonical ones and may be nil.
func NewInvokeToolUseCase(repo ToolRepository, validator ArgumentValidator, aliases map[string]string, logger *slog.Logger) *InvokeToolUseCase {
	counter, err := otel.Meter(instrumentationName).Int64Counter(
		"figma_mcp.tool.invocations",
		metric.WithDescription("Number of tool invocations by tool and outcome."),
	)
	if err != nil {
		logger.Warn("Failed to create invocation counter", slog.Any("error", err))
	}
	return &InvokeToolUseCase{
		repository: repo,
		validator:  validator,
		aliases:    aliases,
		logger:     logger.With("usecase", "InvokeTool"),
		tracer:     otel.Tracer(instrumentationName),
		counter:    counter,
	}
}

// CanonicalName maps an alias onto its canonical tool name.
func (uc *InvokeToolUseCase) CanonicalName(name string) string {
	if canonical, ok := uc.aliases[name]; ok {
		return canonical
	}
	return name
}

// Execute runs the named tool. The result is always well formed.
func (uc *InvokeToolUseCase) Execute(ctx context.Context, toolName string, params map[string]interface{}) (result domain.ToolResult) {
	invocationID := uuid.NewString()
	name := uc.CanonicalName(toolName)
	log := uc.logger.With(slog.String("tool_name", name), slog.String("invocation_id", invocationID))
	if name != toolName {
		log = log.With(slog.String("alias", toolName))
	}

	ctx, span := uc.tracer.Start(ctx, "tool.invoke", trace.WithAttributes(
		attribute.String("mcp.tool.name", name),
		attribute.String("mcp.invocation.id", invocationID),
	))
	outcome := outcomeSuccess
	defer func() {
		if r := recover(); r != nil {
			log.Error("Tool handler panicked", slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
			outcome = outcomeFailed
			result = domain.NewErrorResult(fmt.Sprintf("Tool %s failed: %v", name, r))
		}
		if result.IsError {
			span.SetStatus(codes.Error, result.Text())
		}
		span.SetAttributes(attribute.String("mcp.tool.outcome", outcome))
		span.End()
		if uc.counter != nil {
			uc.counter.Add(ctx, 1, metric.WithAttributes(
				attribute.String("tool", name),
				attribute.String("outcome", outcome),
			))
		}
	}()

	log.Info("Executing tool invocation")

	// 1. Find Tool Definition
	def, err := uc.repository.FindByName(ctx, name)
	if err != nil {
		outcome = outcomeUnknownTool
		if errors.Is(err, ErrToolNotFound) {
			log.Warn("Unknown tool requested")
			return domain.NewErrorResult(fmt.Sprintf("Unknown tool: %s", toolName))
		}
		log.Error("Failed to look up tool", slog.Any("error", err))
		return domain.NewErrorResult(fmt.Sprintf("Tool %s failed: %v", name, err))
	}

	// 2. Validate Parameters against the input schema
	if params == nil {
		params = map[string]interface{}{}
	}
	if err := uc.validator.Validate(def.Tool.InputSchema, params); err != nil {
		outcome = outcomeInvalidArgs
		log.Warn("Invalid input parameters", slog.Any("error", err))
		return domain.NewErrorResult(fmt.Sprintf("Invalid arguments for %s: %v", name, err))
	}

	// 3. Run the handler
	result, err = def.Handler(ctx, params)
	if err != nil {
		outcome = outcomeFailed
		span.RecordError(err)
		log.Error("Tool handler failed", slog.Any("error", err))
		return domain.NewErrorResult(fmt.Sprintf("Tool %s failed: %v", name, err))
	}
	if len(result.Content) == 0 {
		result = domain.NewTextResult("")
	}
	if result.IsError {
		outcome = outcomeFailed
		log.Warn("Tool reported failure", slog.String("message", result.Text()))
		return result
	}

	log.Info("Tool invocation successful")
	return result
}
