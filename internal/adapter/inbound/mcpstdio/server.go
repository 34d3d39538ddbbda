// Package mcpstdio serves MCP over newline-delimited JSON-RPC on stdin/stdout.
//
// Frames are normalized (legacy method aliases) and handled one at a time.
// tools/call goes straight to the dispatcher so that unknown tools and bad
// arguments are reported in-band; everything else is delegated to the mcp-go
// server.
package mcpstdio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/i2y/figma-mcp/internal/domain"
	"github.com/i2y/figma-mcp/internal/usecase"
	"github.com/i2y/figma-mcp/pkg/shared/mcpjsonrpc"
)

// DefaultMaxFrameSize bounds a single newline-delimited frame.
const DefaultMaxFrameSize = 10 * 1024 * 1024

var errFrameTooLong = errors.New("frame too long")

// MessageHandler handles a raw JSON-RPC message. *server.MCPServer satisfies it.
type MessageHandler interface {
	HandleMessage(ctx context.Context, message json.RawMessage) mcp.JSONRPCMessage
}

// ToolInvoker runs a tool and always returns a result envelope.
type ToolInvoker interface {
	Execute(ctx context.Context, toolName string, params map[string]interface{}) domain.ToolResult
}

// Server reads frames from an io.Reader and writes responses to an io.Writer.
type Server struct {
	handler    MessageHandler
	invoker    ToolInvoker
	normalizer *mcpjsonrpc.MethodNormalizer
	logger     *slog.Logger

	// MaxFrameSize is the largest frame accepted, excluding the newline.
	// Larger frames are discarded and answered with an invalid request error.
	MaxFrameSize int

	mu sync.Mutex
}

// New creates a stdio server.
func New(handler MessageHandler, invoker ToolInvoker, normalizer *mcpjsonrpc.MethodNormalizer, logger *slog.Logger) *Server {
	if normalizer == nil {
		normalizer = mcpjsonrpc.NewMethodNormalizer(nil)
	}
	return &Server{
		handler:      handler,
		invoker:      invoker,
		normalizer:   normalizer,
		logger:       logger.With("component", "mcp_stdio"),
		MaxFrameSize: DefaultMaxFrameSize,
	}
}

type frame struct {
	data []byte
	err  error
}

// Listen serves until in is exhausted or ctx is cancelled. Oversized frames
// are answered with an error and skipped; only read failures stop the loop.
func (s *Server) Listen(ctx context.Context, in io.Reader, out io.Writer) error {
	frames := make(chan frame)
	go func() {
		defer close(frames)
		reader := bufio.NewReaderSize(in, 64*1024)
		for {
			data, err := readFrame(reader, s.MaxFrameSize)
			if errors.Is(err, io.EOF) {
				return
			}
			select {
			case frames <- frame{data: data, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil && !errors.Is(err, errFrameTooLong) {
				return
			}
		}
	}()

	s.logger.Info("Listening on stdio")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Stdio server stopping", slog.Any("reason", ctx.Err()))
			return nil
		case f, ok := <-frames:
			if !ok {
				s.logger.Info("Input closed")
				return nil
			}
			var response interface{}
			switch {
			case errors.Is(f.err, errFrameTooLong):
				s.logger.Warn("Discarded oversized frame", slog.Int("max_bytes", s.MaxFrameSize))
				response = mcpjsonrpc.NewError(nil, mcpjsonrpc.CodeInvalidRequest,
					fmt.Sprintf("Invalid request: frame exceeds %d bytes", s.MaxFrameSize))
			case f.err != nil:
				s.logger.Error("Failed to read input", slog.Any("error", f.err))
				return fmt.Errorf("failed to read input: %w", f.err)
			case len(f.data) == 0:
				continue
			default:
				response = s.HandleFrame(ctx, f.data)
			}
			if response == nil {
				continue
			}
			if err := s.write(out, response); err != nil {
				return err
			}
		}
	}
}

// readFrame returns the next line without its line ending. A line longer than
// max is consumed in full and reported as errFrameTooLong. io.EOF is returned
// only when no data remains.
func readFrame(r *bufio.Reader, max int) ([]byte, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, err := r.ReadSlice('\n')
		if !tooLong {
			if len(buf)+len(bytes.TrimRight(chunk, "\r\n")) > max {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if tooLong {
			return nil, errFrameTooLong
		}
		if errors.Is(err, io.EOF) && len(buf) == 0 {
			return nil, io.EOF
		}
		return bytes.TrimRight(buf, "\r\n"), nil
	}
}

// HandleFrame processes one frame and returns the response to write, or nil
// for notifications.
func (s *Server) HandleFrame(ctx context.Context, frame []byte) interface{} {
	var req mcpjsonrpc.Request
	if err := json.Unmarshal(frame, &req); err != nil {
		s.logger.Warn("Failed to parse frame", slog.Any("error", err))
		return mcpjsonrpc.NewError(nil, mcpjsonrpc.CodeParseError, "Parse error")
	}
	if req.Method == "" {
		if req.IsNotification() {
			return nil
		}
		return mcpjsonrpc.NewError(req.ID, mcpjsonrpc.CodeInvalidRequest, "Invalid request: missing method")
	}

	if alias := req.Method; s.normalizer.Normalize(&req) {
		s.logger.Debug("Normalized method alias", slog.String("alias", alias), slog.String("method", req.Method))
	}

	if req.Method == mcpjsonrpc.MethodToolsCall {
		return s.handleToolCall(ctx, &req)
	}

	if req.Version == "" {
		req.Version = mcpjsonrpc.Version
	}
	raw, err := json.Marshal(&req)
	if err != nil {
		return mcpjsonrpc.NewError(req.ID, mcpjsonrpc.CodeInternalError, "Internal error")
	}
	response := s.handler.HandleMessage(ctx, raw)
	if response == nil || req.IsNotification() {
		return nil
	}
	return response
}

func (s *Server) handleToolCall(ctx context.Context, req *mcpjsonrpc.Request) interface{} {
	var params struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			s.logger.Warn("Invalid tools/call params", slog.Any("error", err))
			if req.IsNotification() {
				return nil
			}
			return mcpjsonrpc.NewError(req.ID, mcpjsonrpc.CodeInvalidParams, fmt.Sprintf("Invalid params: %v", err))
		}
	}

	var result domain.ToolResult
	args, err := decodeArguments(params.Arguments)
	if err != nil {
		s.logger.Warn("Arguments are not an object", slog.String("tool_name", params.Name), slog.Any("error", err))
		result = domain.NewErrorResult(fmt.Sprintf("Invalid arguments for %s: arguments must be an object", params.Name))
	} else {
		result = s.invoker.Execute(ctx, params.Name, args)
	}
	if req.IsNotification() {
		return nil
	}
	return mcpjsonrpc.NewResult(req.ID, usecase.ToCallToolResult(result))
}

// decodeArguments accepts an object or null/absent arguments.
func decodeArguments(raw json.RawMessage) (map[string]interface{}, error) {
	args := map[string]interface{}{}
	if len(raw) == 0 || string(raw) == "null" {
		return args, nil
	}
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, err
	}
	return args, nil
}

func (s *Server) write(out io.Writer, response interface{}) error {
	data, err := json.Marshal(response)
	if err != nil {
		s.logger.Error("Failed to encode response", slog.Any("error", err))
		return nil
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}
