package mcpjsonrpc

import "encoding/json"

// Based on JSON-RPC 2.0 Specification: https://www.jsonrpc.org/specification

// Version is the only supported protocol version.
const Version = "2.0"

// Request represents a JSON-RPC request or notification. Params and ID are
// kept raw so a frame can be rewritten and forwarded without losing precision.
type Request struct {
	Version string          `json:"jsonrpc"`          // MUST be "2.0"
	Method  string          `json:"method"`           // Method to be invoked
	Params  json.RawMessage `json:"params,omitempty"` // Parameters (structured value or array)
	ID      json.RawMessage `json:"id,omitempty"`     // Request identifier (string, number, or null)
}

// IsNotification reports whether the request carries no id.
func (r *Request) IsNotification() bool {
	return len(r.ID) == 0
}

// Response represents a JSON-RPC response object.
type Response struct {
	Version string          `json:"jsonrpc"`          // MUST be "2.0"
	Result  interface{}     `json:"result,omitempty"` // Required on success
	Error   *Error          `json:"error,omitempty"`  // Required on error
	ID      json.RawMessage `json:"id"`               // Must match request ID (or null if could not be determined)
}

// NewResult builds a success response for id.
func NewResult(id json.RawMessage, result interface{}) Response {
	return Response{Version: Version, Result: result, ID: nullID(id)}
}

// NewError builds an error response for id.
func NewError(id json.RawMessage, code int, message string) Response {
	return Response{Version: Version, Error: &Error{Code: code, Message: message}, ID: nullID(id)}
}

func nullID(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return json.RawMessage("null")
	}
	return id
}

// Error represents a JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`    // Error code
	Message string `json:"message"` // Error message
}

// Error codes (subset, based on JSON-RPC spec)
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Canonical MCP method names handled specially by the transports.
const (
	MethodToolsList = "tools/list"
	MethodToolsCall = "tools/call"
)
