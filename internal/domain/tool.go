package domain

import "strings"

// Tool describes a callable operation exposed over the Model Context Protocol (MCP).
// Based on MCP Spec 2025-03-26: https://modelcontextprotocol.io/specification/2025-03-26
type Tool struct {
	// Name MUST be unique within the MCP server, e.g. "get_comments".
	Name string `json:"name"`

	// Description is shown to the client so it can decide when to use the tool.
	Description string `json:"description"`

	// InputSchema defines the arguments the tool accepts, in JSON Schema form.
	InputSchema JSONSchemaProps `json:"inputSchema"`
}

// JSONSchemaProps is the subset of JSON Schema used to declare tool arguments.
// It is marshalled as-is into the tool catalog and fed to the argument validator.
type JSONSchemaProps struct {
	Type        string                     `json:"type"`                  // "object", "string", "number", "integer", "boolean", "array"
	Description string                     `json:"description,omitempty"` // Shown to clients
	Properties  map[string]JSONSchemaProps `json:"properties,omitempty"`  // For type "object"
	Required    []string                   `json:"required,omitempty"`    // For type "object"
	Items       *JSONSchemaProps           `json:"items,omitempty"`       // For type "array"
	Enum        []interface{}              `json:"enum,omitempty"`        // Possible values
	Minimum     *float64                   `json:"minimum,omitempty"`
	Maximum     *float64                   `json:"maximum,omitempty"`
}

// Bound returns a pointer to v, for use in Minimum/Maximum.
func Bound(v float64) *float64 {
	return &v
}

// Content types carried by a ToolResult.
const (
	ContentTypeText = "text"
)

// Content is a single item of tool output.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolResult is the envelope returned for every invocation, successful or not.
// Failures carry a human readable message in the text payload; IsError is set
// alongside so clients that understand it need not parse the text.
type ToolResult struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// NewTextResult builds a successful single-text result.
func NewTextResult(text string) ToolResult {
	return ToolResult{Content: []Content{{Type: ContentTypeText, Text: text}}}
}

// NewErrorResult builds a failed single-text result.
func NewErrorResult(text string) ToolResult {
	return ToolResult{Content: []Content{{Type: ContentTypeText, Text: text}}, IsError: true}
}

// Text joins the text payload of all content items.
func (r ToolResult) Text() string {
	parts := make([]string, 0, len(r.Content))
	for _, c := range r.Content {
		if c.Type == ContentTypeText {
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, "\n")
}
