package mcpjsonrpc

// legacyMethodAliases are method names older clients send for tool discovery
// and invocation.
var legacyMethodAliases = map[string]string{
	"mcp.tools.list":   MethodToolsList,
	"tools.list":       MethodToolsList,
	"listTools":        MethodToolsList,
	"mcp.tools.invoke": MethodToolsCall,
}

// MethodNormalizer rewrites alias method names to their canonical form before
// dispatch, so each logical request has exactly one handler.
type MethodNormalizer struct {
	aliases map[string]string
}

// NewMethodNormalizer creates a normalizer knowing the legacy aliases plus extra.
// Entries in extra take precedence.
func NewMethodNormalizer(extra map[string]string) *MethodNormalizer {
	aliases := make(map[string]string, len(legacyMethodAliases)+len(extra))
	for k, v := range legacyMethodAliases {
		aliases[k] = v
	}
	for k, v := range extra {
		aliases[k] = v
	}
	return &MethodNormalizer{aliases: aliases}
}

// Canonical returns the canonical name for method.
func (n *MethodNormalizer) Canonical(method string) string {
	if canonical, ok := n.aliases[method]; ok {
		return canonical
	}
	return method
}

// Normalize rewrites req.Method in place and reports whether it changed.
func (n *MethodNormalizer) Normalize(req *Request) bool {
	canonical := n.Canonical(req.Method)
	if canonical == req.Method {
		return false
	}
	req.Method = canonical
	return true
}
