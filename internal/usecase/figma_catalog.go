package usecase

import "github.com/i2y/figma-mcp/internal/domain"

func fileKeyProp() domain.JSONSchemaProps {
	return domain.JSONSchemaProps{Type: "string", Description: "Unique key of the Figma file (from its URL)"}
}

func userInfoTool() domain.Tool {
	return domain.Tool{
		Name:        ToolGetUserInfo,
		Description: "Read the current Figma user, optionally with their teams and projects",
		InputSchema: domain.JSONSchemaProps{
			Type: "object",
			Properties: map[string]domain.JSONSchemaProps{
				"includeTeams":    {Type: "boolean", Description: "Include the teams the user belongs to"},
				"includeProjects": {Type: "boolean", Description: "Include the projects of every team"},
			},
		},
	}
}

func fileInfoTool() domain.Tool {
	return domain.Tool{
		Name:        ToolGetFileInfo,
		Description: "Get the details and document tree of a Figma file",
		InputSchema: domain.JSONSchemaProps{
			Type: "object",
			Properties: map[string]domain.JSONSchemaProps{
				"fileKey": fileKeyProp(),
				"version": {Type: "string", Description: "Version ID to fetch; latest when omitted"},
				"depth": {
					Type:        "integer",
					Description: "Maximum depth of the node tree to traverse (1-4)",
					Minimum:     domain.Bound(1),
					Maximum:     domain.Bound(4),
				},
			},
			Required: []string{"fileKey"},
		},
	}
}

func componentsTool() domain.Tool {
	return domain.Tool{
		Name:        ToolGetComponents,
		Description: "List the published components of a Figma file",
		InputSchema: domain.JSONSchemaProps{
			Type: "object",
			Properties: map[string]domain.JSONSchemaProps{
				"fileKey":       fileKeyProp(),
				"includeStyles": {Type: "boolean", Description: "Also fetch the file's published styles"},
			},
			Required: []string{"fileKey"},
		},
	}
}

func commentsTool() domain.Tool {
	return domain.Tool{
		Name:        ToolGetComments,
		Description: "List the comments of a Figma file",
		InputSchema: domain.JSONSchemaProps{
			Type: "object",
			Properties: map[string]domain.JSONSchemaProps{
				"fileKey": fileKeyProp(),
				"pageId":  {Type: "string", Description: "Only return comments pinned to this page"},
			},
			Required: []string{"fileKey"},
		},
	}
}

func createCommentTool() domain.Tool {
	return domain.Tool{
		Name:        ToolCreateComment,
		Description: "Add a comment to a Figma file",
		InputSchema: domain.JSONSchemaProps{
			Type: "object",
			Properties: map[string]domain.JSONSchemaProps{
				"fileKey": fileKeyProp(),
				"message": {Type: "string", Description: "Comment text"},
				"position": {
					Type:        "object",
					Description: "Canvas position of the comment",
					Properties: map[string]domain.JSONSchemaProps{
						"x": {Type: "number", Description: "X coordinate"},
						"y": {Type: "number", Description: "Y coordinate"},
					},
					Required: []string{"x", "y"},
				},
				"nodeId": {Type: "string", Description: "Node to attach the comment to"},
				"pageId": {Type: "string", Description: "Page to pin the comment to"},
			},
			Required: []string{"fileKey", "message", "position"},
		},
	}
}

func stylesTool() domain.Tool {
	enum := make([]interface{}, 0, len(domain.StyleTypes))
	for _, t := range domain.StyleTypes {
		enum = append(enum, string(t))
	}
	return domain.Tool{
		Name:        ToolGetStyles,
		Description: "List the published styles of a Figma file",
		InputSchema: domain.JSONSchemaProps{
			Type: "object",
			Properties: map[string]domain.JSONSchemaProps{
				"fileKey": fileKeyProp(),
				"styleTypes": {
					Type:        "array",
					Description: "Style types to return; all types when omitted",
					Items:       &domain.JSONSchemaProps{Type: "string", Enum: enum},
				},
			},
			Required: []string{"fileKey"},
		},
	}
}

func versionsTool() domain.Tool {
	return domain.Tool{
		Name:        ToolGetVersions,
		Description: "Get the version history of a Figma file, newest first",
		InputSchema: domain.JSONSchemaProps{
			Type: "object",
			Properties: map[string]domain.JSONSchemaProps{
				"fileKey": fileKeyProp(),
				"limit": {
					Type:        "integer",
					Description: "Maximum number of versions to return (1-100)",
					Minimum:     domain.Bound(1),
					Maximum:     domain.Bound(100),
				},
				"before": {Type: "string", Description: "Only return versions older than this version ID"},
			},
			Required: []string{"fileKey"},
		},
	}
}
