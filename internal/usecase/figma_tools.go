package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/i2y/figma-mcp/internal/domain"
)

// Canonical tool names.
const (
	ToolGetUserInfo   = "get_user_info"
	ToolGetFileInfo   = "get_file_info"
	ToolGetComponents = "get_components"
	ToolGetComments   = "get_comments"
	ToolCreateComment = "create_comment"
	ToolGetStyles     = "get_styles"
	ToolGetVersions   = "get_versions"
)

var errFileKeyRequired = errors.New("fileKey must not be empty")

// FigmaToolset implements the Figma tools on top of a FigmaAPI.
type FigmaToolset struct {
	api    FigmaAPI
	logger *slog.Logger
}

// NewFigmaToolset creates the toolset. api may be nil when only the catalog is needed.
func NewFigmaToolset(api FigmaAPI, logger *slog.Logger) *FigmaToolset {
	return &FigmaToolset{
		api:    api,
		logger: logger.With("component", "figma_tools"),
	}
}

// Definitions returns the tool catalog in display order.
func (f *FigmaToolset) Definitions() []ToolDefinition {
	return []ToolDefinition{
		{Tool: userInfoTool(), Handler: bind("get user info", f.getUserInfo)},
		{Tool: fileInfoTool(), Handler: bind("get file info", f.getFileInfo)},
		{Tool: componentsTool(), Handler: bind("get components", f.getComponents)},
		{Tool: commentsTool(), Handler: bind("get comments", f.getComments)},
		{Tool: createCommentTool(), Handler: bind("create comment", f.createComment)},
		{Tool: stylesTool(), Handler: bind("get styles", f.getStyles)},
		{Tool: versionsTool(), Handler: bind("get versions", f.getVersions)},
	}
}

// bind adapts a typed handler to ToolHandler. Arguments are decoded into T,
// remote failures become a failed ToolResult and successes are rendered as
// indented JSON.
func bind[T any](action string, fn func(context.Context, T) (any, error)) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (domain.ToolResult, error) {
		var args T
		if err := decodeArguments(params, &args); err != nil {
			return domain.ToolResult{}, err
		}
		out, err := fn(ctx, args)
		if err != nil {
			return domain.NewErrorResult(fmt.Sprintf("Failed to %s: %v", action, err)), nil
		}
		text, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return domain.ToolResult{}, fmt.Errorf("failed to encode result: %w", err)
		}
		return domain.NewTextResult(string(text)), nil
	}
}

func decodeArguments(params map[string]interface{}, target any) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to encode arguments: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to decode arguments: %w", err)
	}
	return nil
}

// --- get_user_info ---

type userInfoArgs struct {
	IncludeTeams    bool `json:"includeTeams"`
	IncludeProjects bool `json:"includeProjects"`
}

// UserInfo is the projection returned by get_user_info.
type UserInfo struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Teams    []domain.Team `json:"teams"`
	Projects []TeamProject `json:"projects"`
}

// TeamProject is a project tagged with its owning team.
type TeamProject struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	TeamID string `json:"teamId"`
}

func (f *FigmaToolset) getUserInfo(ctx context.Context, args userInfoArgs) (any, error) {
	user, err := f.api.GetMe(ctx)
	if err != nil {
		return nil, err
	}

	info := UserInfo{
		ID:       user.ID,
		Name:     user.Handle,
		Email:    user.Email,
		Teams:    []domain.Team{},
		Projects: []TeamProject{},
	}

	if args.IncludeTeams {
		for _, team := range user.Teams {
			info.Teams = append(info.Teams, domain.Team{ID: team.ID, Name: team.Name})
		}
	}

	if args.IncludeProjects {
		for _, team := range user.Teams {
			projects, err := f.api.GetTeamProjects(ctx, team.ID)
			if err != nil {
				f.logger.Warn("Skipping team projects", slog.String("team_id", team.ID), slog.Any("error", err))
				continue
			}
			for _, p := range projects {
				info.Projects = append(info.Projects, TeamProject{ID: p.ID, Name: p.Name, TeamID: team.ID})
			}
		}
	}

	return info, nil
}

// --- get_file_info ---

type fileInfoArgs struct {
	FileKey string `json:"fileKey"`
	Version string `json:"version"`
	Depth   int    `json:"depth"`
}

func (f *FigmaToolset) getFileInfo(ctx context.Context, args fileInfoArgs) (any, error) {
	if args.FileKey == "" {
		return nil, errFileKeyRequired
	}
	return f.api.GetFile(ctx, args.FileKey, domain.FileOptions{
		Version: args.Version,
		Depth:   args.Depth,
	})
}

// --- get_components ---

type componentsArgs struct {
	FileKey       string `json:"fileKey"`
	IncludeStyles bool   `json:"includeStyles"`
}

type componentsResult struct {
	Components []domain.Component `json:"components"`
	Styles     []domain.Style     `json:"styles,omitempty"`
}

func (f *FigmaToolset) getComponents(ctx context.Context, args componentsArgs) (any, error) {
	if args.FileKey == "" {
		return nil, errFileKeyRequired
	}
	components, err := f.api.GetFileComponents(ctx, args.FileKey)
	if err != nil {
		return nil, err
	}
	result := componentsResult{Components: nonNil(components)}

	if args.IncludeStyles {
		styles, err := f.api.GetFileStyles(ctx, args.FileKey)
		if err != nil {
			return nil, err
		}
		result.Styles = nonNil(styles)
	}
	return result, nil
}

// --- get_comments ---

type commentsArgs struct {
	FileKey string `json:"fileKey"`
	PageID  string `json:"pageId"`
}

type commentsResult struct {
	Comments []domain.Comment `json:"comments"`
}

func (f *FigmaToolset) getComments(ctx context.Context, args commentsArgs) (any, error) {
	if args.FileKey == "" {
		return nil, errFileKeyRequired
	}
	comments, err := f.api.GetComments(ctx, args.FileKey)
	if err != nil {
		return nil, err
	}
	if args.PageID != "" {
		comments = filterCommentsByPage(comments, args.PageID)
	}
	return commentsResult{Comments: nonNil(comments)}, nil
}

// --- create_comment ---

type createCommentArgs struct {
	FileKey  string         `json:"fileKey"`
	Message  string         `json:"message"`
	Position *domain.Vector `json:"position"`
	NodeID   string         `json:"nodeId"`
	PageID   string         `json:"pageId"`
}

func (f *FigmaToolset) createComment(ctx context.Context, args createCommentArgs) (any, error) {
	if args.FileKey == "" || args.Message == "" || args.Position == nil {
		return nil, errors.New("fileKey, message and position are required")
	}
	x, y := args.Position.X, args.Position.Y
	return f.api.PostComment(ctx, args.FileKey, domain.NewComment{
		Message: args.Message,
		ClientMeta: domain.ClientMeta{
			X:      &x,
			Y:      &y,
			NodeID: args.NodeID,
			PageID: args.PageID,
		},
	})
}

// --- get_styles ---

type stylesArgs struct {
	FileKey    string             `json:"fileKey"`
	StyleTypes []domain.StyleType `json:"styleTypes"`
}

type stylesResult struct {
	Styles []domain.Style `json:"styles"`
}

func (f *FigmaToolset) getStyles(ctx context.Context, args stylesArgs) (any, error) {
	if args.FileKey == "" {
		return nil, errFileKeyRequired
	}
	styles, err := f.api.GetFileStyles(ctx, args.FileKey)
	if err != nil {
		return nil, err
	}
	if len(args.StyleTypes) > 0 {
		styles = filterStylesByType(styles, args.StyleTypes)
	}
	return stylesResult{Styles: nonNil(styles)}, nil
}

// --- get_versions ---

type versionsArgs struct {
	FileKey string `json:"fileKey"`
	Limit   int    `json:"limit"`
	Before  string `json:"before"`
}

type versionsResult struct {
	Versions []domain.Version `json:"versions"`
}

func (f *FigmaToolset) getVersions(ctx context.Context, args versionsArgs) (any, error) {
	if args.FileKey == "" {
		return nil, errFileKeyRequired
	}
	versions, err := f.api.GetFileVersions(ctx, args.FileKey)
	if err != nil {
		return nil, err
	}
	return versionsResult{Versions: nonNil(pageVersions(versions, args.Before, args.Limit))}, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
