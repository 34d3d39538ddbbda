// Package figmaapi is a client for the Figma REST API.
package figmaapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/i2y/figma-mcp/internal/domain"
	"github.com/i2y/figma-mcp/internal/usecase"
)

// DefaultBaseURL is the public Figma REST endpoint.
const DefaultBaseURL = "https://api.figma.com/v1"

// APIError represents an error response from the Figma API.
// Endpoints report the reason in either "err" or "message".
type APIError struct {
	Status  int    `json:"status"`
	Err     string `json:"err"`
	Message string `json:"message,omitempty"`
}

func (e *APIError) Error() string {
	reason := e.Err
	if reason == "" {
		reason = e.Message
	}
	return fmt.Sprintf("figma API error (status %d): %s", e.Status, reason)
}

// RateLimitError indicates the API rate limit was exceeded.
type RateLimitError struct {
	RetryAfter string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after: %s", e.RetryAfter)
}

// Client implements usecase.FigmaAPI using standard net/http.
type Client struct {
	client      *http.Client
	baseURL     string
	accessToken string
	logger      *slog.Logger
	tracer      trace.Tracer
}

// New creates a Figma client. A nil http.Client uses http.DefaultClient and an
// empty baseURL uses DefaultBaseURL.
func New(client *http.Client, baseURL, accessToken string, logger *slog.Logger) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		client:      client,
		baseURL:     baseURL,
		accessToken: accessToken,
		logger:      logger.With("component", "figma_client"),
		tracer:      otel.Tracer("github.com/i2y/figma-mcp/internal/adapter/outbound/figmaapi"),
	}
}

var _ usecase.FigmaAPI = (*Client)(nil)

// GetMe returns the user that owns the access token.
func (c *Client) GetMe(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/me", "/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetFile fetches a file. Version and depth are sent only when set.
func (c *Client) GetFile(ctx context.Context, fileKey string, opts domain.FileOptions) (*domain.File, error) {
	query := url.Values{}
	if opts.Version != "" {
		query.Set("version", opts.Version)
	}
	if opts.Depth > 0 {
		query.Set("depth", strconv.Itoa(opts.Depth))
	}

	var file domain.File
	if err := c.do(ctx, http.MethodGet, "/files/{key}", "/files/"+url.PathEscape(fileKey), query, nil, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// GetFileComponents lists the published components of a file.
func (c *Client) GetFileComponents(ctx context.Context, fileKey string) ([]domain.Component, error) {
	var resp struct {
		Meta struct {
			Components []domain.Component `json:"components"`
		} `json:"meta"`
	}
	if err := c.do(ctx, http.MethodGet, "/files/{key}/components", "/files/"+url.PathEscape(fileKey)+"/components", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Meta.Components, nil
}

// GetFileStyles lists the published styles of a file.
func (c *Client) GetFileStyles(ctx context.Context, fileKey string) ([]domain.Style, error) {
	var resp struct {
		Meta struct {
			Styles []domain.Style `json:"styles"`
		} `json:"meta"`
	}
	if err := c.do(ctx, http.MethodGet, "/files/{key}/styles", "/files/"+url.PathEscape(fileKey)+"/styles", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Meta.Styles, nil
}

// GetComments lists the comments of a file.
func (c *Client) GetComments(ctx context.Context, fileKey string) ([]domain.Comment, error) {
	var resp struct {
		Comments []domain.Comment `json:"comments"`
	}
	if err := c.do(ctx, http.MethodGet, "/files/{key}/comments", "/files/"+url.PathEscape(fileKey)+"/comments", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Comments, nil
}

// PostComment creates a comment and returns it.
func (c *Client) PostComment(ctx context.Context, fileKey string, comment domain.NewComment) (*domain.Comment, error) {
	var created domain.Comment
	if err := c.do(ctx, http.MethodPost, "/files/{key}/comments", "/files/"+url.PathEscape(fileKey)+"/comments", nil, comment, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetFileVersions lists the version history of a file, newest first.
func (c *Client) GetFileVersions(ctx context.Context, fileKey string) ([]domain.Version, error) {
	var resp struct {
		Versions []domain.Version `json:"versions"`
	}
	if err := c.do(ctx, http.MethodGet, "/files/{key}/versions", "/files/"+url.PathEscape(fileKey)+"/versions", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Versions, nil
}

// GetTeamProjects lists the projects of a team.
func (c *Client) GetTeamProjects(ctx context.Context, teamID string) ([]domain.Project, error) {
	var resp struct {
		Projects []domain.Project `json:"projects"`
	}
	if err := c.do(ctx, http.MethodGet, "/teams/{id}/projects", "/teams/"+url.PathEscape(teamID)+"/projects", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Projects, nil
}

// do performs one authenticated request and decodes the JSON response into out.
// route is the path template used to name the span; path is the concrete path.
func (c *Client) do(ctx context.Context, method, route, path string, query url.Values, body, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "figma "+method+" "+route,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("http.route", route),
			attribute.String("url.path", path),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	log := c.logger.With(slog.String("method", method), slog.String("url", u))

	var requestBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		requestBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, requestBody)
	if err != nil {
		log.Error("Failed to create HTTP request", slog.Any("error", err))
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Figma-Token", c.accessToken)
	req.Header.Set("Accept", "application/json")
	if requestBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug("Executing HTTP request")
	resp, err := c.client.Do(req)
	if err != nil {
		log.Error("HTTP request failed", slog.Any("error", err))
		return fmt.Errorf("request execution failed: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	log = log.With(slog.Int("status_code", resp.StatusCode))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", slog.Any("error", err))
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		log.Warn("Rate limited by Figma API")
		return &RateLimitError{RetryAfter: resp.Header.Get("Retry-After")}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn("Received non-success status code", slog.String("response_body", string(respBody)))
		var apiErr APIError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && (apiErr.Err != "" || apiErr.Message != "") {
			if apiErr.Status == 0 {
				apiErr.Status = resp.StatusCode
			}
			return &apiErr
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		log.Error("Failed to unmarshal JSON response", slog.Any("error", err))
		return fmt.Errorf("failed to parse response: %w", err)
	}
	log.Debug("Received HTTP response")
	return nil
}
