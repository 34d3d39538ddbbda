package domain

import "encoding/json"

// Figma REST API entities. Only the fields the tools project or filter on are
// declared; everything lives for the duration of one request.

// User is the authenticated Figma user returned by GET /v1/me.
type User struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
	Email  string `json:"email"`
	ImgURL string `json:"img_url,omitempty"`
	Teams  []Team `json:"teams,omitempty"`
}

// Team is a Figma team the user belongs to.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Project is a project inside a team.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FileOptions carries the optional query parameters of GET /v1/files/:key.
// Zero values are not sent.
type FileOptions struct {
	Version string
	Depth   int
}

// File is the subset of GET /v1/files/:key that the file info tool returns.
type File struct {
	Name         string          `json:"name"`
	LastModified string          `json:"lastModified"`
	Version      string          `json:"version"`
	Document     json.RawMessage `json:"document,omitempty"`
}

// UserRef is the abbreviated user attached to comments, versions and library items.
type UserRef struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
	ImgURL string `json:"img_url,omitempty"`
}

// Component is a published component as listed by GET /v1/files/:key/components.
type Component struct {
	Key          string   `json:"key"`
	FileKey      string   `json:"file_key"`
	NodeID       string   `json:"node_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	CreatedAt    string   `json:"created_at,omitempty"`
	UpdatedAt    string   `json:"updated_at,omitempty"`
	User         *UserRef `json:"user,omitempty"`
}

// StyleType enumerates the kinds of published styles.
type StyleType string

const (
	StyleTypeFill   StyleType = "FILL"
	StyleTypeText   StyleType = "TEXT"
	StyleTypeEffect StyleType = "EFFECT"
	StyleTypeGrid   StyleType = "GRID"
)

// StyleTypes lists every StyleType in catalog order.
var StyleTypes = []StyleType{StyleTypeFill, StyleTypeText, StyleTypeEffect, StyleTypeGrid}

// Style is a published style as listed by GET /v1/files/:key/styles.
type Style struct {
	Key          string    `json:"key"`
	FileKey      string    `json:"file_key"`
	NodeID       string    `json:"node_id"`
	StyleType    StyleType `json:"style_type"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	SortPosition string    `json:"sort_position,omitempty"`
	CreatedAt    string    `json:"created_at,omitempty"`
	UpdatedAt    string    `json:"updated_at,omitempty"`
	User         *UserRef  `json:"user,omitempty"`
}

// Vector is a 2D point.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ClientMeta anchors a comment on the canvas.
type ClientMeta struct {
	X          *float64 `json:"x,omitempty"`
	Y          *float64 `json:"y,omitempty"`
	NodeID     string   `json:"node_id,omitempty"`
	NodeOffset *Vector  `json:"node_offset,omitempty"`
	PageID     string   `json:"page_id,omitempty"`
}

// Comment is a file comment.
type Comment struct {
	ID         string      `json:"id"`
	FileKey    string      `json:"file_key,omitempty"`
	ParentID   string      `json:"parent_id,omitempty"`
	User       *UserRef    `json:"user,omitempty"`
	CreatedAt  string      `json:"created_at,omitempty"`
	ResolvedAt string      `json:"resolved_at,omitempty"`
	Message    string      `json:"message"`
	OrderID    string      `json:"order_id,omitempty"`
	ClientMeta *ClientMeta `json:"client_meta,omitempty"`
}

// PageID returns the page the comment is pinned to, or "" if none.
func (c Comment) PageID() string {
	if c.ClientMeta == nil {
		return ""
	}
	return c.ClientMeta.PageID
}

// NewComment is the body of POST /v1/files/:key/comments.
type NewComment struct {
	Message    string     `json:"message"`
	ClientMeta ClientMeta `json:"client_meta"`
}

// Version is one entry of a file's version history, newest first.
type Version struct {
	ID           string   `json:"id"`
	CreatedAt    string   `json:"created_at"`
	Label        string   `json:"label,omitempty"`
	Description  string   `json:"description,omitempty"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	User         *UserRef `json:"user,omitempty"`
}
