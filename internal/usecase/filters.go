package usecase

import "github.com/i2y/figma-mcp/internal/domain"

// filterCommentsByPage keeps comments pinned to pageID, preserving order.
// The Figma API has no server-side page filter.
func filterCommentsByPage(comments []domain.Comment, pageID string) []domain.Comment {
	out := make([]domain.Comment, 0, len(comments))
	for _, c := range comments {
		if c.PageID() == pageID {
			out = append(out, c)
		}
	}
	return out
}

// filterStylesByType keeps styles whose type is one of types, preserving order.
func filterStylesByType(styles []domain.Style, types []domain.StyleType) []domain.Style {
	wanted := make(map[domain.StyleType]struct{}, len(types))
	for _, t := range types {
		wanted[t] = struct{}{}
	}
	out := make([]domain.Style, 0, len(styles))
	for _, s := range styles {
		if _, ok := wanted[s.StyleType]; ok {
			out = append(out, s)
		}
	}
	return out
}

// pageVersions applies "before" then "limit" to a newest-first version list.
// Entries strictly after the version with id before are kept; an unknown id
// leaves the list unchanged. A positive limit then truncates the result.
func pageVersions(versions []domain.Version, before string, limit int) []domain.Version {
	if before != "" {
		for i, v := range versions {
			if v.ID == before {
				versions = versions[i+1:]
				break
			}
		}
	}
	if limit > 0 && len(versions) > limit {
		versions = versions[:limit]
	}
	return versions
}
