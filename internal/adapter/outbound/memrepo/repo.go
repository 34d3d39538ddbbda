package memrepo

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/i2y/figma-mcp/internal/domain"
	"github.com/i2y/figma-mcp/internal/usecase"
)

// InMemoryToolRepository provides an in-memory implementation of the ToolRepository.
// Tools are listed in the order they were saved.
type InMemoryToolRepository struct {
	mu     sync.RWMutex
	order  []string                          // Tool names in registration order
	defs   map[string]usecase.ToolDefinition // Map tool name to definition
	logger *slog.Logger
}

// NewInMemoryToolRepository creates a new in-memory repository.
func NewInMemoryToolRepository(logger *slog.Logger) *InMemoryToolRepository {
	return &InMemoryToolRepository{
		defs:   make(map[string]usecase.ToolDefinition),
		logger: logger.With("component", "mem_repo"),
	}
}

// Save appends the given definitions. The whole batch is rejected if any name is
// empty, repeated within the batch or already stored, or if a handler is missing.
func (r *InMemoryToolRepository) Save(ctx context.Context, defs []usecase.ToolDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(defs))
	for i, def := range defs {
		name := def.Tool.Name
		if name == "" {
			r.logger.Error("Rejected tool with empty name", slog.Int("index", i))
			return fmt.Errorf("save failed: tool at index %d has an empty name", i)
		}
		if def.Handler == nil {
			r.logger.Error("Rejected tool without handler", slog.String("tool_name", name))
			return fmt.Errorf("save failed: tool %s has no handler", name)
		}
		_, inBatch := seen[name]
		_, stored := r.defs[name]
		if inBatch || stored {
			r.logger.Error("Rejected duplicate tool", slog.String("tool_name", name))
			return fmt.Errorf("save failed: %w: %s", usecase.ErrDuplicateTool, name)
		}
		seen[name] = struct{}{}
	}

	for _, def := range defs {
		r.defs[def.Tool.Name] = def
		r.order = append(r.order, def.Tool.Name)
	}
	r.logger.Info("Saved tools", slog.Int("count", len(defs)), slog.Int("total_tools", len(r.order)))
	return nil
}

// List returns all tools in registration order.
func (r *InMemoryToolRepository) List(ctx context.Context) ([]domain.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]domain.Tool, 0, len(r.order))
	for _, name := range r.order {
		list = append(list, r.defs[name].Tool)
	}
	r.logger.Debug("Listed tools from repository", slog.Int("count", len(list)))
	return list, nil
}

// FindByName retrieves a tool definition by its name.
func (r *InMemoryToolRepository) FindByName(ctx context.Context, name string) (*usecase.ToolDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[name]
	if !ok {
		r.logger.Debug("Tool definition not found", slog.String("tool_name", name))
		return nil, usecase.ErrToolNotFound
	}
	return &def, nil
}
