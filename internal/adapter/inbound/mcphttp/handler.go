package mcphttp

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/i2y/figma-mcp/internal/usecase"
)

// Handlers struct holds dependencies for the HTTP handlers.
type Handlers struct {
	serveToolsUseCase *usecase.ServeToolsUseCase
	logger            *slog.Logger
}

// NewHandlers creates a new Handlers struct.
func NewHandlers(
	serveUC *usecase.ServeToolsUseCase,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		serveToolsUseCase: serveUC,
		logger:            logger.With("component", "mcphttp_handler"),
	}
}

// RegisterAdminRoutes sets up the HTTP routes for admin endpoints.
func (h *Handlers) RegisterAdminRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.HandleFunc("GET /admin/tools", h.handleListTools)
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// handleListTools implements GET /admin/tools
func (h *Handlers) handleListTools(w http.ResponseWriter, r *http.Request) {
	tools, err := h.serveToolsUseCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("Failed to list tools", slog.Any("error", err))
		http.Error(w, "Failed to list tools", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"tools": tools}); err != nil {
		h.logger.Warn("Failed to write tool list", slog.Any("error", err))
	}
}
