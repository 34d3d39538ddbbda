package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	mcpGoServer "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/i2y/figma-mcp/configs"
	"github.com/i2y/figma-mcp/internal/adapter/inbound/mcphttp"
	"github.com/i2y/figma-mcp/internal/adapter/inbound/mcpstdio"
	"github.com/i2y/figma-mcp/internal/adapter/outbound/figmaapi"
	"github.com/i2y/figma-mcp/internal/adapter/outbound/memrepo"
	"github.com/i2y/figma-mcp/internal/adapter/outbound/schemavalidator"
	"github.com/i2y/figma-mcp/internal/telemetry"
	"github.com/i2y/figma-mcp/internal/usecase"
	"github.com/i2y/figma-mcp/pkg/shared/mcpjsonrpc"
)

func newServeCmd() *cobra.Command {
	var transport string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), transport)
		},
	}
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport mode: stdio or sse")
	return cmd
}

func runServe(parent context.Context, transport string) error {
	if transport != "stdio" && transport != "sse" {
		return fmt.Errorf("invalid transport mode %q (want stdio or sse)", transport)
	}
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === Configuration ===
	cfg, err := configs.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// === Logging ===
	logger, closeLog := newLogger(cfg)
	defer closeLog()
	slog.SetDefault(logger)
	logger.Info("Logger initialized.", slog.String("level", cfg.ParsedLogLevel().String()), slog.String("transport", transport))

	// === OpenTelemetry Initialization ===
	shutdownOtel, err := telemetry.Init(ctx, telemetry.Options{
		ServiceName:    serverName,
		ServiceVersion: serverVersion,
		Endpoint:       cfg.OtelExporterOtlpEndpoint,
		Insecure:       cfg.OtelExporterOtlpInsecure,
	}, logger)
	if err != nil {
		logger.Error("Failed to initialize OpenTelemetry.", slog.Any("error", err))
		return err
	}
	defer func() {
		if err := shutdownOtel(context.Background()); err != nil {
			logger.Error("Failed to shutdown OpenTelemetry TracerProvider.", slog.Any("error", err))
		}
	}()

	// === MCP Server (mark3labs/mcp-go) ===
	mcpSrv := mcpGoServer.NewMCPServer(
		serverName,
		serverVersion,
		mcpGoServer.WithToolCapabilities(false),
		mcpGoServer.WithRecovery(),
	)

	// === Dependency Injection ===
	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	figmaClient := figmaapi.New(httpClient, cfg.APIBaseURL, cfg.AccessToken, logger)

	toolRepo := memrepo.NewInMemoryToolRepository(logger)
	toolset := usecase.NewFigmaToolset(figmaClient, logger)
	if err := toolRepo.Save(ctx, toolset.Definitions()); err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}

	validator := schemavalidator.New(logger)
	invokeUC := usecase.NewInvokeToolUseCase(toolRepo, validator, cfg.ToolAliases, logger)
	serveUC := usecase.NewServeToolsUseCase(toolRepo, logger)
	registerUC := usecase.NewRegisterToolsUseCase(toolRepo, invokeUC, mcpSrv, logger)
	if err := registerUC.Execute(ctx); err != nil {
		return fmt.Errorf("failed to publish tools: %w", err)
	}

	// === Transport Mode Selection ===
	switch transport {
	case "stdio":
		logger.Info("Starting in STDIO mode")
		stdioServer := mcpstdio.New(mcpSrv, invokeUC, mcpjsonrpc.NewMethodNormalizer(cfg.MethodAliases), logger)
		if err := stdioServer.Listen(ctx, os.Stdin, os.Stdout); err != nil {
			logger.Error("STDIO server error", slog.Any("error", err))
			return err
		}
		return nil

	case "sse":
		logger.Info("Starting in SSE mode")
		return runSSE(ctx, stop, cfg, mcpSrv, serveUC, logger)

	default:
		return fmt.Errorf("invalid transport mode %q", transport)
	}
}

func runSSE(ctx context.Context, stop context.CancelFunc, cfg *configs.Config, mcpSrv *mcpGoServer.MCPServer, serveUC *usecase.ServeToolsUseCase, logger *slog.Logger) error {
	sseServer := mcpGoServer.NewSSEServer(mcpSrv, mcpGoServer.WithBaseURL("http://"+cfg.ListenAddr))

	adminMux := http.NewServeMux()
	mcphttp.NewHandlers(serveUC, logger).RegisterAdminRoutes(adminMux)
	adminServer := &http.Server{
		Addr:    cfg.AdminAddr,
		Handler: adminMux,
	}

	go func() {
		logger.Info("Admin HTTP server starting.", slog.String("address", adminServer.Addr))
		if err := adminServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Admin HTTP server failed to start.", slog.Any("error", err))
		}
	}()

	go func() {
		logger.Info("MCP SSE server starting.", slog.String("address", cfg.ListenAddr))
		if err := sseServer.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("MCP SSE server failed to start.", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()

	logger.Info("Shutting down servers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := adminServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Admin HTTP server graceful shutdown failed.", slog.Any("error", err))
	}
	if err := sseServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("MCP SSE server graceful shutdown failed.", slog.Any("error", err))
	}

	logger.Info("Servers shut down gracefully.")
	return nil
}

// newLogger writes to FIGMA_LOG_FILE when set, else stderr. Stdout carries
// protocol frames in stdio mode.
func newLogger(cfg *configs.Config) (*slog.Logger, func()) {
	opts := &slog.HandlerOptions{Level: cfg.ParsedLogLevel()}
	if cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), func() {}
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v, discarding logs\n", cfg.LogFile, err)
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}
	}
	return slog.New(slog.NewTextHandler(logFile, opts)), func() { _ = logFile.Close() }
}
