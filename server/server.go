// Package server hosts the MCP server over its two transports: an SSE
// endpoint pair mounted inside a gin HTTP server, and plain stdio for
// clients that spawn the process directly.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
	"github.com/taskwire/taskwire/pkg/logger"
	"github.com/taskwire/taskwire/pkg/monitoring"
	"github.com/taskwire/taskwire/pkg/version"
)

// Transport values accepted by Config.
const (
	TransportSSE   = "sse"
	TransportStdio = "stdio"
)

// Config holds server configuration.
type Config struct {
	Host            string
	Port            int
	BaseURL         string // advertised to SSE clients in the endpoint event
	Transport       string
	ShutdownTimeout time.Duration
}

// Validate validates the server configuration.
func (c *Config) Validate() error {
	if c.Host == "" {
		return errors.New("host is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.Port)
	}
	if c.Transport != TransportSSE && c.Transport != TransportStdio {
		return fmt.Errorf("unsupported transport %q", c.Transport)
	}
	return nil
}

// FullAddress returns the host:port pair the HTTP server binds to.
func (c *Config) FullAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Server runs the MCP server and its HTTP host.
type Server struct {
	config         *Config
	router         *gin.Engine
	httpServer     *http.Server
	mcpServer      *server.MCPServer
	sseServer      *server.SSEServer
	monitoring     *monitoring.Service
	cancelRequests context.CancelFunc
}

// NewServer wires the MCP server, its SSE transport and the HTTP host.
// monitoring may be nil when the exposition endpoint is disabled.
func NewServer(config *Config, tools *Tools, mon *monitoring.Service) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware("/healthz"))

	mcpServer := newMCPServer(tools)
	sseOpts := []server.SSEOption{}
	if config.BaseURL != "" {
		sseOpts = append(sseOpts, server.WithBaseURL(config.BaseURL))
	}
	sseServer := server.NewSSEServer(mcpServer, sseOpts...)

	s := &Server{
		config:     config,
		router:     router,
		mcpServer:  mcpServer,
		sseServer:  sseServer,
		monitoring: mon,
		httpServer: &http.Server{
			Addr:    config.FullAddress(),
			Handler: router,
			// No write or full-read deadline: the SSE stream stays open for
			// the lifetime of each client.
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}

	s.setupRoutes()
	return s, nil
}

// setupRoutes configures all server routes.
func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.healthzHandler)

	if s.monitoring != nil && s.monitoring.Enabled() {
		s.router.GET(s.monitoring.Path(), gin.WrapH(s.monitoring.ExporterHandler()))
	}

	// The SSE server routes on the exact request path, so both endpoints
	// share one wrapped handler.
	sse := gin.WrapH(s.sseServer)
	s.router.GET("/sse", sse)
	s.router.POST("/message", sse)
}

// healthzHandler handles health check requests.
func (s *Server) healthzHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   version.Get().Version,
	})
}

// Start runs the configured transport and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	if s.config.Transport == TransportStdio {
		return s.serveStdio(ctx)
	}
	return s.serveHTTP(ctx)
}

func (s *Server) serveHTTP(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Starting MCP server", "address", s.config.FullAddress(), "transport", s.config.Transport)

	// Request contexts derive from serveCtx, so tool handlers inherit the
	// process logger and open SSE streams end when Stop cancels it.
	serveCtx, cancel := context.WithCancel(ctx)
	s.cancelRequests = cancel
	s.httpServer.BaseContext = func(net.Listener) context.Context { return serveCtx }

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		} else {
			errChan <- nil
		}
	}()

	// Give the server time to start and check for immediate failures
	select {
	case err := <-errChan:
		if err != nil {
			return err
		}
	case <-time.After(100 * time.Millisecond):
		// Server started successfully
	case <-ctx.Done():
		return ctx.Err()
	}

	log.Info("MCP server started", "sse_endpoint", "/sse", "message_endpoint", "/message")
	return s.waitForShutdown(ctx, errChan)
}

func (s *Server) serveStdio(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Starting MCP server on stdio")

	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetContextFunc(func(reqCtx context.Context) context.Context {
		return logger.ContextWithLogger(reqCtx, log)
	})

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := stdio.Listen(sigCtx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server failed: %w", err)
	}
	log.Info("MCP server stopped gracefully")
	return nil
}

// Stop gracefully stops the server.
func (s *Server) Stop(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down MCP server")

	if s.cancelRequests != nil {
		s.cancelRequests()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		return err
	}

	log.Info("MCP server stopped gracefully")
	return nil
}

// waitForShutdown waits for shutdown signals and handles graceful shutdown.
func (s *Server) waitForShutdown(ctx context.Context, errChan <-chan error) error {
	log := logger.FromContext(ctx)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-ctx.Done():
		log.Debug("Context canceled, shutting down server")
		return s.Stop(context.WithoutCancel(ctx))
	case sig := <-quit:
		log.Info("Received shutdown signal", "signal", sig.String())
		return s.Stop(ctx)
	case err := <-errChan:
		if err != nil {
			log.Error("HTTP server failed", "error", err)
			if stopErr := s.Stop(ctx); stopErr != nil {
				log.Error("Failed to stop server after HTTP failure", "error", stopErr)
			}
			return err
		}
		return s.Stop(ctx)
	}
}
