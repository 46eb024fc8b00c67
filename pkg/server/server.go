// Package server exposes a tools.Registry as an MCP server over stdio or
// streamable HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/worldofchami/shopify-mcp/pkg/tools"
)

const (
	Name    = "shopify"
	Version = "0.1.0"

	shutdownTimeout = 5 * time.Second
)

type Server struct {
	registry *tools.Registry
	logger   *zap.Logger
	server   *mcp.Server
}

// New registers every tool in registry on a fresh MCP server.
func New(registry *tools.Registry, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		registry: registry,
		logger:   logger.Named("server"),
		server: mcp.NewServer(&mcp.Implementation{
			Name:    Name,
			Version: Version,
		}, &mcp.ServerOptions{
			HasTools: true,
		}),
	}

	for _, t := range registry.List() {
		s.server.AddTool(&mcp.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		}, s.toolHandler(t.Name))
	}
	return s
}

func (s *Server) MCP() *mcp.Server {
	return s.server
}

func (s *Server) toolHandler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args map[string]any
		if req != nil && req.Params != nil && len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				return textResult("Invalid arguments: " + err.Error()), nil
			}
		}
		return textResult(s.registry.Call(ctx, name, args)), nil
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// RunStdio serves MCP over stdin/stdout until ctx is done or the client
// disconnects.
func (s *Server) RunStdio(ctx context.Context) error {
	s.logger.Info("serving MCP over stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Router serves /mcp (streamable HTTP), /healthz and, when gatherer is not
// nil, /metrics.
func (s *Server) Router(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
	r.Handle("/mcp", streamable)
	return r
}

// ServeHTTP listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) ServeHTTP(ctx context.Context, addr string, gatherer prometheus.Gatherer) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Router(gatherer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving MCP over streamable HTTP", zap.String("addr", addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("http shutdown failed", zap.Error(err))
			return err
		}
		return nil
	}
}
