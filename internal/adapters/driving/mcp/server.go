package mcp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/loupe-labs/loupe-cli/internal/metrics"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for loupe.
type Server struct {
	ports   *Ports
	metrics *metrics.Metrics
	server  *mcp.Server
}

// NewServer creates a new MCP server with the given ports. A nil
// metrics handle disables instrumentation.
func NewServer(ports *Ports, m *metrics.Metrics) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "loupe",
		Version: Version,
	}

	s := &Server{
		ports:   ports,
		metrics: m,
		server:  mcp.NewServer(impl, nil),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over streamable HTTP on the specified
// address, alongside /healthz and, when metrics are wired, /metrics.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/", handler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		_ = httpServer.Shutdown(context.Background())
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// refreshIndexGauge updates the index entry gauge after a mutation.
func (s *Server) refreshIndexGauge(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	stats, err := s.ports.Search.Stats(ctx)
	if err != nil {
		return
	}
	s.metrics.SetIndexEntries(stats.IndexEntries)
}
