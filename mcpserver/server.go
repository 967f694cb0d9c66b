// Package mcpserver implements the Model Context Protocol server exposing
// Feedly operations as tools.
package mcpserver

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/richardwooding/feedly-mcp/model"
	"github.com/richardwooding/feedly-mcp/version"
)

var sessionCounter int64

// Config holds the configuration for creating a new MCP server
type Config struct {
	Reader    StreamReader
	Marker    MarkerWriter
	Transport model.Transport
}

// Server implements an MCP server for the Feedly Cloud API
type Server struct {
	reader    StreamReader
	marker    MarkerWriter
	sessionID string
	transport model.Transport
}

// generateSessionID creates a unique session ID for this server instance
func generateSessionID() string {
	counter := atomic.AddInt64(&sessionCounter, 1)
	return fmt.Sprintf("feedly-mcp-session-%d-%d", time.Now().UnixNano(), counter)
}

// NewServer creates a new MCP server with the given configuration
func NewServer(config Config) (*Server, error) {
	if config.Transport == model.UndefinedTransport {
		return nil, model.NewFeedlyError(model.ErrorTypeTransport, "transport must be specified").
			WithOperation("create_server").
			WithComponent("mcp_server")
	}
	if config.Reader == nil {
		return nil, model.NewFeedlyError(model.ErrorTypeConfiguration, "StreamReader is required").
			WithOperation("create_server").
			WithComponent("mcp_server")
	}
	if config.Marker == nil {
		return nil, model.NewFeedlyError(model.ErrorTypeConfiguration, "MarkerWriter is required").
			WithOperation("create_server").
			WithComponent("mcp_server")
	}
	return &Server{
		reader:    config.Reader,
		marker:    config.Marker,
		sessionID: generateSessionID(),
		transport: config.Transport,
	}, nil
}

// Run starts the MCP server and handles client connections until the context
// is canceled
func (s *Server) Run(ctx context.Context) error {
	srv := mcp.NewServer(
		&mcp.Implementation{
			Name:    "Feedly MCP Server",
			Version: version.GetVersion(),
		},
		nil,
	)

	s.addTools(srv)

	switch s.transport {
	case model.StdioTransport:
		return srv.Run(ctx, &mcp.StdioTransport{})
	case model.HTTPWithSSETransport:
		return srv.Run(ctx, &mcp.StreamableServerTransport{SessionID: s.sessionID})
	default:
		return model.NewFeedlyError(model.ErrorTypeTransport, "unsupported transport").
			WithOperation("run_server").
			WithComponent("mcp_server")
	}
}
