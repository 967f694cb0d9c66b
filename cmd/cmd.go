// Package cmd implements the CLI commands for the feedly-mcp server.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/richardwooding/feedly-mcp/feedly"
	"github.com/richardwooding/feedly-mcp/mcpserver"
	"github.com/richardwooding/feedly-mcp/model"
)

// RunCmd starts the MCP server.
type RunCmd struct {
	Transport         string        `name:"transport" default:"stdio" enum:"stdio,http-with-sse" help:"Transport to use for the MCP server."`
	AccessToken       string        `name:"access-token" env:"FEEDLY_ACCESS_TOKEN" help:"Feedly access token (from FEEDLY_ACCESS_TOKEN)."`
	BaseURL           string        `name:"base-url" env:"FEEDLY_BASE_URL" default:"https://cloud.feedly.com/v3" help:"Feedly API base URL."`
	Timeout           time.Duration `name:"timeout" default:"30s" help:"Timeout for Feedly API requests."`
	RequestsPerSecond float64       `name:"requests-per-second" default:"2" help:"Rate limit for outbound API requests."`
	BurstCapacity     int           `name:"burst-capacity" default:"5" help:"Burst capacity for the rate limiter."`
	CircuitBreaker    bool          `name:"circuit-breaker" default:"true" negatable:"" help:"Fail fast after repeated upstream outages."`
}

// Run executes the command, blocking until the transport shuts down or the
// process receives SIGINT/SIGTERM.
func (c *RunCmd) Run(globals *model.Globals) error {
	transport, err := model.ParseTransport(c.Transport)
	if err != nil {
		return err
	}

	client, err := feedly.NewClient(feedly.Config{
		AccessToken:           c.AccessToken,
		BaseURL:               c.BaseURL,
		Timeout:               c.Timeout,
		RequestsPerSecond:     c.RequestsPerSecond,
		BurstCapacity:         c.BurstCapacity,
		CircuitBreakerEnabled: &c.CircuitBreaker,
	})
	if err != nil {
		return err
	}

	server, err := mcpserver.NewServer(mcpserver.Config{
		Transport: transport,
		Reader:    client,
		Marker:    client,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx)
}
