// Command feedly-mcp runs a Model Context Protocol server exposing the
// Feedly Cloud API as a set of tools for agent runtimes.
package main

import (
	"github.com/alecthomas/kong"

	"github.com/richardwooding/feedly-mcp/cmd"
	"github.com/richardwooding/feedly-mcp/model"
	"github.com/richardwooding/feedly-mcp/version"
)

// CLI defines the command-line interface structure.
type CLI struct {
	model.Globals

	Run cmd.RunCmd `cmd:"" default:"withargs" help:"Run the Feedly MCP server."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("feedly-mcp"),
		kong.Description("MCP server for the Feedly Cloud API"),
		kong.Vars{"version": version.GetFullVersion()},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
