// Package cmd assembles the vibecraftctl operator CLI: a developer
// convenience for poking a running vibecraftd (or spawning one over
// stdio) without an MCP-speaking agent in the loop.
package cmd

import (
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/kiosk404/vibecraft/pkg/utils/cliflag"
	"github.com/spf13/cobra"
)

// GlobalOptions carry the connection settings every subcommand shares.
type GlobalOptions struct {
	// Endpoint is the daemon's SSE MCP endpoint.
	Endpoint string
	// StdioCommand, when non-empty, spawns this binary and speaks MCP
	// over its stdio instead of connecting to Endpoint.
	StdioCommand string
	// StatusURL is the daemon's diagnostic HTTP base.
	StatusURL string
}

// IOStreams groups the CLI's input and output channels.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// NewDefaultVibeCraftCtlCommand creates the `vibecraftctl` command with
// default streams.
func NewDefaultVibeCraftCtlCommand() *cobra.Command {
	return NewVibeCraftCtlCommand(IOStreams{In: os.Stdin, Out: os.Stdout, ErrOut: os.Stderr})
}

func NewVibeCraftCtlCommand(streams IOStreams) *cobra.Command {
	global := &GlobalOptions{
		Endpoint:  "http://127.0.0.1:8787/mcp/sse",
		StatusURL: "http://127.0.0.1:8787",
	}

	cmds := &cobra.Command{
		Use:   "vibecraftctl",
		Short: "vibecraftctl exercises a running vibecraftd daemon",
		Long: heredoc.Doc(`
			vibecraftctl is the operator CLI for the VibeCraft daemon.

			It connects to a running daemon's SSE endpoint (or spawns one
			over stdio) and exercises tools interactively: send a raw
			command, preview a build, dump capabilities, browse the
			pattern/furniture/template catalog.`),
		Run: runHelp,
	}

	flags := cmds.PersistentFlags()
	flags.SetNormalizeFunc(cliflag.WarnWordSepNormalizeFunc)
	flags.SetNormalizeFunc(cliflag.WordSepNormalizeFunc)

	flags.StringVar(&global.Endpoint, "endpoint", global.Endpoint, "SSE MCP endpoint of the daemon.")
	flags.StringVar(&global.StdioCommand, "stdio-command", global.StdioCommand, "Spawn this binary and speak MCP over its stdio instead of SSE.")
	flags.StringVar(&global.StatusURL, "status-url", global.StatusURL, "Diagnostic HTTP base of the daemon.")

	cmds.AddCommand(
		NewCmdStatus(global, streams),
		NewCmdTools(global, streams),
		NewCmdExec(global, streams),
		NewCmdBuild(global, streams),
		NewCmdCatalog(global, streams),
	)

	cmds.SetGlobalNormalizationFunc(cliflag.WarnWordSepNormalizeFunc)
	return cmds
}

func runHelp(cmd *cobra.Command, args []string) {
	_ = cmd.Help()
}
