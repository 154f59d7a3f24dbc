package cmd

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewCmdExec sends one raw game command through the daemon's
// command_execute tool (full sanitization applies).
func NewCmdExec(global *GlobalOptions, streams IOStreams) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <command>",
		Short: "Execute a single game command through the daemon",
		Example: heredoc.Doc(`
			# Place one block
			vibecraftctl exec '/setblock 100 64 200 stone'

			# Say something in chat
			vibecraftctl exec '/say hello from vibecraftctl'`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cli, err := connect(ctx, global)
			if err != nil {
				return err
			}
			defer cli.Close()

			command := strings.Join(args, " ")
			text, isErr, err := callTool(ctx, cli, "command_execute", map[string]interface{}{
				"command": command,
			})
			if err != nil {
				return err
			}
			if isErr {
				fmt.Fprintf(streams.Out, "%s %s\n", color.RedString("rejected:"), text)
				return nil
			}

			out := decodeResult(text)
			if failed, ok := out["failed"].(float64); ok && failed > 0 {
				fmt.Fprintf(streams.Out, "%s %v\n", color.RedString("failed:"), out["outcome"])
				return nil
			}
			fmt.Fprintf(streams.Out, "%s %v\n", color.GreenString("ok:"), out["report"])
			return nil
		},
	}
}
