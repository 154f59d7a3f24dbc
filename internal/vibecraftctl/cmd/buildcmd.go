package cmd

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/kiosk404/vibecraft/pkg/codec"
	"github.com/spf13/cobra"
)

// NewCmdBuild runs (or previews) a build from a JSON file holding the
// build tool's arguments: a command list, a script, or a schematic.
func NewCmdBuild(global *GlobalOptions, streams IOStreams) *cobra.Command {
	var (
		file    string
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "build --file <args.json>",
		Short: "Run or preview a build from a JSON argument file",
		Example: heredoc.Doc(`
			# Preview a schematic build without placing anything
			vibecraftctl build --file house.json --preview

			# Run it for real
			vibecraftctl build --file house.json`),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var buildArgs map[string]interface{}
			if err := codec.Unmarshal(data, &buildArgs); err != nil {
				return fmt.Errorf("%s does not parse as a JSON object: %w", file, err)
			}
			if preview {
				buildArgs["preview_only"] = true
			}

			ctx := cmd.Context()
			cli, err := connect(ctx, global)
			if err != nil {
				return err
			}
			defer cli.Close()

			text, isErr, err := callTool(ctx, cli, "build", buildArgs)
			if err != nil {
				return err
			}
			if isErr {
				fmt.Fprintf(streams.Out, "%s %s\n", color.RedString("rejected:"), text)
				return nil
			}

			printBuildResult(streams, decodeResult(text))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "JSON file holding the build arguments (commands/script/schematic).")
	cmd.Flags().BoolVar(&preview, "preview", false, "Force preview mode: expand and validate, dispatch nothing.")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func printBuildResult(streams IOStreams, out map[string]interface{}) {
	outcomes, _ := out["outcomes"].([]interface{})
	for _, entry := range outcomes {
		o, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		status, _ := o["status"].(string)
		command, _ := o["command"].(string)
		switch status {
		case "ok":
			fmt.Fprintf(streams.Out, "  %s %s\n", color.GreenString("ok"), command)
		case "skipped: preview":
			fmt.Fprintf(streams.Out, "  %s %s\n", color.YellowString("skip"), command)
		default:
			fmt.Fprintf(streams.Out, "  %s %s (%v)\n", color.RedString("fail"), command, o["reason"])
		}
	}
	fmt.Fprintf(streams.Out, "%v\n", out["report"])
}
