package cmd

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"
)

// NewCmdTools lists every tool the daemon advertises, with wrapped
// descriptions in an aligned table.
func NewCmdTools(global *GlobalOptions, streams IOStreams) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools the daemon advertises over MCP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cli, err := connect(ctx, global)
			if err != nil {
				return err
			}
			defer cli.Close()

			res, err := cli.ListTools(ctx, mcp.ListToolsRequest{})
			if err != nil {
				return err
			}

			table := uitable.New()
			table.MaxColWidth = 72
			table.Wrap = true
			table.AddRow("NAME", "DESCRIPTION")
			for _, tool := range res.Tools {
				table.AddRow(tool.Name, wordwrap.WrapString(tool.Description, 72))
			}

			fmt.Fprintln(streams.Out, table)
			return nil
		},
	}
}
