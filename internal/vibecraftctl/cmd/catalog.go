package cmd

import (
	"context"
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"
)

// NewCmdCatalog browses the daemon's static catalog through the lookup
// tools: patterns, furniture, templates.
func NewCmdCatalog(global *GlobalOptions, streams IOStreams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the pattern/furniture/template catalog",
		Run:   runHelp,
	}

	cmd.AddCommand(
		newCatalogListCommand(global, streams, "patterns", "pattern_lookup", "patterns"),
		newCatalogListCommand(global, streams, "furniture", "furniture_lookup", "furniture"),
		newCatalogListCommand(global, streams, "templates", "template_lookup", "templates"),
	)
	return cmd
}

func newCatalogListCommand(global *GlobalOptions, streams IOStreams, use, tool, listKey string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [name]",
		Short: "List " + use + ", or show one entry in detail",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cli, err := connect(ctx, global)
			if err != nil {
				return err
			}
			defer cli.Close()

			if len(args) == 0 {
				return printCatalogNames(ctx, cli, streams, tool, listKey)
			}
			return printCatalogEntry(ctx, cli, streams, tool, args[0])
		},
	}
}

func printCatalogNames(ctx context.Context, cli *client.Client, streams IOStreams, tool, listKey string) error {
	text, isErr, err := callTool(ctx, cli, tool, nil)
	if err != nil {
		return err
	}
	if isErr {
		return fmt.Errorf("%s", text)
	}

	out := decodeResult(text)
	names, _ := out[listKey].([]interface{})
	for _, n := range names {
		fmt.Fprintln(streams.Out, n)
	}
	return nil
}

func printCatalogEntry(ctx context.Context, cli *client.Client, streams IOStreams, tool, name string) error {
	text, isErr, err := callTool(ctx, cli, tool, map[string]interface{}{"name": name})
	if err != nil {
		return err
	}
	if isErr {
		return fmt.Errorf("%s", text)
	}

	out := decodeResult(text)
	table := uitable.New()
	table.MaxColWidth = 72
	table.Wrap = true
	for _, key := range []string{"name", "description"} {
		if v, ok := out[key].(string); ok {
			table.AddRow(key+":", wordwrap.WrapString(v, 72))
		}
	}
	fmt.Fprintln(streams.Out, table)

	// Type-specific remainder (rows, commands, schematic, notes) prints
	// raw so it can be pasted straight into a build file.
	for _, key := range []string{"palette", "rows", "footprint", "commands", "schematic", "notes"} {
		if v, ok := out[key]; ok && v != nil {
			fmt.Fprintf(streams.Out, "%s: %v\n", key, v)
		}
	}
	return nil
}
