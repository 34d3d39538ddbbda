package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/i2y/figma-mcp/internal/domain"
	"github.com/i2y/figma-mcp/internal/usecase"
)

func newToolsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Print the tool catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			var tools []domain.Tool
			for _, def := range usecase.NewFigmaToolset(nil, logger).Definitions() {
				tools = append(tools, def.Tool)
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{"tools": tools})
			}
			printTools(cmd.OutOrStdout(), tools)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalog as JSON")
	return cmd
}

func printTools(w io.Writer, tools []domain.Tool) {
	name := color.New(color.FgCyan, color.Bold).SprintFunc()
	required := color.New(color.FgYellow).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	for _, tool := range tools {
		fmt.Fprintf(w, "%s\n  %s\n", name(tool.Name), tool.Description)

		isRequired := make(map[string]bool, len(tool.InputSchema.Required))
		for _, r := range tool.InputSchema.Required {
			isRequired[r] = true
		}
		props := make([]string, 0, len(tool.InputSchema.Properties))
		for p := range tool.InputSchema.Properties {
			props = append(props, p)
		}
		sort.Strings(props)

		for _, p := range props {
			prop := tool.InputSchema.Properties[p]
			label := p
			if isRequired[p] {
				label = required(p + "*")
			}
			fmt.Fprintf(w, "    %-16s %-8s %s\n", label, faint(prop.Type), prop.Description)
		}
		fmt.Fprintln(w)
	}
}
