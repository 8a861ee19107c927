package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewBatchCommand creates the batch command.
func NewBatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <project-file>...",
		Short: "Generate every entity of one or more projects in parallel",
		Long: `Generate all entities listed in the given project files concurrently.

Entities that would be written to the same file are rejected before anything
is written. The number of concurrent generations is bounded by --workers.`,
		Example: `  stormgen batch project.yaml
  stormgen batch project.yaml --workers 4 --sql-table`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := newGenerator(cmd)
			if err != nil {
				return err
			}
			reqs, err := loadRequests(cmd, args)
			if err != nil {
				return err
			}
			results, err := g.GenerateAll(cmd.Context(), reqs)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Class", "Base", "Path"})
			for _, res := range results {
				base := "object"
				if res.HasReference {
					base = "Storm"
				}
				t.AppendRow(table.Row{res.Class, base, res.Path})
			}
			t.Render()

			m := g.Metrics()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %d classes, %d bytes\n", okMark, m.FilesGenerated, m.TotalBytes)
			return nil
		},
	}
	return cmd
}
