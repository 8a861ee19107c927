package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/syssam/stormgen/dialect"
	"github.com/syssam/stormgen/dialect/sqlschema"
	"github.com/syssam/stormgen/schema/field"
)

// NewTypesCommand creates the types command.
func NewTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "Show the logical types and their column keywords",
		Long: `Show every logical attribute type with its Storm property class and the
column keyword used on each backend. A dash marks a type the backend does
not support.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tm := sqlschema.NewTypeMap()
			backends := dialect.Dialects()

			header := table.Row{"Logical", "Storm"}
			for _, b := range backends {
				header = append(header, dialect.DisplayName(b))
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(header)
			for _, typ := range field.Types() {
				row := table.Row{typ.String(), typ.StormType()}
				for _, b := range backends {
					keyword, err := tm.Lookup(b, typ)
					if err != nil {
						keyword = "-"
					}
					row = append(row, keyword)
				}
				t.AppendRow(row)
			}
			t.Render()
			return nil
		},
	}
}
