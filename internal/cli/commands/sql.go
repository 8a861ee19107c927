package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/stormgen/compiler/gen"
	"github.com/syssam/stormgen/dialect"
)

// NewSQLCommand creates the sql command.
func NewSQLCommand() *cobra.Command {
	var ddl bool
	cmd := &cobra.Command{
		Use:   "sql <schema-file>",
		Short: "Print the table definition of an entity",
		Long: `Print the column list of an entity table for the selected backend, as it
appears in the sql_table attribute of the generated class.

With --ddl a CREATE TABLE statement for the mapped table is printed
instead, including the surrogate key column.`,
		Example: `  stormgen sql schema/cliente.yaml
  stormgen sql schema/cliente.yaml --backend postgres --ddl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := newGenerator(cmd)
			if err != nil {
				return err
			}
			reqs, err := loadRequests(cmd, args)
			if err != nil {
				return err
			}
			cfg := g.Config()
			for _, req := range reqs {
				if err := req.Validate(); err != nil {
					return err
				}
				backend := req.Backend
				if backend == "" {
					backend = cfg.Backend
				}
				backend, err = dialect.Normalize(backend)
				if err != nil {
					return err
				}
				var literal string
				if ddl {
					literal, err = gen.CreateTable(cfg.TypeMap, backend, req.ClassName(), req.Attributes)
				} else {
					literal, err = gen.SQLTable(cfg.TypeMap, backend, req.Attributes)
				}
				if err != nil {
					return fmt.Errorf("%s: %w", req.Entity, err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "-- %s (%s)\n%s\n", req.ClassName(), dialect.DisplayName(backend), literal)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&ddl, "ddl", false, "print a CREATE TABLE statement")
	return cmd
}
