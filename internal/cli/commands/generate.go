package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	var (
		out    string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:     "generate <schema-file>...",
		Aliases: []string{"gen"},
		Short:   "Generate Storm classes from entity schema files",
		Long: `Generate one Storm mapping class per entity described in the given files.

A file describes either a single entity or a project with an "entities" list.
Classes are written to the destination named in the file, resolved against the
file's directory, or to <class>.py next to it.`,
		Example: `  # Generate a single class
  stormgen generate schema/cliente.yaml

  # Write to a specific file
  stormgen generate schema/cliente.yaml --out models/cliente.py

  # Print the class instead of writing it
  stormgen generate schema/cliente.yaml --dry-run

  # Generate a package per class
  stormgen generate schema/*.yaml --package`,
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
			if out != "" {
				if len(reqs) != 1 {
					return errors.New("--out requires exactly one entity")
				}
				reqs[0].Destination = out
			}

			w := cmd.OutOrStdout()
			for _, req := range reqs {
				if dryRun {
					res, err := g.Render(req)
					if err != nil {
						return fmt.Errorf("render %s: %w", req.Entity, err)
					}
					_, _ = fmt.Fprint(w, res.Source)
					continue
				}
				res, err := g.Generate(req)
				if err != nil {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", failMark, req.Entity)
					return fmt.Errorf("generate %s: %w", req.Entity, err)
				}
				_, _ = fmt.Fprintf(w, "%s %s -> %s\n", okMark, res.Class, res.Path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output file, overrides the schema destination")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the generated source instead of writing it")
	return cmd
}
