// Package commands implements the stormgen subcommands.
package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/syssam/stormgen/compiler/gen"
	"github.com/syssam/stormgen/compiler/load"
	"github.com/syssam/stormgen/internal/cli/config"
)

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	failMark = color.New(color.FgRed).Sprint("✗")
)

// newGenerator builds a generator from the configuration stored in the
// command context.
func newGenerator(cmd *cobra.Command) (*gen.Generator, error) {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	opts := []gen.Option{
		gen.WithBackend(cfg.Backend),
		gen.WithSQLTable(cfg.SQLTable),
		gen.WithLogger(config.GetLogger(ctx)),
	}
	if cfg.Template != "" {
		opts = append(opts, gen.WithTemplatePath(cfg.Template))
	}
	if cfg.Workers > 0 {
		opts = append(opts, gen.WithWorkers(cfg.Workers))
	}
	c, err := gen.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return gen.New(c), nil
}

// loadRequests reads schema or project files into generation requests.
func loadRequests(cmd *cobra.Command, paths []string) ([]*gen.Request, error) {
	var reqs []*gen.Request
	for _, path := range paths {
		schemas, err := load.LoadSchemas(path)
		if err != nil {
			return nil, err
		}
		for _, s := range schemas {
			req, err := buildRequest(cmd, s)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			reqs = append(reqs, req)
		}
	}
	return reqs, nil
}

// buildRequest decodes s and applies command-line overrides. Relative
// destinations are resolved against the directory of the schema file; a
// missing destination defaults to <class>.py there.
func buildRequest(cmd *cobra.Command, s *load.Schema) (*gen.Request, error) {
	cfg := config.FromContext(cmd.Context())
	req, err := gen.NewRequest(s)
	if err != nil {
		return nil, err
	}
	if cfg.Package {
		req.Package = true
	}
	if f := cmd.Flags().Lookup("backend"); f != nil && f.Changed {
		req.Backend = cfg.Backend
	}
	if req.Destination == "" {
		req.Destination = strings.ToLower(req.ClassName()) + ".py"
	}
	if !filepath.IsAbs(req.Destination) && s.Pos != "" {
		req.Destination = filepath.Join(filepath.Dir(s.Pos), req.Destination)
	}
	return req, nil
}
