package gen

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/stormgen/dialect"
)

// Result describes a generated class.
type Result struct {
	Class        string
	Path         string
	Source       string
	HasReference bool
}

// Generator renders and writes Storm classes. A Generator is safe for
// concurrent use as long as requests do not share an output path.
type Generator struct {
	cfg    *Config
	writer *Writer
}

// New creates a generator for the given configuration. Unset fields of cfg
// take the defaults of NewConfig; cfg itself is not modified.
func New(cfg *Config) *Generator {
	c := Config{}
	if cfg != nil {
		c = *cfg
	}
	c.defaults()
	return &Generator{cfg: &c, writer: NewWriter()}
}

// Config returns the generator configuration.
func (g *Generator) Config() *Config {
	return g.cfg
}

// Metrics returns the emitter metrics accumulated by the generator.
func (g *Generator) Metrics() WriterMetrics {
	return g.writer.Metrics()
}

// Render builds the class source of the request without writing it.
func (g *Generator) Render(req *Request) (*Result, error) {
	return g.render(req, g.logger(req))
}

// Generate renders the request and writes the class. Nothing is written
// when any fragment or the template fails.
func (g *Generator) Generate(req *Request) (*Result, error) {
	logger := g.logger(req)
	res, err := g.render(req, logger)
	if err != nil {
		return nil, err
	}
	path, err := g.writer.Write(req.Destination, res.Class, req.Package, []byte(res.Source))
	if err != nil {
		return nil, err
	}
	res.Path = path
	logger.Debug("class written", "path", path, "bytes", len(res.Source))
	return res, nil
}

// GenerateAll runs independent requests in parallel, bounded by the
// configured number of workers. Requests resolving to the same output file
// are rejected before anything is written. Results are returned in request
// order.
func (g *Generator) GenerateAll(ctx context.Context, reqs []*Request) ([]*Result, error) {
	seen := make(map[string]string, len(reqs))
	for _, r := range reqs {
		if r == nil {
			return nil, NewValidationError("", "", nil, "nil request")
		}
		path := outputKey(r.OutputPath())
		if prev, ok := seen[path]; ok {
			return nil, NewValidationError(r.Entity, "", path, fmt.Sprintf("output path already used by %s", prev))
		}
		seen[path] = r.Entity
	}

	start := time.Now()
	results := make([]*Result, len(reqs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.Workers)
	for i, r := range reqs {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				res, err := g.Generate(r)
				if err != nil {
					return fmt.Errorf("generate %s: %w", r.Entity, err)
				}
				results[i] = res
				return nil
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	g.cfg.Logger.Info("batch generated", "classes", len(reqs), "duration", time.Since(start))
	return results, nil
}

// outputKey identifies the file behind path regardless of how it is spelled.
func outputKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func (g *Generator) render(req *Request, logger *slog.Logger) (*Result, error) {
	if req == nil {
		return nil, NewValidationError("", "", nil, "nil request")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	backend := req.Backend
	if backend == "" {
		backend = g.cfg.Backend
	}
	backend, err := dialect.Normalize(backend)
	if err != nil {
		return nil, &ConfigError{Option: "Backend", Value: req.Backend, Message: "unsupported backend", Cause: err}
	}

	b := &fragmentBuilder{entity: req.Entity, attrs: req.Attributes, logger: logger}
	frags, err := b.build()
	if err != nil {
		return nil, err
	}
	if g.cfg.SQLTable {
		if frags.SQLTable, err = SQLTable(g.cfg.TypeMap, backend, req.Attributes); err != nil {
			return nil, err
		}
	}

	tmpl, err := g.template()
	if err != nil {
		return nil, err
	}
	class := req.ClassName()
	logger.Debug("rendering class", "class", class, "template", tmpl.Name, "backend", backend)
	return &Result{
		Class:        class,
		Source:       tmpl.Render(class, frags),
		HasReference: frags.HasReference,
	}, nil
}

// template resolves the class template. A template file is re-read on
// every call.
func (g *Generator) template() (*Template, error) {
	switch {
	case g.cfg.Template != nil:
		return g.cfg.Template, nil
	case g.cfg.TemplatePath != "":
		return LoadTemplate(g.cfg.TemplatePath)
	default:
		return DefaultTemplate(), nil
	}
}

func (g *Generator) logger(req *Request) *slog.Logger {
	l := g.cfg.Logger.With("run", uuid.NewString())
	if req != nil {
		l = l.With("entity", req.Entity)
	}
	return l
}
