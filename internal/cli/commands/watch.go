package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/syssam/stormgen/internal/cli/config"
)

const defaultDebounce = 100 * time.Millisecond

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch <schema-file>...",
		Short: "Regenerate classes whenever a schema or the template changes",
		Long: `Generate the classes of the given schema or project files, then keep
watching them and the configured template. Every change triggers a new
generation of all files. Press Ctrl+C to stop.`,
		Example: `  stormgen watch schema/*.yaml
  stormgen watch project.yaml --template templates/class.py.tmpl`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())
			w := &watcher{
				inputs:   args,
				debounce: debounce,
				logger:   config.GetLogger(cmd.Context()),
				out:      cmd.OutOrStdout(),
				rebuild: func(ctx context.Context) error {
					return regenerate(ctx, cmd, args)
				},
			}
			if cfg.Template != "" {
				w.inputs = append(w.inputs, cfg.Template)
			}
			return w.run(cmd.Context())
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "delay before regenerating after a change")
	return cmd
}

// regenerate reloads every input and generates all classes.
func regenerate(ctx context.Context, cmd *cobra.Command, paths []string) error {
	g, err := newGenerator(cmd)
	if err != nil {
		return err
	}
	reqs, err := loadRequests(cmd, paths)
	if err != nil {
		return err
	}
	results, err := g.GenerateAll(ctx, reqs)
	if err != nil {
		return err
	}
	for _, res := range results {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %s\n", okMark, res.Class, res.Path)
	}
	return nil
}

// watcher re-runs rebuild when one of its inputs is written.
type watcher struct {
	inputs   []string
	debounce time.Duration
	logger   *slog.Logger
	out      io.Writer
	rebuild  func(context.Context) error

	mu sync.Mutex
}

func (w *watcher) run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	// Directories are watched since editors often replace files on save.
	targets := make(map[string]bool, len(w.inputs))
	dirs := make(map[string]bool)
	for _, in := range w.inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			return err
		}
		targets[abs] = true
		if dir := filepath.Dir(abs); !dirs[dir] {
			if err := fw.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
			dirs[dir] = true
		}
	}

	w.build(ctx)
	_, _ = fmt.Fprintf(w.out, "Watching %d files, press Ctrl+C to stop\n", len(targets))

	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !targets[abs] {
				continue
			}
			w.logger.Debug("change detected", "file", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() { w.build(ctx) })
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// build runs rebuild, one at a time. Failures are reported and watching
// continues.
func (w *watcher) build(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if ctx.Err() != nil {
		return
	}
	if err := w.rebuild(ctx); err != nil {
		_, _ = fmt.Fprintf(w.out, "%s %v\n", failMark, err)
	}
}
