package gen

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// InitFile is the file a class is written to in package mode.
const InitFile = "__init__.py"

// OutputPath returns the file generated for className. In package mode the
// class goes to <dir(dest)>/<lower(className)>/__init__.py, otherwise to dest.
func OutputPath(dest, className string, pkg bool) string {
	if !pkg {
		return dest
	}
	return filepath.Join(filepath.Dir(dest), strings.ToLower(className), InitFile)
}

// Writer emits generated classes to the filesystem. Writes are not atomic:
// a failure mid-write can leave a truncated file.
type Writer struct {
	mu      sync.Mutex
	metrics WriterMetrics
}

// WriterMetrics tracks emitted files.
type WriterMetrics struct {
	FilesGenerated int
	TotalBytes     int64
	WriteTime      time.Duration
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Metrics returns a snapshot of the writer metrics.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// Write stores source for className and returns the written path. Existing
// files are overwritten and an existing package directory is reused.
func (w *Writer) Write(dest, className string, pkg bool, source []byte) (string, error) {
	start := time.Now()
	path := OutputPath(dest, className, pkg)
	if pkg {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", NewGenerationError("emit", path, "create package directory", err)
		}
	}
	if err := os.WriteFile(path, source, 0o644); err != nil {
		return "", NewGenerationError("emit", path, "write class", err)
	}

	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(len(source))
	w.metrics.WriteTime += time.Since(start)
	w.mu.Unlock()

	return path, nil
}
