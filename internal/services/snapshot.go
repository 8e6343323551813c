package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/node-inspector/internal/models"
	"github.com/kubev2v/node-inspector/pkg/render"
)

const snapshotTimestampLayout = "20060102_150405"

// TableFetcher reads a whole catalog table.
type TableFetcher interface {
	Fetch(ctx context.Context, table models.TableName) (*models.RowSet, error)
}

type reportConfig struct {
	nodeName        string
	outputDir       string
	continueOnError bool
	now             func() time.Time
}

type ReportOption func(*reportConfig)

func WithNodeName(name string) ReportOption {
	return func(c *reportConfig) {
		c.nodeName = name
	}
}

func WithOutputDir(dir string) ReportOption {
	return func(c *reportConfig) {
		c.outputDir = dir
	}
}

// WithContinueOnError keeps going past failed tables instead of aborting.
func WithContinueOnError(enabled bool) ReportOption {
	return func(c *reportConfig) {
		c.continueOnError = enabled
	}
}

func WithClock(now func() time.Time) ReportOption {
	return func(c *reportConfig) {
		c.now = now
	}
}

func newReportConfig(opts []ReportOption) reportConfig {
	c := reportConfig{
		nodeName:  "node",
		outputDir: ".",
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c reportConfig) defaultPath(ext string) string {
	name := fmt.Sprintf("%s_snapshot_%s.%s", c.nodeName, c.now().Format(snapshotTimestampLayout), ext)
	return filepath.Join(c.outputDir, name)
}

// Snapshot dumps every catalog table into one text file.
type Snapshot struct {
	tables TableFetcher
	cfg    reportConfig
}

func NewSnapshotService(tables TableFetcher, opts ...ReportOption) *Snapshot {
	return &Snapshot{tables: tables, cfg: newReportConfig(opts)}
}

// DefaultPath is <outputDir>/<nodeName>_snapshot_<YYYYMMDD_HHMMSS>.txt.
func (s *Snapshot) DefaultPath() string {
	return s.cfg.defaultPath("txt")
}

// Generate writes the snapshot to outputPath, or to DefaultPath when empty,
// and returns the path written.
//
// Tables are written in catalog order, each preceded by its header line. By
// default the first failing table aborts the snapshot: it is written to a
// temporary file next to outputPath and only renamed over it on success, so
// an existing file at outputPath is left untouched. With WithContinueOnError the failure is written in place of
// the table and all failures are returned joined, next to the path.
func (s *Snapshot) Generate(ctx context.Context, outputPath string) (string, error) {
	if outputPath == "" {
		outputPath = s.DefaultPath()
	}
	log := zap.S().Named("snapshot")

	f, err := os.CreateTemp(filepath.Dir(outputPath), "."+filepath.Base(outputPath)+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create snapshot file: %w", err)
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to create snapshot file: %w", err)
	}

	abort := func(err error) (string, error) {
		f.Close()
		if rmErr := os.Remove(f.Name()); rmErr != nil {
			log.Warnw("failed to remove partial snapshot", "path", f.Name(), "error", rmErr)
		}
		return "", err
	}

	w := bufio.NewWriter(f)
	var failures []error
	for _, table := range models.Tables() {
		if err := render.Section(w, table.String()); err != nil {
			return abort(err)
		}

		rs, err := s.tables.Fetch(ctx, table)
		if err != nil {
			if !s.cfg.continueOnError {
				log.Errorw("snapshot aborted", "table", table, "error", err)
				return abort(err)
			}
			log.Warnw("table skipped", "table", table, "error", err)
			failures = append(failures, err)
			if _, err := fmt.Fprintf(w, "error: %v\n", err); err != nil {
				return abort(err)
			}
			continue
		}

		if err := render.RowSet(w, rs); err != nil {
			return abort(err)
		}
	}

	if err := w.Flush(); err != nil {
		return abort(err)
	}
	if err := f.Close(); err != nil {
		return abort(fmt.Errorf("failed to close snapshot file: %w", err))
	}
	if err := os.Rename(f.Name(), outputPath); err != nil {
		return abort(fmt.Errorf("failed to move snapshot into place: %w", err))
	}

	log.Infow("snapshot written", "path", outputPath, "failed_tables", len(failures))
	return outputPath, errors.Join(failures...)
}
