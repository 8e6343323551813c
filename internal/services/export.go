package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/kubev2v/node-inspector/internal/models"
)

const defaultSheet = "Sheet1"

// Export writes every catalog table into an xlsx workbook, one sheet per
// table, header row first.
type Export struct {
	tables TableFetcher
	cfg    reportConfig
}

func NewExportService(tables TableFetcher, opts ...ReportOption) *Export {
	return &Export{tables: tables, cfg: newReportConfig(opts)}
}

// DefaultPath is <outputDir>/<nodeName>_snapshot_<YYYYMMDD_HHMMSS>.xlsx.
func (e *Export) DefaultPath() string {
	return e.cfg.defaultPath("xlsx")
}

// Generate follows the same failure rules as Snapshot.Generate. Nothing is
// written when it aborts.
func (e *Export) Generate(ctx context.Context, outputPath string) (string, error) {
	if outputPath == "" {
		outputPath = e.DefaultPath()
	}
	log := zap.S().Named("export")

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Warnw("failed to close workbook", "error", err)
		}
	}()

	var failures []error
	for i, table := range models.Tables() {
		sheet := table.String()
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return "", fmt.Errorf("failed to add sheet %s: %w", sheet, err)
		}
		if i == 0 {
			f.SetActiveSheet(idx)
		}

		rs, err := e.tables.Fetch(ctx, table)
		if err != nil {
			if !e.cfg.continueOnError {
				log.Errorw("export aborted", "table", table, "error", err)
				return "", err
			}
			failures = append(failures, err)
			if err := f.SetCellStr(sheet, "A1", fmt.Sprintf("error: %v", err)); err != nil {
				return "", err
			}
			continue
		}

		if err := writeSheet(f, sheet, rs); err != nil {
			return "", fmt.Errorf("failed to write sheet %s: %w", sheet, err)
		}
	}

	if err := f.DeleteSheet(defaultSheet); err != nil {
		return "", err
	}
	if err := f.SaveAs(outputPath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	log.Infow("export written", "path", outputPath, "failed_tables", len(failures))
	return outputPath, errors.Join(failures...)
}

func writeSheet(f *excelize.File, sheet string, rs *models.RowSet) error {
	header := make([]any, len(rs.Columns))
	for i, c := range rs.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i := range rs.Rows {
		values := rs.Values(i)
		row := make([]any, len(values))
		for j, v := range values {
			row[j] = cellValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// cellValue keeps values excelize stores natively and renders the rest as
// text.
func cellValue(v any) any {
	switch v.(type) {
	case nil:
		return nil
	case string, bool, time.Time,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v
	default:
		return models.FormatValue(v)
	}
}
