package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"campaignclean/internal/config"
	apperrors "campaignclean/internal/errors"
	"campaignclean/pkg/contracts/domain"
)

// WorkbookWriter writes output tables as sheets of one xlsx workbook
type WorkbookWriter struct {
	logger *slog.Logger
}

// NewWorkbookWriter creates a new workbook writer
func NewWorkbookWriter(logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{logger: logger.With(slog.String("component", "workbook_writer"))}
}

// WriteWorkbook saves tables to path, one sheet per table named after it,
// header in row 1. Cells carry the same strings as the CSV output.
func (w *WorkbookWriter) WriteWorkbook(path string, tables []domain.OutputTable) error {
	if len(tables) == 0 {
		return apperrors.NewIOError("workbook needs at least one table", nil).WithContext("path", path)
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	for i, table := range tables {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, table.Name); err != nil {
				return apperrors.NewIOError("failed to name sheet", err).WithContext("sheet", table.Name)
			}
		} else if _, err := f.NewSheet(table.Name); err != nil {
			return apperrors.NewIOError("failed to create sheet", err).WithContext("sheet", table.Name)
		}

		if err := writeSheet(f, table); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), config.DirPermissions); err != nil {
		return apperrors.NewIOError("failed to create directory", err).WithContext("path", path)
	}
	if err := f.SaveAs(path); err != nil {
		return apperrors.NewIOError("failed to save workbook", err).WithContext("path", path)
	}

	w.logger.Info("Workbook written",
		slog.String("path", path),
		slog.Int("sheets", len(tables)))

	return nil
}

// writeSheet fills a sheet with the header and records of table
func writeSheet(f *excelize.File, table domain.OutputTable) error {
	rows := make([][]string, 0, len(table.Records)+1)
	rows = append(rows, table.Headers)
	rows = append(rows, table.Records...)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return apperrors.NewIOError("invalid cell coordinates", err)
		}

		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(table.Name, cell, &values); err != nil {
			return apperrors.NewIOError(fmt.Sprintf("failed to write row %d", i), err).
				WithContext("sheet", table.Name)
		}
	}
	return nil
}
