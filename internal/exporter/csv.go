package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"campaignclean/internal/config"
	apperrors "campaignclean/internal/errors"
	"campaignclean/pkg/contracts/domain"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(paths *config.Paths, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{
		paths:  paths,
		logger: logger.With(slog.String("component", "csv_writer")),
	}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file, replacing any previous content.
// Lines end in "\n" and fields are quoted only when required.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	w.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), config.DirPermissions); err != nil {
		return apperrors.NewIOError("failed to create directory", err).WithContext("path", fullPath)
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, config.FilePermissions)
	if err != nil {
		return apperrors.NewIOError("failed to open file", err).WithContext("path", fullPath)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return apperrors.NewIOError("failed to write BOM", err).WithContext("path", fullPath)
		}
	}

	writer := csv.NewWriter(file)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return apperrors.NewIOError("failed to write headers", err).WithContext("path", fullPath)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return apperrors.NewIOError(fmt.Sprintf("failed to write record %d", i), err).
				WithContext("path", fullPath)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewIOError("failed to flush CSV", err).WithContext("path", fullPath)
	}
	if err := file.Close(); err != nil {
		return apperrors.NewIOError("failed to close file", err).WithContext("path", fullPath)
	}
	return nil
}

// WriteTable writes one output table as <name>.csv in the output directory
// and returns the path written.
func (w *CSVWriter) WriteTable(table domain.OutputTable) (string, error) {
	path := w.paths.GetOutputPath(table.Name + ".csv")
	err := w.WriteCSV(path, WriteOptions{
		Headers: table.Headers,
		Records: table.Records,
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// WriteTables writes every table in order, stopping at the first failure
func (w *CSVWriter) WriteTables(tables []domain.OutputTable) ([]string, error) {
	written := make([]string, 0, len(tables))
	for _, table := range tables {
		path, err := w.WriteTable(table)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// resolvePath places relative paths inside the output directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.paths == nil {
		return filePath
	}
	if rel, err := filepath.Rel(w.paths.OutputDir, filePath); err == nil && filepath.IsLocal(rel) {
		return filePath
	}
	return w.paths.GetOutputPath(filePath)
}
