package dataprocessing

import (
	"archive/zip"
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang/snappy"
	"golang.org/x/sync/errgroup"

	apperrors "campaignclean/internal/errors"
	"campaignclean/internal/files"
	"campaignclean/internal/infrastructure"
)

// Compression identifies the codec of a fragment file
type Compression string

const (
	CompressionNone   Compression = "none"
	CompressionZip    Compression = "zip"
	CompressionGzip   Compression = "gzip"
	CompressionBzip2  Compression = "bzip2"
	CompressionSnappy Compression = "snappy"
)

// DefaultWorkers is the decode parallelism used when none is configured
const DefaultWorkers = 4

const utf8BOM = "\ufeff"

// DetectCompression infers the codec from the file extension
func DetectCompression(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return CompressionZip
	case ".gz", ".gzip":
		return CompressionGzip
	case ".bz2":
		return CompressionBzip2
	case ".sz", ".snappy":
		return CompressionSnappy
	default:
		return CompressionNone
	}
}

// Fragment is one decoded input file, index column removed
type Fragment struct {
	Source string
	Table  *Table
}

// Loader decodes fragment files in parallel
type Loader struct {
	logger  *slog.Logger
	workers int
}

// NewLoader creates a loader decoding at most workers fragments at once
func NewLoader(logger *slog.Logger, workers int) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Loader{
		logger:  logger.With(slog.String("component", "loader")),
		workers: workers,
	}
}

// LoadAll decodes every discovered file. Fragments are returned in the
// order of the input slice regardless of which decode finishes first.
// The first failure cancels the remaining decodes.
func (l *Loader) LoadAll(ctx context.Context, discovered []files.FileInfo) ([]Fragment, error) {
	fragments := make([]Fragment, len(discovered))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)

	for i, file := range discovered {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			table, err := DecodeFile(file.Path)
			if err != nil {
				infrastructure.RecordError(gctx, err)
				return err
			}

			l.logger.DebugContext(gctx, "Fragment decoded",
				slog.String("file", file.Name),
				slog.Int("rows", table.Len()),
				slog.Int("columns", len(table.Header)),
				slog.Duration("duration", time.Since(start)))

			fragments[i] = Fragment{Source: file.Path, Table: table}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "Fragments loaded",
		slog.Int("count", len(fragments)),
		slog.Int("workers", l.workers))

	return fragments, nil
}

// DecodeFile reads one fragment from disk, decompressing it by extension
func DecodeFile(path string) (*Table, error) {
	rc, err := openFragment(path)
	if err != nil {
		return nil, withFile(err, path)
	}
	defer rc.Close()

	table, err := DecodeCSV(rc)
	if err != nil {
		return nil, withFile(err, path)
	}
	return table, nil
}

// withFile names the offending fragment in a decode error
func withFile(err error, path string) error {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.NewDecodeError("failed to decode fragment", err)
	}
	appErr.Message = fmt.Sprintf("%s: %s", filepath.Base(path), appErr.Message)
	return appErr.WithContext("file", path)
}

// DecodeCSV parses a delimited text stream whose first row is the header
// and whose first column is a positional index, which is dropped.
func DecodeCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(bufio.NewReader(r))

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apperrors.NewDecodeError("fragment is empty", nil)
	}
	if err != nil {
		return nil, apperrors.NewDecodeError("failed to read header", err)
	}
	if len(header) < 2 {
		return nil, apperrors.NewDecodeError(
			fmt.Sprintf("header has %d columns, expected an index column and at least one data column", len(header)), nil)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	table := NewTable(header[1:])
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewDecodeError("malformed row", err)
		}
		table.Rows = append(table.Rows, record[1:])
	}

	return table, nil
}

// openFragment returns a reader over the decompressed bytes of path
func openFragment(path string) (io.ReadCloser, error) {
	compression := DetectCompression(path)
	if compression == CompressionZip {
		return openZipMember(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewDecodeError("failed to open fragment", err)
	}

	switch compression {
	case CompressionGzip:
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, apperrors.NewDecodeError("invalid gzip stream", err)
		}
		return &stackedReadCloser{Reader: gz, closers: []io.Closer{gz, f}}, nil
	case CompressionBzip2:
		return &stackedReadCloser{Reader: bzip2.NewReader(f), closers: []io.Closer{f}}, nil
	case CompressionSnappy:
		return &stackedReadCloser{Reader: snappy.NewReader(f), closers: []io.Closer{f}}, nil
	default:
		return f, nil
	}
}

// openZipMember opens the single data member of a zip archive
func openZipMember(path string) (io.ReadCloser, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, apperrors.NewDecodeError("invalid zip archive", err)
	}

	var members []*zip.File
	for _, member := range archive.File {
		if member.FileInfo().IsDir() || strings.HasPrefix(member.Name, "__MACOSX/") {
			continue
		}
		members = append(members, member)
	}
	if len(members) != 1 {
		archive.Close()
		return nil, apperrors.NewDecodeError(
			fmt.Sprintf("zip archive must contain exactly one file, found %d", len(members)), nil)
	}

	rc, err := members[0].Open()
	if err != nil {
		archive.Close()
		return nil, apperrors.NewDecodeError("failed to open zip member", err).
			WithContext("member", members[0].Name)
	}
	return &stackedReadCloser{Reader: rc, closers: []io.Closer{rc, archive}}, nil
}

// stackedReadCloser closes a decompressor and its underlying file in order
type stackedReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReadCloser) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
