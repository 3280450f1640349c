package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/financeflow/internal/log"
	"github.com/theirongolddev/financeflow/internal/model"
	"github.com/theirongolddev/financeflow/internal/store"
)

// Formats accepted by WriteAll.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatAll  = "all"
)

// WriteAll writes the requested exports of doc into dir concurrently and
// returns the written paths in table order, workbook last.
func WriteAll(ctx context.Context, dir string, doc model.Document, year int, format string, logger *log.Logger) ([]string, error) {
	wantCSV := format == FormatCSV || format == FormatAll
	wantXLSX := format == FormatXLSX || format == FormatAll
	if !wantCSV && !wantXLSX {
		return nil, fmt.Errorf("unknown export format %q", format)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	tables := Tables(doc)
	var paths []string
	if wantCSV {
		for _, t := range tables {
			paths = append(paths, filepath.Join(dir, t.FileName(year)))
		}
	}
	if wantXLSX {
		paths = append(paths, filepath.Join(dir, WorkbookName(year)))
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var buf bytes.Buffer
			var err error
			if wantCSV && i < len(tables) {
				err = WriteCSV(&buf, tables[i])
			} else {
				err = WriteWorkbook(&buf, tables)
			}
			if err != nil {
				return fmt.Errorf("rendering %s: %w", filepath.Base(path), err)
			}
			if err := store.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
			}
			logger.Debug("Export written", log.FieldPath, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
