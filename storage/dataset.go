package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"campus-map/models"
)

// FileSource loads a dataset from a spreadsheet or CSV file, chosen by extension.
type FileSource struct {
	Path string
}

// NewFileSource returns a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load reads the whole file into a Dataset, preserving row order.
func (s *FileSource) Load(_ context.Context) (*models.Dataset, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", models.ErrSourceNotFound, s.Path)
		}
		return nil, fmt.Errorf("%w: %s: %w", models.ErrSourceRead, s.Path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", models.ErrSourceNotFound, s.Path)
	}

	var records [][]string
	switch ext := strings.ToLower(filepath.Ext(s.Path)); ext {
	case ".xlsx", ".xlsm":
		records, err = readSpreadsheet(s.Path)
	case ".csv":
		records, err = readCSV(s.Path)
	default:
		err = fmt.Errorf("unsupported file type %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", models.ErrSourceRead, s.Path, err)
	}

	return buildDataset(s.Path, records), nil
}

// buildDataset turns raw records into a Dataset. The first record is the header
// row; blank rows are dropped and short rows are padded with empty cells.
func buildDataset(source string, records [][]string) *models.Dataset {
	ds := &models.Dataset{Source: source}
	if len(records) == 0 {
		return ds
	}

	header := records[0]
	index := make([]string, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		index[i] = h
		ds.Headers = append(ds.Headers, h)
	}

	for i, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		row := &models.Row{Line: i + 2, Cells: make(map[string]string, len(ds.Headers))}
		for col, name := range index {
			if name == "" {
				continue
			}
			if col < len(rec) {
				row.Cells[name] = strings.TrimSpace(rec[col])
			} else {
				row.Cells[name] = ""
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
