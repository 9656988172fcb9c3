package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"campus-map/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileSourceCSVPreservesOrderAndHeaders(t *testing.T) {
	path := writeFile(t, "iits.csv", "\xEF\xBB\xBFIIT College,IIT Ranking,Latitude\n"+
		"IIT Madras,1,12.99\n"+
		"\n"+
		"IIT Delhi,2\n")

	ds, err := NewFileSource(path).Load(context.Background())
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"IIT College", "IIT Ranking", "Latitude"}, ds.Headers); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}
	want := []*models.Row{
		{Line: 2, Cells: map[string]string{"IIT College": "IIT Madras", "IIT Ranking": "1", "Latitude": "12.99"}},
		{Line: 3, Cells: map[string]string{"IIT College": "IIT Delhi", "IIT Ranking": "2", "Latitude": ""}},
	}
	if diff := cmp.Diff(want, ds.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestFileSourceSpreadsheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iit_data.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"IIT College", "IIT Ranking", "NIRF Score", "Latitude", "Longitude", "Image"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"IIT Madras", 1, 89.46, 12.9916, 80.2336, "http://x/a b.png"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"IIT Delhi", 2, 88.12, 28.545, 77.1926, "http://x/b.png"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ds, err := NewFileSource(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.Rows, 2)

	first := ds.Rows[0].Cells
	if first["IIT College"] != "IIT Madras" || first["IIT Ranking"] != "1" || first["Latitude"] != "12.9916" {
		t.Errorf("unexpected first row: %v", first)
	}
	if ds.Rows[1].Cells["IIT College"] != "IIT Delhi" {
		t.Errorf("row order not preserved: %v", ds.Rows[1].Cells)
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.xlsx")).Load(context.Background())
	if !errors.Is(err, models.ErrSourceNotFound) {
		t.Fatalf("expected ErrSourceNotFound, got %v", err)
	}
}

func TestFileSourceCorruptSpreadsheet(t *testing.T) {
	path := writeFile(t, "broken.xlsx", "this is not a zip archive")

	_, err := NewFileSource(path).Load(context.Background())
	if !errors.Is(err, models.ErrSourceRead) {
		t.Fatalf("expected ErrSourceRead, got %v", err)
	}
	if errors.Is(err, models.ErrSourceNotFound) {
		t.Error("corrupt file must not be reported as not found")
	}
}

func TestFileSourceUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "data.txt", "a,b\n1,2\n")

	_, err := NewFileSource(path).Load(context.Background())
	if !errors.Is(err, models.ErrSourceRead) {
		t.Fatalf("expected ErrSourceRead, got %v", err)
	}
}

func TestBuildDatasetEmpty(t *testing.T) {
	ds := buildDataset("empty.csv", nil)
	if len(ds.Headers) != 0 || len(ds.Rows) != 0 {
		t.Errorf("expected empty dataset, got %+v", ds)
	}
}
