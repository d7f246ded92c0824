package xlsx

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/sheetgraph/pkg/core/region"
	"github.com/matzehuels/sheetgraph/pkg/errors"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetColWidth("Sheet1", "B", "B", 20); err != nil {
		t.Fatalf("SetColWidth: %v", err)
	}
	if err := f.SetRowHeight("Sheet1", 2, 30); err != nil {
		t.Fatalf("SetRowHeight: %v", err)
	}
	if _, err := f.NewSheet("Summary"); err != nil {
		t.Fatalf("NewSheet: %v", err)
	}

	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func TestSheets(t *testing.T) {
	wb, err := Open(writeWorkbook(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer wb.Close()

	got := wb.Sheets()
	if len(got) != 2 || got[0] != "Sheet1" || got[1] != "Summary" {
		t.Errorf("Sheets() = %v, want [Sheet1 Summary]", got)
	}
	if !wb.HasSheet("Summary") {
		t.Error("HasSheet(Summary) = false")
	}
	if wb.HasSheet("Missing") {
		t.Error("HasSheet(Missing) = true")
	}
}

func TestDimensions(t *testing.T) {
	wb, err := Open(writeWorkbook(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer wb.Close()

	dims, err := wb.Dimensions("Sheet1", region.Box(1, 1, 3, 3))
	if err != nil {
		t.Fatalf("Dimensions: %v", err)
	}

	if got := dims.ColumnWidth(2); got != 20 {
		t.Errorf("ColumnWidth(2) = %v, want 20", got)
	}
	if got, want := dims.ColumnWidth(1), dims.ColumnWidth(10); got != want {
		t.Errorf("ColumnWidth(1) = %v, want default %v", got, want)
	}
	if got := dims.RowHeight(2); got != 30 {
		t.Errorf("RowHeight(2) = %v, want 30", got)
	}
	if got := dims.RowHeight(1); got != 15 {
		t.Errorf("RowHeight(1) = %v, want 15", got)
	}
	if len(dims.Widths) != 1 || len(dims.Heights) != 1 {
		t.Errorf("stored overrides = %v / %v, want one each", dims.Widths, dims.Heights)
	}
}

func TestDimensionsAtLastColumn(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetColWidth("Sheet1", "XFD", "XFD", 12); err != nil {
		t.Fatalf("SetColWidth: %v", err)
	}
	wide := 11.5
	if err := f.SetSheetProps("Sheet1", &excelize.SheetPropsOptions{DefaultColWidth: &wide}); err != nil {
		t.Fatalf("SetSheetProps: %v", err)
	}
	path := filepath.Join(t.TempDir(), "wide.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	wb, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer wb.Close()

	dims, err := wb.Dimensions("Sheet1", region.Box(1, region.MaxColumns-1, 2, region.MaxColumns))
	if err != nil {
		t.Fatalf("Dimensions: %v", err)
	}
	if got := dims.ColumnWidth(region.MaxColumns); got != 12 {
		t.Errorf("ColumnWidth(XFD) = %v, want 12", got)
	}
	if got := dims.ColumnWidth(1); got != wide {
		t.Errorf("ColumnWidth(1) = %v, want sheet default %v", got, wide)
	}
	if got := dims.RowHeight(1); got != 15 {
		t.Errorf("RowHeight(1) = %v, want 15", got)
	}
	if len(dims.Widths) != 1 {
		t.Errorf("stored widths = %v, want only XFD", dims.Widths)
	}
}

func TestSheetLimitsMatchExcelize(t *testing.T) {
	if region.MaxColumns != excelize.MaxColumns || region.MaxRows != excelize.TotalRows {
		t.Errorf("region limits %d x %d, excelize %d x %d",
			region.MaxRows, region.MaxColumns, excelize.TotalRows, excelize.MaxColumns)
	}
}

func TestDimensionsErrors(t *testing.T) {
	wb, err := Open(writeWorkbook(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer wb.Close()

	_, err = wb.Dimensions("Missing", region.Box(1, 1, 1, 1))
	if !errors.Is(err, errors.ErrCodeSheetNotFound) {
		t.Errorf("missing sheet: got %v, want %s", err, errors.ErrCodeSheetNotFound)
	}

	_, err = wb.Dimensions("Sheet1/2", region.Box(1, 1, 1, 1))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("malformed name: got %v, want %s", err, errors.ErrCodeInvalidInput)
	}

	_, err = wb.Dimensions("Sheet1", region.Box(3, 1, 1, 1))
	if !errors.Is(err, errors.ErrCodeInvalidRegion) {
		t.Errorf("inverted bounds: got %v, want %s", err, errors.ErrCodeInvalidRegion)
	}
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.xlsx"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: got %v, want %s", err, errors.ErrCodeFileNotFound)
	}

	_, err = Open("")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty path: got %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestUsedRange(t *testing.T) {
	wb, err := Open(writeWorkbook(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer wb.Close()

	if _, err := wb.UsedRange("Sheet1"); err != nil {
		t.Errorf("UsedRange(Sheet1): %v", err)
	}
	_, err = wb.UsedRange("Missing")
	if !errors.Is(err, errors.ErrCodeSheetNotFound) {
		t.Errorf("missing sheet: got %v, want %s", err, errors.ErrCodeSheetNotFound)
	}
}

func TestRangeName(t *testing.T) {
	tests := []struct {
		box  region.BoundingBox
		want string
	}{
		{region.Box(1, 1, 1, 1), "A1"},
		{region.Box(2, 2, 10, 4), "B2:D10"},
		{region.Box(1, 27, 3, 28), "AA1:AB3"},
	}
	for _, tt := range tests {
		got, err := RangeName(tt.box)
		if err != nil {
			t.Errorf("RangeName(%s): %v", tt.box, err)
			continue
		}
		if got != tt.want {
			t.Errorf("RangeName(%s) = %q, want %q", tt.box, got, tt.want)
		}
	}

	if _, err := RangeName(region.Box(0, 0, 1, 1)); !errors.Is(err, errors.ErrCodeInvalidRegion) {
		t.Errorf("zero coordinates: got %v, want %s", err, errors.ErrCodeInvalidRegion)
	}
}
