package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/SpritePack/internal/model"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "Order,Name\n1,hero\n2,coin\n", ','},
		{"semicolon", "Order;Name\n1;hero\n2;coin\n", ';'},
		{"tab", "Order\tName\n1\thero\n2\tcoin\n", '\t'},
		{"pipe", "Order|Name\n1|hero\n2|coin\n", '|'},
		{"single column", "hero\ncoin\n", ','},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCSVDelimiter([]byte(tt.data)); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_Aliases(t *testing.T) {
	for _, header := range []string{"Name", "SPRITE", " file ", "Filename", "image", "Frame"} {
		mapping, isHeader := DetectColumns([]string{header})
		if !isHeader || mapping.Name != 0 {
			t.Errorf("header %q: expected name column at 0, got %+v (header=%v)", header, mapping, isHeader)
		}
	}
}

func TestDetectColumns_OrderColumn(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Position", "Notes", "Sprite"})
	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Name != 2 || mapping.Order != 0 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"hero_idle", "whatever"})
	if isHeader {
		t.Error("expected no header")
	}
	if mapping.Name != 0 || mapping.Order != -1 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportOrderCSVFromReader_PlainList(t *testing.T) {
	result := ImportOrderCSVFromReader(strings.NewReader("walk\nidle\n\njump\n"), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	want := []string{"walk", "idle", "jump"}
	if strings.Join(result.Names, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, result.Names)
	}
}

func TestImportOrderCSVFromReader_OrderColumn(t *testing.T) {
	data := "index,name\n3,jump\n1,walk\n2,idle\n1,run\n"
	result := ImportOrderCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	want := []string{"walk", "run", "idle", "jump"}
	if strings.Join(result.Names, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, result.Names)
	}
}

func TestImportOrderCSVFromReader_RowErrors(t *testing.T) {
	data := "order,name\nx,walk\n2,\n3,idle\n4,idle\n"
	result := ImportOrderCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) != 2 {
		t.Errorf("expected 2 errors, got %v", result.Errors)
	}
	if len(result.Names) != 1 || result.Names[0] != "idle" {
		t.Errorf("expected only idle, got %v", result.Names)
	}
	foundDup := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Duplicate") {
			foundDup = true
		}
	}
	if !foundDup {
		t.Errorf("expected duplicate warning, got %v", result.Warnings)
	}
}

func TestImportOrderCSVFromReader_HeaderWithoutName(t *testing.T) {
	result := ImportOrderCSVFromReader(strings.NewReader("order,notes\n1,x\n"), ',')
	if len(result.Errors) == 0 {
		t.Fatal("expected error for missing name column")
	}
}

func TestImportOrderCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportOrderCSVFromReader(strings.NewReader(""), ',')
	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

func TestImportOrderCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.csv")
	if err := os.WriteFile(path, []byte("Pos;Sprite\n2;b\n1;a\n"), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportOrder(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if strings.Join(result.Names, ",") != "a,b" {
		t.Errorf("expected a,b got %v", result.Names)
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "semicolon") {
		t.Errorf("expected semicolon warning first, got %v", result.Warnings)
	}
}

func TestImportOrderCSV_FileErrors(t *testing.T) {
	dir := t.TempDir()
	if r := ImportOrderCSV(filepath.Join(dir, "missing.csv")); len(r.Errors) == 0 {
		t.Error("expected error for missing file")
	}

	empty := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(empty, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	if r := ImportOrderCSV(empty); len(r.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "order.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportOrderExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Frame", "Order"},
		{"jump", 2},
		{"walk", 1},
	})

	result := ImportOrder(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if strings.Join(result.Names, ",") != "walk,jump" {
		t.Errorf("expected walk,jump got %v", result.Names)
	}
}

func TestImportOrderExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{{"c"}, {"a"}, {"b"}})

	result := ImportOrderExcel(path)
	if strings.Join(result.Names, ",") != "c,a,b" {
		t.Errorf("expected c,a,b got %v", result.Names)
	}
}

func TestImportOrderExcel_FileNotFound(t *testing.T) {
	if r := ImportOrderExcel(filepath.Join(t.TempDir(), "nope.xlsx")); len(r.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

// ─── ApplyOrder Tests ──────────────────────────────────────

func TestApplyOrder(t *testing.T) {
	entries := []model.ImageEntry{
		{ID: "/s/a.png", Name: "a"},
		{ID: "/s/b.png", Name: "b"},
		{ID: "/s/c.png", Name: "c"},
		{ID: "/s/d.png", Name: "d"},
	}

	ordered, warnings := ApplyOrder(entries, []string{"c.png", "ghost", "/s/d.png", "c", "b"})

	got := make([]string, len(ordered))
	for i, e := range ordered {
		got[i] = e.Name
	}
	if strings.Join(got, ",") != "c,d,b,a" {
		t.Errorf("expected c,d,b,a got %v", got)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "ghost") {
		t.Errorf("expected one warning about ghost, got %v", warnings)
	}
}

func TestApplyOrder_EmptyList(t *testing.T) {
	entries := []model.ImageEntry{{ID: "1", Name: "x"}, {ID: "2", Name: "y"}}
	ordered, warnings := ApplyOrder(entries, nil)
	if len(ordered) != 2 || ordered[0].ID != "1" || len(warnings) != 0 {
		t.Errorf("expected unchanged order, got %v %v", ordered, warnings)
	}
}
