package export

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/SpritePack/internal/model"
)

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.pdf")
	result, cfg, entries := buildTestResult()

	if err := ExportPDF(path, result, cfg, entries); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data[:5]) != "%PDF-" {
		t.Errorf("expected PDF header, got %q", data[:5])
	}
}

func TestExportPDF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	err := ExportPDF(path, model.PackResult{}, model.DefaultAtlasConfig(), nil)
	if err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}

func TestExportPDF_OnlyRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rejected.pdf")
	result := model.PackResult{Placed: []model.PlacedRect{}, Rejected: []string{"/x/huge.png"}}

	if err := ExportPDF(path, result, model.DefaultAtlasConfig(), nil); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
}

func TestExportPDF_InvalidConfig(t *testing.T) {
	result, _, entries := buildTestResult()
	err := ExportPDF(filepath.Join(t.TempDir(), "bad.pdf"), result, model.AtlasConfig{}, entries)
	if err == nil {
		t.Fatal("expected error for invalid config")
	}
}

func TestExportPDF_ManyFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many.pdf")
	cfg := model.AtlasConfig{Width: 2048, Height: 2048, Padding: 1, Sort: model.SortNameAsc}

	var result model.PackResult
	for i := 0; i < 400; i++ {
		x := 1 + (i%40)*50
		y := 1 + (i/40)*50
		result.Placed = append(result.Placed, model.PlacedRect{X: x, Y: y, Width: 48, Height: 48, SourceID: fmt.Sprintf("/s/frame_%03d.png", i)})
	}
	for i := 0; i < 80; i++ {
		result.Rejected = append(result.Rejected, fmt.Sprintf("/s/extra_%03d.png", i))
	}

	if err := ExportPDF(path, result, cfg, nil); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
}

func TestLabelFontSize(t *testing.T) {
	tests := []struct {
		w, h     float64
		expected float64
	}{
		{100, 100, 8},
		{50, 30, 7},
		{15, 10, 6},
	}
	for _, tt := range tests {
		if got := labelFontSize(tt.w, tt.h); got != tt.expected {
			t.Errorf("labelFontSize(%v, %v) = %v, want %v", tt.w, tt.h, got, tt.expected)
		}
	}
}

func TestFrames(t *testing.T) {
	result, _, entries := buildTestResult()
	result.Placed = append(result.Placed, model.PlacedRect{X: 1, Y: 1, Width: 2, Height: 2, SourceID: "/other/ghost.webp"})

	frames := Frames(result, entries)
	if len(frames) != 4 {
		t.Fatalf("expected 4 frames, got %d", len(frames))
	}
	if frames[1].Name != "hero_walk" || frames[1].X != 70 || frames[1].ByteSize != 4096 {
		t.Errorf("unexpected frame %+v", frames[1])
	}
	if frames[3].Name != "ghost" {
		t.Errorf("expected fallback name ghost, got %q", frames[3].Name)
	}
}
