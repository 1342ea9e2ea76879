package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/SpritePack/internal/model"
)

func TestExportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.xlsx")
	result, cfg, entries := buildTestResult()

	require.NoError(t, ExportXLSX(path, result, cfg, entries))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Frames", "Rejected", "Summary"}, f.GetSheetList())

	rows, err := f.GetRows("Frames")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Name", "X", "Y", "Width", "Height", "Bytes", "Source"}, rows[0])
	assert.Equal(t, []string{"hero_walk", "70", "2", "128", "64", "4096", "/art/hero_walk.png"}, rows[2])

	rejected, err := f.GetRows("Rejected")
	require.NoError(t, err)
	require.Len(t, rejected, 2)
	assert.Equal(t, "backdrop", rejected[1][0])

	size, err := f.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "256x256", size)
}

func TestExportXLSX_InvalidConfig(t *testing.T) {
	err := ExportXLSX(filepath.Join(t.TempDir(), "x.xlsx"), model.PackResult{}, model.AtlasConfig{}, nil)
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
}
