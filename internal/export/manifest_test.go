package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/SpritePack/internal/model"
)

func TestBuildManifest(t *testing.T) {
	result, cfg, entries := buildTestResult()
	m := BuildManifest(result, cfg, entries, "atlas.png")

	require.Len(t, m.Frames, 3)
	walk := m.Frames[1]
	assert.Equal(t, "hero_walk.png", walk.Filename)
	assert.Equal(t, ManifestRect{X: 70, Y: 2, W: 128, H: 64}, walk.Frame)
	assert.Equal(t, ManifestSize{W: 128, H: 64}, walk.SourceSize)
	assert.False(t, walk.Rotated)

	assert.Equal(t, []string{"backdrop.png"}, m.Rejected)
	assert.Equal(t, ManifestSize{W: 256, H: 256}, m.Meta.Size)
	assert.Equal(t, "custom", m.Meta.Sort)
	assert.Equal(t, "atlas.png", m.Meta.Image)
}

func TestExportManifestJSONShape(t *testing.T) {
	result, cfg, entries := buildTestResult()
	var buf bytes.Buffer
	require.NoError(t, ExportManifest(&buf, result, cfg, entries, ""))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "frames")
	assert.Contains(t, decoded, "rejected")
	meta := decoded["meta"].(map[string]any)
	assert.NotContains(t, meta, "image", "empty image name is omitted")
	assert.EqualValues(t, 2, meta["padding"])
}

func TestExportManifestEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportManifest(&buf, model.PackResult{}, model.DefaultAtlasConfig(), nil, ""))

	var m Manifest
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.NotNil(t, m.Frames)
	assert.Empty(t, m.Frames)
	assert.Empty(t, m.Rejected)
	assert.Contains(t, buf.String(), `"frames": []`)
}

func TestSaveManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "atlas.json")
	result, cfg, entries := buildTestResult()

	require.NoError(t, SaveManifest(path, result, cfg, entries, "atlas.png"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var m Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Len(t, m.Frames, 3)
}
