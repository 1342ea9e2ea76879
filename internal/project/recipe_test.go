package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/SpritePack/internal/model"
)

func writeRecipe(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadRecipeTOML(t *testing.T) {
	path := writeRecipe(t, "hero.toml", `
folder = "sprites"
size = "2048x1024"
padding = 0
sort = "fileSize-desc"
output = "/out/hero.png"
manifest = "out/hero.json"
`)

	r, err := LoadRecipe(path)
	require.NoError(t, err)

	dir := filepath.Dir(path)
	assert.Equal(t, filepath.Join(dir, "sprites"), r.Folder)
	assert.Equal(t, "/out/hero.png", r.Output)
	assert.Equal(t, filepath.Join(dir, "out", "hero.json"), r.Manifest)

	cfg, err := r.Apply(model.DefaultAtlasConfig())
	require.NoError(t, err)
	assert.Equal(t, model.AtlasConfig{Width: 2048, Height: 1024, Padding: 0, Sort: model.SortSizeDesc}, cfg)
}

func TestLoadRecipeYAML(t *testing.T) {
	path := writeRecipe(t, "icons.yml", `
folder: /art/icons
size: "512"
sort: updated-asc
exif_time: true
`)

	r, err := LoadRecipe(path)
	require.NoError(t, err)
	assert.Equal(t, "/art/icons", r.Folder)
	assert.True(t, r.ExifTime)
	assert.Nil(t, r.Padding)

	cfg, err := r.Apply(model.DefaultAtlasConfig())
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Width)
	assert.Equal(t, 512, cfg.Height)
	assert.Equal(t, 2, cfg.Padding, "unset padding keeps the base value")
	assert.Equal(t, model.SortModifiedAsc, cfg.Sort)
}

func TestLoadRecipeUnknownKey(t *testing.T) {
	_, err := LoadRecipe(writeRecipe(t, "typo.toml", `sise = "512"`))
	assert.Error(t, err)

	_, err = LoadRecipe(writeRecipe(t, "typo.yaml", "sise: 512\n"))
	assert.Error(t, err)
}

func TestLoadRecipeUnsupportedExtension(t *testing.T) {
	_, err := LoadRecipe(writeRecipe(t, "recipe.json", `{}`))
	assert.Error(t, err)
}

func TestRecipeApplyErrors(t *testing.T) {
	_, err := Recipe{Size: "huge"}.Apply(model.DefaultAtlasConfig())
	assert.Error(t, err)

	_, err = Recipe{Sort: "random"}.Apply(model.DefaultAtlasConfig())
	assert.ErrorIs(t, err, model.ErrInvalidConfig)

	neg := -1
	_, err = Recipe{Padding: &neg}.Apply(model.DefaultAtlasConfig())
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
}
