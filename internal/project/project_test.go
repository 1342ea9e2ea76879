package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/SpritePack/internal/model"
)

func sampleProject() model.Project {
	p := model.NewProject()
	p.Name = "hero"
	p.Folder = "/art/hero"
	p.Config = model.AtlasConfig{Width: 512, Height: 256, Padding: 4, Sort: model.SortCustom}
	mod := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	p.Entries = []model.ImageEntry{
		{ID: "/art/hero/walk.png", Name: "walk", Width: 64, Height: 32, ByteSize: 900, ModifiedAt: mod},
		{ID: "/art/hero/idle.png", Name: "idle", Width: 32, Height: 32, ByteSize: 400, ModifiedAt: mod.Add(time.Hour)},
		{ID: "/art/hero/jump.png", Name: "jump", Width: 48, Height: 40, ByteSize: 700, ModifiedAt: mod.Add(2 * time.Hour)},
	}
	return p
}

func TestSaveAndLoadProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "hero"+FileExtension)
	p := sampleProject()

	require.NoError(t, Save(path, p))
	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, p.ID, loaded.ID)
	assert.Equal(t, p.Name, loaded.Name)
	assert.Equal(t, p.Folder, loaded.Folder)
	assert.Equal(t, p.Config, loaded.Config)
	assert.Equal(t, p.Entries, loaded.Entries, "custom order and fields survive")
	assert.True(t, p.CreatedAt.Equal(loaded.CreatedAt))
	assert.False(t, loaded.UpdatedAt.Before(p.UpdatedAt))
}

func TestSaveRejectsInvalidConfig(t *testing.T) {
	p := sampleProject()
	p.Config.Width = 0

	err := Save(filepath.Join(t.TempDir(), "bad.atlasproj"), p)
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
}

func TestLoadProjectNilEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.atlasproj")
	data := []byte(`{"id":"x","version":"1.0.0","entries":null,"config":{"width":64,"height":64,"padding":0,"sort":"name-desc"}}`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.NotNil(t, p.Entries)
	assert.Empty(t, p.Entries)
	assert.Equal(t, model.SortNameDesc, p.Config.Sort)
}

func TestLoadProjectErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
		return path
	}

	tests := []struct {
		name    string
		path    string
		invalid bool
	}{
		{"missing file", filepath.Join(dir, "nope.atlasproj"), false},
		{"not json", write("junk.atlasproj", "{{{"), false},
		{"no version", write("nover.atlasproj", `{"config":{"width":8,"height":8,"sort":"name-asc"}}`), true},
		{"future version", write("future.atlasproj", `{"version":"9.0.0","config":{"width":8,"height":8,"sort":"name-asc"}}`), true},
		{"bad config", write("badcfg.atlasproj", `{"version":"1.0.0","config":{"width":8,"height":-1,"sort":"name-asc"}}`), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalidProject))
		})
	}
}
