package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/SpritePack/internal/model"
)

func TestSaveAndLoadPresets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.json")

	store := model.NewPresetStore()
	store.Put(model.AtlasPreset{
		Name:   "UI icons",
		Config: model.AtlasConfig{Width: 512, Height: 256, Padding: 1, Sort: model.SortSizeDesc},
	})

	if err := SavePresets(path, store); err != nil {
		t.Fatalf("SavePresets error: %v", err)
	}

	loaded, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets error: %v", err)
	}

	if len(loaded.Presets) != 1 {
		t.Fatalf("expected 1 preset, got %d", len(loaded.Presets))
	}
	p, ok := loaded.Find("ui icons")
	if !ok {
		t.Fatal("expected to find preset case-insensitively")
	}
	if p.Config.Width != 512 || p.Config.Height != 256 || p.Config.Sort != model.SortSizeDesc {
		t.Errorf("unexpected config %+v", p.Config)
	}
}

func TestLoadPresets_NotFound(t *testing.T) {
	store, err := LoadPresets(filepath.Join(t.TempDir(), "nonexistent.json"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if store.Presets == nil || len(store.Presets) != 0 {
		t.Errorf("expected empty non-nil store, got %#v", store.Presets)
	}
}

func TestLoadPresets_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")
	data := []byte(`{"presets":[{"name":"bad","config":{"width":0,"height":64,"padding":0,"sort":"name-asc"}}]}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadPresets(path)
	if !errors.Is(err, model.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestPresetStorePutReplacesByName(t *testing.T) {
	store := model.NewPresetStore()
	store.Put(model.AtlasPreset{Name: "B", Config: model.DefaultAtlasConfig()})
	store.Put(model.AtlasPreset{Name: "a", Config: model.DefaultAtlasConfig()})
	store.Put(model.AtlasPreset{Name: "b", Config: model.AtlasConfig{Width: 64, Height: 64}})

	if len(store.Presets) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(store.Presets))
	}
	if p, _ := store.Find("B"); p.Config.Width != 64 {
		t.Errorf("expected replaced preset, got %+v", p)
	}
	if names := store.Names(); names[0] != "a" || names[1] != "b" {
		t.Errorf("unexpected names %v", names)
	}
	if !store.Remove("A") || store.Remove("missing") {
		t.Error("Remove reported the wrong result")
	}
	if len(store.Presets) != 1 {
		t.Errorf("expected 1 preset after remove, got %d", len(store.Presets))
	}
}
