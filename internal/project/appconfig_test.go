package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/SpritePack/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultWidth = 2048
	cfg.DefaultSort = model.SortModifiedDesc
	cfg.Theme = model.ThemeDark
	cfg.AtlasZoom = 1.5
	cfg.RecentFolders = []string{"/tmp/sprites", "/tmp/icons"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultWidth != 2048 {
		t.Errorf("expected DefaultWidth=2048, got %d", loaded.DefaultWidth)
	}
	if loaded.DefaultSort != model.SortModifiedDesc {
		t.Errorf("expected DefaultSort=modified-desc, got %s", loaded.DefaultSort)
	}
	if loaded.Theme != model.ThemeDark {
		t.Errorf("expected Theme=dark, got %s", loaded.Theme)
	}
	if loaded.AtlasZoom != 1.5 {
		t.Errorf("expected AtlasZoom=1.5, got %f", loaded.AtlasZoom)
	}
	if len(loaded.RecentFolders) != 2 {
		t.Errorf("expected 2 recent folders, got %d", len(loaded.RecentFolders))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultWidth != defaults.DefaultWidth {
		t.Errorf("expected default width %d, got %d", defaults.DefaultWidth, cfg.DefaultWidth)
	}
	if cfg.Theme != model.ThemeSystem {
		t.Errorf("expected theme=system, got %s", cfg.Theme)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadAppConfig(path); err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "dir", "config.json")

	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadAppConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	// Older files may lack newer fields and carry null lists.
	data := []byte(`{"theme":"light","recent_folders":null,"default_sort":"fileSize-desc"}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentFolders == nil || cfg.RecentProjects == nil {
		t.Error("recent lists should not be nil after loading")
	}
	if cfg.DefaultSort != model.SortSizeDesc {
		t.Errorf("expected fileSize-desc alias to parse, got %s", cfg.DefaultSort)
	}
	if cfg.AtlasZoom != model.DefaultAtlasZoom {
		t.Errorf("expected default zoom, got %f", cfg.AtlasZoom)
	}
	if cfg.DefaultWidth != 1024 {
		t.Errorf("expected default width to survive, got %d", cfg.DefaultWidth)
	}
}
