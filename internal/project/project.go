// Package project persists sessions, presets and application preferences
// as JSON files, and reads batch recipes.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/SpritePack/internal/model"
)

// FileExtension is appended to project files saved from the GUI.
const FileExtension = ".atlasproj"

// ErrInvalidProject is returned when a project file is readable JSON but
// does not describe a usable project.
var ErrInvalidProject = errors.New("invalid project")

// Save writes p as indented JSON, creating parent directories. UpdatedAt is
// set to the current time.
func Save(path string, p model.Project) error {
	if err := p.Config.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = p.UpdatedAt
	}
	if p.Version == "" {
		p.Version = model.ProjectVersion
	}
	if p.Entries == nil {
		p.Entries = []model.ImageEntry{}
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// Load reads a project saved by Save. Entries keep their saved order.
func Load(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project file: %w", err)
	}
	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	if p.Version == "" {
		return model.Project{}, fmt.Errorf("%w: missing version field", ErrInvalidProject)
	}
	if p.Version != model.ProjectVersion {
		return model.Project{}, fmt.Errorf("%w: unsupported version %s", ErrInvalidProject, p.Version)
	}
	if err := p.Config.Validate(); err != nil {
		return model.Project{}, fmt.Errorf("%w: %w", ErrInvalidProject, err)
	}
	if p.Entries == nil {
		p.Entries = []model.ImageEntry{}
	}
	return p, nil
}
