package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/piwi3910/SpritePack/internal/model"
)

// ManifestRect is a rectangle in atlas pixels.
type ManifestRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type ManifestSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

// ManifestFrame follows the JSON-array frame layout understood by common
// sprite engines. Frames are never rotated or trimmed.
type ManifestFrame struct {
	Filename         string       `json:"filename"`
	Frame            ManifestRect `json:"frame"`
	Rotated          bool         `json:"rotated"`
	Trimmed          bool         `json:"trimmed"`
	SpriteSourceSize ManifestRect `json:"spriteSourceSize"`
	SourceSize       ManifestSize `json:"sourceSize"`
}

type ManifestMeta struct {
	App     string       `json:"app"`
	Version string       `json:"version"`
	Image   string       `json:"image,omitempty"`
	Format  string       `json:"format"`
	Size    ManifestSize `json:"size"`
	Padding int          `json:"padding"`
	Sort    string       `json:"sort"`
	Scale   string       `json:"scale"`
}

// Manifest describes where each frame lives in the atlas image.
type Manifest struct {
	Frames   []ManifestFrame `json:"frames"`
	Rejected []string        `json:"rejected"`
	Meta     ManifestMeta    `json:"meta"`
}

// Version is stamped into manifests.
var Version = "dev"

// BuildManifest assembles the manifest for result. image is the atlas file
// name recorded in meta and may be empty.
func BuildManifest(result model.PackResult, cfg model.AtlasConfig, entries []model.ImageEntry, image string) Manifest {
	m := Manifest{
		Frames:   make([]ManifestFrame, 0, len(result.Placed)),
		Rejected: make([]string, 0, len(result.Rejected)),
		Meta: ManifestMeta{
			App:     "spritepack",
			Version: Version,
			Image:   image,
			Format:  "RGBA8888",
			Size:    ManifestSize{W: cfg.Width, H: cfg.Height},
			Padding: cfg.Padding,
			Sort:    cfg.Sort.String(),
			Scale:   "1",
		},
	}
	for _, f := range Frames(result, entries) {
		m.Frames = append(m.Frames, ManifestFrame{
			Filename:         filepath.Base(f.ID),
			Frame:            ManifestRect{X: f.X, Y: f.Y, W: f.Width, H: f.Height},
			SpriteSourceSize: ManifestRect{W: f.Width, H: f.Height},
			SourceSize:       ManifestSize{W: f.Width, H: f.Height},
		})
	}
	for _, r := range rejectedEntries(result, entries) {
		m.Rejected = append(m.Rejected, filepath.Base(r.ID))
	}
	return m
}

// ExportManifest writes the manifest as indented JSON.
func ExportManifest(w io.Writer, result model.PackResult, cfg model.AtlasConfig, entries []model.ImageEntry, image string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(BuildManifest(result, cfg, entries, image)); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	return nil
}

// SaveManifest writes the manifest to path, creating parent directories.
func SaveManifest(path string, result model.PackResult, cfg model.AtlasConfig, entries []model.ImageEntry, image string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create manifest: %w", err)
	}
	if err := ExportManifest(f, result, cfg, entries, image); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
