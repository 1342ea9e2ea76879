package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/piwi3910/SpritePack/internal/model"
)

// Recipe describes one batch pack run. Zero values leave the corresponding
// setting to the caller's defaults.
type Recipe struct {
	Folder   string `toml:"folder" yaml:"folder"`
	Preset   string `toml:"preset" yaml:"preset"`
	Size     string `toml:"size" yaml:"size"` // "1024" or "2048x1024"
	Padding  *int   `toml:"padding" yaml:"padding"`
	Sort     string `toml:"sort" yaml:"sort"`
	Quality  string `toml:"quality" yaml:"quality"`
	ExifTime bool   `toml:"exif_time" yaml:"exif_time"`
	Order    string `toml:"order" yaml:"order"` // CSV or XLSX custom order

	Output   string `toml:"output" yaml:"output"`
	Manifest string `toml:"manifest" yaml:"manifest"`
	Report   string `toml:"report" yaml:"report"` // PDF layout report
	Labels   string `toml:"labels" yaml:"labels"`
	XLSX     string `toml:"xlsx" yaml:"xlsx"`
	DXF      string `toml:"dxf" yaml:"dxf"`
}

// LoadRecipe reads a .toml, .yaml or .yml recipe. Unknown keys are an error.
// Relative paths inside the recipe are resolved against its directory.
func LoadRecipe(path string) (Recipe, error) {
	var r Recipe

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.DecodeFile(path, &r)
		if err != nil {
			return Recipe{}, fmt.Errorf("failed to parse recipe %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Recipe{}, fmt.Errorf("recipe %s: unknown key %q", path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return Recipe{}, fmt.Errorf("failed to read recipe: %w", err)
		}
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&r); err != nil {
			return Recipe{}, fmt.Errorf("failed to parse recipe %s: %w", path, err)
		}
	default:
		return Recipe{}, fmt.Errorf("unsupported recipe format %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}

	r.resolve(filepath.Dir(path))
	return r, nil
}

func (r *Recipe) resolve(base string) {
	for _, p := range []*string{&r.Folder, &r.Order, &r.Output, &r.Manifest, &r.Report, &r.Labels, &r.XLSX, &r.DXF} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

// Apply overlays the recipe's atlas settings on base.
func (r Recipe) Apply(base model.AtlasConfig) (model.AtlasConfig, error) {
	cfg := base
	if r.Size != "" {
		w, h, err := model.ParseSize(r.Size)
		if err != nil {
			return model.AtlasConfig{}, err
		}
		cfg.Width, cfg.Height = w, h
	}
	if r.Padding != nil {
		cfg.Padding = *r.Padding
	}
	if r.Sort != "" {
		m, err := model.ParseSortMethod(r.Sort)
		if err != nil {
			return model.AtlasConfig{}, fmt.Errorf("%w: %w", model.ErrInvalidConfig, err)
		}
		cfg.Sort = m
	}
	if err := cfg.Validate(); err != nil {
		return model.AtlasConfig{}, err
	}
	return cfg, nil
}
