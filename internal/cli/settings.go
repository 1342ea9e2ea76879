package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SpritePack/internal/model"
	"github.com/piwi3910/SpritePack/internal/project"
	"github.com/piwi3910/SpritePack/internal/scanner"
)

// presetPath is where --preset names are looked up.
var presetPath = project.DefaultPresetPath

// atlasFlags are the atlas settings shared by pack, compare and fit.
type atlasFlags struct {
	size     string // "1024" or "2048x1024"
	padding  int
	sort     string
	preset   string
	exifTime bool
	progress bool
}

func (f *atlasFlags) register(cmd *cobra.Command) {
	def := model.DefaultAtlasConfig()
	cmd.Flags().StringVarP(&f.size, "size", "s", def.SizeLabel(), "atlas size: 1024 or WIDTHxHEIGHT")
	cmd.Flags().IntVarP(&f.padding, "padding", "p", def.Padding, "margin in pixels around every sprite")
	cmd.Flags().StringVar(&f.sort, "sort", def.Sort.String(), "sort: name-asc, name-desc, size-asc, size-desc, modified-desc, modified-asc, custom")
	cmd.Flags().StringVar(&f.preset, "preset", "", "start from a saved preset")
	cmd.Flags().BoolVar(&f.exifTime, "exif-time", false, "use EXIF capture time of JPEGs for modified sorts")
	cmd.Flags().BoolVar(&f.progress, "progress", false, "show a progress view while scanning")
}

// config resolves the atlas config: defaults, then the preset, then the
// overlay (a recipe, when given), then any flag set on the command line.
func (f *atlasFlags) config(cmd *cobra.Command, preset string, overlay func(model.AtlasConfig) (model.AtlasConfig, error)) (model.AtlasConfig, error) {
	cfg := model.DefaultAtlasConfig()

	if f.preset != "" {
		preset = f.preset
	}
	if preset != "" {
		p, err := findPreset(preset)
		if err != nil {
			return model.AtlasConfig{}, err
		}
		cfg = p.Config
	}

	if overlay != nil {
		var err error
		if cfg, err = overlay(cfg); err != nil {
			return model.AtlasConfig{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		w, h, err := model.ParseSize(f.size)
		if err != nil {
			return model.AtlasConfig{}, fmt.Errorf("%w: %w", model.ErrInvalidConfig, err)
		}
		cfg.Width, cfg.Height = w, h
	}
	if flags.Changed("padding") {
		cfg.Padding = f.padding
	}
	if flags.Changed("sort") {
		m, err := model.ParseSortMethod(f.sort)
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

func findPreset(name string) (model.AtlasPreset, error) {
	store, err := project.LoadPresets(presetPath())
	if err != nil {
		return model.AtlasPreset{}, fmt.Errorf("failed to load presets: %w", err)
	}
	p, ok := store.Find(name)
	if !ok {
		return model.AtlasPreset{}, fmt.Errorf("unknown preset %q", name)
	}
	return p, nil
}

// scan loads the folder's sprites, logging skipped files.
func (f *atlasFlags) scan(ctx context.Context, dir string, exifTime bool) ([]model.ImageEntry, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	opts := scanner.Options{ExifTime: exifTime || f.exifTime, Logger: logger}
	var (
		report scanner.Report
		err    error
	)
	if f.progress {
		report, err = scanWithProgress(ctx, dir, opts)
	} else {
		report, err = scanner.ScanFolder(ctx, dir, opts)
	}
	if err != nil {
		return nil, err
	}

	prog.done(fmt.Sprintf("Scanned %d sprites", len(report.Entries)))
	if len(report.Skipped) > 0 {
		logger.Warn("some files could not be decoded", "skipped", len(report.Skipped))
	}
	return report.Entries, nil
}
