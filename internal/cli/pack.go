package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SpritePack/internal/engine"
	"github.com/piwi3910/SpritePack/internal/export"
	"github.com/piwi3910/SpritePack/internal/importer"
	"github.com/piwi3910/SpritePack/internal/model"
	"github.com/piwi3910/SpritePack/internal/project"
	"github.com/piwi3910/SpritePack/internal/render"
	"github.com/piwi3910/SpritePack/internal/session"
)

const defaultOutput = "atlas.png"

// outputs lists the files written after packing. Empty paths are skipped.
type outputs struct {
	atlas    string
	quality  string
	manifest string
	pdf      string
	labels   string
	xlsx     string
	dxf      string
}

func (o *outputs) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.atlas, "out", "o", defaultOutput, "atlas PNG output path")
	cmd.Flags().StringVarP(&o.quality, "quality", "q", string(render.QualityDefault), "PNG compression: default, fast, best, none")
	cmd.Flags().StringVar(&o.manifest, "manifest", "", "write a JSON frame manifest")
	cmd.Flags().StringVar(&o.pdf, "pdf", "", "write a PDF layout report")
	cmd.Flags().StringVar(&o.labels, "labels", "", "write PDF sprite index cards with QR codes")
	cmd.Flags().StringVar(&o.xlsx, "xlsx", "", "write an XLSX frame table")
	cmd.Flags().StringVar(&o.dxf, "dxf", "", "write a DXF frame outline")
}

// overlay fills outputs left at their defaults from a recipe.
func (o *outputs) overlay(cmd *cobra.Command, r project.Recipe) {
	flags := cmd.Flags()
	pick := func(flag string, dst *string, v string) {
		if v != "" && !flags.Changed(flag) {
			*dst = v
		}
	}
	pick("out", &o.atlas, r.Output)
	pick("quality", &o.quality, r.Quality)
	pick("manifest", &o.manifest, r.Manifest)
	pick("pdf", &o.pdf, r.Report)
	pick("labels", &o.labels, r.Labels)
	pick("xlsx", &o.xlsx, r.XLSX)
	pick("dxf", &o.dxf, r.DXF)
}

type packOpts struct {
	atlas  atlasFlags
	out    outputs
	order  string
	recipe string
}

func newPackCmd() *cobra.Command {
	var opts packOpts

	cmd := &cobra.Command{
		Use:   "pack [folder]",
		Short: "Pack a folder of sprites into an atlas",
		Long: `Pack scans a folder for images (png, jpg, gif, bmp, webp), orders them and
places them row by row into a fixed-size atlas. Sprites that do not fit are
reported and left out.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := ""
			if len(args) == 1 {
				folder = args[0]
			}
			return runPack(cmd, folder, &opts)
		},
	}

	opts.atlas.register(cmd)
	opts.out.register(cmd)
	cmd.Flags().StringVar(&opts.order, "order", "", "CSV or XLSX file listing sprite names in custom order")
	cmd.Flags().StringVar(&opts.recipe, "recipe", "", "TOML or YAML recipe with folder, settings and outputs")

	return cmd
}

func runPack(cmd *cobra.Command, folder string, opts *packOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	var (
		recipe   project.Recipe
		overlay  func(model.AtlasConfig) (model.AtlasConfig, error)
		exifTime bool
	)
	if opts.recipe != "" {
		var err error
		if recipe, err = project.LoadRecipe(opts.recipe); err != nil {
			return err
		}
		logger.Debug("loaded recipe", "path", opts.recipe)
		overlay = recipe.Apply
		opts.out.overlay(cmd, recipe)
		exifTime = recipe.ExifTime
		if folder == "" {
			folder = recipe.Folder
		}
		if opts.order == "" {
			opts.order = recipe.Order
		}
	}
	if folder == "" {
		return errors.New("no folder given: pass one as argument or set it in the recipe")
	}

	cfg, err := opts.atlas.config(cmd, recipe.Preset, overlay)
	if err != nil {
		return err
	}
	quality, err := render.ParseQuality(opts.out.quality)
	if err != nil {
		return err
	}

	entries, err := opts.atlas.scan(ctx, folder, exifTime)
	if err != nil {
		return err
	}

	if opts.order != "" {
		if entries, err = applyOrderFile(ctx, opts.order, entries); err != nil {
			return err
		}
		if cfg.Sort != model.SortCustom {
			logger.Info("custom order file given, switching sort to custom", "was", cfg.Sort)
			cfg.Sort = model.SortCustom
		}
	}

	prog := newProgress(logger)
	result, err := engine.New(cfg).SortAndPack(entries)
	if err != nil {
		return err
	}
	if len(result.Placed) == 0 {
		return session.ErrNothingPacked
	}
	prog.done(fmt.Sprintf("Packed %d of %d sprites", len(result.Placed), len(entries)))

	if err := writeOutputs(ctx, opts.out, quality, result, cfg, entries); err != nil {
		return err
	}

	printNewline()
	printPackSummary(cfg, result, entries)
	return nil
}

// applyOrderFile reorders entries by the names listed in a CSV or XLSX file.
func applyOrderFile(ctx context.Context, path string, entries []model.ImageEntry) ([]model.ImageEntry, error) {
	logger := loggerFromContext(ctx)

	imp := importer.ImportOrder(path)
	if len(imp.Errors) > 0 {
		return nil, fmt.Errorf("failed to import order from %s: %s", path, imp.Errors[0])
	}
	for _, w := range imp.Warnings {
		logger.Warn(w)
	}

	ordered, warnings := importer.ApplyOrder(entries, imp.Names)
	for _, w := range warnings {
		logger.Warn(w)
	}
	logger.Debug("applied custom order", "path", path, "names", len(imp.Names))
	return ordered, nil
}

// writeOutputs composites the atlas and writes every requested export.
func writeOutputs(ctx context.Context, o outputs, q render.Quality, result model.PackResult, cfg model.AtlasConfig, entries []model.ImageEntry) error {
	logger := loggerFromContext(ctx)

	prog := newProgress(logger)
	img, err := render.Composite(result, cfg, render.NewFileSource())
	if err != nil {
		return err
	}
	atlasPath := o.atlas
	if atlasPath == "" {
		atlasPath = defaultOutput
	}
	if err := render.SaveAtlas(atlasPath, img, q); err != nil {
		return err
	}
	prog.done("Rendered atlas")

	printSuccess("Wrote atlas")
	printFile(atlasPath)

	exports := []struct {
		path  string
		write func(string) error
	}{
		{o.manifest, func(p string) error {
			return export.SaveManifest(p, result, cfg, entries, filepath.Base(atlasPath))
		}},
		{o.pdf, func(p string) error { return export.ExportPDF(p, result, cfg, entries) }},
		{o.labels, func(p string) error { return export.ExportLabels(p, result, cfg, entries) }},
		{o.xlsx, func(p string) error { return export.ExportXLSX(p, result, cfg, entries) }},
		{o.dxf, func(p string) error { return export.ExportDXF(p, result, cfg) }},
	}

	var errs []error
	for _, e := range exports {
		if e.path == "" {
			continue
		}
		if err := e.write(e.path); err != nil {
			printError("Failed to write %s", e.path)
			errs = append(errs, err)
			continue
		}
		printFile(e.path)
	}
	return errors.Join(errs...)
}
