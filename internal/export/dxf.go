package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/SpritePack/internal/model"
)

// DXF layer names.
const (
	LayerAtlas   = "ATLAS"
	LayerFrames  = "FRAMES"
	LayerPadding = "PADDING"
)

// ExportDXF writes the atlas layout as a 2D drawing in pixel units: the
// canvas outline on ATLAS, one closed box per frame on FRAMES and each
// padded footprint on PADDING. Y is flipped so the drawing matches the
// image orientation (origin top-left).
func ExportDXF(path string, result model.PackResult, cfg model.AtlasConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name  string
		color color.ColorNumber
	}{
		{LayerAtlas, color.White},
		{LayerFrames, color.Green},
		{LayerPadding, color.Cyan},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.color, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	flip := func(y int) float64 { return float64(cfg.Height - y) }

	if err := d.ChangeLayer(LayerAtlas); err != nil {
		return err
	}
	if err := box(d, 0, flip(0), float64(cfg.Width), flip(cfg.Height)); err != nil {
		return err
	}

	if err := d.ChangeLayer(LayerFrames); err != nil {
		return err
	}
	for _, p := range result.Placed {
		if err := box(d, float64(p.X), flip(p.Y), float64(p.X+p.Width), flip(p.Y+p.Height)); err != nil {
			return err
		}
	}

	if cfg.Padding > 0 {
		if err := d.ChangeLayer(LayerPadding); err != nil {
			return err
		}
		for _, p := range result.Placed {
			b := p.PaddedBounds(cfg.Padding)
			if err := box(d, float64(b.X), flip(b.Y), float64(b.X+b.Width), flip(b.Y+b.Height)); err != nil {
				return err
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF: %w", err)
	}
	return nil
}

// box draws a closed rectangle as four LINE entities.
func box(d *drawing.Drawing, x1, y1, x2, y2 float64) error {
	corners := [][2]float64{{x1, y1}, {x2, y1}, {x2, y2}, {x1, y2}}
	for i, c := range corners {
		n := corners[(i+1)%len(corners)]
		if _, err := d.Line(c[0], c[1], 0, n[0], n[1], 0); err != nil {
			return err
		}
	}
	return nil
}
