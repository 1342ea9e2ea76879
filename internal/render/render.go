// Package render composites packed images into a single atlas bitmap and
// encodes it.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/draw"

	"github.com/piwi3910/SpritePack/internal/model"
	"github.com/piwi3910/SpritePack/internal/scanner"
)

// Source supplies decoded pixels for an entry identifier.
type Source interface {
	Image(id string) (image.Image, error)
}

// FileSource decodes images from disk, treating identifiers as paths.
// Decoded images are cached; FileSource is safe for concurrent use.
type FileSource struct {
	mu    sync.Mutex
	cache map[string]image.Image
}

func NewFileSource() *FileSource {
	return &FileSource{cache: make(map[string]image.Image)}
}

func (s *FileSource) Image(id string) (image.Image, error) {
	s.mu.Lock()
	img, ok := s.cache[id]
	s.mu.Unlock()
	if ok {
		return img, nil
	}

	img, err := scanner.ReadImage(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[id] = img
	s.mu.Unlock()
	return img, nil
}

// Forget drops cached pixels, e.g. after the folder changed on disk.
func (s *FileSource) Forget() {
	s.mu.Lock()
	s.cache = make(map[string]image.Image)
	s.mu.Unlock()
}

// MapSource serves images held in memory.
type MapSource map[string]image.Image

func (m MapSource) Image(id string) (image.Image, error) {
	img, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("no image for %q", id)
	}
	return img, nil
}

// Composite draws every placed rect onto a transparent cfg.Width×cfg.Height
// canvas at its packed position, without scaling. Pixels beyond the placed
// width and height are clipped.
func Composite(result model.PackResult, cfg model.AtlasConfig, src Source) (*image.NRGBA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	atlas := image.NewNRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	for _, p := range result.Placed {
		img, err := src.Image(p.SourceID)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", p.SourceID, err)
		}
		dst := image.Rect(p.X, p.Y, p.X+p.Width, p.Y+p.Height)
		draw.Draw(atlas, dst, img, img.Bounds().Min, draw.Src)
	}
	return atlas, nil
}

// Quality selects the PNG compression level.
type Quality string

const (
	QualityDefault Quality = "default"
	QualityFast    Quality = "fast"
	QualityBest    Quality = "best"
	QualityNone    Quality = "none"
)

// ParseQuality maps a quality name to its value; empty means default.
func ParseQuality(s string) (Quality, error) {
	switch Quality(s) {
	case "", QualityDefault:
		return QualityDefault, nil
	case QualityFast, QualityBest, QualityNone:
		return Quality(s), nil
	}
	return "", fmt.Errorf("unknown quality %q (want default, fast, best or none)", s)
}

func (q Quality) compression() png.CompressionLevel {
	switch q {
	case QualityFast:
		return png.BestSpeed
	case QualityBest:
		return png.BestCompression
	case QualityNone:
		return png.NoCompression
	default:
		return png.DefaultCompression
	}
}

// EncodePNG writes img as PNG at the given quality.
func EncodePNG(w io.Writer, img image.Image, q Quality) error {
	enc := png.Encoder{CompressionLevel: q.compression()}
	return enc.Encode(w, img)
}

// SaveAtlas writes img to path, creating parent directories.
func SaveAtlas(path string, img image.Image, q Quality) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create atlas file: %w", err)
	}
	if err := EncodePNG(f, img, q); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode atlas: %w", err)
	}
	return f.Close()
}

// Thumbnail fits img inside a transparent size×size square, keeping the
// aspect ratio and centering it.
func Thumbnail(img image.Image, size int) *image.NRGBA {
	thumb := image.NewNRGBA(image.Rect(0, 0, size, size))
	b := img.Bounds()
	if size <= 0 || b.Empty() {
		return thumb
	}

	w, h := size, size
	if b.Dx() > b.Dy() {
		h = max(1, b.Dy()*size/b.Dx())
	} else if b.Dy() > b.Dx() {
		w = max(1, b.Dx()*size/b.Dy())
	}
	x := (size - w) / 2
	y := (size - h) / 2

	draw.CatmullRom.Scale(thumb, image.Rect(x, y, x+w, y+h), img, b, draw.Over, nil)
	return thumb
}

// Checkerboard returns the light grey pattern drawn behind transparent pixels.
func Checkerboard(w, h, tile int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	if tile <= 0 {
		tile = 1
	}
	light := color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	dark := color.NRGBA{R: 0xDD, G: 0xDD, B: 0xDD, A: 0xFF}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/tile+y/tile)%2 == 0 {
				img.SetNRGBA(x, y, light)
			} else {
				img.SetNRGBA(x, y, dark)
			}
		}
	}
	return img
}

// Preview flattens the atlas over a checkerboard so transparency is visible.
func Preview(atlas image.Image, tile int) *image.NRGBA {
	b := atlas.Bounds()
	bg := Checkerboard(b.Dx(), b.Dy(), tile)
	draw.Draw(bg, bg.Bounds(), atlas, b.Min, draw.Over)
	return bg
}
