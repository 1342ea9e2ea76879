package model

import (
	"fmt"
	"strconv"
	"strings"
)

// AtlasSize is one entry of the canvas size menu.
type AtlasSize struct {
	Width  int
	Height int
}

func (s AtlasSize) String() string { return FormatSize(s.Width, s.Height) }

// AtlasSizes is the fixed menu of canvas sizes, smallest area first.
var AtlasSizes = []AtlasSize{
	{256, 256},
	{512, 256},
	{512, 512},
	{1024, 512},
	{1024, 1024},
	{2048, 1024},
	{2048, 2048},
	{4096, 2048},
	{4096, 4096},
	{8192, 4096},
	{8192, 8192},
}

// PaddingOptions is the padding menu in pixels.
var PaddingOptions = []int{0, 1, 2, 4, 8, 16}

// MaxAtlasDimension bounds sizes accepted from free-form input.
const MaxAtlasDimension = 8192

// FormatSize renders a size as "WxH".
func FormatSize(w, h int) string {
	return fmt.Sprintf("%dx%d", w, h)
}

// ParseSize parses "1024", "1024x512" or "1024X512".
func ParseSize(s string) (w, h int, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	parts := strings.Split(s, "x")
	switch len(parts) {
	case 1:
		w, err = strconv.Atoi(parts[0])
		h = w
	case 2:
		w, err = strconv.Atoi(strings.TrimSpace(parts[0]))
		if err == nil {
			h, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		}
	default:
		return 0, 0, fmt.Errorf("invalid atlas size %q", s)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("invalid atlas size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 || w > MaxAtlasDimension || h > MaxAtlasDimension {
		return 0, 0, fmt.Errorf("atlas size %q out of range 1..%d", s, MaxAtlasDimension)
	}
	return w, h, nil
}

// AtlasSizeLabels returns the menu labels of AtlasSizes.
func AtlasSizeLabels() []string {
	labels := make([]string, len(AtlasSizes))
	for i, s := range AtlasSizes {
		labels[i] = s.String()
	}
	return labels
}

// NextAtlasSize returns the first menu size larger in area than w×h.
func NextAtlasSize(w, h int) (AtlasSize, bool) {
	for _, s := range AtlasSizes {
		if s.Width*s.Height > w*h && s.Width >= w && s.Height >= h {
			return s, true
		}
	}
	return AtlasSize{}, false
}
