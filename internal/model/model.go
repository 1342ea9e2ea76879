package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidConfig is returned when an AtlasConfig cannot describe a canvas.
var ErrInvalidConfig = errors.New("invalid atlas config")

// ImageEntry is one sprite to be packed.
type ImageEntry struct {
	ID         string    `json:"id"`   // Opaque identifier, the file path for scanned folders
	Name       string    `json:"name"` // Display name, file name without extension
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	ByteSize   int64     `json:"byte_size"`
	ModifiedAt time.Time `json:"modified_at"`
}

// SortMethod selects the order in which entries are fed to the packer.
type SortMethod int

const (
	SortNameAsc SortMethod = iota
	SortNameDesc
	SortSizeAsc
	SortSizeDesc
	SortModifiedAsc
	SortModifiedDesc
	SortCustom // Caller-supplied order, no sorting
)

// SortField is the key a SortMethod compares on.
type SortField int

const (
	FieldNone SortField = iota
	FieldName
	FieldSize
	FieldModified
)

var sortMethodNames = []string{
	SortNameAsc:      "name-asc",
	SortNameDesc:     "name-desc",
	SortSizeAsc:      "size-asc",
	SortSizeDesc:     "size-desc",
	SortModifiedAsc:  "modified-asc",
	SortModifiedDesc: "modified-desc",
	SortCustom:       "custom",
}

// Labels shown in the sort selector, in menu order.
var sortMethodLabels = map[SortMethod]string{
	SortNameAsc:      "Name (A-Z)",
	SortNameDesc:     "Name (Z-A)",
	SortSizeAsc:      "File Size (Small - Large)",
	SortSizeDesc:     "File Size (Large - Small)",
	SortModifiedDesc: "Date Modified (Newest - Oldest)",
	SortModifiedAsc:  "Date Modified (Oldest - Newest)",
	SortCustom:       "Custom (Manual Order)",
}

// SortMethods lists every method in menu order.
var SortMethods = []SortMethod{
	SortNameAsc, SortNameDesc,
	SortSizeAsc, SortSizeDesc,
	SortModifiedDesc, SortModifiedAsc,
	SortCustom,
}

func (m SortMethod) String() string {
	if m < 0 || int(m) >= len(sortMethodNames) {
		return fmt.Sprintf("SortMethod(%d)", int(m))
	}
	return sortMethodNames[m]
}

// Label returns the human-readable menu label.
func (m SortMethod) Label() string {
	if l, ok := sortMethodLabels[m]; ok {
		return l
	}
	return m.String()
}

// Valid reports whether m is one of the declared methods.
func (m SortMethod) Valid() bool {
	return m >= SortNameAsc && m <= SortCustom
}

// Field returns the compared key, FieldNone for SortCustom.
func (m SortMethod) Field() SortField {
	switch m {
	case SortNameAsc, SortNameDesc:
		return FieldName
	case SortSizeAsc, SortSizeDesc:
		return FieldSize
	case SortModifiedAsc, SortModifiedDesc:
		return FieldModified
	default:
		return FieldNone
	}
}

// Descending reports whether the composed comparator is negated.
func (m SortMethod) Descending() bool {
	return m == SortNameDesc || m == SortSizeDesc || m == SortModifiedDesc
}

// ParseSortMethod accepts the canonical names as well as the fileSize-* and
// updated-* spellings found in older project files.
func ParseSortMethod(s string) (SortMethod, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.Replace(key, "filesize-", "size-", 1)
	key = strings.Replace(key, "updated-", "modified-", 1)
	for i, name := range sortMethodNames {
		if name == key {
			return SortMethod(i), nil
		}
	}
	return 0, fmt.Errorf("unknown sort method %q", s)
}

// SortMethodByLabel maps a menu label back to its method.
func SortMethodByLabel(label string) (SortMethod, bool) {
	for m, l := range sortMethodLabels {
		if l == label {
			return m, true
		}
	}
	return 0, false
}

// SortMethodLabels returns the menu labels in SortMethods order.
func SortMethodLabels() []string {
	labels := make([]string, 0, len(SortMethods))
	for _, m := range SortMethods {
		labels = append(labels, m.Label())
	}
	return labels
}

func (m SortMethod) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid sort method %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *SortMethod) UnmarshalText(text []byte) error {
	parsed, err := ParseSortMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// AtlasConfig holds the parameters of one pack invocation.
type AtlasConfig struct {
	Width   int        `json:"width"`   // Canvas width in pixels
	Height  int        `json:"height"`  // Canvas height in pixels
	Padding int        `json:"padding"` // Margin reserved on every side of each image
	Sort    SortMethod `json:"sort"`
}

// DefaultAtlasConfig returns the initial settings: a 1024x1024 canvas, 2 px
// padding and name order.
func DefaultAtlasConfig() AtlasConfig {
	return AtlasConfig{
		Width:   1024,
		Height:  1024,
		Padding: 2,
		Sort:    SortNameAsc,
	}
}

// Validate rejects configs that cannot describe a canvas.
func (c AtlasConfig) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("%w: canvas width %d must be positive", ErrInvalidConfig, c.Width)
	case c.Height <= 0:
		return fmt.Errorf("%w: canvas height %d must be positive", ErrInvalidConfig, c.Height)
	case c.Padding < 0:
		return fmt.Errorf("%w: padding %d must not be negative", ErrInvalidConfig, c.Padding)
	case !c.Sort.Valid():
		return fmt.Errorf("%w: unknown sort method %d", ErrInvalidConfig, int(c.Sort))
	}
	return nil
}

// SizeLabel formats the canvas size as "WxH".
func (c AtlasConfig) SizeLabel() string {
	return FormatSize(c.Width, c.Height)
}

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	X, Y, Width, Height int
}

// Intersects reports whether r and o share interior area. Touching edges do not count.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// PlacedRect is the position of one packed image. X and Y address the image
// content; padding lies outside this box.
type PlacedRect struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	SourceID string `json:"source_id"`
}

// Bounds returns the content box.
func (p PlacedRect) Bounds() Rect {
	return Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

// PaddedBounds returns the box reserved for the image including padding.
func (p PlacedRect) PaddedBounds(padding int) Rect {
	return Rect{
		X:      p.X - padding,
		Y:      p.Y - padding,
		Width:  p.Width + 2*padding,
		Height: p.Height + 2*padding,
	}
}

// PackResult is the output of one pack invocation.
type PackResult struct {
	Placed   []PlacedRect `json:"placed"`
	Rejected []string     `json:"rejected"`
}

// UsedArea returns the pixel area covered by placed content.
func (r PackResult) UsedArea() int {
	total := 0
	for _, p := range r.Placed {
		total += p.Width * p.Height
	}
	return total
}

// Efficiency returns the percentage of the canvas covered by content.
func (r PackResult) Efficiency(cfg AtlasConfig) float64 {
	area := cfg.Width * cfg.Height
	if area <= 0 {
		return 0
	}
	return float64(r.UsedArea()) / float64(area) * 100.0
}

// Extent returns the bottom-right corner of the padded area actually used,
// useful for trimming an atlas to its content.
func (r PackResult) Extent(padding int) (w, h int) {
	for _, p := range r.Placed {
		b := p.PaddedBounds(padding)
		if b.X+b.Width > w {
			w = b.X + b.Width
		}
		if b.Y+b.Height > h {
			h = b.Y + b.Height
		}
	}
	return w, h
}

// ProjectVersion is written into every saved project.
const ProjectVersion = "1.0.0"

// Project is the persisted snapshot of a packing session.
type Project struct {
	ID        string       `json:"id"`
	Version   string       `json:"version"`
	Name      string       `json:"name"`
	Folder    string       `json:"folder"`
	Entries   []ImageEntry `json:"entries"` // Kept in the session's custom order
	Config    AtlasConfig  `json:"config"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func NewProject() Project {
	now := time.Now().UTC()
	return Project{
		ID:        uuid.New().String(),
		Version:   ProjectVersion,
		Name:      "texture_atlas_project",
		Entries:   []ImageEntry{},
		Config:    DefaultAtlasConfig(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// EntryIndex maps entry identifiers to entries.
func EntryIndex(entries []ImageEntry) map[string]ImageEntry {
	idx := make(map[string]ImageEntry, len(entries))
	for _, e := range entries {
		idx[e.ID] = e
	}
	return idx
}
