// Package export writes pack results to interchange and report formats.
package export

import (
	"path/filepath"
	"strings"

	"github.com/piwi3910/SpritePack/internal/model"
)

// Frame is a placed rect joined with its entry metadata.
type Frame struct {
	ID       string
	Name     string
	X, Y     int
	Width    int
	Height   int
	ByteSize int64
}

// rejectedEntry is a rejected identifier joined with its entry metadata.
type rejectedEntry struct {
	ID     string
	Name   string
	Width  int
	Height int
}

// Frames joins result.Placed with entries, in placement order. Names fall
// back to the identifier's base name when the entry is unknown.
func Frames(result model.PackResult, entries []model.ImageEntry) []Frame {
	idx := model.EntryIndex(entries)
	frames := make([]Frame, len(result.Placed))
	for i, p := range result.Placed {
		e, ok := idx[p.SourceID]
		name := e.Name
		if !ok || name == "" {
			name = fallbackName(p.SourceID)
		}
		frames[i] = Frame{
			ID:       p.SourceID,
			Name:     name,
			X:        p.X,
			Y:        p.Y,
			Width:    p.Width,
			Height:   p.Height,
			ByteSize: e.ByteSize,
		}
	}
	return frames
}

func rejectedEntries(result model.PackResult, entries []model.ImageEntry) []rejectedEntry {
	idx := model.EntryIndex(entries)
	out := make([]rejectedEntry, len(result.Rejected))
	for i, id := range result.Rejected {
		e, ok := idx[id]
		name := e.Name
		if !ok || name == "" {
			name = fallbackName(id)
		}
		out[i] = rejectedEntry{ID: id, Name: name, Width: e.Width, Height: e.Height}
	}
	return out
}

func fallbackName(id string) string {
	base := filepath.Base(id)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
