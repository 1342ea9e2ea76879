// Package session holds the editable state of one packing session: the
// loaded entries, the custom order, the atlas config and the last good
// pack result. A Session is not safe for concurrent use; the GUI drives it
// from the main goroutine.
package session

import (
	"errors"
	"fmt"
	"math"

	"github.com/piwi3910/SpritePack/internal/engine"
	"github.com/piwi3910/SpritePack/internal/model"
)

// ErrNothingPacked is returned by Repack when no entry could be placed.
// The previous result is kept.
var ErrNothingPacked = errors.New("no images could be packed")

const (
	MinZoom  = 0.1
	MaxZoom  = 4.0
	ZoomStep = 0.1
)

type Session struct {
	Folder string
	Theme  string

	config  model.AtlasConfig
	entries map[string]model.ImageEntry
	order   []string
	zoom    float64

	result    model.PackResult
	hasResult bool

	history *History
}

// New starts an empty session with cfg, which must be valid.
func New(cfg model.AtlasConfig) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Session{
		Theme:   model.ThemeSystem,
		config:  cfg,
		entries: make(map[string]model.ImageEntry),
		zoom:    model.DefaultAtlasZoom,
		history: NewHistory(),
	}, nil
}

// FromProject restores a saved project. The saved entry order becomes the
// custom order.
func FromProject(p model.Project) (*Session, error) {
	s, err := New(p.Config)
	if err != nil {
		return nil, err
	}
	s.Folder = p.Folder
	for _, e := range p.Entries {
		if _, dup := s.entries[e.ID]; dup {
			continue
		}
		s.entries[e.ID] = e
		s.order = append(s.order, e.ID)
	}
	return s, nil
}

// Project snapshots the session for saving. Entries are written in the
// custom order.
func (s *Session) Project(base model.Project) model.Project {
	base.Folder = s.Folder
	base.Config = s.config
	base.Entries = s.Entries()
	return base
}

func (s *Session) Config() model.AtlasConfig { return s.config }

// SetConfig replaces the atlas config. Invalid configs are refused and the
// current one kept.
func (s *Session) SetConfig(cfg model.AtlasConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Sort != s.config.Sort {
		s.history.Push(MakeSnapshot(s.order, s.config.Sort, "Sort "+cfg.Sort.Label()))
	}
	s.config = cfg
	return nil
}

// SetSort changes only the sort method.
func (s *Session) SetSort(m model.SortMethod) error {
	cfg := s.config
	cfg.Sort = m
	return s.SetConfig(cfg)
}

// SetEntries replaces the loaded entries. Identifiers already in the custom
// order keep their position; new ones are appended by name. Undo history is
// cleared since earlier snapshots may reference removed entries.
func (s *Session) SetEntries(entries []model.ImageEntry) {
	loaded := s.loaded()
	next := make(map[string]model.ImageEntry, len(entries))
	var fresh []model.ImageEntry
	for _, e := range entries {
		if _, dup := next[e.ID]; dup {
			continue
		}
		next[e.ID] = e
		if !loaded[e.ID] {
			fresh = append(fresh, e)
		}
	}

	order := make([]string, 0, len(next))
	for _, id := range s.order {
		if _, ok := next[id]; ok {
			order = append(order, id)
		}
	}
	for _, e := range engine.Sort(fresh, model.SortNameAsc) {
		order = append(order, e.ID)
	}

	s.entries = next
	s.order = order
	s.history.Clear()
}

// AddEntries appends entries not already loaded, keeping the given order.
func (s *Session) AddEntries(entries []model.ImageEntry) int {
	loaded := s.loaded()
	added := 0
	for _, e := range entries {
		if loaded[e.ID] {
			continue
		}
		loaded[e.ID] = true
		if added == 0 {
			s.history.Push(MakeSnapshot(s.order, s.config.Sort, "Add images"))
		}
		s.entries[e.ID] = e
		s.order = append(s.order, e.ID)
		added++
	}
	return added
}

// loaded returns the identifiers in the custom order. The entry map may
// also hold entries removed by an undo, kept for redo.
func (s *Session) loaded() map[string]bool {
	set := make(map[string]bool, len(s.order))
	for _, id := range s.order {
		set[id] = true
	}
	return set
}

// Len returns the number of loaded entries.
func (s *Session) Len() int { return len(s.order) }

// Entries returns the loaded entries in custom order.
func (s *Session) Entries() []model.ImageEntry {
	out := make([]model.ImageEntry, len(s.order))
	for i, id := range s.order {
		out[i] = s.entries[id]
	}
	return out
}

// Ordered returns the entries in the current sort method. For SortCustom
// this is the custom order.
func (s *Session) Ordered() []model.ImageEntry {
	return engine.Sort(s.Entries(), s.config.Sort)
}

// Move relocates the entry at custom-order index from to index to. Moving
// switches the sort method to SortCustom, seeded from the order currently
// shown so the visible list does not jump.
func (s *Session) Move(from, to int) error {
	n := len(s.order)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("move %d -> %d out of range [0, %d)", from, to, n)
	}

	s.history.Push(MakeSnapshot(s.order, s.config.Sort, "Move"))
	if s.config.Sort != model.SortCustom {
		s.order = ids(s.Ordered())
		s.config.Sort = model.SortCustom
	}
	if from == to {
		return nil
	}

	id := s.order[from]
	s.order = append(s.order[:from], s.order[from+1:]...)
	s.order = append(s.order[:to], append([]string{id}, s.order[to:]...)...)
	return nil
}

// MoveID moves the entry with the given identifier to index to of the
// displayed order.
func (s *Session) MoveID(id string, to int) error {
	shown := ids(s.Ordered())
	for i, cur := range shown {
		if cur == id {
			return s.Move(i, to)
		}
	}
	return fmt.Errorf("unknown image %q", id)
}

// Reorder replaces the custom order with the given entries, as produced by
// importer.ApplyOrder, and switches to SortCustom.
func (s *Session) Reorder(entries []model.ImageEntry) error {
	if len(entries) != len(s.order) {
		return fmt.Errorf("reorder has %d images, session has %d", len(entries), len(s.order))
	}
	order := make([]string, len(entries))
	loaded := s.loaded()
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if !loaded[e.ID] || seen[e.ID] {
			return fmt.Errorf("reorder: unexpected image %q", e.ID)
		}
		seen[e.ID] = true
		order[i] = e.ID
	}
	s.history.Push(MakeSnapshot(s.order, s.config.Sort, "Import order"))
	s.order = order
	s.config.Sort = model.SortCustom
	return nil
}

// Undo restores the previous order and sort method.
func (s *Session) Undo() bool {
	snap, ok := s.history.Undo(MakeSnapshot(s.order, s.config.Sort, ""))
	if ok {
		s.restore(snap)
	}
	return ok
}

func (s *Session) Redo() bool {
	snap, ok := s.history.Redo(MakeSnapshot(s.order, s.config.Sort, ""))
	if ok {
		s.restore(snap)
	}
	return ok
}

func (s *Session) CanUndo() bool { return s.history.CanUndo() }
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

func (s *Session) restore(snap Snapshot) {
	s.order = snap.Order
	s.config.Sort = snap.Sort
}

// Repack sorts and packs the loaded entries with the current config. When
// packing fails or places nothing, the previous result stays current and an
// error is returned.
func (s *Session) Repack() (model.PackResult, error) {
	result, err := engine.Pack(s.Ordered(), s.config)
	if err != nil {
		return s.result, err
	}
	if len(result.Placed) == 0 {
		return s.result, ErrNothingPacked
	}
	s.result = result
	s.hasResult = true
	return result, nil
}

// Result returns the last good pack result.
func (s *Session) Result() (model.PackResult, bool) {
	return s.result, s.hasResult
}

// Entry looks up a loaded entry.
func (s *Session) Entry(id string) (model.ImageEntry, bool) {
	if !s.loaded()[id] {
		return model.ImageEntry{}, false
	}
	return s.entries[id], true
}

func (s *Session) Zoom() float64 { return s.zoom }

// SetZoom clamps z to [MinZoom, MaxZoom].
func (s *Session) SetZoom(z float64) float64 {
	z = math.Round(z*100) / 100
	s.zoom = math.Max(MinZoom, math.Min(MaxZoom, z))
	return s.zoom
}

func (s *Session) ZoomIn() float64  { return s.SetZoom(s.zoom + ZoomStep) }
func (s *Session) ZoomOut() float64 { return s.SetZoom(s.zoom - ZoomStep) }

func ids(entries []model.ImageEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}
