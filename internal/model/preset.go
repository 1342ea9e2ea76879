package model

import (
	"sort"
	"strings"
)

// AtlasPreset is a named, reusable atlas configuration.
type AtlasPreset struct {
	Name   string      `json:"name"`
	Config AtlasConfig `json:"config"`
}

// PresetStore holds the user's saved presets.
type PresetStore struct {
	Presets []AtlasPreset `json:"presets"`
}

func NewPresetStore() PresetStore {
	return PresetStore{Presets: []AtlasPreset{}}
}

// Put adds p, replacing any preset with the same name (case-insensitive).
func (s *PresetStore) Put(p AtlasPreset) {
	for i := range s.Presets {
		if strings.EqualFold(s.Presets[i].Name, p.Name) {
			s.Presets[i] = p
			return
		}
	}
	s.Presets = append(s.Presets, p)
}

// Remove deletes the named preset and reports whether it existed.
func (s *PresetStore) Remove(name string) bool {
	for i := range s.Presets {
		if strings.EqualFold(s.Presets[i].Name, name) {
			s.Presets = append(s.Presets[:i], s.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// Find looks a preset up by name (case-insensitive).
func (s PresetStore) Find(name string) (AtlasPreset, bool) {
	for _, p := range s.Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return AtlasPreset{}, false
}

// Names returns preset names sorted alphabetically.
func (s PresetStore) Names() []string {
	names := make([]string, len(s.Presets))
	for i, p := range s.Presets {
		names[i] = p.Name
	}
	sort.Strings(names)
	return names
}
