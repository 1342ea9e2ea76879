package engine

import (
	"github.com/piwi3910/SpritePack/internal/model"
)

// Packer places images into a single fixed-size atlas using shelf packing.
// A Packer holds no state between calls and is safe for concurrent use.
type Packer struct {
	Config model.AtlasConfig
}

// New creates a Packer for the given atlas config.
func New(cfg model.AtlasConfig) *Packer {
	return &Packer{Config: cfg}
}

// SortAndPack orders entries by the configured sort method and packs them.
func (p *Packer) SortAndPack(entries []model.ImageEntry) (model.PackResult, error) {
	if err := p.Config.Validate(); err != nil {
		return model.PackResult{}, err
	}
	return p.Pack(Sort(entries, p.Config.Sort))
}

// Pack places entries in the given order.
func (p *Packer) Pack(entries []model.ImageEntry) (model.PackResult, error) {
	return Pack(entries, p.Config)
}

// shelfCursor tracks the next free position on the current shelf.
type shelfCursor struct {
	x, y      int
	rowHeight int // Tallest padded height placed on the current shelf
}

// Pack places entries left to right into shelves, top to bottom, in input
// order. Entries that do not fit are reported in Rejected; they never move
// the cursor, and the space they leave is not revisited.
func Pack(entries []model.ImageEntry, cfg model.AtlasConfig) (model.PackResult, error) {
	if err := cfg.Validate(); err != nil {
		return model.PackResult{}, err
	}

	result := model.PackResult{
		Placed:   make([]model.PlacedRect, 0, len(entries)),
		Rejected: []string{},
	}
	pad := cfg.Padding
	cur := shelfCursor{x: pad, y: pad}

	for _, e := range entries {
		if e.Width <= 0 || e.Height <= 0 {
			result.Rejected = append(result.Rejected, e.ID)
			continue
		}

		paddedW := e.Width + 2*pad
		paddedH := e.Height + 2*pad

		// Too wide for any shelf; breaking the row would not help.
		if paddedW > cfg.Width {
			result.Rejected = append(result.Rejected, e.ID)
			continue
		}

		if cur.x+paddedW > cfg.Width {
			cur.x = pad
			cur.y += cur.rowHeight + pad
			cur.rowHeight = 0
		}

		if cur.y+paddedH > cfg.Height {
			result.Rejected = append(result.Rejected, e.ID)
			continue
		}

		result.Placed = append(result.Placed, model.PlacedRect{
			X:        cur.x,
			Y:        cur.y,
			Width:    e.Width,
			Height:   e.Height,
			SourceID: e.ID,
		})
		cur.x += paddedW
		cur.rowHeight = max(cur.rowHeight, paddedH)
	}

	return result, nil
}
