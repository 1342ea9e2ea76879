package ui

import (
	"fyne.io/fyne/v2/dialog"

	"github.com/piwi3910/SpritePack/internal/export"
	"github.com/piwi3910/SpritePack/internal/model"
)

// packed returns the last successful layout, telling the user when there
// is none yet.
func (a *App) packed() (model.PackResult, bool) {
	result, ok := a.session.Result()
	if !ok || len(result.Placed) == 0 {
		dialog.ShowInformation("Nothing Packed", "Pack some images before exporting.", a.window)
		return model.PackResult{}, false
	}
	return result, true
}

func (a *App) exportManifest() {
	result, ok := a.packed()
	if !ok {
		return
	}
	cfg, entries := a.session.Config(), a.session.Entries()
	a.saveFile("atlas.json", ".json", func(path string) error {
		return export.SaveManifest(path, result, cfg, entries, "atlas.png")
	})
}

func (a *App) exportPDF() {
	result, ok := a.packed()
	if !ok {
		return
	}
	cfg, entries := a.session.Config(), a.session.Entries()
	a.saveFile("atlas-report.pdf", ".pdf", func(path string) error {
		return export.ExportPDF(path, result, cfg, entries)
	})
}

func (a *App) exportLabels() {
	result, ok := a.packed()
	if !ok {
		return
	}
	cfg, entries := a.session.Config(), a.session.Entries()
	a.saveFile("atlas-cards.pdf", ".pdf", func(path string) error {
		return export.ExportLabels(path, result, cfg, entries)
	})
}

func (a *App) exportXLSX() {
	result, ok := a.packed()
	if !ok {
		return
	}
	cfg, entries := a.session.Config(), a.session.Entries()
	a.saveFile("atlas-frames.xlsx", ".xlsx", func(path string) error {
		return export.ExportXLSX(path, result, cfg, entries)
	})
}

func (a *App) exportDXF() {
	result, ok := a.packed()
	if !ok {
		return
	}
	cfg := a.session.Config()
	a.saveFile("atlas-frames.dxf", ".dxf", func(path string) error {
		return export.ExportDXF(path, result, cfg)
	})
}
