package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/SpritePack/internal/engine"
	"github.com/piwi3910/SpritePack/internal/model"
)

// ─── Scenario Comparison ───────────────────────────────────

func (a *App) showCompareDialog() {
	if a.session.Len() == 0 {
		dialog.ShowInformation("No Images", "Open a folder of images first.", a.window)
		return
	}

	results := engine.CompareScenarios(engine.BuildDefaultScenarios(a.session.Config()), a.session.Entries())
	best := engine.BestScenario(results)

	rows := container.NewVBox(container.NewGridWithColumns(6,
		widget.NewLabelWithStyle("Scenario", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Size", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Placed", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Rejected", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Efficiency", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel(""),
	), widget.NewSeparator())

	var d dialog.Dialog
	for i, r := range results {
		name := widget.NewLabel(r.Scenario.Name)
		if i == best {
			name.TextStyle = fyne.TextStyle{Bold: true}
			name.Importance = widget.SuccessImportance
		}
		placed, rejected, eff := "-", "-", "-"
		if r.Err == nil {
			placed = fmt.Sprintf("%d", r.PlacedCount)
			rejected = fmt.Sprintf("%d", r.RejectedCount)
			eff = fmt.Sprintf("%.1f%%", r.Efficiency)
		}
		cfg := r.Scenario.Config
		apply := widget.NewButtonWithIcon("Apply", theme.ConfirmIcon(), func() {
			a.applyConfig(cfg)
			d.Hide()
		})
		if r.Err != nil || i == 0 {
			apply.Disable()
		}
		rows.Add(container.NewGridWithColumns(6,
			name,
			widget.NewLabel(cfg.SizeLabel()),
			widget.NewLabel(placed),
			widget.NewLabel(rejected),
			widget.NewLabel(eff),
			apply,
		))
	}

	d = dialog.NewCustom("Compare Settings", "Close", container.NewVScroll(rows), a.window)
	d.Resize(fyne.NewSize(750, 400))
	d.Show()
}

// fitSmallest switches to the smallest menu size that places every sprite
// with the current padding and sort.
func (a *App) fitSmallest() {
	if a.session.Len() == 0 {
		dialog.ShowInformation("No Images", "Open a folder of images first.", a.window)
		return
	}
	cfg, _, ok := engine.SmallestFit(a.session.Entries(), a.session.Config(), model.AtlasSizes)
	if !ok {
		dialog.ShowInformation("No Size Fits",
			fmt.Sprintf("No atlas size up to %d fits all %d sprites.", model.MaxAtlasDimension, a.session.Len()),
			a.window)
		return
	}
	a.applyConfig(cfg)
}

func (a *App) applyConfig(cfg model.AtlasConfig) {
	if err := a.session.SetConfig(cfg); err != nil {
		a.showError(err)
		return
	}
	a.syncControls()
	a.refreshList()
	a.repack()
}
