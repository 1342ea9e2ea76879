package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/SpritePack/internal/model"
	"github.com/piwi3910/SpritePack/internal/project"
)

// ─── Preset Manager Dialog ─────────────────────────────────

func (a *App) showPresetsDialog() {
	presetList := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		presetList.RemoveAll()

		if len(a.presets.Presets) == 0 {
			presetList.Add(widget.NewLabel("No presets saved. Save the current settings to create one."))
			return
		}

		header := container.NewGridWithColumns(6,
			widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Size", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Padding", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Sort", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabel(""),
			widget.NewLabel(""),
		)
		presetList.Add(header)
		presetList.Add(widget.NewSeparator())

		for _, name := range a.presets.Names() {
			p, _ := a.presets.Find(name)
			row := container.NewGridWithColumns(6,
				widget.NewLabel(p.Name),
				widget.NewLabel(p.Config.SizeLabel()),
				widget.NewLabel(fmt.Sprintf(paddingLabel, p.Config.Padding)),
				widget.NewLabel(p.Config.Sort.Label()),
				widget.NewButtonWithIcon("Apply", theme.ConfirmIcon(), func() {
					a.applyPreset(p.Name)
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.presets.Remove(p.Name)
					a.persistPresets()
					refreshList()
				}),
			)
			presetList.Add(row)
		}
	}

	refreshList()

	saveBtn := widget.NewButtonWithIcon("Save Current Settings...", theme.ContentAddIcon(), func() {
		a.showSavePresetDialog(refreshList)
	})
	importBtn := widget.NewButtonWithIcon("Import...", theme.FolderOpenIcon(), func() {
		a.importPresets(refreshList)
	})
	exportBtn := widget.NewButtonWithIcon("Export...", theme.DocumentSaveIcon(), a.exportPresets)

	toolbar := container.NewHBox(saveBtn, layout.NewSpacer(), importBtn, exportBtn)

	content := container.NewBorder(
		toolbar,
		nil, nil, nil,
		container.NewVScroll(presetList),
	)

	d := dialog.NewCustom("Atlas Presets", "Close", content, a.window)
	d.Resize(fyne.NewSize(700, 450))
	d.Show()
}

func (a *App) showSavePresetDialog(onDone func()) {
	cfg := a.session.Config()

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Preset name")
	nameEntry.SetText(fmt.Sprintf("%s %s", cfg.SizeLabel(), cfg.Sort.Label()))

	form := dialog.NewForm("Save Preset", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Size", widget.NewLabel(cfg.SizeLabel())),
			widget.NewFormItem("Padding", widget.NewLabel(fmt.Sprintf(paddingLabel, cfg.Padding))),
			widget.NewFormItem("Sort", widget.NewLabel(cfg.Sort.Label())),
		},
		func(ok bool) {
			if !ok {
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			if name == "" {
				dialog.ShowError(fmt.Errorf("preset name must not be empty"), a.window)
				return
			}
			a.presets.Put(model.AtlasPreset{Name: name, Config: cfg})
			a.persistPresets()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 300))
	form.Show()
}

// applyPreset switches the session to the named preset's settings.
func (a *App) applyPreset(name string) {
	if a.syncing || name == "" {
		return
	}
	p, ok := a.presets.Find(name)
	if !ok {
		return
	}
	if err := a.session.SetConfig(p.Config); err != nil {
		a.showError(fmt.Errorf("preset %q: %w", name, err))
		return
	}
	a.logger.Info("applied preset", "name", p.Name, "size", p.Config.SizeLabel())
	a.syncControls()
	a.refreshList()
	a.repack()
}

func (a *App) refreshPresetSelect() {
	if a.presetSelect == nil {
		return
	}
	a.syncing = true
	a.presetSelect.Options = a.presets.Names()
	a.presetSelect.ClearSelected()
	a.syncing = false
}

// ─── Import / Export ───────────────────────────────────────

func (a *App) importPresets(onDone func()) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		imported, err := project.LoadPresets(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		for _, p := range imported.Presets {
			a.presets.Put(p)
		}
		a.persistPresets()
		onDone()
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Imported %d presets. %d presets are now saved.", len(imported.Presets), len(a.presets.Presets)),
			a.window)
	}, a.window)
}

func (a *App) exportPresets() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()

		if err := project.SavePresets(writer.URI().Path(), a.presets); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Presets exported to %s", writer.URI().Path()),
				a.window)
		}
	}, a.window)
	d.SetFileName("presets.json")
	d.Show()
}

// savePresets persists the preset store to disk.
func (a *App) savePresets() error {
	if err := project.SavePresets(project.DefaultPresetPath(), a.presets); err != nil {
		return fmt.Errorf("failed to save presets: %w", err)
	}
	return nil
}

func (a *App) persistPresets() {
	if err := a.savePresets(); err != nil {
		dialog.ShowError(err, a.window)
	}
	a.refreshPresetSelect()
}
