package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/SpritePack/internal/model"
	"github.com/piwi3910/SpritePack/internal/project"
	"github.com/piwi3910/SpritePack/internal/render"
)

var qualityOptions = []string{
	string(render.QualityDefault),
	string(render.QualityFast),
	string(render.QualityBest),
	string(render.QualityNone),
}

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	cfg := a.config

	sizeSelect := widget.NewSelect(model.AtlasSizeLabels(), func(selected string) {
		if w, h, err := model.ParseSize(selected); err == nil {
			cfg.DefaultWidth, cfg.DefaultHeight = w, h
		}
	})
	sizeSelect.SetSelected(model.FormatSize(cfg.DefaultWidth, cfg.DefaultHeight))

	paddings := make([]string, len(model.PaddingOptions))
	for i, p := range model.PaddingOptions {
		paddings[i] = fmt.Sprintf(paddingLabel, p)
	}
	paddingSelect := widget.NewSelect(paddings, func(selected string) {
		var pad int
		if _, err := fmt.Sscanf(selected, paddingLabel, &pad); err == nil {
			cfg.DefaultPadding = pad
		}
	})
	paddingSelect.SetSelected(fmt.Sprintf(paddingLabel, cfg.DefaultPadding))

	sortSelect := widget.NewSelect(model.SortMethodLabels(), func(selected string) {
		if m, ok := model.SortMethodByLabel(selected); ok {
			cfg.DefaultSort = m
		}
	})
	sortSelect.SetSelected(cfg.DefaultSort.Label())

	themeSelect := widget.NewSelect([]string{model.ThemeSystem, model.ThemeLight, model.ThemeDark}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	qualitySelect := widget.NewSelect(qualityOptions, func(selected string) {
		cfg.ExportQuality = selected
	})
	qualitySelect.SetSelected(cfg.ExportQuality)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("PNG Compression", qualitySelect),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default Atlas Size", sizeSelect),
		widget.NewFormItem("Default Padding", paddingSelect),
		widget.NewFormItem("Default Sort", sortSelect),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			themeChanged := cfg.Theme != a.config.Theme
			a.config = cfg
			if themeChanged {
				a.setTheme(cfg.Theme)
			}
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved", "Defaults apply to new sessions.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(450, 380))
	d.Show()
}

// showImportExportDialog displays the import/export data dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()
			path := writer.URI().Path()
			if err := project.ExportAllData(path, a.config, a.presets); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("Settings and %d presets exported to:\n%s", len(a.presets.Presets), path), a.window)
			}
		}, a.window)
		d.SetFileName("spritepack-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your current settings and presets.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					defer reader.Close()
					backup, err := project.ImportAllData(reader.URI().Path())
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.config = backup.Config
					a.presets = backup.Presets
					a.setTheme(a.config.Theme)
					a.refreshPresetSelect()
					if err := a.saveConfig(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
						return
					}
					if err := a.savePresets(); err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.SetupMenus()
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export settings, recent files and presets to a backup file,\nor import from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Data", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}
