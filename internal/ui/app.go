package ui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/charmbracelet/log"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"github.com/piwi3910/SpritePack/internal/importer"
	"github.com/piwi3910/SpritePack/internal/model"
	"github.com/piwi3910/SpritePack/internal/project"
	"github.com/piwi3910/SpritePack/internal/render"
	"github.com/piwi3910/SpritePack/internal/scanner"
	"github.com/piwi3910/SpritePack/internal/session"
	"github.com/piwi3910/SpritePack/internal/ui/widgets"
)

const (
	thumbSize    = 32
	checkerTile  = 8
	appTitle     = "SpritePack"
	paddingLabel = "%d px"
)

// App holds all application state and UI references.
type App struct {
	app    fyne.App
	window fyne.Window
	logger *log.Logger
	theme  *SpritePackTheme

	config      model.AppConfig
	presets     model.PresetStore
	session     *session.Session
	project     model.Project // identity and timestamps of the open project
	projectPath string
	source      *render.FileSource
	atlas       *image.NRGBA
	thumbs      map[string]image.Image
	renderGen   int
	syncing     bool

	// UI references for dynamic updates
	list          *widget.List
	shown         []model.ImageEntry
	rejected      map[string]bool
	selected      int
	sizeSelect    *widget.Select
	paddingSelect *widget.Select
	sortSelect    *widget.Select
	presetSelect  *widget.Select
	atlasCanvas   *widgets.AtlasCanvas
	statusLabel   *widget.Label
	zoomLabel     *widget.Label
	undoBtn       *ttwidget.Button
	redoBtn       *ttwidget.Button
}

func NewApp(application fyne.App, window fyne.Window) *App {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Prefix:          "spritepack",
	})

	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		logger.Warn("failed to load app config, using defaults", "err", err)
		cfg = model.DefaultAppConfig()
	}
	presets, err := project.LoadPresets(project.DefaultPresetPath())
	if err != nil {
		logger.Warn("failed to load presets", "err", err)
		presets = model.NewPresetStore()
	}

	a := &App{
		app:      application,
		window:   window,
		logger:   logger,
		config:   cfg,
		presets:  presets,
		project:  model.NewProject(),
		source:   render.NewFileSource(),
		thumbs:   make(map[string]image.Image),
		rejected: make(map[string]bool),
		selected: -1,
	}
	a.session = a.newSession()

	a.theme = NewSpritePackTheme(cfg.Theme)
	application.Settings().SetTheme(a.theme)
	return a
}

func (a *App) newSession() *session.Session {
	s, err := session.New(a.config.AtlasConfig())
	if err != nil {
		// AtlasConfig falls back to valid defaults
		panic(err)
	}
	s.SetZoom(a.config.AtlasZoom)
	s.Theme = a.config.Theme
	return s
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	recentFolders := fyne.NewMenuItem("Open Recent Folder", nil)
	recentFolders.ChildMenu = a.recentMenu(a.config.RecentFolders, a.openFolder)
	recentProjects := fyne.NewMenuItem("Open Recent Project", nil)
	recentProjects.ChildMenu = a.recentMenu(a.config.RecentProjects, a.openProjectPath)

	exportItem := fyne.NewMenuItem("Export", nil)
	exportItem.ChildMenu = fyne.NewMenu("",
		fyne.NewMenuItem("Frame Manifest (JSON)...", a.exportManifest),
		fyne.NewMenuItem("Layout Report (PDF)...", a.exportPDF),
		fyne.NewMenuItem("Sprite Index Cards (PDF)...", a.exportLabels),
		fyne.NewMenuItem("Frame Table (XLSX)...", a.exportXLSX),
		fyne.NewMenuItem("Frame Outline (DXF)...", a.exportDXF),
	)

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Session", a.newSessionAction),
		fyne.NewMenuItem("Open Folder...", a.chooseFolder),
		recentFolders,
		fyne.NewMenuItem("Add Images...", a.addImages),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open Project...", a.loadProject),
		recentProjects,
		fyne.NewMenuItem("Save Project...", a.saveProject),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Atlas PNG...", a.saveAtlas),
		exportItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import / Export Data...", a.showImportExportDialog),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", a.undo),
		fyne.NewMenuItem("Redo", a.redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Move Up", func() { a.moveSelected(-1) }),
		fyne.NewMenuItem("Move Down", func() { a.moveSelected(1) }),
		fyne.NewMenuItem("Import Custom Order...", a.importOrder),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", a.showSettingsDialog),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", a.zoomIn),
		fyne.NewMenuItem("Zoom Out", a.zoomOut),
		fyne.NewMenuItem("Toggle Frame Outlines", a.toggleFrames),
		fyne.NewMenuItem("Toggle Theme", a.toggleTheme),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Repack", a.repack),
		fyne.NewMenuItem("Compare Settings...", a.showCompareDialog),
		fyne.NewMenuItem("Find Smallest Size", a.fitSmallest),
		fyne.NewMenuItem("Presets...", a.showPresetsDialog),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, toolsMenu, helpMenu))
}

func (a *App) recentMenu(paths []string, open func(string)) *fyne.Menu {
	if len(paths) == 0 {
		empty := fyne.NewMenuItem("(none)", nil)
		empty.Disabled = true
		return fyne.NewMenu("", empty)
	}
	items := make([]*fyne.MenuItem, len(paths))
	for i, p := range paths {
		items[i] = fyne.NewMenuItem(p, func() { open(p) })
	}
	return fyne.NewMenu("", items...)
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About "+appTitle,
		appTitle+" - Texture Atlas Packer\n\n"+
			"Packs a folder of sprites row by row into a single\n"+
			"fixed-size texture atlas.",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	split := container.NewHSplit(a.buildSidebar(), a.buildPreview())
	split.Offset = 0.3
	a.syncControls()
	a.refreshList()
	return fynetooltip.AddWindowToolTipLayer(split, a.window.Canvas())
}

// ─── Sidebar ───────────────────────────────────────────────

func (a *App) buildSidebar() fyne.CanvasObject {
	a.sizeSelect = widget.NewSelect(model.AtlasSizeLabels(), func(string) { a.onSettingsChanged() })
	paddings := make([]string, len(model.PaddingOptions))
	for i, p := range model.PaddingOptions {
		paddings[i] = fmt.Sprintf(paddingLabel, p)
	}
	a.paddingSelect = widget.NewSelect(paddings, func(string) { a.onSettingsChanged() })
	a.sortSelect = widget.NewSelect(model.SortMethodLabels(), func(string) { a.onSettingsChanged() })
	a.presetSelect = widget.NewSelect(a.presets.Names(), a.applyPreset)
	a.presetSelect.PlaceHolder = "Apply a preset..."

	settings := widget.NewCard("Atlas", "", container.NewGridWithColumns(2,
		widget.NewLabel("Size"), a.sizeSelect,
		widget.NewLabel("Padding"), a.paddingSelect,
		widget.NewLabel("Sort"), a.sortSelect,
		widget.NewLabel("Preset"), a.presetSelect,
	))

	a.list = widget.NewList(
		func() int { return len(a.shown) },
		func() fyne.CanvasObject {
			img := canvas.NewImageFromImage(nil)
			img.FillMode = canvas.ImageFillContain
			img.SetMinSize(fyne.NewSize(thumbSize, thumbSize))
			return container.NewHBox(img, widget.NewLabel("sprite"))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(a.shown) {
				return
			}
			e := a.shown[id]
			row := obj.(*fyne.Container)
			img := row.Objects[0].(*canvas.Image)
			img.Image = a.thumbs[e.ID]
			img.Refresh()
			label := row.Objects[1].(*widget.Label)
			text := fmt.Sprintf("%s  %s", e.Name, model.FormatSize(e.Width, e.Height))
			if a.rejected[e.ID] {
				text += "  (does not fit)"
				label.Importance = widget.WarningImportance
			} else {
				label.Importance = widget.MediumImportance
			}
			label.SetText(text)
		},
	)
	a.list.OnSelected = func(id widget.ListItemID) {
		a.selected = id
		if id < len(a.shown) && a.atlasCanvas != nil {
			a.atlasCanvas.Selected = a.shown[id].ID
			a.atlasCanvas.Refresh()
		}
	}
	a.list.OnUnselected = func(widget.ListItemID) { a.selected = -1 }

	upBtn := newIconButtonWithTooltip(theme.MoveUpIcon(), "Move selected sprite up", func() { a.moveSelected(-1) })
	downBtn := newIconButtonWithTooltip(theme.MoveDownIcon(), "Move selected sprite down", func() { a.moveSelected(1) })
	folderBtn := widget.NewButtonWithIcon("Open Folder", theme.FolderOpenIcon(), a.chooseFolder)

	listHeader := container.NewHBox(
		widget.NewLabelWithStyle("Sprites", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		layout.NewSpacer(),
		upBtn, downBtn,
	)

	return container.NewBorder(
		container.NewVBox(folderBtn, settings, listHeader),
		nil, nil, nil,
		a.list,
	)
}

// ─── Preview ───────────────────────────────────────────────

func (a *App) buildPreview() fyne.CanvasObject {
	a.atlasCanvas = widgets.NewAtlasCanvas(a.session.Config(), float32(a.session.Zoom()))
	a.atlasCanvas.OnTapped = a.selectByID

	a.undoBtn = newIconButtonWithTooltip(theme.ContentUndoIcon(), "Undo", a.undo)
	a.redoBtn = newIconButtonWithTooltip(theme.ContentRedoIcon(), "Redo", a.redo)
	a.zoomLabel = widget.NewLabel("")
	a.statusLabel = widget.NewLabel("Open a folder of images to begin.")
	a.statusLabel.Wrapping = fyne.TextWrapWord

	toolbar := container.NewHBox(
		a.undoBtn, a.redoBtn,
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.ZoomOutIcon(), "Zoom out", a.zoomOut),
		a.zoomLabel,
		newIconButtonWithTooltip(theme.ZoomInIcon(), "Zoom in", a.zoomIn),
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.ViewRefreshIcon(), "Repack", a.repack),
		newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Save atlas PNG", a.saveAtlas),
		layout.NewSpacer(),
		newIconButtonWithTooltip(theme.ColorPaletteIcon(), "Toggle theme", a.toggleTheme),
	)

	return container.NewBorder(
		toolbar,
		a.statusLabel,
		nil, nil,
		container.NewScroll(container.NewCenter(a.atlasCanvas)),
	)
}

// ─── State Sync ────────────────────────────────────────────

// syncControls pushes the session config into the selects without
// triggering their change handlers.
func (a *App) syncControls() {
	a.syncing = true
	defer func() { a.syncing = false }()

	cfg := a.session.Config()
	label := cfg.SizeLabel()
	if !containsString(a.sizeSelect.Options, label) {
		a.sizeSelect.Options = append(a.sizeSelect.Options, label)
	}
	a.sizeSelect.SetSelected(label)

	pad := fmt.Sprintf(paddingLabel, cfg.Padding)
	if !containsString(a.paddingSelect.Options, pad) {
		a.paddingSelect.Options = append(a.paddingSelect.Options, pad)
	}
	a.paddingSelect.SetSelected(pad)
	a.sortSelect.SetSelected(cfg.Sort.Label())

	a.zoomLabel.SetText(fmt.Sprintf("%.0f%%", a.session.Zoom()*100))
	a.refreshHistoryButtons()
}

func (a *App) refreshHistoryButtons() {
	if a.session.CanUndo() {
		a.undoBtn.Enable()
	} else {
		a.undoBtn.Disable()
	}
	if a.session.CanRedo() {
		a.redoBtn.Enable()
	} else {
		a.redoBtn.Disable()
	}
}

// onSettingsChanged reads the selects into the session and repacks.
func (a *App) onSettingsChanged() {
	if a.syncing || a.sizeSelect == nil || a.paddingSelect == nil || a.sortSelect == nil {
		return
	}
	cfg := a.session.Config()
	if w, h, err := model.ParseSize(a.sizeSelect.Selected); err == nil {
		cfg.Width, cfg.Height = w, h
	}
	var pad int
	if _, err := fmt.Sscanf(a.paddingSelect.Selected, paddingLabel, &pad); err == nil {
		cfg.Padding = pad
	}
	if m, ok := model.SortMethodByLabel(a.sortSelect.Selected); ok {
		cfg.Sort = m
	}

	if err := a.session.SetConfig(cfg); err != nil {
		a.showError(err)
		a.syncControls()
		return
	}
	a.refreshHistoryButtons()
	a.refreshList()
	a.repack()
}

func (a *App) refreshList() {
	a.shown = a.session.Ordered()
	if a.list != nil {
		a.list.UnselectAll()
		a.list.Refresh()
	}
}

func (a *App) selectByID(id string) {
	if id == "" {
		a.list.UnselectAll()
		return
	}
	for i, e := range a.shown {
		if e.ID == id {
			a.list.Select(i)
			a.list.ScrollTo(i)
			return
		}
	}
}

// ─── Packing ───────────────────────────────────────────────

// repack packs the session and composites the atlas in the background.
// On failure the last good atlas stays visible.
func (a *App) repack() {
	result, err := a.session.Repack()
	if err != nil {
		switch {
		case a.session.Len() == 0:
			a.statusLabel.SetText("No images loaded. Open a folder of images to begin.")
		case errors.Is(err, session.ErrNothingPacked):
			cfg := a.session.Config()
			a.statusLabel.SetText(fmt.Sprintf("None of the %d images fit in %s. Try a larger atlas size.", a.session.Len(), cfg.SizeLabel()))
		default:
			a.showError(err)
		}
		return
	}

	cfg := a.session.Config()
	entries := a.session.Entries()
	a.rejected = make(map[string]bool, len(result.Rejected))
	for _, id := range result.Rejected {
		a.rejected[id] = true
	}
	a.list.Refresh()

	a.renderGen++
	gen := a.renderGen
	a.statusLabel.SetText("Rendering atlas...")
	go func() {
		img, err := render.Composite(result, cfg, a.source)
		var preview *image.NRGBA
		if err == nil {
			preview = render.Preview(img, checkerTile)
		}
		fyne.Do(func() {
			if gen != a.renderGen {
				return
			}
			if err != nil {
				a.logger.Error("composite failed", "err", err)
				a.showError(err)
				return
			}
			a.atlas = img
			a.atlasCanvas.SetAtlas(preview, result, cfg, entries)
			a.statusLabel.SetText(statusText(result, cfg, len(entries)))
		})
	}()
}

func statusText(result model.PackResult, cfg model.AtlasConfig, total int) string {
	w, h := result.Extent(cfg.Padding)
	text := fmt.Sprintf("%s atlas: placed %d of %d sprites, used %s (%.1f%%)",
		cfg.SizeLabel(), len(result.Placed), total, model.FormatSize(w, h), result.Efficiency(cfg))
	if n := len(result.Rejected); n > 0 {
		text += fmt.Sprintf(". %d sprite(s) did not fit", n)
	}
	return text
}

// ─── Folder Loading ────────────────────────────────────────

func (a *App) chooseFolder() {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		a.openFolder(uri.Path())
	}, a.window)
	d.Show()
}

// openFolder scans dir in the background and replaces the loaded sprites.
// Sprites already in the custom order keep their position.
func (a *App) openFolder(dir string) {
	a.scanAsync(fmt.Sprintf("Scanning %s", filepath.Base(dir)), func(ctx context.Context, opts scanner.Options) (scanner.Report, error) {
		return scanner.ScanFolder(ctx, dir, opts)
	}, func(report scanner.Report) {
		a.session.Folder = dir
		a.session.SetEntries(report.Entries)
		a.source.Forget()
		a.thumbs = make(map[string]image.Image)

		a.config.AddRecentFolder(dir)
		a.persistConfig()
		a.SetupMenus()
		a.window.SetTitle(fmt.Sprintf("%s - %s", appTitle, filepath.Base(dir)))

		a.afterEntriesChanged(report)
	})
}

func (a *App) addImages() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		if !scanner.IsImageFile(path) {
			dialog.ShowError(fmt.Errorf("%s is not a supported image (%s)", filepath.Base(path), strings.Join(scanner.AllowedExtensions, ", ")), a.window)
			return
		}
		a.scanAsync("Loading image", func(ctx context.Context, opts scanner.Options) (scanner.Report, error) {
			return scanner.LoadEntries(ctx, []string{path}, opts)
		}, func(report scanner.Report) {
			if a.session.AddEntries(report.Entries) == 0 && len(report.Skipped) == 0 {
				dialog.ShowInformation("Already Loaded", "This image is already part of the session.", a.window)
			}
			a.afterEntriesChanged(report)
		})
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter(scanner.AllowedExtensions))
	d.Show()
}

// scanAsync runs load off the UI goroutine behind a progress dialog and
// hands the report to done on the UI goroutine.
func (a *App) scanAsync(title string, load func(context.Context, scanner.Options) (scanner.Report, error), done func(scanner.Report)) {
	ctx, cancel := context.WithCancel(context.Background())
	bar := widget.NewProgressBar()
	progress := dialog.NewCustom(title, "Cancel", bar, a.window)
	progress.SetOnClosed(cancel)
	progress.Show()

	updates := make(chan scanner.Progress, 16)
	go func() {
		seen := 0
		for u := range updates {
			seen++
			value := float64(seen) / float64(max(1, u.Total))
			fyne.Do(func() { bar.SetValue(value) })
		}
	}()

	go func() {
		report, err := load(ctx, scanner.Options{
			ExifTime: true,
			Logger:   a.logger,
			Progress: updates,
		})
		close(updates)
		fyne.Do(func() {
			progress.Hide()
			cancel()
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					a.showError(err)
				}
				return
			}
			done(report)
		})
	}()
}

func (a *App) afterEntriesChanged(report scanner.Report) {
	if len(report.Skipped) > 0 {
		names := make([]string, 0, len(report.Skipped))
		for _, s := range report.Skipped {
			names = append(names, filepath.Base(s.Path))
		}
		dialog.ShowInformation("Some Files Skipped",
			fmt.Sprintf("%d file(s) could not be decoded:\n\n%s", len(names), strings.Join(names, "\n")), a.window)
	}
	a.syncControls()
	a.refreshList()
	a.loadThumbnails()
	a.repack()
}

// loadThumbnails decodes missing thumbnails in the background.
func (a *App) loadThumbnails() {
	var missing []string
	for _, e := range a.session.Entries() {
		if _, ok := a.thumbs[e.ID]; !ok {
			missing = append(missing, e.ID)
		}
	}
	if len(missing) == 0 {
		return
	}

	go func() {
		thumbs := make(map[string]image.Image, len(missing))
		for _, id := range missing {
			img, err := a.source.Image(id)
			if err != nil {
				a.logger.Debug("thumbnail skipped", "id", id, "err", err)
				continue
			}
			thumbs[id] = render.Thumbnail(img, thumbSize)
		}
		fyne.Do(func() {
			for id, t := range thumbs {
				a.thumbs[id] = t
			}
			a.list.Refresh()
		})
	}()
}

// ─── Ordering ──────────────────────────────────────────────

func (a *App) moveSelected(delta int) {
	from := a.selected
	to := from + delta
	if from < 0 || to < 0 || to >= len(a.shown) {
		return
	}
	id := a.shown[from].ID
	if err := a.session.Move(from, to); err != nil {
		a.showError(err)
		return
	}
	a.syncControls()
	a.refreshList()
	a.selectByID(id)
	a.repack()
}

func (a *App) undo() {
	if a.session.Undo() {
		a.syncControls()
		a.refreshList()
		a.repack()
	}
}

func (a *App) redo() {
	if a.session.Redo() {
		a.syncControls()
		a.refreshList()
		a.repack()
	}
}

func (a *App) importOrder() {
	if a.session.Len() == 0 {
		dialog.ShowInformation("No Images", "Open a folder of images first.", a.window)
		return
	}
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		imp := importer.ImportOrder(path)
		if len(imp.Errors) > 0 {
			dialog.ShowError(fmt.Errorf("errors encountered during import:\n\n%s", strings.Join(imp.Errors, "\n")), a.window)
			return
		}
		ordered, warnings := importer.ApplyOrder(a.session.Entries(), imp.Names)
		if err := a.session.Reorder(ordered); err != nil {
			a.showError(err)
			return
		}
		a.syncControls()
		a.refreshList()
		a.repack()

		warnings = append(imp.Warnings, warnings...)
		msg := fmt.Sprintf("Applied custom order from %d names.", len(imp.Names))
		if len(warnings) > 0 {
			a.logger.Warn("order import warnings", "count", len(warnings))
			msg += "\n\n" + strings.Join(warnings, "\n")
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".txt", ".xlsx"}))
	d.Show()
}

// ─── View ──────────────────────────────────────────────────

func (a *App) zoomIn()  { a.applyZoom(a.session.ZoomIn()) }
func (a *App) zoomOut() { a.applyZoom(a.session.ZoomOut()) }

func (a *App) applyZoom(z float64) {
	a.atlasCanvas.SetZoom(float32(z))
	a.zoomLabel.SetText(fmt.Sprintf("%.0f%%", z*100))
	a.config.AtlasZoom = z
	a.persistConfig()
}

func (a *App) toggleFrames() {
	a.atlasCanvas.ShowFrames = !a.atlasCanvas.ShowFrames
	a.atlasCanvas.Refresh()
}

func (a *App) toggleTheme() {
	a.setTheme(nextThemeName(a.config.Theme))
}

func (a *App) setTheme(name string) {
	a.config.Theme = name
	a.session.Theme = name
	a.theme.SetThemeName(name)
	a.app.Settings().SetTheme(a.theme)
	a.persistConfig()
}

// ─── Session & Projects ────────────────────────────────────

func (a *App) newSessionAction() {
	a.session = a.newSession()
	a.project = model.NewProject()
	a.projectPath = ""
	a.atlas = nil
	a.thumbs = make(map[string]image.Image)
	a.rejected = make(map[string]bool)
	a.source.Forget()
	a.renderGen++
	a.atlasCanvas.SetAtlas(nil, model.PackResult{}, a.session.Config(), nil)
	a.window.SetTitle(appTitle)
	a.syncControls()
	a.refreshList()
	a.statusLabel.SetText("Open a folder of images to begin.")
}

func (a *App) saveProject() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if !strings.HasSuffix(path, project.FileExtension) {
			path += project.FileExtension
		}

		if a.project.Name == "" {
			a.project.Name = strings.TrimSuffix(filepath.Base(path), project.FileExtension)
		}
		p := a.session.Project(a.project)
		if err := project.Save(path, p); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.project = p
		a.projectPath = path
		a.config.AddRecentProject(path)
		a.persistConfig()
		a.SetupMenus()
	}, a.window)
	name := a.project.Name
	if name == "" {
		name = "atlas"
	}
	d.SetFileName(name + project.FileExtension)
	d.Show()
}

func (a *App) loadProject() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.openProjectPath(path)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{project.FileExtension}))
	d.Show()
}

// openProjectPath restores a saved project. When its folder still exists
// the folder is rescanned so sizes and new files are current; the saved
// order is kept.
func (a *App) openProjectPath(path string) {
	p, err := project.Load(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	s, err := session.FromProject(p)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	s.SetZoom(a.config.AtlasZoom)
	s.Theme = a.config.Theme

	a.session = s
	a.project = p
	a.projectPath = path
	a.source.Forget()
	a.thumbs = make(map[string]image.Image)
	a.config.AddRecentProject(path)
	a.persistConfig()
	a.SetupMenus()
	a.window.SetTitle(fmt.Sprintf("%s - %s", appTitle, p.Name))

	if info, err := os.Stat(p.Folder); err == nil && info.IsDir() {
		folder := p.Folder
		a.scanAsync("Refreshing project folder", func(ctx context.Context, opts scanner.Options) (scanner.Report, error) {
			return scanner.ScanFolder(ctx, folder, opts)
		}, func(report scanner.Report) {
			a.session.SetEntries(report.Entries)
			a.afterEntriesChanged(report)
		})
		return
	}
	a.logger.Warn("project folder missing, using saved entries", "folder", p.Folder)
	a.afterEntriesChanged(scanner.Report{})
}

func (a *App) saveAtlas() {
	if a.atlas == nil {
		dialog.ShowInformation("No Atlas", "Pack some images before saving the atlas.", a.window)
		return
	}
	quality, err := render.ParseQuality(a.config.ExportQuality)
	if err != nil {
		a.logger.Warn("invalid export quality, using default", "quality", a.config.ExportQuality)
		quality = render.QualityDefault
	}
	atlas := a.atlas
	a.saveFile("atlas.png", ".png", func(path string) error {
		return render.SaveAtlas(path, atlas, quality)
	})
}

// ─── Helpers ───────────────────────────────────────────────

// saveFile asks for a destination and calls write with its path.
func (a *App) saveFile(defaultName, ext string, write func(path string) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if !strings.EqualFold(filepath.Ext(path), ext) {
			path += ext
		}
		if err := write(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.logger.Info("saved", "path", path)
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

func (a *App) showError(err error) {
	dialog.ShowError(err, a.window)
}

// persistConfig saves the app config, logging failures.
func (a *App) persistConfig() {
	if err := a.saveConfig(); err != nil {
		a.logger.Error("failed to save app config", "err", err)
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
