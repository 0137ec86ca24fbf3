// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"
	"time"

	"ideatlas/internal/app"
	"ideatlas/internal/interact"
	"ideatlas/internal/model"
	"ideatlas/internal/version"
	"ideatlas/pkg/geometry"
	"ideatlas/ui/canvas"
	"ideatlas/ui/panels"
	"ideatlas/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	prefKeyLastDir      = "lastDirectory"
	prefKeyLastDocument = "lastDocument"
	prefKeyWindowWidth  = "windowWidth"
	prefKeyWindowHeight = "windowHeight"
)

const docExtension = ".atlas"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.TimelineCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label

	timelineSelect *widget.Select
	searchEntry    *widget.Entry

	placeItem *fyne.MenuItem
	placing   bool
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("IdeAtlas")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.restoreGeometry()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewTimelineCanvas(mw.state)
	mw.setupCanvasCallbacks()

	mw.sidePanel = panels.NewSidePanel(mw.state)

	mw.statusBar = widget.NewLabel("Ready")

	toolbar := mw.createToolbar()

	canvasArea := container.NewBorder(
		toolbar, // top
		nil,     // bottom
		nil,     // left
		nil,     // right
		mw.canvas,
	)

	split := container.NewHSplit(
		mw.sidePanel.Container(),
		canvasArea,
	)
	split.SetOffset(0.22)

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,                             // center
	)

	mw.SetContent(content)

	// Escape cancels whatever gesture is in flight.
	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			mw.canvas.CancelGesture()
			mw.setPlacing(false)
		}
	})
}

// createToolbar creates the toolbar with zoom, scope, and search controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", func() {
		mw.canvas.ZoomOut()
	})
	zoomInBtn := widget.NewButton("+", func() {
		mw.canvas.ZoomIn()
	})
	homeBtn := widget.NewButton("Home", func() {
		mw.canvas.ResetCamera()
	})

	mw.timelineSelect = widget.NewSelect(nil, func(name string) {
		mw.state.SelectTimeline(mw.timelineIDByName(name))
	})
	mw.timelineSelect.PlaceHolder = "All timelines"

	mw.searchEntry = widget.NewEntry()
	mw.searchEntry.SetPlaceHolder("Search thinkers...")
	mw.searchEntry.OnChanged = func(q string) {
		mw.state.SetSearch(q)
	}

	return container.NewBorder(
		nil, nil,
		container.NewHBox(
			widget.NewLabel("Zoom:"),
			zoomOutBtn,
			zoomInBtn,
			homeBtn,
			widget.NewSeparator(),
			mw.timelineSelect,
		),
		nil,
		mw.searchEntry,
	)
}

// setupCanvasCallbacks wires canvas actions into state updates and status
// feedback.
func (mw *MainWindow) setupCanvasCallbacks() {
	mw.canvas.OnThinkerClicked(func(id string, mods interact.Modifiers) {
		if t := mw.thinkerByID(id); t != nil {
			mw.updateStatus("Selected: " + t.Name)
		}
	})
	mw.canvas.OnConnectionClicked(func(id string) {
		mw.updateStatus("Connection: " + id)
	})
	mw.canvas.OnEventClicked(func(id string) {
		for i := range mw.state.Events {
			if mw.state.Events[i].ID == id {
				mw.updateStatus(fmt.Sprintf("%d: %s", mw.state.Events[i].Year, mw.state.Events[i].Name))
				return
			}
		}
	})
	mw.canvas.OnNoteClicked(func(id string) {
		mw.updateStatus("Note: " + id)
	})
	mw.canvas.OnCanvasClicked(func(year int, pos geometry.Point2D, mods interact.Modifiers) {
		switch {
		case mw.placing:
			mw.setPlacing(false)
			mw.promptNewThinker(year)
		case mods.Ctrl:
			mw.addNoteAt(pos)
		}
	})
	mw.canvas.OnThinkerDragged(func(id string, year int, offsetY float64) {
		if t := mw.thinkerByID(id); t != nil {
			mw.updateStatus(fmt.Sprintf("Moved %s to %d", t.Name, year))
		}
	})
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Document", mw.onNewDocument),
		fyne.NewMenuItem("Open Document...", mw.onOpenDocument),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Document", mw.onSaveDocument),
		fyne.NewMenuItem("Save Document As...", mw.onSaveDocumentAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	mw.placeItem = fyne.NewMenuItem("  Place Thinker", func() {
		mw.setPlacing(!mw.placing)
	})

	editMenu := fyne.NewMenu("Edit",
		mw.placeItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear Filters", func() {
			mw.searchEntry.SetText("")
			mw.state.ClearFilters()
		}),
	)

	types := model.ConnectionTypes()
	connItems := make([]*fyne.MenuItem, 0, len(types))
	for _, ct := range types {
		ct := ct
		connItems = append(connItems, fyne.NewMenuItem("Toggle "+string(ct), func() {
			mw.state.ToggleConnectionType(ct)
		}))
	}
	viewItems := append([]*fyne.MenuItem{
		fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut),
		fyne.NewMenuItem("Home", mw.canvas.ResetCamera),
		fyne.NewMenuItemSeparator(),
	}, connItems...)
	viewMenu := fyne.NewMenu("View", viewItems...)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventDocumentLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("IdeAtlas - " + filepath.Base(path))
			mw.updateStatus("Loaded: " + path)
			mw.prefs.SetString(prefKeyLastDocument, path)
		}
		mw.refreshTimelineSelect()
	})

	mw.state.On(app.EventDocumentSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("IdeAtlas - " + filepath.Base(path))
			mw.updateStatus("Saved: " + path)
			mw.prefs.SetString(prefKeyLastDocument, path)
		}
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})

	mw.state.On(app.EventDataChanged, func(data interface{}) {
		mw.refreshTimelineSelect()
	})
}

// setPlacing toggles click-to-place mode for creating thinkers.
func (mw *MainWindow) setPlacing(on bool) {
	mw.placing = on
	mw.canvas.SetPlaceMode(on)
	if on {
		mw.placeItem.Label = "✓ Place Thinker"
		mw.updateStatus("Click the canvas to place a new thinker (Esc cancels)")
	} else {
		mw.placeItem.Label = "  Place Thinker"
	}
}

func (mw *MainWindow) promptNewThinker(year int) {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("Name")
	items := []*widget.FormItem{widget.NewFormItem("Name", entry)}
	dialog.ShowForm(fmt.Sprintf("New Thinker at %d", year), "Add", "Cancel", items,
		func(ok bool) {
			if !ok || entry.Text == "" {
				return
			}
			y := year
			mw.state.AddThinker(model.Thinker{
				ID:         fmt.Sprintf("thinker-%d", time.Now().UnixNano()),
				Name:       entry.Text,
				AnchorYear: &y,
				TimelineID: mw.state.SelectedTimelineID,
			})
			mw.updateStatus(fmt.Sprintf("Added %s at %d", entry.Text, y))
		}, mw.Window)
}

func (mw *MainWindow) addNoteAt(pos geometry.Point2D) {
	stored := mw.canvas.StoredPoint(pos)
	mw.state.AddNote(model.StickyNote{
		ID:       fmt.Sprintf("note-%d", time.Now().UnixNano()),
		Title:    "New note",
		X:        stored.X,
		Y:        stored.Y,
		OnCanvas: true,
		Color:    model.NoteYellow,
	})
	mw.updateStatus("Added note")
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) thinkerByID(id string) *model.Thinker {
	for i := range mw.state.Thinkers {
		if mw.state.Thinkers[i].ID == id {
			return &mw.state.Thinkers[i]
		}
	}
	return nil
}

func (mw *MainWindow) timelineIDByName(name string) string {
	for i := range mw.state.Timelines {
		if mw.state.Timelines[i].Name == name {
			return mw.state.Timelines[i].ID
		}
	}
	return ""
}

// refreshTimelineSelect rebuilds the timeline dropdown from the loaded
// document.
func (mw *MainWindow) refreshTimelineSelect() {
	names := make([]string, 0, len(mw.state.Timelines)+1)
	names = append(names, "All timelines")
	for i := range mw.state.Timelines {
		names = append(names, mw.state.Timelines[i].Name)
	}
	mw.timelineSelect.Options = names
	mw.timelineSelect.Refresh()
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefKeyLastDir, filepath.Dir(filePath))
}

// restoreGeometry applies the persisted window size.
func (mw *MainWindow) restoreGeometry() {
	w := mw.prefs.FloatWithFallback(prefKeyWindowWidth, 1280)
	h := mw.prefs.FloatWithFallback(prefKeyWindowHeight, 800)
	mw.Resize(fyne.NewSize(float32(w), float32(h)))
}

// SavePreferences persists window geometry and writes the prefs file.
func (mw *MainWindow) SavePreferences() {
	size := mw.Canvas().Size()
	mw.prefs.SetFloat(prefKeyWindowWidth, float64(size.Width))
	mw.prefs.SetFloat(prefKeyWindowHeight, float64(size.Height))
	if err := mw.prefs.Save(); err != nil {
		mw.updateStatus("Failed to save preferences: " + err.Error())
	}
}

// SavePreferencesIfChanged writes the prefs file only when something
// changed since the last save.
func (mw *MainWindow) SavePreferencesIfChanged() {
	if mw.prefs.Dirty() {
		if err := mw.prefs.Save(); err != nil {
			mw.updateStatus("Failed to save preferences: " + err.Error())
		}
	}
}

// Menu action handlers

func (mw *MainWindow) onNewDocument() {
	mw.state.NewDocument()
	mw.SetTitle("IdeAtlas - New Document")
	mw.canvas.ResetCamera()
}

func (mw *MainWindow) onOpenDocument() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadDocument(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{docExtension, ".json"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveDocument() {
	if mw.state.DocumentPath == "" {
		mw.onSaveDocumentAs()
		return
	}
	if err := mw.state.SaveDocument(mw.state.DocumentPath); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveDocumentAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) == "" {
			path += docExtension
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveDocument(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFileName("genealogy" + docExtension)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About IdeAtlas",
		fmt.Sprintf("IdeAtlas v%s\n\n"+
			"An interactive genealogy of thinkers.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
