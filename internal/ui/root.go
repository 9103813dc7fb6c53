package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/soundboard/internal/config"
	"github.com/ytget/soundboard/internal/model"
	"github.com/ytget/soundboard/internal/platform"
	"github.com/ytget/soundboard/internal/project"
	"github.com/ytget/soundboard/internal/soundboard"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	board        soundboard.Soundboard
	settings     *config.Settings
	localization *Localization

	// Toolbar
	exportBtn   *widget.Button
	importBtn   *widget.Button
	resetBtn    *widget.Button
	settingsBtn *widget.Button

	// Board view
	tabBar       *TabBar
	grid         *fyne.Container
	placeholder  *PlaceholderTile
	columnSlider *widget.Slider
	columnLabel  *widget.Label

	// Owned by the UI goroutine
	project model.Project
	tiles   map[string]*PadTile
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, settings *config.Settings, board soundboard.Soundboard) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		board:        board,
		settings:     settings,
		localization: localization,
		tiles:        make(map[string]*PadTile),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	// Set up callbacks for board updates
	ui.board.SetUpdateCallback(ui.onProjectUpdate)
	ui.board.SetTickCallback(ui.onTick)

	ui.setupUI()
	ui.render(board.Project())
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	t := ui.localization.GetText

	ui.exportBtn = widget.NewButtonWithIcon(t(KeyExport), theme.DocumentSaveIcon(), ui.onExport)
	ui.importBtn = widget.NewButtonWithIcon(t(KeyImport), theme.FolderOpenIcon(), ui.onImport)
	ui.resetBtn = widget.NewButtonWithIcon(t(KeyReset), theme.DeleteIcon(), ui.onReset)
	ui.resetBtn.Importance = widget.DangerImportance
	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.settingsBtn.Importance = widget.LowImportance

	toolbar := container.NewHBox(ui.exportBtn, ui.importBtn, ui.resetBtn, layout.NewSpacer(), ui.settingsBtn)

	ui.tabBar = NewTabBar(ui.onSelectTab, ui.onRenameTab, ui.onCloseTab, ui.onAddTab)

	ui.placeholder = NewPlaceholderTile(t(KeyAddPad), ui.onAddPad)
	ui.grid = container.New(layout.NewGridLayoutWithColumns(model.DefaultColumns))

	ui.columnLabel = widget.NewLabel("")
	ui.columnSlider = widget.NewSlider(model.MinColumns, model.MaxColumns)
	ui.columnSlider.Step = 1
	ui.columnSlider.OnChanged = func(v float64) {
		ui.columnLabel.SetText(fmt.Sprintf("%s: %d", ui.localization.GetText(KeyColumns), int(v)))
	}
	ui.columnSlider.OnChangeEnded = func(v float64) {
		ui.board.SetColumns(int(v))
	}
	columns := container.NewBorder(nil, nil, ui.columnLabel, nil, ui.columnSlider)

	top := container.NewVBox(toolbar, ui.tabBar.Container())
	content := container.NewBorder(top, columns, nil, nil, container.NewVScroll(ui.grid))

	ui.window.SetContent(content)
	ui.window.SetOnDropped(ui.onDropped)
	log.Printf("UI setup completed successfully")
}

// onProjectUpdate handles state updates from the board
func (ui *RootUI) onProjectUpdate(p model.Project) {
	fyne.Do(func() {
		ui.render(p)
	})
}

// onTick refreshes the countdown of a playing pad
func (ui *RootUI) onTick(padID string, remaining, duration float64) {
	fyne.Do(func() {
		if tile, ok := ui.tiles[padID]; ok {
			tile.SetRemaining(remaining, duration)
		}
	})
}

// render rebuilds the tab bar and the grid of the active tab, reusing tiles
func (ui *RootUI) render(p model.Project) {
	ui.project = p
	ui.tabBar.Update(p.Tabs, p.ActiveTabID)

	tab, _ := p.ActiveTab()
	objects := make([]fyne.CanvasObject, 0, len(tab.Pads)+1)
	visible := make(map[string]*PadTile, len(tab.Pads))
	for _, pad := range tab.Pads {
		tile, ok := ui.tiles[pad.ID]
		if ok {
			tile.UpdatePad(pad)
		} else {
			tile = NewPadTile(pad, ui.localization)
			tile.SetCallbacks(ui.onPadTapped, ui.onPadMenu)
			tile.SetOptionCallbacks(ui.board.ToggleOption, ui.showPadColor)
			tile.SetSwipeCallback(ui.onSwipeTabs)
		}
		visible[pad.ID] = tile
		objects = append(objects, tile)
	}
	ui.tiles = visible
	objects = append(objects, ui.placeholder)

	ui.grid.Layout = layout.NewGridLayoutWithColumns(p.Columns)
	ui.grid.Objects = objects
	ui.grid.Refresh()

	if int(ui.columnSlider.Value) != p.Columns {
		ui.columnSlider.SetValue(float64(p.Columns))
	}
	ui.columnSlider.OnChanged(float64(p.Columns))
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	t := ui.localization.GetText

	ui.window.SetTitle(t(KeyAppTitle))
	ui.exportBtn.SetText(t(KeyExport))
	ui.importBtn.SetText(t(KeyImport))
	ui.resetBtn.SetText(t(KeyReset))
	ui.placeholder.SetText(t(KeyAddPad))

	// Tiles carry localized warnings
	ui.render(ui.project)
}

// Pad actions

// onPadTapped plays or stops a pad, asking for a file when it has none
func (ui *RootUI) onPadTapped(padID string) {
	go func() {
		result, err := ui.board.ClickPad(context.Background(), padID)
		if err != nil {
			log.Printf("Error toggling pad %s: %v", padID, err)
			ui.showError(err)
			return
		}
		if result == soundboard.ClickNeedsFile {
			fyne.Do(func() { ui.pickAudio(padID) })
		}
	}()
}

// pickAudio opens the file dialog and assigns the chosen file to the pad
func (ui *RootUI) pickAudio(padID string) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			ui.showError(err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		data, err := io.ReadAll(reader)
		if err != nil {
			ui.showError(err)
			return
		}
		name := reader.URI().Name()
		go ui.assignFile(padID, name, data)
	}, ui.window)
	d.SetFilter(storage.NewExtensionFileFilter(AudioExtensions))
	d.Show()
}

// assignFile hands the file to the board; the type is sniffed from content
func (ui *RootUI) assignFile(padID, name string, data []byte) {
	err := ui.board.AssignFile(context.Background(), padID, name, "", data)
	ui.reportFileError(name, err)
}

func (ui *RootUI) reportFileError(name string, err error) {
	if err == nil {
		return
	}
	log.Printf("Error assigning %s: %v", name, err)
	if errors.Is(err, soundboard.ErrNotAudio) {
		msg := ui.localization.GetTextf(KeyNotAudio, map[string]any{"Name": name})
		fyne.Do(func() {
			dialog.ShowInformation(ui.localization.GetText(KeyAppTitle), msg, ui.window)
		})
		return
	}
	ui.showError(err)
}

// onPadMenu shows the quick settings menu of a pad
func (ui *RootUI) onPadMenu(padID string, pos fyne.Position) {
	pad, ok := ui.project.FindPad(padID)
	if !ok {
		return
	}
	t := ui.localization.GetText

	option := func(key model.OptionKey, icon, label string) *fyne.MenuItem {
		item := fyne.NewMenuItem(icon+" "+label, func() {
			ui.board.ToggleOption(padID, key)
		})
		item.Checked = pad.Options.Enabled(key)
		return item
	}

	menu := fyne.NewMenu("",
		option(model.OptionDucking, IconDucking, t(KeyOptionDucking)),
		option(model.OptionLoop, IconLoop, t(KeyOptionLoop)),
		option(model.OptionRestart, IconRestart, t(KeyOptionRestart)),
		option(model.OptionFadeIn, IconFadeIn, t(KeyOptionFadeIn)),
		option(model.OptionFadeOut, IconFadeOut, t(KeyOptionFadeOut)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(IconColor+" "+t(KeyPadColor), func() { ui.showPadColor(padID) }),
		fyne.NewMenuItem(t(KeyPadChangeAudio), func() { ui.pickAudio(padID) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(t(KeyPadDelete), func() { ui.confirmDeletePad(pad) }),
	)
	widget.ShowPopUpMenuAtPosition(menu, ui.window.Canvas(), pos)
}

// showPadColor opens the palette for a pad
func (ui *RootUI) showPadColor(padID string) {
	pad, ok := ui.project.FindPad(padID)
	if !ok {
		return
	}
	title := ui.localization.GetText(KeyPadColor)
	ShowColorPicker(ui.window, title, pad.Color, func(color string) {
		if err := ui.board.SetPadColor(padID, color); err != nil {
			ui.showError(err)
		}
	})
}

func (ui *RootUI) confirmDeletePad(pad model.Pad) {
	msg := ui.localization.GetTextf(KeyPadDeleteConfirm, map[string]any{"Name": pad.Name})
	dialog.ShowConfirm(ui.localization.GetText(KeyPadDelete), msg, func(ok bool) {
		if !ok {
			return
		}
		go func() {
			if err := ui.board.DeletePad(context.Background(), pad.ID); err != nil {
				log.Printf("Error deleting pad %s: %v", pad.ID, err)
				ui.showError(err)
			}
		}()
	}, ui.window)
}

// onAddPad appends an empty pad to the active tab
func (ui *RootUI) onAddPad() {
	ui.board.AddPad(ui.project.ActiveTabID)
}

// onDropped assigns dropped files to the pad under the cursor, or creates
// new pads when they land on the "add pad" tile
func (ui *RootUI) onDropped(pos fyne.Position, uris []fyne.URI) {
	if len(uris) == 0 {
		return
	}

	switch target := ui.objectAt(pos).(type) {
	case *PadTile:
		padID := target.PadID()
		go func() {
			name, data, err := readURI(uris[0])
			if err != nil {
				ui.showError(err)
				return
			}
			ui.assignFile(padID, name, data)
		}()
	case *PlaceholderTile:
		tabID := ui.project.ActiveTabID
		go func() {
			for _, uri := range uris {
				name, data, err := readURI(uri)
				if err != nil {
					ui.showError(err)
					continue
				}
				_, err = ui.board.DropOnPlaceholder(context.Background(), tabID, name, "", data)
				ui.reportFileError(name, err)
			}
		}()
	default:
		log.Printf("Dropped %d files outside the grid", len(uris))
	}
}

// objectAt returns the grid cell under an absolute canvas position
func (ui *RootUI) objectAt(pos fyne.Position) fyne.CanvasObject {
	driver := fyne.CurrentApp().Driver()
	for _, obj := range ui.grid.Objects {
		if !obj.Visible() {
			continue
		}
		origin := driver.AbsolutePositionForObject(obj)
		size := obj.Size()
		if pos.X >= origin.X && pos.X < origin.X+size.Width &&
			pos.Y >= origin.Y && pos.Y < origin.Y+size.Height {
			return obj
		}
	}
	return nil
}

func readURI(uri fyne.URI) (string, []byte, error) {
	reader, err := storage.Reader(uri)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open %s: %w", uri.Name(), err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", uri.Name(), err)
	}
	return uri.Name(), data, nil
}

// Tab actions

func (ui *RootUI) onSelectTab(tabID string) {
	ui.board.SetActiveTab(tabID)
}

// onSwipeTabs activates the tab step positions away from the active one
func (ui *RootUI) onSwipeTabs(step int) {
	if id, ok := adjacentTabID(ui.project, step); ok {
		ui.board.SetActiveTab(id)
	}
}

func adjacentTabID(p model.Project, step int) (string, bool) {
	for i, tab := range p.Tabs {
		if tab.ID != p.ActiveTabID {
			continue
		}
		j := i + step
		if j < 0 || j >= len(p.Tabs) {
			return "", false
		}
		return p.Tabs[j].ID, true
	}
	return "", false
}

func (ui *RootUI) onRenameTab(tab model.Tab) {
	ui.showTabNameForm(ui.localization.GetText(KeyRenameTab), tab.Name, func(name string) {
		ui.board.RenameTab(tab.ID, name)
	})
}

func (ui *RootUI) onAddTab() {
	suggested := fmt.Sprintf(model.TabNameFormat, len(ui.project.Tabs)+1)
	ui.showTabNameForm(ui.localization.GetText(KeyAddTab), suggested, func(name string) {
		ui.board.AddTab(name)
	})
}

func (ui *RootUI) showTabNameForm(title, value string, onSubmit func(name string)) {
	entry := widget.NewEntry()
	entry.SetText(value)
	items := []*widget.FormItem{widget.NewFormItem(ui.localization.GetText(KeyTabName), entry)}

	dialog.ShowForm(title, ui.localization.GetText(KeySave), ui.localization.GetText(KeyCancel), items, func(ok bool) {
		if ok {
			onSubmit(entry.Text)
		}
	}, ui.window)
}

func (ui *RootUI) onCloseTab(tab model.Tab) {
	msg := ui.localization.GetTextf(KeyCloseTabConfirm, map[string]any{"Name": tab.Name})
	dialog.ShowConfirm(ui.localization.GetText(KeyCloseTab), msg, func(ok bool) {
		if !ok {
			return
		}
		go func() {
			if err := ui.board.DeleteTab(context.Background(), tab.ID); err != nil {
				log.Printf("Error deleting tab %s: %v", tab.ID, err)
				ui.showError(err)
			}
		}()
	}, ui.window)
}

// Toolbar actions

// onExport saves the project with its audio to a JSON file
func (ui *RootUI) onExport() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			ui.showError(err)
			return
		}
		if writer == nil {
			return
		}
		ui.rememberDirectory(writer.URI())

		go func() {
			defer writer.Close()
			if err := ui.board.Export(context.Background(), writer); err != nil {
				log.Printf("Error exporting project: %v", err)
				ui.showError(err)
				return
			}
			ui.offerReveal(writer.URI())
		}()
	}, ui.window)
	d.SetFileName(project.DefaultFileName)
	ui.setStartLocation(d)
	d.Show()
}

// offerReveal lets the user open the folder of a local export
func (ui *RootUI) offerReveal(uri fyne.URI) {
	if uri == nil || uri.Scheme() != "file" {
		ui.showInfo(KeyExportDone)
		return
	}
	t := ui.localization.GetText
	fyne.Do(func() {
		dialog.ShowConfirm(t(KeyAppTitle), t(KeyExportReveal), func(ok bool) {
			if !ok {
				return
			}
			if err := platform.RevealInFileManager(uri.Path()); err != nil {
				log.Printf("Cannot reveal %s: %v", uri.Path(), err)
			}
		}, ui.window)
	})
}

// onImport replaces the project with one read from a JSON file
func (ui *RootUI) onImport() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			ui.showError(err)
			return
		}
		if reader == nil {
			return
		}
		ui.rememberDirectory(reader.URI())

		go func() {
			defer reader.Close()
			if err := ui.board.Import(context.Background(), reader); err != nil {
				log.Printf("Error importing project: %v", err)
				ui.showError(err)
				return
			}
			ui.showInfo(KeyImportDone)
		}()
	}, ui.window)
	d.SetFilter(storage.NewExtensionFileFilter(ProjectExtensions))
	ui.setStartLocation(d)
	d.Show()
}

// onReset clears every tab and audio after confirmation
func (ui *RootUI) onReset() {
	t := ui.localization.GetText
	dialog.ShowConfirm(t(KeyReset), t(KeyResetConfirm), func(ok bool) {
		if !ok {
			return
		}
		go func() {
			if err := ui.board.Reset(context.Background()); err != nil {
				log.Printf("Error resetting soundboard: %v", err)
				ui.showError(err)
			}
		}()
	}, ui.window)
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.board.SetFadeDuration(ui.settings.GetFadeDuration())
		ui.board.SetDuckingVolume(ui.settings.GetDuckingVolume())
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.showInfo(KeySettingsSaved)
	})
}

// fileDialog is the part of the file dialogs used to set the start folder
type fileDialog interface {
	SetLocation(fyne.ListableURI)
}

func (ui *RootUI) setStartLocation(d fileDialog) {
	dir := ui.settings.GetLastExportDirectory()
	if dir == "" {
		return
	}
	lister, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		log.Printf("Cannot open %s as start folder: %v", dir, err)
		return
	}
	d.SetLocation(lister)
}

func (ui *RootUI) rememberDirectory(uri fyne.URI) {
	if uri == nil || uri.Scheme() != "file" {
		return
	}
	ui.settings.SetLastExportDirectory(filepath.Dir(uri.Path()))
}

// showError displays an error dialog from any goroutine
func (ui *RootUI) showError(err error) {
	wrapped := fmt.Errorf("%s: %w", ui.localization.GetText(KeyOperationFailed), err)
	fyne.Do(func() {
		dialog.ShowError(wrapped, ui.window)
	})
}

// showInfo displays a localized message from any goroutine
func (ui *RootUI) showInfo(key string) {
	msg := ui.localization.GetText(key)
	fyne.Do(func() {
		dialog.ShowInformation(ui.localization.GetText(KeyAppTitle), msg, ui.window)
	})
}
