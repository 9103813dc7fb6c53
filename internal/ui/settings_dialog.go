package ui

import (
	"fmt"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/soundboard/internal/config"
)

// Settings dialog sizing
const (
	SettingsDialogWidth  = 420
	SettingsDialogHeight = 320
	FadeSliderStep       = 100
	DuckingSliderStep    = 0.05
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	fadeSlider     *widget.Slider
	fadeLabel      *widget.Label
	duckingSlider  *widget.Slider
	duckingLabel   *widget.Label
	languageSelect *widget.Select
	languageCodes  []string
}

// ShowSettingsDialog opens the settings dialog; onSaved runs after saving
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	sd := NewSettingsDialog(settings, localization, window, onSaved)
	sd.Show()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	t := sd.localization.GetText

	sd.fadeLabel = widget.NewLabel("")
	sd.fadeSlider = widget.NewSlider(config.MinFadeDurationMs, config.MaxFadeDurationMs)
	sd.fadeSlider.Step = FadeSliderStep
	sd.fadeSlider.OnChanged = func(v float64) {
		sd.fadeLabel.SetText(fmt.Sprintf("%.0f ms", v))
	}

	sd.duckingLabel = widget.NewLabel("")
	sd.duckingSlider = widget.NewSlider(config.MinDuckingVolume, config.MaxDuckingVolume)
	sd.duckingSlider.Step = DuckingSliderStep
	sd.duckingSlider.OnChanged = func(v float64) {
		sd.duckingLabel.SetText(fmt.Sprintf("%.0f%%", v*100))
	}

	// Language selection shows names and stores codes
	labels := sd.settings.GetLanguageOptions()
	sd.languageCodes = make([]string, 0, len(labels))
	for code := range labels {
		sd.languageCodes = append(sd.languageCodes, code)
	}
	sort.Strings(sd.languageCodes)
	names := make([]string, 0, len(sd.languageCodes))
	for _, code := range sd.languageCodes {
		names = append(names, sd.languageName(code))
	}
	sd.languageSelect = widget.NewSelect(names, nil)

	form := container.NewVBox(
		widget.NewLabel(t(KeyFadeDuration)),
		container.NewBorder(nil, nil, nil, sd.fadeLabel, sd.fadeSlider),

		widget.NewLabel(t(KeyDuckingVolume)),
		container.NewBorder(nil, nil, nil, sd.duckingLabel, sd.duckingSlider),

		widget.NewSeparator(),
		widget.NewLabel(t(KeyLanguage)),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		t(KeySettings),
		t(KeySave),
		t(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.fadeSlider.SetValue(float64(sd.settings.GetFadeDurationMs()))
	sd.duckingSlider.SetValue(sd.settings.GetDuckingVolume())
	sd.languageSelect.SetSelected(sd.languageName(sd.settings.GetLanguage()))
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	sd.settings.SetFadeDurationMs(int(sd.fadeSlider.Value))
	sd.settings.SetDuckingVolume(sd.duckingSlider.Value)

	if i := sd.languageSelect.SelectedIndex(); i >= 0 && i < len(sd.languageCodes) {
		sd.settings.SetLanguage(sd.languageCodes[i])
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}

func (sd *SettingsDialog) languageName(code string) string {
	if code == LanguageSystem {
		return sd.localization.GetText(KeyLanguageSystem)
	}
	if name, ok := sd.settings.GetLanguageOptions()[code]; ok {
		return name
	}
	return code
}
