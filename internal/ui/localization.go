package ui

import (
	"embed"
	"log"
	"path"
	"sync"

	"fyne.io/fyne/v2/lang"
	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFiles embed.FS

// Language codes
const (
	LanguageSystem  = "system"
	LanguageSpanish = "es"
	LanguageEnglish = "en"
)

// supportedLanguages lists the bundled catalogues; the first one is the default
var supportedLanguages = []language.Tag{language.Spanish, language.English}

// Text keys for localization
const (
	KeyAppTitle         = "app_title"
	KeyExport           = "export"
	KeyImport           = "import"
	KeyReset            = "reset"
	KeySettings         = "settings"
	KeyAddPad           = "add_pad"
	KeyAddTab           = "add_tab"
	KeyTabName          = "tab_name"
	KeyRenameTab        = "rename_tab"
	KeyCloseTab         = "close_tab"
	KeyCloseTabConfirm  = "close_tab_confirm"
	KeyResetConfirm     = "reset_confirm"
	KeyNeedsReload      = "needs_reload"
	KeyColumns          = "columns"
	KeyOptionDucking    = "option_ducking"
	KeyOptionLoop       = "option_loop"
	KeyOptionRestart    = "option_restart"
	KeyOptionFadeIn     = "option_fade_in"
	KeyOptionFadeOut    = "option_fade_out"
	KeyPadColor         = "pad_color"
	KeyPadChangeAudio   = "pad_change_audio"
	KeyPadDelete        = "pad_delete"
	KeyPadDeleteConfirm = "pad_delete_confirm"
	KeyNotAudio         = "not_audio"
	KeyExportDone       = "export_done"
	KeyExportReveal     = "export_reveal"
	KeyImportDone       = "import_done"
	KeyOperationFailed  = "operation_failed"
	KeySave             = "save"
	KeyCancel           = "cancel"
	KeyFadeDuration     = "fade_duration"
	KeyDuckingVolume    = "ducking_volume"
	KeyLanguage         = "language"
	KeyLanguageSystem   = "language_system"
	KeySettingsSaved    = "settings_saved"
)

// Localization manages UI text translations
type Localization struct {
	mu              sync.RWMutex
	bundle          *i18n.Bundle
	localizer       *i18n.Localizer
	currentLanguage string
}

// NewLocalization creates a localization manager with the embedded catalogues
func NewLocalization() *Localization {
	bundle := i18n.NewBundle(supportedLanguages[0])
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := localeFiles.ReadDir("locales")
	if err != nil {
		log.Printf("Failed to list message files: %v", err)
	}
	for _, entry := range entries {
		name := path.Join("locales", entry.Name())
		data, err := localeFiles.ReadFile(name)
		if err != nil {
			log.Printf("Failed to read message file %s: %v", name, err)
			continue
		}
		if _, err := bundle.ParseMessageFileBytes(data, name); err != nil {
			log.Printf("Failed to parse message file %s: %v", name, err)
		}
	}

	l := &Localization{bundle: bundle}
	l.SetLanguage(LanguageSpanish)
	return l
}

// SetLanguage sets the current language; "system" follows the OS locale
func (l *Localization) SetLanguage(setting string) {
	code := resolveLanguage(setting)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.currentLanguage = code
	l.localizer = i18n.NewLocalizer(l.bundle, code, LanguageSpanish)
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	return l.GetTextf(key, nil)
}

// GetTextf returns localized text rendered with the template data
func (l *Localization) GetTextf(key string, data map[string]any) string {
	l.mu.RLock()
	localizer := l.localizer
	l.mu.RUnlock()

	text, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		// final fallback - return key itself
		return key
	}
	return text
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		LanguageSpanish: "Español",
		LanguageEnglish: "English",
	}
}

// resolveLanguage maps a setting value to one of the bundled languages
func resolveLanguage(code string) string {
	if code == LanguageSystem || code == "" {
		code = string(lang.SystemLocale())
	}
	tag, err := language.Parse(code)
	if err != nil {
		return LanguageSpanish
	}

	_, index, confidence := language.NewMatcher(supportedLanguages).Match(tag)
	if confidence == language.No {
		return LanguageSpanish
	}
	base, _ := supportedLanguages[index].Base()
	return base.String()
}
