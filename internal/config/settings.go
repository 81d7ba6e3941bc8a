package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/media-converter/internal/model"
	"github.com/ytget/media-converter/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeySaveDir        = "save_directory"
	KeyDefaultFormat  = "default_output_format"
	KeyLanguage       = "app_language"
	KeyAutoRevealSave = "auto_reveal_on_save"
)

// Default values
const (
	DefaultLanguage       = "system"
	DefaultAutoRevealSave = true
)

// Settings manages application configuration. Only user preferences are
// persisted; conversion state never is.
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetSaveDirectory returns the directory save dialogs start in
func (s *Settings) GetSaveDirectory() string {
	dir := s.app.Preferences().String(KeySaveDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/converted"
		}
		s.SetSaveDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetSaveDirectory sets the save directory
func (s *Settings) SetSaveDirectory(dir string) {
	s.app.Preferences().SetString(KeySaveDir, dir)
}

// GetDefaultFormat returns the output format preselected for new files.
// Unknown stored values are clamped back to the registry default.
func (s *Settings) GetDefaultFormat() model.FormatKey {
	key := model.FormatKey(s.app.Preferences().String(KeyDefaultFormat))
	if !model.IsValidFormatKey(key) {
		key = model.DefaultFormatKey()
		s.SetDefaultFormat(key)
	}
	return key
}

// SetDefaultFormat sets the default output format
func (s *Settings) SetDefaultFormat(key model.FormatKey) {
	if !model.IsValidFormatKey(key) {
		key = model.DefaultFormatKey()
	}
	s.app.Preferences().SetString(KeyDefaultFormat, key.String())
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnSave returns whether to reveal files after saving
func (s *Settings) GetAutoRevealOnSave() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealSave, DefaultAutoRevealSave)
}

// SetAutoRevealOnSave sets whether to reveal files after saving
func (s *Settings) SetAutoRevealOnSave(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealSave, autoReveal)
}

// GetFormatOptions returns the selectable output formats in registry order
func (s *Settings) GetFormatOptions() []model.FormatKey {
	return model.FormatKeys()
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
