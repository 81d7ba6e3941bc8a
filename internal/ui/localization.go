package ui

// Package ui provides user interface components

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle            = "app_title"
	KeyChooseFile          = "choose_file"
	KeyChangeFile          = "change_file"
	KeyRemoveFile          = "remove_file"
	KeyDropHint            = "drop_hint"
	KeyConvertTo           = "convert_to"
	KeyConvert             = "convert"
	KeySaveResult          = "save_result"
	KeyDiscardResult       = "discard_result"
	KeyOpen                = "open"
	KeyReveal              = "reveal"
	KeySettings            = "settings"
	KeyFile                = "file"
	KeyLanguage            = "language"
	KeySaveDirectory       = "save_directory"
	KeyDefaultFormat       = "default_format"
	KeyAutoReveal          = "auto_reveal"
	KeySave                = "save"
	KeyCancel              = "cancel"
	KeyBrowse              = "browse"
	KeyEnterURL            = "enter_url"
	KeyImport              = "import"
	KeySettingsSaved       = "settings_saved"
	KeyConversionStarted   = "conversion_started"
	KeyConversionCompleted = "conversion_completed"
	KeyConversionFailed    = "conversion_failed"
	KeyImportStarted       = "import_started"
	KeyImportCompleted     = "import_completed"
	KeyImportFailed        = "import_failed"
	KeyErrorOpeningFile    = "error_opening_file"
	KeyInvalidURL          = "invalid_url"
	KeyPleaseEnterURL      = "please_enter_url"
	KeyFileSaved           = "file_saved"
	KeyNotMediaHint        = "not_media_hint"
	KeyNoResult            = "no_result"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:            "Media Converter",
		KeyChooseFile:          "Choose File",
		KeyChangeFile:          "Change",
		KeyRemoveFile:          "Remove",
		KeyDropHint:            "Drop a media file here or click to choose",
		KeyConvertTo:           "Convert to",
		KeyConvert:             "Convert",
		KeySaveResult:          "Save",
		KeyDiscardResult:       "Discard",
		KeyOpen:                "Open",
		KeyReveal:              "Reveal",
		KeySettings:            "Settings",
		KeyFile:                "File",
		KeyLanguage:            "Language",
		KeySaveDirectory:       "Save Directory",
		KeyDefaultFormat:       "Default Output Format",
		KeyAutoReveal:          "Reveal file after saving",
		KeySave:                "Save",
		KeyCancel:              "Cancel",
		KeyBrowse:              "Browse",
		KeyEnterURL:            "Import media from URL (https://...)",
		KeyImport:              "Import",
		KeySettingsSaved:       "Settings saved successfully!",
		KeyConversionStarted:   "Conversion started",
		KeyConversionCompleted: "Conversion completed",
		KeyConversionFailed:    "Conversion failed",
		KeyImportStarted:       "Import started",
		KeyImportCompleted:     "Import completed",
		KeyImportFailed:        "Import failed",
		KeyErrorOpeningFile:    "Error opening file",
		KeyInvalidURL:          "Invalid URL",
		KeyPleaseEnterURL:      "Please enter a URL",
		KeyFileSaved:           "File saved",
		KeyNotMediaHint:        "This does not look like a media file",
		KeyNoResult:            "No result available",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:            "Медиа Конвертер",
		KeyChooseFile:          "Выбрать файл",
		KeyChangeFile:          "Заменить",
		KeyRemoveFile:          "Убрать",
		KeyDropHint:            "Перетащите медиафайл сюда или нажмите для выбора",
		KeyConvertTo:           "Конвертировать в",
		KeyConvert:             "Конвертировать",
		KeySaveResult:          "Сохранить",
		KeyDiscardResult:       "Сбросить",
		KeyOpen:                "Открыть",
		KeyReveal:              "Показать",
		KeySettings:            "Настройки",
		KeyFile:                "Файл",
		KeyLanguage:            "Язык",
		KeySaveDirectory:       "Папка сохранения",
		KeyDefaultFormat:       "Формат по умолчанию",
		KeyAutoReveal:          "Показывать файл после сохранения",
		KeySave:                "Сохранить",
		KeyCancel:              "Отмена",
		KeyBrowse:              "Обзор",
		KeyEnterURL:            "Импорт медиа по URL (https://...)",
		KeyImport:              "Импорт",
		KeySettingsSaved:       "Настройки успешно сохранены!",
		KeyConversionStarted:   "Конвертация начата",
		KeyConversionCompleted: "Конвертация завершена",
		KeyConversionFailed:    "Ошибка конвертации",
		KeyImportStarted:       "Импорт начат",
		KeyImportCompleted:     "Импорт завершён",
		KeyImportFailed:        "Ошибка импорта",
		KeyErrorOpeningFile:    "Ошибка открытия файла",
		KeyInvalidURL:          "Неверный URL",
		KeyPleaseEnterURL:      "Пожалуйста, введите URL",
		KeyFileSaved:           "Файл сохранён",
		KeyNotMediaHint:        "Это не похоже на медиафайл",
		KeyNoResult:            "Результат недоступен",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:            "Conversor de Mídia",
		KeyChooseFile:          "Escolher Arquivo",
		KeyChangeFile:          "Trocar",
		KeyRemoveFile:          "Remover",
		KeyDropHint:            "Solte um arquivo de mídia aqui ou clique para escolher",
		KeyConvertTo:           "Converter para",
		KeyConvert:             "Converter",
		KeySaveResult:          "Salvar",
		KeyDiscardResult:       "Descartar",
		KeyOpen:                "Abrir",
		KeyReveal:              "Revelar",
		KeySettings:            "Configurações",
		KeyFile:                "Arquivo",
		KeyLanguage:            "Idioma",
		KeySaveDirectory:       "Diretório de Salvamento",
		KeyDefaultFormat:       "Formato Padrão",
		KeyAutoReveal:          "Revelar arquivo após salvar",
		KeySave:                "Salvar",
		KeyCancel:              "Cancelar",
		KeyBrowse:              "Navegar",
		KeyEnterURL:            "Importar mídia de URL (https://...)",
		KeyImport:              "Importar",
		KeySettingsSaved:       "Configurações salvas com sucesso!",
		KeyConversionStarted:   "Conversão iniciada",
		KeyConversionCompleted: "Conversão concluída",
		KeyConversionFailed:    "Falha na conversão",
		KeyImportStarted:       "Importação iniciada",
		KeyImportCompleted:     "Importação concluída",
		KeyImportFailed:        "Falha na importação",
		KeyErrorOpeningFile:    "Erro ao abrir arquivo",
		KeyInvalidURL:          "URL inválida",
		KeyPleaseEnterURL:      "Por favor, digite uma URL",
		KeyFileSaved:           "Arquivo salvo",
		KeyNotMediaHint:        "Isto não parece um arquivo de mídia",
		KeyNoResult:            "Nenhum resultado disponível",
	}
}
