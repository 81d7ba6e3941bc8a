package ui

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"

	"github.com/ytget/media-converter/internal/config"
	"github.com/ytget/media-converter/internal/convert"
	"github.com/ytget/media-converter/internal/fetch"
	"github.com/ytget/media-converter/internal/model"
	"github.com/ytget/media-converter/internal/platform"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	mobileUI     *MobileUI

	convertSvc convert.Converter
	fetchSvc   fetch.Fetcher

	// Selection and conversion state
	selectedFile   *model.SelectedFile
	activeTaskID   string
	lastConvStatus model.TaskStatus

	// Selection area
	dropZone      *DropZone
	fileCard      *fyne.Container
	fileIconLabel *widget.Label
	fileNameLabel *widget.Label
	fileMetaLabel *widget.Label
	changeFileBtn *widget.Button
	removeFileBtn *widget.Button

	// Format choice and conversion trigger
	convertToLabel *widget.Label
	formatRadio    *widget.RadioGroup
	convertBtn     *widget.Button

	// URL import
	urlEntry  *widget.Entry
	importBtn *widget.Button

	// Progress and result
	conversionCard *ConversionCard

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite

	// UI update debouncing
	lastUIUpdate  time.Time
	uiUpdateMutex sync.Mutex
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, convertSvc convert.Converter, fetchSvc fetch.Fetcher) *RootUI {
	// Initialize settings
	settings := config.NewSettings(app)

	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	// Ensure the configured save directory exists
	if err := platform.CreateDirectoryIfNotExists(settings.GetSaveDirectory()); err != nil {
		log.Warn().Err(err).Str("dir", settings.GetSaveDirectory()).Msg("failed to create save directory")
	}

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		mobileUI:     NewMobileUI(app),
		convertSvc:   convertSvc,
		fetchSvc:     fetchSvc,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	// Set up callbacks for service updates
	ui.convertSvc.SetUpdateCallback(ui.onConversionUpdate)
	ui.fetchSvc.SetUpdateCallback(ui.onFetchUpdate)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	// Create menu
	ui.createMenu()

	// URL import row
	ui.urlEntry = ui.mobileUI.CreateMobileEntry(ui.localization.GetText(KeyEnterURL))
	ui.urlEntry.Validator = ui.validateURL
	// Trigger import when user presses Enter in the URL field
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onImportClick()
	}
	ui.importBtn = ui.mobileUI.CreateMobileButton(ui.localization.GetText(KeyImport), ui.onImportClick)

	// Create settings button
	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	// Create logo
	logo, err := LoadLogoResource()
	var logoImage *canvas.Image
	if err == nil {
		logoImage = canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(32, 32))
		logoImage.FillMode = canvas.ImageFillContain
	}

	// Create top panel (URL row) with logo
	var topPanel *fyne.Container
	if logoImage != nil {
		topPanel = container.NewBorder(nil, nil, container.NewHBox(logoImage, settingsBtn), ui.importBtn, ui.urlEntry)
	} else {
		topPanel = container.NewBorder(nil, nil, container.NewHBox(settingsBtn), ui.importBtn, ui.urlEntry)
	}

	// Create notification panel under URL input (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	// Combine URL row and notification panel at the top
	topCombined := container.NewVBox(topPanel, ui.notificationContainer)

	// Selection area: drop zone when empty, file card when a file is chosen
	ui.dropZone = NewDropZone(ui.localization, ui.onChooseFile)

	ui.fileIconLabel = widget.NewLabel(IconMovie)
	ui.fileNameLabel = widget.NewLabel("")
	ui.fileNameLabel.TextStyle = fyne.TextStyle{Bold: true}
	ui.fileNameLabel.Truncation = fyne.TextTruncateEllipsis
	ui.fileMetaLabel = widget.NewLabel("")
	ui.changeFileBtn = widget.NewButton(ui.localization.GetText(KeyChangeFile), ui.onChooseFile)
	ui.removeFileBtn = widget.NewButton(ui.localization.GetText(KeyRemoveFile), ui.onRemoveFile)

	fileInfo := container.NewVBox(ui.fileNameLabel, ui.fileMetaLabel)
	fileActions := container.NewHBox(ui.changeFileBtn, ui.removeFileBtn)
	ui.fileCard = container.NewBorder(nil, nil, ui.fileIconLabel, fileActions, fileInfo)
	ui.fileCard.Hide()

	selectionArea := container.NewStack(ui.dropZone, ui.fileCard)

	// Format choice
	ui.convertToLabel = widget.NewLabel(ui.localization.GetText(KeyConvertTo) + ":")
	ui.formatRadio = widget.NewRadioGroup(formatLabels(), nil)
	ui.formatRadio.SetSelected(labelForFormat(ui.settings.GetDefaultFormat()))

	// Create convert button
	ui.convertBtn = widget.NewButton(ui.localization.GetText(KeyConvert), ui.onConvertClick)
	ui.convertBtn.Importance = widget.HighImportance

	// Conversion progress and result card
	ui.conversionCard = NewConversionCard(ui.localization)
	ui.conversionCard.SetCallbacks(ui.onSaveResult, ui.onOpenSaved, ui.onRevealSaved, ui.onClearResult)
	ui.conversionCard.Hide()

	// Create main layout
	content := container.NewBorder(
		topCombined, // top
		nil,         // bottom
		nil,         // left
		nil,         // right
		container.NewVBox(
			selectionArea,
			ui.convertToLabel,
			ui.formatRadio,
			ui.convertBtn,
			widget.NewSeparator(),
			ui.conversionCard,
		),
	)

	ui.window.SetContent(content)
	ui.window.SetOnDropped(ui.onDropped)

	ui.updateStage()

	log.Debug().Msg("UI setup completed")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	// Settings menu item
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	availableLanguages := ui.localization.GetAvailableLanguages()
	for code, name := range availableLanguages {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	// Create main menu
	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	// Update localization
	ui.localization.SetLanguage(langCode)

	// Save to settings
	ui.settings.SetLanguage(langCode)

	// Update UI texts
	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))

	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.importBtn.SetText(ui.localization.GetText(KeyImport))
	ui.convertBtn.SetText(ui.localization.GetText(KeyConvert))
	ui.convertToLabel.SetText(ui.localization.GetText(KeyConvertTo) + ":")
	ui.changeFileBtn.SetText(ui.localization.GetText(KeyChangeFile))
	ui.removeFileBtn.SetText(ui.localization.GetText(KeyRemoveFile))
	ui.dropZone.RefreshTexts()
	ui.conversionCard.RefreshTexts()
}

// validateURL validates the entered URL
func (ui *RootUI) validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil // Empty is allowed
	}

	parsedURL, err := url.Parse(input)
	if err != nil {
		return err
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}

	return nil
}

// updateStage renders the stage area from selection and task state
func (ui *RootUI) updateStage() {
	// Selection area: file card when chosen, drop zone otherwise
	if ui.selectedFile != nil {
		icon := IconMovie
		if platform.IsAudioFile(ui.selectedFile.Name) {
			icon = IconMusic
		}
		ui.fileIconLabel.SetText(icon)
		ui.fileNameLabel.SetText(ui.selectedFile.DisplayName())

		meta := ui.selectedFile.SizeString()
		if ui.selectedFile.Title != "" {
			tagLine := ui.selectedFile.Title
			if ui.selectedFile.Artist != "" {
				tagLine = ui.selectedFile.Artist + MiddleDotSeparator + tagLine
			}
			meta = tagLine + MiddleDotSeparator + meta
		}
		ui.fileMetaLabel.SetText(meta)

		ui.dropZone.Hide()
		ui.fileCard.Show()
	} else {
		ui.fileCard.Hide()
		ui.dropZone.Show()
	}

	task, hasTask := ui.currentTask()
	converting := hasTask && task.Status.IsActive()
	fetching := ui.fetchSvc.HasActive()

	// Convert requires a selection and no work in flight
	if ui.selectedFile != nil && !converting && !fetching {
		ui.convertBtn.Enable()
	} else {
		ui.convertBtn.Disable()
	}

	// Selection and format are pinned while converting
	if converting {
		ui.formatRadio.Disable()
		ui.changeFileBtn.Disable()
		ui.removeFileBtn.Disable()
	} else {
		ui.formatRadio.Enable()
		ui.changeFileBtn.Enable()
		ui.removeFileBtn.Enable()
	}

	if hasTask {
		ui.conversionCard.Show()
	} else {
		ui.conversionCard.Hide()
	}
}

// currentTask returns the conversion task the UI is tracking
func (ui *RootUI) currentTask() (*model.ConversionTask, bool) {
	if ui.activeTaskID == "" {
		return nil, false
	}
	return ui.convertSvc.GetTask(ui.activeTaskID)
}

// releasePriorResult releases the finished task's result handle so a new
// selection or attempt never leaks it. Safe to call when nothing is held.
func (ui *RootUI) releasePriorResult() {
	task, ok := ui.currentTask()
	if !ok || !task.Status.IsFinished() {
		return
	}

	if err := ui.convertSvc.ClearResult(task.ID); err != nil {
		log.Warn().Err(err).Str("task_id", task.ID).Msg("failed to clear previous result")
		return
	}

	ui.activeTaskID = ""
	ui.conversionCard.SetSavedPath("")
}

// onChooseFile opens the media file picker
func (ui *RootUI) onChooseFile() {
	if task, ok := ui.currentTask(); ok && task.Status.IsActive() {
		return // selection is pinned while converting
	}

	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if reader == nil {
			return // cancelled
		}
		defer reader.Close()

		ui.setSelectedFromPath(reader.URI().Path(), reader.URI().Name())
	}, ui.window)

	// Extension filter is advisory: unsupported content surfaces as a
	// conversion fault, never as a picker rejection.
	fileDialog.SetFilter(storage.NewExtensionFileFilter(platform.MediaExtensions()))
	fileDialog.Resize(fyne.NewSize(FileDialogWidth, FileDialogHeight))
	fileDialog.Show()
}

// onDropped handles files dropped onto the window
func (ui *RootUI) onDropped(_ fyne.Position, uris []fyne.URI) {
	if len(uris) == 0 {
		return
	}
	if task, ok := ui.currentTask(); ok && task.Status.IsActive() {
		return // ignore drops while converting
	}

	if len(uris) > 1 {
		log.Debug().Int("count", len(uris)).Msg("multiple files dropped, using the first")
	}

	uri := uris[0]
	if uri.Scheme() != "file" {
		ui.showNotification(ui.localization.GetText(KeyNotMediaHint), false)
		return
	}
	if !platform.IsLikelyMediaFile(uri.Name()) {
		// Advisory hint only, the file is still accepted
		ui.showNotification(ui.localization.GetText(KeyNotMediaHint), false)
	}

	ui.setSelectedFromPath(uri.Path(), uri.Name())
}

// setSelectedFromPath replaces the current selection with the given file.
// Accepting a new file always discards any prior result or error.
func (ui *RootUI) setSelectedFromPath(path, name string) {
	if task, ok := ui.currentTask(); ok && task.Status.IsActive() {
		return // selection is pinned while converting
	}

	info, err := os.Stat(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("selected file is not readable")
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error(), false)
		return
	}
	if name == "" {
		name = filepath.Base(path)
	}

	ui.releasePriorResult()

	selected := &model.SelectedFile{
		Path: path,
		Name: name,
		Size: info.Size(),
	}

	// Embedded tags enrich the file card for audio inputs
	if platform.IsAudioFile(name) {
		if tags, tagErr := platform.ReadAudioTags(path); tagErr == nil {
			selected.Title = tags.Title
			selected.Artist = tags.Artist
		} else {
			log.Debug().Err(tagErr).Str("path", path).Msg("no readable audio tags")
		}
	}

	ui.selectedFile = selected
	log.Info().Str("path", path).Int64("size", info.Size()).Msg("file selected")

	ui.updateStage()
}

// onRemoveFile clears the current selection together with any held result
// or error, returning to the empty state
func (ui *RootUI) onRemoveFile() {
	if task, ok := ui.currentTask(); ok && task.Status.IsActive() {
		return
	}

	ui.releasePriorResult()
	ui.selectedFile = nil
	log.Info().Msg("selection cleared")
	ui.updateStage()
}

// formatLabels returns the picker labels for all output formats
func formatLabels() []string {
	labels := []string{}
	for _, key := range model.FormatKeys() {
		if spec, err := model.FormatConfig(key); err == nil {
			labels = append(labels, spec.Label)
		}
	}
	return labels
}

// labelForFormat returns the picker label for a format key
func labelForFormat(key model.FormatKey) string {
	if spec, err := model.FormatConfig(key); err == nil {
		return spec.Label
	}
	return string(key)
}

// selectedFormatKey resolves the radio selection back to a format key
func (ui *RootUI) selectedFormatKey() model.FormatKey {
	for _, key := range model.FormatKeys() {
		if spec, err := model.FormatConfig(key); err == nil && spec.Label == ui.formatRadio.Selected {
			return key
		}
	}
	return ui.settings.GetDefaultFormat()
}

// onConvertClick handles the convert button click
func (ui *RootUI) onConvertClick() {
	if ui.selectedFile == nil {
		ui.showNotification(ui.localization.GetText(KeyDropHint), false)
		return
	}

	formatKey := ui.selectedFormatKey()

	// Release the previous result before starting a new conversion
	ui.releasePriorResult()

	task, err := ui.convertSvc.StartConversion(ui.selectedFile, formatKey)
	if err != nil {
		log.Error().Err(err).Str("format", string(formatKey)).Msg("failed to start conversion")
		ui.showNotification(ui.localization.GetText(KeyConversionFailed)+": "+err.Error(), false)
		widget.ShowPopUp(widget.NewLabel(err.Error()), ui.window.Canvas())
		return
	}

	ui.activeTaskID = task.ID
	ui.uiUpdateMutex.Lock()
	ui.lastConvStatus = task.Status
	ui.uiUpdateMutex.Unlock()

	ui.conversionCard.SetSavedPath("")
	ui.conversionCard.UpdateTask(task)
	ui.hideNotification()
	ui.updateStage()

	log.Info().Str("task_id", task.ID).Str("format", string(formatKey)).Msg("conversion started")
	widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyConversionStarted)), ui.window.Canvas())
}

// onConversionUpdate handles task updates from the conversion service
func (ui *RootUI) onConversionUpdate(task *model.ConversionTask) {
	if task == nil {
		return
	}

	log.Debug().
		Str("task_id", task.ID).
		Str("status", task.Status.String()).
		Int("percent", task.Percent).
		Msg("conversion update")

	ui.uiUpdateMutex.Lock()
	wasCompleted := ui.lastConvStatus != model.TaskStatusCompleted && task.Status == model.TaskStatusCompleted
	ui.lastConvStatus = task.Status
	// Throttle active progress updates; terminal updates always pass
	throttle := task.Status.IsActive() && time.Since(ui.lastUIUpdate) < UIUpdateDebounce
	if !throttle {
		ui.lastUIUpdate = time.Now()
	}
	ui.uiUpdateMutex.Unlock()

	if throttle {
		return
	}

	fyne.Do(func() {
		ui.conversionCard.UpdateTask(task)
		ui.updateStage()

		if wasCompleted {
			ui.sendCompletionNotification(task)
		}
	})
}

// sendCompletionNotification sends a system notification for a completed conversion
func (ui *RootUI) sendCompletionNotification(task *model.ConversionTask) {
	fyne.CurrentApp().SendNotification(&fyne.Notification{
		Title:   ui.localization.GetText(KeyConversionCompleted),
		Content: task.GetDisplayTitle(),
	})

	ui.showToastNotification(task)
}

// showToastNotification shows an in-app toast with a save shortcut
func (ui *RootUI) showToastNotification(task *model.ConversionTask) {
	titleLabel := widget.NewLabel(ui.localization.GetText(KeyConversionCompleted))
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	message := task.GetDisplayTitle()
	if task.Result != nil && !task.Result.Released() {
		message = task.Result.FileName + MiddleDotSeparator + task.Result.SizeString()
	}
	messageLabel := widget.NewLabel(message)
	messageLabel.Truncation = fyne.TextTruncateEllipsis

	saveBtn := widget.NewButton(ui.localization.GetText(KeySaveResult), func() {
		ui.onSaveResult(task.ID)
	})
	saveBtn.Importance = widget.HighImportance

	var toastPopup *widget.PopUp
	closeBtn := widget.NewButton(IconClose, func() {
		if toastPopup != nil {
			toastPopup.Hide()
		}
	})
	closeBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, titleLabel, closeBtn)
	content := container.NewVBox(
		header,
		messageLabel,
		container.NewHBox(saveBtn),
	)

	toastPopup = widget.NewPopUp(content, ui.window.Canvas())

	// Position in top-right corner
	canvasSize := ui.window.Canvas().Size()
	toastSize := fyne.NewSize(ToastWidth, ToastHeight)
	toastPos := fyne.NewPos(canvasSize.Width-toastSize.Width-ToastMargin, ToastMargin)

	toastPopup.Resize(toastSize)
	toastPopup.Move(toastPos)
	toastPopup.Show()

	// Auto-hide after configured time
	go func() {
		time.Sleep(ToastAutoHide)
		fyne.Do(func() {
			if toastPopup != nil {
				toastPopup.Hide()
			}
		})
	}()
}

// onSaveResult writes the conversion result to a user-chosen location
func (ui *RootUI) onSaveResult(taskID string) {
	task, exists := ui.convertSvc.GetTask(taskID)
	if !exists || task.Result == nil || task.Result.Released() {
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyNoResult)), ui.window.Canvas())
		return
	}
	result := task.Result

	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if writer == nil {
			return // cancelled
		}
		defer writer.Close()

		if _, writeErr := writer.Write(result.Data); writeErr != nil {
			log.Error().Err(writeErr).Str("task_id", taskID).Msg("failed to write result")
			dialog.ShowError(writeErr, ui.window)
			return
		}

		savedPath := writer.URI().Path()
		log.Info().Str("path", savedPath).Int64("size", result.Size()).Msg("result saved")

		ui.conversionCard.SetSavedPath(savedPath)

		if scanErr := platform.NotifyMediaScanner(savedPath); scanErr != nil {
			log.Warn().Err(scanErr).Str("path", savedPath).Msg("media scanner notification failed")
		}

		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyFileSaved)), ui.window.Canvas())

		if ui.settings.GetAutoRevealOnSave() {
			ui.onRevealSaved(savedPath)
		}
	}, ui.window)

	saveDialog.SetFileName(result.FileName)
	if lister, err := storage.ListerForURI(storage.NewFileURI(ui.settings.GetSaveDirectory())); err == nil {
		saveDialog.SetLocation(lister)
	}
	saveDialog.Show()
}

// onOpenSaved opens the saved file with the default application
func (ui *RootUI) onOpenSaved(filePath string) {
	if filePath == "" {
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyNoResult)), ui.window.Canvas())
		return
	}

	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		log.Error().Err(err).Str("path", filePath).Msg("failed to open file")
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error()), ui.window.Canvas())
		return
	}

	log.Debug().Str("path", filePath).Msg("file opened")
}

// onRevealSaved reveals the saved file in the system file manager
func (ui *RootUI) onRevealSaved(filePath string) {
	if filePath == "" {
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyNoResult)), ui.window.Canvas())
		return
	}

	if err := platform.OpenFileInManager(filePath); err != nil {
		log.Error().Err(err).Str("path", filePath).Msg("failed to reveal file")
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error()), ui.window.Canvas())
		return
	}

	log.Debug().Str("path", filePath).Msg("file revealed")
}

// onClearResult discards the held result and releases its handle
func (ui *RootUI) onClearResult(taskID string) {
	if err := ui.convertSvc.ClearResult(taskID); err != nil {
		log.Warn().Err(err).Str("task_id", taskID).Msg("failed to clear result")
		widget.ShowPopUp(widget.NewLabel(err.Error()), ui.window.Canvas())
		return
	}

	ui.activeTaskID = ""
	ui.conversionCard.SetSavedPath("")
	log.Info().Str("task_id", taskID).Msg("result cleared")
	ui.updateStage()
}

// onImportClick handles the import button click
func (ui *RootUI) onImportClick() {
	urlText := strings.TrimSpace(ui.urlEntry.Text)
	if urlText == "" {
		ui.showNotification(ui.localization.GetText(KeyPleaseEnterURL), false)
		return
	}

	if err := ui.validateURL(urlText); err != nil {
		ui.showNotification(ui.localization.GetText(KeyInvalidURL)+": "+err.Error(), false)
		return
	}

	task, err := ui.fetchSvc.AddTask(urlText)
	if err != nil {
		ui.showNotification(err.Error(), false)
		return
	}

	log.Info().Str("task_id", task.ID).Str("url", urlText).Msg("import started")
	ui.urlEntry.SetText("")
	ui.showNotification(ui.localization.GetText(KeyImportStarted), true)
	ui.updateStage()
}

// onFetchUpdate handles task updates from the fetch service
func (ui *RootUI) onFetchUpdate(task *model.FetchTask) {
	if task == nil {
		return
	}

	log.Debug().
		Str("task_id", task.ID).
		Str("status", task.Status.String()).
		Int("percent", task.Percent).
		Msg("fetch update")

	ui.uiUpdateMutex.Lock()
	throttle := task.Status.IsActive() && time.Since(ui.lastUIUpdate) < UIUpdateDebounce
	if !throttle {
		ui.lastUIUpdate = time.Now()
	}
	ui.uiUpdateMutex.Unlock()

	if throttle {
		return
	}

	fyne.Do(func() {
		switch task.Status {
		case model.TaskStatusStarting, model.TaskStatusFetching:
			message := task.GetDisplayTitle()
			if message == "" {
				message = ui.localization.GetText(KeyImportStarted)
			}
			if task.Percent > 0 {
				message += MiddleDotSeparator + fmt.Sprintf(ProgressLabelFormat, task.Percent)
			}
			if task.Speed != "" {
				message += MiddleDotSeparator + task.Speed
			}
			ui.showNotification(message, true)
		case model.TaskStatusCompleted:
			ui.hideNotification()
			if task.OutputPath != "" {
				ui.setSelectedFromPath(task.OutputPath, filepath.Base(task.OutputPath))
			}
			widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyImportCompleted)), ui.window.Canvas())
		case model.TaskStatusError:
			message := ui.localization.GetText(KeyImportFailed)
			if task.LastError != "" {
				message += ": " + task.LastError
			}
			ui.showNotification(message, false)
		}

		ui.updateStage()
	})
}

// showNotification displays a message in the notification panel under the URL input.
// When spinning is true, a spinner is shown to indicate background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		if spinning {
			ui.notificationSpinner.Show()
		} else {
			ui.notificationSpinner.Hide()
		}
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})
}

// hideNotification hides the notification panel.
func (ui *RootUI) hideNotification() {
	if ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationSpinner.Hide()
		ui.notificationContainer.Hide()
	})
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, func() {
		// Apply language immediately; other settings are read on use
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
	}).Show()
}
