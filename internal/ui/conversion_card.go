package ui

import (
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"

	"github.com/ytget/media-converter/internal/model"
)

// Progress calculation constants
const (
	MaxProgressPercent  = 100
	MinProgressPercent  = 1
	RoundingCoefficient = 0.5
)

// ConversionCard shows the state of the current conversion: title, status,
// progress, and the result actions once the conversion finishes.
type ConversionCard struct {
	widget.BaseWidget

	task         *model.ConversionTask
	localization *Localization
	savedPath    string

	// UI components
	titleLabel   *widget.Label
	statusLabel  *widget.Label
	progressBar  *widget.ProgressBar
	percentLabel *widget.Label
	speedLabel   *widget.Label
	resultLabel  *widget.Label
	errorLabel   *widget.Label

	// Action buttons
	saveBtn   *widget.Button // save result bytes to disk
	openBtn   *widget.Button // open saved file with default app
	revealBtn *widget.Button // reveal saved file in file manager
	clearBtn  *widget.Button // discard result and release its handle

	// Callbacks
	onSave   func(taskID string)
	onOpen   func(filePath string)
	onReveal func(filePath string)
	onClear  func(taskID string)
}

// NewConversionCard creates a new conversion card widget
func NewConversionCard(localization *Localization) *ConversionCard {
	cc := &ConversionCard{
		localization: localization,
	}
	cc.ExtendBaseWidget(cc)
	cc.createUI()
	return cc
}

// SetCallbacks sets the action callbacks
func (cc *ConversionCard) SetCallbacks(
	onSave func(taskID string),
	onOpen func(filePath string),
	onReveal func(filePath string),
	onClear func(taskID string),
) {
	cc.onSave = onSave
	cc.onOpen = onOpen
	cc.onReveal = onReveal
	cc.onClear = onClear
}

// SetSavedPath records where the result was last saved. An empty path means
// the result has not been written to disk yet.
func (cc *ConversionCard) SetSavedPath(path string) {
	cc.savedPath = path
	if cc.task != nil {
		cc.updateFromTask()
		cc.Refresh()
	}
}

// UpdateTask updates the card with new task data
func (cc *ConversionCard) UpdateTask(task *model.ConversionTask) {
	if task == nil {
		log.Warn().Msg("UpdateTask called with nil task")
		return
	}

	cc.task = task
	cc.updateFromTask()
	cc.Refresh()
}

// RefreshTexts re-applies localized strings after a language change
func (cc *ConversionCard) RefreshTexts() {
	cc.saveBtn.SetText(cc.localization.GetText(KeySaveResult))
	cc.openBtn.SetText(cc.localization.GetText(KeyOpen))
	cc.revealBtn.SetText(cc.localization.GetText(KeyReveal))
	cc.clearBtn.SetText(cc.localization.GetText(KeyDiscardResult))
	if cc.task != nil {
		cc.updateFromTask()
	}
	cc.Refresh()
}

// createUI creates the UI components
func (cc *ConversionCard) createUI() {
	cc.titleLabel = widget.NewLabel("")
	cc.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	cc.titleLabel.Truncation = fyne.TextTruncateEllipsis
	cc.titleLabel.Alignment = fyne.TextAlignLeading

	cc.statusLabel = widget.NewLabel("")
	cc.statusLabel.Alignment = fyne.TextAlignTrailing

	cc.progressBar = widget.NewProgressBar()
	cc.progressBar.Min = 0
	cc.progressBar.Max = 1

	cc.percentLabel = widget.NewLabel("")
	cc.percentLabel.Alignment = fyne.TextAlignTrailing

	cc.speedLabel = widget.NewLabel("")
	cc.speedLabel.Alignment = fyne.TextAlignLeading
	cc.speedLabel.TextStyle = fyne.TextStyle{Monospace: true}

	cc.resultLabel = widget.NewLabel("")
	cc.resultLabel.Alignment = fyne.TextAlignLeading

	cc.errorLabel = widget.NewLabel("")
	cc.errorLabel.Wrapping = fyne.TextWrapWord
	cc.errorLabel.Importance = widget.DangerImportance
	cc.errorLabel.Hide()

	cc.saveBtn = widget.NewButton(cc.localization.GetText(KeySaveResult), func() {
		currentTask := cc.task
		if currentTask == nil {
			return
		}
		if cc.onSave != nil {
			cc.onSave(currentTask.ID)
		}
	})
	cc.saveBtn.Importance = widget.HighImportance

	cc.openBtn = widget.NewButton(cc.localization.GetText(KeyOpen), func() {
		if cc.savedPath == "" {
			widget.ShowPopUp(widget.NewLabel(cc.localization.GetText(KeyNoResult)),
				fyne.CurrentApp().Driver().CanvasForObject(cc.openBtn))
			return
		}
		if cc.onOpen != nil {
			cc.onOpen(cc.savedPath)
		}
	})
	cc.openBtn.Importance = widget.MediumImportance

	cc.revealBtn = widget.NewButton(cc.localization.GetText(KeyReveal), func() {
		if cc.savedPath == "" {
			widget.ShowPopUp(widget.NewLabel(cc.localization.GetText(KeyNoResult)),
				fyne.CurrentApp().Driver().CanvasForObject(cc.revealBtn))
			return
		}
		if cc.onReveal != nil {
			cc.onReveal(cc.savedPath)
		}
	})
	cc.revealBtn.Importance = widget.MediumImportance

	cc.clearBtn = widget.NewButton(cc.localization.GetText(KeyDiscardResult), func() {
		currentTask := cc.task
		if currentTask == nil {
			return
		}
		if cc.onClear != nil {
			cc.onClear(currentTask.ID)
		}
	})
	cc.clearBtn.Importance = widget.LowImportance
}

// updateFromTask updates UI components based on task state
func (cc *ConversionCard) updateFromTask() {
	if cc.task == nil {
		return
	}

	cc.titleLabel.SetText(cc.displayTitle())

	// Status label color and text
	switch cc.task.Status {
	case model.TaskStatusError:
		cc.statusLabel.Importance = widget.DangerImportance
		cc.statusLabel.SetText(IconError + " " + cc.task.Status.String())
	case model.TaskStatusCompleted:
		cc.statusLabel.Importance = widget.SuccessImportance
		cc.statusLabel.SetText(cc.task.Status.String())
	case model.TaskStatusConverting:
		cc.statusLabel.Importance = widget.HighImportance
		cc.statusLabel.SetText(cc.task.Status.String())
	default:
		cc.statusLabel.Importance = widget.MediumImportance
		cc.statusLabel.SetText(cc.task.Status.String())
	}

	// Progress bar and percent label
	effectivePercent := cc.effectivePercent()
	cc.progressBar.SetValue(float64(effectivePercent) / MaxProgressPercent)
	if cc.task.Status == model.TaskStatusCompleted {
		cc.percentLabel.SetText("")
	} else {
		cc.percentLabel.SetText(fmt.Sprintf(ProgressLabelFormat, effectivePercent))
	}

	// Speed while converting
	if cc.task.Status == model.TaskStatusConverting && cc.task.Speed != "" {
		cc.speedLabel.SetText(cc.task.Speed)
	} else {
		cc.speedLabel.SetText("")
	}

	// Result size once available
	if cc.task.Status == model.TaskStatusCompleted && cc.task.Result != nil && !cc.task.Result.Released() {
		cc.resultLabel.SetText(cc.task.Result.FileName + MiddleDotSeparator + cc.task.Result.SizeString())
	} else {
		cc.resultLabel.SetText("")
	}

	// Fault text on error
	if cc.task.Status == model.TaskStatusError && cc.task.LastError != "" {
		cc.errorLabel.SetText(cc.task.LastError)
		cc.errorLabel.Show()
	} else {
		cc.errorLabel.SetText("")
		cc.errorLabel.Hide()
	}

	cc.updateButtons()
}

// displayTitle builds the card headline from the task input and target format
func (cc *ConversionCard) displayTitle() string {
	title := cc.task.GetDisplayTitle()
	title = strings.ReplaceAll(title, "\n", " ")
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.TrimSpace(title)

	if spec, err := model.FormatConfig(cc.task.Format); err == nil {
		title += " → " + strings.ToUpper(spec.Ext)
	}
	return title
}

// effectivePercent derives a bounded display percent from task state
func (cc *ConversionCard) effectivePercent() int {
	effectivePercent := cc.task.Percent
	if cc.task.Status.IsFinished() {
		// Terminal states always show a full bar
		return MaxProgressPercent
	}
	if effectivePercent <= 0 && cc.task.Progress > 0 {
		effectivePercent = int(cc.task.Progress*MaxProgressPercent + RoundingCoefficient)
		if effectivePercent == 0 {
			effectivePercent = MinProgressPercent
		}
	}
	if effectivePercent < 0 {
		effectivePercent = 0
	}
	if effectivePercent > MaxProgressPercent {
		effectivePercent = MaxProgressPercent
	}
	return effectivePercent
}

// updateButtons updates button states based on task status
func (cc *ConversionCard) updateButtons() {
	if cc.task == nil {
		return
	}

	hasResult := cc.task.Status == model.TaskStatusCompleted &&
		cc.task.Result != nil && !cc.task.Result.Released()

	if hasResult {
		cc.saveBtn.Show()
		cc.saveBtn.Enable()
	} else {
		cc.saveBtn.Hide()
	}

	// Open and Reveal work on the saved copy, not the in-memory result
	if hasResult && cc.savedPath != "" {
		cc.openBtn.Show()
		cc.openBtn.Enable()
		cc.revealBtn.Show()
		cc.revealBtn.Enable()
	} else if hasResult {
		cc.openBtn.Show()
		cc.openBtn.Disable()
		cc.revealBtn.Show()
		cc.revealBtn.Disable()
	} else {
		cc.openBtn.Hide()
		cc.revealBtn.Hide()
	}

	// Discard dismisses either a held result or a fault message
	if cc.task.Status.IsFinished() {
		cc.clearBtn.Show()
		cc.clearBtn.Enable()
	} else {
		cc.clearBtn.Hide()
	}
}

// CreateRenderer creates the widget renderer
func (cc *ConversionCard) CreateRenderer() fyne.WidgetRenderer {
	return &conversionCardRenderer{card: cc}
}

// conversionCardRenderer renders the conversion card widget
type conversionCardRenderer struct {
	card   *ConversionCard
	layout *fyne.Container
}

// Layout arranges the components
func (r *conversionCardRenderer) Layout(size fyne.Size) {
	if r.layout == nil {
		r.createLayout()
	}
	if size.Width < CardMinWidth {
		size.Width = CardMinWidth
	}
	if size.Height < CardMinHeight {
		size.Height = CardMinHeight
	}
	r.layout.Resize(size)
}

// MinSize returns the minimum size
func (r *conversionCardRenderer) MinSize() fyne.Size {
	if r.layout != nil {
		minSize := r.layout.MinSize()
		if minSize.Width < CardMinWidth {
			minSize.Width = CardMinWidth
		}
		return minSize
	}
	return fyne.NewSize(CardMinWidth, CardMinHeight)
}

// Refresh refreshes the renderer
func (r *conversionCardRenderer) Refresh() {
	if r.layout == nil {
		r.createLayout()
	}
	r.layout.Refresh()
}

// Objects returns the container objects
func (r *conversionCardRenderer) Objects() []fyne.CanvasObject {
	if r.layout == nil {
		r.createLayout()
	}
	return []fyne.CanvasObject{r.layout}
}

// Destroy cleans up the renderer
func (r *conversionCardRenderer) Destroy() {}

// createLayout creates the main layout
func (r *conversionCardRenderer) createLayout() {
	cc := r.card

	// Helper to fix width using a transparent rectangle underneath
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	// Row 1: title on the left, status pinned right
	headerRow := container.NewBorder(nil, nil, nil, fixedWidth(StatusLabelWidth, cc.statusLabel), cc.titleLabel)

	// Row 2: progress bar with percent pinned right
	progressRow := container.NewBorder(nil, nil, nil, fixedWidth(PercentLabelWidth, cc.percentLabel), cc.progressBar)

	// Row 3: speed or result info left, action buttons pinned right
	actionRow := container.NewHBox(cc.saveBtn, cc.openBtn, cc.revealBtn, cc.clearBtn)
	infoRow := container.NewBorder(nil, nil, nil, actionRow,
		container.NewHBox(fixedWidth(SpeedLabelWidth, cc.speedLabel), cc.resultLabel))

	r.layout = container.NewVBox(
		headerRow,
		progressRow,
		infoRow,
		cc.errorLabel,
		widget.NewSeparator(),
	)

	r.layout.Resize(fyne.NewSize(CardMinWidth, CardMinHeight))
	r.layout.Refresh()
}
