package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// DropZone is the empty-state selection area. It accepts window-level file
// drops (wired by RootUI) and opens the file picker when tapped.
type DropZone struct {
	widget.BaseWidget

	localization *Localization

	iconLabel *widget.Label
	hintLabel *widget.Label

	highlighted bool
	onTapped    func()
}

// NewDropZone creates a new drop zone widget
func NewDropZone(localization *Localization, onTapped func()) *DropZone {
	dz := &DropZone{
		localization: localization,
		onTapped:     onTapped,
	}
	dz.ExtendBaseWidget(dz)
	dz.createUI()
	return dz
}

// createUI creates the UI components
func (dz *DropZone) createUI() {
	dz.iconLabel = widget.NewLabel(IconMovie)
	dz.iconLabel.Alignment = fyne.TextAlignCenter
	dz.iconLabel.TextStyle = fyne.TextStyle{Bold: true}

	dz.hintLabel = widget.NewLabel(dz.localization.GetText(KeyDropHint))
	dz.hintLabel.Alignment = fyne.TextAlignCenter
	dz.hintLabel.Wrapping = fyne.TextWrapWord
}

// Tapped opens the file picker
func (dz *DropZone) Tapped(_ *fyne.PointEvent) {
	if dz.onTapped != nil {
		dz.onTapped()
	}
}

// MouseIn highlights the zone while the cursor is over it
func (dz *DropZone) MouseIn(_ *desktop.MouseEvent) {
	dz.SetHighlight(true)
}

// MouseMoved is required by desktop.Hoverable
func (dz *DropZone) MouseMoved(_ *desktop.MouseEvent) {}

// MouseOut removes the hover highlight
func (dz *DropZone) MouseOut() {
	dz.SetHighlight(false)
}

// SetHighlight toggles the visual drop target emphasis
func (dz *DropZone) SetHighlight(active bool) {
	if dz.highlighted == active {
		return
	}
	dz.highlighted = active
	dz.Refresh()
}

// RefreshTexts re-applies localized strings after a language change
func (dz *DropZone) RefreshTexts() {
	dz.hintLabel.SetText(dz.localization.GetText(KeyDropHint))
}

// CreateRenderer creates the widget renderer
func (dz *DropZone) CreateRenderer() fyne.WidgetRenderer {
	return &dropZoneRenderer{zone: dz}
}

// dropZoneRenderer renders the drop zone widget
type dropZoneRenderer struct {
	zone       *DropZone
	background *canvas.Rectangle
	content    *fyne.Container
}

// Layout arranges the components
func (r *dropZoneRenderer) Layout(size fyne.Size) {
	if r.background == nil {
		r.createLayout()
	}
	r.background.Resize(size)
	r.content.Resize(size)
}

// MinSize returns the minimum size
func (r *dropZoneRenderer) MinSize() fyne.Size {
	return fyne.NewSize(DropZoneMinWidth, DropZoneMinHeight)
}

// Refresh re-applies colors based on highlight state
func (r *dropZoneRenderer) Refresh() {
	if r.background == nil {
		r.createLayout()
	}

	th := fyne.CurrentApp().Settings().Theme()
	variant := fyne.CurrentApp().Settings().ThemeVariant()
	if r.zone.highlighted {
		r.background.FillColor = th.Color(theme.ColorNameSelection, variant)
		r.background.StrokeColor = th.Color(theme.ColorNamePrimary, variant)
	} else {
		r.background.FillColor = color.Transparent
		r.background.StrokeColor = th.Color(theme.ColorNameInputBorder, variant)
	}
	r.background.Refresh()
	r.content.Refresh()
}

// Objects returns the container objects
func (r *dropZoneRenderer) Objects() []fyne.CanvasObject {
	if r.background == nil {
		r.createLayout()
	}
	return []fyne.CanvasObject{r.background, r.content}
}

// Destroy cleans up the renderer
func (r *dropZoneRenderer) Destroy() {}

// createLayout creates the main layout
func (r *dropZoneRenderer) createLayout() {
	r.background = canvas.NewRectangle(color.Transparent)
	r.background.StrokeWidth = DropZoneStrokeWidth
	r.background.CornerRadius = DropZoneCornerRadius

	r.content = container.NewCenter(container.NewVBox(r.zone.iconLabel, r.zone.hintLabel))
}
