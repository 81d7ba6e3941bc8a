package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconFile     = "📄"
	IconMovie    = "🎬"
	IconMusic    = "🎵"
	IconSave     = "💾"
	IconClose    = "×"
	IconError    = "❌"
	IconLanguage = "🌐"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
)

// Layout sizing (conversion card / selection area)
const (
	StatusLabelWidth  float32 = 110
	SpeedLabelWidth   float32 = 80
	PercentLabelWidth float32 = 48

	CardMinWidth  float32 = 400
	CardMinHeight float32 = 96

	DropZoneMinWidth     float32 = 400
	DropZoneMinHeight    float32 = 160
	DropZoneCornerRadius float32 = 12
	DropZoneStrokeWidth  float32 = 2

	FileDialogWidth  float32 = 700
	FileDialogHeight float32 = 500

	// Touch target minimum sizes (iOS/Android guidelines)
	MinTouchTargetSize float32 = 44
	MobileButtonWidth  float32 = 60
	MobileButtonHeight float32 = 48
	MobileEntryHeight  float32 = 48
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 120
	ToastMargin   float32 = 20
	ToastAutoHide         = 5 * time.Second
)

// Debounce durations
const (
	UIUpdateDebounce = 100 * time.Millisecond
)
