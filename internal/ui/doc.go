package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It wires file selection, format choice, conversion progress, and result
// saving to the conversion and fetch services. All UI strings are localized
// via Localization.
