package model

import (
	"fmt"
	"strings"
	"time"
)

// SelectedFile is the user-chosen input for one conversion attempt. It is
// replaced or cleared by user action, never mutated in place.
type SelectedFile struct {
	Path string // absolute path to the content
	Name string // declared name as shown to the user
	Size int64  // size in bytes

	// Optional audio tags read at selection time, empty when absent
	Title  string
	Artist string
}

// SizeString returns the file size in human readable form
func (sf *SelectedFile) SizeString() string {
	return formatBytes(sf.Size)
}

// DisplayName returns the declared name, falling back to the path base
func (sf *SelectedFile) DisplayName() string {
	if sf.Name != "" {
		return sf.Name
	}
	parts := strings.FieldsFunc(sf.Path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) > 0 {
		return parts[len(parts)-1]
	}
	return sf.Path
}

// ConversionTask represents a single conversion attempt
type ConversionTask struct {
	ID         string
	Input      *SelectedFile
	Format     FormatKey
	Status     TaskStatus
	Progress   float64 // 0.0 to 1.0
	Percent    int     // 0 to 100
	Speed      string  // encoding speed as reported by ffmpeg (e.g., "3.1x")
	LastError  string  // last error message if any
	Result     *ConversionResult
	StartedAt  time.Time
	FinishedAt time.Time
}

// GetDisplayTitle returns the input name without its extension, or the ID
// when no input is attached
func (ct *ConversionTask) GetDisplayTitle() string {
	if ct.Input == nil {
		return ct.ID
	}
	name := ct.Input.DisplayName()
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	return name
}

// FetchTask represents a single URL import task
type FetchTask struct {
	ID         string
	URL        string
	Status     TaskStatus
	Progress   float64   // 0.0 to 1.0
	Percent    int       // 0 to 100
	Speed      string    // human readable speed (e.g., "1.2MB/s")
	ETASec     int       // ETA in seconds, -1 if unknown
	LastError  string    // last error message if any
	OutputPath string    // path to fetched file
	StartedAt  time.Time // when fetch started
	FinishedAt time.Time // when fetch finished
	Title      string    // media title when the source reports one
}

// GetETAString returns ETA formatted as hh:mm:ss, or "—" if unknown
func (ft *FetchTask) GetETAString() string {
	if ft.ETASec <= 0 {
		return "—"
	}

	hours := ft.ETASec / 3600
	minutes := (ft.ETASec % 3600) / 60
	seconds := ft.ETASec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// GetDisplayTitle returns title, filename, or URL in order of preference
func (ft *FetchTask) GetDisplayTitle() string {
	// First priority: media title (non-URL)
	if ft.Title != "" && !strings.HasPrefix(ft.Title, "http") {
		return ft.Title
	}

	// Second priority: filename from OutputPath
	if ft.OutputPath != "" {
		parts := strings.FieldsFunc(ft.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			filename := parts[len(parts)-1]
			if idx := strings.LastIndex(filename, "."); idx > 0 {
				filename = filename[:idx]
			}
			return filename
		}
	}

	if ft.URL == "" {
		return ""
	}
	return ft.URL
}

// formatBytes renders a byte count with a binary unit suffix
func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
