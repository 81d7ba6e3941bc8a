package platform

import (
	"path/filepath"
	"strings"
)

// Extensions the file dialogs offer and the drop hint accepts. The list is
// advisory only: any file can be selected and unsupported content surfaces
// as a conversion fault, not earlier.
var (
	VideoExtensions = []string{".mp4", ".mkv", ".webm", ".mov", ".avi", ".flv", ".wmv", ".mpg", ".mpeg", ".m4v", ".ts", ".3gp"}
	AudioExtensions = []string{".mp3", ".wav", ".flac", ".aac", ".ogg", ".opus", ".m4a", ".wma", ".aiff"}
)

// MediaExtensions returns the advisory picker filter list, video first
func MediaExtensions() []string {
	extensions := make([]string, 0, len(VideoExtensions)+len(AudioExtensions))
	extensions = append(extensions, VideoExtensions...)
	extensions = append(extensions, AudioExtensions...)
	return extensions
}

// IsLikelyMediaFile reports whether the name carries a known audio or video
// extension. Used only for drop hints, never to reject a file.
func IsLikelyMediaFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, known := range VideoExtensions {
		if ext == known {
			return true
		}
	}
	for _, known := range AudioExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

// IsAudioFile reports whether the name carries a known audio extension
func IsAudioFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, known := range AudioExtensions {
		if ext == known {
			return true
		}
	}
	return false
}
