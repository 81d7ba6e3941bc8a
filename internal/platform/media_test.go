package platform

import (
	"os"
	"strings"
	"testing"
)

func TestIsLikelyMediaFile(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"movie.mp4", true},
		{"Movie.MP4", true},
		{"song.mp3", true},
		{"clip.webm", true},
		{"recording.WAV", true},
		{"archive.zip", false},
		{"notes.txt", false},
		{"noextension", false},
		{"trailing.", false},
		{"/home/user/Videos/holiday.mkv", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsLikelyMediaFile(tt.name)
			if result != tt.expected {
				t.Errorf("IsLikelyMediaFile(%q) = %v, expected %v", tt.name, result, tt.expected)
			}
		})
	}
}

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"song.mp3", true},
		{"song.FLAC", true},
		{"track.ogg", true},
		{"movie.mp4", false},
		{"clip.webm", false},
		{"notes.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsAudioFile(tt.name)
			if result != tt.expected {
				t.Errorf("IsAudioFile(%q) = %v, expected %v", tt.name, result, tt.expected)
			}
		})
	}
}

func TestMediaExtensions(t *testing.T) {
	extensions := MediaExtensions()

	if len(extensions) != len(VideoExtensions)+len(AudioExtensions) {
		t.Errorf("Expected %d extensions, got %d",
			len(VideoExtensions)+len(AudioExtensions), len(extensions))
	}

	// Video extensions come first so the dialog filter lists them first
	if extensions[0] != VideoExtensions[0] {
		t.Errorf("Expected first extension %s, got %s", VideoExtensions[0], extensions[0])
	}
}

func TestReadAudioTags_NotMedia(t *testing.T) {
	tempFile, err := os.CreateTemp("", "not_media_*.txt")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tempFile.Name())
	if _, err := tempFile.WriteString("plain text, no tags here"); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	tempFile.Close()

	_, err = ReadAudioTags(tempFile.Name())
	if err == nil {
		t.Error("Expected error for file without tags, got nil")
	}
}

func TestReadAudioTags_MissingFile(t *testing.T) {
	_, err := ReadAudioTags("/nonexistent/path/song.mp3")
	if err == nil {
		t.Error("Expected error for missing file, got nil")
	}
	if !strings.Contains(err.Error(), "failed to open file") {
		t.Errorf("Error message should contain 'failed to open file', got: %v", err)
	}
}
