package platform

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhowden/tag"
)

// AudioTags holds the embedded metadata read from an audio file
type AudioTags struct {
	Title  string
	Artist string
}

// ReadAudioTags extracts embedded title and artist from an audio file.
// Returns an error when the file has no readable tag block; callers treat
// that as "no tags" and fall back to the file name.
func ReadAudioTags(path string) (*AudioTags, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	meta, err := tag.ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}

	return &AudioTags{
		Title:  strings.TrimSpace(meta.Title()),
		Artist: strings.TrimSpace(meta.Artist()),
	}, nil
}
