package model

import "fmt"

// FormatKey identifies one of the supported output formats
type FormatKey string

const (
	// FormatMP4 is the MP4 container with H.264 video and AAC audio
	FormatMP4 FormatKey = "mp4"

	// FormatWebM is the WebM container with VP8 video and Vorbis audio
	FormatWebM FormatKey = "webm"

	// FormatMP3 is MP3 audio only
	FormatMP3 FormatKey = "mp3"

	// FormatWAV is uncompressed PCM audio in a WAV container
	FormatWAV FormatKey = "wav"
)

// String returns the string representation of FormatKey
func (fk FormatKey) String() string {
	return string(fk)
}

// FormatSpec describes one output format: what the user sees and what
// ffmpeg needs to produce it. AudioCodec is empty for MP3 because the
// encoder is resolved at runtime (libmp3lame or the libshine fallback).
type FormatSpec struct {
	Key        FormatKey
	Label      string // human label for pickers
	Ext        string // conventional file extension, without dot
	MIMEType   string
	Muxer      string // ffmpeg -f value
	VideoCodec string // empty for audio-only formats
	AudioCodec string
	AudioOnly  bool
}

// formatKeys is the registry order; the first entry is the default.
var formatKeys = []FormatKey{FormatMP4, FormatWebM, FormatMP3, FormatWAV}

var formatSpecs = map[FormatKey]FormatSpec{
	FormatMP4: {
		Key:        FormatMP4,
		Label:      "MP4 (H.264 + AAC)",
		Ext:        "mp4",
		MIMEType:   "video/mp4",
		Muxer:      "mp4",
		VideoCodec: "libx264",
		AudioCodec: "aac",
	},
	FormatWebM: {
		Key:        FormatWebM,
		Label:      "WebM (VP8 + Vorbis)",
		Ext:        "webm",
		MIMEType:   "video/webm",
		Muxer:      "webm",
		VideoCodec: "libvpx",
		AudioCodec: "libvorbis",
	},
	FormatMP3: {
		Key:       FormatMP3,
		Label:     "MP3 (audio only)",
		Ext:       "mp3",
		MIMEType:  "audio/mpeg",
		Muxer:     "mp3",
		AudioOnly: true,
	},
	FormatWAV: {
		Key:        FormatWAV,
		Label:      "WAV (audio only)",
		Ext:        "wav",
		MIMEType:   "audio/wav",
		Muxer:      "wav",
		AudioCodec: "pcm_s16le",
		AudioOnly:  true,
	},
}

// FormatKeys returns the supported format keys in registry order
func FormatKeys() []FormatKey {
	keys := make([]FormatKey, len(formatKeys))
	copy(keys, formatKeys)
	return keys
}

// DefaultFormatKey returns the default output format (the first registered one)
func DefaultFormatKey() FormatKey {
	return formatKeys[0]
}

// FormatConfig returns the spec for the given key. An unknown key is a
// programming error: the UI only ever offers registered keys.
func FormatConfig(key FormatKey) (FormatSpec, error) {
	spec, ok := formatSpecs[key]
	if !ok {
		return FormatSpec{}, fmt.Errorf("unsupported output format: %s", key)
	}
	return spec, nil
}

// IsValidFormatKey returns true if key is one of the registered formats
func IsValidFormatKey(key FormatKey) bool {
	_, ok := formatSpecs[key]
	return ok
}
