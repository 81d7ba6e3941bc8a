package convert

import (
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// Encoder names for the mp3 capability check. libmp3lame is the native
// choice; libshine is the software fixed-point fallback registered when
// the ffmpeg build lacks lame.
const (
	MP3EncoderNative   = "libmp3lame"
	MP3EncoderFallback = "libshine"
)

// listEncoders queries the ffmpeg build for its encoder table; replaced in
// tests to simulate builds without native mp3 support
var listEncoders = func() (string, error) {
	output, err := exec.Command(FFmpegCommand, "-hide_banner", "-encoders").Output()
	if err != nil {
		return "", fmt.Errorf("failed to list encoders: %w", err)
	}
	return string(output), nil
}

// Process-wide mp3 encoder resolution. The result applies to every
// subsequent conversion in the session, so it is resolved exactly once,
// guarded by a checked-and-set flag.
var (
	mp3EncoderMutex sync.Mutex
	mp3Resolved     bool
	mp3Encoder      string
	mp3ResolveErr   error
)

// resolveMP3Encoder returns the encoder to use for mp3 output, probing the
// ffmpeg build on first use. Repeated calls return the cached resolution.
func resolveMP3Encoder() (string, error) {
	mp3EncoderMutex.Lock()
	defer mp3EncoderMutex.Unlock()

	if mp3Resolved {
		return mp3Encoder, mp3ResolveErr
	}

	mp3Resolved = true
	mp3Encoder, mp3ResolveErr = probeMP3Encoder()
	return mp3Encoder, mp3ResolveErr
}

// probeMP3Encoder picks the first available mp3 encoder from the
// preference chain
func probeMP3Encoder() (string, error) {
	encoders, err := listEncoders()
	if err != nil {
		return "", err
	}

	if encoderAvailable(encoders, MP3EncoderNative) {
		log.Debug().Str("encoder", MP3EncoderNative).Msg("native mp3 encoder available")
		return MP3EncoderNative, nil
	}

	if encoderAvailable(encoders, MP3EncoderFallback) {
		log.Info().Str("encoder", MP3EncoderFallback).Msg("registered software mp3 encoder")
		return MP3EncoderFallback, nil
	}

	return "", fmt.Errorf("no mp3 encoder available (tried %s, %s)", MP3EncoderNative, MP3EncoderFallback)
}

// encoderAvailable checks the encoder table for a name. Names are matched
// as words so that e.g. "libshine" does not match a description mentioning
// another encoder.
func encoderAvailable(encoderTable, name string) bool {
	for _, line := range strings.Split(encoderTable, "\n") {
		fields := strings.Fields(line)
		// Table rows look like: " A..... libmp3lame  MP3 (MPEG audio layer 3)"
		if len(fields) >= 2 && fields[1] == name {
			return true
		}
	}
	return false
}
