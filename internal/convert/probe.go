package convert

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Stream codec types reported by ffprobe
const (
	CodecTypeAudio = "audio"
	CodecTypeVideo = "video"
)

// mediaInfo describes the probed input: how long it plays and which stream
// kinds it carries
type mediaInfo struct {
	DurationSeconds float64
	HasAudio        bool
	HasVideo        bool
}

// probeOutput mirrors the ffprobe JSON fields we read
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
	} `json:"streams"`
}

// probeInput inspects the input file with ffprobe. A probe failure means
// ffmpeg cannot read the file at all; an unparseable duration is tolerated
// and only disables percentage progress.
func probeInput(path string) (*mediaInfo, error) {
	cmd := exec.Command(FFprobeCommand,
		"-v", FFprobeLogLevel,
		"-print_format", FFprobePrintFormat,
		"-show_format",
		"-show_streams",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("failed to probe input: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("failed to probe input: %w", err)
	}

	var probed probeOutput
	if err := json.Unmarshal(output, &probed); err != nil {
		return nil, fmt.Errorf("failed to parse probe output: %w", err)
	}

	info := &mediaInfo{}

	if probed.Format.Duration != "" {
		if duration, err := strconv.ParseFloat(probed.Format.Duration, 64); err == nil {
			info.DurationSeconds = duration
		}
	}

	for _, stream := range probed.Streams {
		switch stream.CodecType {
		case CodecTypeAudio:
			info.HasAudio = true
		case CodecTypeVideo:
			info.HasVideo = true
		}
	}

	return info, nil
}
