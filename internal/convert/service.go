package convert

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ytget/media-converter/internal/model"
)

// FFmpeg constants for conversion settings
const (
	// Video codec settings
	VideoPreset      = "medium"
	VideoCRF         = "23"
	VideoBitrateWebM = "1M"

	// Audio codec settings
	AudioBitrate    = "128k"
	AudioBitrateMP3 = "192k"

	// Container flags; mp4 cannot seek back on a pipe, so the muxer must
	// write a fragmented stream
	StreamingMovFlags = "frag_keyframe+empty_moov+faststart"

	// Executable and I/O constants
	FFmpegCommand       = "ffmpeg"
	FFprobeCommand      = "ffprobe"
	FFprobeLogLevel     = "error"
	FFprobePrintFormat  = "json"
	ProgressPipeTarget  = "pipe:2"
	ProgressTimePrefix  = "out_time_us="
	ProgressSpeedPrefix = "speed="
	OutputPipeTarget    = "-"
	TaskIDPrefix        = "convert-"

	// Base name used when the input name has no extension to strip
	DefaultOutputBaseName = "converted"

	// Prefix for staged result files in the temp dir
	StagedFilePattern = "converted-*."

	// How many non-progress stderr lines to keep for error reporting
	StderrTailLines = 5
)

// Fault messages surfaced to the user
const (
	ErrNoFileSelected   = "no file selected"
	ErrNoOutputProduced = "no output produced"
	ErrGenericFailure   = "conversion failed"
)

// Service handles media conversion. Output is collected in memory from the
// ffmpeg stdout pipe; nothing is written next to the input file.
type Service struct {
	tasks      map[string]*model.ConversionTask
	tasksMutex sync.RWMutex
	onUpdate   func(*model.ConversionTask) // callback for UI updates
}

// NewService creates a new conversion service
func NewService() *Service {
	return &Service{
		tasks: make(map[string]*model.ConversionTask),
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.ConversionTask)) {
	s.onUpdate = callback
}

// StartConversion starts converting the selected file to the given format.
// One conversion runs at a time; the UI disables re-entry while one is
// active and the service guards it as well.
func (s *Service) StartConversion(file *model.SelectedFile, formatKey model.FormatKey) (*model.ConversionTask, error) {
	if file == nil {
		return nil, fmt.Errorf(ErrNoFileSelected)
	}

	spec, err := model.FormatConfig(formatKey)
	if err != nil {
		return nil, err
	}

	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	for _, task := range s.tasks {
		if task.Status.IsActive() {
			return nil, fmt.Errorf("conversion already in progress for file: %s", task.Input.DisplayName())
		}
	}

	if _, err := os.Stat(file.Path); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file does not exist: %s", file.Path)
	}

	task := &model.ConversionTask{
		ID:        generateTaskID(),
		Input:     file,
		Format:    formatKey,
		Status:    model.TaskStatusPending,
		Progress:  0.0,
		Percent:   0,
		StartedAt: time.Now(),
	}

	s.tasks[task.ID] = task

	log.Info().Str("task_id", task.ID).Str("input", file.DisplayName()).
		Str("format", formatKey.String()).Msg("conversion queued")

	// Run conversion in background
	go s.runConversion(task, spec)

	return task, nil
}

// runConversion performs the actual conversion
func (s *Service) runConversion(task *model.ConversionTask, spec model.FormatSpec) {
	// Update status to starting
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusStarting
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	// Capability check: mp3 output needs an encoder resolved once per process
	var mp3Encoder string
	if spec.Key == model.FormatMP3 {
		enc, err := resolveMP3Encoder()
		if err != nil {
			s.setTaskError(task, err)
			return
		}
		mp3Encoder = enc
	}

	// Probe the input; ffmpeg auto-detects container and codecs, the probe
	// only supplies duration for progress and stream kinds for planning
	info, err := probeInput(task.Input.Path)
	if err != nil {
		log.Error().Err(err).Str("task_id", task.ID).Msg("input probe failed")
		s.setTaskError(task, err)
		return
	}

	// Plan: validate feasibility and build the ffmpeg invocation
	args, err := buildFFmpegArgs(task.Input.Path, spec, mp3Encoder, info)
	if err != nil {
		s.setTaskError(task, err)
		return
	}

	// Update status to converting
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusConverting
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	cmd := exec.Command(FFmpegCommand, args...)

	// In-memory sink: the muxed output arrives on stdout
	var sink bytes.Buffer
	cmd.Stdout = &sink

	// Progress and diagnostics share stderr
	stderr, err := cmd.StderrPipe()
	if err != nil {
		s.setTaskError(task, fmt.Errorf("failed to create stderr pipe: %w", err))
		return
	}

	if err := cmd.Start(); err != nil {
		s.setTaskError(task, fmt.Errorf("failed to start ffmpeg: %w", err))
		return
	}

	// Monitor progress; the returned tail carries ffmpeg's own diagnostics
	// for error reporting
	tailCh := make(chan string, 1)
	go func() {
		tailCh <- s.monitorProgress(stderr, task, info.DurationSeconds)
	}()

	err = cmd.Wait()
	stderrTail := <-tailCh

	// Handle result; progress is forced to 100 on every terminal state so
	// the indicator never sticks mid-way
	if err != nil {
		message := stderrTail
		if message == "" {
			message = fmt.Sprintf("%s: %v", ErrGenericFailure, err)
		}
		s.setTaskError(task, fmt.Errorf("%s", message))
		return
	}

	if sink.Len() == 0 {
		s.setTaskError(task, fmt.Errorf(ErrNoOutputProduced))
		return
	}

	result := &model.ConversionResult{
		Data:     sink.Bytes(),
		MIMEType: spec.MIMEType,
		FileName: deriveOutputName(task.Input.DisplayName(), spec.Ext),
	}
	result.StagedPath = s.stageResult(result)

	s.tasksMutex.Lock()
	task.Status = model.TaskStatusCompleted
	task.Progress = 1.0
	task.Percent = 100
	task.Result = result
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	log.Info().Str("task_id", task.ID).Str("output", result.FileName).
		Int64("bytes", result.Size()).Msg("conversion completed")

	s.notifyUpdate(task)
}

// GetTask returns a conversion task by ID
func (s *Service) GetTask(taskID string) (*model.ConversionTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[taskID]
	return task, exists
}

// HasActive reports whether a conversion is currently running
func (s *Service) HasActive() bool {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	for _, task := range s.tasks {
		if task.Status.IsActive() {
			return true
		}
	}
	return false
}

// ClearResult releases the task's result handle and forgets the task.
// Clearing an unknown or already-cleared task is a no-op; clearing an
// active task is an error.
func (s *Service) ClearResult(taskID string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task, exists := s.tasks[taskID]
	if !exists {
		return nil
	}

	if task.Status.IsActive() {
		return fmt.Errorf("conversion is still running: %s", taskID)
	}

	if task.Result != nil {
		task.Result.Release()
		task.Result = nil
	}
	delete(s.tasks, taskID)

	return nil
}

// buildFFmpegArgs validates that the requested format can accept the probed
// input and builds the ffmpeg command arguments. The output goes to stdout,
// progress key=value lines to stderr.
func buildFFmpegArgs(inputPath string, spec model.FormatSpec, mp3Encoder string, info *mediaInfo) ([]string, error) {
	if spec.AudioOnly && !info.HasAudio {
		return nil, fmt.Errorf("input has no audio track")
	}
	if !info.HasAudio && !info.HasVideo {
		return nil, fmt.Errorf("no decodable audio or video streams")
	}

	args := []string{
		"-nostdin",      // Never read from the terminal
		"-i", inputPath, // Input file, container and codecs auto-detected
	}

	switch spec.Key {
	case model.FormatMP4:
		args = append(args,
			"-c:v", spec.VideoCodec,
			"-preset", VideoPreset,
			"-crf", VideoCRF,
			"-c:a", spec.AudioCodec,
			"-b:a", AudioBitrate,
			"-movflags", StreamingMovFlags,
		)
	case model.FormatWebM:
		args = append(args,
			"-c:v", spec.VideoCodec,
			"-b:v", VideoBitrateWebM,
			"-c:a", spec.AudioCodec,
		)
	case model.FormatMP3:
		args = append(args,
			"-vn", // Drop video streams
			"-c:a", mp3Encoder,
			"-b:a", AudioBitrateMP3,
		)
	case model.FormatWAV:
		args = append(args,
			"-vn",
			"-c:a", spec.AudioCodec,
		)
	}

	args = append(args,
		"-progress", ProgressPipeTarget, // Progress to stderr
		"-nostats",                      // No stats output
		"-f", spec.Muxer,                // Target container
		OutputPipeTarget,                // Mux to stdout
	)

	return args, nil
}

// monitorProgress monitors ffmpeg progress output and returns the last
// diagnostic lines ffmpeg printed, for use in error messages
func (s *Service) monitorProgress(stderr io.ReadCloser, task *model.ConversionTask, totalDuration float64) string {
	defer stderr.Close()
	scanner := bufio.NewScanner(stderr)

	var tail []string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Parse progress line: out_time_us=123456
		if strings.HasPrefix(line, ProgressTimePrefix) {
			timeStr := strings.TrimPrefix(line, ProgressTimePrefix)
			timeMicroseconds, err := strconv.ParseInt(timeStr, 10, 64)
			if err != nil {
				continue
			}

			// Convert to seconds
			timeSeconds := float64(timeMicroseconds) / 1000000.0

			// Calculate progress percentage; reported progress never
			// decreases even if ffmpeg rewinds its counter
			if totalDuration > 0 {
				progress := timeSeconds / totalDuration
				if progress > 1.0 {
					progress = 1.0
				}

				s.tasksMutex.Lock()
				if progress > task.Progress {
					task.Progress = progress
					task.Percent = int(progress * 100)
				}
				s.tasksMutex.Unlock()

				s.notifyUpdate(task)
			}
			continue
		}

		// Parse encoding speed line: speed=3.1x
		if strings.HasPrefix(line, ProgressSpeedPrefix) {
			speed := strings.TrimPrefix(line, ProgressSpeedPrefix)
			if speed != "" && speed != "N/A" {
				s.tasksMutex.Lock()
				task.Speed = speed
				s.tasksMutex.Unlock()
			}
			continue
		}

		// Skip the remaining progress keys, keep real diagnostics
		if line == "" || (strings.Contains(line, "=") && !strings.Contains(line, " ")) {
			continue
		}

		tail = append(tail, line)
		if len(tail) > StderrTailLines {
			tail = tail[1:]
		}
	}

	return strings.Join(tail, "\n")
}

// stageResult writes the result bytes to a temp file so the user can open
// or reveal the output before saving it. Staging is best effort; on failure
// the result stays usable without Open/Reveal.
func (s *Service) stageResult(result *model.ConversionResult) string {
	ext := result.FileName
	if idx := strings.LastIndex(ext, "."); idx >= 0 {
		ext = ext[idx+1:]
	}

	tmp, err := os.CreateTemp("", StagedFilePattern+ext)
	if err != nil {
		log.Warn().Err(err).Msg("failed to stage result file")
		return ""
	}
	defer tmp.Close()

	if _, err := tmp.Write(result.Data); err != nil {
		log.Warn().Err(err).Msg("failed to write staged result file")
		os.Remove(tmp.Name())
		return ""
	}

	return tmp.Name()
}

// setTaskError sets an error state for a task. The displayed progress is
// forced to 100 so a failed run does not leave the bar stuck mid-way.
func (s *Service) setTaskError(task *model.ConversionTask, err error) {
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusError
	task.LastError = err.Error()
	task.Progress = 1.0
	task.Percent = 100
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	log.Error().Err(err).Str("task_id", task.ID).Msg("conversion failed")

	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.ConversionTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// deriveOutputName derives the output file name from the input name: the
// base name keeps everything before the last dot; a name without an
// extension falls back to "converted"
func deriveOutputName(inputName, ext string) string {
	base := ""
	if idx := strings.LastIndex(inputName, "."); idx >= 0 {
		base = inputName[:idx]
	}
	if base == "" {
		base = DefaultOutputBaseName
	}
	return base + "." + ext
}

// generateTaskID generates a unique task ID using UUID v7 for better uniqueness and time ordering
func generateTaskID() string {
	// Use UUID v7 which includes timestamp and is naturally ordered
	// This provides better uniqueness and allows for chronological sorting
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
