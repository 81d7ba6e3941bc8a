package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ytget/media-converter/internal/model"
)

func TestNewService(t *testing.T) {
	service := NewService()

	if len(service.tasks) != 0 {
		t.Errorf("Expected empty tasks map, got %d items", len(service.tasks))
	}
}

func TestDeriveOutputName(t *testing.T) {
	tests := []struct {
		input    string
		ext      string
		expected string
	}{
		{"clip.mp4", "mp4", "clip.mp4"},
		{"clip.mkv", "mp4", "clip.mp4"},
		{"clip.mkv", "webm", "clip.webm"},
		{"my.video.mkv", "mp3", "my.video.mp3"},
		{"clip", "wav", "converted.wav"},
		{".hidden", "mp3", "converted.mp3"},
		{"", "mp4", "converted.mp4"},
	}

	for _, test := range tests {
		result := deriveOutputName(test.input, test.ext)
		if result != test.expected {
			t.Errorf("deriveOutputName(%s, %s) = %s, expected %s", test.input, test.ext, result, test.expected)
		}
	}
}

func TestBuildFFmpegArgs_MP4(t *testing.T) {
	spec, err := model.FormatConfig(model.FormatMP4)
	if err != nil {
		t.Fatalf("FormatConfig failed: %v", err)
	}

	info := &mediaInfo{DurationSeconds: 10, HasAudio: true, HasVideo: true}
	args, err := buildFFmpegArgs("/input.mkv", spec, "", info)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	expectedArgs := []string{
		"-nostdin",
		"-i", "/input.mkv",
		"-c:v", "libx264",
		"-preset", VideoPreset,
		"-crf", VideoCRF,
		"-c:a", "aac",
		"-b:a", AudioBitrate,
		"-movflags", StreamingMovFlags,
		"-progress", "pipe:2",
		"-nostats",
		"-f", "mp4",
		"-",
	}

	if len(args) != len(expectedArgs) {
		t.Fatalf("Expected %d args, got %d: %v", len(expectedArgs), len(args), args)
	}

	for i, expected := range expectedArgs {
		if args[i] != expected {
			t.Errorf("Arg %d: expected %s, got %s", i, expected, args[i])
		}
	}
}

func TestBuildFFmpegArgs_AudioOnly(t *testing.T) {
	info := &mediaInfo{DurationSeconds: 10, HasAudio: true, HasVideo: true}

	mp3Spec, _ := model.FormatConfig(model.FormatMP3)
	args, err := buildFFmpegArgs("/input.mp4", mp3Spec, MP3EncoderNative, info)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-vn") {
		t.Errorf("Expected mp3 args to drop video, got: %v", args)
	}
	if !strings.Contains(joined, "-c:a "+MP3EncoderNative) {
		t.Errorf("Expected mp3 args to use resolved encoder, got: %v", args)
	}
	if !strings.Contains(joined, "-f mp3") {
		t.Errorf("Expected mp3 muxer, got: %v", args)
	}

	wavSpec, _ := model.FormatConfig(model.FormatWAV)
	args, err = buildFFmpegArgs("/input.mp4", wavSpec, "", info)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	joined = strings.Join(args, " ")
	if !strings.Contains(joined, "-c:a pcm_s16le") {
		t.Errorf("Expected wav args to use pcm_s16le, got: %v", args)
	}
}

func TestBuildFFmpegArgs_NoAudioTrack(t *testing.T) {
	info := &mediaInfo{DurationSeconds: 10, HasAudio: false, HasVideo: true}

	mp3Spec, _ := model.FormatConfig(model.FormatMP3)
	_, err := buildFFmpegArgs("/input.mp4", mp3Spec, MP3EncoderNative, info)
	if err == nil {
		t.Error("Expected error for audio-only target without audio track, got nil")
	}

	if !strings.Contains(err.Error(), "no audio track") {
		t.Errorf("Expected 'no audio track' error, got: %v", err)
	}
}

func TestBuildFFmpegArgs_NoStreams(t *testing.T) {
	info := &mediaInfo{}

	mp4Spec, _ := model.FormatConfig(model.FormatMP4)
	_, err := buildFFmpegArgs("/input.bin", mp4Spec, "", info)
	if err == nil {
		t.Error("Expected error for input without streams, got nil")
	}
}

func TestStartConversion_NoFile(t *testing.T) {
	service := NewService()

	_, err := service.StartConversion(nil, model.FormatMP4)
	if err == nil {
		t.Fatal("Expected error for nil file, got nil")
	}

	if err.Error() != ErrNoFileSelected {
		t.Errorf("Expected '%s' error, got: %v", ErrNoFileSelected, err)
	}

	if len(service.tasks) != 0 {
		t.Errorf("Expected no task to be created, got %d", len(service.tasks))
	}
}

func TestStartConversion_UnknownFormat(t *testing.T) {
	service := NewService()

	file := &model.SelectedFile{Path: "/media/clip.mp4", Name: "clip.mp4"}
	_, err := service.StartConversion(file, model.FormatKey("ogg"))
	if err == nil {
		t.Error("Expected error for unknown format key, got nil")
	}
}

func TestStartConversion_NonExistentFile(t *testing.T) {
	service := NewService()

	file := &model.SelectedFile{Path: "/path/to/nonexistent/file.mp4", Name: "file.mp4"}
	_, err := service.StartConversion(file, model.FormatMP4)
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}

	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Expected 'does not exist' error, got: %v", err)
	}
}

func TestStartConversion_WithExistingFile(t *testing.T) {
	service := NewService()

	tempFile, err := os.CreateTemp("", "test_media_*.mp4")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tempFile.Name())
	tempFile.Close()

	file := &model.SelectedFile{Path: tempFile.Name(), Name: filepath.Base(tempFile.Name())}
	task, err := service.StartConversion(file, model.FormatMP4)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if task == nil {
		t.Fatal("Expected task to be created, got nil")
	}

	if task.Input != file {
		t.Error("Expected task to carry the selected file")
	}

	if task.Format != model.FormatMP4 {
		t.Errorf("Expected format to be %s, got %s", model.FormatMP4, task.Format)
	}

	// Verify task is stored
	retrievedTask, exists := service.GetTask(task.ID)
	if !exists {
		t.Error("Task should exist in service")
	}

	if retrievedTask.ID != task.ID {
		t.Errorf("Retrieved task ID should be %s, got %s", task.ID, retrievedTask.ID)
	}
}

func TestStartConversion_AlreadyRunning(t *testing.T) {
	service := NewService()

	tempFile, err := os.CreateTemp("", "test_media_*.mp4")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tempFile.Name())
	tempFile.Close()

	// Pin an active task so the single-flight guard triggers; inserting
	// directly keeps the status out of reach of a conversion goroutine
	active := &model.ConversionTask{
		ID:     "convert-active",
		Input:  &model.SelectedFile{Name: "busy.mp4"},
		Status: model.TaskStatusConverting,
	}
	service.tasksMutex.Lock()
	service.tasks[active.ID] = active
	service.tasksMutex.Unlock()

	file := &model.SelectedFile{Path: tempFile.Name(), Name: filepath.Base(tempFile.Name())}
	_, err = service.StartConversion(file, model.FormatWebM)
	if err == nil {
		t.Error("Expected error for concurrent conversion, got nil")
	}

	if !strings.Contains(err.Error(), "already in progress") {
		t.Errorf("Expected 'already in progress' error, got: %v", err)
	}
}

func TestHasActive(t *testing.T) {
	service := NewService()

	if service.HasActive() {
		t.Error("Expected no active task in a fresh service")
	}

	task := &model.ConversionTask{
		ID:     "test-active",
		Input:  &model.SelectedFile{Name: "clip.mp4"},
		Status: model.TaskStatusConverting,
	}
	service.tasksMutex.Lock()
	service.tasks[task.ID] = task
	service.tasksMutex.Unlock()

	if !service.HasActive() {
		t.Error("Expected active task to be reported")
	}

	service.tasksMutex.Lock()
	task.Status = model.TaskStatusCompleted
	service.tasksMutex.Unlock()

	if service.HasActive() {
		t.Error("Expected no active task after completion")
	}
}

func TestUpdateCallback(t *testing.T) {
	service := NewService()

	updateCalled := false
	var updatedTask *model.ConversionTask

	service.SetUpdateCallback(func(task *model.ConversionTask) {
		updateCalled = true
		updatedTask = task
	})

	task := &model.ConversionTask{
		ID:     "test-id",
		Input:  &model.SelectedFile{Path: "/test/input.mp4", Name: "input.mp4"},
		Format: model.FormatMP4,
		Status: model.TaskStatusConverting,
	}

	service.notifyUpdate(task)

	if !updateCalled {
		t.Error("Expected update callback to be called")
	}

	if updatedTask != task {
		t.Error("Expected updated task to be the same as input task")
	}
}

func TestClearResult(t *testing.T) {
	service := NewService()

	staged := filepath.Join(t.TempDir(), "staged.mp4")
	if err := os.WriteFile(staged, []byte("output"), 0644); err != nil {
		t.Fatalf("Failed to create staged file: %v", err)
	}

	result := &model.ConversionResult{
		Data:       []byte("output"),
		MIMEType:   "video/mp4",
		FileName:   "clip.mp4",
		StagedPath: staged,
	}
	task := &model.ConversionTask{
		ID:     "test-clear",
		Input:  &model.SelectedFile{Name: "clip.mkv"},
		Status: model.TaskStatusCompleted,
		Result: result,
	}
	service.tasksMutex.Lock()
	service.tasks[task.ID] = task
	service.tasksMutex.Unlock()

	if err := service.ClearResult(task.ID); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !result.Released() {
		t.Error("Expected result to be released")
	}

	if _, err := os.Stat(staged); !os.IsNotExist(err) {
		t.Error("Expected staged file to be removed")
	}

	if _, exists := service.GetTask(task.ID); exists {
		t.Error("Expected task to be forgotten after clear")
	}

	// Second clear must be a no-op
	if err := service.ClearResult(task.ID); err != nil {
		t.Errorf("Expected second clear to be a no-op, got: %v", err)
	}
}

func TestClearResult_ActiveTask(t *testing.T) {
	service := NewService()

	task := &model.ConversionTask{
		ID:     "test-running",
		Input:  &model.SelectedFile{Name: "clip.mkv"},
		Status: model.TaskStatusConverting,
	}
	service.tasksMutex.Lock()
	service.tasks[task.ID] = task
	service.tasksMutex.Unlock()

	if err := service.ClearResult(task.ID); err == nil {
		t.Error("Expected error when clearing an active task, got nil")
	}
}

func TestSetTaskError(t *testing.T) {
	service := NewService()

	var finalStatus model.TaskStatus
	service.SetUpdateCallback(func(updated *model.ConversionTask) {
		finalStatus = updated.Status
	})

	task := &model.ConversionTask{
		ID:      "test-fault",
		Input:   &model.SelectedFile{Name: "clip.mkv"},
		Status:  model.TaskStatusConverting,
		Percent: 42,
	}
	service.tasksMutex.Lock()
	service.tasks[task.ID] = task
	service.tasksMutex.Unlock()

	engineMessage := "Error while decoding stream #0:1: Invalid data found when processing input"
	service.setTaskError(task, fmt.Errorf("%s", engineMessage))

	if task.Status != model.TaskStatusError {
		t.Errorf("Expected status Error, got %s", task.Status)
	}

	// The engine's message must reach the user verbatim
	if task.LastError != engineMessage {
		t.Errorf("Expected error message %q, got %q", engineMessage, task.LastError)
	}

	// A failed run must not leave the progress bar stuck mid-way
	if task.Percent != 100 {
		t.Errorf("Expected percent forced to 100, got %d", task.Percent)
	}

	if task.FinishedAt.IsZero() {
		t.Error("Expected FinishedAt to be set")
	}

	if finalStatus != model.TaskStatusError {
		t.Errorf("Expected update callback to see Error status, got %s", finalStatus)
	}
}

func TestMonitorProgress(t *testing.T) {
	service := NewService()

	task := &model.ConversionTask{
		ID:     "test-progress",
		Input:  &model.SelectedFile{Name: "clip.mp4"},
		Status: model.TaskStatusConverting,
	}

	var percents []int
	service.SetUpdateCallback(func(updated *model.ConversionTask) {
		percents = append(percents, updated.Percent)
	})

	lines := strings.Join([]string{
		"out_time_us=2000000",
		"speed=2.5x",
		"progress=continue",
		"out_time_us=5000000",
		"out_time_us=4000000", // counter rewind must not lower progress
		"Error while decoding stream",
		"out_time_us=10000000",
		"progress=end",
	}, "\n")

	tail := service.monitorProgress(io.NopCloser(strings.NewReader(lines)), task, 10.0)

	if task.Percent != 100 {
		t.Errorf("Expected final percent 100, got %d", task.Percent)
	}

	if task.Speed != "2.5x" {
		t.Errorf("Expected speed '2.5x', got '%s'", task.Speed)
	}

	for i := 1; i < len(percents); i++ {
		if percents[i] < percents[i-1] {
			t.Errorf("Progress decreased from %d to %d", percents[i-1], percents[i])
		}
	}

	for _, percent := range percents {
		if percent < 0 || percent > 100 {
			t.Errorf("Progress out of bounds: %d", percent)
		}
	}

	if !strings.Contains(tail, "Error while decoding stream") {
		t.Errorf("Expected diagnostics in stderr tail, got: %q", tail)
	}
}

func TestMonitorProgress_UnknownDuration(t *testing.T) {
	service := NewService()

	task := &model.ConversionTask{
		ID:     "test-unknown-duration",
		Input:  &model.SelectedFile{Name: "clip.mp4"},
		Status: model.TaskStatusConverting,
	}

	lines := "out_time_us=2000000\nprogress=end\n"
	service.monitorProgress(io.NopCloser(strings.NewReader(lines)), task, 0)

	if task.Percent != 0 {
		t.Errorf("Expected percent to stay 0 without a known duration, got %d", task.Percent)
	}
}

func TestStageResult(t *testing.T) {
	service := NewService()

	result := &model.ConversionResult{
		Data:     []byte("staged output"),
		MIMEType: "audio/wav",
		FileName: "clip.wav",
	}

	staged := service.stageResult(result)
	if staged == "" {
		t.Fatal("Expected staged path, got empty string")
	}
	defer os.Remove(staged)

	data, err := os.ReadFile(staged)
	if err != nil {
		t.Fatalf("Failed to read staged file: %v", err)
	}

	if string(data) != "staged output" {
		t.Errorf("Staged file content mismatch: %q", data)
	}

	if !strings.HasSuffix(staged, ".wav") {
		t.Errorf("Expected staged file to keep the target extension, got %s", staged)
	}
}

func TestGenerateTaskID(t *testing.T) {
	id1 := generateTaskID()
	time.Sleep(1 * time.Millisecond) // Ensure different timestamp
	id2 := generateTaskID()

	if id1 == id2 {
		t.Error("Expected different task IDs")
	}

	if !strings.HasPrefix(id1, "convert-") {
		t.Errorf("Expected ID to start with 'convert-', got: %s", id1)
	}

	if !strings.HasPrefix(id2, "convert-") {
		t.Errorf("Expected ID to start with 'convert-', got: %s", id2)
	}
}
