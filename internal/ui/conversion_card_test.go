package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/media-converter/internal/model"
)

func newTestCard(t *testing.T) *ConversionCard {
	t.Helper()

	test.NewApp()
	return NewConversionCard(NewLocalization())
}

func TestConversionCard_EffectivePercent(t *testing.T) {
	card := newTestCard(t)

	tests := []struct {
		name     string
		status   model.TaskStatus
		percent  int
		progress float64
		expected int
	}{
		{"mid conversion", model.TaskStatusConverting, 42, 0.42, 42},
		{"completed pins to full", model.TaskStatusCompleted, 87, 0.87, 100},
		{"error pins to full", model.TaskStatusError, 13, 0.13, 100},
		{"fraction only", model.TaskStatusConverting, 0, 0.004, 1},
		{"not started", model.TaskStatusConverting, 0, 0, 0},
		{"overflow clamped", model.TaskStatusConverting, 140, 1.4, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card.task = &model.ConversionTask{
				Status:   tt.status,
				Percent:  tt.percent,
				Progress: tt.progress,
			}
			if got := card.effectivePercent(); got != tt.expected {
				t.Errorf("effectivePercent() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestConversionCard_ButtonsFollowResult(t *testing.T) {
	card := newTestCard(t)

	task := &model.ConversionTask{
		ID:     "convert-1",
		Input:  &model.SelectedFile{Name: "clip.mkv"},
		Format: model.FormatMP4,
		Status: model.TaskStatusConverting,
	}
	card.UpdateTask(task)

	if card.saveBtn.Visible() {
		t.Error("Expected save to be hidden while converting")
	}

	if card.clearBtn.Visible() {
		t.Error("Expected discard to be hidden while converting")
	}

	task.Status = model.TaskStatusCompleted
	task.Result = &model.ConversionResult{
		Data:     []byte("out"),
		MIMEType: "video/mp4",
		FileName: "clip.mp4",
	}
	card.UpdateTask(task)

	if !card.saveBtn.Visible() {
		t.Error("Expected save to be shown for a held result")
	}

	// Open and Reveal work on the saved copy, so they wait for a save
	if !card.openBtn.Disabled() || !card.revealBtn.Disabled() {
		t.Error("Expected open and reveal to be disabled before saving")
	}

	if !card.clearBtn.Visible() {
		t.Error("Expected discard to be shown for a finished task")
	}

	card.SetSavedPath("/tmp/clip.mp4")

	if card.openBtn.Disabled() || card.revealBtn.Disabled() {
		t.Error("Expected open and reveal to be enabled once saved")
	}
}

func TestConversionCard_ErrorShowsFault(t *testing.T) {
	card := newTestCard(t)

	task := &model.ConversionTask{
		ID:        "convert-1",
		Input:     &model.SelectedFile{Name: "clip.mkv"},
		Format:    model.FormatWebM,
		Status:    model.TaskStatusError,
		LastError: "Invalid data found when processing input",
	}
	card.UpdateTask(task)

	if !card.errorLabel.Visible() {
		t.Error("Expected fault text to be visible")
	}

	if card.errorLabel.Text != task.LastError {
		t.Errorf("Expected fault text %q, got %q", task.LastError, card.errorLabel.Text)
	}

	if card.saveBtn.Visible() {
		t.Error("Expected save to be hidden on error")
	}

	if !card.clearBtn.Visible() {
		t.Error("Expected discard to be shown on error")
	}
}

func TestConversionCard_ReleasedResultHidesActions(t *testing.T) {
	card := newTestCard(t)

	result := &model.ConversionResult{
		Data:     []byte("out"),
		MIMEType: "audio/mpeg",
		FileName: "clip.mp3",
	}
	task := &model.ConversionTask{
		ID:     "convert-1",
		Input:  &model.SelectedFile{Name: "clip.mkv"},
		Format: model.FormatMP3,
		Status: model.TaskStatusCompleted,
		Result: result,
	}
	card.UpdateTask(task)

	if !card.saveBtn.Visible() {
		t.Error("Expected save to be shown for a held result")
	}

	result.Release()
	card.UpdateTask(task)

	if card.saveBtn.Visible() {
		t.Error("Expected save to be hidden once the result is released")
	}
}
