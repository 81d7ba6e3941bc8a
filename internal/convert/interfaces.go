package convert

import (
	"github.com/ytget/media-converter/internal/model"
)

// Converter defines the interface for the conversion service.
type Converter interface {
	SetUpdateCallback(func(*model.ConversionTask))
	StartConversion(file *model.SelectedFile, formatKey model.FormatKey) (*model.ConversionTask, error)
	GetTask(taskID string) (*model.ConversionTask, bool)
	HasActive() bool
	ClearResult(taskID string) error
}
