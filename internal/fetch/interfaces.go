package fetch

import (
	"github.com/ytget/media-converter/internal/model"
)

// Fetcher defines the interface for the URL import service.
type Fetcher interface {
	SetUpdateCallback(func(*model.FetchTask))
	AddTask(url string) (*model.FetchTask, error)
	GetTask(id string) (*model.FetchTask, bool)
	HasActive() bool
}
