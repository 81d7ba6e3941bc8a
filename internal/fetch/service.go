package fetch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog/log"

	"github.com/ytget/media-converter/internal/model"
)

const (
	// Output template for fetched files
	OutputTemplate = "%(title)s.%(ext)s"

	// Progress callback interval
	ProgressInterval = 500 * time.Millisecond

	// Retry settings for flaky sources
	MaxRetries = 1
	RetryDelay = 2 * time.Second

	TaskIDPrefix = "fetch-"
)

// Service fetches remote media into local files that can then be selected
// for conversion. One fetch runs at a time.
type Service struct {
	tasks      map[string]*model.FetchTask
	tasksMutex sync.RWMutex
	fetchDir   string
	onUpdate   func(*model.FetchTask) // callback for UI updates
}

// NewService creates a new fetch service writing into fetchDir
func NewService(fetchDir string) *Service {
	return &Service{
		tasks:    make(map[string]*model.FetchTask),
		fetchDir: fetchDir,
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.FetchTask)) {
	s.onUpdate = callback
}

// AddTask starts fetching the given URL
func (s *Service) AddTask(url string) (*model.FetchTask, error) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	// Check for duplicate URLs
	for _, task := range s.tasks {
		if task.URL == url && !task.Status.IsFinished() {
			return nil, fmt.Errorf("fetch already exists for URL: %s", url)
		}
	}

	// Single fetch at a time
	for _, task := range s.tasks {
		if task.Status.IsActive() {
			return nil, fmt.Errorf("fetch already in progress: %s", task.URL)
		}
	}

	task := &model.FetchTask{
		ID:        generateTaskID(),
		URL:       url,
		Status:    model.TaskStatusPending,
		Progress:  0.0,
		Percent:   0,
		ETASec:    -1,
		StartedAt: time.Now(),
	}

	s.tasks[task.ID] = task

	log.Info().Str("task_id", task.ID).Str("url", url).Msg("fetch queued")

	go s.startTask(task)

	return task, nil
}

// GetTask returns a task by ID
func (s *Service) GetTask(id string) (*model.FetchTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	return task, exists
}

// HasActive reports whether a fetch is currently running
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

// startTask runs the fetch
func (s *Service) startTask(task *model.FetchTask) {
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusStarting
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	ctx := context.Background()

	s.tasksMutex.Lock()
	task.Status = model.TaskStatusFetching
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	// Configure yt-dlp
	dl := ytdlp.New().
		ForceOverwrites().
		RestrictFilenames().
		Output(s.fetchDir + "/" + OutputTemplate)

	// Setup progress callback
	dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
		s.updateTaskProgress(task, &update)
	})

	result, err := s.fetchWithRetry(ctx, dl, task)

	// Update final status; progress is forced to 100 on either outcome
	s.tasksMutex.Lock()
	if err != nil {
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
	} else {
		task.Status = model.TaskStatusCompleted

		// Set output path from result
		if result != nil {
			info, err := result.GetExtractedInfo()
			if err == nil && len(info) > 0 && info[0].Filename != nil {
				task.OutputPath = *info[0].Filename
			}
		}
	}
	task.Progress = 1.0
	task.Percent = 100
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	if err != nil {
		log.Error().Err(err).Str("task_id", task.ID).Msg("fetch failed")
	} else {
		log.Info().Str("task_id", task.ID).Str("output", task.OutputPath).Msg("fetch completed")
	}

	s.notifyUpdate(task)
}

// fetchWithRetry attempts the fetch with retry logic
func (s *Service) fetchWithRetry(ctx context.Context, dl *ytdlp.Command, task *model.FetchTask) (*ytdlp.Result, error) {
	var lastErr error
	var result *ytdlp.Result

	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			// Backoff delay
			select {
			case <-time.After(RetryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}

			log.Info().Str("task_id", task.ID).Int("attempt", attempt+1).Msg("retrying fetch")
		}

		res, err := dl.Run(ctx, task.URL)
		if err == nil {
			return res, nil
		}

		lastErr = err
		result = res // Keep last result even if there was an error
		log.Warn().Err(err).Str("task_id", task.ID).Int("attempt", attempt+1).Msg("fetch attempt failed")

		if ctx.Err() != nil {
			return result, ctx.Err()
		}
	}

	return result, lastErr
}

// updateTaskProgress updates task progress from yt-dlp info. The callback
// runs after the lock is dropped; the UI reads service state from it.
func (s *Service) updateTaskProgress(task *model.FetchTask, update *ytdlp.ProgressUpdate) {
	s.tasksMutex.Lock()

	// Update percentage
	if update.TotalBytes > 0 {
		percent := float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100
		task.Percent = int(percent)
		task.Progress = percent / 100.0
	}

	// Calculate speed
	if !update.Started.IsZero() {
		elapsed := time.Since(update.Started)
		if elapsed.Seconds() > 0 {
			bytesPerSecond := float64(update.DownloadedBytes) / elapsed.Seconds()
			task.Speed = fmt.Sprintf("%.1fMB/s", bytesPerSecond/1024/1024)
		}
	}

	// Calculate ETA
	eta := update.ETA()
	if eta > 0 {
		task.ETASec = int(eta.Seconds())
	}

	// Update title if available
	if update.Info != nil && update.Info.Title != nil && *update.Info.Title != "" && task.Title == "" {
		task.Title = *update.Info.Title
	}
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.FetchTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// generateTaskID generates a unique task ID using UUID v7 for better uniqueness and time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
