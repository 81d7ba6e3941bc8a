package fetch

import (
	"strings"
	"testing"
	"time"

	"github.com/ytget/media-converter/internal/model"
)

func TestNewService(t *testing.T) {
	service := NewService("/tmp")

	if service.fetchDir != "/tmp" {
		t.Errorf("Expected fetchDir to be '/tmp', got '%s'", service.fetchDir)
	}

	if len(service.tasks) != 0 {
		t.Errorf("Expected empty tasks map, got %d items", len(service.tasks))
	}
}

func TestAddTask(t *testing.T) {
	service := NewService(t.TempDir())

	task, err := service.AddTask("https://example.com/watch?v=test1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.URL != "https://example.com/watch?v=test1" {
		t.Errorf("Expected URL to be 'https://example.com/watch?v=test1', got '%s'", task.URL)
	}

	if task.ETASec != -1 {
		t.Errorf("Expected initial ETA to be -1, got %d", task.ETASec)
	}

	retrieved, exists := service.GetTask(task.ID)
	if !exists {
		t.Error("Task should exist in service")
	}

	if retrieved.ID != task.ID {
		t.Errorf("Retrieved task ID should be %s, got %s", task.ID, retrieved.ID)
	}
}

func TestAddTask_DuplicateURL(t *testing.T) {
	service := NewService(t.TempDir())

	url := "https://example.com/watch?v=dup"

	// Pin an unfinished task for the URL so the guard triggers; inserting
	// directly keeps the status out of reach of a fetch goroutine
	existing := &model.FetchTask{
		ID:     "fetch-existing",
		URL:    url,
		Status: model.TaskStatusFetching,
	}
	service.tasksMutex.Lock()
	service.tasks[existing.ID] = existing
	service.tasksMutex.Unlock()

	_, err := service.AddTask(url)
	if err == nil {
		t.Error("Expected error for duplicate URL, got nil")
	}

	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("Expected 'already exists' error, got: %v", err)
	}

	// A finished fetch of the same URL can be imported again
	service.tasksMutex.Lock()
	existing.Status = model.TaskStatusCompleted
	service.tasksMutex.Unlock()

	if _, err := service.AddTask(url); err != nil {
		t.Errorf("Expected re-import of finished URL to start, got: %v", err)
	}
}

func TestAddTask_SingleActive(t *testing.T) {
	service := NewService(t.TempDir())

	active := &model.FetchTask{
		ID:     "fetch-active",
		URL:    "https://example.com/watch?v=test1",
		Status: model.TaskStatusFetching,
	}
	service.tasksMutex.Lock()
	service.tasks[active.ID] = active
	service.tasksMutex.Unlock()

	_, err := service.AddTask("https://example.com/watch?v=test2")
	if err == nil {
		t.Error("Expected error for concurrent fetch, got nil")
	}

	if !strings.Contains(err.Error(), "already in progress") {
		t.Errorf("Expected 'already in progress' error, got: %v", err)
	}

	// A finished fetch frees the slot
	service.tasksMutex.Lock()
	active.Status = model.TaskStatusCompleted
	service.tasksMutex.Unlock()

	if _, err := service.AddTask("https://example.com/watch?v=test3"); err != nil {
		t.Errorf("Expected fetch to start after previous finished, got: %v", err)
	}
}

func TestHasActive(t *testing.T) {
	service := NewService(t.TempDir())

	if service.HasActive() {
		t.Error("Expected no active fetch in a fresh service")
	}

	task := &model.FetchTask{
		ID:     "fetch-test",
		URL:    "https://example.com/watch?v=test",
		Status: model.TaskStatusFetching,
	}
	service.tasksMutex.Lock()
	service.tasks[task.ID] = task
	service.tasksMutex.Unlock()

	if !service.HasActive() {
		t.Error("Expected active fetch to be reported")
	}
}

func TestUpdateCallback(t *testing.T) {
	service := NewService(t.TempDir())

	updateCalled := false
	var updatedTask *model.FetchTask

	service.SetUpdateCallback(func(task *model.FetchTask) {
		updateCalled = true
		updatedTask = task
	})

	task := &model.FetchTask{
		ID:     "fetch-test",
		URL:    "https://example.com/watch?v=test",
		Status: model.TaskStatusFetching,
	}

	service.notifyUpdate(task)

	if !updateCalled {
		t.Error("Expected update callback to be called")
	}

	if updatedTask != task {
		t.Error("Expected updated task to be the same as input task")
	}
}

func TestGenerateTaskID(t *testing.T) {
	id1 := generateTaskID()
	time.Sleep(1 * time.Millisecond) // Ensure different timestamp
	id2 := generateTaskID()

	if id1 == id2 {
		t.Error("Expected different task IDs")
	}

	if !strings.HasPrefix(id1, "fetch-") {
		t.Errorf("Expected ID to start with 'fetch-', got: %s", id1)
	}
}
