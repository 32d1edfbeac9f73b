package tasks

import (
	"testing"
)

func TestNewTask(t *testing.T) {
	task := NewTask(TaskTypeProcessFeed, "my-feed")

	if task.ID == "" {
		t.Error("Expected task ID to be generated")
	}
	if task.Type != TaskTypeProcessFeed {
		t.Errorf("Expected type 'process_feed', got '%s'", task.Type)
	}
	if task.GetFeedName() != "my-feed" {
		t.Errorf("Expected feed name 'my-feed', got '%s'", task.GetFeedName())
	}
	if task.MaxRetries != DefaultMaxRetries {
		t.Errorf("Expected max retries %d, got %d", DefaultMaxRetries, task.MaxRetries)
	}
}

func TestTaskRetryBookkeeping(t *testing.T) {
	task := NewTask(TaskTypeSyncFeedConfig, "my-feed")

	for i := 0; i < DefaultMaxRetries; i++ {
		if !task.CanRetry() {
			t.Fatalf("Expected retry %d to be allowed", i+1)
		}
		task.IncrementRetryCount()
	}

	if task.CanRetry() {
		t.Error("Expected no retries left after reaching the maximum")
	}
	if task.GetRetryCount() != DefaultMaxRetries {
		t.Errorf("Expected retry count %d, got %d", DefaultMaxRetries, task.GetRetryCount())
	}
}

func TestTaskDuration(t *testing.T) {
	task := NewTask(TaskTypeProcessFeed, "my-feed")

	if task.GetDuration() != 0 {
		t.Error("Expected zero duration before Start")
	}

	task.Start()
	if task.GetDuration() < 0 {
		t.Error("Expected non-negative duration after Start")
	}
}
