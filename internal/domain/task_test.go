package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	projectID := uuid.New()
	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	task, err := NewTask(projectID, "Write docs", "cover the API surface", &due)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil task ID")
	}

	if task.ProjectID != projectID {
		t.Errorf("Expected project %s, got %s", projectID, task.ProjectID)
	}

	if task.Completed {
		t.Error("Expected new task to start not completed")
	}

	if task.DueDate == nil || !task.DueDate.Equal(due) {
		t.Errorf("Expected due date %v, got %v", due, task.DueDate)
	}

	// Due date is optional
	task, err = NewTask(projectID, "No deadline", "", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.DueDate != nil {
		t.Errorf("Expected nil due date, got %v", task.DueDate)
	}
}

func TestTaskValidate(t *testing.T) {
	projectID := uuid.New()

	cases := []struct {
		name    string
		task    Task
		wantErr error
	}{
		{
			name:    "valid",
			task:    Task{ID: uuid.New(), ProjectID: projectID, Title: "ok"},
			wantErr: nil,
		},
		{
			name:    "empty ID",
			task:    Task{ProjectID: projectID, Title: "ok"},
			wantErr: ErrEmptyTaskID,
		},
		{
			name:    "empty title",
			task:    Task{ID: uuid.New(), ProjectID: projectID},
			wantErr: ErrEmptyTaskTitle,
		},
		{
			name:    "no project",
			task:    Task{ID: uuid.New(), Title: "ok"},
			wantErr: ErrEmptyTaskProject,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.task.Validate(); err != tc.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
