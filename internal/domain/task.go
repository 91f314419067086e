package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task validation errors. All wrap ErrValidation.
var (
	ErrEmptyTaskID      = fmt.Errorf("%w: task ID cannot be empty", ErrValidation)
	ErrEmptyTaskTitle   = fmt.Errorf("%w: task title cannot be empty", ErrValidation)
	ErrTaskTitleTooLong = fmt.Errorf("%w: task title cannot exceed 255 characters", ErrValidation)
	ErrEmptyTaskProject = fmt.Errorf("%w: task project cannot be empty", ErrValidation)
)

// Task is a unit of work belonging to exactly one project. The parent
// project is set at creation and never changes; ownership is derived
// through it.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a new Task under the given project. Tasks start out not
// completed. Returns an error if validation fails.
func NewTask(projectID uuid.UUID, title, description string, dueDate *time.Time) (*Task, error) {
	task := &Task{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Title:       strings.TrimSpace(title),
		Description: description,
		DueDate:     dueDate,
		Completed:   false,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	if len(t.Title) > 255 {
		return ErrTaskTitleTooLong
	}

	if t.ProjectID == uuid.Nil {
		return ErrEmptyTaskProject
	}

	return nil
}
