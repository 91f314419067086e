package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/dkratzer/taskboard-api/internal/domain"
	"github.com/dkratzer/taskboard-api/internal/store"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// Email identifies the authenticated account
	Email string `json:"email"`

	// Token is the JWT access token used for API authorization
	Token string `json:"token"`
}

// CreateProjectRequest defines the payload for creating a project.
type CreateProjectRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

// ProjectResponse is the wire representation of a project.
type ProjectResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProjectResponse converts a domain project to its wire representation.
func NewProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:        p.ID,
		Title:     p.Title,
		OwnerID:   p.OwnerID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// NewProjectPageResponse converts a page of domain projects to the wire form,
// preserving the pagination envelope.
func NewProjectPageResponse(page store.Page[domain.Project]) store.Page[ProjectResponse] {
	items := make([]ProjectResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, NewProjectResponse(&page.Items[i]))
	}
	return store.NewPage(items, page.TotalCount, page.PageNumber, page.PageSize)
}

// CreateTaskRequest defines the payload for creating a task. New tasks always
// start open, so there is no completed field here.
type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required,max=255"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTaskRequest defines the payload for a full task update. Completed is
// part of the payload, so an update can reopen a finished task.
type UpdateTaskRequest struct {
	Title       string     `json:"title"       validate:"required,max=255"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Completed   bool       `json:"completed"`
}

// TaskResponse is the wire representation of a task.
type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTaskResponse converts a domain task to its wire representation.
func NewTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// NewTaskPageResponse converts a page of domain tasks to the wire form.
func NewTaskPageResponse(page store.Page[domain.Task]) store.Page[TaskResponse] {
	items := make([]TaskResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, NewTaskResponse(&page.Items[i]))
	}
	return store.NewPage(items, page.TotalCount, page.PageNumber, page.PageSize)
}
