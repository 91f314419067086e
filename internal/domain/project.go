package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Project validation errors. All wrap ErrValidation.
var (
	ErrEmptyProjectID      = fmt.Errorf("%w: project ID cannot be empty", ErrValidation)
	ErrEmptyProjectTitle   = fmt.Errorf("%w: project title cannot be empty", ErrValidation)
	ErrProjectTitleTooLong = fmt.Errorf("%w: project title cannot exceed 255 characters", ErrValidation)
	ErrEmptyProjectOwner   = fmt.Errorf("%w: project owner cannot be empty", ErrValidation)
)

// Project is a container for tasks. Every project is owned by exactly one
// user; the owner is set at creation and never changes.
type Project struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProject creates a new Project with the given title, owned by the given
// user. Returns an error if validation fails.
func NewProject(title string, ownerID uuid.UUID) (*Project, error) {
	project := &Project{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(title),
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}

	return project, nil
}

// Validate checks if the Project has valid data.
func (p *Project) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProjectID
	}

	if p.Title == "" {
		return ErrEmptyProjectTitle
	}

	if len(p.Title) > 255 {
		return ErrProjectTitleTooLong
	}

	if p.OwnerID == uuid.Nil {
		return ErrEmptyProjectOwner
	}

	return nil
}
