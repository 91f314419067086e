package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dkratzer/taskboard-api/internal/domain"
	"github.com/dkratzer/taskboard-api/internal/mocks"
	"github.com/dkratzer/taskboard-api/internal/store"
)

type taskServiceFixture struct {
	svc          *TaskServiceImpl
	taskStore    *mocks.TaskStore
	projectStore *mocks.ProjectStore
	userStore    *mocks.UserStore
}

func newTaskServiceFixture() *taskServiceFixture {
	f := &taskServiceFixture{
		taskStore:    &mocks.TaskStore{},
		projectStore: &mocks.ProjectStore{},
		userStore:    &mocks.UserStore{},
	}
	f.svc = &TaskServiceImpl{
		taskStore:    f.taskStore,
		projectStore: f.projectStore,
		userStore:    f.userStore,
		logger:       testLogger(),
		runTx:        stubTx,
	}
	return f
}

// expectOwnedProject wires up the project lookup and owner resolution that
// every task operation performs.
func (f *taskServiceFixture) expectOwnedProject() (*domain.Project, *domain.User) {
	owner := testOwner()
	project := testProject(owner.ID)
	f.projectStore.On("GetByID", mock.Anything, project.ID).Return(project, nil)
	f.userStore.On("GetByID", mock.Anything, owner.ID).Return(owner, nil)
	return project, owner
}

func testTask(projectID uuid.UUID) *domain.Task {
	return &domain.Task{
		ID:        uuid.New(),
		ProjectID: projectID,
		Title:     "Buy paint",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func TestTaskService_CreateTask(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture()
		project, owner := f.expectOwnedProject()

		due := time.Now().UTC().Add(48 * time.Hour)
		f.taskStore.On("Create", mock.Anything, mock.MatchedBy(func(task *domain.Task) bool {
			return task.ProjectID == project.ID &&
				task.Title == "Buy paint" &&
				task.DueDate != nil && task.DueDate.Equal(due) &&
				!task.Completed
		})).Return(nil)

		task, err := f.svc.CreateTask(ctx, project.ID, TaskFields{
			Title:       "Buy paint",
			Description: "White, matte",
			DueDate:     &due,
		}, owner.Email)
		require.NoError(t, err)
		assert.False(t, task.Completed, "new tasks start open")
		f.taskStore.AssertExpectations(t)
	})

	t.Run("non-owner cannot create", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture()
		project, _ := f.expectOwnedProject()

		task, err := f.svc.CreateTask(ctx, project.ID, TaskFields{Title: "Buy paint"}, "intruder@example.com")
		assert.Nil(t, task)
		assert.ErrorIs(t, err, ErrNotOwned)
		f.taskStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing project", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture()
		id := uuid.New()

		f.projectStore.On("GetByID", mock.Anything, id).
			Return(nil, store.ErrProjectNotFound)

		task, err := f.svc.CreateTask(ctx, id, TaskFields{Title: "Buy paint"}, "owner@example.com")
		assert.Nil(t, task)
		assert.ErrorIs(t, err, store.ErrProjectNotFound)
	})
}

func TestTaskService_ListTasks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	boolPtr := func(v bool) *bool { return &v }

	tests := []struct {
		name          string
		status        StatusFilter
		wantCompleted *bool
	}{
		{name: "no filter", status: StatusAny, wantCompleted: nil},
		{name: "completed only", status: StatusCompleted, wantCompleted: boolPtr(true)},
		{name: "active only", status: StatusActive, wantCompleted: boolPtr(false)},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newTaskServiceFixture()
			project, owner := f.expectOwnedProject()

			page := store.NewPage([]domain.Task{*testTask(project.ID)}, 1, 0, 6)
			f.taskStore.On("ListByProject", mock.Anything, project.ID, tc.wantCompleted, 0, 6).
				Return(page, nil)

			got, err := f.svc.ListTasks(ctx, project.ID, tc.status, 0, 6, owner.Email)
			require.NoError(t, err)
			assert.Equal(t, int64(1), got.TotalCount)
			f.taskStore.AssertExpectations(t)
		})
	}

	t.Run("non-owner cannot list", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture()
		project, _ := f.expectOwnedProject()

		_, err := f.svc.ListTasks(ctx, project.ID, StatusAny, 0, 6, "intruder@example.com")
		assert.ErrorIs(t, err, ErrNotOwned)
	})
}

func TestTaskService_GetTask(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("owner can read", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture()
		project, owner := f.expectOwnedProject()
		task := testTask(project.ID)

		f.taskStore.On("GetByID", mock.Anything, task.ID).Return(task, nil)

		got, err := f.svc.GetTask(ctx, task.ID, owner.Email)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
	})

	t.Run("ownership is checked through the parent project", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture()
		project, _ := f.expectOwnedProject()
		task := testTask(project.ID)

		f.taskStore.On("GetByID", mock.Anything, task.ID).Return(task, nil)

		got, err := f.svc.GetTask(ctx, task.ID, "intruder@example.com")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrNotOwned)
	})

	t.Run("missing task", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture()
		id := uuid.New()

		f.taskStore.On("GetByID", mock.Anything, id).Return(nil, store.ErrTaskNotFound)

		got, err := f.svc.GetTask(ctx, id, "owner@example.com")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestTaskService_UpdateTask(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("overwrites all fields including completed", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture()
		project, owner := f.expectOwnedProject()
		task := testTask(project.ID)
		task.Completed = true

		f.taskStore.On("GetByID", mock.Anything, task.ID).Return(task, nil)
		f.taskStore.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.Task) bool {
			return u.ID == task.ID && u.Title == "Buy brushes" && !u.Completed
		})).Return(nil)

		// Sending completed=false through an update reopens a finished task.
		got, err := f.svc.UpdateTask(ctx, task.ID, TaskFields{
			Title:     "Buy brushes",
			Completed: false,
		}, owner.Email)
		require.NoError(t, err)
		assert.False(t, got.Completed)
		assert.Equal(t, "Buy brushes", got.Title)
		f.taskStore.AssertExpectations(t)
	})

	t.Run("non-owner cannot update", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture()
		project, _ := f.expectOwnedProject()
		task := testTask(project.ID)

		f.taskStore.On("GetByID", mock.Anything, task.ID).Return(task, nil)

		got, err := f.svc.UpdateTask(ctx, task.ID, TaskFields{Title: "x"}, "intruder@example.com")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrNotOwned)
		f.taskStore.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestTaskService_CompleteTask(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("marks the task completed", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture()
		project, owner := f.expectOwnedProject()
		task := testTask(project.ID)

		f.taskStore.On("GetByID", mock.Anything, task.ID).Return(task, nil)
		f.taskStore.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.Task) bool {
			return u.ID == task.ID && u.Completed
		})).Return(nil)

		got, err := f.svc.CompleteTask(ctx, task.ID, owner.Email)
		require.NoError(t, err)
		assert.True(t, got.Completed)
	})

	t.Run("completing twice stays completed", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture()
		project, owner := f.expectOwnedProject()
		task := testTask(project.ID)
		task.Completed = true

		f.taskStore.On("GetByID", mock.Anything, task.ID).Return(task, nil)
		f.taskStore.On("Update", mock.Anything, mock.Anything).Return(nil)

		got, err := f.svc.CompleteTask(ctx, task.ID, owner.Email)
		require.NoError(t, err)
		assert.True(t, got.Completed)
	})
}

func TestTaskService_DeleteTask(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("owner can delete", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture()
		project, owner := f.expectOwnedProject()
		task := testTask(project.ID)

		f.taskStore.On("GetByID", mock.Anything, task.ID).Return(task, nil)
		f.taskStore.On("Delete", mock.Anything, task.ID).Return(nil)

		err := f.svc.DeleteTask(ctx, task.ID, owner.Email)
		require.NoError(t, err)
		f.taskStore.AssertExpectations(t)
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		t.Parallel()
		f := newTaskServiceFixture()
		project, _ := f.expectOwnedProject()
		task := testTask(project.ID)

		f.taskStore.On("GetByID", mock.Anything, task.ID).Return(task, nil)

		err := f.svc.DeleteTask(ctx, task.ID, "intruder@example.com")
		assert.ErrorIs(t, err, ErrNotOwned)
		f.taskStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
