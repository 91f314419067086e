package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dkratzer/taskboard-api/internal/api/shared"
	"github.com/dkratzer/taskboard-api/internal/domain"
	"github.com/dkratzer/taskboard-api/internal/service"
	"github.com/dkratzer/taskboard-api/internal/store"
)

const callerEmail = "owner@example.com"

// newProjectRouter mounts the handler the way the real router does, so path
// parameters resolve through chi.
func newProjectRouter(h *ProjectHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/projects", h.Create)
	r.Get("/api/projects", h.List)
	r.Get("/api/projects/{id}", h.Get)
	r.Delete("/api/projects/{id}", h.Delete)
	r.Get("/api/projects/{id}/progress", h.Progress)
	return r
}

// authedRequest builds a request with the principal email already in the
// context, as the auth middleware would leave it.
func authedRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	ctx := context.WithValue(req.Context(), shared.PrincipalEmailContextKey, callerEmail)
	return req.WithContext(ctx)
}

func TestProjectHandler_Create(t *testing.T) {
	t.Parallel()

	t.Run("success returns 201", func(t *testing.T) {
		t.Parallel()
		projectService := &mockProjectService{}
		router := newProjectRouter(NewProjectHandler(projectService, testLogger()))

		project := &domain.Project{ID: uuid.New(), Title: "Spring cleaning", OwnerID: uuid.New()}
		projectService.On("CreateProject", mock.Anything, "Spring cleaning", callerEmail).
			Return(project, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/api/projects",
			CreateProjectRequest{Title: "Spring cleaning"}))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp ProjectResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, project.ID, resp.ID)
		assert.Equal(t, "Spring cleaning", resp.Title)
	})

	t.Run("missing title returns 400", func(t *testing.T) {
		t.Parallel()
		projectService := &mockProjectService{}
		router := newProjectRouter(NewProjectHandler(projectService, testLogger()))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/api/projects",
			CreateProjectRequest{Title: ""}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		projectService.AssertNotCalled(t, "CreateProject", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no principal returns 401", func(t *testing.T) {
		t.Parallel()
		projectService := &mockProjectService{}
		router := newProjectRouter(NewProjectHandler(projectService, testLogger()))

		raw, err := json.Marshal(CreateProjectRequest{Title: "Spring cleaning"})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/projects", bytes.NewReader(raw))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestProjectHandler_List(t *testing.T) {
	t.Parallel()

	t.Run("passes search and pagination to the service", func(t *testing.T) {
		t.Parallel()
		projectService := &mockProjectService{}
		router := newProjectRouter(NewProjectHandler(projectService, testLogger()))

		page := store.NewPage([]domain.Project{
			{ID: uuid.New(), Title: "Clean garage"},
		}, 1, 2, 10)
		projectService.On("ListProjects", mock.Anything, callerEmail, "clean", 2, 10).
			Return(page, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(t, http.MethodGet,
			"/api/projects?search=clean&page=2&size=10", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp store.Page[ProjectResponse]
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.TotalCount)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Clean garage", resp.Items[0].Title)
	})

	t.Run("defaults apply when pagination is absent", func(t *testing.T) {
		t.Parallel()
		projectService := &mockProjectService{}
		router := newProjectRouter(NewProjectHandler(projectService, testLogger()))

		page := store.NewPage([]domain.Project{}, 0, store.DefaultPageNumber, store.DefaultPageSize)
		projectService.On("ListProjects", mock.Anything, callerEmail, "",
			store.DefaultPageNumber, store.DefaultPageSize).Return(page, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/api/projects", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		projectService.AssertExpectations(t)
	})
}

func TestProjectHandler_Get(t *testing.T) {
	t.Parallel()

	t.Run("foreign project returns 403", func(t *testing.T) {
		t.Parallel()
		projectService := &mockProjectService{}
		router := newProjectRouter(NewProjectHandler(projectService, testLogger()))

		id := uuid.New()
		projectService.On("GetProject", mock.Anything, id, callerEmail).
			Return(nil, service.ErrNotOwned)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/api/projects/"+id.String(), nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing project returns 404", func(t *testing.T) {
		t.Parallel()
		projectService := &mockProjectService{}
		router := newProjectRouter(NewProjectHandler(projectService, testLogger()))

		id := uuid.New()
		projectService.On("GetProject", mock.Anything, id, callerEmail).
			Return(nil, store.ErrProjectNotFound)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/api/projects/"+id.String(), nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id returns 400", func(t *testing.T) {
		t.Parallel()
		projectService := &mockProjectService{}
		router := newProjectRouter(NewProjectHandler(projectService, testLogger()))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/api/projects/not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProjectHandler_Delete(t *testing.T) {
	t.Parallel()
	projectService := &mockProjectService{}
	router := newProjectRouter(NewProjectHandler(projectService, testLogger()))

	id := uuid.New()
	projectService.On("DeleteProject", mock.Anything, id, callerEmail).Return(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodDelete, "/api/projects/"+id.String(), nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestProjectHandler_Progress(t *testing.T) {
	t.Parallel()
	projectService := &mockProjectService{}
	router := newProjectRouter(NewProjectHandler(projectService, testLogger()))

	id := uuid.New()
	projectService.On("ComputeProgress", mock.Anything, id, callerEmail).
		Return(&service.Progress{TotalTasks: 3, CompletedTasks: 1, ProgressPercentage: 33.33}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodGet,
		"/api/projects/"+id.String()+"/progress", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp service.Progress
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.TotalTasks)
	assert.InDelta(t, 33.33, resp.ProgressPercentage, 0.01)
}
