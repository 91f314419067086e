package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/dkratzer/taskboard-api/internal/api/shared"
	"github.com/dkratzer/taskboard-api/internal/service"
)

// ProjectHandler handles project-related API requests. Every route below
// sits behind the auth middleware, so a principal email is always present.
type ProjectHandler struct {
	projectService service.ProjectService
	validator      *validator.Validate
	logger         *slog.Logger
}

// NewProjectHandler creates a new ProjectHandler with the given dependencies.
func NewProjectHandler(
	projectService service.ProjectService,
	logger *slog.Logger,
) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		validator:      validator.New(),
		logger:         logger.With("component", "project_handler"),
	}
}

// Create handles POST /api/projects.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	email, ok := getPrincipalEmail(w, r)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	project, err := h.projectService.CreateProject(r.Context(), req.Title, email)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewProjectResponse(project))
}

// List handles GET /api/projects. Supports a case-insensitive title search
// via the search query parameter, plus page/size pagination.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	email, ok := getPrincipalEmail(w, r)
	if !ok {
		return
	}

	search := r.URL.Query().Get("search")
	pageNumber, pageSize := getPagination(r)

	page, err := h.projectService.ListProjects(r.Context(), email, search, pageNumber, pageSize)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewProjectPageResponse(page))
}

// Get handles GET /api/projects/{id}.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	email, ok := getPrincipalEmail(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	project, err := h.projectService.GetProject(r.Context(), id, email)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewProjectResponse(project))
}

// Delete handles DELETE /api/projects/{id}. The project's tasks go with it.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	email, ok := getPrincipalEmail(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.projectService.DeleteProject(r.Context(), id, email); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Progress handles GET /api/projects/{id}/progress.
func (h *ProjectHandler) Progress(w http.ResponseWriter, r *http.Request) {
	email, ok := getPrincipalEmail(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	progress, err := h.projectService.ComputeProgress(r.Context(), id, email)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, progress)
}
