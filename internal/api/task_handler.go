package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/dkratzer/taskboard-api/internal/api/shared"
	"github.com/dkratzer/taskboard-api/internal/service"
)

// TaskHandler handles task-related API requests. All routes sit behind the
// auth middleware; ownership of the parent project is enforced by the
// service layer.
type TaskHandler struct {
	taskService service.TaskService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(
	taskService service.TaskService,
	logger *slog.Logger,
) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		validator:   validator.New(),
		logger:      logger.With("component", "task_handler"),
	}
}

// parseStatusFilter validates the status query parameter. An empty value
// means no filtering.
func parseStatusFilter(raw string) (service.StatusFilter, bool) {
	switch service.StatusFilter(raw) {
	case service.StatusAny, service.StatusCompleted, service.StatusActive:
		return service.StatusFilter(raw), true
	default:
		return service.StatusAny, false
	}
}

// Create handles POST /api/tasks/project/{projectId}.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	email, ok := getPrincipalEmail(w, r)
	if !ok {
		return
	}

	projectID, err := getPathUUID(r, "projectId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), projectID, service.TaskFields{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}, email)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewTaskResponse(task))
}

// List handles GET /api/tasks/project/{projectId}. Supports filtering by
// completion status (completed or active) plus page/size pagination.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	email, ok := getPrincipalEmail(w, r)
	if !ok {
		return
	}

	projectID, err := getPathUUID(r, "projectId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	status, ok := parseStatusFilter(r.URL.Query().Get("status"))
	if !ok {
		shared.RespondWithError(
			w,
			r,
			http.StatusBadRequest,
			"Invalid status filter: must be completed or active",
		)
		return
	}

	pageNumber, pageSize := getPagination(r)

	page, err := h.taskService.ListTasks(r.Context(), projectID, status, pageNumber, pageSize, email)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskPageResponse(page))
}

// Get handles GET /api/tasks/{taskId}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	email, ok := getPrincipalEmail(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "taskId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.GetTask(r.Context(), id, email)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// Update handles PUT /api/tasks/{taskId}. This is a full overwrite of the
// task's mutable fields.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	email, ok := getPrincipalEmail(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "taskId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), id, service.TaskFields{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Completed:   req.Completed,
	}, email)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// Complete handles PUT /api/tasks/{taskId}/complete.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	email, ok := getPrincipalEmail(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "taskId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.CompleteTask(r.Context(), id, email)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// Delete handles DELETE /api/tasks/{taskId}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	email, ok := getPrincipalEmail(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "taskId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id, email); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
