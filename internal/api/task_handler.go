package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/charitableio/charitable-api/internal/api/shared"
	"github.com/charitableio/charitable-api/internal/domain"
	"github.com/charitableio/charitable-api/internal/platform/logger"
	"github.com/charitableio/charitable-api/internal/service"
	"github.com/charitableio/charitable-api/internal/store"
)

// Confirmation messages for the task lifecycle endpoints.
const (
	detailRequestSent  = "Request sent."
	detailResponseSent = "Response sent."
	detailTaskDone     = "Task has been done successfully."
)

// TaskHandler handles task listing, creation, and lifecycle requests.
type TaskHandler struct {
	accountService service.AccountService
	taskService    service.TaskService
	logger         *slog.Logger
	validator      *validator.Validate
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(
	accountService service.AccountService,
	taskService service.TaskService,
	logger *slog.Logger,
) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		accountService: accountService,
		taskService:    taskService,
		logger:         logger.With(slog.String("component", "task_handler")),
		validator:      validator.New(),
	}
}

// ListTasks handles GET /tasks. Query parameters state, category, and title
// (and their exclude_ variants) narrow the visible set; anything else is
// ignored.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	account, ok := h.resolveAccount(w, r)
	if !ok {
		return
	}

	filter := store.TaskFilterFromQuery(r.URL.Query())

	tasks, err := h.taskService.ListTasks(r.Context(), account, filter)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list tasks", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// CreateTask handles POST /tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	account, ok := h.resolveAccount(w, r)
	if !ok {
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

	task, err := h.taskService.CreateTask(r.Context(), account, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Deadline:    req.Deadline,
	})
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			shared.RespondWithError(w, r, http.StatusForbidden, GetSafeErrorMessage(err))
			return
		}
		if errors.Is(err, domain.ErrEmptyTaskTitle) {
			shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// RequestTask handles GET /tasks/{id}/request. A missing task and a task
// that is not open for request both report 404.
func (h *TaskHandler) RequestTask(w http.ResponseWriter, r *http.Request) {
	account, ok := h.resolveAccount(w, r)
	if !ok {
		return
	}

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	err = h.taskService.RequestTask(r.Context(), account, taskID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			shared.RespondWithError(w, r, http.StatusForbidden, GetSafeErrorMessage(err))
		case errors.Is(err, store.ErrTaskNotFound):
			shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		case errors.Is(err, domain.ErrTaskNotPending):
			shared.RespondWithError(w, r, http.StatusNotFound, "This task is not pending.")
		default:
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		}
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.DetailResponse{Detail: detailRequestSent})
}

// RespondToRequest handles POST /tasks/{id}/response. A missing task reports
// 400 on this endpoint; only a task outside the waiting state reports 404.
func (h *TaskHandler) RespondToRequest(w http.ResponseWriter, r *http.Request) {
	account, ok := h.resolveAccount(w, r)
	if !ok {
		return
	}

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Task not found")
		return
	}

	var req TaskResponseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	err = h.taskService.RespondToRequest(r.Context(), account, taskID, req.Response)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidResponse):
			shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		case errors.Is(err, service.ErrPermissionDenied):
			shared.RespondWithError(w, r, http.StatusForbidden, GetSafeErrorMessage(err))
		case errors.Is(err, store.ErrTaskNotFound):
			shared.RespondWithError(w, r, http.StatusBadRequest, "Task not found")
		case errors.Is(err, domain.ErrTaskNotWaiting):
			shared.RespondWithError(w, r, http.StatusNotFound, "This task is not waiting.")
		default:
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		}
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.DetailResponse{Detail: detailResponseSent})
}

// MarkDone handles POST /tasks/{id}/done.
func (h *TaskHandler) MarkDone(w http.ResponseWriter, r *http.Request) {
	account, ok := h.resolveAccount(w, r)
	if !ok {
		return
	}

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	err = h.taskService.MarkDone(r.Context(), account, taskID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			shared.RespondWithError(w, r, http.StatusForbidden, GetSafeErrorMessage(err))
		case errors.Is(err, store.ErrTaskNotFound):
			shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		case errors.Is(err, domain.ErrTaskNotAssigned):
			shared.RespondWithError(w, r, http.StatusNotFound, "Task is not assigned yet.")
		default:
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		}
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.DetailResponse{Detail: detailTaskDone})
}

// resolveAccount loads the acting account with profiles attached.
func (h *TaskHandler) resolveAccount(w http.ResponseWriter, r *http.Request) (*domain.Account, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	accountID, ok := getAccountIDFromContext(r)
	if !ok {
		log.Warn("account ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Account ID not found or invalid")
		return nil, false
	}

	account, err := h.accountService.Resolve(r.Context(), accountID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return nil, false
	}
	return account, true
}
