package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charitableio/charitable-api/internal/domain"
	"github.com/charitableio/charitable-api/internal/service"
	"github.com/charitableio/charitable-api/internal/store"
)

// newTaskRouter mounts a TaskHandler on a chi router so path parameters
// resolve the same way they do in production.
func newTaskRouter(accounts service.AccountService, tasks service.TaskService) chi.Router {
	handler := NewTaskHandler(accounts, tasks, nil)
	r := chi.NewRouter()
	r.Get("/tasks", handler.ListTasks)
	r.Post("/tasks", handler.CreateTask)
	r.Get("/tasks/{id}/request", handler.RequestTask)
	r.Post("/tasks/{id}/response", handler.RespondToRequest)
	r.Post("/tasks/{id}/done", handler.MarkDone)
	return r
}

func decodeDetail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	detail, _ := body["detail"].(string)
	return detail
}

func TestListTasksEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("passes whitelisted filters through", func(t *testing.T) {
		t.Parallel()

		account := testBenefactorAccount(t)
		var gotFilter store.TaskFilter
		tasks := &mockTaskService{
			listTasksFn: func(_ context.Context, _ *domain.Account, filter store.TaskFilter) ([]*domain.Task, error) {
				gotFilter = filter
				return []*domain.Task{}, nil
			},
		}
		router := newTaskRouter(resolveSelf(account), tasks)

		req := httptest.NewRequest(http.MethodGet, "/tasks?category=food&exclude_state=done&reward=1000", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(req, account.ID))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "food", gotFilter.Include["category"])
		assert.Equal(t, "done", gotFilter.Exclude["state"])
		// Unknown parameters never reach the store.
		assert.NotContains(t, gotFilter.Include, "reward")
	})

	t.Run("returns task list", func(t *testing.T) {
		t.Parallel()

		account := testCharityAccount(t)
		task, err := domain.NewTask(account.Charity.ID, "Sort donations", "Weekend intake", "logistics", nil)
		require.NoError(t, err)

		tasks := &mockTaskService{
			listTasksFn: func(_ context.Context, _ *domain.Account, _ store.TaskFilter) ([]*domain.Task, error) {
				return []*domain.Task{task}, nil
			},
		}
		router := newTaskRouter(resolveSelf(account), tasks)

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(req, account.ID))

		assert.Equal(t, http.StatusOK, w.Code)

		var body []TaskResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body, 1)
		assert.Equal(t, task.ID, body[0].ID)
		assert.Equal(t, "pending", body[0].State)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(&mockAccountService{}, &mockTaskService{})

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCreateTaskEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		t.Parallel()

		account := testCharityAccount(t)
		tasks := &mockTaskService{
			createTaskFn: func(_ context.Context, _ *domain.Account, input service.CreateTaskInput) (*domain.Task, error) {
				return domain.NewTask(account.Charity.ID, input.Title, input.Description, input.Category, input.Deadline)
			},
		}
		router := newTaskRouter(resolveSelf(account), tasks)

		req := httptest.NewRequest(http.MethodPost, "/tasks",
			strings.NewReader(`{"title":"Paint the shelter","description":"Fresh coat","category":"maintenance"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(req, account.ID))

		assert.Equal(t, http.StatusCreated, w.Code)

		var body TaskResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Paint the shelter", body.Title)
		assert.Equal(t, "pending", body.State)
	})

	t.Run("no charity profile gets 403", func(t *testing.T) {
		t.Parallel()

		account := testBenefactorAccount(t)
		tasks := &mockTaskService{
			createTaskFn: func(_ context.Context, _ *domain.Account, _ service.CreateTaskInput) (*domain.Task, error) {
				return nil, service.ErrPermissionDenied
			},
		}
		router := newTaskRouter(resolveSelf(account), tasks)

		req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{"title":"Paint"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(req, account.ID))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing title gets 400", func(t *testing.T) {
		t.Parallel()

		account := testCharityAccount(t)
		router := newTaskRouter(resolveSelf(account), &mockTaskService{})

		req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{"description":"no title"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(req, account.ID))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body gets 400", func(t *testing.T) {
		t.Parallel()

		account := testCharityAccount(t)
		router := newTaskRouter(resolveSelf(account), &mockTaskService{})

		req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{title`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(req, account.ID))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRequestTaskEndpoint(t *testing.T) {
	t.Parallel()

	account := testBenefactorAccount(t)
	taskID := uuid.New()

	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantDetail string
	}{
		{"success", nil, http.StatusOK, "Request sent."},
		{"missing task", store.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
		{"not pending", domain.ErrTaskNotPending, http.StatusNotFound, "This task is not pending."},
		{"no benefactor profile", service.ErrPermissionDenied, http.StatusForbidden, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tasks := &mockTaskService{
				requestTaskFn: func(_ context.Context, _ *domain.Account, id uuid.UUID) error {
					assert.Equal(t, taskID, id)
					return tt.serviceErr
				},
			}
			router := newTaskRouter(resolveSelf(account), tasks)

			req := httptest.NewRequest(http.MethodGet, "/tasks/"+taskID.String()+"/request", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, authedRequest(req, account.ID))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, decodeDetail(t, w))
			}
		})
	}

	t.Run("garbage id reports not found", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(resolveSelf(account), &mockTaskService{})

		req := httptest.NewRequest(http.MethodGet, "/tasks/not-a-uuid/request", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(req, account.ID))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRespondToRequestEndpoint(t *testing.T) {
	t.Parallel()

	account := testCharityAccount(t)
	taskID := uuid.New()

	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantDetail string
	}{
		{"accept", `{"response":"A"}`, nil, http.StatusOK, "Response sent."},
		{"reject", `{"response":"R"}`, nil, http.StatusOK, "Response sent."},
		{"invalid value", `{"response":"X"}`, service.ErrInvalidResponse, http.StatusBadRequest, ""},
		// A missing task is a 400 here, unlike the other lifecycle endpoints.
		{"missing task", `{"response":"A"}`, store.ErrTaskNotFound, http.StatusBadRequest, "Task not found"},
		{"not waiting", `{"response":"A"}`, domain.ErrTaskNotWaiting, http.StatusNotFound, "This task is not waiting."},
		{"not the owner", `{"response":"A"}`, service.ErrPermissionDenied, http.StatusForbidden, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tasks := &mockTaskService{
				respondToRequestFn: func(_ context.Context, _ *domain.Account, id uuid.UUID, _ string) error {
					assert.Equal(t, taskID, id)
					return tt.serviceErr
				},
			}
			router := newTaskRouter(resolveSelf(account), tasks)

			req := httptest.NewRequest(http.MethodPost, "/tasks/"+taskID.String()+"/response",
				strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, authedRequest(req, account.ID))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, decodeDetail(t, w))
			}
		})
	}

	t.Run("empty response value fails validation", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(resolveSelf(account), &mockTaskService{})

		req := httptest.NewRequest(http.MethodPost, "/tasks/"+taskID.String()+"/response",
			strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(req, account.ID))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMarkDoneEndpoint(t *testing.T) {
	t.Parallel()

	account := testCharityAccount(t)
	taskID := uuid.New()

	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantDetail string
	}{
		{"success", nil, http.StatusOK, "Task has been done successfully."},
		{"missing task", store.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
		{"not assigned", domain.ErrTaskNotAssigned, http.StatusNotFound, "Task is not assigned yet."},
		{"not the owner", service.ErrPermissionDenied, http.StatusForbidden, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tasks := &mockTaskService{
				markDoneFn: func(_ context.Context, _ *domain.Account, id uuid.UUID) error {
					assert.Equal(t, taskID, id)
					return tt.serviceErr
				},
			}
			router := newTaskRouter(resolveSelf(account), tasks)

			req := httptest.NewRequest(http.MethodPost, "/tasks/"+taskID.String()+"/done", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, authedRequest(req, account.ID))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, decodeDetail(t, w))
			}
		})
	}
}

func TestResolveAccountMissing(t *testing.T) {
	t.Parallel()

	// The account was deleted after the token was issued.
	accounts := &mockAccountService{
		resolveFn: func(_ context.Context, _ uuid.UUID) (*domain.Account, error) {
			return nil, store.ErrAccountNotFound
		},
	}
	router := newTaskRouter(accounts, &mockTaskService{})

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(req, uuid.New()))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
