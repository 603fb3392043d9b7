package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/charitableio/charitable-api/internal/api/shared"
	"github.com/charitableio/charitable-api/internal/domain"
	"github.com/charitableio/charitable-api/internal/service"
	"github.com/charitableio/charitable-api/internal/store"
)

// mockAccountService is a function-field mock of service.AccountService.
type mockAccountService struct {
	registerFn     func(ctx context.Context, input service.RegisterAccountInput) (*domain.Account, error)
	authenticateFn func(ctx context.Context, username, password string) (*domain.Account, error)
	resolveFn      func(ctx context.Context, accountID uuid.UUID) (*domain.Account, error)
}

func (m *mockAccountService) Register(
	ctx context.Context,
	input service.RegisterAccountInput,
) (*domain.Account, error) {
	return m.registerFn(ctx, input)
}

func (m *mockAccountService) Authenticate(
	ctx context.Context,
	username, password string,
) (*domain.Account, error) {
	return m.authenticateFn(ctx, username, password)
}

func (m *mockAccountService) Resolve(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	return m.resolveFn(ctx, accountID)
}

// mockTaskService is a function-field mock of service.TaskService.
type mockTaskService struct {
	listTasksFn        func(ctx context.Context, account *domain.Account, filter store.TaskFilter) ([]*domain.Task, error)
	createTaskFn       func(ctx context.Context, account *domain.Account, input service.CreateTaskInput) (*domain.Task, error)
	requestTaskFn      func(ctx context.Context, account *domain.Account, taskID uuid.UUID) error
	respondToRequestFn func(ctx context.Context, account *domain.Account, taskID uuid.UUID, response string) error
	markDoneFn         func(ctx context.Context, account *domain.Account, taskID uuid.UUID) error
}

func (m *mockTaskService) ListTasks(
	ctx context.Context,
	account *domain.Account,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	return m.listTasksFn(ctx, account, filter)
}

func (m *mockTaskService) CreateTask(
	ctx context.Context,
	account *domain.Account,
	input service.CreateTaskInput,
) (*domain.Task, error) {
	return m.createTaskFn(ctx, account, input)
}

func (m *mockTaskService) RequestTask(ctx context.Context, account *domain.Account, taskID uuid.UUID) error {
	return m.requestTaskFn(ctx, account, taskID)
}

func (m *mockTaskService) RespondToRequest(
	ctx context.Context,
	account *domain.Account,
	taskID uuid.UUID,
	response string,
) error {
	return m.respondToRequestFn(ctx, account, taskID, response)
}

func (m *mockTaskService) MarkDone(ctx context.Context, account *domain.Account, taskID uuid.UUID) error {
	return m.markDoneFn(ctx, account, taskID)
}

// mockRegistrationService is a function-field mock of service.RegistrationService.
type mockRegistrationService struct {
	registerBenefactorFn func(ctx context.Context, account *domain.Account, experience domain.ExperienceLevel, freeTimePerWeek int) (*domain.Benefactor, error)
	registerCharityFn    func(ctx context.Context, account *domain.Account, name, regNumber string) (*domain.Charity, error)
}

func (m *mockRegistrationService) RegisterBenefactor(
	ctx context.Context,
	account *domain.Account,
	experience domain.ExperienceLevel,
	freeTimePerWeek int,
) (*domain.Benefactor, error) {
	return m.registerBenefactorFn(ctx, account, experience, freeTimePerWeek)
}

func (m *mockRegistrationService) RegisterCharity(
	ctx context.Context,
	account *domain.Account,
	name, regNumber string,
) (*domain.Charity, error) {
	return m.registerCharityFn(ctx, account, name, regNumber)
}

// resolveSelf returns an account service whose Resolve always yields the
// given account, the usual setup for authenticated handler tests.
func resolveSelf(account *domain.Account) *mockAccountService {
	return &mockAccountService{
		resolveFn: func(_ context.Context, _ uuid.UUID) (*domain.Account, error) {
			return account, nil
		},
	}
}

// authedRequest attaches the account ID to the request context the same way
// the auth middleware does.
func authedRequest(r *http.Request, accountID uuid.UUID) *http.Request {
	ctx := context.WithValue(r.Context(), shared.AccountIDContextKey, accountID)
	return r.WithContext(ctx)
}

func testCharityAccount(t *testing.T) *domain.Account {
	t.Helper()
	account, err := domain.NewAccount("helpinghands", "strongpassword1")
	require.NoError(t, err)
	charity, err := domain.NewCharity(account.ID, "Helping Hands", "REG-1001")
	require.NoError(t, err)
	account.Charity = charity
	return account
}

func testBenefactorAccount(t *testing.T) *domain.Account {
	t.Helper()
	account, err := domain.NewAccount("goodneighbor", "strongpassword1")
	require.NoError(t, err)
	benefactor, err := domain.NewBenefactor(account.ID, domain.ExperienceBeginner, 6)
	require.NoError(t, err)
	account.Benefactor = benefactor
	return account
}

func testPlainAccount(t *testing.T) *domain.Account {
	t.Helper()
	account, err := domain.NewAccount("justbrowsing", "strongpassword1")
	require.NoError(t, err)
	return account
}
