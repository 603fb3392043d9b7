package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charitableio/charitable-api/internal/domain"
	"github.com/charitableio/charitable-api/internal/store"
)

func TestRegisterBenefactorEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("registers profile", func(t *testing.T) {
		t.Parallel()

		account := testPlainAccount(t)
		registrations := &mockRegistrationService{
			registerBenefactorFn: func(_ context.Context, acc *domain.Account, experience domain.ExperienceLevel, freeTime int) (*domain.Benefactor, error) {
				assert.Equal(t, account.ID, acc.ID)
				assert.Equal(t, domain.ExperienceAdvanced, experience)
				assert.Equal(t, 10, freeTime)
				return domain.NewBenefactor(acc.ID, experience, freeTime)
			},
		}
		handler := NewProfileHandler(resolveSelf(account), registrations)

		req := httptest.NewRequest(http.MethodPost, "/benefactors",
			strings.NewReader(`{"experience":3,"free_time_per_week":10}`))
		w := httptest.NewRecorder()
		handler.RegisterBenefactor(w, authedRequest(req, account.ID))

		assert.Equal(t, http.StatusOK, w.Code)

		var body BenefactorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, account.ID, body.AccountID)
		assert.Equal(t, 3, body.Experience)
	})

	t.Run("duplicate profile gets 409", func(t *testing.T) {
		t.Parallel()

		account := testBenefactorAccount(t)
		registrations := &mockRegistrationService{
			registerBenefactorFn: func(_ context.Context, _ *domain.Account, _ domain.ExperienceLevel, _ int) (*domain.Benefactor, error) {
				return nil, store.ErrProfileExists
			},
		}
		handler := NewProfileHandler(resolveSelf(account), registrations)

		req := httptest.NewRequest(http.MethodPost, "/benefactors",
			strings.NewReader(`{"experience":1,"free_time_per_week":4}`))
		w := httptest.NewRecorder()
		handler.RegisterBenefactor(w, authedRequest(req, account.ID))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("experience out of range gets 400", func(t *testing.T) {
		t.Parallel()

		account := testPlainAccount(t)
		handler := NewProfileHandler(resolveSelf(account), &mockRegistrationService{})

		req := httptest.NewRequest(http.MethodPost, "/benefactors",
			strings.NewReader(`{"experience":9,"free_time_per_week":4}`))
		w := httptest.NewRecorder()
		handler.RegisterBenefactor(w, authedRequest(req, account.ID))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()

		handler := NewProfileHandler(&mockAccountService{}, &mockRegistrationService{})

		req := httptest.NewRequest(http.MethodPost, "/benefactors",
			strings.NewReader(`{"experience":1,"free_time_per_week":4}`))
		w := httptest.NewRecorder()
		handler.RegisterBenefactor(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRegisterCharityEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("registers profile", func(t *testing.T) {
		t.Parallel()

		account := testPlainAccount(t)
		registrations := &mockRegistrationService{
			registerCharityFn: func(_ context.Context, acc *domain.Account, name, regNumber string) (*domain.Charity, error) {
				return domain.NewCharity(acc.ID, name, regNumber)
			},
		}
		handler := NewProfileHandler(resolveSelf(account), registrations)

		req := httptest.NewRequest(http.MethodPost, "/charities",
			strings.NewReader(`{"name":"Food Bank","reg_number":"REG-2002"}`))
		w := httptest.NewRecorder()
		handler.RegisterCharity(w, authedRequest(req, account.ID))

		assert.Equal(t, http.StatusOK, w.Code)

		var body CharityResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Food Bank", body.Name)
		assert.Equal(t, "REG-2002", body.RegNumber)
	})

	t.Run("duplicate reg number gets 409", func(t *testing.T) {
		t.Parallel()

		account := testPlainAccount(t)
		registrations := &mockRegistrationService{
			registerCharityFn: func(_ context.Context, _ *domain.Account, _, _ string) (*domain.Charity, error) {
				return nil, store.ErrRegNumberExists
			},
		}
		handler := NewProfileHandler(resolveSelf(account), registrations)

		req := httptest.NewRequest(http.MethodPost, "/charities",
			strings.NewReader(`{"name":"Food Bank","reg_number":"REG-2002"}`))
		w := httptest.NewRecorder()
		handler.RegisterCharity(w, authedRequest(req, account.ID))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing name gets 400", func(t *testing.T) {
		t.Parallel()

		account := testPlainAccount(t)
		handler := NewProfileHandler(resolveSelf(account), &mockRegistrationService{})

		req := httptest.NewRequest(http.MethodPost, "/charities",
			strings.NewReader(`{"reg_number":"REG-2002"}`))
		w := httptest.NewRecorder()
		handler.RegisterCharity(w, authedRequest(req, account.ID))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
