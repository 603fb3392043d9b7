package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/charitableio/charitable-api/internal/api/shared"
	"github.com/charitableio/charitable-api/internal/domain"
	"github.com/charitableio/charitable-api/internal/service"
	"github.com/charitableio/charitable-api/internal/store"
)

// ProfileHandler handles role profile registration for authenticated
// accounts: POST /benefactors and POST /charities.
type ProfileHandler struct {
	accountService      service.AccountService
	registrationService service.RegistrationService
	validator           *validator.Validate
}

// NewProfileHandler creates a new ProfileHandler with the given dependencies.
func NewProfileHandler(
	accountService service.AccountService,
	registrationService service.RegistrationService,
) *ProfileHandler {
	return &ProfileHandler{
		accountService:      accountService,
		registrationService: registrationService,
		validator:           validator.New(),
	}
}

// RegisterBenefactor handles POST /benefactors.
func (h *ProfileHandler) RegisterBenefactor(w http.ResponseWriter, r *http.Request) {
	account, ok := h.resolveAccount(w, r)
	if !ok {
		return
	}

	var req RegisterBenefactorRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	benefactor, err := h.registrationService.RegisterBenefactor(
		r.Context(),
		account,
		domain.ExperienceLevel(req.Experience),
		req.FreeTimePerWeek,
	)
	if err != nil {
		if errors.Is(err, store.ErrProfileExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Profile already registered for this account")
			return
		}
		if errors.Is(err, domain.ErrInvalidExperience) || errors.Is(err, domain.ErrNegativeFreeTime) {
			shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, benefactorToResponse(benefactor))
}

// RegisterCharity handles POST /charities.
func (h *ProfileHandler) RegisterCharity(w http.ResponseWriter, r *http.Request) {
	account, ok := h.resolveAccount(w, r)
	if !ok {
		return
	}

	var req RegisterCharityRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	charity, err := h.registrationService.RegisterCharity(r.Context(), account, req.Name, req.RegNumber)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrProfileExists):
			shared.RespondWithError(w, r, http.StatusConflict, "Profile already registered for this account")
		case errors.Is(err, store.ErrRegNumberExists):
			shared.RespondWithError(w, r, http.StatusConflict, "Registration number already exists")
		case errors.Is(err, domain.ErrEmptyCharityName), errors.Is(err, domain.ErrEmptyRegNumber):
			shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		default:
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		}
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, charityToResponse(charity))
}

// resolveAccount loads the acting account with profiles attached. Writes the
// error response and returns false when the request is not authenticated or
// the account no longer exists.
func (h *ProfileHandler) resolveAccount(w http.ResponseWriter, r *http.Request) (*domain.Account, bool) {
	accountID, ok := getAccountIDFromContext(r)
	if !ok {
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
