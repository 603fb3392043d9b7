package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/charitableio/charitable-api/internal/api/shared"
	"github.com/charitableio/charitable-api/internal/service"
	"github.com/charitableio/charitable-api/internal/service/auth"
	"github.com/charitableio/charitable-api/internal/store"
)

// AuthHandler handles account registration and authentication requests.
type AuthHandler struct {
	accountService service.AccountService
	jwtService     auth.JWTService
	validator      *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(accountService service.AccountService, jwtService auth.JWTService) *AuthHandler {
	return &AuthHandler{
		accountService: accountService,
		jwtService:     jwtService,
		validator:      validator.New(),
	}
}

// Register handles POST /accounts.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterAccountRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	account, err := h.accountService.Register(r.Context(), service.RegisterAccountInput{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Gender:      req.Gender,
		Age:         req.Age,
		Description: req.Description,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
	})
	if err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Username already exists")
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	tokens, err := h.issueTokens(r, account.ID)
	if err != nil {
		slog.Error("failed to generate tokens", "error", err, "account_id", account.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, tokens)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	account, err := h.accountService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) || errors.Is(err, service.ErrPermissionDenied) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to authenticate", err)
		return
	}

	tokens, err := h.issueTokens(r, account.ID)
	if err != nil {
		slog.Error("failed to generate tokens", "error", err, "account_id", account.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tokens)
}

// Refresh handles POST /auth/refresh, exchanging a valid refresh token for a
// fresh token pair.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, GetSafeErrorMessage(err))
		return
	}

	tokens, err := h.issueTokens(r, claims.AccountID)
	if err != nil {
		slog.Error("failed to generate tokens", "error", err, "account_id", claims.AccountID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tokens)
}

func (h *AuthHandler) issueTokens(r *http.Request, accountID uuid.UUID) (TokenResponse, error) {
	access, err := h.jwtService.GenerateToken(r.Context(), accountID)
	if err != nil {
		return TokenResponse{}, err
	}

	refresh, err := h.jwtService.GenerateRefreshToken(r.Context(), accountID)
	if err != nil {
		return TokenResponse{}, err
	}

	return TokenResponse{
		AccountID:    accountID,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
