package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/charitableio/charitable-api/internal/domain"
)

// RegisterAccountRequest is the request body for account registration.
type RegisterAccountRequest struct {
	Username    string `json:"username"     validate:"required,min=3,max=150"`
	Password    string `json:"password"     validate:"required,min=8,max=72"`
	Email       string `json:"email"        validate:"omitempty,email"`
	Phone       string `json:"phone"        validate:"omitempty,max=32"`
	Address     string `json:"address"      validate:"omitempty,max=255"`
	Gender      string `json:"gender"       validate:"omitempty,oneof=M F O"`
	Age         int    `json:"age"          validate:"omitempty,gte=0,lte=150"`
	Description string `json:"description"  validate:"omitempty,max=1000"`
	FirstName   string `json:"first_name"   validate:"omitempty,max=150"`
	LastName    string `json:"last_name"    validate:"omitempty,max=150"`
}

// LoginRequest is the request body for username/password login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest is the request body for exchanging a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenResponse carries a freshly issued token pair.
type TokenResponse struct {
	AccountID    uuid.UUID `json:"account_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}

// AccountResponse is the public representation of an account.
type AccountResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	Age         int       `json:"age,omitempty"`
	Description string    `json:"description,omitempty"`
	FirstName   string    `json:"first_name,omitempty"`
	LastName    string    `json:"last_name,omitempty"`
}

func accountToResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:          account.ID,
		Username:    account.Username,
		Email:       account.Email,
		Phone:       account.Phone,
		Address:     account.Address,
		Gender:      account.Gender,
		Age:         account.Age,
		Description: account.Description,
		FirstName:   account.FirstName,
		LastName:    account.LastName,
	}
}

// RegisterBenefactorRequest is the request body for benefactor registration.
type RegisterBenefactorRequest struct {
	Experience      int `json:"experience"         validate:"gte=0,lte=3"`
	FreeTimePerWeek int `json:"free_time_per_week" validate:"gte=0"`
}

// BenefactorResponse is the public representation of a benefactor profile.
type BenefactorResponse struct {
	ID              uuid.UUID `json:"id"`
	AccountID       uuid.UUID `json:"account_id"`
	Experience      int       `json:"experience"`
	FreeTimePerWeek int       `json:"free_time_per_week"`
}

func benefactorToResponse(benefactor *domain.Benefactor) BenefactorResponse {
	return BenefactorResponse{
		ID:              benefactor.ID,
		AccountID:       benefactor.AccountID,
		Experience:      int(benefactor.Experience),
		FreeTimePerWeek: benefactor.FreeTimePerWeek,
	}
}

// RegisterCharityRequest is the request body for charity registration.
type RegisterCharityRequest struct {
	Name      string `json:"name"       validate:"required,max=255"`
	RegNumber string `json:"reg_number" validate:"required,max=64"`
}

// CharityResponse is the public representation of a charity profile.
type CharityResponse struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	Name      string    `json:"name"`
	RegNumber string    `json:"reg_number"`
}

func charityToResponse(charity *domain.Charity) CharityResponse {
	return CharityResponse{
		ID:        charity.ID,
		AccountID: charity.AccountID,
		Name:      charity.Name,
		RegNumber: charity.RegNumber,
	}
}

// CreateTaskRequest is the request body for posting a new task.
type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required,max=255"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	Category    string     `json:"category"    validate:"omitempty,max=64"`
	Deadline    *time.Time `json:"deadline"    validate:"omitempty"`
}

// TaskResponseRequest is the request body for responding to a task request.
type TaskResponseRequest struct {
	Response string `json:"response" validate:"required"`
}

// TaskResponse is the public representation of a task.
type TaskResponse struct {
	ID                   uuid.UUID  `json:"id"`
	CharityID            uuid.UUID  `json:"charity_id"`
	AssignedBenefactorID *uuid.UUID `json:"assigned_benefactor_id,omitempty"`
	Title                string     `json:"title"`
	Description          string     `json:"description,omitempty"`
	Category             string     `json:"category,omitempty"`
	Deadline             *time.Time `json:"deadline,omitempty"`
	State                string     `json:"state"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:                   task.ID,
		CharityID:            task.CharityID,
		AssignedBenefactorID: task.AssignedBenefactorID,
		Title:                task.Title,
		Description:          task.Description,
		Category:             task.Category,
		Deadline:             task.Deadline,
		State:                string(task.State),
		CreatedAt:            task.CreatedAt,
		UpdatedAt:            task.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}
