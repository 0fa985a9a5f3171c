package handler

import "github.com/lendstack/agency-system/internal/core/domain"

type createAdminRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	TenantName  string `json:"tenant_name" validate:"required"`
}

type createManagerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	PhoneNumber string `json:"phone_number"`
	Department  string `json:"department" validate:"required"`
	ReportsTo   string `json:"reports_to" validate:"required"`
}

type createLoanOfficerRequest struct {
	Email          string   `json:"email" validate:"required,email"`
	Password       string   `json:"password" validate:"required,min=6"`
	FirstName      string   `json:"first_name" validate:"required"`
	LastName       string   `json:"last_name" validate:"required"`
	Branch         string   `json:"branch" validate:"required"`
	FieldWorkAreas []string `json:"field_work_areas" validate:"required,dive,required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// sessionResponse is returned by login and refresh.
type sessionResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	TokenExpires int64        `json:"token_expires"`
	User         *domain.User `json:"user"`
}

// bootstrapResponse is returned by admin bootstrap.
type bootstrapResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	TokenExpires int64        `json:"token_expires"`
	Admin        *domain.User `json:"admin"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}
