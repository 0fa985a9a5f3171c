package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lendstack/agency-system/internal/api/metrics"
	"github.com/lendstack/agency-system/internal/core/domain"
	"github.com/lendstack/agency-system/internal/core/ports"
)

type AuthHandler struct {
	provisioning ports.ProvisioningService
	auth         ports.AuthService
}

func NewAuthHandler(provisioning ports.ProvisioningService, auth ports.AuthService) *AuthHandler {
	return &AuthHandler{provisioning: provisioning, auth: auth}
}

// CreateAdmin bootstraps a new agency: one tenant plus its administrator.
//
// @Summary      Create an agency admin and its tenant
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      createAdminRequest  true  "Admin bootstrap details"
// @Success      201   {object}  bootstrapResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/create-admin [post]
func (h *AuthHandler) CreateAdmin(c echo.Context) error {
	var req createAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.provisioning.CreateAdmin(c.Request().Context(), ports.CreateAdminInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		TenantName:  req.TenantName,
	})
	if err != nil {
		metrics.ProvisioningFailuresTotal.WithLabelValues("create_admin", string(domain.Kind(err))).Inc()
		return err
	}

	metrics.UsersProvisionedTotal.WithLabelValues(string(domain.RoleAdmin)).Inc()
	return c.JSON(http.StatusCreated, bootstrapResponse{
		Token:        result.Tokens.Token,
		RefreshToken: result.Tokens.RefreshToken,
		TokenExpires: result.Tokens.TokenExpires,
		Admin:        result.Admin,
	})
}

// Login authenticates an email/password pair and returns a token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, sessionResponse{
		Token:        result.Tokens.Token,
		RefreshToken: result.Tokens.RefreshToken,
		TokenExpires: result.Tokens.TokenExpires,
		User:         result.User,
	})
}

// RefreshToken exchanges a valid refresh token for a new token pair.
//
// @Summary      Refresh the token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshTokenRequest  true  "Refresh token"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/refresh-token [post]
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req refreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.auth.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues(refreshResult(err)).Inc()
		return err
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, sessionResponse{
		Token:        result.Tokens.Token,
		RefreshToken: result.Tokens.RefreshToken,
		TokenExpires: result.Tokens.TokenExpires,
		User:         result.User,
	})
}

// CreateManager provisions a manager under the acting admin's tenant.
//
// @Summary      Create a manager
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createManagerRequest  true  "Manager details"
// @Success      201   {object}  userResponse
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/create-manager [post]
func (h *AuthHandler) CreateManager(c echo.Context) error {
	creatorID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createManagerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	manager, err := h.provisioning.CreateManager(c.Request().Context(), ports.CreateManagerInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Department:  req.Department,
		ReportsTo:   req.ReportsTo,
	}, creatorID)
	if err != nil {
		metrics.ProvisioningFailuresTotal.WithLabelValues("create_manager", string(domain.Kind(err))).Inc()
		return err
	}

	metrics.UsersProvisionedTotal.WithLabelValues(string(domain.RoleManager)).Inc()
	return c.JSON(http.StatusCreated, userResponse{User: manager})
}

// CreateLoanOfficer provisions a loan officer under the acting admin's tenant.
//
// @Summary      Create a loan officer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createLoanOfficerRequest  true  "Loan officer details"
// @Success      201   {object}  userResponse
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/create-loan-officer [post]
func (h *AuthHandler) CreateLoanOfficer(c echo.Context) error {
	creatorID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createLoanOfficerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	officer, err := h.provisioning.CreateLoanOfficer(c.Request().Context(), ports.CreateLoanOfficerInput{
		Email:          req.Email,
		Password:       req.Password,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Branch:         req.Branch,
		FieldWorkAreas: req.FieldWorkAreas,
	}, creatorID)
	if err != nil {
		metrics.ProvisioningFailuresTotal.WithLabelValues("create_loan_officer", string(domain.Kind(err))).Inc()
		return err
	}

	metrics.UsersProvisionedTotal.WithLabelValues(string(domain.RoleLoanOfficer)).Inc()
	return c.JSON(http.StatusCreated, userResponse{User: officer})
}

// Me returns the authenticated caller.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.auth.Me(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// Delete removes the authenticated caller's account.
//
// @Summary      Delete current user
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [delete]
func (h *AuthHandler) Delete(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.auth.Remove(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	}
	return "error"
}

func refreshResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenInvalid):
		return "invalid"
	}
	return "error"
}
