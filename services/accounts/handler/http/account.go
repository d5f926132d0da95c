package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/piresc/accounts/internal/pkg/logger"
	"github.com/piresc/accounts/internal/pkg/middleware"
	"github.com/piresc/accounts/internal/pkg/models"
	"github.com/piresc/accounts/internal/utils"
	"github.com/piresc/accounts/services/accounts"
)

// AccountHandler handles HTTP requests for account operations
type AccountHandler struct {
	accountUC accounts.AccountUC
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(
	accountUC accounts.AccountUC,
) *AccountHandler {
	return &AccountHandler{
		accountUC: accountUC,
	}
}

// bind decodes and validates the request body. It writes the error response itself
// and reports false when the handler should stop.
func bind(c echo.Context, req interface{}, endpoint string) (bool, error) {
	if err := c.Bind(req); err != nil {
		logger.Warn("Invalid request payload",
			logger.Err(err),
			logger.String("endpoint", endpoint),
		)
		return false, utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return false, utils.DomainErrorResponse(c, err)
	}
	return true, nil
}

func pathID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Register handles account creation
func (h *AccountHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if ok, err := bind(c, &req, "Register"); !ok {
		return err
	}

	account, err := h.accountUC.Register(c.Request().Context(), &req)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusCreated, "User registered successfully", account)
}

// Login handles email and password login
func (h *AccountHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if ok, err := bind(c, &req, "Login"); !ok {
		return err
	}

	resp, err := h.accountUC.Login(c.Request().Context(), &req)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Login successful", resp)
}

func (h *AccountHandler) ListAccounts(c echo.Context) error {
	list, err := h.accountUC.ListAccounts(c.Request().Context())
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Users retrieved successfully", list)
}

func (h *AccountHandler) GetAccount(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return utils.BadRequestResponse(c, "Invalid user ID")
	}

	account, err := h.accountUC.GetAccount(c.Request().Context(), id)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "User retrieved successfully", account)
}

// UpdateAccount overwrites the profile of the account in the path
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return utils.BadRequestResponse(c, "Invalid user ID")
	}

	var req models.UpdateAccountRequest
	if ok, err := bind(c, &req, "UpdateAccount"); !ok {
		return err
	}

	account, err := h.accountUC.UpdateAccount(c.Request().Context(), id, &req)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "User updated successfully", account)
}

func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return utils.BadRequestResponse(c, "Invalid user ID")
	}

	account, err := h.accountUC.DeleteAccount(c.Request().Context(), id)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "User deleted successfully", account)
}

// ChangePassword changes the password of the token holder
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	accountID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Invalid token")
	}

	var req models.ChangePasswordRequest
	if ok, err := bind(c, &req, "ChangePassword"); !ok {
		return err
	}

	if err := h.accountUC.ChangePassword(c.Request().Context(), accountID, &req); err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Password changed successfully", nil)
}

// ForgotPassword sends a reset code to the phone of the account
func (h *AccountHandler) ForgotPassword(c echo.Context) error {
	var req models.ForgotPasswordRequest
	if ok, err := bind(c, &req, "ForgotPassword"); !ok {
		return err
	}

	if err := h.accountUC.RequestPasswordReset(c.Request().Context(), req.Phone); err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "OTP sent to registered phone number", nil)
}

// ResetPassword sets a new password after checking the delivered code
func (h *AccountHandler) ResetPassword(c echo.Context) error {
	var req models.ResetPasswordRequest
	if ok, err := bind(c, &req, "ResetPassword"); !ok {
		return err
	}

	if err := h.accountUC.ConfirmPasswordReset(c.Request().Context(), &req); err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Password reset successfully", nil)
}
