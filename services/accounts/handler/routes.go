package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/accounts/internal/pkg/middleware"
	"github.com/piresc/accounts/internal/utils"
	handlerhttp "github.com/piresc/accounts/services/accounts/handler/http"
)

// Handler registers the account service routes
type Handler struct {
	accountHandler *handlerhttp.AccountHandler
	verifier       middleware.TokenVerifier
}

// NewHandler creates the route registrar. verifier backs the bearer token middleware.
func NewHandler(
	accountHandler *handlerhttp.AccountHandler,
	verifier middleware.TokenVerifier,
) *Handler {
	return &Handler{
		accountHandler: accountHandler,
		verifier:       verifier,
	}
}

// RegisterRoutes mounts every account route under /api/auth
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	auth := e.Group("/api/auth")

	// Public routes
	auth.POST("/register", h.accountHandler.Register)
	auth.POST("/login", h.accountHandler.Login)
	auth.POST("/forgot-password", h.accountHandler.ForgotPassword)
	auth.POST("/reset-password", h.accountHandler.ResetPassword)

	// Protected routes. The middleware is attached per route so unknown paths
	// under the group still reach the not found handler.
	jwt := middleware.JWTAuthMiddleware(h.verifier)
	auth.GET("/users", h.accountHandler.ListAccounts, jwt)
	auth.GET("/users/:id", h.accountHandler.GetAccount, jwt)
	auth.PUT("/users/:id", h.accountHandler.UpdateAccount, jwt)
	auth.DELETE("/users/:id", h.accountHandler.DeleteAccount, jwt)
	auth.POST("/change-password", h.accountHandler.ChangePassword, jwt)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return utils.ErrorResponseHandler(c, http.StatusNotFound, "Route not found")
	})
}
