package middleware

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/piresc/accounts/internal/pkg/apperror"
	"github.com/piresc/accounts/internal/pkg/constants"
	"github.com/piresc/accounts/internal/utils"
)

// TokenVerifier resolves a bearer token to the account it was issued for
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// JWTAuthMiddleware rejects requests without a valid bearer token and stores
// the verified account id in the context under "user_id"
func JWTAuthMiddleware(verifier TokenVerifier) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  constants.ContextKeyUserID,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(_ echo.Context, auth string) (interface{}, error) {
			return verifier.Verify(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			switch {
			case errors.Is(err, apperror.ErrExpiredToken):
				return utils.UnauthorizedResponse(c, "Token expired")
			case errors.Is(err, apperror.ErrInvalidToken):
				return utils.UnauthorizedResponse(c, "Invalid token")
			default:
				return utils.UnauthorizedResponse(c, "Missing or malformed token")
			}
		},
	})
}

// AccountIDFromContext returns the account id stored by JWTAuthMiddleware
func AccountIDFromContext(c echo.Context) (int64, bool) {
	id, ok := c.Get(constants.ContextKeyUserID).(int64)
	return id, ok && id != 0
}
