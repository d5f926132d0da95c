package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/accounts/internal/pkg/logger"
	"github.com/piresc/accounts/internal/utils"
)

// PanicRecoveryWithZapMiddleware turns a panicking handler into a 500 response and logs the stack
func PanicRecoveryWithZapMiddleware(zapLogger *logger.ZapLogger) echo.MiddlewareFunc {
	if zapLogger == nil {
		panic("PanicRecoveryWithZapMiddleware requires a logger")
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				userID := "anonymous"
				if uid := c.Get("user_id"); uid != nil {
					userID = fmt.Sprintf("%v", uid)
				}

				zapLogger.Error("Panic recovered",
					logger.Any("panic_value", r),
					logger.String("stack_trace", string(debug.Stack())),
					logger.String("method", c.Request().Method),
					logger.String("path", c.Request().URL.Path),
					logger.String("user_id", userID),
					logger.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				)

				if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
					txn.NoticeError(fmt.Errorf("panic: %v", r))
				}

				if c.Response().Committed {
					err = nil
					return
				}
				err = utils.InternalServerErrorResponse(c, "")
			}()

			return next(c)
		}
	}
}
