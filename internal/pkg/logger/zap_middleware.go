package logger

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// ZapEchoMiddleware writes one access log line per request
func ZapEchoMiddleware(logger *ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			path := req.URL.Path
			if req.URL.RawQuery != "" {
				path = path + "?" + req.URL.RawQuery
			}

			err := next(c)
			if err != nil {
				// let echo write the response so the logged status is the real one
				c.Error(err)
			}

			latency := time.Since(start)

			userID := "anonymous"
			if id := c.Get("user_id"); id != nil {
				userID = fmt.Sprintf("%v", id)
			}
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)

			if txn := newrelic.FromContext(req.Context()); txn != nil {
				txn.AddAttribute("user_id", userID)
				txn.AddAttribute("request_id", requestID)
				if err != nil {
					txn.NoticeError(err)
				}
			}

			logger.LogHTTPRequest(req.Method, path, c.RealIP(), userID, requestID, c.Response().Status, latency, err)

			return nil
		}
	}
}
