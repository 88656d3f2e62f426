package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	requestIDHeader = "x-mws-request-id"
	requestIDKey    = "request_id"
)

// requestLog assigns every request an MWS-style request id, echoed in the
// x-mws-request-id header, and logs it once the handler returns.
func requestLog(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := uuid.NewString()
			c.Set(requestIDKey, reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)

			log.Debug("request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"action", c.QueryParam("Action"),
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			)

			return err
		}
	}
}

// recovery answers a panicking handler with an InternalError response.
func recovery(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					buf := make([]byte, 4096)
					n := runtime.Stack(buf, false)

					log.Error("panic recovered",
						"error", fmt.Sprint(r),
						"path", c.Request().URL.Path,
						"stack", string(buf[:n]),
					)

					err = writeError(c, http.StatusInternalServerError, "InternalError",
						"We encountered an internal error. Please try again.")
				}
			}()
			return next(c)
		}
	}
}

func requestID(c echo.Context) string {
	id, _ := c.Get(requestIDKey).(string)
	return id
}
