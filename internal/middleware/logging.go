package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// RequestLogger writes one logrus entry per request.  Errors returned by
// handlers are rendered through the global error handler first so the
// logged status is the one the client saw.  Server errors are logged at
// error level with the underlying cause, which never reaches the client.
func RequestLogger(log logrus.FieldLogger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method":    v.Method,
				"uri":       v.URI,
				"status":    v.Status,
				"latency":   v.Latency.String(),
				"remote_ip": v.RemoteIP,
			})
			if cache := c.Response().Header().Get("X-Cache"); cache != "" {
				entry = entry.WithField("cache", cache)
			}
			if cause, ok := c.Get(ErrorCauseKey).(error); ok {
				entry = entry.WithError(cause)
			} else if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			switch {
			case v.Status >= 500:
				entry.Error("request failed")
			case v.Status >= 400:
				entry.Warn("request rejected")
			default:
				entry.Info("request served")
			}
			return nil
		},
	})
}

// ErrorCauseKey is the echo.Context key under which handlers store the
// internal error behind a rendered error response, for logging only.
const ErrorCauseKey = "error_cause"
