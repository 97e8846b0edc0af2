package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/HostingCuenca/vet-system/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// requestLog starts an event carrying the fields every request line shares:
// request id, method, route template and the :id being acted on, if any.
func requestLog(e *zerolog.Event, c *gin.Context) *zerolog.Event {
	e = e.Str("request_id", c.GetString(RequestIDKey)).
		Str("method", c.Request.Method).
		Str("route", c.FullPath())
	if id := c.Param("id"); id != "" {
		e = e.Str("resource_id", id)
	}
	return e
}

// ErrorHandler turns errors attached with c.Error into a generic 500.
// The driver text is logged here and never reaches the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		requestLog(log.Error(), c).
			Int("errors", len(c.Errors)).
			Err(c.Errors.Last().Err).
			Msg("request failed")

		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.Internal())
	}
}

// Recovery turns a panic into the same generic 500 and logs the stack.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				requestLog(log.Error(), c).
					Interface("panic", r).
					Str("stack", string(debug.Stack())).
					Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.Internal())
			}
		}()
		c.Next()
	}
}

// Logger writes one line per request. Server errors log at error level,
// rejected requests at warn; health probes are not logged.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if c.Request.URL.Path == "/health" {
			return
		}

		status := c.Writer.Status()
		var e *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			e = log.Error()
		case status >= http.StatusBadRequest:
			e = log.Warn()
		default:
			e = log.Info()
		}
		requestLog(e, c).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
