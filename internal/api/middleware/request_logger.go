package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
)

// NewRequestID generates request ids for echo's RequestID middleware.
func NewRequestID() string {
	return xid.New().String()
}

// RequestLogger attaches a child logger carrying the request id to the
// request context and logs every completed request once.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			reqID := c.Response().Header().Get(echo.HeaderXRequestID)
			if reqID == "" {
				reqID = req.Header.Get(echo.HeaderXRequestID)
			}

			l := log.With().Str("request_id", reqID).Logger()
			c.SetRequest(req.WithContext(l.WithContext(req.Context())))

			if err := next(c); err != nil {
				c.Error(err)
			}

			res := c.Response()
			evt := l.Info()
			switch {
			case res.Status >= 500:
				evt = l.Error()
			case res.Status >= 400:
				evt = l.Warn()
			}
			evt.Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Int64("bytes_out", res.Size).
				Msg("request completed")
			return nil
		}
	}
}
