package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// requestIDBytes is the number of random bytes used for request IDs.
const requestIDBytes = 8

// RequestID propagates X-Request-ID, generating one when the client did
// not send it.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = generateRequestID()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			return next(c)
		}
	}
}

func generateRequestID() string {
	b := make([]byte, requestIDBytes)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// AccessLog writes one structured line per request.
func AccessLog(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// let the error handler pick the status before it is logged
				c.Error(err)
			}
			res := c.Response()
			fields := []zap.Field{
				zap.String("request_id", res.Header().Get(echo.HeaderXRequestID)),
				zap.String("method", c.Request().Method),
				zap.String("route", c.Path()),
				zap.Int("status", res.Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("ip", c.RealIP()),
			}
			if id, ok := UserID(c); ok {
				fields = append(fields, zap.Uint64("user_id", id))
			}
			switch {
			case res.Status >= http.StatusInternalServerError:
				log.Error("request", append(fields, zap.Error(err))...)
			case res.Status >= http.StatusBadRequest:
				log.Info("request", fields...)
			default:
				log.Debug("request", fields...)
			}
			return nil
		}
	}
}

// Recover turns panics into 500 responses and logs the stack.
func Recover(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error("panic recovered",
						zap.Any("panic", r),
						zap.String("route", c.Path()),
						zap.ByteString("stack", debug.Stack()))
					err = c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
				}
			}()
			return next(c)
		}
	}
}
