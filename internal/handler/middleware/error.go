package middleware

import (
	"log/slog"
	"net/http"

	"hotel-checkout/internal/handler/httperr"
	"hotel-checkout/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders errors a handler recorded without writing a response.
// Public errors carry their response; coded usecase errors are rendered from
// their code; everything else is an opaque 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]

			if resp, ok := err.Meta.(httperr.Response); ok && err.IsType(gin.ErrorTypePublic) {
				c.JSON(resp.Status, resp)
				return
			}
			var ce *errs.CodedError
			if errs.As(err.Err, &ce) {
				resp := httperr.Response{Status: httperr.StatusOf(err.Err)}
				resp.Error.Code = ce.Code
				resp.Error.Message = ce.Message
				if len(ce.Detail) > 0 {
					resp.Detail = ce.Detail
				}
				c.JSON(resp.Status, resp)
				return
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		if len(c.Errors) > 0 {
			slog.Error("unhandled request error", "request_id", GetRequestID(c), "error", c.Errors.Last().Error())
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Internal server error"}})
	}
}

// CustomRecovery turns a panic into a JSON 500. A payment callback that
// panics is logged with its gateway so the attempt can be replayed.
func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				attrs := []any{"error", err, "path", c.Request.URL.Path, "request_id", GetRequestID(c)}
				if gw := c.Param("gateway"); gw != "" {
					attrs = append(attrs, "gateway", gw, "query", c.Request.URL.RawQuery)
				}
				slog.Error("recovered from panic", attrs...)

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = "Internal server error"

				c.JSON(http.StatusInternalServerError, resp)
				c.Abort()
			}
		}()
		c.Next()
	}
}
