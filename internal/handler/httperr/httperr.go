package httperr

import (
	"net/http"

	"hotel-checkout/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code    string `json:"code,omitempty"`
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	abort(c, err, resp)
}

// AbortWithCoded renders a usecase error. Coded errors expose their code,
// message and detail; anything else becomes an opaque 500.
func AbortWithCoded(c *gin.Context, err error) {
	if err == nil {
		panic("AbortWithCoded: err cannot be nil")
	}

	var ce *errs.CodedError
	if !errs.As(err, &ce) {
		AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	resp := Response{Status: StatusOf(err)}
	resp.Error.Code = ce.Code
	resp.Error.Message = ce.Message
	if len(ce.Detail) > 0 {
		resp.Detail = ce.Detail
	}

	abort(c, err, resp)
}

// StatusOf maps an error category to an HTTP status.
func StatusOf(err error) int {
	switch {
	case errs.Is(err, errs.ErrValidation):
		return http.StatusUnprocessableEntity
	case errs.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errs.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errs.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errs.Is(err, errs.ErrUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func abort(c *gin.Context, err error, resp Response) {
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(resp.Status, resp)
}
