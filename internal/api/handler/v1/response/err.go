package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the single error body every endpoint renders.
type Err struct {
	Err            error  `json:"-"`
	Success        bool   `json:"success"`
	HTTPStatusCode int    `json:"status_code"`
	ErrorText      string `json:"error"`
}

func (e *Err) Error() string {
	return e.ErrorText
}

func newErr(status int, err error, text string) *Err {
	return &Err{
		Err:            err,
		Success:        false,
		HTTPStatusCode: status,
		ErrorText:      text,
	}
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, err, err.Error())
}

func ErrUnauthorized(err error) *Err {
	return newErr(http.StatusUnauthorized, err, "unauthorized")
}

func ErrWrongCredentials(err error) *Err {
	return newErr(http.StatusUnauthorized, err, "wrong email or password")
}

func ErrPermissionDenied(err error) *Err {
	return newErr(http.StatusForbidden, err, "permission denied")
}

func ErrNotFound(resource, key string, value any) *Err {
	err := fmt.Errorf("%s with %s %v not found", resource, key, value)

	return newErr(http.StatusNotFound, err, err.Error())
}

func ErrConflict(err error) *Err {
	return newErr(http.StatusConflict, err, err.Error())
}

// ErrInternalServerError hides the cause from the client; RenderErr logs it.
func ErrInternalServerError(err error) *Err {
	return newErr(http.StatusInternalServerError, err, "internal server error")
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.Err),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}
