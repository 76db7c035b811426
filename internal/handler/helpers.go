package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/bookies/internal/middleware"
	"github.com/xxxsen/bookies/internal/pkg/errcode"
	appErr "github.com/xxxsen/bookies/internal/pkg/errors"
	"github.com/xxxsen/bookies/internal/pkg/response"
)

func getIdentity(c *gin.Context) string {
	claims := middleware.Claims(c)
	if claims == nil {
		return ""
	}
	return claims.Email
}

// handleError writes exactly one failure response for err.
func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logFailure(c, err)
	switch {
	case errors.Is(err, appErr.ErrUnauthorized):
		response.Error(c, http.StatusBadRequest, errcode.ErrUnauthorized, "unauthorized")
	case errors.Is(err, appErr.ErrForbidden):
		response.Error(c, http.StatusBadRequest, errcode.ErrForbidden, "unauthorized")
	case errors.Is(err, appErr.ErrNotFound):
		response.Error(c, http.StatusNotFound, errcode.ErrNotFound, "not found")
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
	case errors.Is(err, appErr.ErrConflict):
		response.Error(c, http.StatusBadRequest, errcode.ErrConflict, "email already exists")
	case errors.Is(err, appErr.ErrNoAccount):
		response.Error(c, http.StatusBadRequest, errcode.ErrNoAccount, "no account for this email")
	case errors.Is(err, appErr.ErrPasswordMismatch):
		response.Error(c, http.StatusBadRequest, errcode.ErrPasswordMismatch, "password mismatch")
	default:
		response.Error(c, http.StatusInternalServerError, errcode.ErrInternal, "internal error")
	}
}

func logFailure(c *gin.Context, err error) {
	requestID, _ := c.Get(middleware.ContextRequestIDKey)
	logutil.GetLogger(c.Request.Context()).Warn("request failed",
		zap.Any("request_id", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("identity", getIdentity(c)),
		zap.Error(err),
	)
}
