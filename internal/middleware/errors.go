package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/brokerpulse/internal/analytics"
	"github.com/guttosm/brokerpulse/internal/domain/dto"
)

// ErrorHandler renders the last error a handler attached with c.Error, when
// nothing has been written yet.
//
// Status mapping:
//   - analytics.ErrInvalidQuery: 400
//   - analytics.ErrNoData: 404
//   - anything else (upstream source failures included): 500
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	err := c.Errors.Last().Err
	status, msg := StatusFor(err)
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(msg, err))
}

// StatusFor maps err to an HTTP status and a short message.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, analytics.ErrInvalidQuery):
		return http.StatusBadRequest, "invalid query"
	case errors.Is(err, analytics.ErrNoData):
		return http.StatusNotFound, "no data found"
	default:
		return http.StatusInternalServerError, "failed to compute dashboard"
	}
}

// AbortWithError stops the chain and writes a dto.ErrorResponse with status.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
