package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-recommender/backend/internal/logger"
	"github.com/pageza/recipe-recommender/backend/internal/types"
)

// ErrorHandler turns panics and unanswered handler errors into JSON error
// responses.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.L().Errorw("panic while handling request",
					"panic", err,
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{
					Error:     "Internal Server Error",
					RequestID: GetRequestID(c),
				})
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			status := c.Writer.Status()
			if status < http.StatusBadRequest {
				status = http.StatusInternalServerError
			}
			c.JSON(status, types.ErrorResponse{
				Error:     c.Errors.Last().Error(),
				RequestID: GetRequestID(c),
			})
		}
	}
}
