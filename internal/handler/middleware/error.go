package middleware

import (
	"log/slog"
	"net/http"

	"carwash-booking/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

const codeInternal = "INTERNAL"

// ErrorHandler renders the last public error when a handler recorded one
// without writing a body. A bare status is written through untouched.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]
			if !err.IsType(gin.ErrorTypePublic) {
				continue
			}
			if resp, ok := err.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, internalResponse())
	}
}

// CustomRecovery turns a panic into the same generic retry answer a failed
// booking gets, so clients only ever handle one 5xx shape.
func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("recovered from panic",
					"error", rec,
					"request_id", GetRequestID(c),
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"booking_id", c.Param("id"))
				c.AbortWithStatusJSON(http.StatusInternalServerError, internalResponse())
			}
		}()
		c.Next()
	}
}

func NoRoute(c *gin.Context) {
	resp := httperr.Response{Status: http.StatusNotFound}
	resp.Error.Message = httperr.MsgNotFound
	resp.Error.Code = "NOT_FOUND"
	c.JSON(http.StatusNotFound, resp)
}

func NoMethod(c *gin.Context) {
	resp := httperr.Response{Status: http.StatusMethodNotAllowed}
	resp.Error.Message = "Method not allowed"
	resp.Error.Code = "METHOD_NOT_ALLOWED"
	c.JSON(http.StatusMethodNotAllowed, resp)
}

func internalResponse() httperr.Response {
	resp := httperr.Response{Status: http.StatusInternalServerError}
	resp.Error.Message = httperr.MsgRetry
	resp.Error.Code = codeInternal
	return resp
}
