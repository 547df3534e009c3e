//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	"testing"

	"carwash-booking/internal/handler/httperr"
	"carwash-booking/internal/handler/middleware"
	"carwash-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CustomRecovery(), middleware.ErrorHandler())
	r.HandleMethodNotAllowed = true
	r.NoRoute(middleware.NoRoute)
	r.NoMethod(middleware.NoMethod)
	return r
}

func TestCustomRecovery(t *testing.T) {
	t.Run("panic becomes the generic retry answer", func(t *testing.T) {
		r := newRouter()
		r.GET("/api/bookings/:id", func(*gin.Context) { panic("nil booking") })

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/api/bookings/42", nil)

		httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, httperr.MsgRetry)
		assert.NotContains(t, rec.Body.String(), "nil booking")
	})
}

func TestErrorHandler(t *testing.T) {
	t.Run("public error recorded without a body is rendered", func(t *testing.T) {
		r := newRouter()
		r.GET("/x", func(c *gin.Context) {
			resp := httperr.Response{Status: http.StatusConflict}
			resp.Error.Message = httperr.MsgSlotUnavailable
			_ = c.Error(gin.Error{Err: errors.New("taken"), Type: gin.ErrorTypePublic, Meta: resp})
		})

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/x", nil)
		httptest.AssertErrorResponse(t, rec, http.StatusConflict, httperr.MsgSlotUnavailable)
	})

	t.Run("bare status passes through", func(t *testing.T) {
		r := newRouter()
		r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/x", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("unknown route and wrong method use the error envelope", func(t *testing.T) {
		r := newRouter()
		r.GET("/api/services", func(c *gin.Context) { c.JSON(http.StatusOK, []string{}) })

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/api/unknown", nil)
		httptest.AssertErrorResponse(t, rec, http.StatusNotFound, httperr.MsgNotFound)

		rec = httptest.PerformRequest(t, r, http.MethodDelete, "/api/services", nil)
		httptest.AssertErrorResponse(t, rec, http.StatusMethodNotAllowed, "Method not allowed")
	})
}
