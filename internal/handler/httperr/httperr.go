package httperr

import (
	"net/http"
	"strconv"

	"carwash-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const (
	MsgSlotUnavailable = "Time slot no longer available"
	MsgSlotLocked      = "Time slot is being booked, please try again"
	MsgRetry           = "Could not complete booking, please retry"
	MsgNotFound        = "Not found"
	MsgInvalidRequest  = "Invalid request"

	// RetryAfterSeconds is advertised on lock contention.
	RetryAfterSeconds = 1
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
		Code    string `json:"code,omitempty"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	abort(c, status, err, msg, "", detail)
}

// AbortWithDomainError maps the booking error taxonomy to a status. The
// cause of a 5xx is kept in c.Errors for logging and never written out.
func AbortWithDomainError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrSlotLocked):
		c.Header("Retry-After", strconv.Itoa(RetryAfterSeconds))
		abort(c, http.StatusConflict, err, MsgSlotLocked, "SLOT_LOCKED", nil)
	case errs.Is(err, errs.ErrTimeSlotUnavailable):
		abort(c, http.StatusConflict, err, MsgSlotUnavailable, "SLOT_UNAVAILABLE", nil)
	case errs.IsAny(err, errs.ErrBookingNotFound, errs.ErrServiceNotFound):
		abort(c, http.StatusNotFound, err, MsgNotFound, "NOT_FOUND", nil)
	case errs.IsAny(err, errs.ErrInvalidStatusTransition, errs.ErrInvalidPaymentTransition):
		abort(c, http.StatusUnprocessableEntity, err, err.Error(), "INVALID_TRANSITION", nil)
	case errs.Is(err, errs.ErrServiceInactive):
		abort(c, http.StatusBadRequest, err, "Service is not available for booking", "SERVICE_INACTIVE", nil)
	case errs.Is(err, errs.ErrInvalidTimeSlot):
		abort(c, http.StatusBadRequest, err, "Invalid time slot", "INVALID_TIME_SLOT", nil)
	case errs.IsValidation(err):
		abort(c, http.StatusBadRequest, err, MsgInvalidRequest, "VALIDATION", err.Error())
	default:
		abort(c, http.StatusInternalServerError, err, MsgRetry, "", nil)
	}
}

func abort(c *gin.Context, status int, err error, msg, code string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Error.Code = code
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
