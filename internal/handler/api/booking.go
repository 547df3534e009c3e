package api

import (
	"log/slog"
	"net/http"

	reqdto "carwash-booking/internal/handler/dto/request"
	resdto "carwash-booking/internal/handler/dto/response"
	"carwash-booking/internal/handler/httperr"
	"carwash-booking/internal/usecase/commands"
	"carwash-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Reserve a slot for a service. Responds 409 when the slot was taken meanwhile.
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.MsgInvalidRequest, err.Error())
		return
	}
	var in commands.CreateBookingInput
	if err := copier.Copy(&in, &req); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, httperr.MsgRetry, nil)
		return
	}

	result, err := h.cmds.CreateBooking(c.Request.Context(), in)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.Header("Location", "/api/bookings/"+result.BookingID.String())
	view, err := h.q.GetByID(c.Request.Context(), result.BookingID)
	if err != nil {
		// The booking is committed; answer with what the command returned.
		slog.WarnContext(c.Request.Context(), "failed to load created booking view",
			"booking_id", result.BookingID.String(),
			"error", err.Error())
		h.respondSummary(c, http.StatusCreated, result)
		return
	}
	h.respondView(c, http.StatusCreated, view)
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	h.respondView(c, http.StatusOK, view)
}

// @Summary Get booking by confirmation code
// @Tags bookings
// @Produce json
// @Param code path string true "Confirmation code"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/code/{code} [get]
func (h *BookingHandler) GetByCode(c *gin.Context) {
	view, err := h.q.GetByConfirmationCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	h.respondView(c, http.StatusOK, view)
}

// @Summary Update booking status
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateStatusRequest true "New status"
// @Success 200 {object} resdto.BookingSummaryResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.MsgInvalidRequest, err.Error())
		return
	}
	result, err := h.cmds.UpdateBookingStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	h.respondSummary(c, http.StatusOK, result)
}

// @Summary Cancel booking
// @Description Cancelling frees the slot immediately.
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.CancelBookingRequest false "Cancellation reason"
// @Success 200 {object} resdto.BookingSummaryResponse
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var req reqdto.CancelBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.MsgInvalidRequest, err.Error())
			return
		}
	}
	result, err := h.cmds.CancelBooking(c.Request.Context(), id, req.Reason)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	h.respondSummary(c, http.StatusOK, result)
}

// @Summary Reschedule booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.RescheduleBookingRequest true "New slot"
// @Success 200 {object} resdto.BookingSummaryResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/bookings/{id}/reschedule [post]
func (h *BookingHandler) Reschedule(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var req reqdto.RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.MsgInvalidRequest, err.Error())
		return
	}
	result, err := h.cmds.RescheduleBooking(c.Request.Context(), id, commands.RescheduleBookingInput{
		Date:      req.Date,
		StartTime: req.StartTime,
	})
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	h.respondSummary(c, http.StatusOK, result)
}

// @Summary Update payment status
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdatePaymentRequest true "New payment status"
// @Success 200 {object} resdto.BookingSummaryResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/bookings/{id}/payment [patch]
func (h *BookingHandler) UpdatePayment(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var req reqdto.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.MsgInvalidRequest, err.Error())
		return
	}
	result, err := h.cmds.UpdatePaymentStatus(c.Request.Context(), id, req.PaymentStatus)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	h.respondSummary(c, http.StatusOK, result)
}

func (h *BookingHandler) respondView(c *gin.Context, status int, view *queries.BookingView) {
	res, err := resdto.FromBookingView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, httperr.MsgRetry, nil)
		return
	}
	c.JSON(status, res)
}

func (h *BookingHandler) respondSummary(c *gin.Context, status int, result *commands.BookingResult) {
	res, err := resdto.FromBookingResult(result)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, httperr.MsgRetry, nil)
		return
	}
	c.JSON(status, res)
}

func bookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}
