package api

import (
	"net/http"

	reqdto "carwash-booking/internal/handler/dto/request"
	resdto "carwash-booking/internal/handler/dto/response"
	"carwash-booking/internal/handler/httperr"
	"carwash-booking/internal/pkg/calendar"
	"carwash-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Check availability
// @Description Candidate start times of a service on a date with remaining capacity.
// @Tags availability
// @Produce json
// @Param serviceId query string true "Service ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/availability [get]
func (h *AvailabilityHandler) Check(c *gin.Context) {
	var req reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.MsgInvalidRequest, err.Error())
		return
	}
	serviceID := uuid.MustParse(req.ServiceID)
	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.MsgInvalidRequest, err.Error())
		return
	}

	slots, err := h.q.CheckAvailability(c.Request.Context(), serviceID, date)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	res, err := resdto.FromSlots(serviceID, date, slots)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, httperr.MsgRetry, nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary List services
// @Tags availability
// @Produce json
// @Success 200 {array} resdto.ServiceResponse
// @Router /api/services [get]
func (h *AvailabilityHandler) ListServices(c *gin.Context) {
	views, err := h.q.ListServices(c.Request.Context())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	res, err := resdto.FromServices(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, httperr.MsgRetry, nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
