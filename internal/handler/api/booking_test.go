//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"carwash-booking/internal/domain/booking"
	"carwash-booking/internal/handler/api"
	resdto "carwash-booking/internal/handler/dto/response"
	"carwash-booking/internal/pkg/calendar"
	"carwash-booking/internal/pkg/errs"
	"carwash-booking/internal/usecase/commands"
	"carwash-booking/tests/common/builder"
	"carwash-booking/tests/common/httptest"
	"carwash-booking/tests/common/testutil"
	commandsmock "carwash-booking/tests/mock/commands"
	queriesmock "carwash-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/api/bookings", s.handler.Create)
	s.router.GET("/api/bookings/:id", s.handler.Get)
	s.router.GET("/api/bookings/code/:code", s.handler.GetByCode)
	s.router.PATCH("/api/bookings/:id/status", s.handler.UpdateStatus)
	s.router.POST("/api/bookings/:id/cancel", s.handler.Cancel)
	s.router.POST("/api/bookings/:id/reschedule", s.handler.Reschedule)
	s.router.PATCH("/api/bookings/:id/payment", s.handler.UpdatePayment)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func resultFrom(bb *builder.BookingBuilder) *commands.BookingResult {
	return &commands.BookingResult{
		BookingID:        bb.ID,
		ServiceID:        bb.ServiceID,
		ConfirmationCode: bb.ConfirmationCode,
		Date:             bb.Date,
		Slot:             calendar.NewInterval(bb.StartTime, bb.DurationMin),
		Status:           bb.Status,
		PaymentStatus:    bb.PaymentStatus,
	}
}

type testCaseBooking struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/api/bookings"
	bb := builder.NewBookingBuilder()
	reqBody := bb.BuildCreateRequestDTO()

	s.Run("success: returns 201 Created with the booking view", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), bb.BuildCreateInput()).Return(resultFrom(bb), nil)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bb.ID).Return(bb.BuildView(), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(bb.ID, body.ID)
		s.Equal("2026-10-20", body.Date)
		s.Equal("10:00", body.StartTime)
		s.Equal("10:30", body.EndTime)
		s.Equal(bb.ConfirmationCode, body.ConfirmationCode)
		s.Equal("Premium Wash", body.ServiceName)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/bookings/" + bb.ID.String()})
	})

	s.Run("success: committed booking is reported even if the view cannot be read", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(resultFrom(bb), nil)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bb.ID).Return(nil, errors.New("replica lag"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var body resdto.BookingSummaryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(bb.ID, body.ID)
		s.Equal("PENDING", body.Status)
		s.Equal("10:00", body.StartTime)
	})

	s.Run("error: 400 Bad Request on malformed input", func() {
		testCases := []testCaseBooking{
			{name: "missing serviceId", mutate: testutil.Field("serviceId", nil), expectCode: http.StatusBadRequest},
			{name: "serviceId not a uuid", mutate: testutil.Field("serviceId", "wash-1"), expectCode: http.StatusBadRequest},
			{name: "missing date", mutate: testutil.Field("date", nil), expectCode: http.StatusBadRequest},
			{name: "date in wrong layout", mutate: testutil.Field("date", "20-10-2026"), expectCode: http.StatusBadRequest},
			{name: "time in wrong layout", mutate: testutil.Field("startTime", "10am"), expectCode: http.StatusBadRequest},
			{name: "invalid email", mutate: testutil.Field("customerEmail", "jane"), expectCode: http.StatusBadRequest},
			{name: "notes too long", mutate: testutil.Field("notes", strings.Repeat("n", 501)), expectCode: http.StatusBadRequest},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
			retryAfter     string
		}{
			{
				name:           "slot taken",
				commandsError:  errs.Wrap(errs.ErrTimeSlotUnavailable, "create booking"),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Time slot no longer available",
			},
			{
				name:           "slot being booked",
				commandsError:  errs.Wrap(errs.ErrSlotLocked, "lock"),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "please try again",
				retryAfter:     "1",
			},
			{
				name:           "unknown service",
				commandsError:  errs.ErrServiceNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Not found",
			},
			{
				name:           "start time not offered",
				commandsError:  errs.Mark(errs.New("10:15 not offered"), errs.ErrInvalidTimeSlot),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid time slot",
			},
			{
				name:           "past date",
				commandsError:  errs.Mark(errs.New("in the past"), errs.ErrValidation),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid request",
			},
			{
				name:           "transaction timeout",
				commandsError:  errs.Mark(errs.New("context deadline exceeded"), errs.ErrTransactionTimeout),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "please retry",
			},
			{
				name:           "internal server error",
				commandsError:  errs.Mark(errors.New("pq: relation bookings does not exist"), errs.ErrDatabaseOperationFailed),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Could not complete booking, please retry",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(nil, tc.commandsError)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
				s.Equal(tc.retryAfter, rec.Header().Get("Retry-After"))
				s.NotContains(rec.Body.String(), "relation bookings")
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestCreate_ConflictCodes() {
	reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()

	s.Run("taken and locked slots carry distinct codes", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(nil, errs.ErrTimeSlotUnavailable)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings", reqBody)
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "SLOT_UNAVAILABLE")

		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(nil, errs.ErrSlotLocked)
		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings", reqBody)
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "SLOT_LOCKED")
	})
}

// ================================================================================
// TestGet / TestGetByCode
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	bb := builder.NewBookingBuilder()
	url := "/api/bookings/" + bb.ID.String()

	s.Run("success: returns 200 OK with BookingResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bb.ID).Return(bb.BuildView(), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(bb.ID, body.ID)
		s.Equal(bb.CustomerEmail, body.CustomerEmail)
		s.Equal(bb.PriceCents, body.PriceCents)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/not-a-uuid", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 Not Found for missing booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bb.ID).Return(nil, errs.ErrBookingNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})
}

func (s *BookingHandlerTestSuite) TestGetByCode() {
	bb := builder.NewBookingBuilder()

	s.Run("success: looks the booking up by its code", func() {
		s.mockQueries.EXPECT().GetByConfirmationCode(gomock.Any(), "ab12cd34").Return(bb.BuildView(), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/code/ab12cd34", nil)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(bb.ConfirmationCode, body.ConfirmationCode)
	})

	s.Run("error: 404 Not Found for unknown code", func() {
		s.mockQueries.EXPECT().GetByConfirmationCode(gomock.Any(), "ZZZZZZZZ").Return(nil, errs.ErrBookingNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/code/ZZZZZZZZ", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})
}

// ================================================================================
// Status, cancel, reschedule and payment
// ================================================================================

func (s *BookingHandlerTestSuite) TestUpdateStatus() {
	bb := builder.NewBookingBuilder()
	url := "/api/bookings/" + bb.ID.String() + "/status"

	s.Run("success: returns the new status", func() {
		confirmed := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.ID = bb.ID
			b.Status = booking.StatusConfirmed
		})
		s.mockCommands.EXPECT().UpdateBookingStatus(gomock.Any(), bb.ID, "CONFIRMED").Return(resultFrom(confirmed), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "CONFIRMED"})

		var body resdto.BookingSummaryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("CONFIRMED", body.Status)
	})

	s.Run("error: 400 Bad Request for unknown status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "ARCHIVED"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 422 Unprocessable Entity for a forbidden transition", func() {
		s.mockCommands.EXPECT().UpdateBookingStatus(gomock.Any(), bb.ID, "COMPLETED").
			Return(nil, errs.Mark(errs.New("PENDING -> COMPLETED"), errs.ErrInvalidStatusTransition))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "COMPLETED"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "PENDING -> COMPLETED")
	})
}

func (s *BookingHandlerTestSuite) TestCancel() {
	bb := builder.NewBookingBuilder()
	url := "/api/bookings/" + bb.ID.String() + "/cancel"
	cancelled := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.ID = bb.ID
		b.Status = booking.StatusCancelled
	})

	s.Run("success: reason is optional", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), bb.ID, "").Return(resultFrom(cancelled), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)

		var body resdto.BookingSummaryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("CANCELLED", body.Status)
	})

	s.Run("success: reason is passed through", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), bb.ID, "running late").Return(resultFrom(cancelled), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "running late"})
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 404 Not Found for missing booking", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), bb.ID, "").Return(nil, errs.ErrBookingNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})
}

func (s *BookingHandlerTestSuite) TestReschedule() {
	bb := builder.NewBookingBuilder()
	url := "/api/bookings/" + bb.ID.String() + "/reschedule"
	body := map[string]any{"date": "2026-10-21", "startTime": "14:00"}

	s.Run("success: returns the moved slot", func() {
		moved := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.ID = bb.ID
			b.Date = calendar.NewDate(2026, 10, 21)
			b.StartTime = calendar.MustTimeOfDay("14:00")
		})
		s.mockCommands.EXPECT().RescheduleBooking(gomock.Any(), bb.ID, commands.RescheduleBookingInput{Date: "2026-10-21", StartTime: "14:00"}).
			Return(resultFrom(moved), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)

		var res resdto.BookingSummaryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("2026-10-21", res.Date)
		s.Equal("14:00", res.StartTime)
		s.Equal("14:30", res.EndTime)
	})

	s.Run("error: 409 Conflict when the new slot is full", func() {
		s.mockCommands.EXPECT().RescheduleBooking(gomock.Any(), bb.ID, gomock.Any()).Return(nil, errs.ErrTimeSlotUnavailable)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Time slot no longer available")
	})

	s.Run("error: 400 Bad Request without a start time", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"date": "2026-10-21"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *BookingHandlerTestSuite) TestUpdatePayment() {
	id := uuid.New()
	url := "/api/bookings/" + id.String() + "/payment"

	s.Run("error: 422 Unprocessable Entity for refund before payment", func() {
		s.mockCommands.EXPECT().UpdatePaymentStatus(gomock.Any(), id, "REFUNDED").
			Return(nil, errs.Mark(errs.New("PENDING -> REFUNDED"), errs.ErrInvalidPaymentTransition))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"paymentStatus": "REFUNDED"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "REFUNDED")
	})

	s.Run("error: 400 Bad Request for unknown payment status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"paymentStatus": "CHARGEBACK"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}
