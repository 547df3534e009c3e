package response

import (
	"time"

	"carwash-booking/internal/domain/availability"
	"carwash-booking/internal/pkg/calendar"
	"carwash-booking/internal/usecase/commands"
	"carwash-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID                 uuid.UUID  `json:"id"`
	ServiceID          uuid.UUID  `json:"serviceId"`
	ServiceName        string     `json:"serviceName"`
	Date               string     `json:"date"`
	StartTime          string     `json:"startTime"`
	EndTime            string     `json:"endTime"`
	Status             string     `json:"status"`
	PaymentStatus      string     `json:"paymentStatus"`
	CustomerName       string     `json:"customerName"`
	CustomerEmail      string     `json:"customerEmail"`
	CustomerPhone      string     `json:"customerPhone,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	ConfirmationCode   string     `json:"confirmationCode"`
	CancellationReason string     `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	PriceCents         int64      `json:"priceCents"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// BookingSummaryResponse is what a command reports back when the joined
// view is not needed.
type BookingSummaryResponse struct {
	ID               uuid.UUID `json:"id"`
	ServiceID        uuid.UUID `json:"serviceId"`
	ConfirmationCode string    `json:"confirmationCode"`
	Date             string    `json:"date"`
	StartTime        string    `json:"startTime"`
	EndTime          string    `json:"endTime"`
	Status           string    `json:"status"`
	PaymentStatus    string    `json:"paymentStatus"`
}

type TimeSlotResponse struct {
	Time              string `json:"time"`
	Available         bool   `json:"available"`
	CapacityRemaining int    `json:"capacityRemaining"`
}

type AvailabilityResponse struct {
	ServiceID uuid.UUID          `json:"serviceId"`
	Date      string             `json:"date"`
	Slots     []TimeSlotResponse `json:"slots"`
}

type ServiceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DurationMin int       `json:"durationMin"`
	PriceCents  int64     `json:"priceCents"`
	Capacity    int       `json:"capacity"`
}

var calendarConverters = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: calendar.Date{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(calendar.Date).String(), nil
			},
		},
		{
			SrcType: calendar.TimeOfDay(0),
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(calendar.TimeOfDay).String(), nil
			},
		},
	},
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	var res BookingResponse
	if err := copier.CopyWithOption(&res, v, calendarConverters); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromBookingResult(r *commands.BookingResult) (*BookingSummaryResponse, error) {
	var res BookingSummaryResponse
	if err := copier.CopyWithOption(&res, r, calendarConverters); err != nil {
		return nil, err
	}
	res.ID = r.BookingID
	res.StartTime = r.Slot.Start.String()
	res.EndTime = r.Slot.End.String()
	return &res, nil
}

func FromSlots(serviceID uuid.UUID, date calendar.Date, slots []availability.TimeSlot) (*AvailabilityResponse, error) {
	res := &AvailabilityResponse{ServiceID: serviceID, Date: date.String(), Slots: []TimeSlotResponse{}}
	if err := copier.CopyWithOption(&res.Slots, slots, calendarConverters); err != nil {
		return nil, err
	}
	if res.Slots == nil {
		res.Slots = []TimeSlotResponse{}
	}
	return res, nil
}

func FromServices(views []queries.ServiceView) ([]ServiceResponse, error) {
	res := []ServiceResponse{}
	if err := copier.Copy(&res, views); err != nil {
		return nil, err
	}
	if res == nil {
		res = []ServiceResponse{}
	}
	return res, nil
}
