package request

type CreateBookingRequest struct {
	ServiceID     string `json:"serviceId" binding:"required,uuid"`
	Date          string `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime     string `json:"startTime" binding:"required,datetime=15:04"`
	CustomerName  string `json:"customerName" binding:"required,max=100"`
	CustomerEmail string `json:"customerEmail" binding:"required,email,max=254"`
	CustomerPhone string `json:"customerPhone,omitempty" binding:"omitempty,max=32"`
	Notes         string `json:"notes,omitempty" binding:"max=500"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING CONFIRMED IN_PROGRESS COMPLETED CANCELLED NO_SHOW"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type RescheduleBookingRequest struct {
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" binding:"required,datetime=15:04"`
}

type UpdatePaymentRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required,oneof=PENDING PAID FAILED REFUNDED"`
}

type AvailabilityQuery struct {
	ServiceID string `form:"serviceId" binding:"required,uuid"`
	Date      string `form:"date" binding:"required,datetime=2006-01-02"`
}
