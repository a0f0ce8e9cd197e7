package model

import "time"

const (
	OrderPending   = "PENDING"
	OrderConfirmed = "CONFIRMED"
	OrderCancelled = "CANCELLED"
	OrderRefunded  = "REFUNDED"
)

const (
	PaymentSimulation = "simulation"
	PaymentGateway    = "gateway"
)

type Order struct {
	DTO
	PublicCode  string    `gorm:"size:20;uniqueIndex" json:"publicCode"`
	UserId      uint      `gorm:"not null;index" json:"userId"`
	EventId     uint      `gorm:"not null;index" json:"eventId"`
	TotalAmount float64   `gorm:"not null" json:"totalAmount"`
	PaymentMode string    `gorm:"not null;default:'simulation'" json:"paymentMode"`
	Status      string    `gorm:"not null;default:'PENDING'" json:"status"`
	BookingTime time.Time `json:"bookingTime"`

	// Seats reserved at placement; tickets exist only after confirmation.
	Seats   []Seat   `gorm:"many2many:order_seats" json:"seats,omitempty"`
	Tickets []Ticket `gorm:"foreignKey:OrderId" json:"tickets,omitempty"`
	User    User     `gorm:"foreignKey:UserId" json:"-"`
	Event   Event    `gorm:"foreignKey:EventId" json:"-"`
}

type Orders []Order

type PlaceOrderInput struct {
	EventId   uint   `json:"eventId" validate:"required,gt=0"`
	SeatIds   []uint `json:"seatIds" validate:"required,min=1,dive,gt=0"`
	OfferCode string `json:"offerCode" validate:"omitempty,max=30"`
}

type ConfirmPaymentInput struct {
	SeatIds []uint `json:"seatIds" validate:"required,min=1,dive,gt=0"`
}

type VerifyPaymentInput struct {
	GatewayOrderId   string `json:"gatewayOrderId" validate:"required"`
	GatewayPaymentId string `json:"gatewayPaymentId" validate:"required"`
	Signature        string `json:"signature" validate:"required"`
	SeatIds          []uint `json:"seatIds" validate:"required,min=1,dive,gt=0"`
}
