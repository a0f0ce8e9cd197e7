package model

const (
	SeatAvailable = "AVAILABLE"
	SeatBooked    = "BOOKED"
)

type Seat struct {
	DTO
	EventId uint   `gorm:"not null;uniqueIndex:idx_event_label" json:"eventId"`
	Label   string `gorm:"size:10;not null;uniqueIndex:idx_event_label" json:"label"`
	Status  string `gorm:"not null;default:'AVAILABLE'" json:"status"`
	Event   Event  `gorm:"foreignKey:EventId" json:"-"`
}

type Seats []Seat

type ExpandSeatsInput struct {
	SeatCount int `json:"seatCount" validate:"required,gt=0"`
}
