package model

import "time"

const (
	TicketActive    = "ACTIVE"
	TicketUsed      = "USED"
	TicketCancelled = "CANCELLED"
)

type Ticket struct {
	DTO
	OrderId    uint       `gorm:"not null;index" json:"orderId"`
	SeatId     uint       `gorm:"not null" json:"seatId"`
	TicketCode string     `gorm:"size:20;uniqueIndex;not null" json:"ticketCode"`
	Status     string     `gorm:"not null;default:'ACTIVE'" json:"status"`
	IssuedAt   time.Time  `json:"issuedAt"`
	UsedAt     *time.Time `json:"usedAt,omitempty"`

	Order Order `gorm:"foreignKey:OrderId" json:"-"`
	Seat  Seat  `gorm:"foreignKey:SeatId" json:"-"`
}

type Tickets []Ticket
