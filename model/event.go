package model

import "time"

const (
	EventUpcoming  = "UPCOMING"
	EventClosed    = "CLOSED"
	EventCancelled = "CANCELLED"
)

type Event struct {
	DTO
	Slug              string    `gorm:"size:80;uniqueIndex" json:"slug"`
	VenueId           uint      `gorm:"not null" json:"venueId"`
	OrganizerId       uint      `gorm:"not null" json:"organizerId"`
	Name              string    `gorm:"not null" json:"name"`
	Category          string    `json:"category"`
	EventDate         time.Time `gorm:"not null" json:"eventDate"`
	TicketPrice       float64   `gorm:"not null" json:"ticketPrice"`
	MaxTicketsPerUser int       `gorm:"not null;default:4" json:"maxTicketsPerUser"`
	Status            string    `gorm:"not null;default:'UPCOMING'" json:"status"`

	Venue     Venue `gorm:"foreignKey:VenueId" json:"venue"`
	Organizer User  `gorm:"foreignKey:OrganizerId" json:"-"`
}

type Events []Event

type CreateEventInput struct {
	VenueId           uint      `json:"venueId" validate:"required,gt=0"`
	OrganizerId       uint      `json:"organizerId" validate:"required,gt=0"`
	Name              string    `json:"name" validate:"required"`
	Category          string    `json:"category"`
	EventDate         time.Time `json:"eventDate" validate:"required"`
	TicketPrice       float64   `json:"ticketPrice" validate:"required,gt=0"`
	MaxTicketsPerUser int       `json:"maxTicketsPerUser" validate:"required,gt=0"`
}

type UpdateEventStatusInput struct {
	Status string `json:"status" validate:"required,oneof=UPCOMING CLOSED CANCELLED"`
}

type FilterEventInput struct {
	Pagination
	Category string `query:"category"`
	Status   string `query:"status" validate:"omitempty,oneof=UPCOMING CLOSED CANCELLED"`
}
